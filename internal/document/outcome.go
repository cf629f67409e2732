package document

import "strings"

// Status tags the result of a CRUD operation.
type Status int

const (
	StatusOK Status = iota
	StatusCreated
	StatusNotFound
	StatusInvalidID
	StatusValidationFailed
	StatusConflict
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCreated:
		return "created"
	case StatusNotFound:
		return "not_found"
	case StatusInvalidID:
		return "invalid_id"
	case StatusValidationFailed:
		return "validation_failed"
	case StatusConflict:
		return "conflict"
	}
	return "unknown"
}

// Outcome is the tagged result handed from the service to the HTTP layer.
// Doc is set for single-document results, Docs for listings and Messages for
// validation failures and conflicts.
type Outcome struct {
	Status   Status
	Doc      Document
	Docs     []Document
	Messages []string
}

func Created(d Document) Outcome { return Outcome{Status: StatusCreated, Doc: d} }
func Found(d Document) Outcome { return Outcome{Status: StatusOK, Doc: d} }
func Listed(ds []Document) Outcome {
	if ds == nil {
		ds = []Document{}
	}
	return Outcome{Status: StatusOK, Docs: ds}
}
func Deleted() Outcome { return Outcome{Status: StatusOK} }
func NotFound() Outcome { return Outcome{Status: StatusNotFound} }
func InvalidID() Outcome { return Outcome{Status: StatusInvalidID} }
func ValidationFailed(msgs ...string) Outcome {
	return Outcome{Status: StatusValidationFailed, Messages: msgs}
}
func Conflict(msgs ...string) Outcome { return Outcome{Status: StatusConflict, Messages: msgs} }

// Message joins Messages into a single human-readable string.
func (o Outcome) Message() string {
	return strings.Join(o.Messages, ", ")
}
