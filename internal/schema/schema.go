// Package schema holds the per-entity validation rule tables and the generic
// validator that evaluates a candidate document against them.
package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gogotex/usergroups/internal/document"
)

var validate = validator.New()

// Rule constrains one string field of an entity.
type Rule struct {
	Field          string
	Required       bool
	MinLength      int
	MaxLength      int
	Pattern        *regexp.Regexp
	PatternMessage string
	Unique         bool
}

// Schema is the static rule table of one entity.
type Schema struct {
	Name       string // "User"
	Collection string // "users"
	Rules      []Rule
}

// FieldError is a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Result is the structured outcome of Validate: ok when Errors is empty.
type Result struct {
	Entity string
	Errors []FieldError
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Message renders the result as "<Entity> validation failed: field: msg, ...".
func (r Result) Message() string {
	if r.OK() {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.String())
	}
	return r.Entity + " validation failed: " + strings.Join(parts, ", ")
}

// tag builds the validator tag for the length and presence part of a rule.
func (r Rule) tag() string {
	tags := []string{}
	if r.Required {
		tags = append(tags, "required")
	} else {
		tags = append(tags, "omitempty")
	}
	if r.MinLength > 0 {
		tags = append(tags, "min="+strconv.Itoa(r.MinLength))
	}
	if r.MaxLength > 0 {
		tags = append(tags, "max="+strconv.Itoa(r.MaxLength))
	}
	return strings.Join(tags, ",")
}

func (r Rule) check(value interface{}, present bool) (string, bool) {
	if !present || value == nil {
		if r.Required {
			return "is required", false
		}
		return "", true
	}
	s, ok := value.(string)
	if !ok {
		return "must be a string", false
	}
	if err := validate.Var(s, r.tag()); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describe(verrs[0]), false
		}
		return err.Error(), false
	}
	if r.Pattern != nil && s != "" && !r.Pattern.MatchString(s) {
		if r.PatternMessage != "" {
			return r.PatternMessage, false
		}
		return "does not match " + r.Pattern.String(), false
	}
	return "", true
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "failed " + fe.Tag()
}

// Validate applies every rule of the table to doc. Uniqueness is not checked
// here; it is enforced by the storage layer at write time.
func (s Schema) Validate(doc document.Document) Result {
	res := Result{Entity: s.Name}
	for _, r := range s.Rules {
		v, present := doc[r.Field]
		if msg, ok := r.check(v, present); !ok {
			res.Errors = append(res.Errors, FieldError{Field: r.Field, Message: msg})
		}
	}
	return res
}

// Sanitize keeps only the fields declared by the schema. The identifier and
// unknown keys are dropped.
func (s Schema) Sanitize(payload map[string]interface{}) document.Document {
	out := document.Document{}
	for _, r := range s.Rules {
		if v, ok := payload[r.Field]; ok {
			out[r.Field] = v
		}
	}
	return out
}

// Fields lists the declared field names in table order.
func (s Schema) Fields() []string {
	out := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		out = append(out, r.Field)
	}
	return out
}

// UniqueFields lists the fields that must be unique across the collection.
func (s Schema) UniqueFields() []string {
	var out []string
	for _, r := range s.Rules {
		if r.Unique {
			out = append(out, r.Field)
		}
	}
	return out
}

// DuplicateMessage renders a uniqueness violation in the same shape as Result.Message.
func (s Schema) DuplicateMessage(fields []string) string {
	if len(fields) == 0 {
		fields = s.UniqueFields()
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, FieldError{Field: f, Message: "already exists"}.String())
	}
	return s.Name + " validation failed: " + strings.Join(parts, ", ")
}
