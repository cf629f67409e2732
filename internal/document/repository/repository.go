package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gogotex/usergroups/internal/document"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid id")
	ErrDuplicate = errors.New("duplicate key")
)

// DuplicateError reports a write rejected by a uniqueness constraint.
// It matches ErrDuplicate with errors.Is.
type DuplicateError struct {
	Fields []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key on %s", strings.Join(e.Fields, ", "))
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Repository persists the documents of one entity collection.
// Identifiers are 24-character hex object ids; a malformed id yields ErrInvalidID.
type Repository interface {
	Insert(ctx context.Context, fields document.Document) (document.Document, error)
	List(ctx context.Context) ([]document.Document, error)
	Get(ctx context.Context, id string) (document.Document, error)
	Update(ctx context.Context, id string, fields document.Document) (document.Document, error)
	Delete(ctx context.Context, id string) error
}

// CanonicalID returns id in the form the repositories store it (lowercase
// hex), or ErrInvalidID.
func CanonicalID(id string) (string, error) {
	oid, err := parseID(id)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}
