package app

import (
	"errors"
	"strings"

	"github.com/idilsaglam/menu/internal/model"
)

var (
	ErrEmptyName  = errors.New("name must not be empty")
	ErrNotEditing = errors.New("no record is being edited")
)

// ValidationError is a locally rejected input. Nothing was sent.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// ValidateName returns the trimmed name or a ValidationError when nothing
// is left after trimming.
func ValidateName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	return n, nil
}

// OpError is a failed dispatcher operation. Refresh is set when the
// mutation itself went through but the refresh after it failed.
type OpError struct {
	Op      string
	ID      model.ID
	Refresh bool
	Err     error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.ID != "" {
		b.WriteString(" " + e.ID.String())
	}
	if e.Refresh {
		b.WriteString(": refresh")
	}
	b.WriteString(": " + e.Err.Error())
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Err }
