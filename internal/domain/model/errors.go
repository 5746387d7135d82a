package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for record shape problems.
var (
	ErrMissingField = errors.New("missing required field")
	ErrParse        = errors.New("field parse failed")
)

// FieldError locates a record shape problem.
type FieldError struct {
	Row   int // zero-based position in the batch, -1 when unknown
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("row %d: field %q: %v", e.Row, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
