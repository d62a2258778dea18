package editor

import (
	"errors"
	"fmt"

	"github.com/vk/hvacgrid/internal/value"
)

var (
	// ErrSessionClosed is returned when a committed or discarded session is used.
	ErrSessionClosed = errors.New("edit session is closed")
	// ErrNoSuchField is returned for a position that has no text field.
	ErrNoSuchField = errors.New("no such text field")
)

// MissingAttributeError reports a registered field that the component does
// not expose as a writable attribute.
type MissingAttributeError struct {
	Type     string
	Field    string
	ReadOnly bool
}

func (e *MissingAttributeError) Error() string {
	if e.ReadOnly {
		return fmt.Sprintf("attribute %q of %s is read-only", e.Field, e.Type)
	}
	return fmt.Sprintf("%s has no attribute %q", e.Type, e.Field)
}

// InvalidNumericInputError reports a text field that does not parse as a
// decimal number. Row and Col locate the field inside vectors and matrices.
type InvalidNumericInputError struct {
	Field string
	Shape value.Shape
	Row   int
	Col   int
	Text  string
	Err   error
}

// Location returns the field name with its index, e.g. "R_env[1]" or
// "adjacency[0][1]".
func (e *InvalidNumericInputError) Location() string {
	return Position{Field: e.Field, Row: e.Row, Col: e.Col}.label(e.Shape)
}

func (e *InvalidNumericInputError) Error() string {
	return fmt.Sprintf("invalid numeric input for %s: %q is not a valid decimal number", e.Location(), e.Text)
}

func (e *InvalidNumericInputError) Unwrap() error {
	return e.Err
}
