package editor

import (
	"fmt"

	"github.com/vk/hvacgrid/internal/value"
)

// Position identifies one text field of a session. Scalars use row 0,
// column 0; vectors use row 0 and the element index as column.
type Position struct {
	Field string
	Row   int
	Col   int
}

// At addresses the text field of a scalar field.
func At(field string) Position {
	return Position{Field: field}
}

// Index addresses element i of a vector field.
func Index(field string, i int) Position {
	return Position{Field: field, Col: i}
}

// Cell addresses row r, column c of a matrix field.
func Cell(field string, r, c int) Position {
	return Position{Field: field, Row: r, Col: c}
}

func (p Position) label(shape value.Shape) string {
	switch shape {
	case value.ShapeVector:
		return fmt.Sprintf("%s[%d]", p.Field, p.Col)
	case value.ShapeMatrix:
		return fmt.Sprintf("%s[%d][%d]", p.Field, p.Row, p.Col)
	default:
		return p.Field
	}
}
