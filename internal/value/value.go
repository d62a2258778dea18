// Package value defines the numeric values carried by component attributes.
//
// A Value is a tagged variant: a scalar, a fixed-length vector or a fixed-size
// rectangular matrix of float64 numbers, stored row-major. It also records the
// container the attribute keeps the numbers in, so a value read from an
// attribute can be written back in the same representation.
package value

import (
	"fmt"
	"slices"
)

// Shape classifies the structure of a Value.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeVector
	ShapeMatrix
)

// String returns the lowercase shape name.
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeVector:
		return "vector"
	case ShapeMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Container is the numeric container kind an attribute stores its value in.
type Container int

const (
	// ContainerPlain is a bare Go number or slice of numbers.
	ContainerPlain Container = iota
	// ContainerTensor is a dense array type with explicit dimensions.
	ContainerTensor
)

// String returns the container name.
func (c Container) String() string {
	switch c {
	case ContainerPlain:
		return "plain"
	case ContainerTensor:
		return "tensor"
	default:
		return "unknown"
	}
}

// Value is an immutable-by-convention numeric value. Rows and Cols describe the
// layout of Data: a scalar is 1x1, a vector of length N is 1xN and a matrix is
// RxC.
type Value struct {
	Shape     Shape
	Container Container
	Rows      int
	Cols      int
	Data      []float64
}

// Scalar returns a plain scalar value.
func Scalar(f float64) Value {
	return Value{Shape: ShapeScalar, Rows: 1, Cols: 1, Data: []float64{f}}
}

// Vector returns a plain vector holding a copy of elems.
func Vector(elems []float64) Value {
	return Value{Shape: ShapeVector, Rows: 1, Cols: len(elems), Data: append(make([]float64, 0, len(elems)), elems...)}
}

// Matrix returns a plain matrix holding a copy of rows. All rows must have the
// same length.
func Matrix(rows [][]float64) (Value, error) {
	v := Value{Shape: ShapeMatrix, Rows: len(rows)}
	if len(rows) > 0 {
		v.Cols = len(rows[0])
	}
	v.Data = make([]float64, 0, v.Rows*v.Cols)
	for i, row := range rows {
		if len(row) != v.Cols {
			return Value{}, fmt.Errorf("matrix row %d has %d columns, expected %d", i, len(row), v.Cols)
		}
		v.Data = append(v.Data, row...)
	}
	return v, nil
}

// MustMatrix is like Matrix but panics on ragged input. Intended for literals.
func MustMatrix(rows [][]float64) Value {
	v, err := Matrix(rows)
	if err != nil {
		panic(err)
	}
	return v
}

// AsTensor returns a copy of v marked as stored in a tensor container.
func (v Value) AsTensor() Value {
	out := v.Clone()
	out.Container = ContainerTensor
	return out
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	v.Data = slices.Clone(v.Data)
	return v
}

// Len returns the number of elements.
func (v Value) Len() int {
	return len(v.Data)
}

// At returns the element at row r, column c.
func (v Value) At(r, c int) float64 {
	return v.Data[r*v.Cols+c]
}

// Float returns the scalar number. It panics if v is not a scalar.
func (v Value) Float() float64 {
	if v.Shape != ShapeScalar {
		panic(fmt.Sprintf("value: Float called on %s", v.Shape))
	}
	return v.Data[0]
}

// Floats returns a copy of the elements in row-major order.
func (v Value) Floats() []float64 {
	return slices.Clone(v.Data)
}

// RowSlices returns a copy of the elements as a slice of rows.
func (v Value) RowSlices() [][]float64 {
	out := make([][]float64, v.Rows)
	for r := range out {
		out[r] = slices.Clone(v.Data[r*v.Cols : (r+1)*v.Cols])
	}
	return out
}

// SameLayout reports whether v and o have the same shape and dimensions.
func (v Value) SameLayout(o Value) bool {
	return v.Shape == o.Shape && v.Rows == o.Rows && v.Cols == o.Cols
}

// Equal reports whether v and o have the same layout, container and elements.
func (v Value) Equal(o Value) bool {
	return v.SameLayout(o) && v.Container == o.Container && slices.Equal(v.Data, o.Data)
}

// Dims returns a short description like "scalar", "vector[3]" or "matrix[2x2]".
func (v Value) Dims() string {
	switch v.Shape {
	case ShapeVector:
		return fmt.Sprintf("vector[%d]", v.Cols)
	case ShapeMatrix:
		return fmt.Sprintf("matrix[%dx%d]", v.Rows, v.Cols)
	default:
		return v.Shape.String()
	}
}

// String formats v with FormatNumber, nesting brackets by shape.
func (v Value) String() string {
	switch v.Shape {
	case ShapeScalar:
		return FormatNumber(v.Data[0])
	case ShapeVector:
		return formatRow(v.Data)
	default:
		s := "["
		for r := 0; r < v.Rows; r++ {
			if r > 0 {
				s += ", "
			}
			s += formatRow(v.Data[r*v.Cols : (r+1)*v.Cols])
		}
		return s + "]"
	}
}

func formatRow(row []float64) string {
	s := "["
	for i, f := range row {
		if i > 0 {
			s += ", "
		}
		s += FormatNumber(f)
	}
	return s + "]"
}
