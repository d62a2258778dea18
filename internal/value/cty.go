package value

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	vectorType = cty.List(cty.Number)
	matrixType = cty.List(cty.List(cty.Number))
)

// CtyType returns the cty type matching a shape: number, list(number) or
// list(list(number)).
func CtyType(s Shape) cty.Type {
	switch s {
	case ShapeVector:
		return vectorType
	case ShapeMatrix:
		return matrixType
	default:
		return cty.Number
	}
}

// FromCty classifies a cty value by structure and converts it into a plain
// Value. Numbers become scalars, sequences of numbers become vectors and
// sequences of equal-length sequences of numbers become matrices. Tuples are
// accepted wherever lists are, since HCL bracket literals evaluate to tuples.
func FromCty(v cty.Value) (Value, error) {
	if v.IsNull() {
		return Value{}, fmt.Errorf("value is null")
	}
	if !v.IsWhollyKnown() {
		return Value{}, fmt.Errorf("value is not known")
	}

	ty := v.Type()
	if ty.Equals(cty.Number) {
		f, err := ctyFloat(v)
		if err != nil {
			return Value{}, err
		}
		return Scalar(f), nil
	}

	if !ty.IsListType() && !ty.IsTupleType() {
		return Value{}, fmt.Errorf("unsupported value of type %s: expected a number or a list of numbers", ty.FriendlyName())
	}

	if list, err := convert.Convert(v, vectorType); err == nil {
		elems, err := ctyFloats(list)
		if err != nil {
			return Value{}, err
		}
		return Vector(elems), nil
	}

	list, err := convert.Convert(v, matrixType)
	if err != nil {
		return Value{}, fmt.Errorf("unsupported value of type %s: expected a number, list(number) or list(list(number))", ty.FriendlyName())
	}
	var rows [][]float64
	it := list.ElementIterator()
	for it.Next() {
		_, rowVal := it.Element()
		row, err := ctyFloats(rowVal)
		if err != nil {
			return Value{}, err
		}
		rows = append(rows, row)
	}
	return Matrix(rows)
}

// ToCty converts v into a cty number, list(number) or list(list(number)).
func ToCty(v Value) cty.Value {
	switch v.Shape {
	case ShapeScalar:
		return cty.NumberFloatVal(v.Data[0])
	case ShapeVector:
		return ctyList(v.Data)
	default:
		if v.Rows == 0 {
			return cty.ListValEmpty(vectorType)
		}
		rows := make([]cty.Value, v.Rows)
		for r := range rows {
			rows[r] = ctyList(v.Data[r*v.Cols : (r+1)*v.Cols])
		}
		return cty.ListVal(rows)
	}
}

func ctyList(elems []float64) cty.Value {
	if len(elems) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	vals := make([]cty.Value, len(elems))
	for i, f := range elems {
		vals[i] = cty.NumberFloatVal(f)
	}
	return cty.ListVal(vals)
}

func ctyFloats(list cty.Value) ([]float64, error) {
	out := make([]float64, 0, list.LengthInt())
	it := list.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		f, err := ctyFloat(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func ctyFloat(v cty.Value) (float64, error) {
	if v.IsNull() {
		return 0, fmt.Errorf("element is null")
	}
	var f float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return 0, err
	}
	return f, nil
}
