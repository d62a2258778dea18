// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package component

import (
	"fmt"
	"slices"

	"github.com/vk/hvacgrid/internal/value"
)

// Tensor is a dense row-major float64 array of rank 0, 1 or 2. It stands in
// for the structured numeric array type of the modeling library.
type Tensor struct {
	dims []int
	data []float64
}

// NewTensor returns a tensor with the given dimensions holding a copy of data.
// No dims means a zero-dimensional tensor holding a single number.
func NewTensor(data []float64, dims ...int) (*Tensor, error) {
	if len(dims) > 2 {
		return nil, fmt.Errorf("tensor rank %d not supported", len(dims))
	}
	n := 1
	for _, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("negative tensor dimension %d", d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("tensor dims %v need %d elements, got %d", dims, n, len(data))
	}
	return &Tensor{dims: slices.Clone(dims), data: slices.Clone(data)}, nil
}

// MustTensor is like NewTensor but panics on error. Intended for defaults.
func MustTensor(data []float64, dims ...int) *Tensor {
	t, err := NewTensor(data, dims...)
	if err != nil {
		panic(err)
	}
	return t
}

// Dims returns a copy of the dimensions.
func (t *Tensor) Dims() []int { return slices.Clone(t.dims) }

// Data returns a copy of the elements in row-major order.
func (t *Tensor) Data() []float64 { return slices.Clone(t.data) }

// Value converts the tensor into a value marked with the tensor container.
func (t *Tensor) Value() value.Value {
	v := value.Value{Container: value.ContainerTensor, Data: slices.Clone(t.data)}
	switch len(t.dims) {
	case 0:
		v.Shape, v.Rows, v.Cols = value.ShapeScalar, 1, 1
	case 1:
		v.Shape, v.Rows, v.Cols = value.ShapeVector, 1, t.dims[0]
	default:
		v.Shape, v.Rows, v.Cols = value.ShapeMatrix, t.dims[0], t.dims[1]
	}
	return v
}

// tensorFromValue builds a tensor with the rank implied by v's shape.
func tensorFromValue(v value.Value) *Tensor {
	t := &Tensor{data: slices.Clone(v.Data)}
	switch v.Shape {
	case value.ShapeVector:
		t.dims = []int{v.Cols}
	case value.ShapeMatrix:
		t.dims = []int{v.Rows, v.Cols}
	}
	return t
}
