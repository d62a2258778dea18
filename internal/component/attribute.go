// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file holds the descriptor constructors used by the component types.
// Each one binds an attribute name to a field of the concrete component
// struct, so the descriptor list of a type is fixed when it is constructed.
package component

import (
	"fmt"

	"github.com/vk/hvacgrid/internal/value"
)

func checkLayout(name string, cur, next value.Value) error {
	if !cur.SameLayout(next) {
		return fmt.Errorf("attribute %q is %s, got %s: %w", name, cur.Dims(), next.Dims(), ErrShapeMismatch)
	}
	return nil
}

func scalarAttr(name string, p *float64) Attribute {
	get := func() value.Value { return value.Scalar(*p) }
	return Attribute{
		Name: name,
		Get:  get,
		Set: func(v value.Value) error {
			if err := checkLayout(name, get(), v); err != nil {
				return err
			}
			*p = v.Data[0]
			return nil
		},
	}
}

func vectorAttr(name string, p *[]float64) Attribute {
	get := func() value.Value { return value.Vector(*p) }
	return Attribute{
		Name: name,
		Get:  get,
		Set: func(v value.Value) error {
			if err := checkLayout(name, get(), v); err != nil {
				return err
			}
			*p = v.Floats()
			return nil
		},
	}
}

func matrixAttr(name string, p *[][]float64) Attribute {
	get := func() value.Value {
		v, err := value.Matrix(*p)
		if err != nil {
			panic(fmt.Sprintf("component: attribute %q holds a ragged matrix: %v", name, err))
		}
		return v
	}
	return Attribute{
		Name: name,
		Get:  get,
		Set: func(v value.Value) error {
			if err := checkLayout(name, get(), v); err != nil {
				return err
			}
			*p = v.RowSlices()
			return nil
		},
	}
}

func tensorAttr(name string, p **Tensor) Attribute {
	get := func() value.Value { return (*p).Value() }
	return Attribute{
		Name: name,
		Get:  get,
		Set: func(v value.Value) error {
			if err := checkLayout(name, get(), v); err != nil {
				return err
			}
			*p = tensorFromValue(v)
			return nil
		},
	}
}

func readOnly(a Attribute) Attribute {
	a.ReadOnly = true
	a.Set = func(value.Value) error {
		return fmt.Errorf("%q: %w", a.Name, ErrReadOnly)
	}
	return a
}
