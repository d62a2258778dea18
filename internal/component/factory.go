// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package component

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrUnknownType is returned by Factory.New for a type with no constructor.
var ErrUnknownType = errors.New("unknown component type")

// Constructor builds a component instance with default parameters.
type Constructor func(name string) Component

// Factory constructs components by type name. It is the only place new
// component instances come from.
type Factory struct {
	ctors map[string]Constructor
	order []string
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{ctors: make(map[string]Constructor)}
}

// DefaultFactory returns a factory with all built-in component types.
func DefaultFactory() *Factory {
	f := NewFactory()
	f.Register(TypeRTU, func(name string) Component { return NewRTU(name) })
	f.Register(TypeVAVBox, func(name string) Component { return NewVAVBox(name) })
	f.Register(TypeEnvelope, func(name string) Component { return NewEnvelope(name) })
	f.Register(TypeSolarGains, func(name string) Component { return NewSolarGains(name) })
	f.Register(TypeBuildingNode, func(name string) Component { return NewBuildingNode(name) })
	return f
}

// Register adds a constructor. Registering the same type twice is a
// programming error and panics.
func (f *Factory) Register(typeName string, ctor Constructor) {
	if _, exists := f.ctors[typeName]; exists {
		panic(fmt.Sprintf("component type '%s' already registered", typeName))
	}
	slog.Debug("Registering component type.", "type", typeName)
	f.ctors[typeName] = ctor
	f.order = append(f.order, typeName)
}

// New constructs a component of the given type.
func (f *Factory) New(typeName, name string) (Component, error) {
	ctor, ok := f.ctors[typeName]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, typeName)
	}
	return ctor(name), nil
}

// Has reports whether typeName has a constructor.
func (f *Factory) Has(typeName string) bool {
	_, ok := f.ctors[typeName]
	return ok
}

// TypeNames returns the registered type names in registration order.
func (f *Factory) TypeNames() []string {
	return slices.Clone(f.order)
}
