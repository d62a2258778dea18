// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Component contract and the attribute descriptor that
// the property editor works with.
package component

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vk/hvacgrid/internal/value"
)

var (
	// ErrShapeMismatch is returned by a mutator given a value whose shape or
	// dimensions differ from the attribute's current value.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrReadOnly is returned by the mutator of a read-only attribute.
	ErrReadOnly = errors.New("attribute is read-only")
	// ErrUnknownInput is returned when an input slot is not declared by the type.
	ErrUnknownInput = errors.New("unknown input slot")
)

// Component is a simulation object with named numeric attributes.
type Component interface {
	// TypeName is the component type, e.g. "Envelope".
	TypeName() string
	// Name is the instance name, unique per type within a building.
	Name() string
	// Attributes returns the attribute descriptors in declaration order.
	Attributes() []Attribute
	// InputSlots returns the declared input slots in declaration order.
	InputSlots() []InputSlot
	// Inputs returns a copy of the named input map (slot -> "Type.name").
	Inputs() map[string]string
	// SetInput wires a slot to a "Type.name" reference.
	SetInput(slot, ref string) error
}

// Attribute describes one numeric attribute of a component.
type Attribute struct {
	Name     string
	ReadOnly bool
	Get      func() value.Value
	Set      func(value.Value) error
}

// InputSlot is a named input of a component type and the type it accepts.
type InputSlot struct {
	Name string
	Type string
}

// Lookup finds the attribute named name on c.
func Lookup(c Component, name string) (Attribute, bool) {
	for _, a := range c.Attributes() {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Ref returns the "Type.name" reference of c.
func Ref(c Component) string {
	return c.TypeName() + "." + c.Name()
}

// ParseRef splits a "Type.name" reference.
func ParseRef(ref string) (typeName, name string, err error) {
	typeName, name, ok := strings.Cut(ref, ".")
	if !ok || typeName == "" || name == "" {
		return "", "", fmt.Errorf("invalid component reference %q: expected Type.name", ref)
	}
	return typeName, name, nil
}

// base carries the parts every component type shares.
type base struct {
	typeName string
	name     string
	attrs    []Attribute
	slots    []InputSlot
	inputs   map[string]string
}

func newBase(typeName, name string, slots ...InputSlot) base {
	return base{
		typeName: typeName,
		name:     name,
		slots:    slots,
		inputs:   make(map[string]string),
	}
}

func (b *base) TypeName() string { return b.typeName }

func (b *base) Name() string { return b.name }

func (b *base) Attributes() []Attribute { return slices.Clone(b.attrs) }

func (b *base) InputSlots() []InputSlot { return slices.Clone(b.slots) }

func (b *base) Inputs() map[string]string { return maps.Clone(b.inputs) }

func (b *base) SetInput(slot, ref string) error {
	if !slices.ContainsFunc(b.slots, func(s InputSlot) bool { return s.Name == slot }) {
		return fmt.Errorf("%s.%s: %w %q", b.typeName, b.name, ErrUnknownInput, slot)
	}
	if _, _, err := ParseRef(ref); err != nil {
		return fmt.Errorf("%s.%s input %q: %w", b.typeName, b.name, slot, err)
	}
	b.inputs[slot] = ref
	return nil
}
