package config

import (
	"fmt"
	"slices"

	"github.com/vk/hvacgrid/internal/value"
)

// Model is the unified, format-agnostic representation of one or more
// building files.
type Model struct {
	Components []*ComponentSpec
	// Schemas holds editable field lists for types that have no built-in
	// registry entry.
	Schemas map[string][]string
}

// ComponentSpec is the format-agnostic representation of a `component` block.
type ComponentSpec struct {
	Type      string
	Name      string
	Arguments map[string]value.Value
	// Inputs maps input slot names to "Type.name" references.
	Inputs map[string]string
	// Source is the file and position the spec was read from, for messages.
	Source string
}

// Ref returns the "Type.name" reference of the spec.
func (s *ComponentSpec) Ref() string {
	return s.Type + "." + s.Name
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Schemas: make(map[string][]string)}
}

// Merge appends other's components and schemas to m. A schema defined in
// both models is an error.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	m.Components = append(m.Components, other.Components...)
	for typeName, fields := range other.Schemas {
		if _, exists := m.Schemas[typeName]; exists {
			return fmt.Errorf("schema for type '%s' is defined more than once", typeName)
		}
		m.Schemas[typeName] = slices.Clone(fields)
	}
	return nil
}

// Find returns the component spec with the given "Type.name" reference.
func (m *Model) Find(ref string) (*ComponentSpec, bool) {
	for _, c := range m.Components {
		if c.Ref() == ref {
			return c, true
		}
	}
	return nil, false
}
