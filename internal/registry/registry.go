package registry

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownComponentType is returned when a type name has no entry.
var ErrUnknownComponentType = errors.New("unknown component type")

// defaultFields is the fixed configuration of editable fields per type.
var defaultFields = []struct {
	Type   string
	Fields []string
}{
	{"RTU", []string{"cooling_COP", "heating_efficiency", "max_airflow", "min_oa_fraction", "supply_air_temp", "fan_power_coeffs"}},
	{"VAVBox", []string{"max_airflow", "min_flow_fraction", "reheat_capacity", "damper_gains"}},
	{"Envelope", []string{"R_env", "C_env", "R_internal", "adjacency"}},
	{"SolarGains", []string{"window_area", "shgc", "orientation_factors", "shading_matrix"}},
}

// Registry holds the ordered mutable field names for each component type.
// It is read-only once the application has started.
type Registry struct {
	fields map[string][]string
	fixed  map[string]bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		fields: make(map[string][]string),
		fixed:  make(map[string]bool),
	}
}

// Default returns a registry holding the built-in table for RTU, VAVBox,
// Envelope and SolarGains.
func Default() *Registry {
	r := New()
	for _, entry := range defaultFields {
		r.Register(entry.Type, entry.Fields)
		r.fixed[entry.Type] = true
	}
	return r
}

// Register adds the field list for a type. Registering a type twice or
// listing a field twice is a programming error and panics.
func (r *Registry) Register(typeName string, fields []string) {
	if err := r.add(typeName, fields); err != nil {
		panic(err.Error())
	}
}

// Extend adds the field list for a type declared outside the built-in table,
// such as a schema block in a building file. The built-in types cannot be
// redefined.
func (r *Registry) Extend(typeName string, fields []string) error {
	if r.fixed[typeName] {
		return fmt.Errorf("component type '%s' has a built-in field list and cannot be redefined", typeName)
	}
	return r.add(typeName, fields)
}

func (r *Registry) add(typeName string, fields []string) error {
	if typeName == "" {
		return errors.New("component type name must not be empty")
	}
	if _, exists := r.fields[typeName]; exists {
		return fmt.Errorf("fields for component type '%s' already registered", typeName)
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			return fmt.Errorf("component type '%s' lists field '%s' more than once", typeName, f)
		}
		seen[f] = struct{}{}
	}
	r.fields[typeName] = slices.Clone(fields)
	return nil
}

// MutableFields returns the editable field names of a type in form order.
// The returned slice is a copy.
func (r *Registry) MutableFields(typeName string) ([]string, error) {
	fields, ok := r.fields[typeName]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownComponentType, typeName)
	}
	return slices.Clone(fields), nil
}

// Has reports whether typeName has an entry.
func (r *Registry) Has(typeName string) bool {
	_, ok := r.fields[typeName]
	return ok
}

// TypeNames returns all registered type names in sorted order.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
