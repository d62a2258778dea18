package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/ctxlog"
)

// Validate performs a strict parity check between the registry and the
// component types. Every registered type must be constructible by the factory,
// and every listed field must be a writable attribute of a fresh instance.
func (r *Registry) Validate(ctx context.Context, factory *component.Factory) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, typeName := range r.TypeNames() {
		errs = append(errs, checkFields(factory, typeName, r.fields[typeName])...)
		logger.Debug("Registry entry checked.", "type", typeName, "fields", len(r.fields[typeName]))
	}

	for _, typeName := range factory.TypeNames() {
		if !r.Has(typeName) {
			logger.Debug("Component type has no editable fields.", "type", typeName)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// CheckFields runs the parity check of Validate for one prospective entry,
// so that a field list can be rejected before Extend accepts it.
func CheckFields(factory *component.Factory, typeName string, fields []string) error {
	if errs := checkFields(factory, typeName, fields); len(errs) > 0 {
		return fmt.Errorf("invalid field list:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func checkFields(factory *component.Factory, typeName string, fields []string) []string {
	c, err := factory.New(typeName, "registry_check")
	if err != nil {
		return []string{fmt.Sprintf("type '%s': registry lists fields but no component type is registered", typeName)}
	}

	var errs []string
	for _, field := range fields {
		attr, ok := component.Lookup(c, field)
		if !ok {
			errs = append(errs, fmt.Sprintf("type '%s': registry lists field '%s' which is not an attribute of the component", typeName, field))
			continue
		}
		if attr.ReadOnly {
			errs = append(errs, fmt.Sprintf("type '%s': registry lists field '%s' which is read-only", typeName, field))
		}
	}
	return errs
}
