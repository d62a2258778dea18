package config

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/registry"
)

// Apply turns a loaded model into components. Schema entries are checked
// against a fresh instance of their type and then extend reg; then every component spec is constructed through factory, its
// arguments are assigned through the attribute mutators and its inputs are
// wired. Components are returned in model order.
func Apply(ctx context.Context, model *Model, factory *component.Factory, reg *registry.Registry) ([]component.Component, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Applying building model.", "components", len(model.Components), "schemas", len(model.Schemas))

	types := make([]string, 0, len(model.Schemas))
	for typeName := range model.Schemas {
		types = append(types, typeName)
	}
	slices.Sort(types)
	for _, typeName := range types {
		if err := registry.CheckFields(factory, typeName, model.Schemas[typeName]); err != nil {
			return nil, fmt.Errorf("schema %q: %w", typeName, err)
		}
		if err := reg.Extend(typeName, model.Schemas[typeName]); err != nil {
			return nil, fmt.Errorf("schema %q: %w", typeName, err)
		}
		logger.Debug("Registry extended from building file.", "type", typeName, "fields", model.Schemas[typeName])
	}

	out := make([]component.Component, 0, len(model.Components))
	seen := make(map[string]string, len(model.Components))
	for _, spec := range model.Components {
		if prev, dup := seen[spec.Ref()]; dup {
			return nil, fmt.Errorf("%s: component %s is already defined at %s", spec.Source, spec.Ref(), prev)
		}
		seen[spec.Ref()] = spec.Source

		c, err := build(ctx, spec, factory)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Source, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func build(ctx context.Context, spec *ComponentSpec, factory *component.Factory) (component.Component, error) {
	logger := ctxlog.FromContext(ctx).With("component", spec.Ref())

	c, err := factory.New(spec.Type, spec.Name)
	if err != nil {
		return nil, err
	}

	for _, name := range sortedKeys(spec.Arguments) {
		attr, ok := component.Lookup(c, name)
		if !ok {
			return nil, fmt.Errorf("%s has no attribute %q", spec.Ref(), name)
		}
		if err := attr.Set(spec.Arguments[name]); err != nil {
			return nil, fmt.Errorf("argument %q of %s: %w", name, spec.Ref(), err)
		}
		logger.Debug("Argument applied.", "attribute", name, "value", spec.Arguments[name].String())
	}

	for _, slot := range sortedKeys(spec.Inputs) {
		if err := c.SetInput(slot, spec.Inputs[slot]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
