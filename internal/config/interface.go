package config

import (
	"context"
)

// Loader is the interface for a format-specific building file loader.
type Loader interface {
	// Load reads every building file reachable from the given paths and
	// translates them into the format-agnostic model. Paths that do not exist
	// are skipped.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// MultiLoader runs several loaders over the same paths and merges their
// models in order.
type MultiLoader []Loader

// Load implements Loader.
func (m MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	merged := NewModel()
	for _, l := range m {
		model, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(model); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
