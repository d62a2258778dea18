// Package config defines the format-agnostic model of a building file, the
// Loader interface implemented by the format adapters, and Apply, which turns
// a loaded model into live components.
//
// The `config.Model` is the single source of truth for the canvas and the
// application shell. Concrete loaders, such as for HCL and YAML, are provided
// in separate packages.
package config
