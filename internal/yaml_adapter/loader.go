package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/hvacgrid/internal/config"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/fsutil"
	"github.com/vk/hvacgrid/internal/value"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML building file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .yaml and .yml file reachable from paths and merges them
// into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		fileModel, err := l.LoadBytes(ctx, data, file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("in YAML file %s: %w", file, err)
		}
	}

	logger.Debug("YAML loading complete.", "components", len(model.Components), "schemas", len(model.Schemas))
	return model, nil
}

// LoadBytes decodes a single in-memory YAML document. Unknown keys are
// rejected. The filename is used in messages only.
func (l *Loader) LoadBytes(ctx context.Context, data []byte, filename string) (*config.Model, error) {
	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	model := config.NewModel()
	for typeName, fields := range root.Schemas {
		model.Schemas[typeName] = fields
	}
	for i, doc := range root.Components {
		if doc.Type == "" || doc.Name == "" {
			return nil, fmt.Errorf("%s:%d: component %d needs both type and name", filename, doc.Line, i)
		}
		spec := &config.ComponentSpec{
			Type:      doc.Type,
			Name:      doc.Name,
			Arguments: make(map[string]value.Value, len(doc.Arguments)),
			Inputs:    doc.Inputs,
			Source:    fmt.Sprintf("%s:%d", filename, doc.Line),
		}
		if spec.Inputs == nil {
			spec.Inputs = make(map[string]string)
		}
		for name, arg := range doc.Arguments {
			spec.Arguments[name] = arg.Value
		}
		model.Components = append(model.Components, spec)
	}

	ctxlog.FromContext(ctx).Debug("YAML document decoded.", "file", filename, "components", len(model.Components))
	return model, nil
}
