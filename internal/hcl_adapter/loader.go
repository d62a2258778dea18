package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/hvacgrid/internal/config"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL building file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file reachable from paths and merges all component
// and schema blocks into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		fileModel, err := l.decodeFile(ctx, hclFile.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
	}

	logger.Debug("HCL loading complete.", "components", len(model.Components), "schemas", len(model.Schemas))
	return model, nil
}

// LoadBytes decodes a single in-memory HCL document. The filename is used in
// diagnostics only.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %w", filename, diags)
	}
	return l.decodeFile(ctx, hclFile.Body)
}

func (l *Loader) decodeFile(ctx context.Context, body hcl.Body) (*config.Model, error) {
	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	model := config.NewModel()
	for _, block := range content.Blocks {
		switch block.Type {
		case "component":
			var cb ComponentBody
			if diags := gohcl.DecodeBody(block.Body, nil, &cb); diags.HasErrors() {
				return nil, diags
			}
			spec, err := l.translateComponent(ctx, block, &cb)
			if err != nil {
				return nil, err
			}
			model.Components = append(model.Components, spec)

		case "schema":
			var sb SchemaBody
			if diags := gohcl.DecodeBody(block.Body, nil, &sb); diags.HasErrors() {
				return nil, diags
			}
			typeName := block.Labels[0]
			if _, exists := model.Schemas[typeName]; exists {
				return nil, fmt.Errorf("%s: schema for type '%s' is defined more than once", block.DefRange, typeName)
			}
			model.Schemas[typeName] = sb.Fields
		}
	}
	return model, nil
}
