// This file translates decoded HCL blocks into the format-agnostic
// configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/hvacgrid/internal/config"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/value"
)

// translateComponent converts a component block into the agnostic model.
// Argument expressions are evaluated without variables or functions, so
// only literal numbers, lists and nested lists are accepted.
func (l *Loader) translateComponent(ctx context.Context, block *hcl.Block, cb *ComponentBody) (*config.ComponentSpec, error) {
	logger := ctxlog.FromContext(ctx).With("component_type", block.Labels[0], "component_name", block.Labels[1])
	logger.Debug("Translating HCL component to internal config model.")

	spec := &config.ComponentSpec{
		Type:      block.Labels[0],
		Name:      block.Labels[1],
		Arguments: make(map[string]value.Value),
		Inputs:    cb.Inputs,
		Source:    block.DefRange.String(),
	}
	if spec.Inputs == nil {
		spec.Inputs = make(map[string]string)
	}

	args, diags := extractBodyAttributes(cb.Arguments)
	if diags.HasErrors() {
		return nil, fmt.Errorf("arguments of component %s: %w", spec.Ref(), diags)
	}
	for name, expr := range args {
		ctyVal, diags := expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for argument '%s' in component %s: %w", name, spec.Ref(), diags)
		}
		v, err := value.FromCty(ctyVal)
		if err != nil {
			return nil, fmt.Errorf("%s: argument '%s' in component %s: %w", expr.Range(), name, spec.Ref(), err)
		}
		logger.Debug("Argument decoded.", "argument", name, "dims", v.Dims())
		spec.Arguments[name] = v
	}
	return spec, nil
}

// extractBodyAttributes converts an arguments block into a map of expressions.
func extractBodyAttributes(b *ArgumentsBlock) (map[string]hcl.Expression, hcl.Diagnostics) {
	if b == nil || b.Body == nil {
		return nil, nil
	}
	attrs, diags := b.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	exprMap := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap, nil
}
