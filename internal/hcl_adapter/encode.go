package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders components as `component` blocks that Load reads back.
// Only writable attributes are written, in declaration order.
func Encode(comps ...component.Component) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	for i, c := range comps {
		if i > 0 {
			root.AppendNewline()
		}
		block := root.AppendNewBlock("component", []string{c.TypeName(), c.Name()})
		args := block.Body().AppendNewBlock("arguments", nil).Body()
		for _, a := range c.Attributes() {
			if a.ReadOnly {
				continue
			}
			args.SetAttributeValue(a.Name, value.ToCty(a.Get()))
		}

		inputs := c.Inputs()
		if len(inputs) == 0 {
			continue
		}
		attrs := make(map[string]cty.Value, len(inputs))
		for slot, ref := range inputs {
			attrs[slot] = cty.StringVal(ref)
		}
		block.Body().SetAttributeValue("inputs", cty.ObjectVal(attrs))
	}
	return hclwrite.Format(f.Bytes())
}
