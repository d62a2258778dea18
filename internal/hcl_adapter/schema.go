package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// rootSchema lists the top-level blocks a building file may contain. The
// block headers are read with Body.Content so that each block keeps its
// definition range for messages.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "component", LabelNames: []string{"type", "name"}},
		{Type: "schema", LabelNames: []string{"type"}},
	},
}

// ComponentBody is the body of a `component "Type" "name"` block.
type ComponentBody struct {
	Arguments *ArgumentsBlock   `hcl:"arguments,block"`
	Inputs    map[string]string `hcl:"inputs,optional"`
}

// ArgumentsBlock holds attribute initial values as free-form expressions.
type ArgumentsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// SchemaBody is the body of a `schema "Type"` block.
type SchemaBody struct {
	Fields []string `hcl:"fields"`
}
