package yaml_adapter

import (
	"fmt"

	"github.com/vk/hvacgrid/internal/value"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Components []componentDoc      `yaml:"components"`
	Schemas    map[string][]string `yaml:"schemas"`
}

type componentDoc struct {
	Type      string              `yaml:"type"`
	Name      string              `yaml:"name"`
	Arguments map[string]Argument `yaml:"arguments"`
	Inputs    map[string]string   `yaml:"inputs"`
	Line      int                 `yaml:"-"`
}

var componentKeys = map[string]bool{"type": true, "name": true, "arguments": true, "inputs": true}

// UnmarshalYAML records the line of the component entry. Node.Decode does not
// inherit the decoder's KnownFields setting, so keys are checked here.
func (c *componentDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if key := node.Content[i]; !componentKeys[key.Value] {
				return fmt.Errorf("line %d: field %s not found in component", key.Line, key.Value)
			}
		}
	}
	type plain componentDoc
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = componentDoc(p)
	c.Line = node.Line
	return nil
}

// Argument is a numeric initial value: a number, a sequence of numbers or a
// sequence of equal-length sequences of numbers.
type Argument struct {
	Value value.Value
}

// UnmarshalYAML implements custom YAML unmarshaling for Argument.
func (a *Argument) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		f, err := number(node)
		if err != nil {
			return err
		}
		a.Value = value.Scalar(f)
		return nil

	case yaml.SequenceNode:
		if len(node.Content) == 0 || node.Content[0].Kind != yaml.SequenceNode {
			elems, err := numbers(node)
			if err != nil {
				return err
			}
			a.Value = value.Vector(elems)
			return nil
		}
		rows := make([][]float64, 0, len(node.Content))
		for _, rowNode := range node.Content {
			if rowNode.Kind != yaml.SequenceNode {
				return fmt.Errorf("line %d: expected a row sequence, got %s", rowNode.Line, kindName(rowNode.Kind))
			}
			row, err := numbers(rowNode)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		v, err := value.Matrix(rows)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		a.Value = v
		return nil

	default:
		return fmt.Errorf("line %d: expected a number or a sequence of numbers, got %s", node.Line, kindName(node.Kind))
	}
}

func numbers(seq *yaml.Node) ([]float64, error) {
	out := make([]float64, 0, len(seq.Content))
	for _, n := range seq.Content {
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: expected a number, got %s", n.Line, kindName(n.Kind))
		}
		f, err := number(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// number accepts plain YAML ints and floats written as decimal literals.
func number(n *yaml.Node) (float64, error) {
	if tag := n.ShortTag(); tag != "!!int" && tag != "!!float" {
		return 0, fmt.Errorf("line %d: expected a number, got %s %q", n.Line, tag, n.Value)
	}
	f, err := value.ParseNumber(n.Value)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return f, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
