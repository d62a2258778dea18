package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BuildingPath string // .hcl/.yaml file or directory
	Component    string // "Type.name" to edit; empty selects the first one
	NewType      string // drop a fresh component of this type

	Edits       []Edit
	Cancel      bool
	Interactive bool
	List        bool
	Output      string // "text" or "hcl"

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.List {
		return &cfg, nil
	}
	if cfg.BuildingPath == "" && cfg.NewType == "" {
		return nil, errors.New("a building file or -new is required")
	}
	if cfg.Interactive && (len(cfg.Edits) > 0 || cfg.Cancel) {
		return nil, errors.New("-interactive cannot be combined with -set or -cancel")
	}
	if cfg.Component != "" && cfg.NewType != "" {
		return nil, errors.New("-component and -new select different components; use one")
	}
	switch cfg.Output {
	case "":
		cfg.Output = "text"
	case "text", "hcl":
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'text' or 'hcl'", cfg.Output)
	}
	return &cfg, nil
}

// Edit is one scripted text change: Field, Field[i] or Field[r][c] set to
// Text. Indices are resolved against the field's shape when applied.
type Edit struct {
	Field   string
	Indices []int
	Text    string
}

func (e Edit) String() string {
	var b strings.Builder
	b.WriteString(e.Field)
	for _, i := range e.Indices {
		fmt.Fprintf(&b, "[%d]", i)
	}
	b.WriteString("=")
	b.WriteString(e.Text)
	return b.String()
}

// ParseEdit parses "field=value", "field[i]=value" or "field[r][c]=value".
// The value is kept as text; it is parsed as a number only on commit.
func ParseEdit(s string) (Edit, error) {
	lhs, text, ok := strings.Cut(s, "=")
	if !ok {
		return Edit{}, fmt.Errorf("invalid edit %q: expected field=value", s)
	}
	lhs = strings.TrimSpace(lhs)

	field, rest, _ := strings.Cut(lhs, "[")
	if field == "" {
		return Edit{}, fmt.Errorf("invalid edit %q: missing field name", s)
	}
	e := Edit{Field: field, Text: text}
	if rest == "" {
		if strings.ContainsAny(lhs, "]") {
			return Edit{}, fmt.Errorf("invalid edit %q: unbalanced brackets", s)
		}
		return e, nil
	}

	for _, part := range strings.Split("["+rest, "[")[1:] {
		idx, ok := strings.CutSuffix(part, "]")
		if !ok {
			return Edit{}, fmt.Errorf("invalid edit %q: unbalanced brackets", s)
		}
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			return Edit{}, fmt.Errorf("invalid edit %q: index %q is not a non-negative integer", s, idx)
		}
		e.Indices = append(e.Indices, n)
	}
	if len(e.Indices) > 2 {
		return Edit{}, fmt.Errorf("invalid edit %q: at most two indices are allowed", s)
	}
	return e, nil
}
