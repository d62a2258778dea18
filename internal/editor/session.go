package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/registry"
	"github.com/vk/hvacgrid/internal/value"
)

// State is the lifecycle state of a session.
type State int

const (
	StateOpened State = iota
	StateCommitted
	StateDiscarded
)

func (s State) String() string {
	switch s {
	case StateOpened:
		return "opened"
	case StateCommitted:
		return "committed"
	case StateDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// FieldGroup is the set of text fields for one attribute, laid out like the
// attribute's value: 1x1 for a scalar, 1xN for a vector, RxC for a matrix.
type FieldGroup struct {
	name     string
	original value.Value
	cells    [][]string
}

// Name returns the attribute name.
func (g *FieldGroup) Name() string { return g.name }

// Shape returns the shape captured when the session was opened.
func (g *FieldGroup) Shape() value.Shape { return g.original.Shape }

// Container returns the container kind captured when the session was opened.
func (g *FieldGroup) Container() value.Container { return g.original.Container }

// Rows returns the number of rows of text fields.
func (g *FieldGroup) Rows() int { return g.original.Rows }

// Cols returns the number of text fields per row.
func (g *FieldGroup) Cols() int { return g.original.Cols }

// Len returns the total number of text fields.
func (g *FieldGroup) Len() int { return g.original.Rows * g.original.Cols }

// Text returns the current text at row r, column c.
func (g *FieldGroup) Text(r, c int) string { return g.cells[r][c] }

// Label returns the display label of the field at row r, column c.
func (g *FieldGroup) Label(r, c int) string {
	return Position{Field: g.name, Row: r, Col: c}.label(g.original.Shape)
}

// Original returns the value read when the session was opened.
func (g *FieldGroup) Original() value.Value { return g.original.Clone() }

// Changed reports whether any text differs from its value at open time.
func (g *FieldGroup) Changed() bool {
	for r, row := range g.cells {
		for c, text := range row {
			if text != value.FormatNumber(g.original.At(r, c)) {
				return true
			}
		}
	}
	return false
}

func (g *FieldGroup) parse() (value.Value, error) {
	v := value.Value{
		Shape:     g.original.Shape,
		Container: g.original.Container,
		Rows:      g.original.Rows,
		Cols:      g.original.Cols,
		Data:      make([]float64, 0, g.Len()),
	}
	for r, row := range g.cells {
		for c, text := range row {
			f, err := value.ParseNumber(text)
			if err != nil {
				return value.Value{}, &InvalidNumericInputError{
					Field: g.name,
					Shape: g.original.Shape,
					Row:   r,
					Col:   c,
					Text:  text,
					Err:   err,
				}
			}
			v.Data = append(v.Data, f)
		}
	}
	return v, nil
}

// Session is the editable state of one property dialog.
type Session struct {
	id        string
	component component.Component
	attrs     []component.Attribute
	groups    []*FieldGroup
	state     State
}

// Open builds an edit session for c. The registered fields of c's type are
// read once, in registry order; the component is not modified.
func Open(ctx context.Context, reg *registry.Registry, c component.Component) (*Session, error) {
	if c == nil {
		return nil, errors.New("open properties: component is nil")
	}
	logger := ctxlog.FromContext(ctx).With("component", component.Ref(c))

	fields, err := reg.MutableFields(c.TypeName())
	if err != nil {
		logger.Debug("No editable fields registered for component type.", "error", err)
		return nil, fmt.Errorf("open properties of %s: %w", component.Ref(c), err)
	}

	s := &Session{
		id:        uuid.New().String(),
		component: c,
		attrs:     make([]component.Attribute, 0, len(fields)),
		groups:    make([]*FieldGroup, 0, len(fields)),
		state:     StateOpened,
	}

	for _, field := range fields {
		attr, ok := component.Lookup(c, field)
		if !ok || attr.ReadOnly {
			return nil, &MissingAttributeError{Type: c.TypeName(), Field: field, ReadOnly: ok}
		}

		v := attr.Get()
		g := &FieldGroup{name: field, original: v.Clone(), cells: make([][]string, v.Rows)}
		for r := range g.cells {
			g.cells[r] = make([]string, v.Cols)
			for col := range g.cells[r] {
				g.cells[r][col] = value.FormatNumber(v.At(r, col))
			}
		}
		s.attrs = append(s.attrs, attr)
		s.groups = append(s.groups, g)
		logger.Debug("Field group built.", "field", field, "dims", v.Dims(), "container", v.Container.String())
	}

	logger.Debug("Edit session opened.", "session", s.id, "fields", len(s.groups))
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Component returns the component being edited.
func (s *Session) Component() component.Component { return s.component }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Groups returns the field groups in registry order.
func (s *Session) Groups() []*FieldGroup {
	out := make([]*FieldGroup, len(s.groups))
	copy(out, s.groups)
	return out
}

// Group returns the field group of the named attribute.
func (s *Session) Group(field string) (*FieldGroup, bool) {
	for _, g := range s.groups {
		if g.name == field {
			return g, true
		}
	}
	return nil, false
}

// Text returns the current text at pos.
func (s *Session) Text(pos Position) (string, error) {
	g, err := s.locate(pos)
	if err != nil {
		return "", err
	}
	return g.cells[pos.Row][pos.Col], nil
}

// SetText replaces the text at pos. No parsing happens until Commit.
func (s *Session) SetText(pos Position, text string) error {
	if s.state != StateOpened {
		return fmt.Errorf("set %s: %w (%s)", pos.Field, ErrSessionClosed, s.state)
	}
	g, err := s.locate(pos)
	if err != nil {
		return err
	}
	g.cells[pos.Row][pos.Col] = text
	return nil
}

func (s *Session) locate(pos Position) (*FieldGroup, error) {
	g, ok := s.Group(pos.Field)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not editable", ErrNoSuchField, pos.Field)
	}
	if pos.Row < 0 || pos.Row >= g.Rows() || pos.Col < 0 || pos.Col >= g.Cols() {
		// A row index on a vector, or any index on a scalar, is only visible
		// in the two-index form.
		shape := g.Shape()
		if pos.Row != 0 || (shape == value.ShapeScalar && pos.Col != 0) {
			shape = value.ShapeMatrix
		}
		return nil, fmt.Errorf("%w: %s is outside %s", ErrNoSuchField, pos.label(shape), g.original.Dims())
	}
	return g, nil
}

// Validate parses every text field without writing anything. It returns the
// first invalid field in registry, row and column order.
func (s *Session) Validate() error {
	_, err := s.parseAll()
	return err
}

func (s *Session) parseAll() ([]value.Value, error) {
	vals := make([]value.Value, len(s.groups))
	for i, g := range s.groups {
		v, err := g.parse()
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Commit parses every text field and, only if all of them are valid, writes
// every attribute. On an invalid field it returns *InvalidNumericInputError,
// writes nothing and leaves the session open.
func (s *Session) Commit(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", component.Ref(s.component), "session", s.id)
	if s.state != StateOpened {
		return fmt.Errorf("commit: %w (%s)", ErrSessionClosed, s.state)
	}

	vals, err := s.parseAll()
	if err != nil {
		logger.Debug("Commit rejected, session stays open.", "error", err)
		return err
	}

	for i, attr := range s.attrs {
		if err := attr.Set(vals[i]); err != nil {
			s.rollback(ctx, i)
			return fmt.Errorf("commit %s: %w", attr.Name, err)
		}
	}

	s.state = StateCommitted
	logger.Debug("Edit session committed.", "fields", len(s.attrs))
	return nil
}

// rollback restores the first n attributes to their values at open time.
func (s *Session) rollback(ctx context.Context, n int) {
	logger := ctxlog.FromContext(ctx)
	for i := 0; i < n; i++ {
		if err := s.attrs[i].Set(s.groups[i].original); err != nil {
			logger.Error("Failed to restore attribute after aborted commit.", "field", s.attrs[i].Name, "error", err)
		}
	}
}

// Discard closes the session without writing anything.
func (s *Session) Discard(ctx context.Context) {
	if s.state != StateOpened {
		return
	}
	s.state = StateDiscarded
	ctxlog.FromContext(ctx).Debug("Edit session discarded.", "component", component.Ref(s.component), "session", s.id)
}
