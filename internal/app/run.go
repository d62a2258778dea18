package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/hvacgrid/internal/canvas"
	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/config"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/editor"
	"github.com/vk/hvacgrid/internal/form"
	"github.com/vk/hvacgrid/internal/hcl_adapter"
	"github.com/vk/hvacgrid/internal/value"
)

// ErrNotInteractive is returned when interactive mode runs without a terminal.
var ErrNotInteractive = errors.New("interactive mode requires a terminal on stdin")

const (
	layoutColumns = 4
	layoutDX      = 150
	layoutDY      = 100
)

// Run executes the main application logic based on the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.List {
		a.printRegistry()
		return nil
	}

	cv, err := a.buildCanvas(ctx)
	if err != nil {
		return err
	}

	item, err := a.selectItem(ctx, cv)
	if err != nil {
		return err
	}

	session, err := cv.EditProperties(ctx, item.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, form.Render(session))
	fmt.Fprintln(a.outW)

	if err := a.edit(ctx, session); err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Changes %s.\n\n", session.State())
	if session.State() == editor.StateCommitted {
		a.logDownstream(ctx, cv, item)
	}
	a.printComponent(item.Component)

	a.logger.Debug("App.Run method finished.", "state", session.State().String())
	return nil
}

// buildCanvas loads the building file, if any, places its components and
// drops the component requested with -new.
func (a *App) buildCanvas(ctx context.Context) (*canvas.Canvas, error) {
	logger := ctxlog.FromContext(ctx)
	cv := canvas.New(a.factory, a.registry)

	var comps []component.Component
	if a.config.BuildingPath != "" {
		model, err := a.loader.Load(ctx, a.config.BuildingPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load building: %w", err)
		}
		comps, err = config.Apply(ctx, model, a.factory, a.registry)
		if err != nil {
			return nil, fmt.Errorf("failed to apply building: %w", err)
		}
		logger.Info("Building loaded.", "path", a.config.BuildingPath, "components", len(comps))
	}

	for i, c := range comps {
		if _, err := cv.Place(ctx, c, layoutPosition(i)); err != nil {
			return nil, err
		}
	}
	if a.config.NewType != "" {
		if _, err := cv.Drop(ctx, a.config.NewType, layoutPosition(len(comps))); err != nil {
			return nil, err
		}
	}

	graph, err := cv.Topology(ctx)
	if err != nil {
		logger.Warn("Some component inputs are not connected.", "error", err)
	}
	if err := graph.DetectCycles(); err != nil {
		logger.Debug("Building contains a feedback loop.", "loop", err)
	}
	logger.Debug("Canvas ready.", "items", graph.Len())
	return cv, nil
}

// logDownstream reports the components that consume the edited one.
func (a *App) logDownstream(ctx context.Context, cv *canvas.Canvas, item canvas.Item) {
	logger := ctxlog.FromContext(ctx)
	down, err := cv.Downstream(ctx, item.ID)
	if err != nil {
		logger.Warn("Could not resolve downstream components.", "error", err)
		return
	}
	if len(down) == 0 {
		return
	}
	refs := make([]string, len(down))
	for i, it := range down {
		refs[i] = component.Ref(it.Component)
	}
	logger.Info("Edited component feeds downstream components.", "component", component.Ref(item.Component), "downstream", strings.Join(refs, ", "))
}

func layoutPosition(i int) canvas.Point {
	return canvas.Point{
		X: float64(i%layoutColumns) * layoutDX,
		Y: float64(i/layoutColumns) * layoutDY,
	}
}

func (a *App) selectItem(ctx context.Context, cv *canvas.Canvas) (canvas.Item, error) {
	items := cv.Items()
	switch {
	case a.config.Component != "":
		if _, _, err := component.ParseRef(a.config.Component); err != nil {
			return canvas.Item{}, err
		}
		it, ok := cv.Find(a.config.Component)
		if !ok {
			return canvas.Item{}, fmt.Errorf("component %s is not in the building", a.config.Component)
		}
		return it, nil
	case a.config.NewType != "":
		return items[len(items)-1], nil
	case len(items) == 0:
		return canvas.Item{}, errors.New("the building has no components")
	default:
		ctxlog.FromContext(ctx).Debug("No component selected, editing the first one.", "component", component.Ref(items[0].Component))
		return items[0], nil
	}
}

// edit drives the session to a terminal state.
func (a *App) edit(ctx context.Context, s *editor.Session) error {
	if a.config.Interactive {
		if !a.prompter.IsInteractive() {
			return ErrNotInteractive
		}
		outcome, err := a.prompter.Edit(ctx, s)
		if err != nil {
			return err
		}
		ctxlog.FromContext(ctx).Info("Interactive edit finished.", "outcome", outcome.String())
		return nil
	}

	for _, e := range a.config.Edits {
		pos, err := resolveEdit(s, e)
		if err != nil {
			return err
		}
		if err := s.SetText(pos, e.Text); err != nil {
			return err
		}
	}
	if a.config.Cancel {
		s.Discard(ctx)
		return nil
	}
	return s.Commit(ctx)
}

// resolveEdit maps an edit's indices onto a session position using the
// field's shape: none for scalars, one for vectors and two for matrices.
func resolveEdit(s *editor.Session, e Edit) (editor.Position, error) {
	g, ok := s.Group(e.Field)
	if !ok {
		return editor.Position{}, fmt.Errorf("%w: %s is not an editable field of %s", editor.ErrNoSuchField, e.Field, component.Ref(s.Component()))
	}
	want := map[value.Shape]int{value.ShapeScalar: 0, value.ShapeVector: 1, value.ShapeMatrix: 2}[g.Shape()]
	if len(e.Indices) != want {
		return editor.Position{}, fmt.Errorf("edit %s: %s is %s and needs %d index(es)", e, e.Field, g.Original().Dims(), want)
	}
	switch want {
	case 1:
		return editor.Index(e.Field, e.Indices[0]), nil
	case 2:
		return editor.Cell(e.Field, e.Indices[0], e.Indices[1]), nil
	default:
		return editor.At(e.Field), nil
	}
}

func (a *App) printRegistry() {
	for _, typeName := range a.registry.TypeNames() {
		fields, _ := a.registry.MutableFields(typeName)
		fmt.Fprintf(a.outW, "%s: %s\n", typeName, strings.Join(fields, ", "))
	}
}

func (a *App) printComponent(c component.Component) {
	if a.config.Output == "hcl" {
		a.outW.Write(hcl_adapter.Encode(c))
		return
	}
	fmt.Fprintln(a.outW, component.Ref(c))
	for _, attr := range c.Attributes() {
		v := attr.Get()
		suffix := ""
		if attr.ReadOnly {
			suffix = " (read-only)"
		}
		fmt.Fprintf(a.outW, "  %s = %s%s\n", attr.Name, v, suffix)
	}
}
