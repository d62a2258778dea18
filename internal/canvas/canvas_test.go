package canvas_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/hvacgrid/internal/canvas"
	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/editor"
	"github.com/vk/hvacgrid/internal/registry"
)

func newCanvas() *canvas.Canvas {
	return canvas.New(component.DefaultFactory(), registry.Default())
}

func TestDrop(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	c := newCanvas()

	a, err := c.Drop(ctx, "Envelope", canvas.Point{X: 10, Y: 20})
	require.NoError(t, err)
	b, err := c.Drop(ctx, "Envelope", canvas.Point{X: 200, Y: 20})
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, "envelope_1", a.Component.Name())
	require.Equal(t, "envelope_2", b.Component.Name())
	require.Equal(t, canvas.Point{X: 10, Y: 20}, a.Pos)

	_, err = c.Drop(ctx, "Chiller", canvas.Point{})
	require.True(t, errors.Is(err, component.ErrUnknownType))
	require.Len(t, c.Items(), 2)
}

func TestPlace(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	c := newCanvas()

	_, err := c.Place(ctx, component.NewRTU("rtu_1"), canvas.Point{})
	require.NoError(t, err)
	_, err = c.Place(ctx, component.NewRTU("rtu_1"), canvas.Point{X: 300})
	require.ErrorContains(t, err, "RTU.rtu_1 is already on the canvas")

	dropped, err := c.Drop(ctx, "RTU", canvas.Point{})
	require.NoError(t, err)
	require.Equal(t, "rtu_2", dropped.Component.Name(), "generated names skip placed components")

	found, ok := c.Find("RTU.rtu_2")
	require.True(t, ok)
	require.Equal(t, dropped.ID, found.ID)
}

func TestMoveAndHitTest(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	c := newCanvas()

	bottom, err := c.Drop(ctx, "RTU", canvas.Point{X: 0, Y: 0})
	require.NoError(t, err)
	top, err := c.Drop(ctx, "VAVBox", canvas.Point{X: 50, Y: 25})
	require.NoError(t, err)

	hit, ok := c.ItemAt(canvas.Point{X: 60, Y: 30})
	require.True(t, ok)
	require.Equal(t, top.ID, hit.ID, "later items are on top")

	hit, ok = c.ItemAt(canvas.Point{X: 10, Y: 10})
	require.True(t, ok)
	require.Equal(t, bottom.ID, hit.ID)

	_, ok = c.ItemAt(canvas.Point{X: 100, Y: 10})
	require.False(t, ok, "right edge is outside the item")

	require.NoError(t, c.Move(top.ID, canvas.Point{X: 500, Y: 500}))
	moved, ok := c.Item(top.ID)
	require.True(t, ok)
	require.Equal(t, canvas.Point{X: 500, Y: 500}, moved.Pos)

	require.True(t, errors.Is(c.Move("missing", canvas.Point{}), canvas.ErrNoSuchItem))
}

func TestZoom(t *testing.T) {
	t.Parallel()

	c := newCanvas()
	require.Equal(t, 1.0, c.ZoomFactor())

	steps := 0
	for c.Zoom(1) {
		steps++
	}
	require.Equal(t, 16, steps)
	require.LessOrEqual(t, c.ZoomFactor(), canvas.MaxZoom)
	require.Greater(t, c.ZoomFactor()*canvas.ZoomStep, canvas.MaxZoom)

	for c.Zoom(-1) {
	}
	require.GreaterOrEqual(t, c.ZoomFactor(), canvas.MinZoom)
	require.Less(t, c.ZoomFactor()/canvas.ZoomStep, canvas.MinZoom)

	require.True(t, c.Zoom(1))
}

func TestGridLines(t *testing.T) {
	t.Parallel()

	lines := canvas.GridLines()
	require.Len(t, lines, 160)
	require.Equal(t, canvas.Line{From: canvas.Point{X: -2000, Y: -2000}, To: canvas.Point{X: -2000, Y: 2000}}, lines[0])
	require.Equal(t, canvas.Point{X: 1950, Y: -2000}, lines[79].From)
	require.Equal(t, canvas.Line{From: canvas.Point{X: -2000, Y: -2000}, To: canvas.Point{X: 2000, Y: -2000}}, lines[80])
	require.Equal(t, canvas.Point{X: 2000, Y: 1950}, lines[159].To)
}

func TestLinks(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	c := newCanvas()

	env := component.NewEnvelope("zone_a")
	require.NoError(t, env.SetInput("solar", "SolarGains.south"))
	require.NoError(t, env.SetInput("hvac", "RTU.roof"))
	vav := component.NewVAVBox("v1")
	require.NoError(t, vav.SetInput("supply", "RTU.missing"))

	envItem, err := c.Place(ctx, env, canvas.Point{})
	require.NoError(t, err)
	solarItem, err := c.Place(ctx, component.NewSolarGains("south"), canvas.Point{X: 200})
	require.NoError(t, err)
	_, err = c.Place(ctx, component.NewRTU("roof"), canvas.Point{X: 400})
	require.NoError(t, err)
	_, err = c.Place(ctx, vav, canvas.Point{X: 600})
	require.NoError(t, err)

	links, err := c.Links(ctx)
	require.Equal(t, []canvas.Link{{From: solarItem.ID, To: envItem.ID, Slot: "solar"}}, links)
	require.Error(t, err)
	require.Contains(t, err.Error(), `Envelope.zone_a input "hvac" expects a VAVBox, got RTU.roof`)
	require.Contains(t, err.Error(), `VAVBox.v1 input "supply" refers to RTU.missing`)
}

func TestTopology(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	c := newCanvas()

	rtu := component.NewRTU("roof")
	require.NoError(t, rtu.SetInput("zone_temps", "Envelope.zone_a"))
	vav := component.NewVAVBox("v1")
	require.NoError(t, vav.SetInput("supply", "RTU.roof"))
	env := component.NewEnvelope("zone_a")
	require.NoError(t, env.SetInput("hvac", "VAVBox.v1"))

	rtuItem, err := c.Place(ctx, rtu, canvas.Point{})
	require.NoError(t, err)
	vavItem, err := c.Place(ctx, vav, canvas.Point{X: 200})
	require.NoError(t, err)
	envItem, err := c.Place(ctx, env, canvas.Point{X: 400})
	require.NoError(t, err)
	solarItem, err := c.Place(ctx, component.NewSolarGains("south"), canvas.Point{X: 600})
	require.NoError(t, err)

	g, err := c.Topology(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, g.Len())
	require.ErrorContains(t, g.DetectCycles(), "cycle detected")

	deps, err := g.Dependencies(vavItem.ID)
	require.NoError(t, err)
	require.Equal(t, []string{rtuItem.ID}, deps)

	down, err := c.Downstream(ctx, rtuItem.ID)
	require.NoError(t, err)
	require.Len(t, down, 3)
	require.Equal(t, vavItem.ID, down[0].ID)
	require.Equal(t, envItem.ID, down[1].ID)
	require.Equal(t, rtuItem.ID, down[2].ID)

	down, err = c.Downstream(ctx, solarItem.ID)
	require.NoError(t, err)
	require.Empty(t, down)

	_, err = c.Downstream(ctx, "missing")
	require.True(t, errors.Is(err, canvas.ErrNoSuchItem))
}

func TestEditProperties(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	c := newCanvas()

	env, err := c.Drop(ctx, "Envelope", canvas.Point{})
	require.NoError(t, err)
	s, err := c.EditProperties(ctx, env.ID)
	require.NoError(t, err)
	require.NoError(t, s.SetText(editor.Index("R_env", 1), "0.20"))
	require.NoError(t, s.Commit(ctx))
	require.Equal(t, []float64{0.1, 0.2}, env.Component.(*component.Envelope).REnv.Data())

	node, err := c.Drop(ctx, "BuildingNode", canvas.Point{})
	require.NoError(t, err)
	_, err = c.EditProperties(ctx, node.ID)
	require.True(t, errors.Is(err, registry.ErrUnknownComponentType))

	_, err = c.EditProperties(ctx, "missing")
	require.True(t, errors.Is(err, canvas.ErrNoSuchItem))
}
