package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/config"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/registry"
	"github.com/vk/hvacgrid/internal/value"
)

func TestApply(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())

	t.Run("Success: arguments, inputs and schemas", func(t *testing.T) {
		t.Parallel()
		model := config.NewModel()
		model.Components = []*config.ComponentSpec{
			{
				Type: "Envelope",
				Name: "zone_a",
				Arguments: map[string]value.Value{
					"R_env":     value.Vector([]float64{0.2, 0.3}),
					"adjacency": value.MustMatrix([][]float64{{1, 0.5}, {0.5, 1}}),
				},
				Inputs: map[string]string{"solar": "SolarGains.south"},
				Source: "a.hcl:1,1",
			},
			{Type: "SolarGains", Name: "south", Source: "a.hcl:9,1"},
		}
		model.Schemas["BuildingNode"] = []string{"floor_area"}

		reg := registry.Default()
		comps, err := config.Apply(ctx, model, component.DefaultFactory(), reg)
		require.NoError(t, err)
		require.Len(t, comps, 2)

		env := comps[0].(*component.Envelope)
		require.Equal(t, []float64{0.2, 0.3}, env.REnv.Data())
		require.Equal(t, [][]float64{{1, 0.5}, {0.5, 1}}, env.Adjacency)
		require.Equal(t, map[string]string{"solar": "SolarGains.south"}, env.Inputs())
		require.Equal(t, "south", comps[1].Name())

		fields, err := reg.MutableFields("BuildingNode")
		require.NoError(t, err)
		require.Equal(t, []string{"floor_area"}, fields)
	})

	t.Run("Failure: shape change", func(t *testing.T) {
		t.Parallel()
		model := config.NewModel()
		model.Components = []*config.ComponentSpec{{
			Type:      "Envelope",
			Name:      "zone_a",
			Arguments: map[string]value.Value{"R_env": value.Vector([]float64{1, 2, 3})},
			Source:    "a.hcl:1,1",
		}}
		_, err := config.Apply(ctx, model, component.DefaultFactory(), registry.Default())
		require.True(t, errors.Is(err, component.ErrShapeMismatch))
		require.Contains(t, err.Error(), "a.hcl:1,1")
	})

	t.Run("Failure: duplicate reference", func(t *testing.T) {
		t.Parallel()
		model := config.NewModel()
		model.Components = []*config.ComponentSpec{
			{Type: "RTU", Name: "roof", Source: "a.hcl:1,1"},
			{Type: "RTU", Name: "roof", Source: "b.hcl:3,1"},
		}
		_, err := config.Apply(ctx, model, component.DefaultFactory(), registry.Default())
		require.Error(t, err)
		require.Contains(t, err.Error(), "RTU.roof is already defined at a.hcl:1,1")
	})

	t.Run("Failure: unknown type", func(t *testing.T) {
		t.Parallel()
		model := config.NewModel()
		model.Components = []*config.ComponentSpec{{Type: "Chiller", Name: "c1"}}
		_, err := config.Apply(ctx, model, component.DefaultFactory(), registry.Default())
		require.True(t, errors.Is(err, component.ErrUnknownType))
	})

	t.Run("Failure: unknown attribute and input", func(t *testing.T) {
		t.Parallel()
		model := config.NewModel()
		model.Components = []*config.ComponentSpec{{
			Type:      "RTU",
			Name:      "roof",
			Arguments: map[string]value.Value{"U_value": value.Scalar(1)},
		}}
		_, err := config.Apply(ctx, model, component.DefaultFactory(), registry.Default())
		require.ErrorContains(t, err, `has no attribute "U_value"`)

		model.Components[0].Arguments = nil
		model.Components[0].Inputs = map[string]string{"exhaust": "Fan.f1"}
		_, err = config.Apply(ctx, model, component.DefaultFactory(), registry.Default())
		require.True(t, errors.Is(err, component.ErrUnknownInput))
	})

	t.Run("Failure: built-in schema redefined", func(t *testing.T) {
		t.Parallel()
		model := config.NewModel()
		model.Schemas["RTU"] = []string{"cooling_COP"}
		_, err := config.Apply(ctx, model, component.DefaultFactory(), registry.Default())
		require.ErrorContains(t, err, "cannot be redefined")
	})

	t.Run("Failure: schema lists unusable fields", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		model := config.NewModel()
		model.Schemas["BuildingNode"] = []string{"floor_area", "ceiling_height"}
		model.Schemas["Chiller"] = []string{"cop"}
		reg := registry.Default()

		// --- Act ---
		_, err := config.Apply(ctx, model, component.DefaultFactory(), reg)

		// --- Assert ---
		require.ErrorContains(t, err, `schema "BuildingNode"`)
		require.ErrorContains(t, err, "field 'ceiling_height' which is not an attribute")
		require.False(t, reg.Has("BuildingNode"), "a rejected schema must not reach the registry")
	})

	t.Run("Failure: schema for a type the factory cannot build", func(t *testing.T) {
		t.Parallel()
		model := config.NewModel()
		model.Schemas["Chiller"] = []string{"cop"}
		_, err := config.Apply(ctx, model, component.DefaultFactory(), registry.Default())
		require.ErrorContains(t, err, `schema "Chiller"`)
		require.ErrorContains(t, err, "no component type is registered")
	})
}

type staticLoader struct {
	model *config.Model
	err   error
}

func (s staticLoader) Load(context.Context, ...string) (*config.Model, error) {
	return s.model, s.err
}

func TestMultiLoader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := config.NewModel()
	a.Components = []*config.ComponentSpec{{Type: "RTU", Name: "roof"}}
	a.Schemas["BuildingNode"] = []string{"floor_area"}
	b := config.NewModel()
	b.Components = []*config.ComponentSpec{{Type: "VAVBox", Name: "v1"}}

	merged, err := config.MultiLoader{staticLoader{model: a}, staticLoader{model: b}}.Load(ctx, "x")
	require.NoError(t, err)
	require.Len(t, merged.Components, 2)
	spec, ok := merged.Find("VAVBox.v1")
	require.True(t, ok)
	require.Equal(t, "v1", spec.Name)
	_, ok = merged.Find("VAVBox.v2")
	require.False(t, ok)

	_, err = config.MultiLoader{staticLoader{model: a}, staticLoader{model: a}}.Load(ctx, "x")
	require.ErrorContains(t, err, "defined more than once")

	_, err = config.MultiLoader{staticLoader{err: errors.New("boom")}}.Load(ctx, "x")
	require.ErrorContains(t, err, "boom")
}
