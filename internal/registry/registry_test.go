package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/registry"
)

func TestMutableFields_DefaultTable(t *testing.T) {
	t.Parallel()

	reg := registry.Default()
	cases := map[string][]string{
		"RTU":        {"cooling_COP", "heating_efficiency", "max_airflow", "min_oa_fraction", "supply_air_temp", "fan_power_coeffs"},
		"VAVBox":     {"max_airflow", "min_flow_fraction", "reheat_capacity", "damper_gains"},
		"Envelope":   {"R_env", "C_env", "R_internal", "adjacency"},
		"SolarGains": {"window_area", "shgc", "orientation_factors", "shading_matrix"},
	}
	for typeName, want := range cases {
		got, err := reg.MutableFields(typeName)
		require.NoError(t, err)
		require.Equal(t, want, got, typeName)
	}
	require.Equal(t, []string{"Envelope", "RTU", "SolarGains", "VAVBox"}, reg.TypeNames())
}

func TestMutableFields_UnknownType(t *testing.T) {
	t.Parallel()

	reg := registry.Default()
	for _, typeName := range []string{"BuildingNode", "", "rtu"} {
		fields, err := reg.MutableFields(typeName)
		require.Nil(t, fields)
		require.True(t, errors.Is(err, registry.ErrUnknownComponentType), "type %q", typeName)
	}
}

func TestMutableFields_ReturnsCopy(t *testing.T) {
	t.Parallel()

	reg := registry.Default()
	fields, err := reg.MutableFields("Envelope")
	require.NoError(t, err)
	fields[0] = "mutated"

	again, err := reg.MutableFields("Envelope")
	require.NoError(t, err)
	require.Equal(t, "R_env", again[0])
}

func TestRegister_Panics(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Register("X", []string{"a"})
	require.Panics(t, func() { reg.Register("X", []string{"b"}) })
	require.Panics(t, func() { reg.Register("Y", []string{"a", "a"}) })
}

func TestExtend(t *testing.T) {
	t.Parallel()

	reg := registry.Default()
	require.NoError(t, reg.Extend("BuildingNode", []string{"floor_area"}))
	fields, err := reg.MutableFields("BuildingNode")
	require.NoError(t, err)
	require.Equal(t, []string{"floor_area"}, fields)

	err = reg.Extend("Envelope", []string{"R_env"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot be redefined")

	require.Error(t, reg.Extend("BuildingNode", []string{"timestep"}), "second definition")
	require.Error(t, reg.Extend("", []string{"a"}))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())

	t.Run("Success: default table matches default components", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, registry.Default().Validate(ctx, component.DefaultFactory()))
	})

	t.Run("Failure: mismatches are aggregated", func(t *testing.T) {
		t.Parallel()
		reg := registry.New()
		reg.Register("Envelope", []string{"R_env", "U_value", "n_zones"})
		reg.Register("Chiller", []string{"cop"})

		err := reg.Validate(ctx, component.DefaultFactory())
		require.Error(t, err)
		msg := err.Error()
		require.Contains(t, msg, "registry validation failed")
		require.Contains(t, msg, "field 'U_value' which is not an attribute")
		require.Contains(t, msg, "field 'n_zones' which is read-only")
		require.Contains(t, msg, "type 'Chiller'")
	})
}

func TestCheckFields(t *testing.T) {
	t.Parallel()

	factory := component.DefaultFactory()

	require.NoError(t, registry.CheckFields(factory, "BuildingNode", []string{"floor_area", "timestep"}))

	err := registry.CheckFields(factory, "Envelope", []string{"R_env", "n_zones", "U_value"})
	require.ErrorContains(t, err, "field 'n_zones' which is read-only")
	require.ErrorContains(t, err, "field 'U_value' which is not an attribute")

	require.ErrorContains(t, registry.CheckFields(factory, "Chiller", nil), "type 'Chiller'")
}
