package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/hvacgrid/internal/app"
	"github.com/vk/hvacgrid/internal/config"
	"github.com/vk/hvacgrid/internal/editor"
	"github.com/vk/hvacgrid/internal/form"
	"github.com/vk/hvacgrid/internal/hcl_adapter"
	"github.com/vk/hvacgrid/internal/registry"
	"github.com/vk/hvacgrid/internal/testutil"
	"github.com/vk/hvacgrid/internal/yaml_adapter"
)

const buildingHCL = `
component "Envelope" "zone_a" {
  arguments {
    R_env = [0.1, 0.12]
  }
  inputs = {
    solar = "SolarGains.south"
  }
}

component "SolarGains" "south" {}

component "BuildingNode" "main" {
  inputs = {
    envelope = "Envelope.zone_a"
  }
}
`

func loader() config.Loader {
	return config.MultiLoader{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()}
}

func TestRun_ScriptedVectorEdit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := &app.Config{
		BuildingPath: testutil.WriteFile(t, "main.hcl", buildingHCL),
		Component:    "Envelope.zone_a",
		Edits:        []app.Edit{{Field: "R_env", Indices: []int{1}, Text: "0.20"}},
		Output:       "text",
	}
	a, out, logs := app.SetupAppTest(t, cfg, loader())

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Properties: Envelope.zone_a")
	require.Contains(t, out.String(), "Changes committed.")
	require.Contains(t, out.String(), "R_env = [0.1, 0.2]")
	require.Contains(t, out.String(), "n_zones = 2 (read-only)")
	require.Contains(t, logs.String(), "Edit session committed.")
	require.Contains(t, logs.String(), "downstream=BuildingNode.main")
}

func TestRun_ScriptedMatrixEditFromYAML(t *testing.T) {
	t.Parallel()

	building := testutil.WriteFile(t, "b.yaml", "components:\n  - {type: Envelope, name: zone_a}\n")
	cfg := &app.Config{
		BuildingPath: building,
		Edits:        []app.Edit{{Field: "adjacency", Indices: []int{0, 1}, Text: "0.5"}},
		Output:       "hcl",
	}
	a, out, _ := app.SetupAppTest(t, cfg, loader())

	require.NoError(t, a.Run(context.Background()))
	require.Contains(t, out.String(), `component "Envelope" "zone_a"`)
	require.Contains(t, out.String(), "[[1, 0.5], [0, 1]]")
}

func TestRun_InvalidInput(t *testing.T) {
	t.Parallel()

	cfg := &app.Config{
		NewType: "RTU",
		Edits:   []app.Edit{{Field: "cooling_COP", Text: "abc"}},
		Output:  "text",
	}
	a, out, _ := app.SetupAppTest(t, cfg, loader())

	err := a.Run(context.Background())
	var invalid *editor.InvalidNumericInputError
	require.True(t, errors.As(err, &invalid))
	require.NotContains(t, out.String(), "Changes committed.")
}

func TestRun_Cancel(t *testing.T) {
	t.Parallel()

	cfg := &app.Config{
		NewType: "SolarGains",
		Edits:   []app.Edit{{Field: "shgc", Text: "0.9"}},
		Cancel:  true,
		Output:  "text",
	}
	a, out, _ := app.SetupAppTest(t, cfg, loader())

	require.NoError(t, a.Run(context.Background()))
	require.Contains(t, out.String(), "Changes discarded.")
	require.Contains(t, out.String(), "shgc = 0.4")
}

func TestRun_UnknownComponentType(t *testing.T) {
	t.Parallel()

	cfg := &app.Config{
		BuildingPath: testutil.WriteFile(t, "main.hcl", buildingHCL),
		Component:    "BuildingNode.main",
		Output:       "text",
	}
	a, out, _ := app.SetupAppTest(t, cfg, loader())

	err := a.Run(context.Background())
	require.True(t, errors.Is(err, registry.ErrUnknownComponentType))
	require.NotContains(t, out.String(), "Properties:")
}

func TestRun_EditErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		cfg     app.Config
		wantErr string
	}{
		{
			name:    "missing component",
			cfg:     app.Config{NewType: "RTU", Edits: []app.Edit{{Field: "U_value", Text: "1"}}},
			wantErr: "U_value is not an editable field of RTU.rtu_1",
		},
		{
			name:    "field of another type",
			cfg:     app.Config{NewType: "RTU", Edits: []app.Edit{{Field: "shgc", Text: "1"}}},
			wantErr: "not an editable field",
		},
		{
			name:    "wrong index count",
			cfg:     app.Config{NewType: "Envelope", Edits: []app.Edit{{Field: "adjacency", Indices: []int{1}, Text: "1"}}},
			wantErr: "adjacency is matrix[2x2] and needs 2 index(es)",
		},
		{
			name:    "out of range",
			cfg:     app.Config{NewType: "Envelope", Edits: []app.Edit{{Field: "R_env", Indices: []int{5}, Text: "1"}}},
			wantErr: "no such text field",
		},
		{
			name:    "unknown type",
			cfg:     app.Config{NewType: "Chiller"},
			wantErr: "unknown component type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := tc.cfg
			cfg.Output = "text"
			a, _, _ := app.SetupAppTest(t, &cfg, loader())
			require.ErrorContains(t, a.Run(context.Background()), tc.wantErr)
		})
	}
}

func TestRun_LoadErrors(t *testing.T) {
	t.Parallel()

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		cfg := &app.Config{BuildingPath: testutil.WriteFile(t, "main.hcl", `component "RTU" {`), Output: "text"}
		a, _, _ := app.SetupAppTest(t, cfg, loader())
		require.ErrorContains(t, a.Run(context.Background()), "failed to load building")
	})

	t.Run("empty building", func(t *testing.T) {
		t.Parallel()
		cfg := &app.Config{BuildingPath: t.TempDir(), Output: "text"}
		a, _, _ := app.SetupAppTest(t, cfg, loader())
		require.ErrorContains(t, a.Run(context.Background()), "no components")
	})

	t.Run("selected component missing", func(t *testing.T) {
		t.Parallel()
		cfg := &app.Config{BuildingPath: testutil.WriteFile(t, "main.hcl", buildingHCL), Component: "RTU.roof", Output: "text"}
		a, _, _ := app.SetupAppTest(t, cfg, loader())
		require.ErrorContains(t, a.Run(context.Background()), "RTU.roof is not in the building")
	})
}

func TestRun_List(t *testing.T) {
	t.Parallel()

	a, out, _ := app.SetupAppTest(t, &app.Config{List: true}, loader())
	require.NoError(t, a.Run(context.Background()))
	require.Equal(t, ""+
		"Envelope: R_env, C_env, R_internal, adjacency\n"+
		"RTU: cooling_COP, heating_efficiency, max_airflow, min_oa_fraction, supply_air_temp, fan_power_coeffs\n"+
		"SolarGains: window_area, shgc, orientation_factors, shading_matrix\n"+
		"VAVBox: max_airflow, min_flow_fraction, reheat_capacity, damper_gains\n",
		out.String())
}

type fakePrompter struct {
	interactive bool
	edit        func(ctx context.Context, s *editor.Session) (form.Outcome, error)
}

func (f *fakePrompter) IsInteractive() bool { return f.interactive }

func (f *fakePrompter) Edit(ctx context.Context, s *editor.Session) (form.Outcome, error) {
	return f.edit(ctx, s)
}

func TestRun_Interactive(t *testing.T) {
	t.Parallel()

	t.Run("save", func(t *testing.T) {
		t.Parallel()
		p := &fakePrompter{interactive: true, edit: func(ctx context.Context, s *editor.Session) (form.Outcome, error) {
			if err := s.SetText(editor.At("cooling_COP"), "4"); err != nil {
				return form.Cancelled, err
			}
			return form.Saved, s.Commit(ctx)
		}}
		cfg := &app.Config{NewType: "RTU", Interactive: true, Output: "text"}
		a, out, _ := app.SetupAppTest(t, cfg, loader(), app.WithPrompter(p))
		require.NoError(t, a.Run(context.Background()))
		require.Contains(t, out.String(), "cooling_COP = 4")
		require.Contains(t, out.String(), "Changes committed.")
	})

	t.Run("no terminal", func(t *testing.T) {
		t.Parallel()
		p := &fakePrompter{interactive: false}
		cfg := &app.Config{NewType: "RTU", Interactive: true, Output: "text"}
		a, _, _ := app.SetupAppTest(t, cfg, loader(), app.WithPrompter(p))
		require.True(t, errors.Is(a.Run(context.Background()), app.ErrNotInteractive))
	})
}

func TestNewApp_RegistryMismatchPanics(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Register("Chiller", []string{"cop"})
	require.Panics(t, func() {
		app.SetupAppTest(t, &app.Config{List: true}, loader(), app.WithRegistry(reg))
	})
}
