// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package component

// TypeEnvelope is the type name of a building envelope model.
const TypeEnvelope = "Envelope"

// Envelope is a lumped RC thermal model of the building zones.
type Envelope struct {
	base

	NZones    float64
	REnv      *Tensor // K/W per zone
	CEnv      *Tensor // J/K per zone
	RInternal float64 // K/W between adjacent zones
	Adjacency [][]float64
}

// NewEnvelope returns a two-zone Envelope with default parameters.
func NewEnvelope(name string) *Envelope {
	e := &Envelope{
		base: newBase(TypeEnvelope, name,
			InputSlot{Name: "solar", Type: TypeSolarGains},
			InputSlot{Name: "hvac", Type: TypeVAVBox},
		),
		NZones:    2,
		REnv:      MustTensor([]float64{0.1, 0.12}, 2),
		CEnv:      MustTensor([]float64{3e6, 2.5e6}, 2),
		RInternal: 0.05,
		Adjacency: [][]float64{{1, 0}, {0, 1}},
	}
	e.attrs = []Attribute{
		readOnly(scalarAttr("n_zones", &e.NZones)),
		tensorAttr("R_env", &e.REnv),
		tensorAttr("C_env", &e.CEnv),
		scalarAttr("R_internal", &e.RInternal),
		matrixAttr("adjacency", &e.Adjacency),
	}
	return e
}
