// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package component

// TypeSolarGains is the type name of a solar gains model.
const TypeSolarGains = "SolarGains"

// SolarGains computes solar heat gains through glazing. Orientation vectors
// are ordered north, east, south, west.
type SolarGains struct {
	base

	WindowArea         []float64 // m2 per orientation
	SHGC               float64
	OrientationFactors *Tensor
	ShadingMatrix      *Tensor // zones x orientations
	Latitude           float64
}

// NewSolarGains returns a SolarGains with default parameters for two zones.
func NewSolarGains(name string) *SolarGains {
	s := &SolarGains{
		base:               newBase(TypeSolarGains, name),
		WindowArea:         []float64{4, 4, 6, 2},
		SHGC:               0.4,
		OrientationFactors: MustTensor([]float64{0.3, 0.6, 1, 0.6}, 4),
		ShadingMatrix:      MustTensor([]float64{1, 1, 1, 1, 1, 1, 1, 1}, 2, 4),
		Latitude:           40,
	}
	s.attrs = []Attribute{
		vectorAttr("window_area", &s.WindowArea),
		scalarAttr("shgc", &s.SHGC),
		tensorAttr("orientation_factors", &s.OrientationFactors),
		tensorAttr("shading_matrix", &s.ShadingMatrix),
		readOnly(scalarAttr("latitude", &s.Latitude)),
	}
	return s
}
