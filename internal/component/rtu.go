// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package component

// TypeRTU is the type name of a rooftop unit.
const TypeRTU = "RTU"

// RTU is a packaged rooftop unit supplying conditioned air to VAV boxes.
type RTU struct {
	base

	CoolingCOP        float64
	HeatingEfficiency float64
	MaxAirflow        float64 // m3/s
	MinOAFraction     float64
	SupplyAirTemp     *Tensor // degC, zero-dimensional
	FanPowerCoeffs    []float64
	RatedCapacity     float64 // W
}

// NewRTU returns an RTU with default parameters.
func NewRTU(name string) *RTU {
	r := &RTU{
		base:              newBase(TypeRTU, name, InputSlot{Name: "zone_temps", Type: TypeEnvelope}),
		CoolingCOP:        3.2,
		HeatingEfficiency: 0.8,
		MaxAirflow:        2.5,
		MinOAFraction:     0.2,
		SupplyAirTemp:     MustTensor([]float64{12.8}),
		FanPowerCoeffs:    []float64{0.0013, 0.147, 0.9506, -0.0998},
		RatedCapacity:     35000,
	}
	r.attrs = []Attribute{
		scalarAttr("cooling_COP", &r.CoolingCOP),
		scalarAttr("heating_efficiency", &r.HeatingEfficiency),
		scalarAttr("max_airflow", &r.MaxAirflow),
		scalarAttr("min_oa_fraction", &r.MinOAFraction),
		tensorAttr("supply_air_temp", &r.SupplyAirTemp),
		vectorAttr("fan_power_coeffs", &r.FanPowerCoeffs),
		readOnly(scalarAttr("rated_capacity", &r.RatedCapacity)),
	}
	return r
}
