// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package component

// TypeVAVBox is the type name of a variable air volume terminal.
const TypeVAVBox = "VAVBox"

// VAVBox is a variable air volume terminal serving one zone.
type VAVBox struct {
	base

	MaxAirflow      float64 // m3/s
	MinFlowFraction float64
	ReheatCapacity  float64 // W
	DamperGains     *Tensor // kp, ki, kd
	ZoneIndex       float64
}

// NewVAVBox returns a VAVBox with default parameters.
func NewVAVBox(name string) *VAVBox {
	v := &VAVBox{
		base:            newBase(TypeVAVBox, name, InputSlot{Name: "supply", Type: TypeRTU}),
		MaxAirflow:      0.5,
		MinFlowFraction: 0.3,
		ReheatCapacity:  5000,
		DamperGains:     MustTensor([]float64{0.5, 0.1, 0}, 3),
	}
	v.attrs = []Attribute{
		scalarAttr("max_airflow", &v.MaxAirflow),
		scalarAttr("min_flow_fraction", &v.MinFlowFraction),
		scalarAttr("reheat_capacity", &v.ReheatCapacity),
		tensorAttr("damper_gains", &v.DamperGains),
		readOnly(scalarAttr("zone_index", &v.ZoneIndex)),
	}
	return v
}
