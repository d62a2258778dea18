// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package component

// TypeBuildingNode is the type name of the node that aggregates a building.
const TypeBuildingNode = "BuildingNode"

// BuildingNode ties the HVAC components and the envelope into one simulation
// node. It has no editable fields of its own.
type BuildingNode struct {
	base

	FloorArea float64 // m2
	Timestep  float64 // s
}

// NewBuildingNode returns a BuildingNode with default parameters.
func NewBuildingNode(name string) *BuildingNode {
	b := &BuildingNode{
		base: newBase(TypeBuildingNode, name,
			InputSlot{Name: "rtu", Type: TypeRTU},
			InputSlot{Name: "vav", Type: TypeVAVBox},
			InputSlot{Name: "envelope", Type: TypeEnvelope},
			InputSlot{Name: "solar", Type: TypeSolarGains},
		),
		FloorArea: 500,
		Timestep:  300,
	}
	b.attrs = []Attribute{
		scalarAttr("floor_area", &b.FloorArea),
		scalarAttr("timestep", &b.Timestep),
	}
	return b
}
