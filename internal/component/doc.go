// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package component provides the building-HVAC simulation components that are
// placed on the canvas and edited through the property editor: RTU, VAVBox,
// Envelope, SolarGains and BuildingNode.
//
// # Attributes
//
// Every component exposes a fixed, compile-time list of attribute descriptors.
// An Attribute pairs a name with an accessor and a mutator working on
// value.Value. Nothing here uses runtime reflection; the descriptor list is the
// complete contract between a component and the editor.
//
// An attribute keeps its numbers either in a plain Go container (float64,
// []float64, [][]float64) or in a Tensor. The accessor reports which one, so a
// value read from an attribute can be written back in the same container.
//
// Mutators never modify the stored slice or tensor in place. They replace it
// with a fresh copy, and they refuse values whose shape or dimensions differ
// from the current ones: the shape of an attribute is fixed for the lifetime
// of the component.
//
// # Inputs
//
// Components are wired implicitly through a named input map. Each type declares
// its input slots (for example an Envelope has a "solar" slot expecting a
// SolarGains), and an instance maps slot names to "Type.name" references. The
// canvas resolves these references into graph links.
package component
