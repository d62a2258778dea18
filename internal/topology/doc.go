// Package topology holds the directed graph of links between the components
// on a canvas. An edge runs from the component that provides a value to the
// component that consumes it.
//
// HVAC networks are feedback systems: a rooftop unit feeds a VAV box that
// conditions a zone whose temperature is read back by the rooftop unit. The
// graph therefore allows cycles. DetectCycles reports the first one found and
// Downstream walks the graph without revisiting a node.
//
// Iteration is deterministic. Nodes are visited in insertion order and each
// node's neighbours in the order their edges were added.
package topology
