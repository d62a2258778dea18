// Package canvas is the headless model of the drawing surface. It tracks the
// components placed on it and their scene positions, the zoom level, the
// background grid, and the implicit links derived from each component's named
// inputs. Opening a property editor for an item goes through EditProperties.
//
// A Canvas is safe for concurrent use. Edit sessions it returns are not.
package canvas
