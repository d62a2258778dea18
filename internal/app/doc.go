// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the edit lifecycle: load a building, place
// it on a canvas, open the property editor for one component, apply scripted
// or interactive edits, and print the result. It is decoupled from any
// specific entrypoint like a CLI.
package app
