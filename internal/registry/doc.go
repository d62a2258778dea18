// Package registry provides the property schema registry: the fixed table
// that maps a component type name to the ordered list of attribute names a
// user may edit for that type.
//
// The registry is the only source the property editor consults to decide
// which attributes become form rows, and in which order. An attribute that is
// not listed is never exposed for editing, even if the component has it.
//
// During application startup the registry is validated against the component
// factory to ensure that every listed field exists as a writable attribute on
// instances of its type, preventing a class of runtime errors when a form is
// opened.
package registry
