// Package analyze loads Go packages, selects the struct declarations to
// derive and classifies each one into a Shape.
//
// Packages are loaded with golang.org/x/tools/go/packages. A declaration is
// selected by a //jsderive:derive directive in its doc comment, or by name
// through Options.Types and Options.Tuples.
//
// Key types:
//   - Declaration: a selected type spec and whether it is a tuple
//   - Shape: named (object) or unnamed (array) layout with ordered fields
//   - Field: Go name, camelCase key and ByValue/ByReference kind
//   - Generics: type parameters with their constraints as written
package analyze
