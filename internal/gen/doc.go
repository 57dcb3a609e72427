// Package gen renders TryToJS implementations for classified struct shapes.
//
// Generation uses text/template and is normalized with
// golang.org/x/tools/imports, so output is deterministic and gofmt-clean.
//
// Per declaration the generator emits:
//   - a TryToJS method on the unbounded instantiation (Pair[A, B]),
//   - an interface assertion carrying the bounded type parameters,
//   - for named shapes, one SetProperty call per field in declaration order
//     followed by a finalize,
//   - for unnamed shapes, an array of fixed length and one SetElement call
//     per field.
//
// Declarations that fail classification are re-emitted as compile errors
// positioned at the declaration with a line directive.
package gen
