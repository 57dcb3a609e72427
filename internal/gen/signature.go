package gen

import (
	"strings"

	"jsderive/internal/analyze"
)

// signature holds the two projections of a declaration's type parameters.
type signature struct {
	// Instance names the type with unbounded arguments, e.g. "Pair[A, B]".
	// It is used for the receiver and the composite literal in the assertion.
	Instance string
	// TypeParams is the bounded parameter list, e.g. "A any, B fmt.Stringer".
	// Empty for non-generic types.
	TypeParams string
}

func newSignature(name string, g analyze.Generics) signature {
	return signature{
		Instance:   instantiate(name, g),
		TypeParams: boundedParams(g),
	}
}

// Generic reports whether the assertion needs a generic wrapper function.
func (s signature) Generic() bool {
	return s.TypeParams != ""
}

// instantiate strips the constraints: a type expression takes only
// parameter names.
func instantiate(name string, g analyze.Generics) string {
	if g.IsEmpty() {
		return name
	}

	return name + "[" + strings.Join(g.Names(), ", ") + "]"
}

// boundedParams keeps each constraint verbatim. Grouped parameters are
// written out one by one.
func boundedParams(g analyze.Generics) string {
	parts := make([]string, len(g.Params))
	for i, p := range g.Params {
		parts[i] = p.Name + " " + p.Constraint
	}

	return strings.Join(parts, ", ")
}
