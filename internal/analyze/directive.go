package analyze

import (
	"go/ast"
	"strings"
)

// Directive marks a type for derivation. "//jsderive:derive tuple" selects
// the unnamed (array) shape.
const Directive = "//jsderive:derive"

// TupleArg is the directive argument that selects the unnamed shape.
const TupleArg = "tuple"

// parseDirective looks for the derive directive in the comment groups, in
// order. found reports whether a directive was present at all.
func parseDirective(groups ...*ast.CommentGroup) (found, tuple bool) {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, Directive)
			if !ok {
				continue
			}

			// Reject longer words such as //jsderive:derived.
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				continue
			}

			for _, arg := range strings.Fields(rest) {
				if arg == TupleArg {
					tuple = true
				}
			}

			return true, tuple
		}
	}

	return false, false
}
