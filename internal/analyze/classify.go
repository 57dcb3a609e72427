package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"jsderive/internal/casing"
	"jsderive/internal/diagnostic"
)

// TagKey is the struct tag that overrides a named field's property key.
const TagKey = "js"

// Classify turns a selected declaration into a Shape, or explains why it
// cannot be derived. Exactly one of the results is non-nil.
func Classify(file *File, decl Declaration) (*Shape, *diagnostic.Diagnostic) {
	spec := decl.Spec
	name := spec.Name.Name

	if spec.Assign.IsValid() {
		return nil, declError(diagnostic.CodeUnsupportedDecl, decl,
			"type aliases cannot derive TryIntoJS; derive on the aliased struct instead")
	}

	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return nil, classifyNonStruct(decl)
	}

	shape := &Shape{
		Kind:     ShapeNamed,
		Name:     name,
		Generics: generics(spec.TypeParams),
		Pos:      decl.Pos,
	}
	if decl.Tuple {
		shape.Kind = ShapeUnnamed
	}

	if spec.TypeParams != nil {
		shape.Imports = constraintImports(file, spec.TypeParams)
	}

	for _, f := range st.Fields.List {
		kind, reason := file.fieldKind(f.Type)
		if reason != "" {
			d := declError(diagnostic.CodeUnsupportedField, decl, reason)
			d.FieldPath = fieldLabel(f)

			return nil, d
		}

		typeStr := types.ExprString(f.Type)

		if len(f.Names) == 0 {
			fieldName, ok := embeddedName(f.Type)
			if !ok {
				return nil, declError(diagnostic.CodeEmbeddedField, decl,
					fmt.Sprintf("embedded field %s has no usable name", typeStr))
			}

			shape.Fields = append(shape.Fields, Field{
				Name:     fieldName,
				Key:      propertyKey(shape.Kind, fieldName, f.Tag),
				Kind:     kind,
				Type:     typeStr,
				Embedded: true,
			})

			continue
		}

		for _, ident := range f.Names {
			if ident.Name == "_" {
				shape.Skipped++
				continue
			}

			shape.Fields = append(shape.Fields, Field{
				Name: ident.Name,
				Key:  propertyKey(shape.Kind, ident.Name, f.Tag),
				Kind: kind,
				Type: typeStr,
			})
		}
	}

	return shape, nil
}

// classifyNonStruct reports enum-like, union-like and other declarations.
func classifyNonStruct(decl Declaration) *diagnostic.Diagnostic {
	switch t := decl.Spec.Type.(type) {
	case *ast.Ident:
		if types.Universe.Lookup(t.Name) != nil {
			d := declError(diagnostic.CodeEnum, decl,
				fmt.Sprintf("enum-like type over %s is not supported; only struct types can derive TryIntoJS", t.Name))
			d.Suggestions = []string{"implement TryToJS by hand or wrap the value in a struct"}

			return d
		}
	case *ast.InterfaceType:
		if isTypeSet(t) {
			return declError(diagnostic.CodeUnion, decl,
				"union-like interface type sets are not supported; only struct types can derive TryIntoJS")
		}
	}

	return declError(diagnostic.CodeUnsupportedDecl, decl,
		fmt.Sprintf("%s is not a struct type literal; only struct types can derive TryIntoJS",
			types.ExprString(decl.Spec.Type)))
}

// isTypeSet reports whether an interface declares a type set (~T or A | B)
// rather than only methods.
func isTypeSet(it *ast.InterfaceType) bool {
	for _, m := range it.Methods.List {
		if len(m.Names) > 0 {
			continue
		}

		switch e := m.Type.(type) {
		case *ast.BinaryExpr:
			if e.Op == token.OR {
				return true
			}
		case *ast.UnaryExpr:
			if e.Op == token.TILDE {
				return true
			}
		}
	}

	return false
}

// fieldKind is exprKind refined by type information: with it, a named type
// over a pointer, slice or map (type Tags []string) is a reference too.
func (f *File) fieldKind(expr ast.Expr) (FieldKind, string) {
	kind, reason := exprKind(expr)
	if reason != "" || kind == ByReference || f.info == nil {
		return kind, reason
	}

	if t := f.info.TypeOf(expr); t != nil && sharesStorage(t) {
		return ByReference, ""
	}

	return kind, reason
}

// sharesStorage reports whether copying a value of t leaves it pointing at
// the same storage.
func sharesStorage(t types.Type) bool {
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map:
		return true
	case *types.Array:
		return sharesStorage(u.Elem())
	default:
		return false
	}
}

// exprKind reads the ownership class off a field's type expression. A
// non-empty reason means the field cannot be converted.
func exprKind(expr ast.Expr) (FieldKind, string) {
	switch t := expr.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		return ByValue, ""
	case *ast.ParenExpr:
		return exprKind(t.X)
	case *ast.StarExpr, *ast.MapType:
		return ByReference, ""
	case *ast.ArrayType:
		if t.Len == nil {
			return ByReference, ""
		}

		// A fixed-size array is copied with the struct, but its elements may
		// still point at shared data.
		return exprKind(t.Elt)
	case *ast.InterfaceType:
		return ByValue, ""
	case *ast.ChanType:
		return ByValue, "channel fields cannot be converted"
	case *ast.FuncType:
		return ByValue, "function fields cannot be converted"
	case *ast.StructType:
		return ByValue, "anonymous struct fields cannot be converted; declare a named type"
	default:
		return ByValue, fmt.Sprintf("unsupported field type %s", types.ExprString(expr))
	}
}

// embeddedName returns the implicit field name of an embedded field.
func embeddedName(expr ast.Expr) (string, bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, true
	case *ast.SelectorExpr:
		return t.Sel.Name, true
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return "", false
	}
}

// propertyKey is the object key of a field: the js tag when present,
// otherwise the camelCase field name. Unnamed shapes have no keys.
func propertyKey(kind ShapeKind, name string, tag *ast.BasicLit) string {
	if kind == ShapeUnnamed {
		return ""
	}

	if tag != nil {
		raw := strings.Trim(tag.Value, "`")
		if key, _, _ := strings.Cut(reflect.StructTag(raw).Get(TagKey), ","); key != "" {
			return key
		}
	}

	return casing.ToCamel(name)
}

// generics expands a type parameter list, one TypeParam per name.
func generics(list *ast.FieldList) Generics {
	var g Generics
	if list == nil {
		return g
	}

	for _, f := range list.List {
		constraint := types.ExprString(f.Type)
		for _, n := range f.Names {
			g.Params = append(g.Params, TypeParam{Name: n.Name, Constraint: constraint})
		}
	}

	return g
}

// constraintImports lists the packages referenced from constraints, sorted
// by path.
func constraintImports(file *File, list *ast.FieldList) []Import {
	seen := make(map[string]Import)

	for _, f := range list.List {
		ast.Inspect(f.Type, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			pkg, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}

			if path, ok := file.importPath(pkg); ok {
				seen[path] = Import{Name: pkg.Name, Path: path}
			}

			return false
		})
	}

	imports := make([]Import, 0, len(seen))
	for _, imp := range seen {
		imports = append(imports, imp)
	}

	slices.SortFunc(imports, func(a, b Import) int {
		return strings.Compare(a.Path, b.Path)
	})

	return imports
}

// importPath resolves a package identifier, preferring type information.
func (f *File) importPath(ident *ast.Ident) (string, bool) {
	if f.info != nil {
		if pn, ok := f.info.Uses[ident].(*types.PkgName); ok {
			return pn.Imported().Path(), true
		}
	}

	path, ok := f.Imports[ident.Name]

	return path, ok
}

func fieldLabel(f *ast.Field) string {
	if len(f.Names) == 0 {
		return types.ExprString(f.Type)
	}

	names := make([]string, len(f.Names))
	for i, n := range f.Names {
		names[i] = n.Name
	}

	return strings.Join(names, ", ")
}

func declError(code string, decl Declaration, message string) *diagnostic.Diagnostic {
	return diagnostic.NewError(code, decl.Pos, decl.Name(), "", message)
}
