package analyze

import (
	"go/ast"
	"go/token"
	"go/types"

	"jsderive/internal/common"
)

// ShapeKind tells how a struct is laid out in the external value.
type ShapeKind int

const (
	ShapeNamed   ShapeKind = iota // object, one property per field
	ShapeUnnamed                  // array, one element per field
)

// String returns a human-readable representation of the ShapeKind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeNamed:
		return "named"
	case ShapeUnnamed:
		return "unnamed"
	default:
		return common.UnknownStr
	}
}

// MarshalText makes shapes readable in inspect output.
func (k ShapeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FieldKind is the ownership class of a field.
type FieldKind int

const (
	// ByValue fields own their data and are passed to the conversion as is.
	ByValue FieldKind = iota
	// ByReference fields share storage with the struct (pointers, slices,
	// maps) and are cloned before the conversion consumes them.
	ByReference
)

// String returns a human-readable representation of the FieldKind.
func (k FieldKind) String() string {
	switch k {
	case ByValue:
		return "value"
	case ByReference:
		return "reference"
	default:
		return common.UnknownStr
	}
}

// MarshalText makes field kinds readable in inspect output.
func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Field describes a converted struct field.
type Field struct {
	Name     string    `yaml:"name"`          // Go field name, used to read the field
	Key      string    `yaml:"key,omitempty"` // property name; empty for unnamed shapes
	Kind     FieldKind `yaml:"kind"`
	Type     string    `yaml:"type"` // declared type as written
	Embedded bool      `yaml:"embedded,omitempty"`
}

// TypeParam is one generic parameter. Grouped declarations such as
// [K, V comparable] yield one TypeParam per name.
type TypeParam struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// Generics is the ordered generic parameter list of a declaration.
type Generics struct {
	Params []TypeParam `yaml:"params,omitempty"`
}

// IsEmpty reports whether the declaration is not generic.
func (g Generics) IsEmpty() bool {
	return len(g.Params) == 0
}

// Names returns the parameter names in order.
func (g Generics) Names() []string {
	names := make([]string, len(g.Params))
	for i, p := range g.Params {
		names[i] = p.Name
	}

	return names
}

// Import is a package referenced from a constraint.
type Import struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Shape is the normalized, generator-facing description of a struct.
type Shape struct {
	Kind     ShapeKind      `yaml:"kind"`
	Name     string         `yaml:"name"`
	Fields   []Field        `yaml:"fields"`
	Generics Generics       `yaml:"generics,omitempty"`
	Imports  []Import       `yaml:"imports,omitempty"`
	Skipped  int            `yaml:"skipped,omitempty"` // blank fields, which cannot be read
	Pos      token.Position `yaml:"-"`
}

// Declaration is a type spec selected for derivation.
type Declaration struct {
	Spec  *ast.TypeSpec
	Tuple bool
	Pos   token.Position
}

// Name returns the declared type name.
func (d Declaration) Name() string {
	return d.Spec.Name.Name
}

// File is a source file with at least one selected declaration.
type File struct {
	// Path is the source file name as reported by the file set.
	Path string
	// Package is the package name.
	Package string
	// PkgPath is the import path, empty when parsed without go/packages.
	PkgPath string
	// Decls are the selected declarations in source order.
	Decls []Declaration
	// Imports maps local package names to import paths.
	Imports map[string]string
	// Scope lists package-level identifiers, used to avoid name clashes with
	// the runtime import.
	Scope []string

	info *types.Info
}
