package analyze

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsderive/internal/diagnostic"
)

func parse(t *testing.T, src string) *File {
	t.Helper()

	f, err := ParseSource(token.NewFileSet(), "src.go", src)
	require.NoError(t, err)

	return f
}

func classifyOnly(t *testing.T, src string) (*Shape, *diagnostic.Diagnostic) {
	t.Helper()

	f := parse(t, src)
	require.Len(t, f.Decls, 1)

	return Classify(f, f.Decls[0])
}

func TestClassify_NamedShape(t *testing.T) {
	t.Parallel()

	shape, diag := classifyOnly(t, `package p

//jsderive:derive
type User struct {
	user_id  int
	Name     string
	Tags     []string
	Parent   *User
	Meta     map[string]int
	Code     [4]byte
	Refs     [2]*User
	Nickname string `+"`js:\"nick,omitempty\"`"+`
	_        int
}
`)
	require.Nil(t, diag)
	require.NotNil(t, shape)

	assert.Equal(t, ShapeNamed, shape.Kind)
	assert.Equal(t, "User", shape.Name)
	assert.True(t, shape.Generics.IsEmpty())

	want := []Field{
		{Name: "user_id", Key: "userId", Kind: ByValue, Type: "int"},
		{Name: "Name", Key: "name", Kind: ByValue, Type: "string"},
		{Name: "Tags", Key: "tags", Kind: ByReference, Type: "[]string"},
		{Name: "Parent", Key: "parent", Kind: ByReference, Type: "*User"},
		{Name: "Meta", Key: "meta", Kind: ByReference, Type: "map[string]int"},
		{Name: "Code", Key: "code", Kind: ByValue, Type: "[4]byte"},
		{Name: "Refs", Key: "refs", Kind: ByReference, Type: "[2]*User"},
		{Name: "Nickname", Key: "nick", Kind: ByValue, Type: "string"},
	}
	assert.Equal(t, want, shape.Fields)
	assert.Equal(t, 1, shape.Skipped)
}

func TestClassify_TupleShapeIgnoresTags(t *testing.T) {
	t.Parallel()

	shape, diag := classifyOnly(t, `package p

//jsderive:derive tuple
type Pair struct {
	First, Second string `+"`js:\"x\"`"+`
}
`)
	require.Nil(t, diag)

	assert.Equal(t, ShapeUnnamed, shape.Kind)
	require.Len(t, shape.Fields, 2)
	assert.Equal(t, "First", shape.Fields[0].Name)
	assert.Equal(t, "Second", shape.Fields[1].Name)
	assert.Empty(t, shape.Fields[0].Key)
	assert.Empty(t, shape.Fields[1].Key)
}

func TestClassify_EmptyStruct(t *testing.T) {
	t.Parallel()

	shape, diag := classifyOnly(t, `package p

//jsderive:derive
type Unit struct{}
`)
	require.Nil(t, diag)
	assert.Empty(t, shape.Fields)
}

func TestClassify_Generics(t *testing.T) {
	t.Parallel()

	shape, diag := classifyOnly(t, `package p

import (
	"fmt"
	cmp "golang.org/x/exp/constraints"
)

//jsderive:derive
type Wrapper[K, V comparable, S fmt.Stringer, N cmp.Ordered | ~int] struct {
	Key K
	Box Box[V]
}
`)
	require.Nil(t, diag)

	assert.Equal(t, []TypeParam{
		{Name: "K", Constraint: "comparable"},
		{Name: "V", Constraint: "comparable"},
		{Name: "S", Constraint: "fmt.Stringer"},
		{Name: "N", Constraint: "cmp.Ordered | ~int"},
	}, shape.Generics.Params)
	assert.Equal(t, []string{"K", "V", "S", "N"}, shape.Generics.Names())

	assert.Equal(t, []Import{
		{Name: "fmt", Path: "fmt"},
		{Name: "cmp", Path: "golang.org/x/exp/constraints"},
	}, shape.Imports)

	assert.Equal(t, ByValue, shape.Fields[1].Kind)
	assert.Equal(t, "Box[V]", shape.Fields[1].Type)
}

func TestClassify_EmbeddedFields(t *testing.T) {
	t.Parallel()

	shape, diag := classifyOnly(t, `package p

import "time"

//jsderive:derive
type Event struct {
	time.Time
	*Base
	Labels[string]
}
`)
	require.Nil(t, diag)
	require.Len(t, shape.Fields, 3)

	assert.Equal(t, Field{Name: "Time", Key: "time", Kind: ByValue, Type: "time.Time", Embedded: true}, shape.Fields[0])
	assert.Equal(t, Field{Name: "Base", Key: "base", Kind: ByReference, Type: "*Base", Embedded: true}, shape.Fields[1])
	assert.Equal(t, "Labels", shape.Fields[2].Name)
}

func TestClassify_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		code      string
		fieldPath string
	}{
		{
			name: "enum",
			src:  "package p\n\n//jsderive:derive\ntype Color int\n",
			code: diagnostic.CodeEnum,
		},
		{
			name: "union",
			src:  "package p\n\n//jsderive:derive\ntype Number interface{ ~int | ~float64 }\n",
			code: diagnostic.CodeUnion,
		},
		{
			name: "alias",
			src:  "package p\n\n//jsderive:derive\ntype Other = struct{ A int }\n",
			code: diagnostic.CodeUnsupportedDecl,
		},
		{
			name: "named non-struct",
			src:  "package p\n\n//jsderive:derive\ntype IDs []int\n",
			code: diagnostic.CodeUnsupportedDecl,
		},
		{
			name:      "channel field",
			src:       "package p\n\n//jsderive:derive\ntype Pipe struct{ In, Out chan int }\n",
			code:      diagnostic.CodeUnsupportedField,
			fieldPath: "In, Out",
		},
		{
			name:      "func field",
			src:       "package p\n\n//jsderive:derive\ntype Hook struct{ Fn func() }\n",
			code:      diagnostic.CodeUnsupportedField,
			fieldPath: "Fn",
		},
		{
			name:      "anonymous struct field",
			src:       "package p\n\n//jsderive:derive\ntype Outer struct{ Inner struct{ A int } }\n",
			code:      diagnostic.CodeUnsupportedField,
			fieldPath: "Inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			shape, diag := classifyOnly(t, tt.src)
			require.Nil(t, shape)
			require.NotNil(t, diag)

			assert.Equal(t, tt.code, diag.Code)
			assert.Equal(t, diagnostic.DiagnosticError, diag.Severity)
			assert.Equal(t, tt.fieldPath, diag.FieldPath)
			assert.Equal(t, 4, diag.Pos.Line)
			assert.Equal(t, "src.go", diag.Pos.Filename)
		})
	}
}

func TestClassify_EnumSuggestion(t *testing.T) {
	t.Parallel()

	_, diag := classifyOnly(t, "package p\n\n//jsderive:derive\ntype Level uint8\n")
	require.NotNil(t, diag)

	assert.Contains(t, diag.Message, "uint8")
	assert.NotEmpty(t, diag.Suggestions)
	assert.Equal(t, "Level: [JD001] "+diag.Message, diag.Summary())
}

func TestParseDirective(t *testing.T) {
	t.Parallel()

	f := parse(t, `package p

//jsderive:derive
type A struct{}

// B is documented.
//
//jsderive:derive  tuple
type B struct{}

//jsderive:derived
type C struct{}

type D struct{}

type (
	//jsderive:derive
	E struct{}
	F struct{}
)

//jsderive:derive
type (
	G struct{}
	H struct{}
)
`)

	var names []string
	for _, d := range f.Decls {
		names = append(names, d.Name())
	}

	assert.Equal(t, []string{"A", "B", "E"}, names)
	assert.False(t, f.Decls[0].Tuple)
	assert.True(t, f.Decls[1].Tuple)
	assert.Equal(t, 4, f.Decls[0].Pos.Line)
}

func TestParseSource_Scope(t *testing.T) {
	t.Parallel()

	f := parse(t, `package p

import jsrt "example.com/other"

var _ = jsrt.X

type T struct{}

func helper() {}

func (T) method() {}
`)

	assert.Equal(t, "p", f.Package)
	assert.Subset(t, f.Scope, []string{"T", "helper"})
	assert.NotContains(t, f.Scope, "method")
	assert.Equal(t, map[string]string{"jsrt": "example.com/other"}, f.Imports)
	assert.Empty(t, f.Decls)
	assert.Nil(t, f.Info())
}
