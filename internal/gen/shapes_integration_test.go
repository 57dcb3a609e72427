package gen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"jsderive/internal/analyze"
	"jsderive/internal/gen"
)

const shapesPkg = "jsderive/examples/shapes"

func shapesDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.Abs(filepath.Join("..", "..", "examples", "shapes"))
	require.NoError(t, err)

	return dir
}

func generate(t *testing.T, opts analyze.Options, patterns ...string) *gen.Result {
	t.Helper()

	res, err := analyze.NewLoader(opts, nil).Load(t.Context(), patterns...)
	require.NoError(t, err)
	require.True(t, res.Diagnostics.IsValid(), res.Diagnostics.Error())

	out, err := gen.NewGenerator(gen.DefaultGeneratorConfig(), nil).Generate(res.Files)
	require.NoError(t, err)

	return out
}

// The committed generated file must be exactly what the generator writes.
func TestShapes_GeneratedFileIsCurrent(t *testing.T) {
	t.Parallel()

	res := generate(t, analyze.Options{}, shapesPkg)
	require.Len(t, res.Files, 1)

	file := res.Files[0]
	assert.Equal(t, filepath.Join(shapesDir(t), "shapes_jsgen.go"), file.Filename)

	loaded, err := analyze.NewLoader(analyze.Options{}, nil).Load(t.Context(), shapesPkg)
	require.NoError(t, err)
	require.Equal(t, []string{file.Filename}, loaded.Generated)

	stale, err := gen.Check(res.Files, gen.Orphans(loaded.Generated, res.Files))
	require.NoError(t, err)

	for _, s := range stale {
		t.Errorf("%s is stale:\n%s", s.Filename, s.Diff)
	}
}

// Generated code type-checks against the runtime and the declarations'
// own constraints.
func TestShapes_GeneratedCodeTypeChecks(t *testing.T) {
	t.Parallel()

	res := generate(t, analyze.Options{}, shapesPkg)

	overlay := make(map[string][]byte)
	for _, f := range res.Files {
		overlay[f.Filename] = f.Content
	}

	pkgs, err := packages.Load(&packages.Config{
		Context: t.Context(),
		Mode:    analyze.LoadMode,
		Overlay: overlay,
	}, shapesPkg)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Empty(t, pkgs[0].Errors)
}

// A declaration that cannot be derived surfaces as a compile error at its
// own position, and the rest of the file still compiles.
func TestShapes_EmbeddedErrorPosition(t *testing.T) {
	t.Parallel()

	dir := shapesDir(t)
	broken := filepath.Join(dir, "broken.go")

	src := []byte(`package shapes

//jsderive:derive
type Level uint8

//jsderive:derive tuple
type Ok struct{ A int }
`)

	opts := analyze.Options{Overlay: map[string][]byte{broken: src}}

	loaded, err := analyze.NewLoader(opts, nil).Load(t.Context(), shapesPkg)
	require.NoError(t, err)

	var files []*analyze.File
	for _, f := range loaded.Files {
		if f.Path == broken {
			files = append(files, f)
		}
	}
	require.Len(t, files, 1)

	res, err := gen.NewGenerator(gen.DefaultGeneratorConfig(), nil).Generate(files)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	require.Len(t, res.Diagnostics.Errors, 1)

	opts.Overlay[res.Files[0].Filename] = res.Files[0].Content

	pkgs, err := packages.Load(&packages.Config{
		Context: t.Context(),
		Mode:    analyze.LoadMode,
		Overlay: opts.Overlay,
	}, shapesPkg)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	require.Len(t, pkgs[0].Errors, 1, "only the embedded error is reported")

	e := pkgs[0].Errors[0]
	assert.Equal(t, packages.TypeError, e.Kind)
	assert.True(t, strings.HasPrefix(e.Pos, broken+":4:"), e.Pos)
	assert.Contains(t, e.Msg, "DeriveError")
}

func TestShapes_ConfiguredTypes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/cfg\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.go"), []byte(`package cfg

type Named struct{ FirstName string }

type Tuple struct{ A, B int }

type Ignored struct{}
`), 0o644))

	res := generate(t, analyze.Options{
		Dir:    dir,
		Types:  []string{"Named"},
		Tuples: []string{"Tuple"},
	}, "./...")
	require.Len(t, res.Files, 1)

	content := string(res.Files[0].Content)
	assert.Contains(t, content, `obj.SetProperty("firstName", v0)`)
	assert.Contains(t, content, "env.CreateArrayWithLen(2)")
	assert.NotContains(t, content, "Ignored")

	require.Len(t, res.Shapes, 2)
	assert.Equal(t, analyze.ShapeNamed, res.Shapes[0].Kind)
	assert.Equal(t, analyze.ShapeUnnamed, res.Shapes[1].Kind)
}
