package gen

import (
	"bytes"
	"fmt"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/imports"

	"jsderive/internal/analyze"
	"jsderive/internal/common"
	"jsderive/internal/diagnostic"
	"jsderive/internal/logger"
)

// DefaultRuntimeImport is the import path of the runtime the generated code
// calls into.
const DefaultRuntimeImport = "jsderive/jsrt"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RuntimeImport is the import path of the runtime package.
	RuntimeImport string
	// OutputSuffix replaces ".go" in the source file name to name the output.
	OutputSuffix string
	// EmbedErrors re-emits classifier failures as compile errors in the
	// generated file. When false, failing declarations are only reported.
	EmbedErrors bool
	// DebugDir receives *.unformatted.go sidecars when formatting fails.
	// Empty means next to the intended output.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RuntimeImport: DefaultRuntimeImport,
		OutputSuffix:  analyze.DefaultGeneratedSuffix,
		EmbedErrors:   true,
	}
}

// Generator turns classified declarations into TryToJS implementations.
type Generator struct {
	config GeneratorConfig
	log    logger.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, log logger.Logger) *Generator {
	if config.RuntimeImport == "" {
		config.RuntimeImport = DefaultRuntimeImport
	}

	if config.OutputSuffix == "" {
		config.OutputSuffix = analyze.DefaultGeneratedSuffix
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Generator{config: config, log: log}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the output path, next to Source.
	Filename string
	// Source is the file the declarations came from.
	Source string
	// Content is the formatted Go source code.
	Content []byte
}

// Result is the outcome of a generation run.
type Result struct {
	Files []GeneratedFile
	// Diagnostics holds every classifier failure, embedded or not.
	Diagnostics diagnostic.Diagnostics
	// Shapes are the successfully classified declarations in output order.
	Shapes []*analyze.Shape
}

// Generate classifies every declaration of every file and renders one
// output file per source file. A declaration that fails classification
// never yields a partial implementation and does not affect the others.
func (g *Generator) Generate(files []*analyze.File) (*Result, error) {
	res := &Result{}

	for _, f := range files {
		file, shapes, diags, err := g.generateFile(f)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", f.Path, err)
		}

		res.Diagnostics.Merge(diags)
		res.Shapes = append(res.Shapes, shapes...)

		if file != nil {
			res.Files = append(res.Files, *file)
		}
	}

	return res, nil
}

// OutputPath names the generated file for a source file.
func (g *Generator) OutputPath(source string) string {
	return strings.TrimSuffix(source, ".go") + g.config.OutputSuffix
}

func (g *Generator) generateFile(f *analyze.File) (*GeneratedFile, []*analyze.Shape, diagnostic.Diagnostics, error) {
	var (
		diags  diagnostic.Diagnostics
		shapes []*analyze.Shape
		failed []*diagnostic.Diagnostic
	)

	for _, decl := range f.Decls {
		shape, diag := analyze.Classify(f, decl)
		if diag != nil {
			g.log.Warn("cannot derive", "type", decl.Name(), "code", diag.Code)
			diags.Add(*diag)
			failed = append(failed, diag)

			continue
		}

		g.log.Debug("derive", "type", shape.Name, "shape", shape.Kind, "fields", len(shape.Fields))
		shapes = append(shapes, shape)

		if shape.Skipped > 0 {
			diags.AddWarning(diagnostic.CodeBlankField,
				fmt.Sprintf("%d blank field(s) left out of the conversion", shape.Skipped), shape.Name, "_")
		}
	}

	if !g.config.EmbedErrors {
		failed = nil
	}

	if len(shapes) == 0 && len(failed) == 0 {
		return nil, shapes, diags, nil
	}

	data := g.fileData(f, shapes, failed)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, nil, diags, fmt.Errorf("executing template: %w", err)
	}

	out := g.OutputPath(f.Path)

	formatted, err := formatSource(out, buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		dir := g.config.DebugDir
		if dir == "" {
			dir = filepath.Dir(out)
		}

		_ = writeDebugUnformatted(dir, filepath.Base(out), buf.Bytes())

		return nil, nil, diags, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{Filename: out, Source: f.Path, Content: formatted}, shapes, diags, nil
}

func (g *Generator) fileData(f *analyze.File, shapes []*analyze.Shape, failed []*diagnostic.Diagnostic) *fileData {
	rt := g.runtimeAlias(f, shapes)

	data := &fileData{
		Package: f.Package,
		RT:      rt,
		Imports: g.importGroups(rt, shapes),
	}

	for _, shape := range shapes {
		if shape.Kind == analyze.ShapeUnnamed {
			data.Impls = append(data.Impls, positionalImpl(shape, rt))
		} else {
			data.Impls = append(data.Impls, namedImpl(shape, rt))
		}
	}

	for _, d := range failed {
		data.Errors = append(data.Errors, embeddedError{
			Line:    lineDirective(d),
			Summary: d.Summary(),
		})
	}

	return data
}

// runtimeAlias picks the local name of the runtime package. A constraint
// that already imports the runtime decides the name; otherwise the package
// name is used unless something in scope claims it.
func (g *Generator) runtimeAlias(f *analyze.File, shapes []*analyze.Shape) string {
	n := newNamer(f.Scope...)

	for _, shape := range shapes {
		for _, imp := range shape.Imports {
			if imp.Path == g.config.RuntimeImport {
				return imp.Name
			}

			n.reserve(imp.Name)
		}

		n.reserve(shape.Generics.Names()...)
	}

	return n.pick(common.PkgAlias(g.config.RuntimeImport))
}

// importGroups sorts imports the way goimports does: paths without a dot in
// their first element first, then the rest.
func (g *Generator) importGroups(rt string, shapes []*analyze.Shape) []importGroup {
	byPath := map[string]importSpec{
		g.config.RuntimeImport: newImportSpec(rt, g.config.RuntimeImport),
	}

	for _, shape := range shapes {
		for _, imp := range shape.Imports {
			if _, ok := byPath[imp.Path]; !ok {
				byPath[imp.Path] = newImportSpec(imp.Name, imp.Path)
			}
		}
	}

	var std, other importGroup

	for _, path := range slices.Sorted(maps.Keys(byPath)) {
		first, _, _ := strings.Cut(path, "/")
		if strings.Contains(first, ".") {
			other = append(other, byPath[path])
		} else {
			std = append(std, byPath[path])
		}
	}

	var groups []importGroup
	for _, grp := range []importGroup{std, other} {
		if len(grp) > 0 {
			groups = append(groups, grp)
		}
	}

	return groups
}

// newImportSpec drops the alias only when the last path element already
// names the package.
func newImportSpec(name, importPath string) importSpec {
	if name == path.Base(importPath) {
		name = ""
	}

	return importSpec{Alias: name, Path: importPath}
}

// lineDirective positions the embedded error at the declaration. The file
// name is relative to the generated file, which lives in the same
// directory.
func lineDirective(d *diagnostic.Diagnostic) string {
	if !d.Pos.IsValid() {
		return ""
	}

	return fmt.Sprintf("/*line %s:%d:%d*/", filepath.Base(d.Pos.Filename), d.Pos.Line, d.Pos.Column)
}

// formatSource formats generated code and normalizes its import block.
func formatSource(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
}
