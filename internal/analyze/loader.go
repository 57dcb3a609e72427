package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"jsderive/internal/common"
	"jsderive/internal/diagnostic"
	"jsderive/internal/logger"
	"jsderive/internal/match"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// DefaultGeneratedSuffix is the file suffix of generated output. Files with
// this suffix are never scanned for declarations.
const DefaultGeneratedSuffix = "_jsgen.go"

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "// Code generated by jsderive. DO NOT EDIT."

// Options selects declarations beyond the ones carrying the directive.
type Options struct {
	// Types are type names derived with the named shape.
	Types []string
	// Tuples are type names derived with the unnamed shape.
	Tuples []string
	// BuildTags are passed to the go tool when loading.
	BuildTags []string
	// GeneratedSuffix overrides DefaultGeneratedSuffix.
	GeneratedSuffix string
	// Overlay replaces file contents while loading (see packages.Config).
	Overlay map[string][]byte
	// Dir is the working directory for package patterns.
	Dir string
}

// Result is everything the loader found.
type Result struct {
	Files       []*File
	// Generated lists the files in the loaded packages that carry
	// GeneratedHeader, whether or not anything still selects them.
	Generated   []string
	Diagnostics diagnostic.Diagnostics
}

// Loader loads Go packages and selects the declarations to derive.
type Loader struct {
	opts Options
	log  logger.Logger
}

// NewLoader creates a new Loader.
func NewLoader(opts Options, log logger.Logger) *Loader {
	if opts.GeneratedSuffix == "" {
		opts.GeneratedSuffix = DefaultGeneratedSuffix
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Loader{opts: opts, log: log}
}

// Load loads the packages matching patterns and collects their selected
// declarations. Type errors do not fail loading: a stale generated file must
// not prevent regenerating it.
func (l *Loader) Load(ctx context.Context, patterns ...string) (*Result, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     l.opts.Dir,
		Overlay: l.opts.Overlay,
	}

	if len(l.opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(l.opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError || l.inGenerated(e) {
				l.log.Debug("ignoring error", "pkg", pkg.PkgPath, "err", e.Msg)
				continue
			}

			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	res := &Result{}
	wanted := l.wantedTypes()

	var declared []string

	for _, pkg := range pkgs {
		files, generated := l.processPackage(pkg, wanted)
		res.Files = append(res.Files, files...)
		res.Generated = append(res.Generated, generated...)
		declared = append(declared, typeNames(pkg)...)
	}

	for _, name := range slices.Sorted(maps.Keys(wanted)) {
		if wanted[name].found {
			continue
		}

		d := diagnostic.NewError(diagnostic.CodeUnknownType, token.Position{}, name, "",
			"type listed in configuration was not found in the loaded packages")
		for _, s := range match.Closest(name, declared, maxSuggestions) {
			d.Suggestions = append(d.Suggestions, "did you mean "+s+"?")
		}

		res.Diagnostics.Add(*d)
	}

	return res, nil
}

// inGenerated reports whether e comes from a generated file, such as an
// import of a runtime path that no longer resolves.
func (l *Loader) inGenerated(e packages.Error) bool {
	file := e.Pos
	for range 2 {
		if i := strings.LastIndexByte(file, ':'); i >= 0 {
			file = file[:i]
		}
	}

	if strings.HasSuffix(file, l.opts.GeneratedSuffix) {
		return true
	}

	return strings.Contains(e.Msg, l.opts.GeneratedSuffix+":")
}

// processPackage extracts the selected declarations of one package, and
// lists its generated files.
func (l *Loader) processPackage(pkg *packages.Package, wanted map[string]*selection) ([]*File, []string) {
	var scope []string
	if pkg.Types != nil {
		scope = pkg.Types.Scope().Names()
	}

	var (
		files     []*File
		generated []string
	)

	for _, syntax := range pkg.Syntax {
		filename := pkg.Fset.File(syntax.Pos()).Name()

		if hasGeneratedHeader(syntax) {
			generated = append(generated, filename)
			continue
		}

		if strings.HasSuffix(filename, l.opts.GeneratedSuffix) {
			continue
		}

		f := newFile(pkg.Fset, filename, syntax, wanted)
		if len(f.Decls) == 0 {
			continue
		}

		f.PkgPath = pkg.PkgPath
		f.Scope = scope
		f.info = pkg.TypesInfo

		l.log.Debug("selected declarations", "file", filename, "count", len(f.Decls))
		files = append(files, f)
	}

	return files, generated
}

// hasGeneratedHeader reports whether syntax starts with GeneratedHeader.
func hasGeneratedHeader(syntax *ast.File) bool {
	if len(syntax.Comments) == 0 {
		return false
	}

	first := syntax.Comments[0]

	return first.Pos() < syntax.Package && first.List[0].Text == GeneratedHeader
}

const maxSuggestions = 3

// typeNames lists the package-level types of pkg.
func typeNames(pkg *packages.Package) []string {
	if pkg.Types == nil {
		return nil
	}

	var names []string

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		if _, ok := scope.Lookup(name).(*types.TypeName); ok {
			names = append(names, name)
		}
	}

	return names
}

type selection struct {
	tuple bool
	found bool
}

func (l *Loader) wantedTypes() map[string]*selection {
	wanted := make(map[string]*selection)
	for _, name := range l.opts.Types {
		wanted[name] = &selection{}
	}

	for _, name := range l.opts.Tuples {
		wanted[name] = &selection{tuple: true}
	}

	return wanted
}

// ParseSource parses a single file without go/packages and collects its
// directive-marked declarations. Constraint imports are resolved from the
// file's import specs only.
func ParseSource(fset *token.FileSet, filename string, src any) (*File, error) {
	syntax, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	f := newFile(fset, filename, syntax, nil)
	f.Scope = declaredNames(syntax)

	return f, nil
}

// declaredNames lists the package-level identifiers declared in one file.
func declaredNames(syntax *ast.File) []string {
	var names []string

	for _, decl := range syntax.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				names = append(names, d.Name.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						names = append(names, n.Name)
					}
				}
			}
		}
	}

	return names
}

func newFile(fset *token.FileSet, filename string, syntax *ast.File, wanted map[string]*selection) *File {
	f := &File{
		Path:    filename,
		Package: syntax.Name.Name,
		Imports: importTable(syntax),
	}

	for _, decl := range syntax.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			groups := []*ast.CommentGroup{ts.Doc}
			if len(gen.Specs) == 1 {
				groups = append(groups, gen.Doc)
			}

			found, tuple := parseDirective(groups...)
			if sel, ok := wanted[ts.Name.Name]; ok {
				sel.found = true
				found = true
				tuple = tuple || sel.tuple
			}

			if !found {
				continue
			}

			f.Decls = append(f.Decls, Declaration{
				Spec:  ts,
				Tuple: tuple,
				Pos:   fset.Position(ts.Name.Pos()),
			})
		}
	}

	return f
}

// importTable maps local names to import paths. Dot and blank imports are
// skipped; unnamed imports use the last path element.
func importTable(syntax *ast.File) map[string]string {
	table := make(map[string]string, len(syntax.Imports))

	for _, imp := range syntax.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		name := common.PkgAlias(path)
		if imp.Name != nil {
			name = imp.Name.Name
		}

		if name == "_" || name == "." {
			continue
		}

		table[name] = path
	}

	return table
}

// Info exposes type information for the file, nil when parsed with
// ParseSource.
func (f *File) Info() *types.Info {
	return f.info
}
