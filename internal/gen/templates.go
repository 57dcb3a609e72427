package gen

import (
	"strconv"
	"text/template"

	"jsderive/internal/analyze"
)

// Header is the first line of every generated file.
const Header = analyze.GeneratedHeader

// fileData holds everything rendered into one generated file.
type fileData struct {
	Package string
	Imports []importGroup
	Impls   []implData
	Errors  []embeddedError
	RT      string // local name of the runtime package
}

type importGroup []importSpec

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// implData is one TryToJS method plus its interface assertion.
type implData struct {
	Name  string
	RT    string
	Named bool
	signature

	// Local identifiers, chosen by a namer.
	Recv   string
	Env    string
	Err    string
	Handle string // named only
	Obj    string // named only
	Arr    string // positional only

	Len   int
	Steps []stepData
}

// stepData converts one field and stores it in the result.
type stepData struct {
	Temp  string
	Value string // expression passed to Convert
	Key   string // named: quoted property key
	Index int    // positional: element index
}

// embeddedError re-emits a classifier failure as a compile error at the
// declaration.
type embeddedError struct {
	Line    string // line directive, e.g. "/*line user.go:12:6*/"
	Summary string
}

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

var fileTemplate = template.Must(template.New("file").Funcs(funcs).Parse(Header + `

package {{.Package}}

import (
{{range $i, $g := .Imports}}{{if $i}}
{{end}}{{range $g}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{end}})
{{range .Impls}}
{{if .Named}}{{template "named" .}}{{else}}{{template "positional" .}}{{end}}
{{template "assert" .}}
{{end}}
{{range .Errors}}
// {{.Summary}}
var _ {{$.RT}}.DeriveError = {{.Line}}{{quote .Summary}}
{{end}}
{{- define "named"}}// TryToJS converts {{.Name}} into an object.
func ({{.Recv}} {{.Instance}}) TryToJS({{.Env}} *{{.RT}}.Env) ({{.RT}}.Value, error) {
	{{.Handle}}, {{.Err}} := {{.Env}}.CreateObject()
	if {{.Err}} != nil {
		return 0, {{.Err}}
	}

	{{.Obj}} := {{.RT}}.NewObject({{.Env}}, {{.Handle}})
{{range .Steps}}
	{{.Temp}}, {{$.Err}} := {{$.RT}}.Convert({{$.Env}}, {{.Value}})
	if {{$.Err}} != nil {
		return 0, {{$.Err}}
	}

	if {{$.Err}} := {{$.Obj}}.SetProperty({{.Key}}, {{.Temp}}); {{$.Err}} != nil {
		return 0, {{$.Err}}
	}
{{end}}
	return {{.Obj}}.TryToJS({{.Env}})
}
{{end}}
{{- define "positional"}}// TryToJS converts {{.Name}} into an array of {{.Len}} elements.
func ({{.Recv}} {{.Instance}}) TryToJS({{.Env}} *{{.RT}}.Env) ({{.RT}}.Value, error) {
	{{.Arr}}, {{.Err}} := {{.Env}}.CreateArrayWithLen({{.Len}})
	if {{.Err}} != nil {
		return 0, {{.Err}}
	}
{{range .Steps}}
	{{.Temp}}, {{$.Err}} := {{$.RT}}.Convert({{$.Env}}, {{.Value}})
	if {{$.Err}} != nil {
		return 0, {{$.Err}}
	}

	if {{$.Err}} := {{$.Env}}.SetElement({{$.Arr}}, {{.Temp}}, {{.Index}}); {{$.Err}} != nil {
		return 0, {{$.Err}}
	}
{{end}}
	return {{.Arr}}, nil
}
{{end}}
{{- define "assert"}}{{if .Generic}}
func _[{{.TypeParams}}]() {
	var _ {{.RT}}.TryIntoJS = {{.Instance}}{}
}
{{else}}
var _ {{.RT}}.TryIntoJS = {{.Instance}}{}
{{end}}{{end}}`))
