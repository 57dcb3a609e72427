package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"jsderive/internal/common"
)

// Diagnostic codes reported by the shape classifier.
const (
	CodeEnum             = "JD001" // non-struct defined type (enum-like)
	CodeUnion            = "JD002" // interface type set (union-like)
	CodeUnsupportedDecl  = "JD003" // alias or any other non-struct declaration
	CodeUnsupportedField = "JD004" // field type with no by-value/by-reference reading
	CodeEmbeddedField    = "JD005" // embedded field of unsupported form
	CodeUnknownType      = "JD006" // type requested by configuration was not found
	CodeBlankField       = "JD007" // blank fields are left out of the conversion
)

// Diagnostics holds all diagnostic information from a generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypeName is the declaration this relates to (if any).
	TypeName string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Pos is the source position of the declaration or field.
	Pos token.Position
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// NewError builds an error diagnostic for a declaration.
func NewError(code string, pos token.Position, typeName, fieldPath, message string) *Diagnostic {
	return &Diagnostic{
		Severity:  DiagnosticError,
		Code:      code,
		Message:   message,
		TypeName:  typeName,
		FieldPath: fieldPath,
		Pos:       pos,
	}
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, fieldPath string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      code,
		Message:   message,
		TypeName:  typeName,
		FieldPath: fieldPath,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Summary is the diagnostic without its position, as embedded in generated
// code where a //line directive supplies the position.
func (d Diagnostic) Summary() string {
	var prefix []string
	if d.TypeName != "" {
		prefix = append(prefix, d.TypeName)
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, ".") + ": " + msg
	}

	return msg
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return d.Pos.String() + ": " + d.Summary()
	}

	return d.Summary()
}
