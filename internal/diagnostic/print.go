package diagnostic

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes diagnostics, one per line.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a Printer writing to w. Colour is enabled only when w is
// a terminal and NO_COLOR is unset.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{w: w}

	if f, ok := w.(*os.File); ok && !color.NoColor {
		p.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return p
}

// WithColor forces colour on or off.
func (p *Printer) WithColor(enabled bool) *Printer {
	p.color = enabled
	return p
}

// Print writes all diagnostics in d and returns the first write error.
func (p *Printer) Print(d *Diagnostics) error {
	for _, diag := range d.All() {
		if err := p.PrintOne(diag); err != nil {
			return err
		}
	}

	return nil
}

// PrintOne writes a single diagnostic.
func (p *Printer) PrintOne(d Diagnostic) error {
	sev := p.paint(severityColor(d.Severity), d.Severity.String())

	var err error
	if d.Pos.IsValid() {
		loc := p.paint(color.New(color.Bold), d.Pos.String())
		_, err = fmt.Fprintf(p.w, "%s: %s: %s\n", loc, sev, d.Summary())
	} else {
		_, err = fmt.Fprintf(p.w, "%s: %s\n", sev, d.Summary())
	}

	if err != nil {
		return err
	}

	for _, s := range d.Suggestions {
		if _, err := fmt.Fprintf(p.w, "\thint: %s\n", s); err != nil {
			return err
		}
	}

	return nil
}

func (p *Printer) paint(c *color.Color, s string) string {
	if !p.color {
		return s
	}

	c.EnableColor()

	return c.Sprint(s)
}

func severityColor(s DiagnosticSeverity) *color.Color {
	switch s {
	case DiagnosticError:
		return color.New(color.FgRed, color.Bold)
	case DiagnosticWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
