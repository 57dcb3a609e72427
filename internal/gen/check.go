package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Stale describes a generated file whose content on disk differs from what
// the generator would write.
type Stale struct {
	Filename string
	Missing  bool
	// Orphaned files exist on disk but nothing selects them any more.
	Orphaned bool
	Diff     string
}

// Check compares generated files with their counterparts on disk. Every
// file in orphans is reported as stale.
func Check(files []GeneratedFile, orphans []string) ([]Stale, error) {
	var stale []Stale

	for _, file := range files {
		current, err := os.ReadFile(file.Filename)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", file.Filename, err)
		}

		if err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		stale = append(stale, Stale{
			Filename: file.Filename,
			Missing:  err != nil,
			Diff:     LineDiff(string(current), string(file.Content)),
		})
	}

	for _, name := range orphans {
		current, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		stale = append(stale, Stale{
			Filename: name,
			Orphaned: true,
			Diff:     LineDiff(string(current), ""),
		})
	}

	return stale, nil
}

// Orphans returns the files in existing that files no longer produce: their
// declarations lost the directive, were removed or, with embedding off, no
// longer derive.
func Orphans(existing []string, files []GeneratedFile) []string {
	produced := make(map[string]bool, len(files))
	for _, file := range files {
		produced[filepath.Clean(file.Filename)] = true
	}

	var orphans []string

	for _, name := range existing {
		if !produced[filepath.Clean(name)] {
			orphans = append(orphans, name)
		}
	}

	slices.Sort(orphans)

	return slices.Compact(orphans)
}

// LineDiff renders a line-oriented diff from old to new. Removed lines are
// prefixed with "-", added lines with "+" and unchanged lines with a space.
// Runs of unchanged lines longer than twice contextLines are elided.
func LineDiff(oldText, newText string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder

	for i, d := range diffs {
		chunk := splitLines(d.Text)

		switch d.Type {
		case diffpatch.DiffDelete:
			writeLines(&sb, "-", chunk)
		case diffpatch.DiffInsert:
			writeLines(&sb, "+", chunk)
		case diffpatch.DiffEqual:
			writeContext(&sb, chunk, i > 0, i < len(diffs)-1)
		}
	}

	return sb.String()
}

const contextLines = 3

func writeContext(sb *strings.Builder, chunk []string, before, after bool) {
	head, tail := 0, 0
	if before {
		head = contextLines
	}

	if after {
		tail = contextLines
	}

	if len(chunk) <= head+tail {
		writeLines(sb, " ", chunk)
		return
	}

	writeLines(sb, " ", chunk[:head])

	if skipped := len(chunk) - head - tail; skipped > 0 {
		fmt.Fprintf(sb, "@@ %d unchanged lines @@\n", skipped)
	}

	writeLines(sb, " ", chunk[len(chunk)-tail:])
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
