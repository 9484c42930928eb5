// Package display renders conform check reports to a terminal.
//
// All output goes through an injected io.Writer for testability. Colors
// follow the usual conventions (red for violations, yellow for the
// failure summary, green for success) and are disabled automatically when
// the writer is not a TTY, or explicitly via NoColor.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/conform/internal/checker"
)

// colorScheme defines consistent colors for report output.
type colorScheme struct {
	problem *color.Color
	summary *color.Color
	success *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		problem: color.New(color.FgRed),
		summary: color.New(color.FgYellow),
		success: color.New(color.FgGreen),
	}
	if !enabled {
		s.problem.DisableColor()
		s.summary.DisableColor()
		s.success.DisableColor()
	}
	return s
}

// Report renders check outcomes.
type Report struct {
	writer io.Writer
	scheme *colorScheme
}

// NewReport creates a report renderer. Color is enabled only when the
// writer is a terminal and noColor is false.
func NewReport(w io.Writer, noColor bool) *Report {
	return &Report{
		writer: w,
		scheme: newColorScheme(!noColor && isTerminal(w)),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Problems prints every problem on its own line followed by a
// count-bearing summary. Problems print in the order they were found;
// that order is part of the tool's contract.
func (r *Report) Problems(problems []checker.Problem) {
	for _, p := range problems {
		fmt.Fprintf(r.writer, "%s %s\n", r.scheme.problem.Sprint("✗"), p.Error())
	}
	fmt.Fprintln(r.writer, r.scheme.summary.Sprintf("Found %d problem(s)", len(problems)))
}

// Success prints the all-clear line.
func (r *Report) Success(itemCount int) {
	fmt.Fprintf(r.writer, "%s Checked %d item(s), no problems found\n", r.scheme.success.Sprint("✓"), itemCount)
}
