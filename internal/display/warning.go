// Package display formats user-facing messages for the snapdoc CLI.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Warning represents a user-facing warning message.
type Warning struct {
	Title      string   // Main warning title
	Details    []string // Itemized details (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows the formatted warning in yellow. Color is suppressed when
// out is not a terminal.
func (w Warning) Display(out io.Writer) {
	yellow := writerColor(out, color.FgYellow)

	yellow.Fprintf(out, "Warning: %s\n", w.Title)
	for _, d := range w.Details {
		yellow.Fprintf(out, "    - %s\n", d)
	}
	if w.Suggestion != "" {
		yellow.Fprintf(out, "    Suggestion: %s\n", w.Suggestion)
	}
}

// Success prints a green confirmation line. Color is suppressed when out is
// not a terminal.
func Success(out io.Writer, format string, args ...interface{}) {
	green := writerColor(out, color.FgGreen)
	green.Fprintf(out, format+"\n", args...)
}

// writerColor builds a color for the given writer, disabled unless the
// writer is a TTY. fatih/color's global NoColor only inspects os.Stdout, so
// the per-writer check has to happen here.
func writerColor(out io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !isTerminal(out) {
		c.DisableColor()
	}
	return c
}

// isTerminal reports whether w is a TTY that supports color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ScanWarning builds the warning shown when parts of the tree could not be
// read and were skipped.
func ScanWarning(errs []error) Warning {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		details = append(details, err.Error())
	}
	title := "some directories could not be read and were skipped"
	if len(errs) == 1 {
		title = "a directory could not be read and was skipped"
	}
	return Warning{
		Title:      title,
		Details:    details,
		Suggestion: fmt.Sprintf("check permissions on the %d listed path(s) or exclude them with --exclude-dir", len(errs)),
	}
}
