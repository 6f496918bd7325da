// Package output provides consistent CLI text formatting for repoindex's
// subcommands: plain status lines for human-facing runs, JSON for
// --format json, independent of the styling any particular terminal
// supports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Writer formats status and result output for one command invocation.
type Writer struct {
	out io.Writer
}

// New creates a Writer over out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Status prints a plain status line.
func (w *Writer) Status(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Statusf prints a formatted status line.
func (w *Writer) Statusf(format string, args ...any) {
	w.Status(fmt.Sprintf(format, args...))
}

// Error prints an error line prefixed for visual distinction from Status.
func (w *Writer) Error(msg string) {
	_, _ = fmt.Fprintf(w.out, "error: %s\n", msg)
}

// Errorf prints a formatted error line.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// JSON writes v to out as indented JSON, for --format json.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
