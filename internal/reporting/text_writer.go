// File: internal/reporting/text_writer.go
package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/MLouchini/sitepilot/api/schemas"
)

// TextWriter renders a trace as a human-readable report. It is a convenience
// surface; the JSON writer carries the machine contract.
type TextWriter struct {
	out io.WriteCloser
}

// NewTextWriter creates a text trace writer. It takes ownership of out.
func NewTextWriter(out io.WriteCloser) *TextWriter {
	return &TextWriter{out: out}
}

// Write implements schemas.TraceWriter.
func (w *TextWriter) Write(record *schemas.TraceRecord) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Trace %s\n", record.TraceID)
	fmt.Fprintf(&b, "Goal:   %s", record.Goal)
	if record.GoalID != "" {
		fmt.Fprintf(&b, " (%s)", record.GoalID)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Action: %s\n\n", record.ActionID)

	b.WriteString("Validation:\n")
	for _, v := range record.ValidationResults {
		status := "FAIL"
		if v.Valid {
			status = "ok"
		}
		fmt.Fprintf(&b, "  [%-4s] %-16s %s\n", status, v.Slot, v.Reason)
	}

	b.WriteString("\nSteps:\n")
	for _, s := range record.Steps {
		fmt.Fprintf(&b, "  %2d. %s\n", s.Step, s.Note)
	}

	fmt.Fprintf(&b, "\n%s\n", record.ResultSummary)

	_, err := io.WriteString(w.out, b.String())
	return err
}

// Close implements schemas.TraceWriter.
func (w *TextWriter) Close() error {
	return w.out.Close()
}
