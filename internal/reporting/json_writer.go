// File: internal/reporting/json_writer.go
package reporting

import (
	"fmt"
	"io"

	json "github.com/json-iterator/go"

	"github.com/MLouchini/sitepilot/api/schemas"
)

// JSONWriter serializes trace records as indented JSON, one document per
// Write. The emitted field names are the wire contract audit viewers parse;
// they come straight from the schemas struct tags.
type JSONWriter struct {
	out io.WriteCloser
}

// NewJSONWriter creates a JSON trace writer. It takes ownership of out.
func NewJSONWriter(out io.WriteCloser) *JSONWriter {
	return &JSONWriter{out: out}
}

// Write implements schemas.TraceWriter.
func (w *JSONWriter) Write(record *schemas.TraceRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize trace %s: %w", record.TraceID, err)
	}
	if _, err := w.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write trace %s: %w", record.TraceID, err)
	}
	return nil
}

// Close implements schemas.TraceWriter.
func (w *JSONWriter) Close() error {
	return w.out.Close()
}
