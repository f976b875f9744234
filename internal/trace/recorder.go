// File: internal/trace/recorder.go
package trace

import (
	"time"

	"github.com/MLouchini/sitepilot/api/schemas"
)

// Recorder accumulates the ordered step log of one invocation. Steps are
// append-only and numbered from 1 in the order they are recorded. Nothing
// here paces or reorders them; wall-clock narration belongs to the
// presentation layer.
type Recorder struct {
	steps []schemas.StepRecord
	now   func() time.Time
}

// NewRecorder creates an empty step recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// WithClock overrides the timestamp source. Intended for tests that need
// deterministic step times.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record appends one step with the next sequence number.
func (r *Recorder) Record(note string) {
	r.steps = append(r.steps, schemas.StepRecord{
		Step: len(r.steps) + 1,
		Time: r.now(),
		Note: note,
	})
}

// Steps returns a copy of the recorded log, in recording order.
func (r *Recorder) Steps() []schemas.StepRecord {
	out := make([]schemas.StepRecord, len(r.steps))
	copy(out, r.steps)
	return out
}
