// File: internal/narrator/narrator.go
// Description: Human-watchable playback of an already-built trace. Pacing
// lives entirely here, outside the core pipeline: the engine never waits on
// anything, and the narrator never influences validation or step ordering.

package narrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/MLouchini/sitepilot/api/schemas"
	"github.com/MLouchini/sitepilot/internal/config"
)

// Narrator replays a trace's step log at a configured rate.
type Narrator struct {
	logger  *zap.Logger
	limiter *rate.Limiter
}

// New creates a Narrator pacing playback at cfg.StepsPerSecond.
func New(cfg config.NarratorConfig, logger *zap.Logger) *Narrator {
	sps := cfg.StepsPerSecond
	if sps <= 0 {
		sps = 1
	}
	return &Narrator{
		logger:  logger.Named("narrator"),
		limiter: rate.NewLimiter(rate.Limit(sps), 1),
	}
}

// Replay logs the trace's steps in order, waiting on the rate limiter between
// steps. The trace is read-only here; cancellation stops playback without
// touching the record.
func (n *Narrator) Replay(ctx context.Context, record *schemas.TraceRecord) error {
	for _, step := range record.Steps {
		if err := n.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("narration interrupted: %w", err)
		}
		n.logger.Info(step.Note,
			zap.Int("step", step.Step),
			zap.Time("at", step.Time))
	}
	n.logger.Info(record.ResultSummary, zap.String("trace_id", record.TraceID))
	return nil
}
