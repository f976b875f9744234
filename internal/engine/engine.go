// File: internal/engine/engine.go
// Description: Runs the synchronous resolve -> validate -> build pipeline for
// one goal against a loaded manifest. It is injected with its components via
// interfaces, making it decoupled and testable.

package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MLouchini/sitepilot/api/schemas"
	"github.com/MLouchini/sitepilot/internal/config"
	"github.com/MLouchini/sitepilot/internal/trace"
)

// Engine executes one goal-to-action invocation at a time. The manifest it is
// handed is read-only shared state, so any number of invocations may run
// concurrently against the same manifest without synchronization; everything
// else an invocation touches is owned by that invocation alone.
type Engine struct {
	cfg       config.EngineConfig
	logger    *zap.Logger
	resolver  schemas.ActionResolver
	validator schemas.ConstraintValidator
	binder    schemas.Binder // optional; nil means no binding adapter
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithBinder attaches a UI-binding adapter. The binder is consulted for
// provenance attribution only and never gates validation.
func WithBinder(b schemas.Binder) Option {
	return func(e *Engine) { e.binder = b }
}

// New creates an Engine with its dependencies.
func New(cfg config.EngineConfig, logger *zap.Logger, resolver schemas.ActionResolver, validator schemas.ConstraintValidator, opts ...Option) (*Engine, error) {
	if logger == nil || resolver == nil || validator == nil {
		return nil, fmt.Errorf("cannot initialize engine with nil dependencies")
	}
	if cfg.ValidationConcurrency <= 0 {
		cfg.ValidationConcurrency = 1
	}
	e := &Engine{
		cfg:       cfg,
		logger:    logger.Named("engine"),
		resolver:  resolver,
		validator: validator,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes the pipeline: resolve the goal to an action, validate every
// declared input, and build the trace. Hard failures (resolution) abort
// before any trace exists; every per-slot problem is captured inside the
// built trace so failed goals stay fully auditable. A started pipeline always
// runs to completion; it is a pure computation over already-available inputs.
func (e *Engine) Run(ctx context.Context, m *schemas.Manifest, goal schemas.GoalInstance) (*schemas.TraceRecord, error) {
	rec := trace.NewRecorder()
	rec.Record(fmt.Sprintf("Goal %q received", goal.Description))

	action, err := e.resolver.Resolve(m, goal)
	if err != nil {
		e.logger.Warn("Goal resolution failed",
			zap.String("goal_id", goal.ID),
			zap.Error(err))
		return nil, fmt.Errorf("resolving goal: %w", err)
	}
	rec.Record(fmt.Sprintf("Resolved action %q from manifest %s", action.ID, m.Origin))

	// Snapshot the supplied values for the action's declared slots. The
	// snapshot, not the caller's map, is what validation and the trace see.
	inputs := make(map[string]string, len(action.Inputs))
	for _, in := range action.Inputs {
		if raw, ok := goal.Values[in.Name]; ok {
			inputs[in.Name] = raw
		}
	}

	verdicts := e.validateAll(action, goal)
	for _, v := range verdicts {
		rec.Record(fmt.Sprintf("Validated slot %q: %s", v.Slot, v.Reason))
	}

	builder := trace.NewBuilder(m.Origin)
	if e.binder != nil {
		e.consultBinder(ctx, action, inputs, rec, builder)
	}

	record := builder.Build(action, goal, inputs, verdicts, rec.Steps())

	e.logger.Info("Invocation trace built",
		zap.String("trace_id", record.TraceID),
		zap.String("action_id", record.ActionID),
		zap.Bool("all_valid", record.AllValid()))
	return record, nil
}

// validateAll fans validation of distinct slots out across a bounded group.
// Slots have no ordering dependency on each other, but verdicts are indexed
// by declared position so the trace always reports them in the action's
// declared input order, not completion order.
func (e *Engine) validateAll(action *schemas.Action, goal schemas.GoalInstance) []schemas.ValidationVerdict {
	verdicts := make([]schemas.ValidationVerdict, len(action.Inputs))

	var g errgroup.Group
	g.SetLimit(e.cfg.ValidationConcurrency)
	for i, in := range action.Inputs {
		i, in := i, in
		g.Go(func() error {
			raw, present := goal.Values[in.Name]
			verdicts[i] = e.validator.Validate(in, raw, present)
			return nil
		})
	}
	// Validators never return errors; verdicts carry all failures as data.
	_ = g.Wait()

	return verdicts
}

// consultBinder asks the optional binding adapter for field locators. Binding
// is presentation-only: a failure is logged and the pipeline proceeds
// unchanged, and a success contributes exactly one provenance entry.
func (e *Engine) consultBinder(ctx context.Context, action *schemas.Action, inputs map[string]string, rec *trace.Recorder, builder *trace.Builder) {
	locators, err := e.binder.Bind(ctx, action, inputs)
	if err != nil {
		e.logger.Warn("Binding adapter declined to bind",
			zap.String("action_id", action.ID),
			zap.Error(err))
		return
	}
	builder.WithBindingOrigin(e.binder.Origin())
	rec.Record(fmt.Sprintf("Bound %d slot(s) via %s", len(locators), e.binder.Origin()))
}
