package combat

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Executor resolves queued actions one at a time.
type Executor struct {
	resolver  *EffectResolver
	presenter ActionPresenter
	timeout   time.Duration
	log       zerolog.Logger
	tracer    trace.Tracer
	metrics   *combatMetrics
}

// RunQueue drains the execution queue in order. Each action either runs to
// its completion signal or, if its owner is dead, is discarded unrun. Every
// dequeued action is released afterwards.
func (e *Executor) RunQueue(ctx context.Context, q *ActionQueue) error {
	for q.Len() > 0 {
		if err := e.runOne(ctx, q.Dequeue()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) runOne(ctx context.Context, a *Action) error {
	if a.Released() {
		return fmt.Errorf("execute %s: %w", a, ErrActionReleased)
	}
	defer a.release()

	if a.Owner == nil || a.Owner.IsDead() {
		e.log.Debug().Stringer("action", a).Msg("owner down, action discarded")
		e.metrics.skipped.Add(ctx, 1)
		return nil
	}

	ctx, span := e.tracer.Start(ctx, "combat.action")
	defer span.End()
	span.SetAttributes(
		attribute.String("actor", a.Owner.Name),
		attribute.String("action", a.Name()),
		attribute.Int("priority", a.Priority),
		attribute.Int64("seq", int64(a.Seq())),
	)

	a.state = stateExecuting
	result, err := e.resolver.Resolve(a)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve failed")
		return fmt.Errorf("execute %s: %w", a, err)
	}
	a.result = result
	span.SetAttributes(
		attribute.Bool("success", result.Success),
		attribute.Int("damage", result.Damage),
		attribute.Int("healing", result.Healing),
	)

	e.presenter.PresentAction(ctx, a, result)
	if err := e.await(ctx, a); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion wait failed")
		return err
	}
	a.state = stateCompleted

	e.log.Debug().
		Stringer("action", a).
		Bool("success", result.Success).
		Str("message", result.Message).
		Msg("action resolved")
	e.metrics.executed.Add(ctx, 1)
	return nil
}

// await blocks until a's completion signal fires, ctx ends, or the timeout passes.
func (e *Executor) await(ctx context.Context, a *Action) error {
	if a.Completed() {
		return nil
	}

	var timeout <-chan time.Time
	if e.timeout > 0 {
		timer := time.NewTimer(e.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-a.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting on %s: %w", a, ctx.Err())
	case <-timeout:
		e.log.Error().Stringer("action", a).Dur("timeout", e.timeout).Msg("action stalled")
		return fmt.Errorf("%w: %s after %s", ErrStalledAction, a, e.timeout)
	}
}
