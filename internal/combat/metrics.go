package combat

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

type combatMetrics struct {
	rounds   metric.Int64Counter
	executed metric.Int64Counter
	skipped  metric.Int64Counter
}

// newCombatMetrics registers the battle counters on m.
func newCombatMetrics(m metric.Meter) (*combatMetrics, error) {
	cm := &combatMetrics{}

	var err error
	cm.rounds, err = m.Int64Counter(
		"combat.rounds",
		metric.WithDescription("Rounds started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rounds counter: %w", err)
	}

	cm.executed, err = m.Int64Counter(
		"combat.actions.executed",
		metric.WithDescription("Actions resolved to completion"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating executed counter: %w", err)
	}

	cm.skipped, err = m.Int64Counter(
		"combat.actions.skipped",
		metric.WithDescription("Actions discarded without running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	return cm, nil
}
