package combat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/encounter/internal/entity"
)

// Outcome is how an encounter ended.
type Outcome int

const (
	OutcomeVictory Outcome = iota
	OutcomeDefeat
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Result summarises a finished encounter.
type Result struct {
	Outcome        Outcome
	Rounds         int
	Survivors      int
	ExperienceEach int
}

// OutcomeResolver handles the end of an encounter: rewards on a win,
// teardown on a loss.
type OutcomeResolver struct {
	allies    []*entity.Combatant
	ui        UI
	scenes    SceneLoader
	session   Session
	encounter Encounter
	cfg       Config
	log       zerolog.Logger
	tracer    trace.Tracer
}

// Resolve runs the victory or defeat sequence.
func (o *OutcomeResolver) Resolve(ctx context.Context, win bool) (Result, error) {
	ctx, span := o.tracer.Start(ctx, "combat.end")
	defer span.End()

	var (
		result Result
		err    error
	)
	if win {
		result, err = o.victory(ctx)
	} else {
		result, err = o.defeat(ctx)
	}

	span.SetAttributes(
		attribute.String("outcome", result.Outcome.String()),
		attribute.Int("survivors", result.Survivors),
		attribute.Int("experience_each", result.ExperienceEach),
		attribute.Int("party_hp_remaining", o.totalAllyHP()),
	)
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

func (o *OutcomeResolver) victory(ctx context.Context) (Result, error) {
	result := Result{Outcome: OutcomeVictory}

	if err := o.ui.ShowMessage(ctx, "V I C T O R Y !", o.cfg.VictoryDelay); err != nil {
		return result, fmt.Errorf("victory message: %w", err)
	}

	var survivors []*entity.Combatant
	for _, ally := range o.allies {
		ally.EndBattle()
		if ally.IsAlive() {
			survivors = append(survivors, ally)
		}
	}
	result.Survivors = len(survivors)

	if len(survivors) == 0 {
		// Everyone fell in the same exchange as the last enemy.
		o.log.Warn().Str("encounter", o.encounter.Name).Msg("victory with no survivors, experience not awarded")
	} else {
		perUnit := float64(o.encounter.Experience) / float64(len(survivors))
		result.ExperienceEach = int(perUnit)

		msg := fmt.Sprintf("The party gained %d experience each!", result.ExperienceEach)
		if err := o.ui.ShowMessage(ctx, msg, o.cfg.ExperienceDelay); err != nil {
			return result, fmt.Errorf("experience message: %w", err)
		}
		for _, s := range survivors {
			s.ReceiveExperience(result.ExperienceEach)
		}
	}

	o.log.Info().
		Str("encounter", o.encounter.Name).
		Int("survivors", result.Survivors).
		Int("experience_each", result.ExperienceEach).
		Msg("victory")
	o.scenes.LoadScene(SceneTravel)
	return result, nil
}

func (o *OutcomeResolver) defeat(ctx context.Context) (Result, error) {
	result := Result{Outcome: OutcomeDefeat}

	if err := o.ui.ShowMessage(ctx, "The party was defeated!", o.cfg.DefeatDelay); err != nil {
		return result, fmt.Errorf("defeat message: %w", err)
	}

	o.log.Info().Str("encounter", o.encounter.Name).Msg("defeat")
	o.scenes.LoadScene(SceneFrontEnd)

	if o.session != nil {
		if err := o.session.Close(); err != nil {
			return result, fmt.Errorf("close session: %w", err)
		}
	}
	return result, nil
}

func (o *OutcomeResolver) totalAllyHP() int {
	total := 0
	for _, ally := range o.allies {
		total += ally.Stats.HP
	}
	return total
}
