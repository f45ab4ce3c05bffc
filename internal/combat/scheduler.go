package combat

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/encounter/internal/entity"
	"github.com/samdwyer/encounter/internal/telemetry"
)

// BattleState is where the scheduler is in the round/turn lifecycle.
type BattleState int

const (
	StateRoundStart BattleState = iota
	StatePlayerTurn
	StateEnemyTurn
	StateResolvingActions
	StateVictory
	StateDefeat
)

// String returns a human-readable state name.
func (s BattleState) String() string {
	switch s {
	case StateRoundStart:
		return "round_start"
	case StatePlayerTurn:
		return "player_turn"
	case StateEnemyTurn:
		return "enemy_turn"
	case StateResolvingActions:
		return "resolving_actions"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the battle is over.
func (s BattleState) IsTerminal() bool {
	return s == StateVictory || s == StateDefeat
}

// Deps is everything the scheduler talks to. Party, Enemies, UI, Decider and
// Scenes are required.
type Deps struct {
	Party     *entity.Party
	Enemies   []*entity.Combatant // Display order
	UI        UI
	Presenter ActionPresenter // Defaults to ImmediatePresenter
	Decider   EnemyDecider
	Scenes    SceneLoader
	Session   Session // Optional; closed after a defeat
	Encounter Encounter
	Rand      *rand.Rand     // Accuracy rolls; seeded from the clock if nil
	Logger    zerolog.Logger // Zero value discards
	Tracer    trace.Tracer   // Defaults to telemetry.Tracer("combat")
	Meter     metric.Meter   // Defaults to telemetry.Meter("combat")
}

// Scheduler owns the round/turn lifecycle of one encounter.
//
// Turn order each round is roster order: party members in party order, then
// enemies in display order. Speed only feeds each unit's act timer.
type Scheduler struct {
	ui      UI
	decider EnemyDecider
	log     zerolog.Logger
	tracer  trace.Tracer
	metrics *combatMetrics

	party          *entity.Party
	roster         []*entity.Combatant // allies then enemies; the dead stay
	unitsLeftToAct []*entity.Combatant
	queue          *ActionQueue
	executor       *Executor
	outcome        *OutcomeResolver

	state   BattleState
	round   int
	current *entity.Combatant
	result  *Result
}

// NewScheduler validates deps and builds the in-battle roster.
func NewScheduler(deps Deps, cfg Config) (*Scheduler, error) {
	switch {
	case deps.UI == nil:
		return nil, fmt.Errorf("new scheduler: %w: UI", ErrMissingCollaborator)
	case deps.Decider == nil:
		return nil, fmt.Errorf("new scheduler: %w: enemy decider", ErrMissingCollaborator)
	case deps.Scenes == nil:
		return nil, fmt.Errorf("new scheduler: %w: scene loader", ErrMissingCollaborator)
	case deps.Party == nil || len(deps.Party.Members) == 0:
		return nil, fmt.Errorf("new scheduler: %w: no party members", ErrEmptyRoster)
	case len(deps.Enemies) == 0:
		return nil, fmt.Errorf("new scheduler: %w: no enemies", ErrEmptyRoster)
	}

	if deps.Presenter == nil {
		deps.Presenter = ImmediatePresenter{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Tracer == nil {
		deps.Tracer = telemetry.Tracer("combat")
	}

	if deps.Meter == nil {
		deps.Meter = telemetry.Meter("combat")
	}

	metrics, err := newCombatMetrics(deps.Meter)
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}

	roster := make([]*entity.Combatant, 0, len(deps.Party.Members)+len(deps.Enemies))
	roster = append(roster, deps.Party.Members...)
	roster = append(roster, deps.Enemies...)

	return &Scheduler{
		ui:      deps.UI,
		decider: deps.Decider,
		log:     deps.Logger,
		tracer:  deps.Tracer,
		metrics: metrics,
		party:   deps.Party,
		roster:  roster,
		queue:   NewActionQueue(cfg.Compare),
		executor: &Executor{
			resolver:  NewEffectResolver(deps.Rand),
			presenter: deps.Presenter,
			timeout:   cfg.ActionTimeout,
			log:       deps.Logger,
			tracer:    deps.Tracer,
			metrics:   metrics,
		},
		outcome: &OutcomeResolver{
			allies:    deps.Party.Members,
			ui:        deps.UI,
			scenes:    deps.Scenes,
			session:   deps.Session,
			encounter: deps.Encounter,
			cfg:       cfg,
			log:       deps.Logger,
			tracer:    deps.Tracer,
		},
		state: StateRoundStart,
	}, nil
}

// Run starts the first round and takes turns until the battle ends.
func (s *Scheduler) Run(ctx context.Context) (Result, error) {
	if err := s.BeginRound(ctx); err != nil {
		return Result{}, err
	}
	for !s.state.IsTerminal() {
		if err := s.NextTurn(ctx); err != nil {
			return Result{}, err
		}
	}
	return *s.result, nil
}

// BeginRound rebuilds the turn list from the whole roster, clears guards,
// resets act timers, ticks status effects and takes the first turn.
func (s *Scheduler) BeginRound(ctx context.Context) error {
	if s.state.IsTerminal() {
		return nil
	}

	s.round++
	s.state = StateRoundStart
	s.current = nil

	_, span := s.tracer.Start(ctx, "combat.round")
	span.SetAttributes(attribute.Int("round", s.round))

	s.unitsLeftToAct = make([]*entity.Combatant, 0, len(s.roster))
	for _, unit := range s.roster {
		unit.Guarded = false
		unit.ResetActTimer(0)
		s.unitsLeftToAct = append(s.unitsLeftToAct, unit)
	}
	for _, unit := range s.roster {
		for _, tick := range unit.TickStatusEffects() {
			s.log.Debug().
				Str("unit", unit.Name).
				Str("status", string(tick.Type)).
				Int("amount", tick.Amount).
				Bool("ended", tick.Ended).
				Msg("status tick")
		}
	}

	// Targets stay locked until a party member's turn opens them.
	s.EnemyButtonsInteractable(false)

	span.SetAttributes(attribute.Int("units", len(s.unitsLeftToAct)))
	span.End()
	s.metrics.rounds.Add(ctx, 1)
	s.log.Debug().Int("round", s.round).Int("units", len(s.unitsLeftToAct)).Msg("round started")

	return s.NextTurn(ctx)
}

// NextTurn advances one step: ends the battle if a side is wiped out, resolves
// the round once everyone has had a turn, or lets the next living unit act.
// Dead units are dropped from the turn list without acting. Calling NextTurn
// after the battle has ended does nothing.
func (s *Scheduler) NextTurn(ctx context.Context) error {
	for {
		if s.state.IsTerminal() {
			return nil
		}

		if s.livingEnemies() == 0 {
			return s.finish(ctx, true)
		}
		if s.party.IsDefeated() {
			return s.finish(ctx, false)
		}

		if len(s.unitsLeftToAct) == 0 {
			return s.resolveRound(ctx)
		}

		unit := s.unitsLeftToAct[0]
		s.unitsLeftToAct = s.unitsLeftToAct[1:]

		if unit.IsDead() {
			s.log.Debug().Str("unit", unit.Name).Msg("skipping dead unit")
			continue
		}
		return s.takeTurn(ctx, unit)
	}
}

// Submit adds an action to the round's pending buffer. Nil actions, ownerless
// actions and actions from dead owners are dropped. Returns whether the action
// was accepted.
func (s *Scheduler) Submit(a *Action) bool {
	switch {
	case a == nil:
		s.log.Warn().Msg("nil action submitted, skipping")
		return false
	case a.Owner == nil:
		s.log.Warn().Stringer("action", a).Msg("action has no owner, skipping")
		return false
	case a.Owner.IsDead():
		s.log.Debug().Stringer("action", a).Msg("action from dead unit, skipping")
		return false
	}
	if err := s.queue.Add(a); err != nil {
		s.log.Warn().Err(err).Msg("action rejected")
		return false
	}
	return true
}

// EnemyButtonsInteractable toggles whether living enemies can be targeted.
func (s *Scheduler) EnemyButtonsInteractable(enabled bool) {
	var living []*entity.Combatant
	for _, unit := range s.roster {
		if !unit.IsPlayer() && unit.IsAlive() {
			living = append(living, unit)
		}
	}
	s.ui.SetEnemyTargetsInteractable(living, enabled)
}

// State returns the current battle state.
func (s *Scheduler) State() BattleState { return s.state }

// Round returns the current round number, starting at 1.
func (s *Scheduler) Round() int { return s.round }

// Current returns the unit whose turn it is, or nil between turns.
func (s *Scheduler) Current() *entity.Combatant { return s.current }

// Roster returns every combatant in the battle, allies first.
func (s *Scheduler) Roster() []*entity.Combatant { return s.roster }

// UnitsLeftToAct returns a copy of the remaining turn list for this round.
func (s *Scheduler) UnitsLeftToAct() []*entity.Combatant {
	return append([]*entity.Combatant(nil), s.unitsLeftToAct...)
}

// Pending returns a copy of the actions submitted this round.
func (s *Scheduler) Pending() []*Action { return s.queue.Pending() }

// Result returns the battle result once it has ended.
func (s *Scheduler) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

func (s *Scheduler) livingEnemies() int {
	n := 0
	for _, unit := range s.roster {
		if !unit.IsPlayer() && unit.IsAlive() {
			n++
		}
	}
	return n
}

func (s *Scheduler) takeTurn(ctx context.Context, unit *entity.Combatant) error {
	ctx, span := s.tracer.Start(ctx, "combat.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("actor", unit.Name),
		attribute.String("side", unit.Side.String()),
		attribute.Int("round", s.round),
	)

	s.current = unit

	if !unit.IsPlayer() {
		s.state = StateEnemyTurn
		s.log.Debug().Str("unit", unit.Name).Msg("enemy going")
		s.Submit(s.decider.ChooseAction(unit))
		return nil
	}

	s.state = StatePlayerTurn
	if err := s.ui.ShowMessage(ctx, unit.Name+"'s Turn", s.outcome.cfg.TurnMessageDelay); err != nil {
		span.RecordError(err)
		return fmt.Errorf("turn banner for %s: %w", unit.Name, err)
	}
	s.EnemyButtonsInteractable(true)
	action, err := s.ui.PresentActionMenu(ctx, unit)
	s.EnemyButtonsInteractable(false)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("action menu for %s: %w", unit.Name, err)
	}
	s.Submit(action)
	return nil
}

// resolveRound flushes the round's actions, executes them in order and
// starts the next round.
func (s *Scheduler) resolveRound(ctx context.Context) error {
	s.state = StateResolvingActions
	s.current = nil

	n := s.queue.Flush()
	s.log.Debug().Int("round", s.round).Int("actions", n).Msg("resolving actions")

	if err := s.executor.RunQueue(ctx, s.queue); err != nil {
		return fmt.Errorf("round %d: %w", s.round, err)
	}
	return s.BeginRound(ctx)
}

func (s *Scheduler) finish(ctx context.Context, win bool) error {
	s.current = nil
	if win {
		s.state = StateVictory
	} else {
		s.state = StateDefeat
	}

	result, err := s.outcome.Resolve(ctx, win)
	result.Rounds = s.round
	s.result = &result
	if err != nil {
		return fmt.Errorf("resolve outcome: %w", err)
	}
	return nil
}
