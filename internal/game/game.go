package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/encounter/internal/combat"
	"github.com/samdwyer/encounter/internal/entity"
	"github.com/samdwyer/encounter/internal/gamedata"
	"github.com/samdwyer/encounter/internal/telemetry"
	"github.com/samdwyer/encounter/internal/ui"
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	catalog  *gamedata.Catalog
	order    []*gamedata.EncounterDef
	party    *entity.Party
	rng      *rand.Rand
	log      zerolog.Logger
	tracer   trace.Tracer
	state    State
	trip     *expedition
}

// expedition is one run through the encounter list. A defeat closes it.
type expedition struct {
	next   int // index into the encounter order
	won    int
	closed bool
}

// Close ends the expedition. The party's progress is discarded.
func (e *expedition) Close() error {
	e.closed = true
	return nil
}

// New creates a new game instance on the terminal.
func New(cfg Config, log zerolog.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, screen, log)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(cfg Config, screen *ui.Screen, log zerolog.Logger) (*Game, error) {
	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load game data: %w", err)
	}
	order, err := encounterOrder(catalog.Encounters, cfg.Encounters)
	if err != nil {
		return nil, err
	}
	party, err := newParty(catalog.Classes, cfg.Party)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Int("party", len(party.Members)).Int("encounters", len(order)).Msg("game created")

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		catalog:  catalog,
		order:    order,
		party:    party,
		rng:      rand.New(rand.NewSource(seed)),
		log:      log,
		tracer:   telemetry.Tracer("game"),
		state:    StateFrontEnd,
		trip:     &expedition{},
	}, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	for g.state != StateQuit {
		var err error
		switch g.state {
		case StateFrontEnd:
			err = g.frontEnd(ctx)
		case StateCombat:
			err = g.fight(ctx)
		case StateTravel:
			err = g.travel(ctx)
		default:
			return fmt.Errorf("unknown game state %v", g.state)
		}

		if errors.Is(err, ErrQuit) {
			g.log.Info().Stringer("state", g.state).Msg("player quit")
			g.state = StateQuit
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadScene switches the game state when an encounter ends.
func (g *Game) LoadScene(scene combat.Scene) {
	g.log.Debug().Stringer("scene", scene).Msg("loading scene")
	g.state = stateForScene(scene)
}

// fight runs the next encounter of the expedition to its end.
func (g *Game) fight(ctx context.Context) error {
	def := g.order[g.trip.next%len(g.order)]

	ctx, span := g.tracer.Start(ctx, "game.encounter")
	defer span.End()
	span.SetAttributes(
		attribute.String("encounter", def.ID),
		attribute.Int("party_alive", g.party.AliveCount()),
	)

	enemies, err := g.spawn(def)
	if err != nil {
		span.RecordError(err)
		return err
	}

	allies := g.party.Members
	roster := append(slices.Clone(allies), enemies...)
	term := newTerminalUI(g.screen, g.catalog.Abilities, def.Name, allies, enemies, g.cfg.ActionDelay)

	sched, err := combat.NewScheduler(combat.Deps{
		Party:     g.party,
		Enemies:   enemies,
		UI:        term,
		Presenter: term,
		Decider:   combat.NewAbilityDecider(g.catalog.Abilities, g.rng, roster),
		Scenes:    g,
		Session:   g.trip,
		Encounter: combat.EncounterFromDef(def),
		Rand:      g.rng,
		Logger:    g.log.With().Str("encounter", def.ID).Logger(),
	}, g.cfg.CombatConfig())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("encounter %s: %w", def.ID, err)
	}
	term.roundOf = sched.Round

	result, err := sched.Run(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("encounter %s: %w", def.ID, err)
	}

	if result.Outcome == combat.OutcomeVictory {
		g.trip.next++
		g.trip.won++
	}
	span.SetAttributes(
		attribute.String("outcome", result.Outcome.String()),
		attribute.Int("rounds", result.Rounds),
		attribute.Int("experience_each", result.ExperienceEach),
	)
	return nil
}

// spawn builds the encounter's enemies in display order.
func (g *Game) spawn(def *gamedata.EncounterDef) ([]*entity.Combatant, error) {
	lineup, err := def.EnemyLineup(g.catalog.Enemies, g.rng)
	if err != nil {
		return nil, err
	}
	enemies := make([]*entity.Combatant, 0, len(lineup))
	for _, d := range lineup {
		enemies = append(enemies, entity.NewEnemyFromDef(d))
	}
	labelDuplicates(enemies)
	return enemies, nil
}

// travel is the camp between encounters.
func (g *Game) travel(ctx context.Context) error {
	exhausted := !g.party.CanRun()
	revived := g.restAtCamp()

	lines := []string{
		fmt.Sprintf("Encounters won: %d", g.trip.won),
		"",
	}
	if exhausted {
		lines = append(lines, "The party staggers into camp with nothing left.")
	}
	if revived > 0 {
		lines = append(lines, fmt.Sprintf("%d fallen companions are tended back to health.", revived))
	}
	lines = append(lines, "The party rests and recovers.", "")
	for _, m := range g.party.Members {
		lines = append(lines, fmt.Sprintf("%-10s Lv %d  HP %d/%d  XP %d", m.Name, m.Stats.Level, m.Stats.HP, m.Stats.MaxHP, m.Stats.Experience))
	}
	next := g.order[g.trip.next%len(g.order)]
	lines = append(lines, "", "Next: "+next.Name, "", "enter  travel on", "q      quit")
	g.renderer.RenderPanel("Camp", lines)

	if err := g.waitForEnter(ctx); err != nil {
		return err
	}
	g.state = StateCombat
	return nil
}

// restAtCamp revives and heals the party and clears stat changes.
// Returns how many members were revived.
func (g *Game) restAtCamp() int {
	revived := g.party.ReviveDead()
	g.party.FullyHeal()
	g.party.ResetStatChanges()
	for _, m := range g.party.Members {
		m.RestoreEnergy(m.Stats.MaxEnergy)
	}
	g.log.Info().Int("revived", revived).Int("won", g.trip.won).Msg("party rested")
	return revived
}

// frontEnd is the title screen. Starting from it resets the party.
func (g *Game) frontEnd(ctx context.Context) error {
	lines := []string{"A party of " + fmt.Sprint(len(g.party.Members)) + " sets out.", ""}
	if g.trip.closed {
		lines = append([]string{fmt.Sprintf("Last expedition fell after %d victories.", g.trip.won), ""}, lines...)
	}
	lines = append(lines, "enter  begin", "q      quit")
	g.renderer.RenderPanel("ENCOUNTER", lines)

	if err := g.waitForEnter(ctx); err != nil {
		return err
	}
	if err := g.startOver(); err != nil {
		return err
	}
	g.state = StateCombat
	return nil
}

// startOver resets the party to the starting level and begins a new expedition.
func (g *Game) startOver() error {
	if err := g.party.Reset(g.catalog.Classes, entity.StartingLevel); err != nil {
		return fmt.Errorf("reset party: %w", err)
	}
	g.trip = &expedition{}
	g.log.Info().Int("level", entity.StartingLevel).Msg("new expedition")
	return nil
}

// waitForEnter blocks until Enter, or returns ErrQuit.
func (g *Game) waitForEnter(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch {
			case isQuit(ev), ev.Key() == tcell.KeyEscape:
				return ErrQuit
			case ev.Key() == tcell.KeyEnter:
				return nil
			}
		}
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

// newParty creates the party at the starting level from class IDs in turn order.
func newParty(classes *gamedata.ClassRegistry, ids []string) (*entity.Party, error) {
	if len(ids) == 0 {
		return nil, errors.New("party has no members")
	}
	members := make([]*entity.Combatant, 0, len(ids))
	for _, id := range ids {
		def := classes.GetByID(id)
		if def == nil {
			return nil, fmt.Errorf("party: unknown class %q (known: %s)", id, strings.Join(classes.IDs(), ", "))
		}
		members = append(members, entity.NewMember(def.Name, def, entity.StartingLevel))
	}
	labelDuplicates(members)
	return entity.NewParty(members...), nil
}

// encounterOrder resolves encounter IDs; none means every encounter in file order.
func encounterOrder(reg *gamedata.EncounterRegistry, ids []string) ([]*gamedata.EncounterDef, error) {
	if reg.Count() == 0 {
		return nil, errors.New("no encounters to fight")
	}
	if len(ids) == 0 {
		order := make([]*gamedata.EncounterDef, 0, reg.Count())
		for i := range reg.Count() {
			order = append(order, reg.At(i))
		}
		return order, nil
	}
	order := make([]*gamedata.EncounterDef, 0, len(ids))
	for _, id := range ids {
		def := reg.GetByID(id)
		if def == nil {
			return nil, fmt.Errorf("unknown encounter %q", id)
		}
		order = append(order, def)
	}
	return order, nil
}

// labelDuplicates suffixes repeated names with A, B, C... in order.
func labelDuplicates(units []*entity.Combatant) {
	counts := make(map[string]int, len(units))
	for _, u := range units {
		counts[u.Name]++
	}
	seen := make(map[string]int, len(counts))
	for _, u := range units {
		base := u.Name
		if counts[base] < 2 {
			continue
		}
		u.Name = fmt.Sprintf("%s %c", base, 'A'+seen[base])
		seen[base]++
	}
}
