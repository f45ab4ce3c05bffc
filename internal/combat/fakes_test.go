package combat

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/samdwyer/encounter/internal/entity"
	"github.com/samdwyer/encounter/internal/gamedata"
)

var strike = &gamedata.AbilityDef{
	ID:         "strike",
	Name:       "Strike",
	EffectType: gamedata.EffectDamage,
	TargetType: gamedata.TargetSingleEnemy,
	DamageType: gamedata.DamagePhysical,
	BasePower:  10,
	Accuracy:   1,
}

var mend = &gamedata.AbilityDef{
	ID:         "mend",
	Name:       "Mend",
	EffectType: gamedata.EffectHeal,
	TargetType: gamedata.TargetSingleAlly,
	BasePower:  8,
	EnergyCost: 3,
	Accuracy:   1,
}

var raise = &gamedata.AbilityDef{
	ID:         "raise",
	Name:       "Raise",
	EffectType: gamedata.EffectRevive,
	TargetType: gamedata.TargetSingleAlly,
	BasePower:  5,
	Accuracy:   1,
}

func newUnit(name string, side entity.Side, hp int) *entity.Combatant {
	return &entity.Combatant{
		Name: name,
		Side: side,
		Stats: entity.Stats{
			Level:     1,
			HP:        hp,
			MaxHP:     hp,
			Energy:    10,
			MaxEnergy: 10,
			Speed:     10,
		},
	}
}

var noopTracer = tracenoop.NewTracerProvider().Tracer("test")

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// turnLog records whose turn it was, in order.
type turnLog struct {
	names []string
}

func (l *turnLog) add(name string) { l.names = append(l.names, name) }

// scriptedUI answers the action menu with a per-unit script. Units with no
// script pass.
type scriptedUI struct {
	log      *turnLog
	choose   map[string]func(unit *entity.Combatant) *Action
	messages []string
	toggles  []bool
	menuErr  error
}

func newScriptedUI(log *turnLog) *scriptedUI {
	return &scriptedUI{log: log, choose: map[string]func(*entity.Combatant) *Action{}}
}

func (u *scriptedUI) ShowMessage(ctx context.Context, text string, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.messages = append(u.messages, text)
	return nil
}

func (u *scriptedUI) SetEnemyTargetsInteractable(_ []*entity.Combatant, enabled bool) {
	u.toggles = append(u.toggles, enabled)
}

func (u *scriptedUI) PresentActionMenu(_ context.Context, unit *entity.Combatant) (*Action, error) {
	if u.menuErr != nil {
		return nil, u.menuErr
	}
	if u.log != nil {
		u.log.add(unit.Name)
	}
	if fn, ok := u.choose[unit.Name]; ok {
		return fn(unit), nil
	}
	return NewPassAction(unit), nil
}

// scriptedDecider is the enemy-side counterpart of scriptedUI.
type scriptedDecider struct {
	log    *turnLog
	choose map[string]func(unit *entity.Combatant) *Action
}

func newScriptedDecider(log *turnLog) *scriptedDecider {
	return &scriptedDecider{log: log, choose: map[string]func(*entity.Combatant) *Action{}}
}

func (d *scriptedDecider) ChooseAction(unit *entity.Combatant) *Action {
	if d.log != nil {
		d.log.add(unit.Name)
	}
	if fn, ok := d.choose[unit.Name]; ok {
		return fn(unit)
	}
	return NewPassAction(unit)
}

type recordingScenes struct {
	loaded []Scene
}

func (s *recordingScenes) LoadScene(scene Scene) { s.loaded = append(s.loaded, scene) }

type fakeSession struct {
	closed int
	err    error
}

func (s *fakeSession) Close() error {
	s.closed++
	return s.err
}

// heldPresenter records actions and leaves completion to the test.
type heldPresenter struct {
	mu        sync.Mutex
	presented []*Action
	complete  func(a *Action)
}

func (p *heldPresenter) PresentAction(_ context.Context, a *Action, _ EffectResult) {
	p.mu.Lock()
	p.presented = append(p.presented, a)
	p.mu.Unlock()
	if p.complete != nil {
		p.complete(a)
	}
}

func (p *heldPresenter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.presented)
}

func newTestExecutor(presenter ActionPresenter, timeout time.Duration) *Executor {
	return newMeteredExecutor(presenter, timeout, noop.NewMeterProvider().Meter("test"))
}

func newMeteredExecutor(presenter ActionPresenter, timeout time.Duration, meter metric.Meter) *Executor {
	metrics, err := newCombatMetrics(meter)
	if err != nil {
		panic(err)
	}
	return &Executor{
		resolver:  NewEffectResolver(testRand()),
		presenter: presenter,
		timeout:   timeout,
		tracer:    noopTracer,
		metrics:   metrics,
	}
}

// battle wires a scheduler with scripted collaborators and no delays.
type battle struct {
	sched   *Scheduler
	ui      *scriptedUI
	decider *scriptedDecider
	scenes  *recordingScenes
	session *fakeSession
	turns   *turnLog
}

func newBattle(allies, enemies []*entity.Combatant, experience int) (*battle, error) {
	return newMeteredBattle(allies, enemies, experience, nil)
}

// newMeteredBattle is newBattle with counters on meter; nil uses the global meter.
func newMeteredBattle(allies, enemies []*entity.Combatant, experience int, meter metric.Meter) (*battle, error) {
	turns := &turnLog{}
	b := &battle{
		ui:      newScriptedUI(turns),
		decider: newScriptedDecider(turns),
		scenes:  &recordingScenes{},
		session: &fakeSession{},
		turns:   turns,
	}
	sched, err := NewScheduler(Deps{
		Party:     entity.NewParty(allies...),
		Enemies:   enemies,
		UI:        b.ui,
		Decider:   b.decider,
		Scenes:    b.scenes,
		Session:   b.session,
		Encounter: Encounter{Name: "Test", Experience: experience},
		Rand:      testRand(),
		Tracer:    noopTracer,
		Meter:     meter,
	}, Config{Compare: ByPriority})
	if err != nil {
		return nil, err
	}
	b.sched = sched
	return b, nil
}

func strikeAt(target *entity.Combatant) func(*entity.Combatant) *Action {
	return func(unit *entity.Combatant) *Action {
		return NewAbilityAction(unit, strike, target)
	}
}
