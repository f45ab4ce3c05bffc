package combat

import (
	"context"
	"time"

	"github.com/samdwyer/encounter/internal/entity"
	"github.com/samdwyer/encounter/internal/gamedata"
)

// UI is the presentation side of an encounter.
type UI interface {
	// ShowMessage displays text and returns once d has elapsed.
	ShowMessage(ctx context.Context, text string, d time.Duration) error
	// SetEnemyTargetsInteractable toggles whether the given enemies can be picked as targets.
	SetEnemyTargetsInteractable(targets []*entity.Combatant, enabled bool)
	// PresentActionMenu blocks until the player submits an action for unit.
	PresentActionMenu(ctx context.Context, unit *entity.Combatant) (*Action, error)
}

// ActionPresenter shows a resolved action. It must call a.Complete once the
// effect has finished playing out; the executor waits for that signal.
type ActionPresenter interface {
	PresentAction(ctx context.Context, a *Action, result EffectResult)
}

// ImmediatePresenter completes every action as soon as it resolves.
type ImmediatePresenter struct{}

// PresentAction completes a right away.
func (ImmediatePresenter) PresentAction(_ context.Context, a *Action, _ EffectResult) {
	a.Complete()
}

// EnemyDecider picks the single action an enemy takes on its turn.
type EnemyDecider interface {
	ChooseAction(unit *entity.Combatant) *Action
}

// Scene identifies where the host goes after the encounter.
type Scene int

const (
	SceneTravel Scene = iota
	SceneFrontEnd
)

// String returns the scene name.
func (s Scene) String() string {
	switch s {
	case SceneTravel:
		return "travel"
	case SceneFrontEnd:
		return "front_end"
	default:
		return "unknown"
	}
}

// SceneLoader switches scenes. Fire-and-forget.
type SceneLoader interface {
	LoadScene(scene Scene)
}

// Session is the host context owning the encounter, torn down after a defeat.
type Session interface {
	Close() error
}

// Encounter describes the battle being fought.
type Encounter struct {
	Name       string
	Experience int // Total reward for a win
}

// EncounterFromDef builds an Encounter from its data definition.
func EncounterFromDef(def *gamedata.EncounterDef) Encounter {
	return Encounter{Name: def.Name, Experience: def.Experience}
}
