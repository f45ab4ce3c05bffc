package combat

import (
	"fmt"
	"sync"

	"github.com/samdwyer/encounter/internal/entity"
	"github.com/samdwyer/encounter/internal/gamedata"
)

// Kind tags what an action does.
type Kind int

const (
	// KindAbility uses an ability definition against its targets.
	KindAbility Kind = iota
	// KindGuard halves incoming damage until the next round starts.
	KindGuard
	// KindPass does nothing.
	KindPass
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindAbility:
		return "ability"
	case KindGuard:
		return "guard"
	case KindPass:
		return "pass"
	default:
		return "unknown"
	}
}

// PriorityGuard puts guards ahead of every ability in the same round.
const PriorityGuard = 100

type actionState int

const (
	statePending actionState = iota
	stateExecuting
	stateCompleted
	stateReleased
)

// Action is one combatant's submitted move for the round.
//
// An action is resolved at most once. After the executor is done with it the
// action is released: its references are dropped and it cannot be queued again.
type Action struct {
	Kind     Kind
	Owner    *entity.Combatant
	Targets  []*entity.Combatant
	Ability  *gamedata.AbilityDef // KindAbility only
	Priority int

	seq    uint64
	state  actionState
	result EffectResult
	mu     sync.Mutex
	done   chan struct{} // made on first use, so literals work too
	once   sync.Once
}

// NewAbilityAction creates an action that uses ability on targets.
func NewAbilityAction(owner *entity.Combatant, ability *gamedata.AbilityDef, targets ...*entity.Combatant) *Action {
	a := &Action{
		Kind:    KindAbility,
		Owner:   owner,
		Targets: targets,
		Ability: ability,
	}
	if ability != nil {
		a.Priority = ability.Priority
	}
	return a
}

// NewGuardAction creates a guard action for owner.
func NewGuardAction(owner *entity.Combatant) *Action {
	return &Action{
		Kind:     KindGuard,
		Owner:    owner,
		Targets:  []*entity.Combatant{owner},
		Priority: PriorityGuard,
	}
}

// NewPassAction creates an action that skips owner's move.
func NewPassAction(owner *entity.Combatant) *Action {
	return &Action{Kind: KindPass, Owner: owner}
}

// Complete fires the completion signal. Safe to call more than once and from
// any goroutine.
func (a *Action) Complete() {
	a.once.Do(func() { close(a.signal()) })
}

// Done returns a channel closed once the action's effect has fully applied.
func (a *Action) Done() <-chan struct{} {
	return a.signal()
}

func (a *Action) signal() chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done == nil {
		a.done = make(chan struct{})
	}
	return a.done
}

// Completed reports whether the completion signal has fired.
func (a *Action) Completed() bool {
	select {
	case <-a.signal():
		return true
	default:
		return false
	}
}

// Seq returns the submission sequence number.
func (a *Action) Seq() uint64 { return a.seq }

// Result returns the effect result recorded when the action ran.
func (a *Action) Result() EffectResult { return a.result }

// Released reports whether the executor has discarded the action.
func (a *Action) Released() bool { return a.state == stateReleased }

// Name describes what the action does, for messages.
func (a *Action) Name() string {
	if a.Kind == KindAbility && a.Ability != nil {
		return a.Ability.Name
	}
	return a.Kind.String()
}

// String identifies the action in logs.
func (a *Action) String() string {
	owner := "<none>"
	if a.Owner != nil {
		owner = a.Owner.Name
	}
	return fmt.Sprintf("#%d %s:%s", a.seq, owner, a.Name())
}

// release drops the action's references so nothing can run it again.
func (a *Action) release() {
	a.state = stateReleased
	a.Owner = nil
	a.Targets = nil
	a.Ability = nil
}
