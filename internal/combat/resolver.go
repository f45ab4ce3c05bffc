// Package combat provides the turn scheduler, action queue and effect
// resolution for a party-vs-enemies encounter.
package combat

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/samdwyer/encounter/internal/entity"
	"github.com/samdwyer/encounter/internal/gamedata"
)

// EffectResult contains the outcome of resolving an action.
type EffectResult struct {
	Success     bool
	Missed      bool
	Damage      int                       // Total across targets
	Healing     int                       // Total across targets
	Revived     int                       // Number of targets brought back
	StatusAdded gamedata.StatusEffectType // For buff/debuff riders
	Message     string                    // Human-readable description
}

// EffectResolver calculates and applies action effects.
type EffectResolver struct {
	rng *rand.Rand
}

// NewEffectResolver creates a resolver that rolls accuracy with rng.
func NewEffectResolver(rng *rand.Rand) *EffectResolver {
	return &EffectResolver{rng: rng}
}

// Resolve applies an action and returns what happened.
// An error means the action's data is invalid and the run must stop.
func (r *EffectResolver) Resolve(a *Action) (EffectResult, error) {
	switch a.Kind {
	case KindGuard:
		a.Owner.Guarded = true
		return EffectResult{Success: true, Message: a.Owner.Name + " guards!"}, nil
	case KindPass:
		return EffectResult{Success: true, Message: a.Owner.Name + " waits."}, nil
	case KindAbility:
		return r.resolveAbility(a.Ability, a.Owner, a.Targets)
	default:
		return EffectResult{Success: false, Message: "Unknown action"}, nil
	}
}

// CanUse checks if a combatant can use an ability (has enough energy).
func (r *EffectResolver) CanUse(ability *gamedata.AbilityDef, user *entity.Combatant) bool {
	if ability == nil {
		return false
	}
	return user.Stats.Energy >= ability.EnergyCost
}

func (r *EffectResolver) resolveAbility(ability *gamedata.AbilityDef, user *entity.Combatant, targets []*entity.Combatant) (EffectResult, error) {
	if ability == nil {
		return EffectResult{Success: false, Message: "Invalid ability"}, nil
	}

	if !r.CanUse(ability, user) {
		return EffectResult{
			Success: false,
			Message: user.Name + " doesn't have enough energy!",
		}, nil
	}

	hit, err := CheckRandomSuccess(r.rng, ability.Accuracy)
	if err != nil {
		return EffectResult{}, fmt.Errorf("ability %s accuracy: %w", ability.ID, err)
	}

	user.SpendEnergy(ability.EnergyCost)

	if !hit {
		return EffectResult{
			Success: false,
			Missed:  true,
			Message: user.Name + "'s " + ability.Name + " misses!",
		}, nil
	}

	result := EffectResult{Message: user.Name + " uses " + ability.Name + "!"}
	var untouched []string
	for _, target := range targets {
		if !r.applyTo(ability, user, target, &result) {
			untouched = append(untouched, target.Name)
		}
	}
	switch {
	case result.Damage > 0:
		result.Message += fmt.Sprintf(" %d damage!", result.Damage)
	case result.Healing > 0:
		result.Message += fmt.Sprintf(" %d HP restored!", result.Healing)
	case result.Revived > 0:
		result.Message += fmt.Sprintf(" %d back on their feet!", result.Revived)
	}
	if !result.Success && len(untouched) > 0 {
		result.Message += " It has no effect on " + strings.Join(untouched, ", ") + "."
	}
	return result, nil
}

// applyTo applies one ability to one target. Returns false when the target
// was not a valid recipient (e.g. healing the dead, reviving the living).
func (r *EffectResolver) applyTo(ability *gamedata.AbilityDef, user, target *entity.Combatant, result *EffectResult) bool {
	switch ability.EffectType {
	case gamedata.EffectRevive:
		if !target.Revive(ability.BasePower + user.Magic()) {
			return false
		}
		result.Revived++
	case gamedata.EffectDamage:
		if target.IsDead() {
			return false
		}
		result.Damage += target.TakeDamage(r.damage(ability, user, target))
	case gamedata.EffectHeal:
		if target.IsDead() {
			return false
		}
		result.Healing += target.Heal(max(ability.BasePower+user.Magic(), 1))
	case gamedata.EffectBuff, gamedata.EffectDebuff:
		if target.IsDead() || ability.StatusEffect == gamedata.StatusNone {
			return false
		}
	default:
		return false
	}

	// Riders apply to anyone the main effect reached.
	if ability.StatusEffect != gamedata.StatusNone && target.IsAlive() {
		target.AddStatusEffect(entity.StatusEffect{
			Type:           ability.StatusEffect,
			RemainingTurns: ability.StatusDuration,
			Power:          ability.StatusPower,
		})
		result.StatusAdded = ability.StatusEffect
	}
	result.Success = true
	return true
}

// damage calculates damage before it is applied. Guarded targets take half.
func (r *EffectResolver) damage(ability *gamedata.AbilityDef, user, target *entity.Combatant) int {
	var damage int
	switch ability.DamageType {
	case gamedata.DamageMagical:
		damage = ability.BasePower + user.Magic()
	case gamedata.DamageTrue:
		damage = ability.BasePower
	default:
		damage = ability.BasePower + user.Attack() - target.Defense()
	}
	if target.Guarded {
		damage /= 2
	}
	if ability.DamageType != gamedata.DamageTrue && damage < 1 {
		damage = 1
	}
	return damage
}
