package combat

import (
	"math/rand"

	"github.com/samdwyer/encounter/internal/entity"
	"github.com/samdwyer/encounter/internal/gamedata"
)

// AbilityDecider is a simple EnemyDecider: a random affordable ability,
// aimed at the weakest valid target.
type AbilityDecider struct {
	abilities *gamedata.AbilityRegistry
	resolver  *EffectResolver
	rng       *rand.Rand
	roster    []*entity.Combatant
}

// NewAbilityDecider creates a decider picking targets from roster.
func NewAbilityDecider(abilities *gamedata.AbilityRegistry, rng *rand.Rand, roster []*entity.Combatant) *AbilityDecider {
	return &AbilityDecider{
		abilities: abilities,
		resolver:  NewEffectResolver(rng),
		rng:       rng,
		roster:    roster,
	}
}

// ChooseAction returns exactly one action for unit.
func (d *AbilityDecider) ChooseAction(unit *entity.Combatant) *Action {
	ability := d.selectAbility(unit)
	if ability == nil {
		return NewPassAction(unit)
	}
	targets := d.selectTargets(unit, ability)
	if len(targets) == 0 {
		return NewPassAction(unit)
	}
	return NewAbilityAction(unit, ability, targets...)
}

// selectAbility shuffles the unit's abilities and takes the first it can afford.
func (d *AbilityDecider) selectAbility(unit *entity.Combatant) *gamedata.AbilityDef {
	ids := unit.AbilityIDs
	if len(ids) == 0 {
		return nil
	}

	for _, idx := range d.rng.Perm(len(ids)) {
		ability := d.abilities.GetByID(ids[idx])
		if ability != nil && d.resolver.CanUse(ability, unit) && d.hasTarget(unit, ability) {
			return ability
		}
	}

	// Fallback to the first ability (usually "attack", which is free)
	return d.abilities.GetByID(ids[0])
}

func (d *AbilityDecider) hasTarget(unit *entity.Combatant, ability *gamedata.AbilityDef) bool {
	if ability.EffectType == gamedata.EffectRevive {
		return d.firstDead(unit.Side) != nil
	}
	return true
}

func (d *AbilityDecider) selectTargets(unit *entity.Combatant, ability *gamedata.AbilityDef) []*entity.Combatant {
	switch {
	case ability.TargetType == gamedata.TargetSelf:
		return []*entity.Combatant{unit}
	case ability.IsArea() && ability.IsOffensive():
		return d.living(unit.Side.Opponent())
	case ability.IsArea():
		return d.living(unit.Side)
	case ability.TargetType == gamedata.TargetSingleAlly:
		if ability.EffectType == gamedata.EffectRevive {
			return single(d.firstDead(unit.Side))
		}
		return single(d.lowestHP(unit.Side))
	default:
		return single(d.lowestHP(unit.Side.Opponent()))
	}
}

func (d *AbilityDecider) living(side entity.Side) []*entity.Combatant {
	var out []*entity.Combatant
	for _, c := range d.roster {
		if c.Side == side && c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// lowestHP returns the living combatant on side with the lowest health.
func (d *AbilityDecider) lowestHP(side entity.Side) *entity.Combatant {
	var lowest *entity.Combatant
	for _, c := range d.living(side) {
		if lowest == nil || c.Stats.HP < lowest.Stats.HP {
			lowest = c
		}
	}
	return lowest
}

func (d *AbilityDecider) firstDead(side entity.Side) *entity.Combatant {
	for _, c := range d.roster {
		if c.Side == side && c.IsDead() {
			return c
		}
	}
	return nil
}

func single(c *entity.Combatant) []*entity.Combatant {
	if c == nil {
		return nil
	}
	return []*entity.Combatant{c}
}
