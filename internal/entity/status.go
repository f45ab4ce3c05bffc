package entity

import "github.com/samdwyer/encounter/internal/gamedata"

// StatusEffect represents an active status effect on a combatant.
type StatusEffect struct {
	Type           gamedata.StatusEffectType
	RemainingTurns int
	Power          int // DoT/HoT amount per round, or stat modifier
}

// StatusTick represents what happened when a status effect was processed.
type StatusTick struct {
	Type   gamedata.StatusEffectType
	Amount int  // Damage taken or healing received
	Ended  bool // True if the effect expired
}

// StatusEffects returns active status effects.
func (c *Combatant) StatusEffects() []StatusEffect {
	return c.statusEffects
}

// AddStatusEffect adds or replaces a status effect of the same type.
func (c *Combatant) AddStatusEffect(effect StatusEffect) {
	for i, existing := range c.statusEffects {
		if existing.Type == effect.Type {
			c.statusEffects[i] = effect
			return
		}
	}
	c.statusEffects = append(c.statusEffects, effect)
}

// TickStatusEffects processes round-based status effects.
// Dead combatants do not tick; poison can kill.
func (c *Combatant) TickStatusEffects() []StatusTick {
	if c.dead {
		return nil
	}

	var ticks []StatusTick
	remaining := []StatusEffect{}

	for _, effect := range c.statusEffects {
		tick := StatusTick{Type: effect.Type}

		switch effect.Type {
		case gamedata.StatusPoison:
			tick.Amount = c.TakeDamage(effect.Power)
		case gamedata.StatusRegen:
			tick.Amount = c.Heal(effect.Power)
		}

		effect.RemainingTurns--
		if effect.RemainingTurns <= 0 {
			tick.Ended = true
		} else {
			remaining = append(remaining, effect)
		}
		ticks = append(ticks, tick)
	}

	c.statusEffects = remaining
	return ticks
}

// modifier sums the power of the up effect minus the down effect.
func (c *Combatant) modifier(up, down gamedata.StatusEffectType) int {
	total := 0
	for _, effect := range c.statusEffects {
		switch effect.Type {
		case up:
			total += effect.Power
		case down:
			total -= effect.Power
		}
	}
	return total
}
