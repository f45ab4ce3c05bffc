package entity

import (
	"fmt"

	"github.com/samdwyer/encounter/internal/gamedata"
)

// StartingLevel is the level new and reset party members start at.
const StartingLevel = 5

// Party represents the player's roster of adventurers, in turn order.
type Party struct {
	Members []*Combatant
}

// NewParty creates a party from the given members.
func NewParty(members ...*Combatant) *Party {
	return &Party{Members: members}
}

// AliveCount returns the number of members still standing.
func (p *Party) AliveCount() int {
	count := 0
	for _, m := range p.Members {
		if m.IsAlive() {
			count++
		}
	}
	return count
}

// IsDefeated returns true if every member is down.
func (p *Party) IsDefeated() bool {
	return p.AliveCount() == 0
}

// FullyHeal sets every living member's health to its maximum.
func (p *Party) FullyHeal() {
	for _, m := range p.Members {
		m.Heal(m.Stats.MaxHP)
	}
}

// CanRun reports whether any member has energy left.
func (p *Party) CanRun() bool {
	for _, m := range p.Members {
		if m.Stats.Energy > 0 {
			return true
		}
	}
	return false
}

// ReviveDead brings every dead member back with 1 health.
// Returns how many were revived.
func (p *Party) ReviveDead() int {
	revived := 0
	for _, m := range p.Members {
		if m.Revive(1) {
			revived++
		}
	}
	return revived
}

// ResetStatChanges clears status effects on every member.
func (p *Party) ResetStatChanges() {
	for _, m := range p.Members {
		m.ResetStatChanges()
	}
}

// Reset returns every member to fresh stats at the given level.
func (p *Party) Reset(classes *gamedata.ClassRegistry, level int) error {
	for _, m := range p.Members {
		def := classes.GetByID(m.ClassID)
		if def == nil {
			return fmt.Errorf("reset %s: unknown class %q", m.Name, m.ClassID)
		}
		m.ResetStats(def, level)
	}
	return nil
}
