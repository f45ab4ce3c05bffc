package gamedata

import (
	"errors"
	"math/rand"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// SpawnRandom selects a random enemy definition using weighted probability.
// Enemies with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// AbilityRegistry
// =============================================================================

// AbilityRegistry holds loaded ability definitions and provides lookup utilities.
type AbilityRegistry struct {
	abilities map[string]*AbilityDef
	all       []AbilityDef
}

// NewAbilityRegistry creates a registry from loaded ability definitions.
func NewAbilityRegistry(abilities []AbilityDef) *AbilityRegistry {
	registry := &AbilityRegistry{
		abilities: make(map[string]*AbilityDef),
		all:       abilities,
	}
	for i := range abilities {
		registry.abilities[abilities[i].ID] = &abilities[i]
	}
	return registry
}

// LoadAbilityRegistry loads and creates a registry from the embedded abilities.json.
func LoadAbilityRegistry() (*AbilityRegistry, error) {
	abilities, err := LoadAbilities()
	if err != nil {
		return nil, err
	}
	if len(abilities) == 0 {
		return nil, errors.New("no abilities loaded from abilities.json")
	}
	return NewAbilityRegistry(abilities), nil
}

// GetByID returns the ability definition with the given ID, or nil if not found.
func (r *AbilityRegistry) GetByID(id string) *AbilityDef {
	return r.abilities[id]
}

// GetMultiple returns ability definitions for a list of IDs.
// Missing IDs are silently skipped.
func (r *AbilityRegistry) GetMultiple(ids []string) []*AbilityDef {
	result := make([]*AbilityDef, 0, len(ids))
	for _, id := range ids {
		if ability := r.abilities[id]; ability != nil {
			result = append(result, ability)
		}
	}
	return result
}

// Count returns the number of abilities in the registry.
func (r *AbilityRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ClassRegistry / EncounterRegistry
// =============================================================================

// ClassRegistry indexes class definitions by ID.
type ClassRegistry struct {
	classes map[string]*ClassDef
	order   []string
}

// NewClassRegistry creates a registry from loaded class definitions.
func NewClassRegistry(classes []ClassDef) *ClassRegistry {
	registry := &ClassRegistry{classes: make(map[string]*ClassDef, len(classes))}
	for i := range classes {
		registry.classes[classes[i].ID] = &classes[i]
		registry.order = append(registry.order, classes[i].ID)
	}
	return registry
}

// LoadClassRegistry loads and creates a registry from the embedded classes.json.
func LoadClassRegistry() (*ClassRegistry, error) {
	classes, err := LoadClasses()
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, errors.New("no classes loaded from classes.json")
	}
	return NewClassRegistry(classes), nil
}

// GetByID returns the class definition with the given ID, or nil if not found.
func (r *ClassRegistry) GetByID(id string) *ClassDef {
	return r.classes[id]
}

// IDs returns class IDs in file order.
func (r *ClassRegistry) IDs() []string {
	return r.order
}

// EncounterRegistry keeps encounter definitions in file order.
type EncounterRegistry struct {
	encounters []EncounterDef
}

// NewEncounterRegistry creates a registry from loaded encounter definitions.
func NewEncounterRegistry(encounters []EncounterDef) *EncounterRegistry {
	return &EncounterRegistry{encounters: encounters}
}

// LoadEncounterRegistry loads and creates a registry from the embedded encounters.json.
func LoadEncounterRegistry() (*EncounterRegistry, error) {
	encounters, err := LoadEncounters()
	if err != nil {
		return nil, err
	}
	if len(encounters) == 0 {
		return nil, errors.New("no encounters loaded from encounters.json")
	}
	return NewEncounterRegistry(encounters), nil
}

// GetByID returns the encounter definition with the given ID, or nil if not found.
func (r *EncounterRegistry) GetByID(id string) *EncounterDef {
	for i := range r.encounters {
		if r.encounters[i].ID == id {
			return &r.encounters[i]
		}
	}
	return nil
}

// At returns the encounter at position i, wrapping around the list.
func (r *EncounterRegistry) At(i int) *EncounterDef {
	if len(r.encounters) == 0 {
		return nil
	}
	if i < 0 {
		i = -i
	}
	return &r.encounters[i%len(r.encounters)]
}

// Count returns the number of encounters in the registry.
func (r *EncounterRegistry) Count() int {
	return len(r.encounters)
}
