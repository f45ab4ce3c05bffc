package gamedata

import (
	"fmt"
	"math/rand"
)

// EncounterDef defines a battle loaded from JSON.
// Either Enemies lists fixed enemy IDs in display order, or RandomEnemies
// asks for that many weighted random spawns.
type EncounterDef struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Experience    int      `json:"experience"` // Total reward split between survivors
	Enemies       []string `json:"enemies,omitempty"`
	RandomEnemies int      `json:"randomEnemies,omitempty"`
}

// EncountersFile represents the structure of encounters.json.
type EncountersFile struct {
	Encounters []EncounterDef `json:"encounters"`
}

// LoadEncounters loads encounter definitions from the embedded encounters.json file.
func LoadEncounters() ([]EncounterDef, error) {
	file, err := Load[EncountersFile]("encounters.json")
	if err != nil {
		return nil, err
	}
	return file.Encounters, nil
}

// EnemyLineup resolves the encounter's enemy definitions in display order.
func (e *EncounterDef) EnemyLineup(enemies *EnemyRegistry, rng *rand.Rand) ([]*EnemyDef, error) {
	var lineup []*EnemyDef
	for _, id := range e.Enemies {
		def := enemies.GetByID(id)
		if def == nil {
			return nil, fmt.Errorf("encounter %s: unknown enemy %q", e.ID, id)
		}
		lineup = append(lineup, def)
	}
	for i := 0; i < e.RandomEnemies; i++ {
		def := enemies.SpawnRandom(rng)
		if def == nil {
			return nil, fmt.Errorf("encounter %s: no enemies to spawn", e.ID)
		}
		lineup = append(lineup, def)
	}
	if len(lineup) == 0 {
		return nil, fmt.Errorf("encounter %s: no enemies", e.ID)
	}
	return lineup, nil
}
