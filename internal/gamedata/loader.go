package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// Catalog bundles every registry the encounter host needs.
type Catalog struct {
	Abilities  *AbilityRegistry
	Classes    *ClassRegistry
	Enemies    *EnemyRegistry
	Encounters *EncounterRegistry
}

// LoadCatalog loads all embedded definitions.
func LoadCatalog() (*Catalog, error) {
	abilities, err := LoadAbilityRegistry()
	if err != nil {
		return nil, err
	}
	classes, err := LoadClassRegistry()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemyRegistry()
	if err != nil {
		return nil, err
	}
	encounters, err := LoadEncounterRegistry()
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Abilities:  abilities,
		Classes:    classes,
		Enemies:    enemies,
		Encounters: encounters,
	}, nil
}
