package gamedata

// StatGrowth is the per-level increase applied on top of a class's base stats.
type StatGrowth struct {
	HP      int `json:"hp"`
	Energy  int `json:"energy"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Magic   int `json:"magic"`
	Speed   int `json:"speed"`
}

// ClassDef defines a playable class loaded from JSON.
type ClassDef struct {
	ID        string     `json:"id"`        // Unique identifier (e.g., "warrior")
	Name      string     `json:"name"`      // Display name (e.g., "Warrior")
	Symbol    string     `json:"symbol"`    // Single character for rendering (e.g., "W")
	HP        int        `json:"hp"`        // Level 1 health
	Energy    int        `json:"energy"`    // Level 1 energy
	Attack    int        `json:"attack"`    // Level 1 attack power
	Defense   int        `json:"defense"`   // Level 1 defense value
	Magic     int        `json:"magic"`     // Level 1 magic power
	Speed     int        `json:"speed"`     // Level 1 speed
	Growth    StatGrowth `json:"growth"`    // Added once per level above 1
	Abilities []string   `json:"abilities"` // Ability IDs this class can use
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *ClassDef) SymbolRune() rune {
	if len(c.Symbol) == 0 {
		return '?'
	}
	return rune(c.Symbol[0])
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}
