package gamedata

import (
	"math/rand"
	"testing"
)

func TestLoadEnemies(t *testing.T) {
	enemies, err := LoadEnemies()
	if err != nil {
		t.Fatalf("Failed to load enemies: %v", err)
	}

	if len(enemies) != 3 {
		t.Errorf("Expected 3 enemies, got %d", len(enemies))
	}

	expectedIDs := map[string]bool{"goblin": false, "orc": false, "skeleton": false}
	for _, e := range enemies {
		if _, ok := expectedIDs[e.ID]; ok {
			expectedIDs[e.ID] = true
		}
		if e.Speed <= 0 {
			t.Errorf("Enemy %q has non-positive speed %d", e.ID, e.Speed)
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected enemy %q not found", id)
		}
	}
}

func TestEnemyRegistry(t *testing.T) {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 3 {
		t.Errorf("Expected 3 enemy types, got %d", registry.Count())
	}

	goblin := registry.GetByID("goblin")
	if goblin == nil {
		t.Error("Goblin not found by ID")
	} else if goblin.Name != "Goblin" {
		t.Errorf("Expected name 'Goblin', got %q", goblin.Name)
	}

	// Weighted spawning is deterministic with the same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 10; i++ {
		a := registry.SpawnRandom(rng1).ID
		b := registry.SpawnRandom(rng2).ID
		if a != b {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a, b)
		}
	}
}

func TestAbilityRegistryAccuracyInRange(t *testing.T) {
	registry, err := LoadAbilityRegistry()
	if err != nil {
		t.Fatalf("LoadAbilityRegistry() error = %v", err)
	}

	for _, id := range []string{"attack", "quick_jab", "fireball", "heal", "revive", "war_cry", "hex"} {
		ability := registry.GetByID(id)
		if ability == nil {
			t.Fatalf("ability %q not found", id)
		}
		if ability.Accuracy < 0 || ability.Accuracy > 1 {
			t.Errorf("ability %q accuracy %v outside [0,1]", id, ability.Accuracy)
		}
	}

	if got := registry.GetByID("quick_jab").Priority; got <= registry.GetByID("attack").Priority {
		t.Errorf("quick_jab priority %d should beat attack", got)
	}
	if !registry.GetByID("flame_wave").IsArea() {
		t.Error("flame_wave should be an area ability")
	}
	if got := len(registry.GetMultiple([]string{"attack", "missing", "heal"})); got != 2 {
		t.Errorf("GetMultiple() returned %d abilities, want 2", got)
	}
}

func TestClassRegistry(t *testing.T) {
	registry, err := LoadClassRegistry()
	if err != nil {
		t.Fatalf("Failed to load classes: %v", err)
	}

	want := []string{"warrior", "rogue", "wizard", "cleric"}
	ids := registry.IDs()
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	if registry.GetByID("cleric").SymbolRune() != 'C' {
		t.Error("cleric symbol should be 'C'")
	}
}

func TestEncounterLineup(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	rng := rand.New(rand.NewSource(7))

	ambush := catalog.Encounters.GetByID("road_ambush")
	if ambush == nil {
		t.Fatal("road_ambush not found")
	}
	lineup, err := ambush.EnemyLineup(catalog.Enemies, rng)
	if err != nil {
		t.Fatalf("EnemyLineup() error: %v", err)
	}
	gotIDs := []string{lineup[0].ID, lineup[1].ID, lineup[2].ID}
	wantIDs := []string{"goblin", "goblin", "orc"}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Errorf("lineup[%d] = %q, want %q", i, gotIDs[i], wantIDs[i])
		}
	}

	pack := catalog.Encounters.GetByID("wild_pack")
	lineup, err = pack.EnemyLineup(catalog.Enemies, rng)
	if err != nil {
		t.Fatalf("EnemyLineup() error: %v", err)
	}
	if len(lineup) != pack.RandomEnemies {
		t.Errorf("random lineup size = %d, want %d", len(lineup), pack.RandomEnemies)
	}

	bad := EncounterDef{ID: "bad", Enemies: []string{"dragon"}}
	if _, err := bad.EnemyLineup(catalog.Enemies, rng); err == nil {
		t.Error("EnemyLineup() with unknown enemy should fail")
	}
	empty := EncounterDef{ID: "empty"}
	if _, err := empty.EnemyLineup(catalog.Enemies, rng); err == nil {
		t.Error("EnemyLineup() with no enemies should fail")
	}

	if catalog.Encounters.At(catalog.Encounters.Count()) != catalog.Encounters.At(0) {
		t.Error("At() should wrap around")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestEnemyDefMethods(t *testing.T) {
	def := EnemyDef{ID: "test", Name: "Test Enemy", Glyph: "T", Color: "#FF0000"}

	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}
	if def.TCellColor() == 0 {
		t.Error("TCellColor returned zero color")
	}
}
