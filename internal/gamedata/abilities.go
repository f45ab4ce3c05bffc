package gamedata

// =============================================================================
// ABILITIES
// =============================================================================
//
// Abilities are data-driven actions usable by party members and enemies.
// A combatant picks one on its turn; the resulting action waits in the round's
// pending buffer and resolves only after every combatant has taken a turn.
//
// Resolution order within a round comes from Priority (higher first). Ties
// keep submission order.
//
// Damage Calculation:
// -------------------
// Physical: damage = basePower + attacker.Attack - target.Defense (min 1)
// Magical:  damage = basePower + attacker.Magic (min 1)
// True:     damage = basePower
// A guarded target takes half damage (min 1).
//
// Healing: heal = basePower + caster.Magic (min 1). Dead targets cannot be healed.
// Revive:  health = basePower + caster.Magic, capped at max health. Only dead targets.
//
// Accuracy is a probability in [0,1]. Anything else is a data error and aborts
// resolution.

// EffectType represents what an ability does.
type EffectType string

const (
	EffectDamage EffectType = "damage"
	EffectHeal   EffectType = "heal"
	EffectRevive EffectType = "revive"
	EffectBuff   EffectType = "buff"
	EffectDebuff EffectType = "debuff"
)

// TargetType represents who an ability can target.
type TargetType string

const (
	TargetSelf        TargetType = "self"
	TargetSingleEnemy TargetType = "single_enemy"
	TargetAllEnemies  TargetType = "all_enemies"
	TargetSingleAlly  TargetType = "single_ally"
	TargetAllAllies   TargetType = "all_allies"
)

// DamageType represents how damage is calculated.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
	DamageTrue     DamageType = "true"
)

// StatusEffectType represents status effects that can be applied.
type StatusEffectType string

const (
	StatusNone        StatusEffectType = ""
	StatusPoison      StatusEffectType = "poison"
	StatusRegen       StatusEffectType = "regen"
	StatusDefenseUp   StatusEffectType = "defense_up"
	StatusDefenseDown StatusEffectType = "defense_down"
	StatusAttackUp    StatusEffectType = "attack_up"
	StatusAttackDown  StatusEffectType = "attack_down"
)

// AbilityDef defines an ability loaded from JSON.
type AbilityDef struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	EffectType     EffectType       `json:"effectType"`
	TargetType     TargetType       `json:"targetType"`
	DamageType     DamageType       `json:"damageType,omitempty"`
	BasePower      int              `json:"basePower"`
	EnergyCost     int              `json:"energyCost"`
	Accuracy       float64          `json:"accuracy"`
	Priority       int              `json:"priority,omitempty"`
	StatusEffect   StatusEffectType `json:"statusEffect,omitempty"`
	StatusDuration int              `json:"statusDuration,omitempty"`
	StatusPower    int              `json:"statusPower,omitempty"` // For DoT/HoT and stat modifiers
}

// NeedsTarget returns true if the ability requires target selection.
func (a *AbilityDef) NeedsTarget() bool {
	return a.TargetType == TargetSingleEnemy || a.TargetType == TargetSingleAlly
}

// IsOffensive returns true if the ability targets the opposing side.
func (a *AbilityDef) IsOffensive() bool {
	return a.TargetType == TargetSingleEnemy || a.TargetType == TargetAllEnemies
}

// IsArea returns true if the ability hits a whole side.
func (a *AbilityDef) IsArea() bool {
	return a.TargetType == TargetAllEnemies || a.TargetType == TargetAllAllies
}

// AbilitiesFile represents the structure of abilities.json.
type AbilitiesFile struct {
	Abilities []AbilityDef `json:"abilities"`
}

// LoadAbilities loads ability definitions from the embedded abilities.json file.
func LoadAbilities() ([]AbilityDef, error) {
	file, err := Load[AbilitiesFile]("abilities.json")
	if err != nil {
		return nil, err
	}
	return file.Abilities, nil
}
