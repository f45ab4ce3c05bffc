package game

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/encounter/internal/combat"
)

// Config holds game configuration options, read from the environment.
type Config struct {
	// Seed for random number generation. Used for reproducible enemy lineups
	// and accuracy rolls. A seed of 0 means a random seed will be generated.
	Seed int64 `env:"ENCOUNTER_SEED"`

	LogFile  string `env:"ENCOUNTER_LOG_FILE" envDefault:"encounter.log"`
	LogLevel string `env:"ENCOUNTER_LOG_LEVEL" envDefault:"info"`

	// Party lists class IDs in turn order.
	Party []string `env:"ENCOUNTER_PARTY" envSeparator:"," envDefault:"warrior,rogue,wizard,cleric"`
	// Encounters lists encounter IDs to fight in order. Empty means the file order.
	Encounters []string `env:"ENCOUNTER_ORDER" envSeparator:","`

	ActionTimeout    time.Duration `env:"ENCOUNTER_ACTION_TIMEOUT" envDefault:"0s"`
	ActionDelay      time.Duration `env:"ENCOUNTER_ACTION_DELAY" envDefault:"700ms"`
	TurnMessageDelay time.Duration `env:"ENCOUNTER_TURN_DELAY" envDefault:"500ms"`
	VictoryDelay     time.Duration `env:"ENCOUNTER_VICTORY_DELAY" envDefault:"3s"`
	ExperienceDelay  time.Duration `env:"ENCOUNTER_EXPERIENCE_DELAY" envDefault:"2s"`
	DefeatDelay      time.Duration `env:"ENCOUNTER_DEFEAT_DELAY" envDefault:"4s"`
}

// ParseConfig loads configuration from environment variables.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// CombatConfig returns the scheduler settings for this configuration.
func (c Config) CombatConfig() combat.Config {
	cc := combat.DefaultConfig()
	cc.TurnMessageDelay = c.TurnMessageDelay
	cc.VictoryDelay = c.VictoryDelay
	cc.ExperienceDelay = c.ExperienceDelay
	cc.DefeatDelay = c.DefeatDelay
	cc.ActionTimeout = c.ActionTimeout
	return cc
}
