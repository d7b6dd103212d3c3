package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds the hosting-shell configuration for the arena server.
type Server struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	LogLevel    string `yaml:"log_level"`

	// MapPath points at a YAML map definition. Empty means the built-in
	// default arena.
	MapPath string `yaml:"map_path"`

	// SnapshotInterval is how often (in ticks) full state snapshots are
	// broadcast to clients.
	SnapshotInterval int `yaml:"snapshot_interval"`

	// FillWithBots adds bot players until the lobby holds MaxPlayers, so a
	// single human can start a match.
	FillWithBots bool `yaml:"fill_with_bots"`
}

// Simulation holds every tunable of the simulation core. All durations are
// seconds unless the field says ticks; all distances are tile units.
type Simulation struct {
	TickRate   int     `yaml:"tick_rate"` // ticks per second
	MaxPlayers int     `yaml:"max_players"`
	SafetyMargin float64 `yaml:"safety_margin"` // padding added to unit radius

	// Phase timers.
	LobbyCountdown float64 `yaml:"lobby_countdown"`
	MatchDuration  float64 `yaml:"match_duration"`
	GameOverDelay  float64 `yaml:"game_over_delay"`

	// Economy.
	StartResources int     `yaml:"start_resources"`
	IncomePerSec   float64 `yaml:"income_per_sec"`

	// Cooldowns (phase-relative seconds).
	SpawnCooldown          float64 `yaml:"spawn_cooldown"`
	ModifierSwitchCooldown float64 `yaml:"modifier_switch_cooldown"`
	BonkCooldown           float64 `yaml:"bonk_cooldown"`
	RaptorSpawnCooldown    float64 `yaml:"raptor_spawn_cooldown"`

	// Bonk area attack.
	BonkRadius    float64 `yaml:"bonk_radius"`
	BonkDamage    int     `yaml:"bonk_damage"`
	BonkMaxHits   int     `yaml:"bonk_max_hits"`
	BonkKnockback float64 `yaml:"bonk_knockback"`

	// Knockback resolution step (tiles).
	KnockbackStep float64 `yaml:"knockback_step"`

	// Directed raptor spawn BFS bound (tiles from requested point).
	RaptorSearchDistance int `yaml:"raptor_search_distance"`

	// Unit AI.
	WanderIntervalTicks int     `yaml:"wander_interval_ticks"`
	WanderRadius        float64 `yaml:"wander_radius"`
	FleeDistance        float64 `yaml:"flee_distance"`
	FleeDurationTicks   int     `yaml:"flee_duration_ticks"`

	// Unit removal delay after death.
	CorpseCleanupDelay float64 `yaml:"corpse_cleanup_delay"`

	// Bot decision timing.
	BotMinSpawnDelay    float64 `yaml:"bot_min_spawn_delay"`
	BotMaxSpawnDelay    float64 `yaml:"bot_max_spawn_delay"`
	BotSwitchChance     float64 `yaml:"bot_switch_chance"`
}

// Config is the root configuration document.
type Config struct {
	Server     Server     `yaml:"server"`
	Simulation Simulation `yaml:"simulation"`
}

// Default returns a Config with sensible defaults for a 60 Hz arena.
func Default() Config {
	return Config{
		Server: Server{
			BindAddress:      "0.0.0.0",
			Port:             8080,
			LogLevel:         "info",
			SnapshotInterval: 3,
			FillWithBots:     true,
		},
		Simulation: Simulation{
			TickRate:     60,
			MaxPlayers:   2,
			SafetyMargin: 0.05,

			LobbyCountdown: 5,
			MatchDuration:  240,
			GameOverDelay:  10,

			StartResources: 20,
			IncomePerSec:   2,

			SpawnCooldown:          1.5,
			ModifierSwitchCooldown: 8,
			BonkCooldown:           5,
			RaptorSpawnCooldown:    20,

			BonkRadius:    2.5,
			BonkDamage:    6,
			BonkMaxHits:   5,
			BonkKnockback: 4,

			KnockbackStep: 0.25,

			RaptorSearchDistance: 6,

			WanderIntervalTicks: 180,
			WanderRadius:        4,
			FleeDistance:        3,
			FleeDurationTicks:   120,

			CorpseCleanupDelay: 1.5,

			BotMinSpawnDelay: 2,
			BotMaxSpawnDelay: 6,
			BotSwitchChance:  0.1,
		},
	}
}

// Load reads config from a YAML file, layering it over defaults.
// A missing file is not an error: defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	s := c.Simulation
	if s.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", s.TickRate)
	}
	if s.MaxPlayers < 2 {
		return fmt.Errorf("max_players must be at least 2, got %d", s.MaxPlayers)
	}
	if s.SafetyMargin < 0 {
		return fmt.Errorf("safety_margin must not be negative, got %v", s.SafetyMargin)
	}
	if s.KnockbackStep <= 0 {
		return fmt.Errorf("knockback_step must be positive, got %v", s.KnockbackStep)
	}
	if s.BotMinSpawnDelay > s.BotMaxSpawnDelay {
		return fmt.Errorf("bot_min_spawn_delay %v exceeds bot_max_spawn_delay %v",
			s.BotMinSpawnDelay, s.BotMaxSpawnDelay)
	}
	if s.BotSwitchChance < 0 || s.BotSwitchChance > 1 {
		return fmt.Errorf("bot_switch_chance must be in [0,1], got %v", s.BotSwitchChance)
	}
	return nil
}

// TickInterval returns the tick period in seconds.
func (s Simulation) TickInterval() float64 {
	return 1.0 / float64(s.TickRate)
}
