package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all engine tuning. Values load from YAML and may be
// overridden per field through environment variables.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOOTCORE_LOG_LEVEL"`

	Database DatabaseConfig `yaml:"database" envPrefix:"LOOTCORE_DB_"`
	Rates    Rates          `yaml:"rates"`
	Loot     LootTuning     `yaml:"loot"`
	Transfer TransferConfig `yaml:"transfer"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the
// optional snapshot persistence layer.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Rates holds global loot rate multipliers.
type Rates struct {
	DropChanceMultiplier float64 `yaml:"drop_chance_multiplier"`
	DropAmountMultiplier float64 `yaml:"drop_amount_multiplier"`
}

// LootTuning holds the probabilistic knobs of loot generation.
type LootTuning struct {
	// Drop gate
	BaseDropChance      float64 `yaml:"base_drop_chance"`
	EliteDropMultiplier float64 `yaml:"elite_drop_multiplier"`
	BossDropMultiplier  float64 `yaml:"boss_drop_multiplier"`
	LevelDiffFactor     float64 `yaml:"level_diff_factor"` // per level of (enemy - player)
	LuckDropFactor      float64 `yaml:"luck_drop_factor"`  // per point of player luck

	// Extra item Bernoulli trials (up to 3), per enemy type.
	ExtraChanceNormal float64 `yaml:"extra_chance_normal"`
	ExtraChanceElite  float64 `yaml:"extra_chance_elite"`
	ExtraChanceBoss   float64 `yaml:"extra_chance_boss"`

	// Base tier probabilities, ascending rarity order (6 entries).
	TierWeights []float64 `yaml:"tier_weights"`

	// Mass shifted from low to high tiers per level / per luck point.
	QualityLevelShift float64 `yaml:"quality_level_shift"`
	QualityLuckShift  float64 `yaml:"quality_luck_shift"`

	// Source modifiers for the non-enemy generators.
	ChestQualityBonus float64 `yaml:"chest_quality_bonus"`
	QuestQualityBonus float64 `yaml:"quest_quality_bonus"`
}

// TransferConfig bounds cross-inventory movement.
type TransferConfig struct {
	// MaxDistance in world units; 0 disables the range check.
	MaxDistance float64 `yaml:"max_distance"`
}

// Default returns the engine defaults: x1 rates, moderate drop chances
// and a common-heavy tier distribution.
func Default() Config {
	return Config{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "lootcore",
			Password: "lootcore",
			DBName:   "lootcore",
			SSLMode:  "disable",
		},
		Rates: Rates{
			DropChanceMultiplier: 1.0,
			DropAmountMultiplier: 1.0,
		},
		Loot: LootTuning{
			BaseDropChance:      0.35,
			EliteDropMultiplier: 1.5,
			BossDropMultiplier:  2.0,
			LevelDiffFactor:     0.05,
			LuckDropFactor:      0.01,
			ExtraChanceNormal:   0.15,
			ExtraChanceElite:    0.30,
			ExtraChanceBoss:     0.50,
			TierWeights:         []float64{5, 55, 25, 10, 4, 1},
			QualityLevelShift:   0.015,
			QualityLuckShift:    0.01,
			ChestQualityBonus:   0.05,
			QuestQualityBonus:   0.10,
		},
		Transfer: TransferConfig{
			MaxDistance: 0,
		},
	}
}

// Load reads config from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("applying env overrides: %w", err)
	}
	return cfg, nil
}
