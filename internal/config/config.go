package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config holds all game balance values read from config.yaml
type Config struct {
	Combat      CombatConfig      `yaml:"combat"`
	Progression ProgressionConfig `yaml:"progression"`
	Player      PlayerConfig      `yaml:"player"`
	Assets      AssetsConfig      `yaml:"assets"`
}

type CombatConfig struct {
	BaseCritChance       float64 `yaml:"base_crit_chance" validate:"gte=0,lte=1"`
	DodgeDefenseConstant int     `yaml:"dodge_defense_constant" validate:"gt=0"`
	MaxDodgeChance       float64 `yaml:"max_dodge_chance" validate:"gte=0,lte=1"`
	FleeChance           float64 `yaml:"flee_chance" validate:"gte=0,lte=1"`
	ManaRegenPerTurn     int     `yaml:"mana_regen_per_turn" validate:"gte=0"`
	RecentLogSize        int     `yaml:"recent_log_size" validate:"gt=0"`

	// Low-HP damage bonus for attackers that carry one
	LowHPThreshold  float64 `yaml:"low_hp_threshold" validate:"gt=0,lte=1"`
	LowHPMultiplier float64 `yaml:"low_hp_multiplier" validate:"gte=1"`

	// Multiplier applied to an enemy counter-attack
	CounterMultiplier float64 `yaml:"counter_multiplier" validate:"gt=0"`

	// Safety valve for degenerate encounters (both sides unable to hurt each other)
	MaxTurns int `yaml:"max_turns" validate:"gt=0"`
}

type ProgressionConfig struct {
	XPPerLevel      int `yaml:"xp_per_level" validate:"gt=0"`
	LevelCap        int `yaml:"level_cap" validate:"gte=1"`
	HPPerLevel      int `yaml:"hp_per_level" validate:"gte=0"`
	ManaPerLevel    int `yaml:"mana_per_level" validate:"gte=0"`
	AttackPerLevel  int `yaml:"attack_per_level" validate:"gte=0"`
	DefensePerLevel int `yaml:"defense_per_level" validate:"gte=0"`

	// Every TraitEvery levels the player picks one trait bonus
	TraitEvery   int `yaml:"trait_every" validate:"gt=0"`
	TraitHP      int `yaml:"trait_hp" validate:"gte=0"`
	TraitAttack  int `yaml:"trait_attack" validate:"gte=0"`
	TraitDefense int `yaml:"trait_defense" validate:"gte=0"`
}

type PlayerConfig struct {
	Name              string   `yaml:"name" validate:"required"`
	Class             string   `yaml:"class" validate:"required,oneof=warrior mage rogue"`
	MaxHitPoints      int      `yaml:"max_hit_points" validate:"gt=0"`
	MaxMana           int      `yaml:"max_mana" validate:"gte=0"`
	Attack            int      `yaml:"attack" validate:"gte=0"`
	Defense           int      `yaml:"defense" validate:"gte=0"`
	InventoryCapacity int      `yaml:"inventory_capacity" validate:"gt=0"`
	StartingEquipment []string `yaml:"starting_equipment"`
	SkillDamageBonus  float64  `yaml:"skill_damage_bonus" validate:"gte=0"`
	SkillDodgeBonus   float64  `yaml:"skill_dodge_bonus" validate:"gte=0,lte=1"`
}

// AssetsConfig paths are relative to the directory holding config.yaml
type AssetsConfig struct {
	Monsters     string `yaml:"monsters" validate:"required"`
	Items        string `yaml:"items" validate:"required"`
	Achievements string `yaml:"achievements"`
}

// Default returns the built-in balance values. Load starts from these so a
// config file only has to name what it changes.
func Default() *Config {
	return &Config{
		Combat: CombatConfig{
			BaseCritChance:       0.15,
			DodgeDefenseConstant: 20,
			MaxDodgeChance:       0.95,
			FleeChance:           0.5,
			ManaRegenPerTurn:     2,
			RecentLogSize:        5,
			LowHPThreshold:       0.3,
			LowHPMultiplier:      1.5,
			CounterMultiplier:    0.5,
			MaxTurns:             500,
		},
		Progression: ProgressionConfig{
			XPPerLevel:      100,
			LevelCap:        20,
			HPPerLevel:      10,
			ManaPerLevel:    5,
			AttackPerLevel:  2,
			DefensePerLevel: 1,
			TraitEvery:      2,
			TraitHP:         15,
			TraitAttack:     3,
			TraitDefense:    2,
		},
		Player: PlayerConfig{
			Name:              "Adventurer",
			Class:             "warrior",
			MaxHitPoints:      100,
			MaxMana:           40,
			Attack:            12,
			Defense:           5,
			InventoryCapacity: 10,
		},
		Assets: AssetsConfig{
			Monsters:     "monsters.yaml",
			Items:        "items.yaml",
			Achievements: "achievements.yaml",
		},
	}
}

// LoadConfig loads the configuration from a YAML file on fs
func LoadConfig(fs afero.Fs, filename string) (*Config, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(fs afero.Fs, filename string) *Config {
	cfg, err := LoadConfig(fs, filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// GetXPForLevel returns the total experience at which level is reached.
func (c *Config) GetXPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * c.Progression.XPPerLevel
}

// IsTraitLevel reports whether reaching level grants a trait choice.
func (c *Config) IsTraitLevel(level int) bool {
	return level%c.Progression.TraitEvery == 0
}
