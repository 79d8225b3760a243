package monster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/loot"
)

var ErrUnknownMonster = errors.New("unknown monster")

// MonsterDefinition holds the configuration for a monster type from YAML
type MonsterDefinition struct {
	Name         string     `yaml:"name" validate:"required"`
	Level        int        `yaml:"level" validate:"gte=1"`
	MaxHitPoints int        `yaml:"max_hit_points" validate:"gt=0"`
	Attack       int        `yaml:"attack" validate:"gte=0"`
	Defense      int        `yaml:"defense" validate:"gte=0"`
	Experience   int        `yaml:"experience" validate:"gte=0"`
	Boss         bool       `yaml:"boss"`
	Elite        bool       `yaml:"elite"`
	Mechanics    Mechanics  `yaml:"mechanics"`
	Loot         loot.Table `yaml:"loot"`
}

// Catalog holds the complete monster configuration from YAML
type Catalog struct {
	Monsters map[string]MonsterDefinition `yaml:"monsters" validate:"required,min=1,dive"`
}

// validateMonsterConfiguration checks what struct tags cannot: effect names
// and mechanics that need a partner value to do anything.
func validateMonsterConfiguration(c *Catalog) error {
	var problems []string
	for _, key := range c.Keys() {
		def := c.Monsters[key]
		for _, name := range def.Mechanics.effectNames() {
			if _, err := effects.ParseKind(name); err != nil {
				problems = append(problems, fmt.Sprintf("monster '%s': %v", key, err))
			}
		}
		m := def.Mechanics
		if m.RegenAmount > 0 && m.RegenInterval == 0 {
			problems = append(problems, fmt.Sprintf("monster '%s': regen_amount needs regen_interval", key))
		}
		if m.ChargeInterval > 0 && m.ChargeMultiplier == 0 {
			problems = append(problems, fmt.Sprintf("monster '%s': charge_interval needs charge_multiplier", key))
		}
		if m.ReviveOnce && m.ReviveFraction == 0 {
			problems = append(problems, fmt.Sprintf("monster '%s': revive_once needs revive_fraction", key))
		}
		if m.OnHitEffect != "" && m.OnHitDuration == 0 {
			problems = append(problems, fmt.Sprintf("monster '%s': on_hit_effect needs on_hit_duration", key))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("monster configuration conflicts detected:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// LoadCatalog loads monster configuration from a YAML file on fs
func LoadCatalog(fs afero.Fs, filename string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster config file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse monster config YAML: %w", err)
	}

	if err := config.Validate(&catalog); err != nil {
		return nil, fmt.Errorf("invalid monster config %s: %w", filename, err)
	}
	if err := validateMonsterConfiguration(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// MustLoadCatalog loads monster configuration and panics on error
func MustLoadCatalog(fs afero.Fs, filename string) *Catalog {
	catalog, err := LoadCatalog(fs, filename)
	if err != nil {
		panic("Failed to load monster config: " + err.Error())
	}
	return catalog
}

// GetMonsterByKey returns monster definition by key
func (c *Catalog) GetMonsterByKey(key string) (*MonsterDefinition, error) {
	def, exists := c.Monsters[key]
	if !exists {
		return nil, fmt.Errorf("monster with key '%s': %w", key, ErrUnknownMonster)
	}
	return &def, nil
}

// NewEnemy builds a fresh enemy for one encounter
func (c *Catalog) NewEnemy(key string) (*Enemy, error) {
	def, err := c.GetMonsterByKey(key)
	if err != nil {
		return nil, err
	}
	return NewEnemy(key, def), nil
}

// Keys returns all monster keys, sorted
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.Monsters))
	for key := range c.Monsters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LootItemKeys returns every item key referenced by any loot table, keyed by
// the monster that references it.
func (c *Catalog) LootItemKeys() map[string][]string {
	refs := make(map[string][]string)
	for _, key := range c.Keys() {
		for _, item := range c.Monsters[key].Loot.ItemKeys() {
			refs[key] = append(refs[key], item)
		}
	}
	return refs
}
