package items

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"dungeoncrawl/internal/config"
)

// ItemDefinition is one entry of items.yaml
type ItemDefinition struct {
	Name           string   `yaml:"name" validate:"required"`
	Type           string   `yaml:"type" validate:"required,oneof=weapon armor accessory consumable trophy"`
	Slot           string   `yaml:"slot" validate:"omitempty,oneof=main_hand off_hand armor helmet boots amulet ring1 ring2 none"`
	Description    string   `yaml:"description"`
	AttackBonus    int      `yaml:"attack_bonus" validate:"gte=0"`
	DefenseBonus   int      `yaml:"defense_bonus" validate:"gte=0"`
	DodgeBonus     float64  `yaml:"dodge_bonus" validate:"gte=0,lte=1"`
	DamageBonusPct int      `yaml:"damage_bonus_pct" validate:"gte=0"`
	Passives       []string `yaml:"passives" validate:"dive,required"`
	Desperation    bool     `yaml:"desperation"`
	CritChance     float64  `yaml:"crit_chance" validate:"gte=0,lte=1"`
}

// Catalog holds every item definition keyed by item key
type Catalog struct {
	Items map[string]ItemDefinition `yaml:"items" validate:"required,min=1,dive"`
}

// LoadCatalog loads item definitions from a YAML file on fs
func LoadCatalog(fs afero.Fs, filename string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read item config file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse item config YAML: %w", err)
	}

	if err := config.Validate(&catalog); err != nil {
		return nil, fmt.Errorf("invalid item config %s: %w", filename, err)
	}
	return &catalog, nil
}

// MustLoadCatalog loads item definitions and panics on error
func MustLoadCatalog(fs afero.Fs, filename string) *Catalog {
	catalog, err := LoadCatalog(fs, filename)
	if err != nil {
		panic("Failed to load item config: " + err.Error())
	}
	return catalog
}

// Create builds an Item from the definition stored under key
func (c *Catalog) Create(key string) (Item, error) {
	def, ok := c.Items[key]
	if !ok {
		return Item{}, fmt.Errorf("%q: %w", key, ErrUnknownItem)
	}
	itemType, err := parseType(def.Type)
	if err != nil {
		return Item{}, fmt.Errorf("item %q: %w", key, err)
	}
	slot, err := ParseSlot(def.Slot)
	if err != nil {
		return Item{}, fmt.Errorf("item %q: %w", key, err)
	}

	passives := make([]string, len(def.Passives))
	copy(passives, def.Passives)

	return Item{
		Key:            key,
		Name:           def.Name,
		Type:           itemType,
		Slot:           slot,
		Description:    def.Description,
		AttackBonus:    def.AttackBonus,
		DefenseBonus:   def.DefenseBonus,
		DodgeBonus:     def.DodgeBonus,
		DamageBonusPct: def.DamageBonusPct,
		Passives:       passives,
		Desperation:    def.Desperation,
		CritChance:     def.CritChance,
	}, nil
}

// Has reports whether key names a known item
func (c *Catalog) Has(key string) bool {
	_, ok := c.Items[key]
	return ok
}

// Keys returns all item keys, sorted
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.Items))
	for key := range c.Items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
