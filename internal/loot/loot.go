// Package loot rolls post-victory rewards from an enemy's loot table.
package loot

import (
	"dungeoncrawl/internal/dice"
)

// Drop is one candidate item with its independent drop chance
type Drop struct {
	Item   string  `yaml:"item" validate:"required"`
	Chance float64 `yaml:"chance" validate:"gte=0,lte=1"`
}

// Table is read-only during resolution. Drops are evaluated in order.
type Table struct {
	GoldMin int    `yaml:"gold_min" validate:"gte=0"`
	GoldMax int    `yaml:"gold_max" validate:"gtefield=GoldMin"`
	Drops   []Drop `yaml:"drops" validate:"dive"`
}

// ItemKeys lists every item the table can produce
func (t Table) ItemKeys() []string {
	keys := make([]string, 0, len(t.Drops))
	for _, d := range t.Drops {
		keys = append(keys, d.Item)
	}
	return keys
}

// Outcome is the result of one roll. Item is only meaningful when Dropped.
type Outcome struct {
	Gold    int
	Item    string
	Dropped bool
}

type Resolver struct {
	roller dice.Roller
}

func NewResolver(roller dice.Roller) *Resolver {
	return &Resolver{roller: roller}
}

// Roll awards gold and at most one item. A fixed gold range consumes no
// draw. Each drop gets its own chance draw and the first success wins; the
// remaining entries are not rolled.
func (r *Resolver) Roll(t Table) Outcome {
	out := Outcome{Gold: dice.Between(r.roller, t.GoldMin, t.GoldMax)}
	for _, d := range t.Drops {
		if dice.Chance(r.roller, d.Chance) {
			out.Item = d.Item
			out.Dropped = true
			break
		}
	}
	return out
}
