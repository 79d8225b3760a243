// Package abilities holds the fixed ability catalog and the per-encounter
// cooldown tracker that gates their use.
package abilities

import (
	"errors"
	"fmt"

	"dungeoncrawl/internal/effects"
)

// Failure reasons returned by Tracker.Use. Callers treat every one of them
// as a menu cancellation.
var (
	ErrInvalidAbility   = errors.New("invalid ability")
	ErrNotUnlocked      = errors.New("ability not unlocked")
	ErrOnCooldown       = errors.New("ability on cooldown")
	ErrInsufficientMana = errors.New("insufficient mana")
)

type ID string

const (
	PowerStrike  ID = "power_strike"
	Fireball     ID = "fireball"
	Heal         ID = "heal"
	ArcaneShield ID = "arcane_shield"
	StunningBlow ID = "stunning_blow"
	Fortify      ID = "fortify"
	Berserk      ID = "berserk"
)

type Kind int

const (
	// KindStrike is a weapon attack with Power as a finishing multiplier
	KindStrike Kind = iota
	// KindSpell ignores defense and scales attack by Power
	KindSpell
	KindHeal
	KindShield
	// KindBuff applies Effect to the caster
	KindBuff
)

func (k Kind) String() string {
	switch k {
	case KindStrike:
		return "strike"
	case KindSpell:
		return "spell"
	case KindHeal:
		return "heal"
	case KindShield:
		return "shield"
	case KindBuff:
		return "buff"
	default:
		return "unknown"
	}
}

// Definition is immutable once the catalog is built
type Definition struct {
	ID          ID
	Name        string
	ManaCost    int
	Cooldown    int
	UnlockLevel int
	Kind        Kind

	Power    float64
	Amount   int
	Duration int
	// Effect lands on the target for strikes and spells, on the caster for buffs
	Effect effects.Kind
}

// Catalog is an ordered, read-only set of definitions
type Catalog struct {
	order []ID
	defs  map[ID]Definition
}

// NewCatalog builds a catalog keeping the given order for menus
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[ID]Definition, len(defs))}
	for _, d := range defs {
		if _, dup := c.defs[d.ID]; dup {
			return nil, fmt.Errorf("duplicate ability %q", d.ID)
		}
		if d.ManaCost < 0 || d.Cooldown < 0 || d.UnlockLevel < 1 {
			return nil, fmt.Errorf("ability %q: cost, cooldown and unlock level must be valid", d.ID)
		}
		c.order = append(c.order, d.ID)
		c.defs[d.ID] = d
	}
	return c, nil
}

// DefaultCatalog returns the abilities every player can learn
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Definition{ID: PowerStrike, Name: "Power Strike", ManaCost: 5, Cooldown: 2, UnlockLevel: 1, Kind: KindStrike, Power: 1.5},
		Definition{ID: Heal, Name: "Heal", ManaCost: 10, Cooldown: 3, UnlockLevel: 1, Kind: KindHeal, Amount: 25},
		Definition{ID: Fireball, Name: "Fireball", ManaCost: 12, Cooldown: 3, UnlockLevel: 2, Kind: KindSpell, Power: 1.2, Effect: effects.Burn, Duration: 2},
		Definition{ID: Fortify, Name: "Fortify", ManaCost: 6, Cooldown: 4, UnlockLevel: 2, Kind: KindBuff, Effect: effects.Fortified, Duration: 2},
		Definition{ID: ArcaneShield, Name: "Arcane Shield", ManaCost: 8, Cooldown: 4, UnlockLevel: 3, Kind: KindShield, Amount: 20, Duration: 3},
		Definition{ID: StunningBlow, Name: "Stunning Blow", ManaCost: 10, Cooldown: 4, UnlockLevel: 4, Kind: KindStrike, Power: 0.8, Effect: effects.Stun, Duration: 1},
		Definition{ID: Berserk, Name: "Berserk", ManaCost: 6, Cooldown: 5, UnlockLevel: 5, Kind: KindBuff, Effect: effects.Berserk, Duration: 3},
	)
	if err != nil {
		panic("default ability catalog: " + err.Error())
	}
	return c
}

func (c *Catalog) Get(id ID) (Definition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// All returns every definition in catalog order
func (c *Catalog) All() []Definition {
	out := make([]Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}
