package abilities

import "fmt"

// Caster is whoever pays for an ability
type Caster interface {
	GetLevel() int
	GetMana() int
	SpendMana(cost int) error
}

// Tracker holds per-encounter cooldowns. A cooldown of N means N turn-start
// ticks must pass before the ability can be used again.
type Tracker struct {
	catalog   *Catalog
	remaining map[ID]int
}

func NewTracker(catalog *Catalog) *Tracker {
	return &Tracker{catalog: catalog, remaining: make(map[ID]int)}
}

// Use validates, in order: the ability exists, the caster's level unlocks
// it, it is off cooldown, the caster can pay. Any failure leaves mana and
// cooldowns untouched. On success mana is spent, the cooldown starts and
// apply runs with the definition.
func (t *Tracker) Use(caster Caster, id ID, apply func(Definition)) error {
	def, ok := t.catalog.Get(id)
	if !ok {
		return fmt.Errorf("%q: %w", id, ErrInvalidAbility)
	}
	if caster.GetLevel() < def.UnlockLevel {
		return fmt.Errorf("%s unlocks at level %d: %w", def.Name, def.UnlockLevel, ErrNotUnlocked)
	}
	if left := t.remaining[id]; left > 0 {
		return fmt.Errorf("%s ready in %d turns: %w", def.Name, left, ErrOnCooldown)
	}
	if caster.GetMana() < def.ManaCost {
		return fmt.Errorf("%s costs %d mana, have %d: %w", def.Name, def.ManaCost, caster.GetMana(), ErrInsufficientMana)
	}
	if err := caster.SpendMana(def.ManaCost); err != nil {
		return fmt.Errorf("%s: %w", def.Name, err)
	}
	if def.Cooldown > 0 {
		t.remaining[id] = def.Cooldown
	}
	if apply != nil {
		apply(def)
	}
	return nil
}

// Tick decrements every active cooldown by one
func (t *Tracker) Tick() {
	for id, left := range t.remaining {
		if left <= 1 {
			delete(t.remaining, id)
			continue
		}
		t.remaining[id] = left - 1
	}
}

// Reset clears all cooldowns. Called at every encounter start.
func (t *Tracker) Reset() {
	t.remaining = make(map[ID]int)
}

// Remaining returns the turns left on id's cooldown
func (t *Tracker) Remaining(id ID) int {
	return t.remaining[id]
}

// Available lists the abilities unlocked at level, in catalog order.
// Abilities on cooldown are included so menus can show them greyed out.
func (t *Tracker) Available(level int) []Definition {
	var out []Definition
	for _, d := range t.catalog.All() {
		if d.UnlockLevel <= level {
			out = append(out, d)
		}
	}
	return out
}

// Catalog returns the catalog the tracker validates against
func (t *Tracker) Catalog() *Catalog {
	return t.catalog
}
