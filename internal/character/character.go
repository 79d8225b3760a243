package character

import (
	"errors"
	"fmt"

	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/mathutil"
	"dungeoncrawl/internal/vitals"
)

// ErrInsufficientMana is returned by SpendMana when the pool cannot cover the cost
var ErrInsufficientMana = errors.New("insufficient mana")

type Class int

const (
	ClassWarrior Class = iota
	ClassMage
	ClassRogue
)

// classDodgeBonus is added to the defense-based dodge chance
var classDodgeBonus = map[Class]float64{
	ClassRogue: 0.05,
}

func ParseClass(name string) (Class, error) {
	switch name {
	case "warrior":
		return ClassWarrior, nil
	case "mage":
		return ClassMage, nil
	case "rogue":
		return ClassRogue, nil
	}
	return ClassWarrior, fmt.Errorf("unknown class %q", name)
}

func (c Class) String() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassMage:
		return "Mage"
	case ClassRogue:
		return "Rogue"
	default:
		return "Unknown"
	}
}

// Player is the hero side of an encounter. It lives for the whole run; the
// combat resolver mutates it in place.
type Player struct {
	Name  string
	Class Class

	Level      int
	Experience int
	Gold       int

	HP   vitals.Pool
	Mana vitals.Pool

	// Base stats before equipment
	Attack  int
	Defense int

	// SkillDamageBonus is a fraction added to outgoing damage (0.1 = +10%)
	SkillDamageBonus float64
	SkillDodgeBonus  float64

	Equipment items.Equipment
	Inventory *items.Inventory
	Effects   effects.Store
	Shield    Shield

	// Passive bookkeeping. encounterFlags is wiped at every encounter start,
	// runFlags lives as long as the player.
	encounterFlags map[string]bool
	runFlags       map[string]bool
}

// NewPlayer builds a level 1 player from config and equips the starting gear
func NewPlayer(cfg *config.Config, catalog *items.Catalog) (*Player, error) {
	pc := cfg.Player
	class, err := ParseClass(pc.Class)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	inv, err := items.NewInventory(pc.InventoryCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	p := &Player{
		Name:             pc.Name,
		Class:            class,
		Level:            1,
		HP:               vitals.NewPool(pc.MaxHitPoints),
		Mana:             vitals.NewPool(pc.MaxMana),
		Attack:           pc.Attack,
		Defense:          pc.Defense,
		SkillDamageBonus: pc.SkillDamageBonus,
		SkillDodgeBonus:  pc.SkillDodgeBonus,
		Equipment:        make(items.Equipment),
		Inventory:        inv,
		encounterFlags:   make(map[string]bool),
		runFlags:         make(map[string]bool),
	}

	for _, key := range pc.StartingEquipment {
		if catalog == nil {
			return nil, fmt.Errorf("failed to equip %q: no item catalog", key)
		}
		it, err := catalog.Create(key)
		if err != nil {
			return nil, fmt.Errorf("failed to equip starting item: %w", err)
		}
		if it.Equippable() {
			if _, _, err := p.Equipment.Equip(it); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.Inventory.Add(it); err != nil {
			return nil, fmt.Errorf("failed to stash starting item: %w", err)
		}
	}
	return p, nil
}

// IsAlive reports whether the player still has hit points
func (p *Player) IsAlive() bool {
	return !p.HP.Empty()
}

// TakeDamage removes HP and returns how much was lost
func (p *Player) TakeDamage(amount int) (int, error) {
	n, err := p.HP.Drain(amount)
	if err != nil {
		return 0, fmt.Errorf("%s takes damage: %w", p.Name, err)
	}
	return n, nil
}

// Heal restores HP up to the maximum and returns how much was gained. At
// 0 HP it does nothing; only revive passives bring the player back.
func (p *Player) Heal(amount int) (int, error) {
	if amount > 0 && !p.IsAlive() {
		return 0, nil
	}
	n, err := p.HP.Restore(amount)
	if err != nil {
		return 0, fmt.Errorf("%s heals: %w", p.Name, err)
	}
	return n, nil
}

// RestoreMana adds mana up to the maximum
func (p *Player) RestoreMana(amount int) (int, error) {
	n, err := p.Mana.Restore(amount)
	if err != nil {
		return 0, fmt.Errorf("%s restores mana: %w", p.Name, err)
	}
	return n, nil
}

// DrainMana removes mana without requiring the full amount to be present
func (p *Player) DrainMana(amount int) (int, error) {
	n, err := p.Mana.Drain(amount)
	if err != nil {
		return 0, fmt.Errorf("%s loses mana: %w", p.Name, err)
	}
	return n, nil
}

// SpendMana pays an exact cost, failing without change if it cannot
func (p *Player) SpendMana(cost int) error {
	if cost < 0 {
		return fmt.Errorf("%s spends mana %d: %w", p.Name, cost, vitals.ErrNegativeAmount)
	}
	if p.Mana.Current < cost {
		return fmt.Errorf("%s needs %d mana, has %d: %w", p.Name, cost, p.Mana.Current, ErrInsufficientMana)
	}
	_, err := p.Mana.Drain(cost)
	return err
}

// GetLevel and GetMana let the player act as an ability caster
func (p *Player) GetLevel() int { return p.Level }
func (p *Player) GetMana() int  { return p.Mana.Current }

// GainExperience adds a flat amount of XP. Leveling is driven by the caller.
func (p *Player) GainExperience(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%s gains %d xp: %w", p.Name, amount, vitals.ErrNegativeAmount)
	}
	p.Experience += amount
	return nil
}

// AddGold adds looted gold
func (p *Player) AddGold(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%s gains %d gold: %w", p.Name, amount, vitals.ErrNegativeAmount)
	}
	p.Gold += amount
	return nil
}

// EffectiveAttack is base attack plus equipment
func (p *Player) EffectiveAttack() int {
	return p.Attack + p.Equipment.AttackBonus()
}

// EffectiveDefense is base defense plus equipment
func (p *Player) EffectiveDefense() int {
	return p.Defense + p.Equipment.DefenseBonus()
}

// DodgeBonus sums equipment, class and skill bonuses on top of the
// defense-based dodge chance.
func (p *Player) DodgeBonus() float64 {
	return p.Equipment.DodgeBonus() + classDodgeBonus[p.Class] + p.SkillDodgeBonus
}

// HasPassive reports whether any equipped item declares the passive id
func (p *Player) HasPassive(id string) bool {
	for _, it := range p.Equipment.Ordered() {
		for _, pid := range it.Passives {
			if pid == id {
				return true
			}
		}
	}
	return false
}

// EncounterFlag / RunFlag track once-per-encounter and once-per-run triggers
func (p *Player) EncounterFlag(name string) bool { return p.encounterFlags[name] }
func (p *Player) RunFlag(name string) bool       { return p.runFlags[name] }

func (p *Player) SetEncounterFlag(name string) {
	if p.encounterFlags == nil {
		p.encounterFlags = make(map[string]bool)
	}
	p.encounterFlags[name] = true
}

func (p *Player) SetRunFlag(name string) {
	if p.runFlags == nil {
		p.runFlags = make(map[string]bool)
	}
	p.runFlags[name] = true
}

// ResetEncounterFlags clears every once-per-encounter marker
func (p *Player) ResetEncounterFlags() {
	p.encounterFlags = make(map[string]bool)
}

// ClearTransient drops everything that must not outlive an encounter
func (p *Player) ClearTransient() {
	p.Effects.Clear()
	p.Shield = Shield{}
}

// InBounds reports whether HP and mana are inside their pools
func (p *Player) InBounds() bool {
	return p.HP.InBounds() && p.Mana.InBounds()
}

func (p *Player) GetDisplayInfo() string {
	return fmt.Sprintf("%s the %s Lv.%d  HP: %s  MP: %s  ATK %d  DEF %d  XP %d  Gold %d",
		p.Name, p.Class, p.Level, p.HP, p.Mana,
		p.EffectiveAttack(), p.EffectiveDefense(), p.Experience, p.Gold)
}

// HPFraction is current HP over max, used by low-HP bonuses
func (p *Player) HPFraction() float64 {
	return mathutil.FloatClamp(p.HP.Fraction(), 0, 1)
}
