package character

import (
	"fmt"

	"dungeoncrawl/internal/config"
)

// Trait is the bonus a player picks on trait levels
type Trait int

const (
	TraitHP Trait = iota
	TraitAttack
	TraitDefense
)

func (t Trait) String() string {
	switch t {
	case TraitHP:
		return "HP"
	case TraitAttack:
		return "Attack"
	case TraitDefense:
		return "Defense"
	default:
		return "Unknown"
	}
}

// ParseTrait maps menu input to a trait. Only the first letter counts.
func ParseTrait(input string) (Trait, bool) {
	if input == "" {
		return TraitHP, false
	}
	switch input[0] {
	case 'h', 'H':
		return TraitHP, true
	case 'a', 'A':
		return TraitAttack, true
	case 'd', 'D':
		return TraitDefense, true
	}
	return TraitHP, false
}

// CanLevelUp reports whether experience has passed the next threshold and
// the cap still allows another level.
func (p *Player) CanLevelUp(prog config.ProgressionConfig) bool {
	return p.Experience/prog.XPPerLevel+1 > p.Level && p.Level < prog.LevelCap
}

// LevelUp raises the level by one, applies the per-level increments and
// fully restores HP and mana.
func (p *Player) LevelUp(prog config.ProgressionConfig) error {
	if err := p.HP.Grow(prog.HPPerLevel); err != nil {
		return fmt.Errorf("level up: %w", err)
	}
	if err := p.Mana.Grow(prog.ManaPerLevel); err != nil {
		return fmt.Errorf("level up: %w", err)
	}
	p.Level++
	p.Attack += prog.AttackPerLevel
	p.Defense += prog.DefensePerLevel
	p.HP.Fill()
	p.Mana.Fill()
	return nil
}

// ApplyTrait grants the chosen trait bonus
func (p *Player) ApplyTrait(t Trait, prog config.ProgressionConfig) error {
	switch t {
	case TraitHP:
		if err := p.HP.Grow(prog.TraitHP); err != nil {
			return fmt.Errorf("apply trait: %w", err)
		}
		p.HP.Fill()
	case TraitAttack:
		p.Attack += prog.TraitAttack
	case TraitDefense:
		p.Defense += prog.TraitDefense
	default:
		return fmt.Errorf("apply trait: unknown trait %d", int(t))
	}
	return nil
}
