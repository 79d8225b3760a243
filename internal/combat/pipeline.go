package combat

import (
	"math"

	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/dice"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/mathutil"
	"dungeoncrawl/internal/monster"
)

const (
	critMultiplier      = 2.0
	berserkMultiplier   = 1.25
	weakenedMultiplier  = 0.75
	fortifiedMultiplier = 0.5
)

// Strike is one attack ready to be resolved. Stage order:
//
//	base max(1, attack - defense), pierce shrinking defense first
//	(a) ablative charges
//	(b) dodge draw, a dodge ends the chain
//	(c) crit draw
//	(d) Multipliers, each re-floored to at least 1
//	(e) Finishers, same flooring
//
// IgnoreDefense replaces the base with floor(attack * IgnoreScale) and skips
// (a) to (c); no draws are consumed for it.
type Strike struct {
	Attack      int
	Defense     int
	ArmorPierce float64

	// Ablative points at the defender's charge counter; nil for none
	Ablative       *int
	AblativeAmount int

	DodgeChance float64
	CritChance  float64

	Multipliers []float64
	Finishers   []float64

	IgnoreDefense bool
	IgnoreScale   float64
}

// Hit is what resolveStrike produced, before any absorption layer
type Hit struct {
	Damage   int
	Dodged   bool
	Crit     bool
	Ablated  bool
	Piercing bool
}

func resolveStrike(roller dice.Roller, s Strike) Hit {
	var hit Hit
	var value int

	if s.IgnoreDefense {
		scale := s.IgnoreScale
		if scale <= 0 {
			scale = 1
		}
		value = mathutil.FloorAtLeastOne(float64(s.Attack) * scale)
		hit.Piercing = true
	} else {
		def := s.Defense
		if s.ArmorPierce > 0 {
			def = int(math.Floor(float64(def) * (1 - s.ArmorPierce)))
		}
		value = mathutil.IntMax(1, s.Attack-def)

		if s.Ablative != nil && *s.Ablative > 0 && s.AblativeAmount > 0 {
			value = mathutil.IntMax(1, value-s.AblativeAmount)
			*s.Ablative--
			hit.Ablated = true
		}

		if dice.Chance(roller, s.DodgeChance) {
			return Hit{Dodged: true}
		}

		if dice.Chance(roller, s.CritChance) {
			value = mathutil.FloorAtLeastOne(float64(value) * critMultiplier)
			hit.Crit = true
		}
	}

	for _, m := range s.Multipliers {
		value = mathutil.FloorAtLeastOne(float64(value) * m)
	}
	for _, f := range s.Finishers {
		value = mathutil.FloorAtLeastOne(float64(value) * f)
	}
	hit.Damage = value
	return hit
}

// dodgeChance is defense/(defense+K) plus flat bonuses, capped
func (r *Resolver) dodgeChance(defense int, bonus float64) float64 {
	cc := r.cfg.Combat
	base := 0.0
	if defense > 0 {
		base = float64(defense) / float64(defense+cc.DodgeDefenseConstant)
	}
	return mathutil.FloatClamp(base+bonus, 0, cc.MaxDodgeChance)
}

func buffMultipliers(attacker, defender *effects.Store) []float64 {
	var out []float64
	if attacker.Has(effects.Berserk) {
		out = append(out, berserkMultiplier)
	}
	if attacker.Has(effects.Weakened) {
		out = append(out, weakenedMultiplier)
	}
	if defender.Has(effects.Fortified) {
		out = append(out, fortifiedMultiplier)
	}
	return out
}

// playerStrike builds the player's attack against the current enemy.
// Stage (d) order: desperation, skill bonus, item bonus, buffs.
func (r *Resolver) playerStrike(p *character.Player, e *monster.Enemy) Strike {
	cc := r.cfg.Combat
	s := Strike{
		Attack:         p.EffectiveAttack(),
		Defense:        e.Defense,
		Ablative:       &e.State.AblativeCharges,
		AblativeAmount: ablativeAmount(e),
		CritChance:     cc.BaseCritChance,
	}
	if d, ok := e.DodgeOverride(); ok {
		s.DodgeChance = mathutil.FloatClamp(d, 0, cc.MaxDodgeChance)
	} else {
		s.DodgeChance = r.dodgeChance(e.Defense, 0)
	}
	if c, ok := p.Equipment.CritOverride(); ok {
		s.CritChance = c
	}

	if p.Equipment.HasDesperation() && p.HPFraction() <= cc.LowHPThreshold {
		s.Multipliers = append(s.Multipliers, cc.LowHPMultiplier)
	}
	if p.SkillDamageBonus > 0 {
		s.Multipliers = append(s.Multipliers, 1+p.SkillDamageBonus)
	}
	if pct := p.Equipment.DamageBonusPct(); pct > 0 {
		s.Multipliers = append(s.Multipliers, 1+float64(pct)/100)
	}
	s.Multipliers = append(s.Multipliers, buffMultipliers(&p.Effects, &e.Effects)...)
	return s
}

// enemyStrike builds a standard enemy attack on the player.
// Stage (d) order: enraged-boss desperation, buffs.
func (r *Resolver) enemyStrike(e *monster.Enemy, p *character.Player) Strike {
	cc := r.cfg.Combat
	m := e.Mechanics
	s := Strike{
		Attack:        e.EffectiveAttack(),
		Defense:       p.EffectiveDefense(),
		ArmorPierce:   m.ArmorPierce,
		DodgeChance:   r.dodgeChance(p.EffectiveDefense(), p.DodgeBonus()),
		CritChance:    cc.BaseCritChance,
		IgnoreDefense: m.IgnoreDefense,
		IgnoreScale:   m.IgnoreDefenseScale,
	}
	if c, ok := e.CritOverride(); ok {
		s.CritChance = c
	}
	if e.Boss && e.State.Enraged && e.HPFraction() <= cc.LowHPThreshold {
		s.Multipliers = append(s.Multipliers, cc.LowHPMultiplier)
	}
	s.Multipliers = append(s.Multipliers, buffMultipliers(&e.Effects, &p.Effects)...)
	return s
}

const defaultAblativeAmount = 3

func ablativeAmount(e *monster.Enemy) int {
	if e.Mechanics.AblativeAmount > 0 {
		return e.Mechanics.AblativeAmount
	}
	return defaultAblativeAmount
}
