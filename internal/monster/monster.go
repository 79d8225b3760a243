package monster

import (
	"fmt"

	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/loot"
	"dungeoncrawl/internal/mathutil"
	"dungeoncrawl/internal/vitals"
)

// Enemy is one live opponent. It is built fresh for each encounter and
// mutated in place by the combat resolver.
type Enemy struct {
	Key        string
	Name       string
	Level      int
	HP         vitals.Pool
	Attack     int
	Defense    int
	Experience int
	Boss       bool
	Elite      bool

	Mechanics Mechanics
	State     MechanicState
	Effects   effects.Store
	Loot      loot.Table
}

// NewEnemy builds an enemy from a definition with full HP and fresh state
func NewEnemy(key string, def *MonsterDefinition) *Enemy {
	e := &Enemy{
		Key:        key,
		Name:       def.Name,
		Level:      def.Level,
		HP:         vitals.NewPool(def.MaxHitPoints),
		Attack:     def.Attack,
		Defense:    def.Defense,
		Experience: def.Experience,
		Boss:       def.Boss,
		Elite:      def.Elite,
		Mechanics:  def.Mechanics,
		Loot:       def.Loot,
	}
	e.ResetMechanics()
	return e
}

func (e *Enemy) IsAlive() bool {
	return !e.HP.Empty()
}

func (e *Enemy) TakeDamage(amount int) (int, error) {
	n, err := e.HP.Drain(amount)
	if err != nil {
		return 0, fmt.Errorf("%s takes damage: %w", e.Name, err)
	}
	return n, nil
}

// Heal restores HP. A dead enemy cannot be healed, only revived.
func (e *Enemy) Heal(amount int) (int, error) {
	if amount > 0 && !e.IsAlive() {
		return 0, nil
	}
	n, err := e.HP.Restore(amount)
	if err != nil {
		return 0, fmt.Errorf("%s heals: %w", e.Name, err)
	}
	return n, nil
}

// ResetMechanics puts the runtime state back to its encounter-start values
func (e *Enemy) ResetMechanics() {
	e.State = MechanicState{
		HealsLeft:       e.Mechanics.HealUses,
		AblativeCharges: e.Mechanics.AblativeCharges,
	}
}

// ClearTransient drops effects and any temporary battlefield state
func (e *Enemy) ClearTransient() {
	e.Effects.Clear()
	e.State.Charging = false
	e.State.Submerged = false
	e.State.Minions = nil
}

// EffectiveAttack includes the enrage bonus once the enemy has enraged
func (e *Enemy) EffectiveAttack() int {
	if e.State.Enraged {
		return e.Attack + e.Mechanics.EnrageAttackBonus
	}
	return e.Attack
}

// DodgeOverride returns a flat dodge chance that replaces the defense formula.
// Flight dodge takes precedence while the enemy is airborne.
func (e *Enemy) DodgeOverride() (float64, bool) {
	if e.State.Flying && e.Mechanics.FlightDodge > 0 {
		return e.Mechanics.FlightDodge, true
	}
	if e.Mechanics.FlatDodge > 0 {
		return e.Mechanics.FlatDodge, true
	}
	return 0, false
}

// CritOverride returns the enemy's declared crit chance, if any
func (e *Enemy) CritOverride() (float64, bool) {
	return e.Mechanics.CritChance, e.Mechanics.CritChance > 0
}

func (e *Enemy) HPFraction() float64 {
	return mathutil.FloatClamp(e.HP.Fraction(), 0, 1)
}

func (e *Enemy) InBounds() bool {
	return e.HP.InBounds()
}

func (e *Enemy) GetDisplayInfo() string {
	tag := ""
	switch {
	case e.Boss:
		tag = " [boss]"
	case e.Elite:
		tag = " [elite]"
	}
	return fmt.Sprintf("%s%s  HP: %s  ATK %d  DEF %d", e.Name, tag, e.HP, e.EffectiveAttack(), e.Defense)
}
