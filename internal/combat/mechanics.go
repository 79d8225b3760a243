package combat

import (
	"dungeoncrawl/internal/dice"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/monster"
)

type turnOutcome int

const (
	continueTurn turnOutcome = iota
	endTurn
)

const (
	defaultMinionTurns    = 3
	defaultEffectTurns    = 2
	eliteWeakenTurns      = 2
	eliteHardenCharges    = 2
	eliteFrenzyAttacks    = 2
	eliteBehaviourOptions = 3
)

// mechanic is one entry of the enemy's action script. Entries are checked in
// order; the first to return endTurn stops the rest.
type mechanic struct {
	name    string
	applies func(r *Resolver) bool
	run     func(r *Resolver) turnOutcome
}

var enemyMechanics = []mechanic{
	{name: "regen", applies: (*Resolver).regenDue, run: (*Resolver).enemyRegen},
	{name: "self_heal", applies: (*Resolver).selfHealDue, run: (*Resolver).enemySelfHeal},
	{name: "enrage", applies: (*Resolver).canEnrage, run: (*Resolver).enemyEnrage},
	{name: "summon", applies: (*Resolver).summonDue, run: (*Resolver).enemySummon},
	{name: "flight", applies: (*Resolver).flightDue, run: (*Resolver).enemyTakeFlight},
	{name: "charge", applies: (*Resolver).chargeDue, run: (*Resolver).enemyCharge},
	{name: "submerge", applies: (*Resolver).submergeDue, run: (*Resolver).enemySubmerge},
	{name: "elite", applies: (*Resolver).eliteDue, run: (*Resolver).enemyEliteRoll},
	{name: "attack", applies: (*Resolver).attackDue, run: (*Resolver).enemyAttack},
	{name: "minions", applies: (*Resolver).minionsPresent, run: (*Resolver).minionsStrike},
}

// enemyTurn runs the enemy's action script for one turn
func (r *Resolver) enemyTurn() {
	e := r.enemy
	e.State.Turn++
	r.attacked = false

	if e.State.Submerged {
		e.State.Submerged = false
		r.narrate("%s surfaces!", e.Name)
	}

	for _, m := range enemyMechanics {
		if !r.player.IsAlive() || !e.IsAlive() {
			return
		}
		if !m.applies(r) {
			continue
		}
		r.elog.Debug("mechanic", "name", m.name, "enemy_turn", e.State.Turn)
		if m.run(r) == endTurn {
			return
		}
	}
}

func (r *Resolver) mech() monster.Mechanics { return r.enemy.Mechanics }

func (r *Resolver) regenDue() bool {
	m, st := r.mech(), r.enemy.State
	return m.RegenAmount > 0 && m.RegenInterval > 0 && st.Turn%m.RegenInterval == 0 &&
		r.enemy.HP.Current < r.enemy.HP.Max
}

func (r *Resolver) enemyRegen() turnOutcome {
	healed, err := r.enemy.Heal(r.mech().RegenAmount)
	if err != nil {
		r.elog.Warn("enemy regen failed", "error", err)
		return continueTurn
	}
	r.narrate("%s regenerates %d HP.", r.enemy.Name, healed)
	r.record(r.enemy.Name, "regenerate", 0, false, false, "")
	return continueTurn
}

func (r *Resolver) selfHealDue() bool {
	m := r.mech()
	return m.HealAmount > 0 && r.enemy.State.HealsLeft > 0 && r.enemy.HPFraction() < m.HealThreshold
}

func (r *Resolver) enemySelfHeal() turnOutcome {
	e := r.enemy
	e.State.HealsLeft--
	healed, err := e.Heal(r.mech().HealAmount)
	if err != nil {
		r.elog.Warn("enemy heal failed", "error", err)
	}
	r.narrate("%s heals itself for %d HP.", e.Name, healed)
	r.record(e.Name, "heal", 0, false, false, "")
	return endTurn
}

func (r *Resolver) canEnrage() bool {
	e := r.enemy
	m := e.Mechanics
	return !e.State.Enraged && m.EnrageThreshold > 0 && e.IsAlive() && e.HPFraction() <= m.EnrageThreshold
}

func (r *Resolver) enemyEnrage() turnOutcome {
	e := r.enemy
	e.State.Enraged = true
	r.narrate("%s becomes enraged!", e.Name)
	r.record(e.Name, "enrage", 0, false, false, "enraged")
	return continueTurn
}

// checkEnrage runs the enrage transition at turn start so the player sees it
// before choosing an action.
func (r *Resolver) checkEnrage() {
	if r.canEnrage() {
		r.enemyEnrage()
	}
}

func (r *Resolver) summonDue() bool {
	e := r.enemy
	m := e.Mechanics
	return m.SummonCount > 0 && !e.State.Summoned && e.HPFraction() <= m.SummonThreshold
}

func (r *Resolver) enemySummon() turnOutcome {
	e := r.enemy
	m := e.Mechanics
	turns := m.MinionDuration
	if turns <= 0 {
		turns = defaultMinionTurns
	}
	for range m.SummonCount {
		e.State.Minions = append(e.State.Minions, monster.Minion{Damage: m.MinionDamage, Turns: turns})
	}
	e.State.Summoned = true
	r.narrate("%s calls %d minions to its side!", e.Name, m.SummonCount)
	r.record(e.Name, "summon", 0, false, false, "")
	return continueTurn
}

func (r *Resolver) flightDue() bool {
	e := r.enemy
	m := e.Mechanics
	return m.FlightThreshold > 0 && !e.State.Flying && e.HPFraction() <= m.FlightThreshold
}

func (r *Resolver) enemyTakeFlight() turnOutcome {
	r.enemy.State.Flying = true
	r.narrate("%s takes to the air!", r.enemy.Name)
	r.record(r.enemy.Name, "flight", 0, false, false, "flying")
	return continueTurn
}

func (r *Resolver) chargeDue() bool {
	m, st := r.mech(), r.enemy.State
	return m.ChargeInterval > 0 && (st.Charging || st.Turn%m.ChargeInterval == 0)
}

// enemyCharge winds up on interval turns and releases on the next action
func (r *Resolver) enemyCharge() turnOutcome {
	e := r.enemy
	if e.State.Charging {
		e.State.Charging = false
		r.enemyStandardAttack(true)
		r.attacked = true
		return continueTurn
	}
	e.State.Charging = true
	r.narrate("%s lowers its head and gathers itself to charge!", e.Name)
	r.record(e.Name, "wind-up", 0, false, false, "charging")
	return endTurn
}

func (r *Resolver) submergeDue() bool {
	m, st := r.mech(), r.enemy.State
	return !r.attacked && m.SubmergeInterval > 0 && st.Turn%m.SubmergeInterval == 0
}

func (r *Resolver) enemySubmerge() turnOutcome {
	r.enemy.State.Submerged = true
	r.narrate("%s dives beneath the surface!", r.enemy.Name)
	r.record(r.enemy.Name, "submerge", 0, false, false, "submerged")
	return endTurn
}

func (r *Resolver) eliteDue() bool {
	return !r.attacked && r.mech().EliteChance > 0
}

// enemyEliteRoll picks one of three elite behaviours when the chance hits
func (r *Resolver) enemyEliteRoll() turnOutcome {
	e := r.enemy
	if !dice.Chance(r.roller, e.Mechanics.EliteChance) {
		return continueTurn
	}
	switch r.roller.Intn(eliteBehaviourOptions) {
	case 0:
		r.narrate("%s lets out a draining howl.", e.Name)
		r.record(e.Name, "weaken", 0, false, false, string(effects.Weakened))
		r.afflictPlayer(effects.Weakened, eliteWeakenTurns)
		return endTurn
	case 1:
		e.State.AblativeCharges += eliteHardenCharges
		r.narrate("%s's hide hardens.", e.Name)
		r.record(e.Name, "harden", 0, false, false, "")
		return continueTurn
	default:
		r.narrate("%s flies into a frenzy!", e.Name)
		for range eliteFrenzyAttacks {
			if !r.player.IsAlive() || !e.IsAlive() {
				break
			}
			r.enemyStandardAttack(false)
		}
		r.attacked = true
		return continueTurn
	}
}

func (r *Resolver) attackDue() bool {
	return !r.attacked
}

func (r *Resolver) enemyAttack() turnOutcome {
	r.enemyStandardAttack(false)
	r.attacked = true
	return continueTurn
}

func (r *Resolver) minionsPresent() bool {
	return len(r.enemy.State.Minions) > 0
}

func (r *Resolver) minionsStrike() turnOutcome {
	for _, m := range r.enemy.State.Minions {
		if !r.player.IsAlive() {
			break
		}
		dealt := r.damagePlayer(m.Damage)
		r.narrate("A minion strikes you for %d damage.", dealt)
		r.record(r.enemy.Name+"'s minion", "attack", dealt, false, false, "")
	}
	return continueTurn
}

// enemyStandardAttack resolves the enemy's regular strike. Finishers stack in
// a fixed order: charge, breath, first strike.
func (r *Resolver) enemyStandardAttack(charged bool) {
	e := r.enemy
	m := e.Mechanics
	s := r.enemyStrike(e, r.player)
	action := "attack"

	if charged && m.ChargeMultiplier > 0 {
		s.Finishers = append(s.Finishers, m.ChargeMultiplier)
		action = "charge"
	}
	breath := m.BreathInterval > 0 && e.State.Turn > 0 && e.State.Turn%m.BreathInterval == 0
	if breath {
		s.IgnoreDefense = true
		s.IgnoreScale = 1
		if m.BreathMultiplier > 0 {
			s.Finishers = append(s.Finishers, m.BreathMultiplier)
		}
		action = "breath"
	}
	firstStrike := m.FirstStrikeMultiplier > 0 && !e.State.FirstStrikeSpent
	if firstStrike {
		s.Finishers = append(s.Finishers, m.FirstStrikeMultiplier)
	}

	dealt, connected := r.enemyHits(action, s)
	// Reflected damage can kill the attacker mid-strike
	if !connected || !e.IsAlive() {
		return
	}
	if firstStrike {
		e.State.FirstStrikeSpent = true
	}
	if breath && m.BreathEffect != "" {
		turns := m.BreathDuration
		if turns <= 0 {
			turns = defaultEffectTurns
		}
		r.afflictPlayer(effects.Kind(m.BreathEffect), turns)
	}
	r.afterEnemyHit(dealt)
}

// afterEnemyHit applies on-hit effects, mana drain and lifesteal
func (r *Resolver) afterEnemyHit(dealt int) {
	e, p := r.enemy, r.player
	m := e.Mechanics

	if m.OnHitEffect != "" && m.OnHitChance > 0 && dice.Chance(r.roller, m.OnHitChance) {
		r.afflictPlayer(effects.Kind(m.OnHitEffect), m.OnHitDuration)
	}
	if m.ManaDrain > 0 {
		drained, err := p.DrainMana(m.ManaDrain)
		if err != nil {
			r.elog.Warn("mana drain failed", "error", err)
		} else if drained > 0 {
			r.narrate("%s drains %d of your mana.", e.Name, drained)
		}
	}
	if m.Lifesteal > 0 && dealt > 0 {
		if heal := int(float64(dealt) * m.Lifesteal); heal > 0 {
			healed, err := e.Heal(heal)
			if err != nil {
				r.elog.Warn("lifesteal failed", "error", err)
			} else if healed > 0 {
				r.narrate("%s drinks %d HP from the wound.", e.Name, healed)
			}
		}
	}
}
