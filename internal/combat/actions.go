package combat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dungeoncrawl/internal/abilities"
	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/dice"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/names"
	"dungeoncrawl/internal/passives"
)

var mainMenu = []string{"[a]ttack", "[s]kill", "[f]lee"}

func readChoice(in Input) string {
	return strings.ToLower(strings.TrimSpace(in.NextLine()))
}

// playerDecision prompts until the player commits to an action and performs
// it. It reports whether the player fled.
func (r *Resolver) playerDecision() bool {
	for {
		r.display.ShowMenu("Your move", mainMenu)
		choice := readChoice(r.input)
		switch choice {
		case "a", "attack":
			r.phase = PhasePlayerAction
			if r.playerAttack("attack", r.playerStrike(r.player, r.enemy)) {
				r.counterAttack()
			}
			return false
		case "s", "skill":
			if r.abilityMenu() {
				return false
			}
		case "f", "flee":
			r.phase = PhasePlayerAction
			return r.attemptFlee()
		default:
			r.display.ShowError(fmt.Sprintf("Unknown command %q. Choose a, s or f.", choice))
		}
	}
}

// abilityMenu lists unlocked abilities and uses the chosen one. It reports
// whether an ability was actually used; anything else goes back to the main
// menu.
func (r *Resolver) abilityMenu() bool {
	avail := r.tracker.Available(r.player.Level)
	if len(avail) == 0 {
		r.display.ShowError("You have no abilities yet.")
		return false
	}

	opts := make([]string, 0, len(avail)+1)
	for i, def := range avail {
		line := fmt.Sprintf("%d) %s (%d MP)", i+1, def.Name, def.ManaCost)
		if left := r.tracker.Remaining(def.ID); left > 0 {
			line += fmt.Sprintf(" [ready in %d]", left)
		}
		opts = append(opts, line)
	}
	opts = append(opts, "c) cancel")
	r.display.ShowMenu("Abilities", opts)

	choice := readChoice(r.input)
	if choice == "c" || choice == "cancel" {
		return false
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(avail) {
		r.display.ShowError(fmt.Sprintf("Invalid ability choice %q.", choice))
		return false
	}
	return r.useAbility(avail[idx-1].ID)
}

func (r *Resolver) useAbility(id abilities.ID) bool {
	r.phase = PhasePlayerAction
	err := r.tracker.Use(r.player, id, r.applyAbility)
	if err == nil {
		r.stats.AbilitiesUsed++
		return true
	}

	switch {
	case errors.Is(err, abilities.ErrInsufficientMana),
		errors.Is(err, abilities.ErrOnCooldown),
		errors.Is(err, abilities.ErrNotUnlocked),
		errors.Is(err, abilities.ErrInvalidAbility):
		r.elog.Debug("ability refused", "ability", string(id), "error", err)
	default:
		r.elog.Warn("ability failed", "ability", string(id), "error", err)
	}
	r.display.ShowError(err.Error())
	r.phase = PhasePlayerDecision
	return false
}

// applyAbility runs once the tracker has charged for the ability
func (r *Resolver) applyAbility(def abilities.Definition) {
	p, e := r.player, r.enemy
	r.narrate("You use %s!", def.Name)

	switch def.Kind {
	case abilities.KindStrike:
		s := r.playerStrike(p, e)
		if def.Power > 0 {
			s.Finishers = append(s.Finishers, def.Power)
		}
		if r.playerAttack(def.Name, s) {
			r.afflictEnemy(def)
			r.counterAttack()
		}
	case abilities.KindSpell:
		s := r.playerStrike(p, e)
		s.IgnoreDefense = true
		s.IgnoreScale = def.Power
		if r.playerAttack(def.Name, s) {
			r.afflictEnemy(def)
			r.counterAttack()
		}
	case abilities.KindHeal:
		healed, err := p.Heal(def.Amount)
		if err != nil {
			r.elog.Warn("heal failed", "error", err)
		}
		r.narrate("You recover %d HP.", healed)
		r.record(p.Name, def.Name, 0, false, false, fmt.Sprintf("+%d HP", healed))
	case abilities.KindShield:
		p.Shield = character.Shield{Amount: def.Amount, Turns: def.Duration}
		r.narrate("A shimmering shield absorbs the next %d damage.", def.Amount)
		r.record(p.Name, def.Name, 0, false, false, "shielded")
	case abilities.KindBuff:
		if err := p.Effects.Apply(def.Effect, def.Duration); err != nil {
			r.elog.Warn("buff failed", "ability", string(def.ID), "error", err)
			return
		}
		r.narrate("You are %s for %d turns.", def.Effect, def.Duration)
		r.record(p.Name, def.Name, 0, false, false, string(def.Effect))
	}
}

func (r *Resolver) afflictEnemy(def abilities.Definition) {
	if def.Effect == "" || def.Duration <= 0 || !r.enemy.IsAlive() {
		return
	}
	if err := r.enemy.Effects.Apply(def.Effect, def.Duration); err != nil {
		r.elog.Warn("ability effect failed", "ability", string(def.ID), "error", err)
		return
	}
	r.narrate("%s is afflicted with %s.", r.enemy.Name, def.Effect)
}

// playerAttack resolves one player strike, on-hit passives included. It
// reports whether the strike connected.
func (r *Resolver) playerAttack(action string, s Strike) bool {
	p, e := r.player, r.enemy
	if e.State.Submerged {
		r.stats.Misses++
		r.narrate("%s is submerged. Your %s finds only water.", e.Name, action)
		r.record(p.Name, action, 0, false, true, "submerged")
		return false
	}

	hit := resolveStrike(r.roller, s)
	if hit.Dodged {
		r.stats.Misses++
		r.narrate("%s dodges your %s!", e.Name, action)
		r.record(p.Name, action, 0, false, true, "")
		return false
	}
	if hit.Ablated {
		r.narrate("%s's plating soaks part of the blow.", e.Name)
	}
	if hit.Crit {
		r.stats.CriticalHits++
	}

	dealt := r.damageEnemy(hit.Damage)
	if hit.Crit {
		r.narrate("Critical hit! Your %s deals %d damage to %s.", action, dealt, e.Name)
	} else {
		r.narrate("Your %s deals %d damage to %s.", action, dealt, e.Name)
	}
	r.record(p.Name, action, dealt, hit.Crit, false, "")

	if bonus := r.passives.Fire(passives.OnPlayerHit, r.passiveContext(dealt)); bonus > 0 {
		r.bonusDamage(bonus, "passive")
	}
	return true
}

// counterAttack gives a surviving, unstunned enemy its chance to strike back
func (r *Resolver) counterAttack() {
	e := r.enemy
	chance := e.Mechanics.CounterChance
	if chance <= 0 || !e.IsAlive() || e.Effects.Has(effects.Stun) || !r.player.IsAlive() {
		return
	}
	if !dice.Chance(r.roller, chance) {
		return
	}
	r.narrate("%s counters!", e.Name)
	s := r.enemyStrike(e, r.player)
	s.Finishers = append(s.Finishers, r.cfg.Combat.CounterMultiplier)
	r.enemyHits("counter", s)
}

func (r *Resolver) attemptFlee() bool {
	if dice.Chance(r.roller, r.cfg.Combat.FleeChance) {
		r.narrate("You flee from the %s!", r.enemy.Name)
		r.record(r.player.Name, "flee", 0, false, false, "escaped")
		r.clearTransient()
		r.stats.EncountersFled++
		return true
	}
	r.narrate("You fail to escape!")
	r.record(r.player.Name, "flee", 0, false, false, "failed")
	return false
}

// enemyHits resolves an enemy strike against the player. It returns the HP
// the player lost and whether the strike connected.
func (r *Resolver) enemyHits(action string, s Strike) (int, bool) {
	e := r.enemy
	hit := resolveStrike(r.roller, s)
	if hit.Dodged {
		r.stats.Dodges++
		r.narrate("You dodge %s's %s!", e.Name, action)
		r.record(e.Name, action, 0, false, true, "")
		return 0, false
	}
	if hit.Crit {
		r.narrate("%s lands a critical %s!", e.Name, action)
	}
	dealt := r.damagePlayer(hit.Damage)
	r.narrate("%s's %s hits you for %d damage.", e.Name, action, dealt)
	r.record(e.Name, action, dealt, hit.Crit, false, "")
	return dealt, true
}

func (r *Resolver) afflictPlayer(kind effects.Kind, turns int) {
	if err := r.player.Effects.Apply(kind, turns); err != nil {
		r.elog.Warn("effect on player failed", "effect", string(kind), "error", err)
		return
	}
	r.narrate("You are afflicted with %s for %d turns.", kind, turns)
}

func effectName(k effects.Kind) string {
	return names.Title(string(k))
}
