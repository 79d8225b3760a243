package combat

import (
	"errors"
	"fmt"

	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/passives"
)

var traitMenu = []string{"[h]p", "[a]ttack", "[d]efense"}

// resolveEnemyDeath runs on-death mechanics, then rewards the player if they
// survived them.
func (r *Resolver) resolveEnemyDeath() Result {
	e := r.enemy
	m := e.Mechanics
	r.narrate("%s is defeated!", e.Name)
	r.record(e.Name, "defeated", 0, false, false, "")

	if m.DeathBurst > 0 {
		dealt := r.damagePlayer(m.DeathBurst)
		r.narrate("%s bursts apart, dealing %d damage!", e.Name, dealt)
		r.record(e.Name, "death burst", dealt, false, false, "")
	}
	if m.DeathCurse != "" {
		turns := m.DeathCurseDuration
		if turns <= 0 {
			turns = defaultEffectTurns
		}
		r.narrate("%s curses you with its dying breath.", e.Name)
		r.afflictPlayer(effects.Kind(m.DeathCurse), turns)
	}
	if r.playerDown() {
		return PlayerDied
	}

	r.victory()
	return Won
}

func (r *Resolver) victory() {
	p, e := r.player, r.enemy
	r.passives.Fire(passives.OnEnemyKilled, r.passiveContext(0))
	r.recorder.EnemyDefeated(e.Key, e.Boss)
	r.stats.EnemiesDefeated++

	out := r.loot.Roll(e.Loot)
	if out.Gold > 0 {
		if err := p.AddGold(out.Gold); err != nil {
			r.elog.Warn("gold award failed", "error", err)
		} else {
			r.stats.GoldCollected += out.Gold
			r.narrate("You collect %d gold.", out.Gold)
		}
	}
	if out.Dropped {
		r.awardItem(out.Item)
	}

	if e.Experience > 0 {
		if err := p.GainExperience(e.Experience); err != nil {
			r.elog.Warn("experience award failed", "error", err)
		} else {
			r.stats.ExperienceGained += e.Experience
			r.narrate("You gain %d experience.", e.Experience)
		}
	}
	r.levelUps()
}

func (r *Resolver) awardItem(key string) {
	item := items.Item{Key: key, Name: key}
	if r.items != nil {
		created, err := r.items.Create(key)
		if err != nil {
			r.elog.Warn("loot item missing from catalog", "item", key, "error", err)
		} else {
			item = created
		}
	}

	inv := r.player.Inventory
	if inv == nil {
		r.narrate("You have nowhere to carry the %s and leave it behind.", item.Name)
		r.stats.ItemsDiscarded++
		return
	}
	if err := inv.Add(item); err != nil {
		if !errors.Is(err, items.ErrInventoryFull) {
			r.elog.Warn("inventory add failed", "item", key, "error", err)
		}
		r.narrate("Your pack is full. The %s is left behind.", item.Name)
		r.stats.ItemsDiscarded++
		return
	}
	r.stats.ItemsLooted++
	r.narrate("You found %s!", item.Name)
}

func (r *Resolver) levelUps() {
	p := r.player
	prog := r.cfg.Progression
	for p.CanLevelUp(prog) {
		if err := p.LevelUp(prog); err != nil {
			r.elog.Warn("level up failed", "error", err)
			return
		}
		r.stats.LevelsGained++
		r.narrate("Level up! You are now level %d.", p.Level)
		r.elog.Info("level up", "level", p.Level)
		if r.cfg.IsTraitLevel(p.Level) {
			r.chooseTrait()
		}
	}
}

// chooseTrait blocks until the player names a valid trait
func (r *Resolver) chooseTrait() {
	for {
		r.display.ShowMenu(fmt.Sprintf("Level %d: choose a trait", r.player.Level), traitMenu)
		choice := readChoice(r.input)
		t, ok := character.ParseTrait(choice)
		if !ok {
			r.display.ShowError(fmt.Sprintf("Unknown trait %q. Choose h, a or d.", choice))
			continue
		}
		if err := r.player.ApplyTrait(t, r.cfg.Progression); err != nil {
			r.elog.Warn("trait failed", "trait", t.String(), "error", err)
		}
		r.narrate("You feel your %s improve.", t)
		return
	}
}
