// Package passives evaluates equipped-item passive effects at fixed trigger
// points of an encounter.
package passives

import (
	"fmt"
	"log/slog"
	"sort"

	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/monster"
)

type Trigger int

const (
	OnPlayerHit Trigger = iota
	OnEnemyKilled
	OnPlayerTakeDamage
	OnTurnStart
	OnCombatStart
	OnPlayerWouldDie
)

func (t Trigger) String() string {
	switch t {
	case OnPlayerHit:
		return "on_player_hit"
	case OnEnemyKilled:
		return "on_enemy_killed"
	case OnPlayerTakeDamage:
		return "on_player_take_damage"
	case OnTurnStart:
		return "on_turn_start"
	case OnCombatStart:
		return "on_combat_start"
	case OnPlayerWouldDie:
		return "on_player_would_die"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// Context is what a handler can see and change when it fires
type Context struct {
	Player *character.Player
	Enemy  *monster.Enemy
	// Damage is the amount dealt (on hit) or taken (on take damage)
	Damage int
	// Notify receives player-facing narration; may be nil
	Notify func(string)
}

func (c Context) say(format string, args ...any) {
	if c.Notify != nil {
		c.Notify(fmt.Sprintf(format, args...))
	}
}

// Handler runs one passive for one item. It returns bonus damage to deal to
// the enemy.
type Handler func(ctx Context, source items.Item) (int, error)

type Engine struct {
	handlers map[string]map[Trigger]Handler
	logger   *slog.Logger
}

// NewEngine returns an engine with every built-in passive registered
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{handlers: make(map[string]map[Trigger]Handler), logger: logger}
	registerBuiltins(e)
	return e
}

// Register binds a handler to a passive id and trigger
func (e *Engine) Register(id string, trigger Trigger, h Handler) {
	if e.handlers[id] == nil {
		e.handlers[id] = make(map[Trigger]Handler)
	}
	e.handlers[id][trigger] = h
}

// Known reports whether any handler exists for id
func (e *Engine) Known(id string) bool {
	_, ok := e.handlers[id]
	return ok
}

// IDs returns every registered passive id, sorted
func (e *Engine) IDs() []string {
	ids := make([]string, 0, len(e.handlers))
	for id := range e.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Fire walks the player's equipment in slot order and runs every declared
// passive that has a handler for trigger. The summed bonus damage is
// returned for the caller to apply to the enemy.
func (e *Engine) Fire(trigger Trigger, ctx Context) int {
	if ctx.Player == nil {
		return 0
	}
	total := 0
	for _, item := range ctx.Player.Equipment.Ordered() {
		for _, id := range item.Passives {
			h, ok := e.handlers[id][trigger]
			if !ok {
				continue
			}
			bonus, err := h(ctx, item)
			if err != nil {
				e.logger.Warn("passive failed", "passive", id, "trigger", trigger.String(), "item", item.Name, "error", err)
				continue
			}
			if bonus > 0 {
				total += bonus
			}
		}
	}
	return total
}

// ResetEncounter clears once-per-encounter state on the player
func (e *Engine) ResetEncounter(p *character.Player) {
	p.ResetEncounterFlags()
}
