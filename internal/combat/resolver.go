// Package combat resolves one encounter between the player and an enemy:
// the turn loop, the damage pipeline, enemy mechanics and victory rewards.
package combat

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"dungeoncrawl/internal/abilities"
	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/dice"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/loot"
	"dungeoncrawl/internal/monster"
	"dungeoncrawl/internal/passives"
)

// Resolver runs encounters one at a time. It is not safe for concurrent use;
// give every goroutine its own.
type Resolver struct {
	cfg      *config.Config
	display  Display
	input    Input
	roller   dice.Roller
	logger   *slog.Logger
	items    *items.Catalog
	tracker  *abilities.Tracker
	passives *passives.Engine
	loot     *loot.Resolver
	recorder Recorder

	// encounter state
	player *character.Player
	enemy  *monster.Enemy
	stats  *Stats
	log    []TurnRecord
	turn   int
	phase  Phase
	elog   *slog.Logger

	// set once the enemy has made its attack this turn
	attacked bool
}

type Option func(*Resolver)

func WithDisplay(d Display) Option { return func(r *Resolver) { r.display = d } }
func WithInput(in Input) Option    { return func(r *Resolver) { r.input = in } }
func WithRoller(rl dice.Roller) Option {
	return func(r *Resolver) { r.roller = rl }
}
func WithLogger(l *slog.Logger) Option { return func(r *Resolver) { r.logger = l } }

// WithItemCatalog lets loot drops become real items
func WithItemCatalog(c *items.Catalog) Option { return func(r *Resolver) { r.items = c } }

func WithAbilityCatalog(c *abilities.Catalog) Option {
	return func(r *Resolver) { r.tracker = abilities.NewTracker(c) }
}

func WithPassives(e *passives.Engine) Option { return func(r *Resolver) { r.passives = e } }
func WithRecorder(rec Recorder) Option      { return func(r *Resolver) { r.recorder = rec } }

// NewResolver wires a resolver. Anything not supplied gets a quiet default:
// no display, an exhausted input, a clock-seeded roller.
func NewResolver(cfg *config.Config, opts ...Option) *Resolver {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Resolver{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.display == nil {
		r.display = nopDisplay{}
	}
	if r.input == nil {
		r.input = exhaustedInput{}
	}
	if r.roller == nil {
		r.roller = dice.NewRandom()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.tracker == nil {
		r.tracker = abilities.NewTracker(abilities.DefaultCatalog())
	}
	if r.passives == nil {
		r.passives = passives.NewEngine(r.logger)
	}
	if r.recorder == nil {
		r.recorder = nopRecorder{}
	}
	r.loot = loot.NewResolver(r.roller)
	return r
}

// RunCombat resolves one encounter to completion. stats may be nil. The
// error is only for caller mistakes; win, flee and death are Results.
func (r *Resolver) RunCombat(player *character.Player, enemy *monster.Enemy, stats *Stats) (Result, error) {
	if player == nil || enemy == nil {
		return PlayerDied, ErrNilCombatant
	}
	if !player.IsAlive() {
		return PlayerDied, fmt.Errorf("%s: %w", player.Name, ErrPlayerDead)
	}
	if !enemy.IsAlive() {
		return PlayerDied, fmt.Errorf("%s: %w", enemy.Name, ErrEnemyDead)
	}
	if stats == nil {
		stats = &Stats{}
	}

	r.player, r.enemy, r.stats = player, enemy, stats
	defer func() { r.player, r.enemy, r.stats = nil, nil, nil }()

	result := r.run()
	r.finish(result)
	return result, nil
}

// Log returns a copy of the current encounter's turn log
func (r *Resolver) Log() []TurnRecord {
	out := make([]TurnRecord, len(r.log))
	copy(out, r.log)
	return out
}

// Phase reports where the resolver is; PhaseResolved after RunCombat returns
func (r *Resolver) Phase() Phase {
	return r.phase
}

// Tracker exposes the cooldown tracker, mostly for menus and tests
func (r *Resolver) Tracker() *abilities.Tracker {
	return r.tracker
}

func (r *Resolver) run() Result {
	r.begin()

	if r.enemy.Mechanics.Ambush && r.enemy.IsAlive() {
		r.phase = PhaseEnemyAmbush
		r.narrate("%s ambushes you!", r.enemy.Name)
		r.enemyStandardAttack(false)
		if r.playerDown() {
			return PlayerDied
		}
	}

	for {
		r.turn++
		r.phase = PhaseTurnStart
		if r.turn > r.cfg.Combat.MaxTurns {
			r.narrate("The fight drags on until both sides break away.")
			r.clearTransient()
			r.stats.EncountersFled++
			return Fled
		}

		// Stun is read before the tick so a one-turn stun still costs its turn.
		playerStunned := r.player.Effects.Has(effects.Stun)
		enemyStunned := r.enemy.Effects.Has(effects.Stun)

		r.phase = PhaseEffectTick
		r.tickEffects()

		r.phase = PhaseTurnStartTriggers
		if bonus := r.passives.Fire(passives.OnTurnStart, r.passiveContext(0)); bonus > 0 {
			r.bonusDamage(bonus, "passive")
		}

		r.phase = PhaseDeathCheck
		if r.playerDown() {
			return PlayerDied
		}
		if r.enemyDown() {
			return r.resolveEnemyDeath()
		}

		if _, err := r.player.RestoreMana(r.cfg.Combat.ManaRegenPerTurn); err != nil {
			r.elog.Warn("mana regen failed", "error", err)
		}
		r.tracker.Tick()
		r.checkEnrage()
		r.showStatus()

		if playerStunned {
			r.narrate("You are stunned and cannot act!")
			r.record(r.player.Name, "stunned", 0, false, false, "")
		} else {
			r.phase = PhasePlayerDecision
			if fled := r.playerDecision(); fled {
				return Fled
			}
		}

		if r.enemyDown() {
			return r.resolveEnemyDeath()
		}

		r.phase = PhaseEnemyAction
		if enemyStunned {
			r.narrate("%s is stunned and loses its turn.", r.enemy.Name)
			r.record(r.enemy.Name, "stunned", 0, false, false, "")
		} else {
			r.enemyTurn()
		}
		if r.playerDown() {
			return PlayerDied
		}
	}
}

func (r *Resolver) begin() {
	r.phase = PhaseEncounterStart
	r.log = nil
	r.turn = 0
	r.tracker.Reset()
	r.passives.ResetEncounter(r.player)
	r.enemy.ResetMechanics()
	r.elog = r.logger.With("encounter_id", uuid.NewString(), "enemy", r.enemy.Key)
	r.elog.Info("encounter started", "player_level", r.player.Level, "enemy_hp", r.enemy.HP.Max)

	r.narrate("A %s appears! (%s)", r.enemy.Name, r.enemy.GetDisplayInfo())
	if bonus := r.passives.Fire(passives.OnCombatStart, r.passiveContext(0)); bonus > 0 {
		r.bonusDamage(bonus, "opening")
	}
}

func (r *Resolver) finish(result Result) {
	r.phase = PhaseResolved
	r.stats.TurnsTaken += r.turn
	switch result {
	case PlayerDied:
		r.stats.Deaths++
		r.narrate("You have fallen to the %s.", r.enemy.Name)
	case Fled:
		r.narrate("You escaped from the %s.", r.enemy.Name)
	}
	r.recorder.EncounterFinished(result, r.turn)
	r.elog.Info("encounter resolved", "result", result.String(), "turns", r.turn,
		"player_hp", r.player.HP.Current, "enemy_hp", r.enemy.HP.Current)
}

// playerDown gives would-die passives their chance, then reports death
func (r *Resolver) playerDown() bool {
	if r.player.IsAlive() {
		return false
	}
	r.passives.Fire(passives.OnPlayerWouldDie, r.passiveContext(0))
	return !r.player.IsAlive()
}

// enemyDown reports a confirmed death. A revive-once enemy gets back up the
// first time.
func (r *Resolver) enemyDown() bool {
	e := r.enemy
	if e.IsAlive() {
		return false
	}
	if e.Mechanics.ReviveOnce && !e.State.Revived {
		e.State.Revived = true
		hp := int(float64(e.HP.Max) * e.Mechanics.ReviveFraction)
		e.HP.Set(max(1, hp))
		r.narrate("%s rises again with %d HP!", e.Name, e.HP.Current)
		r.record(e.Name, "revive", 0, false, false, "")
		return false
	}
	return true
}

func (r *Resolver) clearTransient() {
	r.player.ClearTransient()
	r.enemy.ClearTransient()
}

func (r *Resolver) tickEffects() {
	ticks, err := r.player.Effects.TickTurnStart(r.player)
	if err != nil {
		r.elog.Warn("player effect tick failed", "error", err)
	}
	for _, t := range ticks {
		if t.Damage > 0 {
			r.stats.DamageTaken += t.Damage
			r.narrate("%s deals %d damage to you.", effectName(t.Kind), t.Damage)
		}
		if t.Healed > 0 {
			r.narrate("You regenerate %d HP.", t.Healed)
		}
		if t.Expired {
			r.narrate("%s wears off.", effectName(t.Kind))
		}
	}

	ticks, err = r.enemy.Effects.TickTurnStart(r.enemy)
	if err != nil {
		r.elog.Warn("enemy effect tick failed", "error", err)
	}
	for _, t := range ticks {
		if t.Damage > 0 {
			r.stats.DamageDealt += t.Damage
			r.recorder.DamageDealt(t.Damage)
			r.narrate("%s deals %d damage to %s.", effectName(t.Kind), t.Damage, r.enemy.Name)
		}
		if t.Healed > 0 {
			r.narrate("%s regenerates %d HP.", r.enemy.Name, t.Healed)
		}
	}

	if r.player.Shield.Tick() {
		r.narrate("Your arcane shield fades.")
	}
	if gone := r.enemy.State.TickMinions(); gone > 0 {
		r.narrate("%d of %s's minions scatter.", gone, r.enemy.Name)
	}
}

func (r *Resolver) passiveContext(damage int) passives.Context {
	return passives.Context{
		Player: r.player,
		Enemy:  r.enemy,
		Damage: damage,
		Notify: r.display.Narrate,
	}
}

// damageEnemy applies final damage to the enemy and counts it
func (r *Resolver) damageEnemy(amount int) int {
	lost, err := r.enemy.TakeDamage(amount)
	if err != nil {
		r.elog.Warn("enemy damage rejected", "amount", amount, "error", err)
		return 0
	}
	r.stats.DamageDealt += lost
	r.recorder.DamageDealt(lost)
	return lost
}

// bonusDamage applies passive bonus damage that skips the pipeline
func (r *Resolver) bonusDamage(amount int, label string) {
	if !r.enemy.IsAlive() {
		return
	}
	lost := r.damageEnemy(amount)
	r.record(r.player.Name, label, lost, false, false, "")
	r.elog.Debug("bonus damage", "label", label, "amount", lost)
}

// damagePlayer runs the absorption layer, then HP, then take-damage passives
func (r *Resolver) damagePlayer(amount int) int {
	through, absorbed, broke := r.player.Shield.Absorb(amount)
	if absorbed > 0 {
		r.narrate("Your shield absorbs %d damage.", absorbed)
	}
	if broke {
		r.narrate("Your shield shatters!")
	}
	if through <= 0 {
		return 0
	}
	lost, err := r.player.TakeDamage(through)
	if err != nil {
		r.elog.Warn("player damage rejected", "amount", through, "error", err)
		return 0
	}
	r.stats.DamageTaken += lost
	if lost > 0 {
		if bonus := r.passives.Fire(passives.OnPlayerTakeDamage, r.passiveContext(lost)); bonus > 0 {
			r.bonusDamage(bonus, "reflect")
		}
	}
	return lost
}

func (r *Resolver) record(actor, action string, damage int, crit, dodged bool, status string) {
	rec := TurnRecord{Turn: r.turn, Actor: actor, Action: action, Damage: damage, Crit: crit, Dodged: dodged, Status: status}
	r.log = append(r.log, rec)
	r.elog.Debug("action", "turn", r.turn, "actor", actor, "action", action,
		"damage", damage, "crit", crit, "dodged", dodged, "status", status)
}

func (r *Resolver) narrate(format string, args ...any) {
	r.display.Narrate(fmt.Sprintf(format, args...))
}

func (r *Resolver) showStatus() {
	recent := r.log
	if n := r.cfg.Combat.RecentLogSize; len(recent) > n {
		recent = recent[len(recent)-n:]
	}
	snap := Snapshot{
		Turn:          r.turn,
		PlayerName:    r.player.Name,
		PlayerHP:      r.player.HP,
		PlayerMana:    r.player.Mana,
		PlayerShield:  r.player.Shield.Amount,
		PlayerEffects: r.player.Effects.Active(),
		EnemyName:     r.enemy.Name,
		EnemyHP:       r.enemy.HP,
		EnemyEffects:  r.enemy.Effects.Active(),
		Minions:       len(r.enemy.State.Minions),
		Recent:        append([]TurnRecord(nil), recent...),
	}
	r.display.ShowStatus(snap)
}
