package combat

import (
	"errors"
	"fmt"

	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/vitals"
)

// Caller-contract violations. Gameplay outcomes are never errors.
var (
	ErrNilCombatant = errors.New("combatant is nil")
	ErrPlayerDead   = errors.New("player is already dead")
	ErrEnemyDead    = errors.New("enemy is already dead")
)

// DefaultInput is what an exhausted Input returns. It attacks from the main
// menu, backs out of the ability menu and picks attack on level-up.
const DefaultInput = "a"

type Result int

const (
	Won Result = iota
	Fled
	PlayerDied
)

func (r Result) String() string {
	switch r {
	case Won:
		return "won"
	case Fled:
		return "fled"
	case PlayerDied:
		return "player_died"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Phase is where the resolver currently is inside an encounter
type Phase int

const (
	PhaseEncounterStart Phase = iota
	PhaseTurnStart
	PhaseEnemyAmbush
	PhaseEffectTick
	PhaseTurnStartTriggers
	PhaseDeathCheck
	PhasePlayerDecision
	PhasePlayerAction
	PhaseEnemyAction
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseEncounterStart:
		return "EncounterStart"
	case PhaseTurnStart:
		return "TurnStart"
	case PhaseEnemyAmbush:
		return "EnemyAmbushStrike"
	case PhaseEffectTick:
		return "EffectTick"
	case PhaseTurnStartTriggers:
		return "TurnStartTriggers"
	case PhaseDeathCheck:
		return "DeathCheck"
	case PhasePlayerDecision:
		return "PlayerDecision"
	case PhasePlayerAction:
		return "PlayerAction"
	case PhaseEnemyAction:
		return "EnemyAction"
	case PhaseResolved:
		return "Resolved"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// TurnRecord is one logged action. Records are never modified after append.
type TurnRecord struct {
	Turn   int
	Actor  string
	Action string
	Damage int
	Crit   bool
	Dodged bool
	Status string
}

func (t TurnRecord) String() string {
	s := fmt.Sprintf("T%d %s: %s", t.Turn, t.Actor, t.Action)
	switch {
	case t.Dodged:
		s += " (dodged)"
	case t.Damage > 0:
		s += fmt.Sprintf(" for %d", t.Damage)
	}
	if t.Crit {
		s += " CRIT"
	}
	if t.Status != "" {
		s += " [" + t.Status + "]"
	}
	return s
}

// Snapshot is the state handed to Display.ShowStatus
type Snapshot struct {
	Turn int

	PlayerName    string
	PlayerHP      vitals.Pool
	PlayerMana    vitals.Pool
	PlayerShield  int
	PlayerEffects []effects.Active

	EnemyName    string
	EnemyHP      vitals.Pool
	EnemyEffects []effects.Active
	Minions      int

	Recent []TurnRecord
}

// Display receives narration. Nothing it does feeds back into combat.
type Display interface {
	Narrate(msg string)
	ShowStatus(s Snapshot)
	ShowMenu(title string, options []string)
	ShowError(msg string)
}

// Input supplies the next line of player input, or DefaultInput when none
// remains.
type Input interface {
	NextLine() string
}

// Recorder is the cross-run stats sink. Persistence stays on the other side.
type Recorder interface {
	EnemyDefeated(enemyKey string, boss bool)
	DamageDealt(amount int)
	EncounterFinished(result Result, turns int)
}

type nopDisplay struct{}

func (nopDisplay) Narrate(string) {}
func (nopDisplay) ShowStatus(Snapshot) {}
func (nopDisplay) ShowMenu(string, []string) {}
func (nopDisplay) ShowError(string) {}

type exhaustedInput struct{}

func (exhaustedInput) NextLine() string { return DefaultInput }

type nopRecorder struct{}

func (nopRecorder) EnemyDefeated(string, bool) {}
func (nopRecorder) DamageDealt(int) {}
func (nopRecorder) EncounterFinished(Result, int) {}
