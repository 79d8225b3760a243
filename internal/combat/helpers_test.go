package combat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/dice"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/monster"
	"dungeoncrawl/internal/vitals"
)

type fakeDisplay struct {
	narration []string
	errors    []string
	menus     []string
	statuses  []Snapshot
}

func (d *fakeDisplay) Narrate(msg string) { d.narration = append(d.narration, msg) }
func (d *fakeDisplay) ShowStatus(s Snapshot) { d.statuses = append(d.statuses, s) }
func (d *fakeDisplay) ShowError(msg string) { d.errors = append(d.errors, msg) }
func (d *fakeDisplay) ShowMenu(title string, _ []string) {
	d.menus = append(d.menus, title)
}

func (d *fakeDisplay) said(fragment string) bool {
	for _, line := range d.narration {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

type scriptedInput struct {
	lines []string
}

func (in *scriptedInput) NextLine() string {
	if len(in.lines) == 0 {
		return DefaultInput
	}
	line := in.lines[0]
	in.lines = in.lines[1:]
	return line
}

type fakeRecorder struct {
	defeated []string
	damage   int
	results  []Result
}

func (f *fakeRecorder) EnemyDefeated(key string, _ bool) { f.defeated = append(f.defeated, key) }
func (f *fakeRecorder) DamageDealt(n int) { f.damage += n }
func (f *fakeRecorder) EncounterFinished(r Result, _ int) {
	f.results = append(f.results, r)
}

func testPlayer(t *testing.T, attack, defense, hp int) *character.Player {
	t.Helper()
	inv, err := items.NewInventory(5)
	require.NoError(t, err)
	return &character.Player{
		Name:      "Hero",
		Level:     1,
		HP:        vitals.NewPool(hp),
		Mana:      vitals.NewPool(40),
		Attack:    attack,
		Defense:   defense,
		Equipment: items.Equipment{},
		Inventory: inv,
	}
}

func testEnemy(hp, attack, defense int) *monster.Enemy {
	return &monster.Enemy{
		Key:     "dummy",
		Name:    "Dummy",
		Level:   1,
		HP:      vitals.NewPool(hp),
		Attack:  attack,
		Defense: defense,
	}
}

// newTestResolver wires a resolver to a scripted roller and input. With no
// floats scripted every draw is 0.99: nothing dodges, crits or procs below
// certainty.
func newTestResolver(cfg *config.Config, roller dice.Roller, lines ...string) (*Resolver, *fakeDisplay) {
	if cfg == nil {
		cfg = config.Default()
	}
	if roller == nil {
		roller = dice.NewScript()
	}
	d := &fakeDisplay{}
	r := NewResolver(cfg,
		WithDisplay(d),
		WithInput(&scriptedInput{lines: lines}),
		WithRoller(roller),
	)
	return r, d
}

func shortFight(turns int) *config.Config {
	cfg := config.Default()
	cfg.Combat.MaxTurns = turns
	return cfg
}

func actionsBy(log []TurnRecord, actor string) []string {
	var out []string
	for _, rec := range log {
		if rec.Actor == actor {
			out = append(out, rec.Action)
		}
	}
	return out
}

func hasRecord(log []TurnRecord, turn int, actor, action string) bool {
	for _, rec := range log {
		if rec.Turn == turn && rec.Actor == actor && rec.Action == action {
			return true
		}
	}
	return false
}
