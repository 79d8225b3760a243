// Package simulation plays many independent encounters in parallel to
// measure balance. Every run gets its own combatants, resolver and seeded
// roller, so the totals only depend on the base seed and the run count.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/combat"
	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/dice"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/monster"
	"dungeoncrawl/internal/passives"
)

var ErrNoRuns = errors.New("simulation needs at least one run")

// Factory builds a fresh player and enemy for one run
type Factory func() (*character.Player, *monster.Enemy, error)

type Options struct {
	Runs    int
	Workers int
	Seed    int64

	Config   *config.Config
	Items    *items.Catalog
	Recorder combat.Recorder
	// Passives may be shared: an engine is read-only once built
	Passives *passives.Engine
	Logger   *slog.Logger
}

// Report holds the totals over every finished run
type Report struct {
	RunID   string
	Runs    int
	Workers int

	Wins   int64
	Flees  int64
	Deaths int64

	Turns       int64
	DamageDealt int64
	DamageTaken int64
	Gold        int64
}

func (r *Report) WinRate() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Runs)
}

func (r *Report) AverageTurns() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Turns) / float64(r.Runs)
}

// Lines renders the report for the terminal
func (r *Report) Lines() []string {
	return []string{
		fmt.Sprintf("Simulation %s: %d runs on %d workers", r.RunID, r.Runs, r.Workers),
		fmt.Sprintf("Won %d (%.1f%%)  fled %d  died %d", r.Wins, r.WinRate()*100, r.Flees, r.Deaths),
		fmt.Sprintf("Average turns %.2f", r.AverageTurns()),
		fmt.Sprintf("Damage dealt %d  taken %d  gold %d", r.DamageDealt, r.DamageTaken, r.Gold),
	}
}

type totals struct {
	wins, flees, deaths SafeCounter
	turns, dealt, taken SafeCounter
	gold                SafeCounter
}

// Run plays opts.Runs encounters. Run i uses seed opts.Seed+i. The first
// factory or resolver error cancels the remaining runs.
func Run(ctx context.Context, opts Options, factory Factory) (*Report, error) {
	if opts.Runs <= 0 {
		return nil, ErrNoRuns
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	report := &Report{RunID: uuid.NewString(), Runs: opts.Runs}
	logger = logger.With("run_id", report.RunID)

	pool := newRunPool(ctx, opts.Workers)
	report.Workers = pool.workers
	pool.start()

	var t totals
	logger.Info("simulation started", "runs", opts.Runs, "workers", report.Workers, "seed", opts.Seed)
	for i := range opts.Runs {
		seed := opts.Seed + int64(i)
		queued := pool.submit(func(context.Context) error {
			if err := playOne(opts, logger, seed, factory, &t); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			return nil
		})
		if !queued {
			break
		}
	}
	if err := pool.wait(); err != nil {
		return nil, err
	}

	report.Wins = t.wins.Get()
	report.Flees = t.flees.Get()
	report.Deaths = t.deaths.Get()
	report.Turns = t.turns.Get()
	report.DamageDealt = t.dealt.Get()
	report.DamageTaken = t.taken.Get()
	report.Gold = t.gold.Get()
	logger.Info("simulation finished", "wins", report.Wins, "flees", report.Flees, "deaths", report.Deaths)
	return report, nil
}

func playOne(opts Options, logger *slog.Logger, seed int64, factory Factory, t *totals) error {
	player, enemy, err := factory()
	if err != nil {
		return err
	}

	resolverOpts := []combat.Option{
		combat.WithRoller(dice.NewSeeded(seed)),
		combat.WithLogger(logger),
		combat.WithItemCatalog(opts.Items),
	}
	if opts.Passives != nil {
		resolverOpts = append(resolverOpts, combat.WithPassives(opts.Passives))
	}
	if opts.Recorder != nil {
		resolverOpts = append(resolverOpts, combat.WithRecorder(opts.Recorder))
	}
	resolver := combat.NewResolver(opts.Config, resolverOpts...)

	var stats combat.Stats
	result, err := resolver.RunCombat(player, enemy, &stats)
	if err != nil {
		return err
	}

	switch result {
	case combat.Won:
		t.wins.Increment()
	case combat.Fled:
		t.flees.Increment()
	case combat.PlayerDied:
		t.deaths.Increment()
	}
	t.turns.Add(int64(stats.TurnsTaken))
	t.dealt.Add(int64(stats.DamageDealt))
	t.taken.Add(int64(stats.DamageTaken))
	t.gold.Add(int64(stats.GoldCollected))
	return nil
}
