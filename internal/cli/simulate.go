package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dungeoncrawl/internal/achievements"
	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/monster"
	"dungeoncrawl/internal/passives"
	"dungeoncrawl/internal/simulation"
)

func newSimulateCommand(a *app) *cobra.Command {
	var (
		enemyKey string
		runs     int
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many automatic fights in parallel and report the odds",
		Long: `Simulate plays independent encounters against one monster with a fresh
adventurer each time. The adventurer always attacks. Run i uses dice seed
--seed plus i, so the same seed and run count always give the same report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireValidAssets(); err != nil {
				return err
			}
			cfg, err := invoke[*config.Config](a, "config")
			if err != nil {
				return err
			}
			catalog, err := invoke[*items.Catalog](a, "item catalog")
			if err != nil {
				return err
			}
			monsters, err := invoke[*monster.Catalog](a, "monster catalog")
			if err != nil {
				return err
			}
			engine, err := invoke[*passives.Engine](a, "passives")
			if err != nil {
				return err
			}
			manager, err := invoke[*achievements.Manager](a, "achievements")
			if err != nil {
				return err
			}
			if _, err := monsters.GetMonsterByKey(enemyKey); err != nil {
				return err
			}

			factory := func() (*character.Player, *monster.Enemy, error) {
				player, err := character.NewPlayer(cfg, catalog)
				if err != nil {
					return nil, nil, err
				}
				enemy, err := monsters.NewEnemy(enemyKey)
				return player, enemy, err
			}

			report, err := simulation.Run(cmd.Context(), simulation.Options{
				Runs:     runs,
				Workers:  workers,
				Seed:     a.settings.seed,
				Config:   cfg,
				Items:    catalog,
				Recorder: manager,
				Passives: engine,
				Logger:   a.logger,
			}, factory)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range report.Lines() {
				fmt.Fprintln(out, line)
			}
			announce(out, manager.TakeUnlocked())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&enemyKey, "enemy", "e", "goblin", "monster key from monsters.yaml")
	flags.IntVarP(&runs, "runs", "n", 100, "number of encounters")
	flags.IntVarP(&workers, "workers", "w", 0, "parallel workers, 0 for one per CPU")
	return cmd
}
