package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dungeoncrawl/internal/achievements"
	"dungeoncrawl/internal/character"
	"dungeoncrawl/internal/combat"
	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/console"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/monster"
	"dungeoncrawl/internal/names"
)

func newFightCommand(a *app) *cobra.Command {
	var enemyKey string

	cmd := &cobra.Command{
		Use:   "fight",
		Short: "Fight a single monster interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGauntlet(cmd, []string{enemyKey})
		},
	}
	cmd.Flags().StringVarP(&enemyKey, "enemy", "e", "goblin", "monster key from monsters.yaml")
	return cmd
}

func newGauntletCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gauntlet <monster>...",
		Short: "Fight several monsters in a row with the same adventurer",
		Long: `Gauntlet runs one encounter per monster key, in order. HP, mana, gold,
experience and the run statistics carry over between fights. The run ends
early if the adventurer dies.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGauntlet(cmd, args)
		},
	}
}

func (a *app) runGauntlet(cmd *cobra.Command, keys []string) error {
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
	manager, err := invoke[*achievements.Manager](a, "achievements")
	if err != nil {
		return err
	}
	newResolver, err := invoke[resolverFactory](a, "combat resolver")
	if err != nil {
		return err
	}

	// Unknown keys fail before the first fight starts
	enemies := make([]*monster.Enemy, 0, len(keys))
	for _, key := range keys {
		enemy, err := monsters.NewEnemy(key)
		if err != nil {
			return err
		}
		enemies = append(enemies, enemy)
	}

	player, err := character.NewPlayer(cfg, catalog)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	resolver := newResolver(console.NewDisplay(out), console.NewInput(cmd.InOrStdin(), out))
	stats := &combat.Stats{}

	for n, enemy := range enemies {
		fmt.Fprintf(out, "\n*** Encounter %d/%d: %s ***\n", n+1, len(enemies), enemy.Name)
		result, err := resolver.RunCombat(player, enemy, stats)
		if err != nil {
			return err
		}
		manager.RecordGold(stats.GoldCollected)

		fmt.Fprintf(out, "Result: %s\n", names.Title(result.String()))
		announce(out, manager.TakeUnlocked())
		if result == combat.PlayerDied {
			break
		}
	}

	fmt.Fprintf(out, "\n%s\n", player.GetDisplayInfo())
	for _, line := range stats.Lines() {
		fmt.Fprintln(out, line)
	}
	return nil
}

func announce(w io.Writer, unlocked []*achievements.Achievement) {
	for _, a := range unlocked {
		fmt.Fprintf(w, "Achievement unlocked: %s (%s)\n", a.Definition.Name, a.GetProgressString())
	}
}
