package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"dungeoncrawl/internal/achievements"
	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/monster"
	"dungeoncrawl/internal/passives"
)

var ErrInvalidAssets = errors.New("asset validation failed")

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every asset file and the references between them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			problems := a.validateAssets()
			if len(problems) == 0 {
				fmt.Fprintf(out, "Assets in %s are valid\n", a.settings.assetsDir)
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(out, "  - %v\n", p)
			}
			return fmt.Errorf("%d problem(s): %w", len(problems), ErrInvalidAssets)
		},
	}
}

// requireValidAssets stops a command before any encounter starts when the
// assets do not hold together
func (a *app) requireValidAssets() error {
	problems := a.validateAssets()
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidAssets, errors.Join(problems...))
}

// validateAssets loads every file it can and cross-checks whatever loaded.
// Problems are collected rather than stopping at the first one.
func (a *app) validateAssets() []error {
	cfg, err := invoke[*config.Config](a, "config")
	if err != nil {
		return []error{err}
	}

	var problems []error
	catalog, err := invoke[*items.Catalog](a, "item catalog")
	if err != nil {
		problems = append(problems, err)
	}
	monsters, err := invoke[*monster.Catalog](a, "monster catalog")
	if err != nil {
		problems = append(problems, err)
	}
	goals, err := invoke[*achievements.Config](a, "achievements")
	if err != nil {
		problems = append(problems, err)
	}
	engine, err := invoke[*passives.Engine](a, "passives")
	if err != nil {
		problems = append(problems, err)
	}

	if catalog != nil {
		for _, key := range cfg.Player.StartingEquipment {
			if !catalog.Has(key) {
				problems = append(problems, fmt.Errorf("starting equipment %q is not in the item catalog", key))
			}
		}
		if engine != nil {
			for _, key := range catalog.Keys() {
				for _, id := range catalog.Items[key].Passives {
					if !engine.Known(id) {
						problems = append(problems, fmt.Errorf("item %s has unknown passive %q", key, id))
					}
				}
			}
		}
	}

	if catalog != nil && monsters != nil {
		refs := monsters.LootItemKeys()
		for _, key := range sortedKeys(refs) {
			for _, item := range refs[key] {
				if !catalog.Has(item) {
					problems = append(problems, fmt.Errorf("monster %s drops unknown item %q", key, item))
				}
			}
		}
	}

	if monsters != nil && goals != nil {
		targets := goals.TargetMonsters()
		for _, id := range sortedKeys(targets) {
			if _, err := monsters.GetMonsterByKey(targets[id]); err != nil {
				problems = append(problems, fmt.Errorf("achievement %s: %w", id, err))
			}
		}
	}
	return problems
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
