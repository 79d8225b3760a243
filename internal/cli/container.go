package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/samber/do/v2"

	"dungeoncrawl/internal/achievements"
	"dungeoncrawl/internal/combat"
	"dungeoncrawl/internal/config"
	"dungeoncrawl/internal/dice"
	"dungeoncrawl/internal/items"
	"dungeoncrawl/internal/monster"
	"dungeoncrawl/internal/passives"
)

// resolverFactory builds a resolver wired to the shared services and the
// given terminal
type resolverFactory func(display combat.Display, input combat.Input) *combat.Resolver

// newInjector registers every service lazily, so a command only loads the
// asset files it actually touches
func newInjector(a *app) do.Injector {
	i := do.New()

	do.ProvideValue(i, a.logger)

	do.Provide(i, func(i do.Injector) (*config.Config, error) {
		return config.LoadConfig(a.fs, a.assetPath(configFile))
	})

	do.Provide(i, func(i do.Injector) (*items.Catalog, error) {
		cfg, err := do.Invoke[*config.Config](i)
		if err != nil {
			return nil, err
		}
		return items.LoadCatalog(a.fs, a.assetPath(cfg.Assets.Items))
	})

	do.Provide(i, func(i do.Injector) (*monster.Catalog, error) {
		cfg, err := do.Invoke[*config.Config](i)
		if err != nil {
			return nil, err
		}
		return monster.LoadCatalog(a.fs, a.assetPath(cfg.Assets.Monsters))
	})

	do.Provide(i, func(i do.Injector) (*achievements.Config, error) {
		cfg, err := do.Invoke[*config.Config](i)
		if err != nil {
			return nil, err
		}
		if cfg.Assets.Achievements == "" {
			return &achievements.Config{}, nil
		}
		return achievements.LoadConfig(a.fs, a.assetPath(cfg.Assets.Achievements))
	})

	do.Provide(i, func(i do.Injector) (*achievements.Manager, error) {
		cfg, err := do.Invoke[*achievements.Config](i)
		if err != nil {
			return nil, err
		}
		return achievements.NewManager(cfg), nil
	})

	do.Provide(i, func(i do.Injector) (*passives.Engine, error) {
		return passives.NewEngine(do.MustInvoke[*slog.Logger](i)), nil
	})

	do.Provide(i, func(i do.Injector) (dice.Roller, error) {
		if a.settings.seed == 0 {
			return dice.NewRandom(), nil
		}
		return dice.NewSeeded(a.settings.seed), nil
	})

	do.Provide(i, func(i do.Injector) (resolverFactory, error) {
		cfg, err := do.Invoke[*config.Config](i)
		if err != nil {
			return nil, err
		}
		catalog, err := do.Invoke[*items.Catalog](i)
		if err != nil {
			return nil, err
		}
		engine := do.MustInvoke[*passives.Engine](i)
		manager, err := do.Invoke[*achievements.Manager](i)
		if err != nil {
			return nil, err
		}
		roller := do.MustInvoke[dice.Roller](i)
		logger := do.MustInvoke[*slog.Logger](i)

		return func(display combat.Display, input combat.Input) *combat.Resolver {
			return combat.NewResolver(cfg,
				combat.WithDisplay(display),
				combat.WithInput(input),
				combat.WithRoller(roller),
				combat.WithLogger(logger),
				combat.WithItemCatalog(catalog),
				combat.WithPassives(engine),
				combat.WithRecorder(manager),
			)
		}, nil
	})

	return i
}

func (a *app) assetPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.settings.assetsDir, name)
}

// invoke wraps container errors with the service that failed
func invoke[T any](a *app, what string) (T, error) {
	v, err := do.Invoke[T](a.injector)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load %s: %w", what, err)
	}
	return v, nil
}
