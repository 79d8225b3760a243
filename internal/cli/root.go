// Package cli holds the dungeon command line: single fights, gauntlets,
// batch simulations and asset validation.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	envAssets   = "DUNGEON_ASSETS"
	envSeed     = "DUNGEON_SEED"
	envLogLevel = "DUNGEON_LOG_LEVEL"

	defaultAssets = "assets"
	configFile    = "config.yaml"
)

var ErrUnknownLogLevel = errors.New("unknown log level")

// settings are the resolved global flags. A flag given on the command line
// wins over the environment, which wins over the default.
type settings struct {
	assetsDir string
	seed      int64
	logLevel  string
}

// app is shared by every command of one invocation
type app struct {
	fs       afero.Fs
	settings settings
	logger   *slog.Logger
	injector do.Injector
}

// Execute runs the root command against the real filesystem. Ctrl-C
// cancels a running simulation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCommand(afero.NewOsFs()).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree reading assets from fsys
func NewRootCommand(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys}

	root := &cobra.Command{
		Use:   "dungeon",
		Short: "Turn-based dungeon combat",
		Long: `Dungeon resolves turn-based encounters between an adventurer and the
monsters described in the asset files.

Available commands:
  fight       Fight a single monster interactively
  gauntlet    Fight several monsters in a row with the same adventurer
  simulate    Play many automatic fights in parallel and report the odds
  validate    Check every asset file and the references between them`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.settings.assetsDir, "assets", defaultAssets, "directory holding config.yaml and the catalogs (env "+envAssets+")")
	flags.Int64Var(&a.settings.seed, "seed", 0, "dice seed, 0 for a random one (env "+envSeed+")")
	flags.StringVar(&a.settings.logLevel, "log-level", "warn", "debug, info, warn or error (env "+envLogLevel+")")

	root.AddCommand(
		newFightCommand(a),
		newGauntletCommand(a),
		newSimulateCommand(a),
		newValidateCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	if err := a.applyEnv(cmd); err != nil {
		return err
	}

	level, err := parseLevel(a.settings.logLevel)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.injector = newInjector(a)
	return nil
}

func (a *app) applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if v, ok := os.LookupEnv(envAssets); ok && !flags.Changed("assets") {
		a.settings.assetsDir = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && !flags.Changed("log-level") {
		a.settings.logLevel = v
	}
	if v, ok := os.LookupEnv(envSeed); ok && !flags.Changed("seed") {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envSeed, v, err)
		}
		a.settings.seed = seed
	}
	return nil
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownLogLevel)
	}
}
