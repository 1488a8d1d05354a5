package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"baackground/internal/app"
	"baackground/internal/content"
	"baackground/internal/devtools"
	"baackground/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flagCfg := app.DefaultConfig()
	envFile := ".env"

	cmd := &cobra.Command{
		Use:          "baackground",
		Short:        "Learn English prepositions in the terminal with Aayu the sheep",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), flagCfg, envFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&envFile, "env-file", envFile, "dotenv file read before the environment (missing file is fine)")
	f.StringVar(&flagCfg.LogPath, "log", flagCfg.LogPath, "write JSON event log to this file")
	f.BoolVar(&flagCfg.Debug, "debug", flagCfg.Debug, "verbose diagnostics")
	f.BoolVar(&flagCfg.ASCIIOnly, "ascii", flagCfg.ASCIIOnly, "ASCII-only rendering")
	f.StringVar(&flagCfg.DemoScenario, "demo", flagCfg.DemoScenario, "start in a demo scenario (see the scenarios command)")
	f.Int64Var(&flagCfg.Seed, "seed", flagCfg.Seed, "fixed random seed for question sampling and tips")
	f.IntVar(&flagCfg.Quiz.DefaultCount, "count", flagCfg.Quiz.DefaultCount, "default quiz length (5, 10, 20, 30, 40 or 50)")
	f.StringVar(&flagCfg.UI.StyleVariant, "style", flagCfg.UI.StyleVariant, "meadow|dusk|chalkboard")
	f.StringVar(&flagCfg.UI.MotionLevel, "motion", flagCfg.UI.MotionLevel, "off|reduced|full")
	f.StringVar(&flagCfg.UI.MouseScope, "mouse", flagCfg.UI.MouseScope, "off|scoped|full")
	f.BoolVar(&flagCfg.Dev, "dev", flagCfg.Dev, "serve the demo control endpoints")
	f.StringVar(&flagCfg.DevHTTP, "dev-http", flagCfg.DevHTTP, "listen address for --dev")

	cmd.AddCommand(newScenariosCmd())
	return cmd
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the demo scenarios accepted by --demo",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range devtools.Scenarios {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// resolveConfig layers defaults, the dotenv file, BAACK_ environment keys and
// finally the flags the user actually set.
func resolveConfig(flags *pflag.FlagSet, fromFlags app.Config, envFile string) (app.Config, error) {
	cfg := app.DefaultConfig()
	if err := app.LoadEnv(&cfg, envFile); err != nil {
		return cfg, err
	}
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "log":
			cfg.LogPath = fromFlags.LogPath
		case "debug":
			cfg.Debug = fromFlags.Debug
		case "ascii":
			cfg.ASCIIOnly = fromFlags.ASCIIOnly
		case "demo":
			cfg.DemoScenario = fromFlags.DemoScenario
		case "seed":
			cfg.Seed = fromFlags.Seed
		case "count":
			cfg.Quiz.DefaultCount = fromFlags.Quiz.DefaultCount
		case "style":
			cfg.UI.StyleVariant = fromFlags.UI.StyleVariant
		case "motion":
			cfg.UI.MotionLevel = fromFlags.UI.MotionLevel
		case "mouse":
			cfg.UI.MouseScope = fromFlags.UI.MouseScope
		case "dev":
			cfg.Dev = fromFlags.Dev
		case "dev-http":
			cfg.DevHTTP = fromFlags.DevHTTP
		}
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg app.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := telemetry.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return err
	}

	catalog, err := content.Default()
	if err != nil {
		logger.Error("content.load_failed", zap.Error(err))
		_ = logger.Sync()
		return fmt.Errorf("load study guide: %w", err)
	}

	a, err := app.New(cfg, catalog, logger)
	if err != nil {
		_ = logger.Sync()
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}
