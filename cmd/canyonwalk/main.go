// canyonwalk is a tile exploration game for the terminal.
//
// Usage:
//
//	canyonwalk list              - List available maps
//	canyonwalk play <map>        - Explore a map
//	canyonwalk menu              - Pick maps interactively
//	canyonwalk mask <map>        - Print a map's collision mask
//	canyonwalk runs <map>        - Show ranked runs for a map
//	canyonwalk serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set shading seed
//	--db <path>        - Set database path (default: ~/.canyonwalk/runs.db)
//	--config <path>    - Explore config YAML
//	--pace <preset>    - slow, normal or fast
package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/canyonwalk/internal/config"
	"github.com/vovakirdan/canyonwalk/internal/core"
	"github.com/vovakirdan/canyonwalk/internal/games/explore"
	"github.com/vovakirdan/canyonwalk/internal/metrics"
	"github.com/vovakirdan/canyonwalk/internal/telemetry"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagPace   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "canyonwalk",
})

func main() {
	//nolint:errcheck // .env is optional
	godotenv.Load()

	shutdown, err := telemetry.Setup(context.Background())
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		shutdown = func(context.Context) error { return nil }
	}

	execErr := rootCmd.Execute()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := shutdown(ctx); err != nil {
		logger.Warn("telemetry shutdown", "error", err)
	}
	cancel()

	if execErr != nil {
		logger.Error(execErr)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "canyonwalk",
	Short: "Canyonwalk - explore tile maps in your terminal",
	Long: `Canyonwalk is a terminal exploration game. Walk a character tile by
tile across canyons, bridges and ruins until you reach the goal marker.

Available commands:
  list     - Show all available maps
  play     - Explore a specific map
  menu     - Interactive map picker
  mask     - Print the collision mask of a map
  runs     - View ranked runs
  serve    - Start SSH server for remote play

Examples:
  canyonwalk list
  canyonwalk play canyon
  canyonwalk play --map-file ./my-map.yaml
  canyonwalk menu --pace fast
  canyonwalk serve --ssh :2222 --metrics :9090`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Shading seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.canyonwalk/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom explore config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Movement pace: slow, normal, fast")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(maskCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the explore config, applies the pace preset and hands the
// result to sessions created from now on.
func loadConfig() (config.ExploreConfig, error) {
	cfg, err := config.LoadExplore(flagConfig)
	if err != nil {
		return cfg, err
	}
	pace, err := config.ParsePace(flagPace)
	if err != nil {
		return cfg, err
	}
	config.ApplyPace(&cfg, pace)

	explore.SetConfig(cfg)
	explore.SetMetrics(metrics.Default())
	return cfg, nil
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
