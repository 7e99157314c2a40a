package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/canyonwalk/internal/platform/tui"
	"github.com/vovakirdan/canyonwalk/internal/registry"
	"github.com/vovakirdan/canyonwalk/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start canyonwalk with a map picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a map.
Tab opens the run board. After a map you return to the menu.

Examples:
  canyonwalk menu
  canyonwalk menu --fps 30
  canyonwalk menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	explore, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsRuns {
			goBack, boardErr := tui.RunRunBoard(store, cfg.ScreenW, cfg.ScreenH)
			if boardErr != nil {
				logger.Error("run board", "error", boardErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(result.MapID)
		if err != nil {
			logger.Error("creating session", "map", result.MapID, "error", err)
			continue
		}

		cfg.Seed = time.Now().UnixNano()
		if err := tui.Run(game, store, cfg, explore.Input); err != nil {
			logger.Error("running session", "map", result.MapID, "error", err)
		}
	}
}
