package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/canyonwalk/internal/games/explore"
	"github.com/vovakirdan/canyonwalk/internal/maps"
	"github.com/vovakirdan/canyonwalk/internal/platform/tui"
	"github.com/vovakirdan/canyonwalk/internal/registry"
	"github.com/vovakirdan/canyonwalk/internal/storage"
)

var flagMapFile string

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Explore a map",
	Long: `Start exploring the specified map.

Controls:
  Arrows/WASD/hjkl - Step one tile (hold to keep walking)
  M                - Toggle collision mask overlay
  P/Space          - Pause
  R                - Restart
  B/Esc            - Back (when paused or finished)
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot

Pace options:
  slow   - Longer steps and cooldown
  normal - Config values as loaded
  fast   - Quick steps for experienced walkers

Examples:
  canyonwalk play canyon
  canyonwalk play gorge --pace fast
  canyonwalk play --map-file ./maps/plaza.yaml
  canyonwalk play ruins --config ./explore.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMapFile, "map-file", "", "Path to a map YAML file to play")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var mapID string
	switch {
	case flagMapFile != "":
		m, loadErr := maps.LoadPath(flagMapFile)
		if loadErr != nil {
			return loadErr
		}
		if !registry.Exists(m.ID) {
			explore.RegisterMap(m)
		}
		mapID = m.ID
	case len(args) == 1:
		mapID = args[0]
	default:
		return errors.New("play needs a map id or --map-file")
	}

	if !registry.Exists(mapID) {
		return fmt.Errorf("unknown map %q, run 'canyonwalk list' to see available maps", mapID)
	}

	game, err := registry.Create(mapID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage, exploring still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig(), cfg.Input)

	if store != nil {
		store.Close()
	}
	return runErr
}
