package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/canyonwalk/internal/maps"
)

var maskCmd = &cobra.Command{
	Use:   "mask <map>",
	Short: "Print the collision mask of a map",
	Long: `Rasterize a map with the current terrain settings and print its
collision mask, one character per tile.

The argument is a builtin map id or a path to a map YAML file.

Examples:
  canyonwalk mask canyon
  canyonwalk mask ./maps/plaza.yaml --config ./explore.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runMask,
}

func runMask(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var m maps.Map
	if ext := strings.ToLower(args[0]); strings.HasSuffix(ext, ".yaml") || strings.HasSuffix(ext, ".yml") {
		m, err = maps.LoadPath(args[0])
	} else {
		m, err = maps.Builtin().LoadByID(args[0])
	}
	if err != nil {
		return err
	}

	world, err := m.BuildWorld(cfg.Terrain.Options())
	if err != nil {
		return err
	}
	mask := world.Mask()

	fmt.Printf("%s (%dx%d, %d blocked)\n", m.Name, mask.Width(), mask.Height(), mask.Count())
	fmt.Println(mask.String())
	return nil
}
