// Package config provides YAML-based configuration loading and pace presets
// for the exploration client.
package config

import (
	"time"

	"github.com/vovakirdan/canyonwalk/internal/terrain"
)

// ExploreConfig contains all tunables for an exploration session.
type ExploreConfig struct {
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Input    InputConfig    `yaml:"input"`
}

// MovementConfig defines step cadence.
type MovementConfig struct {
	StepMS      int     `yaml:"step_ms"`     // Time to glide one tile
	CooldownMS  int     `yaml:"cooldown_ms"` // Held-repeat interval, measured from step start
	WallPenalty bool    `yaml:"wall_penalty"`
	ActorSize   float64 `yaml:"actor_size"` // Fraction of a tile, 0..1
}

// CameraConfig defines how world pixels map to terminal cells.
type CameraConfig struct {
	TileColumns int `yaml:"tile_columns"` // Terminal columns per tile
	TileRows    int `yaml:"tile_rows"`    // Terminal rows per tile
	HUDRows     int `yaml:"hud_rows"`     // Rows reserved for the status line
}

// TerrainConfig tunes the rasterizer.
type TerrainConfig struct {
	SamplesPerTile   int     `yaml:"samples_per_tile"`
	SafetyMargin     float64 `yaml:"safety_margin"`
	BridgeTolerance  float64 `yaml:"bridge_tolerance"`
	DoorwayTolerance float64 `yaml:"doorway_tolerance"`
}

// InputConfig controls held-key synthesis for terminals, which report
// key presses and auto-repeats but never key releases.
type InputConfig struct {
	ReleaseInitialMS int `yaml:"release_initial_ms"` // Hold window before the first auto-repeat
	ReleaseRepeatMS  int `yaml:"release_repeat_ms"`  // Hold window once auto-repeat is flowing
}

// StepDuration returns the movement step duration.
func (m MovementConfig) StepDuration() time.Duration {
	return time.Duration(m.StepMS) * time.Millisecond
}

// Cooldown returns the held-repeat cooldown.
func (m MovementConfig) Cooldown() time.Duration {
	return time.Duration(m.CooldownMS) * time.Millisecond
}

// Options converts to rasterizer options.
func (t TerrainConfig) Options() terrain.Options {
	return terrain.Options{
		SamplesPerTile:   t.SamplesPerTile,
		SafetyMargin:     t.SafetyMargin,
		BridgeTolerance:  t.BridgeTolerance,
		DoorwayTolerance: t.DoorwayTolerance,
	}
}

// ReleaseInitial returns the initial hold window.
func (i InputConfig) ReleaseInitial() time.Duration {
	return time.Duration(i.ReleaseInitialMS) * time.Millisecond
}

// ReleaseRepeat returns the hold window after auto-repeat starts.
func (i InputConfig) ReleaseRepeat() time.Duration {
	return time.Duration(i.ReleaseRepeatMS) * time.Millisecond
}

// normalize replaces non-positive values with defaults so partial files work.
func (c *ExploreConfig) normalize() {
	d := DefaultExploreConfig()
	if c.Movement.StepMS <= 0 {
		c.Movement.StepMS = d.Movement.StepMS
	}
	if c.Movement.CooldownMS <= 0 {
		c.Movement.CooldownMS = d.Movement.CooldownMS
	}
	if c.Movement.ActorSize <= 0 || c.Movement.ActorSize > 1 {
		c.Movement.ActorSize = d.Movement.ActorSize
	}
	if c.Camera.TileColumns <= 0 {
		c.Camera.TileColumns = d.Camera.TileColumns
	}
	if c.Camera.TileRows <= 0 {
		c.Camera.TileRows = d.Camera.TileRows
	}
	if c.Camera.HUDRows < 0 {
		c.Camera.HUDRows = d.Camera.HUDRows
	}
	if c.Input.ReleaseInitialMS <= 0 {
		c.Input.ReleaseInitialMS = d.Input.ReleaseInitialMS
	}
	if c.Input.ReleaseRepeatMS <= 0 {
		c.Input.ReleaseRepeatMS = d.Input.ReleaseRepeatMS
	}
	if c.Terrain.SamplesPerTile <= 0 {
		c.Terrain.SamplesPerTile = d.Terrain.SamplesPerTile
	}
	// A margin or tolerance of 0 is a real setting; only negatives are unset.
	if c.Terrain.SafetyMargin < 0 {
		c.Terrain.SafetyMargin = d.Terrain.SafetyMargin
	}
	if c.Terrain.BridgeTolerance < 0 {
		c.Terrain.BridgeTolerance = d.Terrain.BridgeTolerance
	}
	if c.Terrain.DoorwayTolerance < 0 {
		c.Terrain.DoorwayTolerance = d.Terrain.DoorwayTolerance
	}
}
