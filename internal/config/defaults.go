package config

import (
	_ "embed"
)

//go:embed defaults/explore.yaml
var defaultExploreYAML []byte

// DefaultExploreConfig returns the hardcoded exploration configuration.
// It matches defaults/explore.yaml.
func DefaultExploreConfig() ExploreConfig {
	return ExploreConfig{
		Movement: MovementConfig{
			StepMS:      140,
			CooldownMS:  160,
			WallPenalty: true,
			ActorSize:   0.75,
		},
		Camera: CameraConfig{
			TileColumns: 2,
			TileRows:    1,
			HUDRows:     1,
		},
		Terrain: TerrainConfig{
			SamplesPerTile:   4,
			SafetyMargin:     0.35,
			BridgeTolerance:  0.5,
			DoorwayTolerance: 0.5,
		},
		Input: InputConfig{
			ReleaseInitialMS: 550,
			ReleaseRepeatMS:  120,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "explore":
		return defaultExploreYAML
	default:
		return nil
	}
}
