package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadExplore loads the exploration configuration.
// Search order: customPath -> ~/.canyonwalk/configs/explore.yaml ->
// ./configs/explore.yaml -> embedded default -> hardcoded default.
// Files may be partial; missing fields keep their defaults.
func LoadExplore(customPath string) (ExploreConfig, error) {
	cfg := DefaultExploreConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.normalize()
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, p := range []string{userConfigPath("explore.yaml"), filepath.Join("configs", "explore.yaml")} {
		if p == "" {
			continue
		}
		if loaded, ok := tryLoad(p); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	embedded := DefaultExploreConfig()
	if err := yaml.Unmarshal(defaultExploreYAML, &embedded); err != nil {
		return DefaultExploreConfig(), nil // Fallback to hardcoded if embed fails
	}
	embedded.normalize()
	return embedded, nil
}

// tryLoad reads an optional config file. Missing or malformed files are skipped.
func tryLoad(path string) (ExploreConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExploreConfig{}, false
	}
	cfg := DefaultExploreConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ExploreConfig{}, false
	}
	cfg.normalize()
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".canyonwalk", "configs", filename)
}
