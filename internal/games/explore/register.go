package explore

import (
	"sync"

	"github.com/vovakirdan/canyonwalk/internal/config"
	"github.com/vovakirdan/canyonwalk/internal/maps"
	"github.com/vovakirdan/canyonwalk/internal/metrics"
	"github.com/vovakirdan/canyonwalk/internal/registry"
)

// Package-level settings applied to sessions created through the registry.
var (
	settingsMu sync.RWMutex
	sessionCfg = config.DefaultExploreConfig()
	sessionM   *metrics.Metrics
)

// SetConfig sets the configuration for sessions created after this call.
func SetConfig(cfg config.ExploreConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	sessionCfg = cfg
}

// SetMetrics sets the metrics sink for sessions created after this call.
func SetMetrics(m *metrics.Metrics) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	sessionM = m
}

func settings() []Option {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return []Option{WithConfig(sessionCfg), WithMetrics(sessionM)}
}

// RegisterMap makes m playable through the registry.
func RegisterMap(m maps.Map) {
	registry.Register(m.ID, func() registry.Game {
		return New(m, settings()...)
	})
}

func init() {
	builtin, err := maps.Builtin().LoadAll()
	if err != nil {
		panic(err)
	}
	for _, m := range builtin {
		RegisterMap(m)
	}
}
