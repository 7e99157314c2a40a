package config

import "fmt"

// Pace is a named movement speed preset.
type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceNormal Pace = "normal"
	PaceFast   Pace = "fast"
)

// ParsePace validates a pace name. The empty string means normal.
func ParsePace(s string) (Pace, error) {
	switch Pace(s) {
	case "", PaceNormal:
		return PaceNormal, nil
	case PaceSlow, PaceFast:
		return Pace(s), nil
	default:
		return "", fmt.Errorf("unknown pace %q (want slow, normal or fast)", s)
	}
}

// ApplyPace modifies the movement cadence for a preset.
// Normal keeps whatever the loaded configuration says.
func ApplyPace(cfg *ExploreConfig, p Pace) {
	switch p {
	case PaceSlow:
		cfg.Movement.StepMS = 220
		cfg.Movement.CooldownMS = 260
	case PaceFast:
		cfg.Movement.StepMS = 90
		cfg.Movement.CooldownMS = 100
	}
}
