package main

import (
	"github.com/pthm-cable/flock/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the wolf difficulty parameters, with defaults
// taken from base.
func NewParamVector(base *config.Config) *ParamVector {
	w := base.Wolf
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "speed_initial", Path: "wolf.speed_initial", Min: 10, Max: 60, Default: w.SpeedInitial},
			{Name: "speed_max", Path: "wolf.speed_max", Min: 40, Max: 160, Default: w.SpeedMax},
			{Name: "speed_half_time", Path: "wolf.speed_half_time", Min: 10, Max: 240, Default: w.SpeedHalfTime},
			{Name: "sleep_initial", Path: "wolf.sleep_initial", Min: 1, Max: 12, Default: w.SleepInitial},
			{Name: "sleep_half_time", Path: "wolf.sleep_half_time", Min: 10, Max: 240, Default: w.SleepHalfTime},
			{Name: "hungry_interval", Path: "wolf.hungry_interval", Min: 0.1, Max: 2, Default: w.HungryInterval},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct. The top speed
// never drops below the starting speed.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	// Order must match Specs order
	cfg.Wolf.SpeedInitial = c[0]
	cfg.Wolf.SpeedMax = max(c[1], c[0])
	cfg.Wolf.SpeedHalfTime = c[2]
	cfg.Wolf.SleepInitial = c[3]
	cfg.Wolf.SleepHalfTime = c[4]
	cfg.Wolf.HungryInterval = c[5]
	cfg.Recompute()
}
