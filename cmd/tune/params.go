// Package main tunes difficulty parameters with CMA-ES against autopilot games.
package main

import (
	"github.com/pthm-cable/munch/config"
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

// NewParamVector creates the standard set of tunable parameters. Defaults
// are read from base so the search starts from the shipped tuning.
func NewParamVector(base *config.Config) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "miss_increment", Path: "anger.miss_increment", Min: 0.02, Max: 0.3, Default: base.Anger.MissIncrement},
			{Name: "speed_step", Path: "progression.speed_step", Min: 1.0, Max: 1.5, Default: base.Progression.SpeedStep},
			{Name: "growth_increment", Path: "progression.growth_increment", Min: 0.1, Max: 1.0, Default: base.Progression.GrowthIncrement},
			// Scales every food's spawn_interval.
			{Name: "interval_scale", Path: "foods[*].spawn_interval", Min: 0.5, Max: 2.0, Default: 1.0},
			// Scales every food's speed.
			{Name: "speed_scale", Path: "foods[*].speed", Min: 0.5, Max: 2.0, Default: 1.0},
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

// ApplyToConfig writes clamped parameter values into cfg and refreshes its
// derived values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	v := pv.Clamp(values)

	cfg.Anger.MissIncrement = v[0]
	cfg.Progression.SpeedStep = v[1]
	cfg.Progression.GrowthIncrement = v[2]
	for i := range cfg.Foods {
		cfg.Foods[i].SpawnInterval *= v[3]
		cfg.Foods[i].Speed *= v[4]
	}
	return cfg.Refresh()
}
