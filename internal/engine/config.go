// Package engine implements the adaptive metabolic estimation engine: trend
// smoothing, TDEE estimation, target calculation and adherence/effectiveness
// classification. Every function here is a pure function of a log snapshot
// plus a Config; nothing blocks and nothing mutates shared state, so
// concurrent recomputation needs no locking.
package engine

import (
	"fmt"

	"macrotrend/internal/domain"
)

// Config is the full tuning surface of the engine. Zero values are not
// usable; start from Default and override.
type Config struct {
	// SmoothingHalfLifeDays controls the EWMA: after this many days an
	// observation's weight has decayed to one half.
	SmoothingHalfLifeDays float64 `yaml:"smoothing_half_life_days"`
	// LookbackWindowDays is how far back a day may be from the last raw
	// entry and still receive a carried-forward trend point.
	LookbackWindowDays int `yaml:"lookback_window_days"`
	// RegressionWindowDays is the span of the least-squares slope behind
	// each trend point's rate.
	RegressionWindowDays int `yaml:"regression_window_days"`
	// GapResetDays: a logging gap longer than this reseeds the EWMA at the
	// next raw entry instead of bridging across the gap.
	GapResetDays int `yaml:"gap_reset_days"`

	TDEEWindowDays    int `yaml:"tdee_window_days"`
	MinQualifyingDays int `yaml:"min_qualifying_days"`

	// ConfidenceThreshold is the minimum estimate confidence at which the
	// target calculator will blend a new estimate into the published target.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	// BlendFactor is the weight given to the new estimate when blending
	// against the prior target's TDEE.
	BlendFactor float64 `yaml:"blend_factor"`
	// MaterialChangeKcal is the minimum blended-TDEE movement that publishes
	// a superseding target.
	MaterialChangeKcal float64 `yaml:"material_change_kcal"`

	// AdherenceTolerance is the relative band around the calorie target
	// within which a logged day counts as adherent.
	AdherenceTolerance float64 `yaml:"adherence_tolerance"`
	AdherenceThreshold float64 `yaml:"adherence_threshold"`
	// EffectivenessTolerance is the allowed distance from 1.0 for the
	// observed/expected rate ratio to still count as on track.
	EffectivenessTolerance float64 `yaml:"effectiveness_tolerance"`
	// MaintainBandKgPerDay bounds |observed rate| that still counts as fully
	// effective when the expected rate is zero.
	MaintainBandKgPerDay float64 `yaml:"maintain_band_kg_per_day"`
	ReportWindowDays     int     `yaml:"report_window_days"`

	// EnergyDensityKcalPerKg links energy balance to body-mass change.
	EnergyDensityKcalPerKg float64 `yaml:"energy_density_kcal_per_kg"`

	Split domain.MacroSplit `yaml:"macro_split"`
}

// Default returns the engine defaults. All of these are tunables, not
// contracts; deployments override them through the YAML tuning file.
func Default() Config {
	return Config{
		SmoothingHalfLifeDays:  4,
		LookbackWindowDays:     14,
		RegressionWindowDays:   7,
		GapResetDays:           10,
		TDEEWindowDays:         14,
		MinQualifyingDays:      5,
		ConfidenceThreshold:    0.35,
		BlendFactor:            0.3,
		MaterialChangeKcal:     50,
		AdherenceTolerance:     0.10,
		AdherenceThreshold:     0.70,
		EffectivenessTolerance: 0.25,
		MaintainBandKgPerDay:   0.02,
		ReportWindowDays:       14,
		EnergyDensityKcalPerKg: 7700,
		Split: domain.MacroSplit{
			ProteinGPerKg: 1.8,
			FatShare:      0.30,
		},
	}
}

// ConfigurationError reports a contradictory or impossible configuration
// value. It is fatal at startup; the engine never starts with one.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// Validate fails fast on impossible configuration.
func (c Config) Validate() error {
	switch {
	case c.SmoothingHalfLifeDays <= 0:
		return &ConfigurationError{"smoothing_half_life_days", "must be positive"}
	case c.LookbackWindowDays < 1:
		return &ConfigurationError{"lookback_window_days", "must be at least 1"}
	case c.RegressionWindowDays < 2:
		return &ConfigurationError{"regression_window_days", "must be at least 2"}
	case c.GapResetDays < 1:
		return &ConfigurationError{"gap_reset_days", "must be at least 1"}
	case c.TDEEWindowDays < 1:
		return &ConfigurationError{"tdee_window_days", "must be at least 1"}
	case c.MinQualifyingDays < 1:
		return &ConfigurationError{"min_qualifying_days", "must be at least 1"}
	case c.MinQualifyingDays > c.TDEEWindowDays:
		return &ConfigurationError{"min_qualifying_days", "cannot exceed tdee_window_days"}
	case c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold > 1:
		return &ConfigurationError{"confidence_threshold", "must be in (0,1]"}
	case c.BlendFactor <= 0 || c.BlendFactor > 1:
		return &ConfigurationError{"blend_factor", "must be in (0,1]"}
	case c.MaterialChangeKcal < 0:
		return &ConfigurationError{"material_change_kcal", "must be non-negative"}
	case c.AdherenceTolerance <= 0 || c.AdherenceTolerance >= 1:
		return &ConfigurationError{"adherence_tolerance", "must be in (0,1)"}
	case c.AdherenceThreshold <= 0 || c.AdherenceThreshold > 1:
		return &ConfigurationError{"adherence_threshold", "must be in (0,1]"}
	case c.EffectivenessTolerance <= 0:
		return &ConfigurationError{"effectiveness_tolerance", "must be positive"}
	case c.MaintainBandKgPerDay <= 0:
		return &ConfigurationError{"maintain_band_kg_per_day", "must be positive"}
	case c.ReportWindowDays < 1:
		return &ConfigurationError{"report_window_days", "must be at least 1"}
	case c.EnergyDensityKcalPerKg <= 0:
		return &ConfigurationError{"energy_density_kcal_per_kg", "must be positive"}
	case c.Split.ProteinGPerKg < 0:
		return &ConfigurationError{"macro_split.protein_g_per_kg", "must be non-negative"}
	case c.Split.FatShare < 0 || c.Split.FatShare >= 1:
		return &ConfigurationError{"macro_split.fat_share", "must be in [0,1)"}
	}
	return nil
}
