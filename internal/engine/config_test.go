package engine_test

import (
	"errors"
	"testing"

	"macrotrend/internal/engine"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := engine.Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*engine.Config)
		field  string
	}{
		{"zero half-life", func(c *engine.Config) { c.SmoothingHalfLifeDays = 0 }, "smoothing_half_life_days"},
		{"regression window too small", func(c *engine.Config) { c.RegressionWindowDays = 1 }, "regression_window_days"},
		{"min days exceeds window", func(c *engine.Config) { c.MinQualifyingDays = 20 }, "min_qualifying_days"},
		{"blend factor above one", func(c *engine.Config) { c.BlendFactor = 1.5 }, "blend_factor"},
		{"negative material change", func(c *engine.Config) { c.MaterialChangeKcal = -1 }, "material_change_kcal"},
		{"adherence tolerance at one", func(c *engine.Config) { c.AdherenceTolerance = 1 }, "adherence_tolerance"},
		{"zero maintain band", func(c *engine.Config) { c.MaintainBandKgPerDay = 0 }, "maintain_band_kg_per_day"},
		{"fat share at one", func(c *engine.Config) { c.Split.FatShare = 1 }, "macro_split.fat_share"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := engine.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var cerr *engine.ConfigurationError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("flagged field %q, want %q", cerr.Field, tt.field)
			}
		})
	}
}
