// Package config loads the engine tuning file. Every knob the engine
// recognises can be overridden here; anything omitted keeps its default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"macrotrend/internal/engine"
)

// File is the on-disk tuning surface.
type File struct {
	Engine engine.Config `yaml:"engine"`
	// AllowOverwriteSameDay controls the log-store duplicate-day policy:
	// when false, a second weight write for the same day is rejected
	// instead of replacing the first.
	AllowOverwriteSameDay bool `yaml:"allow_overwrite_same_day"`
}

// Load reads the tuning file at path. An empty path yields validated
// defaults. Contradictory configuration fails fast; it never reaches the
// engine.
func Load(path string) (File, error) {
	f := File{
		Engine:                engine.Default(),
		AllowOverwriteSameDay: true,
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return File{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := f.Engine.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}
