package domain

import (
	"context"
	"fmt"
)

// Goal is the user's plan direction.
type Goal string

// The three recognised goals.
const (
	GoalCut      Goal = "cut"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// Valid reports whether g is one of the recognised goals.
func (g Goal) Valid() bool {
	return g == GoalCut || g == GoalMaintain || g == GoalGain
}

// GoalConfig pairs a goal with its target rate in kg per week. The rate sign
// must agree with the goal: negative for cut, zero for maintain, positive
// for gain.
type GoalConfig struct {
	Goal         Goal    `json:"goal"`
	WeeklyRateKg float64 `json:"weeklyRateKg"`
}

// Validate checks goal and rate consistency.
func (c GoalConfig) Validate() error {
	if !c.Goal.Valid() {
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidEntry, c.Goal)
	}
	switch {
	case c.Goal == GoalCut && c.WeeklyRateKg >= 0:
		return fmt.Errorf("%w: cut requires a negative weekly rate", ErrInvalidEntry)
	case c.Goal == GoalMaintain && c.WeeklyRateKg != 0:
		return fmt.Errorf("%w: maintain requires a zero weekly rate", ErrInvalidEntry)
	case c.Goal == GoalGain && c.WeeklyRateKg <= 0:
		return fmt.Errorf("%w: gain requires a positive weekly rate", ErrInvalidEntry)
	}
	return nil
}

// MacroSplit allocates target calories to macronutrients: protein is sized
// from body mass first, fat takes a fixed share of calories, and
// carbohydrate takes whatever remains.
type MacroSplit struct {
	ProteinGPerKg float64 `json:"proteinGPerKg" yaml:"protein_g_per_kg"`
	FatShare      float64 `json:"fatShare" yaml:"fat_share"`
}

// GoalRepository is the port for goal configuration persistence.
type GoalRepository interface {
	SaveGoal(ctx context.Context, g GoalConfig) error
	// GetGoal returns nil when no goal has been configured yet.
	GetGoal(ctx context.Context) (*GoalConfig, error)
}
