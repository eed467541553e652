// Package app holds the application services and business logic.
package app

import (
	"context"
	"fmt"
	"time"

	"macrotrend/internal/domain"
)

// Plausibility bounds enforced at the log-store boundary. Values outside
// these are rejected before they can reach the engine.
const (
	minPlausibleKg = 20.0
	maxPlausibleKg = 400.0

	// macroTolerance is the allowed relative mismatch between a logged
	// calorie total and the energy implied by its macro grams.
	macroTolerance = 0.15
)

// LogService validates and records weight and intake entries.
type LogService struct {
	weights domain.WeightRepository
	intake  domain.IntakeRepository
	// overwrite controls same-day weight writes: when false a second write
	// for a day fails with domain.ErrDuplicateDay instead of replacing.
	overwrite bool
}

// NewLogService creates a LogService backed by the given repositories.
func NewLogService(w domain.WeightRepository, i domain.IntakeRepository, overwrite bool) *LogService {
	return &LogService{weights: w, intake: i, overwrite: overwrite}
}

// RecordWeight validates and upserts the body-weight measurement for day.
// Accepts "kg" or "lb"; the entry is stored canonically in kg.
func (s *LogService) RecordWeight(ctx context.Context, day string, value float64, unit string) (domain.WeightEntry, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return domain.WeightEntry{}, err
	}
	if unit != "kg" && unit != "lb" {
		return domain.WeightEntry{}, fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", domain.ErrInvalidEntry)
	}
	kg := domain.ConvertWeight(value, unit, "kg")
	if kg < minPlausibleKg || kg > maxPlausibleKg {
		return domain.WeightEntry{}, fmt.Errorf("%w: mass %.1f kg outside plausible range", domain.ErrInvalidEntry, kg)
	}

	e := domain.WeightEntry{Day: day, Kg: kg, CreatedAt: time.Now().UTC()}
	if err := s.weights.UpsertWeight(ctx, e, s.overwrite); err != nil {
		return domain.WeightEntry{}, err
	}
	return e, nil
}

// RecordIntake validates and appends one intake entry for day. When macro
// grams are supplied they must agree with the calorie total within
// tolerance; calorie-only entries are accepted as-is.
func (s *LogService) RecordIntake(ctx context.Context, day string, calories, proteinG, fatG, carbsG float64) (domain.IntakeEntry, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return domain.IntakeEntry{}, err
	}
	if calories < 0 || proteinG < 0 || fatG < 0 || carbsG < 0 {
		return domain.IntakeEntry{}, fmt.Errorf("%w: calories and macros must be non-negative", domain.ErrInvalidEntry)
	}
	if macroKcal := 4*proteinG + 9*fatG + 4*carbsG; macroKcal > 0 && calories > 0 {
		if diff := macroKcal - calories; diff > macroTolerance*calories || -diff > macroTolerance*calories {
			return domain.IntakeEntry{}, fmt.Errorf("%w: macros imply %.0f kcal, logged %.0f", domain.ErrInvalidEntry, macroKcal, calories)
		}
	}

	e := domain.IntakeEntry{
		Day:       day,
		Calories:  calories,
		ProteinG:  proteinG,
		FatG:      fatG,
		CarbsG:    carbsG,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.intake.AppendIntake(ctx, e)
	if err != nil {
		return domain.IntakeEntry{}, err
	}
	e.ID = id
	return e, nil
}

// UndoLastIntake deletes the most recently logged intake entry.
func (s *LogService) UndoLastIntake(ctx context.Context) (bool, error) {
	return s.intake.DeleteLatestIntake(ctx)
}

// WeightOn returns the entry for one day, or nil if none was logged.
func (s *LogService) WeightOn(ctx context.Context, day string) (*domain.WeightEntry, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}
	entries, err := s.weights.WeightRange(ctx, day, day)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	e := entries[0]
	return &e, nil
}

// RecentWeights returns the weight entries for the trailing days ending at
// today, newest last.
func (s *LogService) RecentWeights(ctx context.Context, today string, days int) ([]domain.WeightEntry, error) {
	if days < 1 {
		days = 1
	}
	from, err := domain.AddDays(today, -(days - 1))
	if err != nil {
		return nil, err
	}
	return s.weights.WeightRange(ctx, from, today)
}

// DayIntake returns the summed intake for one day, or nil if nothing was
// logged.
func (s *LogService) DayIntake(ctx context.Context, day string) (*domain.DayIntake, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}
	totals, err := s.intake.DailyIntakeTotals(ctx, day, day)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, nil
	}
	t := totals[0]
	return &t, nil
}
