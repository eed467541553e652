// Package domain contains the core business entities and repository ports.
package domain

import (
	"context"
	"errors"
	"time"
)

// DayFormat is the canonical calendar-day layout used throughout.
const DayFormat = "2006-01-02"

var (
	// ErrDuplicateDay indicates a same-day write while overwriting is disallowed.
	ErrDuplicateDay = errors.New("entry already exists for day")
	// ErrInvalidEntry indicates a malformed or out-of-range log value.
	ErrInvalidEntry = errors.New("invalid entry")
)

// WeightEntry is a single body-weight measurement. At most one entry exists
// per calendar day; a later write for the same day replaces the prior one.
// Mass is stored canonically in kilograms.
type WeightEntry struct {
	Day       string    `json:"day"`
	Kg        float64   `json:"kg"`
	CreatedAt time.Time `json:"createdAt"`
}

// IntakeEntry is one logged food item or meal. Multiple entries may exist
// per day; the engine only ever sees per-day totals.
type IntakeEntry struct {
	ID        int64     `json:"id"`
	Day       string    `json:"day"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"proteinG"`
	FatG      float64   `json:"fatG"`
	CarbsG    float64   `json:"carbsG"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayIntake is the summed intake for one calendar day.
type DayIntake struct {
	Day      string  `json:"day"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	FatG     float64 `json:"fatG"`
	CarbsG   float64 `json:"carbsG"`
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	// UpsertWeight writes the entry for its day. When overwrite is false and
	// an entry already exists for that day it returns ErrDuplicateDay.
	UpsertWeight(ctx context.Context, e WeightEntry, overwrite bool) error
	// WeightRange returns entries with from <= day <= to, ordered by day.
	WeightRange(ctx context.Context, from, to string) ([]WeightEntry, error)
	// LatestWeight returns the most recent entry, or nil if none exist.
	LatestWeight(ctx context.Context) (*WeightEntry, error)
}

// IntakeRepository is the port for intake persistence.
type IntakeRepository interface {
	AppendIntake(ctx context.Context, e IntakeEntry) (int64, error)
	// DeleteLatestIntake removes the most recently logged entry.
	DeleteLatestIntake(ctx context.Context) (bool, error)
	// IntakeRange returns entries with from <= day <= to, ordered by day.
	IntakeRange(ctx context.Context, from, to string) ([]IntakeEntry, error)
	// DailyIntakeTotals returns per-day sums for from <= day <= to, ordered
	// by day. Days with no entries are absent, never zero-filled.
	DailyIntakeTotals(ctx context.Context, from, to string) ([]DayIntake, error)
}
