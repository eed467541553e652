package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"macrotrend/internal/app"
	"macrotrend/internal/domain"
)

type mockWeightRepo struct {
	upsertFn func(ctx context.Context, e domain.WeightEntry, overwrite bool) error
	rangeFn  func(ctx context.Context, from, to string) ([]domain.WeightEntry, error)
	latestFn func(ctx context.Context) (*domain.WeightEntry, error)
}

func (m *mockWeightRepo) UpsertWeight(ctx context.Context, e domain.WeightEntry, overwrite bool) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, e, overwrite)
	}
	return nil
}

func (m *mockWeightRepo) WeightRange(ctx context.Context, from, to string) ([]domain.WeightEntry, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, from, to)
	}
	return nil, nil
}

func (m *mockWeightRepo) LatestWeight(ctx context.Context) (*domain.WeightEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx)
	}
	return nil, nil
}

type mockIntakeRepo struct {
	appendFn func(ctx context.Context, e domain.IntakeEntry) (int64, error)
	deleteFn func(ctx context.Context) (bool, error)
	rangeFn  func(ctx context.Context, from, to string) ([]domain.IntakeEntry, error)
	totalsFn func(ctx context.Context, from, to string) ([]domain.DayIntake, error)
}

func (m *mockIntakeRepo) AppendIntake(ctx context.Context, e domain.IntakeEntry) (int64, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, e)
	}
	return 1, nil
}

func (m *mockIntakeRepo) DeleteLatestIntake(ctx context.Context) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx)
	}
	return false, nil
}

func (m *mockIntakeRepo) IntakeRange(ctx context.Context, from, to string) ([]domain.IntakeEntry, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, from, to)
	}
	return nil, nil
}

func (m *mockIntakeRepo) DailyIntakeTotals(ctx context.Context, from, to string) ([]domain.DayIntake, error) {
	if m.totalsFn != nil {
		return m.totalsFn(ctx, from, to)
	}
	return nil, nil
}

func TestRecordWeight(t *testing.T) {
	tests := []struct {
		name    string
		day     string
		value   float64
		unit    string
		wantKg  float64
		wantErr bool
	}{
		{"kilograms stored as-is", "2026-03-01", 82.4, "kg", 82.4, false},
		{"pounds converted", "2026-03-01", 180, "lb", 81.6466, false},
		{"bad day", "03/01/2026", 82.4, "kg", 0, true},
		{"unknown unit", "2026-03-01", 82.4, "stone", 0, true},
		{"implausibly light", "2026-03-01", 5, "kg", 0, true},
		{"implausibly heavy", "2026-03-01", 900, "lb", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored *domain.WeightEntry
			repo := &mockWeightRepo{
				upsertFn: func(ctx context.Context, e domain.WeightEntry, overwrite bool) error {
					stored = &e
					return nil
				},
			}
			svc := app.NewLogService(repo, &mockIntakeRepo{}, true)

			got, err := svc.RecordWeight(context.Background(), tt.day, tt.value, tt.unit)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidEntry) {
					t.Fatalf("expected ErrInvalidEntry, got %v", err)
				}
				if stored != nil {
					t.Error("invalid entry reached the repository")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.Kg-tt.wantKg) > 0.001 {
				t.Errorf("stored %v kg, want %v", got.Kg, tt.wantKg)
			}
		})
	}
}

func TestRecordWeight_DuplicateDayPassthrough(t *testing.T) {
	repo := &mockWeightRepo{
		upsertFn: func(ctx context.Context, e domain.WeightEntry, overwrite bool) error {
			if overwrite {
				t.Error("overwrite flag should be off")
			}
			return domain.ErrDuplicateDay
		},
	}
	svc := app.NewLogService(repo, &mockIntakeRepo{}, false)

	_, err := svc.RecordWeight(context.Background(), "2026-03-01", 82, "kg")
	if !errors.Is(err, domain.ErrDuplicateDay) {
		t.Errorf("expected ErrDuplicateDay, got %v", err)
	}
}

func TestRecordIntake(t *testing.T) {
	tests := []struct {
		name                          string
		calories, protein, fat, carbs float64
		wantErr                       bool
	}{
		{"calories only", 650, 0, 0, 0, false},
		{"consistent macros", 650, 40, 20, 55, false}, // macros imply 560 kcal, within tolerance
		{"negative calories", -100, 0, 0, 0, true},
		{"negative macro", 650, -5, 20, 55, true},
		{"macros contradict calories", 650, 10, 5, 10, true}, // macros imply 125 kcal
		{"macros without calories", 0, 40, 20, 55, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := app.NewLogService(&mockWeightRepo{}, &mockIntakeRepo{}, true)
			got, err := svc.RecordIntake(context.Background(), "2026-03-01", tt.calories, tt.protein, tt.fat, tt.carbs)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidEntry) {
					t.Fatalf("expected ErrInvalidEntry, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID == 0 {
				t.Error("entry ID not assigned from the repository")
			}
		})
	}
}

func TestUndoLastIntake(t *testing.T) {
	deleted := false
	repo := &mockIntakeRepo{
		deleteFn: func(ctx context.Context) (bool, error) {
			deleted = true
			return true, nil
		},
	}
	svc := app.NewLogService(&mockWeightRepo{}, repo, true)

	ok, err := svc.UndoLastIntake(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected successful undo, got ok=%v err=%v", ok, err)
	}
	if !deleted {
		t.Error("repository delete never called")
	}
}

func TestRecentWeights(t *testing.T) {
	var gotFrom, gotTo string
	repo := &mockWeightRepo{
		rangeFn: func(ctx context.Context, from, to string) ([]domain.WeightEntry, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	svc := app.NewLogService(repo, &mockIntakeRepo{}, true)

	if _, err := svc.RecentWeights(context.Background(), "2026-03-15", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFrom != "2026-03-09" || gotTo != "2026-03-15" {
		t.Errorf("queried [%s, %s], want [2026-03-09, 2026-03-15]", gotFrom, gotTo)
	}
}

func TestDayIntake(t *testing.T) {
	repo := &mockIntakeRepo{
		totalsFn: func(ctx context.Context, from, to string) ([]domain.DayIntake, error) {
			if from != to {
				t.Errorf("single-day query spans [%s, %s]", from, to)
			}
			return []domain.DayIntake{{Day: from, Calories: 1800}}, nil
		},
	}
	svc := app.NewLogService(&mockWeightRepo{}, repo, true)

	got, err := svc.DayIntake(context.Background(), "2026-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Calories != 1800 {
		t.Errorf("expected 1800 kcal total, got %+v", got)
	}

	empty := &mockIntakeRepo{}
	svc = app.NewLogService(&mockWeightRepo{}, empty, true)
	got, err = svc.DayIntake(context.Background(), "2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for an unlogged day, got %+v", got)
	}
}
