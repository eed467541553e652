package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"macrotrend/internal/adapter/memory"
	"macrotrend/internal/domain"
)

func TestUpsertWeight_DuplicateDayPolicy(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	first := domain.WeightEntry{Day: "2026-03-01", Kg: 82}
	if err := db.UpsertWeight(ctx, first, false); err != nil {
		t.Fatalf("first write: %v", err)
	}

	second := domain.WeightEntry{Day: "2026-03-01", Kg: 83}
	if err := db.UpsertWeight(ctx, second, false); !errors.Is(err, domain.ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}

	if err := db.UpsertWeight(ctx, second, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	latest, err := db.LatestWeight(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Kg != 83 {
		t.Errorf("overwrite did not replace the entry: %v kg", latest.Kg)
	}
}

func TestWeightRange_OrderedAndBounded(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	for _, day := range []string{"2026-03-05", "2026-03-01", "2026-03-03", "2026-02-27"} {
		if err := db.UpsertWeight(ctx, domain.WeightEntry{Day: day, Kg: 80}, true); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := db.WeightRange(ctx, "2026-03-01", "2026-03-04")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	want := []string{"2026-03-01", "2026-03-03"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, day := range want {
		if got[i].Day != day {
			t.Errorf("entry %d: got %s, want %s", i, got[i].Day, day)
		}
	}
}

func TestDailyIntakeTotals_SumsPerDay(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	entries := []domain.IntakeEntry{
		{Day: "2026-03-01", Calories: 600, ProteinG: 40},
		{Day: "2026-03-01", Calories: 900, ProteinG: 50},
		{Day: "2026-03-02", Calories: 400},
	}
	for _, e := range entries {
		if _, err := db.AppendIntake(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	totals, err := db.DailyIntakeTotals(ctx, "2026-03-01", "2026-03-02")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %d", len(totals))
	}
	if totals[0].Day != "2026-03-01" || totals[0].Calories != 1500 || totals[0].ProteinG != 90 {
		t.Errorf("day 1 total wrong: %+v", totals[0])
	}
	if totals[1].Day != "2026-03-02" || totals[1].Calories != 400 {
		t.Errorf("day 2 total wrong: %+v", totals[1])
	}
}

func TestDeleteLatestIntake(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	ok, err := db.DeleteLatestIntake(ctx)
	if err != nil {
		t.Fatalf("delete on empty: %v", err)
	}
	if ok {
		t.Error("delete on an empty log reported success")
	}

	if _, err := db.AppendIntake(ctx, domain.IntakeEntry{Day: "2026-03-01", Calories: 600}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := db.AppendIntake(ctx, domain.IntakeEntry{Day: "2026-03-01", Calories: 900}); err != nil {
		t.Fatalf("append: %v", err)
	}

	ok, err = db.DeleteLatestIntake(ctx)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	totals, err := db.DailyIntakeTotals(ctx, "2026-03-01", "2026-03-01")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals[0].Calories != 600 {
		t.Errorf("expected the later entry removed, total %v", totals[0].Calories)
	}
}

func TestLatestTarget_Supersession(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	if _, err := db.SaveTarget(ctx, domain.Target{AsOf: "2026-03-01", Calories: 2000}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := db.SaveTarget(ctx, domain.Target{AsOf: "2026-03-10", Calories: 1900}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Same as-of day: the later row wins.
	if _, err := db.SaveTarget(ctx, domain.Target{AsOf: "2026-03-10", Calories: 1850}); err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		asOf string
		want float64
	}{
		{"2026-03-05", 2000},
		{"2026-03-10", 1850},
		{"2026-03-20", 1850},
	}
	for _, tt := range tests {
		got, err := db.LatestTarget(ctx, tt.asOf)
		if err != nil {
			t.Fatalf("latest(%s): %v", tt.asOf, err)
		}
		if got == nil || got.Calories != tt.want {
			t.Errorf("latest(%s): got %+v, want %v kcal", tt.asOf, got, tt.want)
		}
	}

	got, err := db.LatestTarget(ctx, "2026-02-01")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil before any target, got %+v", got)
	}
}

func TestGoalRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	g, err := db.GetGoal(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g != nil {
		t.Errorf("expected nil before configuration, got %+v", g)
	}

	want := domain.GoalConfig{Goal: domain.GoalGain, WeeklyRateKg: 0.25}
	if err := db.SaveGoal(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	g, err = db.GetGoal(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g == nil || *g != want {
		t.Errorf("got %+v, want %+v", g, want)
	}
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	sessions := db.Sessions()

	expired := time.Now().Add(-time.Hour)
	live := time.Now().Add(time.Hour)
	if err := sessions.Create(ctx, 1, "old", expired); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := sessions.Create(ctx, 1, "new", live); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := sessions.DeleteExpired(ctx); err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	s, err := sessions.GetByToken(ctx, "old")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s != nil {
		t.Error("expired session survived DeleteExpired")
	}
	s, err = sessions.GetByToken(ctx, "new")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s == nil || s.UserID != 1 {
		t.Errorf("live session lost: %+v", s)
	}
}
