package engine_test

import (
	"math"
	"testing"

	"macrotrend/internal/domain"
	"macrotrend/internal/engine"
)

// TestThreeWeekCut runs the whole pipeline over a synthetic three-week cut:
// mass falling 0.07 kg/day under alternating daily noise, intake logged at a
// flat 1800 kcal. Energy balance puts true expenditure near
// 1800 + 0.07*7700 = 2339 kcal.
func TestThreeWeekCut(t *testing.T) {
	cfg := engine.Default()

	entries := make([]domain.WeightEntry, 21)
	intake := map[string]float64{}
	for i := 0; i < 21; i++ {
		noise := 0.3
		if i%2 == 1 {
			noise = -0.3
		}
		entries[i] = domain.WeightEntry{Day: day(i), Kg: 85 - 0.07*float64(i) + noise}
		intake[day(i)] = 1800
	}
	asOf := day(20)

	points, err := engine.ComputeTrend(entries, day(0), asOf, cfg)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(points) != 21 {
		t.Fatalf("expected 21 trend points, got %d", len(points))
	}

	est, err := engine.EstimateTDEE(points, intake, asOf, cfg)
	if err != nil {
		t.Fatalf("tdee: %v", err)
	}
	if math.Abs(est.Calories-2339) > 120 {
		t.Errorf("TDEE estimate %v too far from 2339", est.Calories)
	}
	if est.LowConfidence {
		t.Error("three weeks of daily logs must not be low-confidence")
	}

	goal := domain.GoalConfig{Goal: domain.GoalCut, WeeklyRateKg: -0.5}
	target, err := engine.ComputeTarget(nil, est, goal, points[len(points)-1].Kg, cfg)
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if target.Calories >= est.Calories {
		t.Errorf("cut target %v must sit below TDEE %v", target.Calories, est.Calories)
	}
	if math.Abs(target.Calories-(est.Calories-550)) > 1e-6 {
		t.Errorf("expected a 550 kcal daily deficit, got target %v for TDEE %v", target.Calories, est.Calories)
	}

	// Classification over the trailing report window. Intake 1800 sits inside
	// the 10% band around the ~1789 kcal target, and the scale moved at close
	// to the planned rate: the plan is working.
	windowStart := len(points) - cfg.ReportWindowDays
	windowPoints := points[windowStart:]
	days := make([]engine.DayRecord, len(windowPoints))
	for i, p := range windowPoints {
		cal := intake[p.Day]
		days[i] = engine.DayRecord{Day: p.Day, IntakeCalories: &cal, TargetCalories: target.Calories, HasTarget: true}
	}
	observed, ok := engine.RateOverWindow(windowPoints)
	if !ok {
		t.Fatal("window rate must be determined")
	}

	report := engine.Classify(days, observed, target.ExpectedRatePerDay, true, cfg)
	if report.Classification != domain.OnTrack {
		t.Errorf("got %s (adherence %v effectiveness %v), want ON_TRACK",
			report.Classification, report.AdherenceScore, report.EffectivenessScore)
	}
	if report.AdherenceScore != 1 {
		t.Errorf("every day was logged on target, adherence %v", report.AdherenceScore)
	}
}
