package engine_test

import (
	"math"
	"testing"

	"macrotrend/internal/domain"
	"macrotrend/internal/engine"
)

func makePoints(n int, kg, rate float64, determined bool) []domain.TrendPoint {
	points := make([]domain.TrendPoint, n)
	for i := range points {
		points[i] = domain.TrendPoint{
			Day:            day(i),
			Kg:             kg,
			RatePerDay:     rate,
			RateDetermined: determined,
			Observed:       true,
		}
	}
	return points
}

func TestEstimateTDEE_EnergyBalance(t *testing.T) {
	points := makePoints(14, 80, -0.07, true)
	intake := map[string]float64{}
	for i := 0; i < 14; i++ {
		intake[day(i)] = 1800
	}

	est, err := engine.EstimateTDEE(points, intake, day(13), engine.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1800 + 0.07*7700 = 2339
	if math.Abs(est.Calories-2339) > 1e-6 {
		t.Errorf("expected 2339 kcal, got %v", est.Calories)
	}
	if est.SampleDays != 14 || est.Confidence != 1 {
		t.Errorf("expected 14 qualifying days at full confidence, got %d at %v", est.SampleDays, est.Confidence)
	}
	if est.LowConfidence {
		t.Error("14 qualifying days must not be low-confidence")
	}
}

func TestEstimateTDEE_ExcludesMissingIntakeDays(t *testing.T) {
	points := makePoints(14, 80, 0, true)
	intake := map[string]float64{}
	for i := 0; i < 14; i += 2 { // 7 logged days
		intake[day(i)] = 2000
	}

	est, err := engine.EstimateTDEE(points, intake, day(13), engine.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Missing days are excluded, not zero-filled: the average stays 2000.
	if math.Abs(est.Calories-2000) > 1e-6 {
		t.Errorf("expected 2000 kcal, got %v", est.Calories)
	}
	if est.SampleDays != 7 {
		t.Errorf("expected 7 qualifying days, got %d", est.SampleDays)
	}
}

func TestEstimateTDEE_LowConfidence(t *testing.T) {
	points := makePoints(14, 80, 0, true)
	intake := map[string]float64{
		day(11): 2000,
		day(12): 2000,
		day(13): 2000,
	}

	est, err := engine.EstimateTDEE(points, intake, day(13), engine.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !est.LowConfidence {
		t.Error("3 qualifying days should be flagged low-confidence")
	}
	if math.Abs(est.Confidence-3.0/14.0) > 1e-9 {
		t.Errorf("expected confidence 3/14, got %v", est.Confidence)
	}
}

func TestEstimateTDEE_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		points []domain.TrendPoint
		intake map[string]float64
	}{
		{"no intake at all", makePoints(14, 80, 0, true), nil},
		{"rate never determined", makePoints(14, 80, 0, false), map[string]float64{day(13): 2000}},
		{"intake outside window", makePoints(30, 80, 0, true), map[string]float64{day(0): 2000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asOf := day(len(tt.points) - 1)
			_, err := engine.EstimateTDEE(tt.points, tt.intake, asOf, engine.Default())
			if !engine.IsInsufficientData(err) {
				t.Errorf("expected insufficient-data error, got %v", err)
			}
		})
	}
}
