package engine

import (
	"macrotrend/internal/domain"
)

// EstimateTDEE refines the maintenance-expenditure estimate from the energy
// balance identity over the rolling window ending at asOf:
//
//	expenditure ≈ average intake − observed mass rate × energy density
//
// Only days carrying both an intake total and a determined trend point
// qualify. Days with missing intake are excluded from the average rather
// than treated as zero; zeros would bias expenditure upward. An estimate
// backed by fewer than the minimum qualifying days is flagged low-confidence
// so the target calculator never lets it override a better prior.
func EstimateTDEE(points []domain.TrendPoint, intakeByDay map[string]float64, asOf string, cfg Config) (domain.TDEEEstimate, error) {
	asOfT, err := domain.ParseDay(asOf)
	if err != nil {
		return domain.TDEEEstimate{}, err
	}
	windowStart := asOfT.AddDate(0, 0, -(cfg.TDEEWindowDays - 1))

	var (
		sum        float64
		qualifying int
		rate       float64
		rateKnown  bool
	)
	for _, p := range points {
		d, err := domain.ParseDay(p.Day)
		if err != nil || d.Before(windowStart) || d.After(asOfT) {
			continue
		}
		if p.RateDetermined {
			// Points are ordered by day; the latest determined rate wins.
			rate = p.RatePerDay
			rateKnown = true
		}
		cal, logged := intakeByDay[p.Day]
		if !logged || !p.RateDetermined {
			continue
		}
		sum += cal
		qualifying++
	}
	if qualifying == 0 || !rateKnown {
		return domain.TDEEEstimate{}, &InsufficientDataError{Op: "tdee", Need: cfg.MinQualifyingDays, Got: qualifying}
	}

	avgIntake := sum / float64(qualifying)
	return domain.TDEEEstimate{
		AsOf:          asOf,
		Calories:      avgIntake - rate*cfg.EnergyDensityKcalPerKg,
		Confidence:    float64(qualifying) / float64(cfg.TDEEWindowDays),
		SampleDays:    qualifying,
		LowConfidence: qualifying < cfg.MinQualifyingDays,
	}, nil
}
