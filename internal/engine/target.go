package engine

import (
	"macrotrend/internal/domain"
)

// Energy content per gram of each macronutrient.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarb    = 4.0
	kcalPerGramFat     = 9.0
)

// ComputeTarget turns a TDEE estimate into a daily calorie and macro target
// for the given goal.
//
// Damping policy: when the estimate's confidence clears the threshold it is
// blended against the prior target's TDEE (new estimate at BlendFactor) so a
// noisy week cannot whiplash the published numbers. Below the threshold the
// prior target is returned unchanged with NeedMoreData set; a low-quality
// estimate never silently moves the target. With no prior to fall back on,
// a low-confidence estimate yields InsufficientDataError.
//
// Macro policy: protein is allocated from body mass first and is never
// reduced to satisfy a lower calorie total; any shortfall comes out of the
// carbohydrate allocation, floored at zero.
func ComputeTarget(prior *domain.Target, est domain.TDEEEstimate, goal domain.GoalConfig, bodyMassKg float64, cfg Config) (domain.Target, error) {
	if err := goal.Validate(); err != nil {
		return domain.Target{}, err
	}

	if est.LowConfidence || est.Confidence < cfg.ConfidenceThreshold {
		if prior == nil {
			return domain.Target{}, &InsufficientDataError{Op: "target", Need: cfg.MinQualifyingDays, Got: est.SampleDays}
		}
		t := *prior
		t.NeedMoreData = true
		return t, nil
	}

	tdee := est.Calories
	if prior != nil {
		tdee = cfg.BlendFactor*est.Calories + (1-cfg.BlendFactor)*prior.TDEE
	}

	ratePerDay := goal.WeeklyRateKg / 7
	calories := tdee + ratePerDay*cfg.EnergyDensityKcalPerKg
	if calories < 0 {
		calories = 0
	}

	proteinG := cfg.Split.ProteinGPerKg * bodyMassKg
	proteinKcal := proteinG * kcalPerGramProtein
	fatKcal := cfg.Split.FatShare * calories
	carbKcal := calories - proteinKcal - fatKcal
	if carbKcal < 0 {
		carbKcal = 0 // shortfall comes from carbohydrate, never protein
	}

	return domain.Target{
		AsOf:               est.AsOf,
		Calories:           calories,
		ProteinG:           proteinG,
		FatG:               fatKcal / kcalPerGramFat,
		CarbsG:             carbKcal / kcalPerGramCarb,
		TDEE:               tdee,
		ExpectedRatePerDay: ratePerDay,
		Goal:               goal.Goal,
	}, nil
}
