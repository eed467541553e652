package engine

import (
	"math"

	"macrotrend/internal/domain"
)

// DayRecord pairs one window day's logged intake with the calorie target in
// force on that day. IntakeCalories is nil when nothing was logged.
type DayRecord struct {
	Day            string
	IntakeCalories *float64
	TargetCalories float64
	HasTarget      bool
}

// Bounds for the reported effectiveness ratio. Values past these carry no
// extra information and would distort downstream averaging.
const (
	effectivenessMin = -2.0
	effectivenessMax = 2.0
)

// Classify produces the adherence/effectiveness report for one rolling
// window. days must be ordered and cover the window, one record per day;
// observedRate and expectedRate are the window's actual and planned mass
// rates in kg/day.
//
// Adherence counts the fraction of target-bearing days whose logged calories
// landed inside the tolerance band. A day with no log counts as
// non-adherent, never adherent-by-default. Effectiveness is the ratio of
// observed to expected rate, clamped; for a maintain goal (expected rate
// zero) it is 1 inside the maintain band and 0 outside it.
//
// Precedence: too few qualifying days withholds the report entirely
// (INSUFFICIENT_DATA); adherence failure overrides effectiveness
// (NON_ADHERENT), since non-adherence invalidates the effectiveness
// comparison's premise.
func Classify(days []DayRecord, observedRate, expectedRate float64, rateDetermined bool, cfg Config) domain.Report {
	report := domain.Report{}
	if len(days) > 0 {
		report.WindowStart = days[0].Day
		report.WindowEnd = days[len(days)-1].Day
	}

	qualifying := 0
	adherent := 0
	for _, d := range days {
		if !d.HasTarget {
			continue
		}
		qualifying++
		if d.IntakeCalories == nil {
			continue
		}
		band := cfg.AdherenceTolerance * d.TargetCalories
		if math.Abs(*d.IntakeCalories-d.TargetCalories) <= band {
			adherent++
		}
	}
	report.QualifyingDays = qualifying

	if qualifying < cfg.MinQualifyingDays || !rateDetermined {
		report.Classification = domain.InsufficientData
		return report
	}

	report.AdherenceScore = float64(adherent) / float64(qualifying)

	switch {
	case expectedRate == 0:
		if math.Abs(observedRate) <= cfg.MaintainBandKgPerDay {
			report.EffectivenessScore = 1
		} else {
			report.EffectivenessScore = 0
		}
	default:
		ratio := observedRate / expectedRate
		report.EffectivenessScore = math.Min(math.Max(ratio, effectivenessMin), effectivenessMax)
	}

	switch {
	case report.AdherenceScore < cfg.AdherenceThreshold:
		report.Classification = domain.NonAdherent
	case math.Abs(report.EffectivenessScore-1) <= cfg.EffectivenessTolerance:
		report.Classification = domain.OnTrack
	default:
		report.Classification = domain.AdherentIneffective
	}
	return report
}
