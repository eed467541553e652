package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"macrotrend/internal/domain"
)

// alphaForHalfLife converts a smoothing half-life in days to the per-day
// EWMA factor.
func alphaForHalfLife(halfLife float64) float64 {
	return 1 - math.Pow(0.5, 1/halfLife)
}

type histPoint struct {
	day      string
	t        float64 // days since the first entry
	kg       float64
	observed bool
}

// ComputeTrend converts the raw weight-entry sequence into one TrendPoint
// per day in [from, to] that has at least one raw entry inside the look-back
// window ending on that day. Days with an empty look-back produce no point
// at all; insufficient data is the absence of a point, never a zero.
//
// Missing days inside the look-back carry the last smoothed value forward.
// A logging gap longer than the gap-reset threshold reseeds the EWMA at the
// next raw entry, so a stale pre-gap trend cannot contaminate post-gap
// estimates. The output is a pure function of entries and cfg.
func ComputeTrend(entries []domain.WeightEntry, from, to string, cfg Config) ([]domain.TrendPoint, error) {
	fromT, err := domain.ParseDay(from)
	if err != nil {
		return nil, err
	}
	toT, err := domain.ParseDay(to)
	if err != nil {
		return nil, err
	}
	if toT.Before(fromT) {
		return nil, fmt.Errorf("trend: range end %q before start %q", to, from)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	// Work on a sorted copy; the output must not depend on input order.
	sorted := make([]domain.WeightEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })

	byDay := make(map[string]float64, len(sorted))
	for _, e := range sorted {
		byDay[e.Day] = e.Kg
	}
	first, err := domain.ParseDay(sorted[0].Day)
	if err != nil {
		return nil, err
	}

	alpha := alphaForHalfLife(cfg.SmoothingHalfLifeDays)

	var (
		ewma    float64
		seeded  bool
		lastObs time.Time
		hist    []histPoint
		points  []domain.TrendPoint
	)
	for d := first; !d.After(toT); d = d.AddDate(0, 0, 1) {
		day := d.Format(domain.DayFormat)
		kg, observed := byDay[day]
		if observed {
			if !seeded || domain.DaysBetween(lastObs, d) > cfg.GapResetDays {
				ewma = kg
				seeded = true
			} else {
				ewma += alpha * (kg - ewma)
			}
			lastObs = d
		}
		if !seeded || domain.DaysBetween(lastObs, d) > cfg.LookbackWindowDays {
			continue
		}
		hist = append(hist, histPoint{
			day:      day,
			t:        float64(domain.DaysBetween(first, d)),
			kg:       ewma,
			observed: observed,
		})
		if d.Before(fromT) {
			continue // warm-up only
		}
		rate, determined := trailingRate(hist, cfg.RegressionWindowDays)
		points = append(points, domain.TrendPoint{
			Day:            day,
			Kg:             ewma,
			RatePerDay:     rate,
			RateDetermined: determined,
			Observed:       observed,
		})
	}
	return points, nil
}

// trailingRate fits a least-squares slope over the smoothed history inside
// the trailing window. The rate is undetermined when fewer than three raw
// observations back the fit; a slope from one or two readings would let a
// single spike dominate the signal.
func trailingRate(hist []histPoint, windowDays int) (float64, bool) {
	end := hist[len(hist)-1].t
	var xs, ys []float64
	observations := 0
	for i := len(hist) - 1; i >= 0; i-- {
		if end-hist[i].t >= float64(windowDays) {
			break
		}
		xs = append(xs, hist[i].t)
		ys = append(ys, hist[i].kg)
		if hist[i].observed {
			observations++
		}
	}
	if observations < 3 {
		return 0, false
	}
	return slope(xs, ys), true
}

// slope is the ordinary least-squares slope of ys against xs.
func slope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}

// RateOverWindow returns the net smoothed rate across the points: the mass
// difference between the last and first point divided by the day span.
// Reports false when the span is too short to carry a direction.
func RateOverWindow(points []domain.TrendPoint) (float64, bool) {
	if len(points) < 2 {
		return 0, false
	}
	firstP, lastP := points[0], points[len(points)-1]
	f, err := domain.ParseDay(firstP.Day)
	if err != nil {
		return 0, false
	}
	l, err := domain.ParseDay(lastP.Day)
	if err != nil {
		return 0, false
	}
	days := domain.DaysBetween(f, l)
	if days <= 0 {
		return 0, false
	}
	return (lastP.Kg - firstP.Kg) / float64(days), true
}
