package app

import (
	"context"
	"math"
	"time"

	"macrotrend/internal/domain"
	"macrotrend/internal/engine"
)

// PlanService feeds log-store snapshots into the pure engine and owns the
// persistence of derived targets. Targets are superseded by new rows, never
// mutated; trend points, estimates and reports are recomputed on demand and
// never stored.
type PlanService struct {
	weights domain.WeightRepository
	intake  domain.IntakeRepository
	targets domain.TargetRepository
	goals   domain.GoalRepository
	cfg     engine.Config
}

// NewPlanService creates a PlanService with a validated engine configuration.
func NewPlanService(w domain.WeightRepository, i domain.IntakeRepository, t domain.TargetRepository, g domain.GoalRepository, cfg engine.Config) (*PlanService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PlanService{weights: w, intake: i, targets: t, goals: g, cfg: cfg}, nil
}

// Config returns the engine configuration in force.
func (s *PlanService) Config() engine.Config {
	return s.cfg
}

// Trend returns the smoothed trend points for [from, to]. Extra history
// before the range is fetched so the smoother and the slope fit are warm by
// the first requested day.
func (s *PlanService) Trend(ctx context.Context, from, to string) ([]domain.TrendPoint, error) {
	warmup := s.cfg.LookbackWindowDays + s.cfg.RegressionWindowDays + int(4*s.cfg.SmoothingHalfLifeDays)
	start, err := domain.AddDays(from, -warmup)
	if err != nil {
		return nil, err
	}
	entries, err := s.weights.WeightRange(ctx, start, to)
	if err != nil {
		return nil, err
	}
	return engine.ComputeTrend(entries, from, to, s.cfg)
}

// TDEE computes the maintenance-expenditure estimate as of the given day.
func (s *PlanService) TDEE(ctx context.Context, asOf string) (domain.TDEEEstimate, error) {
	windowStart, err := domain.AddDays(asOf, -(s.cfg.TDEEWindowDays - 1))
	if err != nil {
		return domain.TDEEEstimate{}, err
	}
	points, err := s.Trend(ctx, windowStart, asOf)
	if err != nil {
		return domain.TDEEEstimate{}, err
	}
	intakeByDay, err := s.intakeTotals(ctx, windowStart, asOf)
	if err != nil {
		return domain.TDEEEstimate{}, err
	}
	return engine.EstimateTDEE(points, intakeByDay, asOf, s.cfg)
}

// CurrentTarget returns the latest published target as of the given day, or
// nil when none has been published yet.
func (s *PlanService) CurrentTarget(ctx context.Context, asOf string) (*domain.Target, error) {
	return s.targets.LatestTarget(ctx, asOf)
}

// RefreshTarget recomputes the TDEE estimate as of the given day and
// publishes a superseding target when the blended estimate moved materially.
// An immaterial move or a low-confidence estimate leaves the published
// target in force (the latter flagged NeedMoreData).
func (s *PlanService) RefreshTarget(ctx context.Context, asOf string) (domain.Target, error) {
	est, err := s.TDEE(ctx, asOf)
	if err != nil {
		return domain.Target{}, err
	}
	prior, err := s.targets.LatestTarget(ctx, asOf)
	if err != nil {
		return domain.Target{}, err
	}
	goal, err := s.goal(ctx)
	if err != nil {
		return domain.Target{}, err
	}
	mass, err := s.bodyMass(ctx, asOf)
	if err != nil {
		return domain.Target{}, err
	}

	target, err := engine.ComputeTarget(prior, est, goal, mass, s.cfg)
	if err != nil {
		return domain.Target{}, err
	}
	if target.NeedMoreData {
		return target, nil
	}
	if prior != nil && prior.Goal == target.Goal &&
		prior.ExpectedRatePerDay == target.ExpectedRatePerDay &&
		math.Abs(target.TDEE-prior.TDEE) < s.cfg.MaterialChangeKcal {
		return *prior, nil
	}
	target.CreatedAt = time.Now().UTC()
	id, err := s.targets.SaveTarget(ctx, target)
	if err != nil {
		return domain.Target{}, err
	}
	target.ID = id
	return target, nil
}

// Report computes the adherence/effectiveness report for the rolling window
// of windowDays ending at asOf. windowDays <= 0 uses the configured default.
func (s *PlanService) Report(ctx context.Context, windowDays int, asOf string) (domain.Report, error) {
	if windowDays <= 0 {
		windowDays = s.cfg.ReportWindowDays
	}
	windowStart, err := domain.AddDays(asOf, -(windowDays - 1))
	if err != nil {
		return domain.Report{}, err
	}

	points, err := s.Trend(ctx, windowStart, asOf)
	if err != nil {
		return domain.Report{}, err
	}
	intakeByDay, err := s.intakeTotals(ctx, windowStart, asOf)
	if err != nil {
		return domain.Report{}, err
	}
	targets, err := s.targets.ListTargets(ctx, asOf)
	if err != nil {
		return domain.Report{}, err
	}

	days := make([]engine.DayRecord, 0, windowDays)
	day := windowStart
	for i := 0; i < windowDays; i++ {
		rec := engine.DayRecord{Day: day}
		if t := targetInForce(targets, day); t != nil {
			rec.HasTarget = true
			rec.TargetCalories = t.Calories
		}
		if cal, ok := intakeByDay[day]; ok {
			c := cal
			rec.IntakeCalories = &c
		}
		days = append(days, rec)
		if day, err = domain.AddDays(day, 1); err != nil {
			return domain.Report{}, err
		}
	}

	observedRate, rateOK := engine.RateOverWindow(points)
	expectedRate := 0.0
	if t := targetInForce(targets, asOf); t != nil {
		expectedRate = t.ExpectedRatePerDay
	}
	return engine.Classify(days, observedRate, expectedRate, rateOK, s.cfg), nil
}

// SetGoal validates and persists the goal configuration.
func (s *PlanService) SetGoal(ctx context.Context, g domain.GoalConfig) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return s.goals.SaveGoal(ctx, g)
}

// Goal returns the configured goal, defaulting to maintain when unset.
func (s *PlanService) Goal(ctx context.Context) (domain.GoalConfig, error) {
	return s.goal(ctx)
}

func (s *PlanService) goal(ctx context.Context) (domain.GoalConfig, error) {
	g, err := s.goals.GetGoal(ctx)
	if err != nil {
		return domain.GoalConfig{}, err
	}
	if g == nil {
		return domain.GoalConfig{Goal: domain.GoalMaintain}, nil
	}
	return *g, nil
}

// bodyMass is the smoothed mass backing protein allocation: the latest trend
// point when one exists, falling back to the latest raw entry.
func (s *PlanService) bodyMass(ctx context.Context, asOf string) (float64, error) {
	windowStart, err := domain.AddDays(asOf, -(s.cfg.LookbackWindowDays - 1))
	if err != nil {
		return 0, err
	}
	points, err := s.Trend(ctx, windowStart, asOf)
	if err != nil {
		return 0, err
	}
	if len(points) > 0 {
		return points[len(points)-1].Kg, nil
	}
	latest, err := s.weights.LatestWeight(ctx)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, &engine.InsufficientDataError{Op: "target", Need: 1, Got: 0}
	}
	return latest.Kg, nil
}

func (s *PlanService) intakeTotals(ctx context.Context, from, to string) (map[string]float64, error) {
	totals, err := s.intake.DailyIntakeTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]float64, len(totals))
	for _, t := range totals {
		byDay[t.Day] = t.Calories
	}
	return byDay, nil
}

// targetInForce returns the latest target with AsOf <= day. targets must be
// ordered ascending by AsOf.
func targetInForce(targets []domain.Target, day string) *domain.Target {
	var inForce *domain.Target
	for i := range targets {
		if targets[i].AsOf <= day {
			inForce = &targets[i]
		}
	}
	return inForce
}
