package domain

import (
	"context"
	"time"
)

// TrendPoint is the denoised view of one day, derived on demand from the
// weight log. Trend points are never persisted: they are a pure function of
// the log snapshot plus configuration, and are regenerated whenever the
// underlying log changes.
type TrendPoint struct {
	Day string `json:"day"`
	// Kg is the smoothed mass for the day.
	Kg float64 `json:"kg"`
	// RatePerDay is the mass change rate in kg/day, from a least-squares fit
	// over the recent smoothed series. Only meaningful when RateDetermined.
	RatePerDay     float64 `json:"ratePerDay"`
	RateDetermined bool    `json:"rateDetermined"`
	// Observed is true when the day had a raw entry rather than a
	// carried-forward value.
	Observed bool `json:"observed"`
}

// TDEEEstimate is the derived maintenance-expenditure estimate as of a day.
type TDEEEstimate struct {
	AsOf     string  `json:"asOf"`
	Calories float64 `json:"calories"`
	// Confidence is qualifying days divided by window size, in [0,1].
	Confidence float64 `json:"confidence"`
	// SampleDays is the number of days that had both an intake total and a
	// determined trend point.
	SampleDays    int  `json:"sampleDays"`
	LowConfidence bool `json:"lowConfidence"`
}

// Target is a published daily calorie/macro prescription. Targets are
// superseded by new rows, never mutated or deleted.
type Target struct {
	ID                 int64     `json:"id"`
	AsOf               string    `json:"asOf"`
	Calories           float64   `json:"calories"`
	ProteinG           float64   `json:"proteinG"`
	FatG               float64   `json:"fatG"`
	CarbsG             float64   `json:"carbsG"`
	TDEE               float64   `json:"tdee"`
	ExpectedRatePerDay float64   `json:"expectedRatePerDay"`
	Goal               Goal      `json:"goal"`
	NeedMoreData       bool      `json:"needMoreData"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Classification is the closed set of per-window plan outcomes.
type Classification string

// The four terminal states. Adherence failure takes precedence over
// effectiveness, since non-adherence invalidates the effectiveness
// comparison's premise.
const (
	OnTrack             Classification = "ON_TRACK"
	AdherentIneffective Classification = "ADHERENT_INEFFECTIVE"
	NonAdherent         Classification = "NON_ADHERENT"
	InsufficientData    Classification = "INSUFFICIENT_DATA"
)

// Report is the adherence/effectiveness outcome for one rolling window.
// Windows are recomputed fresh; no state carries over between them.
type Report struct {
	WindowStart        string         `json:"windowStart"`
	WindowEnd          string         `json:"windowEnd"`
	AdherenceScore     float64        `json:"adherenceScore"`
	EffectivenessScore float64        `json:"effectivenessScore"`
	QualifyingDays     int            `json:"qualifyingDays"`
	Classification     Classification `json:"classification"`
}

// TargetRepository is the port for target history persistence.
type TargetRepository interface {
	SaveTarget(ctx context.Context, t Target) (int64, error)
	// LatestTarget returns the most recent target with AsOf <= asOf, or nil.
	LatestTarget(ctx context.Context, asOf string) (*Target, error)
	// ListTargets returns all targets with AsOf <= through, ordered by AsOf
	// then insertion order.
	ListTargets(ctx context.Context, through string) ([]Target, error)
}
