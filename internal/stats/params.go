package stats

import "time"

// Default aggregation parameters
const (
	DefaultMatureIntervalDays = 21.0
	DefaultWeekHorizon        = 7 * 24 * time.Hour
	DefaultMonthHorizon       = 30 * 24 * time.Hour
	DefaultHistogramBins      = 5
)

// Params holds the thresholds an Aggregator classifies and buckets cards by.
type Params struct {
	// MatureIntervalDays is the interval above which a reviewed card is mature.
	MatureIntervalDays float64

	// WeekHorizon bounds the per-day upcoming buckets.
	WeekHorizon time.Duration

	// MonthHorizon bounds the upcoming-month counter.
	MonthHorizon time.Duration

	// HistogramBins is the number of bins of both histograms.
	HistogramBins int
}

// DefaultParams returns the default aggregation parameters.
func DefaultParams() Params {
	return Params{
		MatureIntervalDays: DefaultMatureIntervalDays,
		WeekHorizon:        DefaultWeekHorizon,
		MonthHorizon:       DefaultMonthHorizon,
		HistogramBins:      DefaultHistogramBins,
	}
}

// withDefaults replaces unset fields with their defaults.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.MatureIntervalDays <= 0 {
		p.MatureIntervalDays = d.MatureIntervalDays
	}
	if p.WeekHorizon <= 0 {
		p.WeekHorizon = d.WeekHorizon
	}
	if p.MonthHorizon <= 0 {
		p.MonthHorizon = d.MonthHorizon
	}
	if p.HistogramBins <= 0 {
		p.HistogramBins = d.HistogramBins
	}
	return p
}
