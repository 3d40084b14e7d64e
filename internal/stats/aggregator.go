package stats

import (
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/domain/srs"
)

// DayFormat is the layout of the upcoming-week day keys.
const DayFormat = "2006-01-02"

// Aggregator folds (card, review state) pairs into a CardStats. It is not
// safe for concurrent use; parallel callers aggregate separately and merge.
type Aggregator struct {
	params Params
	model  *srs.RecallModel

	now          time.Time
	weekHorizon  time.Time
	monthHorizon time.Time

	stats *CardStats
}

// NewAggregator creates an Aggregator that evaluates every card against now.
// Unset params fall back to DefaultParams and a nil model uses the default
// recall model.
func NewAggregator(params Params, model *srs.RecallModel, now time.Time) *Aggregator {
	params = params.withDefaults()
	if model == nil {
		model = srs.NewDefaultRecallModel()
	}

	return &Aggregator{
		params:       params,
		model:        model,
		now:          now,
		weekHorizon:  now.Add(params.WeekHorizon),
		monthHorizon: now.Add(params.MonthHorizon),
		stats:        NewCardStats(params.HistogramBins),
	}
}

// Now returns the instant the aggregator evaluates cards against.
func (a *Aggregator) Now() time.Time {
	return a.now
}

// Update records one card and its review state.
func (a *Aggregator) Update(card domain.Card, state domain.ReviewState) {
	s := a.stats

	s.NumCards++
	s.FilePaths[card.FilePath]++

	lifecycle := Classify(state.ReviewCount, state.Interval, a.params.MatureIntervalDays)
	s.CardLifecycles[lifecycle]++

	switch due := state.DueDate; {
	case due == nil, !due.After(a.now):
		s.DueCards++
	default:
		if !due.After(a.weekHorizon) {
			s.UpcomingWeek[due.In(a.now.Location()).Format(DayFormat)]++
		}
		if !due.After(a.monthHorizon) {
			s.UpcomingMonth++
		}
	}

	s.DifficultyHistogram.Update(state.Difficulty / 10.0)

	if state.LastReviewedAt == nil {
		return
	}

	elapsedDays := a.now.Sub(*state.LastReviewedAt).Hours() / 24
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	s.RetrievabilityHistogram.Update(a.model.Recall(elapsedDays, state.Stability))
}

// Stats returns the aggregate built so far. The returned value is owned by the
// aggregator until the caller stops calling Update.
func (a *Aggregator) Stats() *CardStats {
	return a.stats
}
