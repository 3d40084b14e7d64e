package stats

import "fmt"

// CardStats is the aggregate of one statistics pass. It is created empty,
// mutated once per card by an Aggregator, read by a reporting layer, and then
// discarded.
type CardStats struct {
	NumCards       int64
	TotalCardsInDB int64

	CardLifecycles map[Lifecycle]int64

	// DueCards counts cards due now or overdue, including cards without a
	// due date.
	DueCards int64

	// UpcomingWeek maps a YYYY-MM-DD day to the number of cards due that day
	// within the week horizon.
	UpcomingWeek map[string]int64

	// UpcomingMonth counts cards due within the month horizon. It is not
	// bucketed by day and overlaps UpcomingWeek.
	UpcomingMonth int64

	FilePaths map[string]int64

	DifficultyHistogram     Histogram
	RetrievabilityHistogram Histogram
}

// NewCardStats creates an empty CardStats whose histograms have bins bins.
func NewCardStats(bins int) *CardStats {
	return &CardStats{
		CardLifecycles:          make(map[Lifecycle]int64),
		UpcomingWeek:            make(map[string]int64),
		FilePaths:               make(map[string]int64),
		DifficultyHistogram:     NewHistogram(bins),
		RetrievabilityHistogram: NewHistogram(bins),
	}
}

// Merge adds other into s field by field. Merging the partial results of
// disjoint card sets gives the same CardStats as one pass over their union.
//
// TotalCardsInDB describes the store rather than the pass, so Merge keeps the
// larger of the two values instead of adding them.
func (s *CardStats) Merge(other *CardStats) error {
	if other == nil {
		return nil
	}

	if err := s.DifficultyHistogram.Merge(other.DifficultyHistogram); err != nil {
		return fmt.Errorf("merge difficulty histogram: %w", err)
	}
	if err := s.RetrievabilityHistogram.Merge(other.RetrievabilityHistogram); err != nil {
		return fmt.Errorf("merge retrievability histogram: %w", err)
	}

	s.NumCards += other.NumCards
	if other.TotalCardsInDB > s.TotalCardsInDB {
		s.TotalCardsInDB = other.TotalCardsInDB
	}
	s.DueCards += other.DueCards
	s.UpcomingMonth += other.UpcomingMonth

	s.CardLifecycles = mergeCounts(s.CardLifecycles, other.CardLifecycles)
	s.UpcomingWeek = mergeCounts(s.UpcomingWeek, other.UpcomingWeek)
	s.FilePaths = mergeCounts(s.FilePaths, other.FilePaths)

	return nil
}

func mergeCounts[K comparable](dst, src map[K]int64) map[K]int64 {
	if dst == nil {
		dst = make(map[K]int64, len(src))
	}
	for k, v := range src {
		dst[k] += v
	}
	return dst
}
