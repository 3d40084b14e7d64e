package stats

import "sort"

// Report is a serializable snapshot of a CardStats, ordered for display.
type Report struct {
	NumCards       int64            `json:"num_cards" yaml:"num_cards"`
	TotalCardsInDB int64            `json:"total_cards_in_db" yaml:"total_cards_in_db"`
	Lifecycles     map[string]int64 `json:"lifecycles" yaml:"lifecycles"`
	DueCards       int64            `json:"due_cards" yaml:"due_cards"`
	UpcomingWeek   []DayCount       `json:"upcoming_week" yaml:"upcoming_week"`
	UpcomingMonth  int64            `json:"upcoming_month" yaml:"upcoming_month"`
	Files          []FileCount      `json:"files" yaml:"files"`
	Difficulty     HistogramReport  `json:"difficulty" yaml:"difficulty"`
	Retrievability HistogramReport  `json:"retrievability" yaml:"retrievability"`
}

// DayCount is the number of cards due on one day.
type DayCount struct {
	Day   string `json:"day" yaml:"day"`
	Count int64  `json:"count" yaml:"count"`
}

// FileCount is the number of cards extracted from one file.
type FileCount struct {
	Path  string `json:"path" yaml:"path"`
	Count int64  `json:"count" yaml:"count"`
}

// HistogramReport is the display form of a Histogram.
type HistogramReport struct {
	Bins  []uint64 `json:"bins" yaml:"bins"`
	Count uint64   `json:"count" yaml:"count"`
	Mean  float64  `json:"mean" yaml:"mean"`
}

// Report builds a Report from s. Every lifecycle is present, days are in
// calendar order and files are sorted by path.
func (s *CardStats) Report() Report {
	r := Report{
		NumCards:       s.NumCards,
		TotalCardsInDB: s.TotalCardsInDB,
		Lifecycles:     make(map[string]int64, len(Lifecycles)),
		DueCards:       s.DueCards,
		UpcomingWeek:   make([]DayCount, 0, len(s.UpcomingWeek)),
		UpcomingMonth:  s.UpcomingMonth,
		Files:          make([]FileCount, 0, len(s.FilePaths)),
		Difficulty:     histogramReport(s.DifficultyHistogram),
		Retrievability: histogramReport(s.RetrievabilityHistogram),
	}

	for _, l := range Lifecycles {
		r.Lifecycles[l.String()] = s.CardLifecycles[l]
	}

	for day, n := range s.UpcomingWeek {
		r.UpcomingWeek = append(r.UpcomingWeek, DayCount{Day: day, Count: n})
	}
	// YYYY-MM-DD sorts lexically in calendar order.
	sort.Slice(r.UpcomingWeek, func(i, j int) bool {
		return r.UpcomingWeek[i].Day < r.UpcomingWeek[j].Day
	})

	for path, n := range s.FilePaths {
		r.Files = append(r.Files, FileCount{Path: path, Count: n})
	}
	sort.Slice(r.Files, func(i, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})

	return r
}

func histogramReport(h Histogram) HistogramReport {
	return HistogramReport{
		Bins:  h.Bins(),
		Count: h.Count(),
		Mean:  h.Mean(),
	}
}
