package domain

import "time"

// ReviewState is the scheduling state the store keeps for one card. The zero
// value describes a card that has never been reviewed and is due immediately.
type ReviewState struct {
	ReviewCount    int64      `json:"review_count"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Interval       float64    `json:"interval"`   // days until the next scheduled review
	Difficulty     float64    `json:"difficulty"` // 0-10 scale
	Stability      float64    `json:"stability"`  // days
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// IsNew reports whether the card has never been reviewed.
func (s ReviewState) IsNew() bool {
	return s.ReviewCount == 0
}

// IsDue reports whether the card should be reviewed at now. Cards without a
// due date are always due.
func (s ReviewState) IsDue(now time.Time) bool {
	return s.DueDate == nil || !s.DueDate.After(now)
}
