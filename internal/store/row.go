package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// RecordColumns is the select list read by ScanRecord. Queries alias the
// cards table as c and LEFT JOIN review_states as r.
const RecordColumns = `c.card_hash, c.file_path, c.range_start, c.range_end, c.kind, c.content,
	COALESCE(r.review_count, 0), r.due_date, COALESCE(r.interval_days, 0),
	COALESCE(r.difficulty, 0), COALESCE(r.stability, 0), r.last_reviewed_at`

// CardRow is the column form of a domain.Card. Content holds the variant
// fields as JSON, discriminated by Kind.
type CardRow struct {
	Hash       string
	FilePath   string
	RangeStart int
	RangeEnd   int
	Kind       string
	Content    []byte
}

type basicContent struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type clozeContent struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ToRow validates card and converts it to its column form.
func ToRow(card domain.Card) (CardRow, error) {
	if err := card.Validate(); err != nil {
		return CardRow{}, fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	payload := domain.MatchContent(card.Content,
		func(b domain.Basic) any { return basicContent{Question: b.Question, Answer: b.Answer} },
		func(c domain.Cloze) any { return clozeContent{Text: c.Text, Start: c.Start, End: c.End} },
	)
	content, err := json.Marshal(payload)
	if err != nil {
		return CardRow{}, fmt.Errorf("encode card content: %w", err)
	}

	return CardRow{
		Hash:       card.Hash,
		FilePath:   card.FilePath,
		RangeStart: card.Range.Start,
		RangeEnd:   card.Range.End,
		Kind:       string(card.Kind()),
		Content:    content,
	}, nil
}

// FromRow decodes a stored row back into a validated domain.Card.
func FromRow(row CardRow) (domain.Card, error) {
	var content domain.CardContent

	switch domain.CardKind(row.Kind) {
	case domain.CardKindBasic:
		var b basicContent
		if err := json.Unmarshal(row.Content, &b); err != nil {
			return domain.Card{}, fmt.Errorf("%w: decode basic content: %v", ErrInvalidEntity, err)
		}
		content = domain.Basic{Question: b.Question, Answer: b.Answer}
	case domain.CardKindCloze:
		var c clozeContent
		if err := json.Unmarshal(row.Content, &c); err != nil {
			return domain.Card{}, fmt.Errorf("%w: decode cloze content: %v", ErrInvalidEntity, err)
		}
		content = domain.Cloze{Text: c.Text, Start: c.Start, End: c.End}
	default:
		return domain.Card{}, fmt.Errorf("%w: %w %q", ErrInvalidEntity, domain.ErrUnknownCardKind, row.Kind)
	}

	card := domain.Card{
		FilePath: row.FilePath,
		Range:    domain.LineRange{Start: row.RangeStart, End: row.RangeEnd},
		Content:  content,
		Hash:     row.Hash,
	}
	if err := card.Validate(); err != nil {
		return domain.Card{}, fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	return card, nil
}

// StateRow is the column form of a domain.ReviewState.
type StateRow struct {
	ReviewCount    int64
	DueDate        sql.NullTime
	Interval       float64
	Difficulty     float64
	Stability      float64
	LastReviewedAt sql.NullTime
}

// ToStateRow converts state to its column form. Timestamps are stored in UTC.
func ToStateRow(state domain.ReviewState) StateRow {
	return StateRow{
		ReviewCount:    state.ReviewCount,
		DueDate:        nullTime(state.DueDate),
		Interval:       state.Interval,
		Difficulty:     state.Difficulty,
		Stability:      state.Stability,
		LastReviewedAt: nullTime(state.LastReviewedAt),
	}
}

// State converts the row back to a domain.ReviewState.
func (r StateRow) State() domain.ReviewState {
	return domain.ReviewState{
		ReviewCount:    r.ReviewCount,
		DueDate:        timePtr(r.DueDate),
		Interval:       r.Interval,
		Difficulty:     r.Difficulty,
		Stability:      r.Stability,
		LastReviewedAt: timePtr(r.LastReviewedAt),
	}
}

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanRecord scans one row selected with RecordColumns.
func ScanRecord(sc Scanner) (CardRecord, error) {
	var (
		row   CardRow
		state StateRow
	)

	err := sc.Scan(
		&row.Hash,
		&row.FilePath,
		&row.RangeStart,
		&row.RangeEnd,
		&row.Kind,
		&row.Content,
		&state.ReviewCount,
		&state.DueDate,
		&state.Interval,
		&state.Difficulty,
		&state.Stability,
		&state.LastReviewedAt,
	)
	if err != nil {
		return CardRecord{}, err
	}

	card, err := FromRow(row)
	if err != nil {
		return CardRecord{}, err
	}

	return CardRecord{Card: card, State: state.State()}, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
