package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/store"
)

// ErrInvalidReviewStates is returned by ReadReviewStates for a document that
// does not describe a list of review states.
var ErrInvalidReviewStates = errors.New("invalid review state document")

// ReviewStateRecord is the review state of one card, identified by its hash.
type ReviewStateRecord struct {
	Hash  string
	State domain.ReviewState
}

// reviewStateDoc is one entry of an import document. Timestamps are RFC 3339.
type reviewStateDoc struct {
	CardHash       string  `yaml:"card_hash"`
	ReviewCount    int64   `yaml:"review_count"`
	DueDate        string  `yaml:"due_date"`
	Interval       float64 `yaml:"interval"`
	Difficulty     float64 `yaml:"difficulty"`
	Stability      float64 `yaml:"stability"`
	LastReviewedAt string  `yaml:"last_reviewed_at"`
}

// ReadReviewStates decodes a YAML (or JSON) list of review states.
func ReadReviewStates(r io.Reader) ([]ReviewStateRecord, error) {
	var docs []reviewStateDoc
	if err := yaml.NewDecoder(r).Decode(&docs); err != nil {
		if errors.Is(err, io.EOF) {
			return []ReviewStateRecord{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidReviewStates, err)
	}

	records := make([]ReviewStateRecord, 0, len(docs))
	for i, doc := range docs {
		rec, err := doc.record()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidReviewStates, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (d reviewStateDoc) record() (ReviewStateRecord, error) {
	hash := strings.TrimSpace(d.CardHash)
	if hash == "" {
		return ReviewStateRecord{}, errors.New("card_hash is required")
	}
	if d.ReviewCount < 0 {
		return ReviewStateRecord{}, errors.New("review_count cannot be negative")
	}

	due, err := optionalTime("due_date", d.DueDate)
	if err != nil {
		return ReviewStateRecord{}, err
	}
	last, err := optionalTime("last_reviewed_at", d.LastReviewedAt)
	if err != nil {
		return ReviewStateRecord{}, err
	}

	return ReviewStateRecord{
		Hash: hash,
		State: domain.ReviewState{
			ReviewCount:    d.ReviewCount,
			DueDate:        due,
			Interval:       d.Interval,
			Difficulty:     d.Difficulty,
			Stability:      d.Stability,
			LastReviewedAt: last,
		},
	}, nil
}

func optionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}

// ImportResult summarizes an ImportReviewStates call.
type ImportResult struct {
	Imported int
	Warnings []string
}

// ImportReviewStates saves each record over the stored review state of its
// card. Records for cards the store does not know are skipped with a warning;
// any other store failure aborts the import.
func (s *CardService) ImportReviewStates(ctx context.Context, records []ReviewStateRecord) (ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	var result ImportResult

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := s.store.SaveReviewState(ctx, rec.Hash, rec.State)
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, store.ErrCardNotFound):
			result.Warnings = append(result.Warnings, rec.Hash+" is not a registered card")
		default:
			return result, NewServiceError("import", "failed to save review state of "+rec.Hash, err)
		}
	}

	log.Info("review states imported",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", len(result.Warnings)))
	return result, nil
}
