package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/store"
)

// NoLimit disables a DueLimits bound.
const NoLimit = -1

// DueLimits bounds a drill session. Negative values mean no limit.
type DueLimits struct {
	// CardLimit is the maximum number of cards in the queue.
	CardLimit int

	// NewCardLimit is the maximum number of never-reviewed cards in the queue.
	NewCardLimit int
}

// Unlimited returns limits that admit every due card.
func Unlimited() DueLimits {
	return DueLimits{CardLimit: NoLimit, NewCardLimit: NoLimit}
}

// DueQueue returns the cards among cards that are due now, in the store's
// due order, trimmed to limits. New cards over NewCardLimit are skipped so
// that reviewed cards further down the queue still get a place.
func (s *CardService) DueQueue(ctx context.Context, cards []domain.Card, limits DueLimits) ([]store.CardRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.store.DueCards(ctx, s.opts.Now(), cardHashes(cards))
	if err != nil {
		return nil, NewServiceError("due_queue", "failed to load due cards", err)
	}

	queue := applyLimits(records, limits)
	log.Debug("due queue built",
		slog.Int("due", len(records)),
		slog.Int("queued", len(queue)))
	return queue, nil
}

func applyLimits(records []store.CardRecord, limits DueLimits) []store.CardRecord {
	queue := make([]store.CardRecord, 0, len(records))
	newCards := 0

	for _, rec := range records {
		if limits.CardLimit >= 0 && len(queue) >= limits.CardLimit {
			break
		}
		if rec.State.IsNew() {
			if limits.NewCardLimit >= 0 && newCards >= limits.NewCardLimit {
				continue
			}
			newCards++
		}
		queue = append(queue, rec)
	}

	return queue
}
