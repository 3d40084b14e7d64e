package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/stats"
)

// minShardSize is the smallest number of cards worth aggregating on a
// separate goroutine.
const minShardSize = 1024

// Stats aggregates statistics over cards. Cards the store does not know
// contribute the zero review state. TotalCardsInDB is the store's card count.
func (s *CardService) Stats(ctx context.Context, cards []domain.Card) (*stats.CardStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	states, err := s.store.ReviewStates(ctx, cardHashes(cards))
	if err != nil {
		return nil, NewServiceError("stats", "failed to load review states", err)
	}

	total, err := s.store.CountCards(ctx)
	if err != nil {
		return nil, NewServiceError("stats", "failed to count stored cards", err)
	}

	result, err := s.aggregate(cards, states)
	if err != nil {
		return nil, NewServiceError("stats", "failed to merge partial statistics", err)
	}
	result.TotalCardsInDB = total

	log.Debug("statistics computed",
		slog.Int64("num_cards", result.NumCards),
		slog.Int64("total_cards_in_db", total),
		slog.Int64("due_cards", result.DueCards))
	return result, nil
}

// aggregate folds cards into one CardStats. Large inputs are split into
// shards aggregated concurrently against the same clock reading and merged.
func (s *CardService) aggregate(cards []domain.Card, states map[string]domain.ReviewState) (*stats.CardStats, error) {
	now := s.opts.Now()

	workers := s.opts.Extract.Workers
	if workers < 1 {
		workers = 1
	}
	shards := min(workers, len(cards)/minShardSize)
	if shards <= 1 {
		agg := stats.NewAggregator(s.opts.Stats, s.opts.Model, now)
		for _, card := range cards {
			agg.Update(card, states[card.Hash])
		}
		return agg.Stats(), nil
	}

	partials := make([]*stats.CardStats, shards)
	size := (len(cards) + shards - 1) / shards

	var wg sync.WaitGroup
	for i := 0; i < shards; i++ {
		lo := min(i*size, len(cards))
		hi := min(lo+size, len(cards))

		wg.Add(1)
		go func(i int, part []domain.Card) {
			defer wg.Done()
			agg := stats.NewAggregator(s.opts.Stats, s.opts.Model, now)
			for _, card := range part {
				agg.Update(card, states[card.Hash])
			}
			partials[i] = agg.Stats()
		}(i, cards[lo:hi])
	}
	wg.Wait()

	result := partials[0]
	for _, p := range partials[1:] {
		if err := result.Merge(p); err != nil {
			return nil, err
		}
	}
	return result, nil
}
