package store

import (
	"context"
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// CardRecord is a stored card together with its review state. Cards that were
// never reviewed carry the zero ReviewState.
type CardRecord struct {
	Card  domain.Card
	State domain.ReviewState
}

// CardStore defines the interface for card data persistence.
// Cards are keyed by their content hash.
type CardStore interface {
	// AddCardsBatch stores cards that are not yet known. Cards whose hash is
	// already stored are left untouched, so re-registering an unchanged file
	// is a no-op. The batch is applied in a single transaction.
	// Returns ErrInvalidEntity if any card fails domain validation.
	AddCardsBatch(ctx context.Context, cards []domain.Card) error

	// SaveReviewState inserts or replaces the review state of a stored card.
	// Returns ErrCardNotFound if no card has the given hash.
	SaveReviewState(ctx context.Context, hash string, state domain.ReviewState) error

	// ReviewStates returns the review state of every given hash that is
	// stored. Stored cards without review history map to the zero state;
	// unknown hashes are absent from the result.
	ReviewStates(ctx context.Context, hashes []string) (map[string]domain.ReviewState, error)

	// DueCards returns the stored cards among hashes that are due at now: the
	// due date is unset or not after now. Cards with a due date come first,
	// earliest first, followed by the remaining cards in insertion order.
	DueCards(ctx context.Context, now time.Time, hashes []string) ([]CardRecord, error)

	// CountCards returns the number of stored cards.
	CountCards(ctx context.Context) (int64, error)

	// Close releases the underlying database.
	Close() error
}
