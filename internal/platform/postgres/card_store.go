package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// The store takes ownership of db and closes it in Close.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db *sql.DB, logger *slog.Logger) *PostgresCardStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// DB returns the underlying connection pool.
func (s *PostgresCardStore) DB() *sql.DB {
	return s.db
}

// AddCardsBatch implements store.CardStore.AddCardsBatch
// It prepares one insert statement and executes it for every card inside a
// single transaction. Cards whose hash is already stored are skipped.
func (s *PostgresCardStore) AddCardsBatch(ctx context.Context, cards []domain.Card) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	rows := make([]store.CardRow, 0, len(cards))
	for _, card := range cards {
		row, err := store.ToRow(card)
		if err != nil {
			log.Warn("card validation failed during batch insert",
				slog.String("error", err.Error()),
				slog.String("file_path", card.FilePath),
				slog.String("card_hash", card.Hash))
			return err
		}
		rows = append(rows, row)
	}

	var inserted int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cards (card_hash, file_path, range_start, range_end, kind, content)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (card_hash) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare card insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, row := range rows {
			result, err := stmt.ExecContext(ctx,
				row.Hash,
				row.FilePath,
				row.RangeStart,
				row.RangeEnd,
				row.Kind,
				string(row.Content),
			)
			if err != nil {
				return MapError(err)
			}
			if n, err := result.RowsAffected(); err == nil {
				inserted += n
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to add cards",
			slog.String("error", err.Error()),
			slog.Int("card_count", len(rows)))
		return store.NewStoreError("card", "add_batch", "failed to add cards", err)
	}

	log.Debug("cards added",
		slog.Int("card_count", len(rows)),
		slog.Int64("inserted", inserted))
	return nil
}

// SaveReviewState implements store.CardStore.SaveReviewState
// Returns store.ErrCardNotFound if no card has the given hash (foreign key violation).
func (s *PostgresCardStore) SaveReviewState(ctx context.Context, hash string, state domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	row := store.ToStateRow(state)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_states
			(card_hash, review_count, due_date, interval_days, difficulty, stability, last_reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (card_hash) DO UPDATE SET
			review_count = EXCLUDED.review_count,
			due_date = EXCLUDED.due_date,
			interval_days = EXCLUDED.interval_days,
			difficulty = EXCLUDED.difficulty,
			stability = EXCLUDED.stability,
			last_reviewed_at = EXCLUDED.last_reviewed_at
	`,
		hash,
		row.ReviewCount,
		row.DueDate,
		row.Interval,
		row.Difficulty,
		row.Stability,
		row.LastReviewedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("review state for unknown card", slog.String("card_hash", hash))
			return fmt.Errorf("%w: %s", store.ErrCardNotFound, hash)
		}
		log.Error("failed to save review state",
			slog.String("error", err.Error()),
			slog.String("card_hash", hash))
		return store.NewStoreError("review_state", "save", "failed to save review state", MapError(err))
	}

	return nil
}

// ReviewStates implements store.CardStore.ReviewStates
func (s *PostgresCardStore) ReviewStates(ctx context.Context, hashes []string) (map[string]domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	states := make(map[string]domain.ReviewState, len(hashes))
	if len(hashes) == 0 {
		return states, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.card_hash, COALESCE(r.review_count, 0), r.due_date, COALESCE(r.interval_days, 0),
			COALESCE(r.difficulty, 0), COALESCE(r.stability, 0), r.last_reviewed_at
		FROM cards c
		LEFT JOIN review_states r ON r.card_hash = c.card_hash
		WHERE c.card_hash = ANY($1)
	`, hashes)
	if err != nil {
		log.Error("failed to load review states", slog.String("error", err.Error()))
		return nil, store.NewStoreError("review_state", "lookup", "failed to load review states", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			hash  string
			state store.StateRow
		)
		if err := rows.Scan(
			&hash,
			&state.ReviewCount,
			&state.DueDate,
			&state.Interval,
			&state.Difficulty,
			&state.Stability,
			&state.LastReviewedAt,
		); err != nil {
			return nil, store.NewStoreError("review_state", "lookup", "failed to scan review state", err)
		}
		states[hash] = state.State()
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("review_state", "lookup", "failed to read review states", MapError(err))
	}

	return states, nil
}

// DueCards implements store.CardStore.DueCards
func (s *PostgresCardStore) DueCards(ctx context.Context, now time.Time, hashes []string) ([]store.CardRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if len(hashes) == 0 {
		return []store.CardRecord{}, nil
	}

	query := `
		SELECT ` + store.RecordColumns + `
		FROM cards c
		LEFT JOIN review_states r ON r.card_hash = c.card_hash
		WHERE c.card_hash = ANY($1)
			AND (r.due_date IS NULL OR r.due_date <= $2)
		ORDER BY r.due_date IS NULL, r.due_date, c.id
	`
	rows, err := s.db.QueryContext(ctx, query, hashes, now.UTC())
	if err != nil {
		log.Error("failed to query due cards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "due", "failed to query due cards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	records := make([]store.CardRecord, 0)
	for rows.Next() {
		rec, err := store.ScanRecord(rows)
		if err != nil {
			log.Error("failed to decode due card", slog.String("error", err.Error()))
			return nil, store.NewStoreError("card", "due", "failed to decode card", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", "due", "failed to read due cards", MapError(err))
	}

	return records, nil
}

// CountCards implements store.CardStore.CountCards
func (s *PostgresCardStore) CountCards(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, store.NewStoreError("card", "count", "failed to count cards", MapError(err))
	}
	return n, nil
}

// Close implements store.CardStore.Close
func (s *PostgresCardStore) Close() error {
	return s.db.Close()
}
