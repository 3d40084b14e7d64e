package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/store"
)

const cardColumnCount = 6

// SQLiteCardStore implements the store.CardStore interface
// using a SQLite database as the storage backend.
type SQLiteCardStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteCardStore creates a new SQLite implementation of the CardStore interface.
// The store takes ownership of db and closes it in Close.
// If logger is nil, a default logger will be used.
func NewSQLiteCardStore(db *sql.DB, logger *slog.Logger) *SQLiteCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_card_store")),
	}
}

// Ensure SQLiteCardStore implements store.CardStore interface
var _ store.CardStore = (*SQLiteCardStore)(nil)

// DB returns the underlying database handle.
func (s *SQLiteCardStore) DB() *sql.DB {
	return s.db
}

// AddCardsBatch implements store.CardStore.AddCardsBatch.
// Cards are inserted in chunks of multi-row INSERT statements inside one
// transaction; hashes that already exist are skipped.
func (s *SQLiteCardStore) AddCardsBatch(ctx context.Context, cards []domain.Card) error {
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

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, chunk := range store.Chunk(rows, store.DefaultChunkSize) {
			query, args := insertCardsQuery(chunk)
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return MapError(err)
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

	log.Debug("cards added", slog.Int("card_count", len(rows)))
	return nil
}

func insertCardsQuery(rows []store.CardRow) (string, []any) {
	var b strings.Builder
	b.WriteString(`INSERT INTO cards (card_hash, file_path, range_start, range_end, kind, content) VALUES `)

	args := make([]any, 0, len(rows)*cardColumnCount)
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args, row.Hash, row.FilePath, row.RangeStart, row.RangeEnd, row.Kind, string(row.Content))
	}
	b.WriteString(` ON CONFLICT(card_hash) DO NOTHING`)

	return b.String(), args
}

// SaveReviewState implements store.CardStore.SaveReviewState.
func (s *SQLiteCardStore) SaveReviewState(ctx context.Context, hash string, state domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	row := store.ToStateRow(state)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_states
			(card_hash, review_count, due_date, interval_days, difficulty, stability, last_reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(card_hash) DO UPDATE SET
			review_count = excluded.review_count,
			due_date = excluded.due_date,
			interval_days = excluded.interval_days,
			difficulty = excluded.difficulty,
			stability = excluded.stability,
			last_reviewed_at = excluded.last_reviewed_at`,
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

// ReviewStates implements store.CardStore.ReviewStates.
// Large hash lists are looked up in chunks within one read transaction.
func (s *SQLiteCardStore) ReviewStates(ctx context.Context, hashes []string) (map[string]domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	states := make(map[string]domain.ReviewState, len(hashes))
	if len(hashes) == 0 {
		return states, nil
	}

	err := store.RunInReadTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, chunk := range store.Chunk(hashes, store.DefaultChunkSize) {
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(chunk)), ", ")
			query := `
				SELECT c.card_hash, COALESCE(r.review_count, 0), r.due_date, COALESCE(r.interval_days, 0),
					COALESCE(r.difficulty, 0), COALESCE(r.stability, 0), r.last_reviewed_at
				FROM cards c
				LEFT JOIN review_states r ON r.card_hash = c.card_hash
				WHERE c.card_hash IN (` + placeholders + `)`

			args := make([]any, len(chunk))
			for i, h := range chunk {
				args[i] = h
			}

			if err := scanStates(ctx, tx, query, args, states); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to load review states",
			slog.String("error", err.Error()),
			slog.Int("hash_count", len(hashes)))
		return nil, store.NewStoreError("review_state", "lookup", "failed to load review states", err)
	}

	return states, nil
}

func scanStates(ctx context.Context, q store.DBTX, query string, args []any, into map[string]domain.ReviewState) error {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
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
			return err
		}
		into[hash] = state.State()
	}
	return rows.Err()
}

// DueCards implements store.CardStore.DueCards.
// The hash list is passed as a single JSON array parameter and expanded with
// json_each, so the query has a fixed number of bind variables.
func (s *SQLiteCardStore) DueCards(ctx context.Context, now time.Time, hashes []string) ([]store.CardRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if len(hashes) == 0 {
		return []store.CardRecord{}, nil
	}

	list, err := json.Marshal(hashes)
	if err != nil {
		return nil, fmt.Errorf("encode hash list: %w", err)
	}

	query := `
		SELECT ` + store.RecordColumns + `
		FROM cards c
		LEFT JOIN review_states r ON r.card_hash = c.card_hash
		WHERE c.card_hash IN (SELECT value FROM json_each(?))
			AND (r.due_date IS NULL OR r.due_date <= ?)
		ORDER BY r.due_date IS NULL, r.due_date, c.id`

	rows, err := s.db.QueryContext(ctx, query, string(list), now.UTC())
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

	log.Debug("due cards loaded",
		slog.Int("requested", len(hashes)),
		slog.Int("due", len(records)))
	return records, nil
}

// CountCards implements store.CardStore.CountCards.
func (s *SQLiteCardStore) CountCards(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, store.NewStoreError("card", "count", "failed to count cards", MapError(err))
	}
	return n, nil
}

// Close implements store.CardStore.Close.
func (s *SQLiteCardStore) Close() error {
	return s.db.Close()
}
