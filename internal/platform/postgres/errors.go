package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/scry-cards/internal/store"
)

// Integrity constraint violation codes (SQLSTATE class 23).
const (
	notNullViolationCode    = "23502"
	foreignKeyViolationCode = "23503"
	uniqueViolationCode     = "23505"
	checkViolationCode      = "23514"
)

// violations maps the constraint violations the card schema can raise to the
// store error they become and a description for the message.
var violations = map[string]struct {
	target error
	what   string
}{
	uniqueViolationCode:     {store.ErrDuplicate, "unique violation"},
	foreignKeyViolationCode: {store.ErrInvalidEntity, "foreign key violation"},
	checkViolationCode:      {store.ErrInvalidEntity, "check constraint violation"},
	notNullViolationCode:    {store.ErrInvalidEntity, "not null violation"},
}

// MapError translates a database error into the matching store error,
// keeping the original error text. Errors it does not recognize are returned
// unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	pgErr, ok := asPgError(err)
	if !ok {
		return err
	}
	v, known := violations[pgErr.Code]
	if !known {
		return err
	}

	subject := pgErr.ConstraintName
	if pgErr.Code == notNullViolationCode {
		subject = pgErr.ColumnName
	}
	return fmt.Errorf("%w: %s (%s): %v", v.target, v.what, subject, err)
}

// IsForeignKeyViolation reports whether err is a foreign key violation. For
// review states this means the referenced card is not stored.
func IsForeignKeyViolation(err error) bool {
	return SQLState(err) == foreignKeyViolationCode
}

// SQLState returns the SQLSTATE code of a PostgreSQL error in err's chain, or
// "" when there is none.
func SQLState(err error) string {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code
	}
	return ""
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
