package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/scry-cards/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	constraint := func(ext sqlite3.ErrNoExtended) error {
		return sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: ext}
	}
	other := errors.New("disk on fire")

	testCases := []struct {
		name    string
		err     error
		wantErr error
		fk      bool
	}{
		{name: "no rows", err: sql.ErrNoRows, wantErr: store.ErrNotFound},
		{name: "unique", err: constraint(sqlite3.ErrConstraintUnique), wantErr: store.ErrDuplicate},
		{name: "primary key", err: constraint(sqlite3.ErrConstraintPrimaryKey), wantErr: store.ErrDuplicate},
		{name: "foreign key", err: constraint(sqlite3.ErrConstraintForeignKey), wantErr: store.ErrInvalidEntity, fk: true},
		{name: "check", err: constraint(sqlite3.ErrConstraintCheck), wantErr: store.ErrInvalidEntity},
		{name: "not null", err: constraint(sqlite3.ErrConstraintNotNull), wantErr: store.ErrInvalidEntity},
		{name: "unmapped", err: other, wantErr: other},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err)
			assert.ErrorIs(t, mapped, tc.wantErr)
			assert.Equal(t, tc.fk, IsForeignKeyViolation(tc.err))
		})
	}

	assert.NoError(t, MapError(nil))
}

func TestDSN(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"file:/tmp/cards.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL",
		DSN("/tmp/cards.db"))
}
