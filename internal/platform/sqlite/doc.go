// Package sqlite implements store.CardStore on a local SQLite database file.
//
// This is the default backend: the database lives in the user's data
// directory, is created on first use, and is migrated to the latest schema
// every time it is opened. Connections run in WAL mode with foreign keys
// enforced, so a review state can only ever reference a stored card.
package sqlite
