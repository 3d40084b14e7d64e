// Package store defines the persistence contract for cards and their review
// state. These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing extraction and statistics to remain
// independent of specific database technologies.
//
// The row codec in this package is shared by the SQL backends so a card
// round-trips identically through sqlite and PostgreSQL.
package store
