// Package postgres provides the PostgreSQL implementation of store.CardStore
// for decks shared between machines. It handles connection pooling, schema
// migrations and the mapping between domain cards and database records.
package postgres
