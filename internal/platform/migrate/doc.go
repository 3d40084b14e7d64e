// Package migrate applies the embedded SQL migrations of a store backend
// with goose. Both backends record applied versions in the schema_migrations
// table.
package migrate
