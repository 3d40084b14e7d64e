// Package service contains the application use cases: registering card
// files with the store, computing statistics over a set of cards, building
// the due queue for a drill session, and appending new cards to files.
//
// Services receive their dependencies through constructor injection and
// depend only on the store interface, never on a concrete backend. Errors
// from lower layers are wrapped in ServiceError so callers can see which
// operation failed while errors.Is/errors.As still reach the cause.
package service
