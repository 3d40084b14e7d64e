// Package stats folds per-card review state into population statistics:
// lifecycle counts, due-date buckets, and difficulty and retrievability
// histograms.
//
// An Aggregator owns one CardStats for one pass and evaluates every card
// against the single "now" it captured at construction. Every update is a
// commutative counter increment, so the result does not depend on the order
// of the cards, and partial results built over disjoint card sets can be
// combined with CardStats.Merge.
package stats
