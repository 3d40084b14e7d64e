// Package srs implements the forward-looking half of spaced repetition: the
// forgetting curve that turns elapsed time and a card's stability into a
// retrievability probability. Grade-update rules (how a review changes
// stability, difficulty, or the due date) live with the scheduler that owns
// the review state, not here.
package srs
