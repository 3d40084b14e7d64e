// Package domain contains the core entities of the flashcard system: cards
// extracted from markdown files, their content variants, their content-derived
// identity, and the review state a store keeps for each of them. It has no
// knowledge of files, databases, or schedulers.
package domain
