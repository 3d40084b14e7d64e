package domain

import (
	"errors"
	"fmt"
)

// Card-specific validation errors
var (
	// ErrCardPathEmpty is returned when a card has no source file path.
	ErrCardPathEmpty = errors.New("card file path cannot be empty")

	// ErrCardRangeInvalid is returned when a card's line range is negative or inverted.
	ErrCardRangeInvalid = errors.New("card line range is invalid")

	// ErrCardHashEmpty is returned when a card has no content hash.
	ErrCardHashEmpty = errors.New("card hash cannot be empty")

	// ErrCardContentEmpty is returned when a card carries no content variant.
	ErrCardContentEmpty = errors.New("card content cannot be empty")

	// ErrEmptyQuestion is returned when a basic card has an empty question.
	ErrEmptyQuestion = errors.New("card question cannot be empty")

	// ErrEmptyAnswer is returned when a basic card has an empty answer.
	ErrEmptyAnswer = errors.New("card answer cannot be empty")

	// ErrClozeSpanMissing is returned when cloze text has no bracketed deletion span.
	ErrClozeSpanMissing = errors.New("cloze card has no bracketed span in []")

	// ErrClozeSpanInvalid is returned when a cloze span does not index a [...] pair.
	ErrClozeSpanInvalid = errors.New("cloze span does not index a bracket pair")
)

// LineRange is a half-open [Start, End) interval of 0-indexed lines within a file.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String renders the range the way it is fed into the card hash.
func (r LineRange) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// Card represents one flashcard extracted from one region of a markdown file.
// Cards are values: once extracted they are never mutated, and two cards are the
// same card exactly when their hashes match.
type Card struct {
	FilePath string      `json:"file_path"`
	Range    LineRange   `json:"file_card_range"`
	Content  CardContent `json:"-"`
	Hash     string      `json:"card_hash"`
}

// NewCard builds a Card for the given segment and derives its hash from the raw
// segment text and line range. Returns an error if validation fails.
func NewCard(path string, segment string, r LineRange, content CardContent) (Card, error) {
	card := Card{
		FilePath: path,
		Range:    r,
		Content:  content,
		Hash:     HashCard(segment, r.Start, r.End),
	}

	if err := card.Validate(); err != nil {
		return Card{}, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error wrapping ErrValidation if any field fails validation.
func (c Card) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func (c Card) validate() error {
	if c.FilePath == "" {
		return ErrCardPathEmpty
	}

	if c.Range.Start < 0 || c.Range.End < c.Range.Start {
		return ErrCardRangeInvalid
	}

	if c.Hash == "" {
		return ErrCardHashEmpty
	}

	if c.Content == nil {
		return ErrCardContentEmpty
	}

	return c.Content.Validate()
}

// Kind reports which content variant the card carries.
func (c Card) Kind() CardKind {
	if c.Content == nil {
		return ""
	}
	return c.Content.Kind()
}
