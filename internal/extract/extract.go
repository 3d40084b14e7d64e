package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// maxLineSize bounds a single line of a card file.
const maxLineSize = 1 << 20

// Options control how malformed segments are treated and how many files are
// read concurrently by FromFiles.
type Options struct {
	// SkipInvalid keeps extracting after a malformed segment. The good cards are
	// returned together with an *InvalidSegmentsError listing what was skipped.
	// When false, the first malformed segment fails the whole file.
	SkipInvalid bool

	// Workers is the number of files FromFiles reads at once. Values below 1
	// mean 1.
	Workers int
}

// SegmentError reports a segment that could not become a card.
type SegmentError struct {
	Path  string
	Range domain.LineRange
	Err   error
}

// Error implements the error interface for SegmentError.
func (e *SegmentError) Error() string {
	return fmt.Sprintf("%s: lines %d-%d: %v", e.Path, e.Range.Start+1, e.Range.End, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SegmentError) Unwrap() error {
	return e.Err
}

// InvalidSegmentsError lists the segments skipped in SkipInvalid mode.
type InvalidSegmentsError struct {
	Path     string
	Segments []*SegmentError
}

// Error implements the error interface for InvalidSegmentsError.
func (e *InvalidSegmentsError) Error() string {
	msgs := make([]string, len(e.Segments))
	for i, s := range e.Segments {
		msgs[i] = s.Error()
	}
	return fmt.Sprintf("%s: skipped %d malformed card(s): %s",
		e.Path, len(e.Segments), strings.Join(msgs, "; "))
}

// Unwrap exposes every skipped segment to errors.Is/errors.As.
func (e *InvalidSegmentsError) Unwrap() []error {
	errs := make([]error, len(e.Segments))
	for i, s := range e.Segments {
		errs[i] = s
	}
	return errs
}

// collector finalizes segments into cards according to the options.
type collector struct {
	path    string
	opts    Options
	cards   []domain.Card
	invalid []*SegmentError
}

func (c *collector) add(seg segment) error {
	card, err := ContentToCard(c.path, seg.text, seg.r.Start, seg.r.End)
	if err != nil {
		segErr := &SegmentError{Path: c.path, Range: seg.r, Err: err}
		if !c.opts.SkipInvalid {
			return segErr
		}
		c.invalid = append(c.invalid, segErr)
		return nil
	}
	c.cards = append(c.cards, card)
	return nil
}

func (c *collector) result() ([]domain.Card, error) {
	if len(c.invalid) > 0 {
		return c.cards, &InvalidSegmentsError{Path: c.path, Segments: c.invalid}
	}
	return c.cards, nil
}

// FromLines extracts the cards of one file given its lines, in file order.
func FromLines(path string, lines []string, opts Options) ([]domain.Card, error) {
	c := &collector{path: path, opts: opts}
	seg := newSegmenter(c.add)

	for idx, line := range lines {
		if err := seg.step(idx, line); err != nil {
			return nil, err
		}
	}
	if err := seg.finish(); err != nil {
		return nil, err
	}

	return c.result()
}

// FromReader extracts the cards of one file, reading it line by line.
// Line terminators ("\n" or "\r\n") are not part of the line.
func FromReader(path string, r io.Reader, opts Options) ([]domain.Card, error) {
	c := &collector{path: path, opts: opts}
	seg := newSegmenter(c.add)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	idx := 0
	for scanner.Scan() {
		if err := seg.step(idx, scanner.Text()); err != nil {
			return nil, err
		}
		idx++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := seg.finish(); err != nil {
		return nil, err
	}

	return c.result()
}

// FromFile opens path and extracts its cards.
func FromFile(path string, opts Options) ([]domain.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open card file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return FromReader(path, f, opts)
}

// IsInvalidSegments reports whether err only describes skipped segments, as
// opposed to a read failure or a strict-mode abort.
func IsInvalidSegments(err error) bool {
	var inv *InvalidSegmentsError
	return errors.As(err, &inv)
}
