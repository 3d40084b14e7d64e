package extract

import (
	"strings"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// segment is one finished run of lines and its half-open line range.
type segment struct {
	text string
	r    domain.LineRange
}

// segmenter folds lines into segments. Feed it every line in order with step,
// then call finish once.
type segmenter struct {
	buf   strings.Builder
	start int
	next  int
	emit  func(segment) error
}

func newSegmenter(emit func(segment) error) *segmenter {
	return &segmenter{emit: emit}
}

// isSegmentMarker reports whether a raw, untrimmed line opens a new segment.
// Answer lines never do: they belong to the question before them.
func isSegmentMarker(line string) bool {
	return strings.HasPrefix(line, questionPrefix) || strings.HasPrefix(line, clozePrefix)
}

// step consumes the line at index idx. A marker line emits the pending
// segment, if any, and starts the next one.
func (s *segmenter) step(idx int, line string) error {
	if isSegmentMarker(line) {
		if s.buf.Len() > 0 {
			if err := s.flush(idx); err != nil {
				return err
			}
		}
		s.start = idx
	}

	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	s.next = idx + 1
	return nil
}

// finish emits whatever is left, ending after the last line seen.
func (s *segmenter) finish() error {
	if s.buf.Len() == 0 {
		return nil
	}
	return s.flush(s.next)
}

func (s *segmenter) flush(end int) error {
	seg := segment{
		text: s.buf.String(),
		r:    domain.LineRange{Start: s.start, End: end},
	}
	s.buf.Reset()
	return s.emit(seg)
}
