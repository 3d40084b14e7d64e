package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// Line prefixes recognized inside a segment.
const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	clozePrefix    = "C:"
)

// ErrMalformedCard is returned when a segment is neither a question/answer
// pair nor a cloze with a bracketed span.
var ErrMalformedCard = errors.New("unable to create card")

// trimLine trims surrounding whitespace and reports whether anything is left.
func trimLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	return trimmed, trimmed != ""
}

// cardLines holds the last value seen for each prefix in a segment.
type cardLines struct {
	question, answer, cloze string
	hasQuestion, hasAnswer  bool
	hasCloze                bool
}

// parseCardLines scans a segment for Q:, A:, and C: lines. Later lines of the
// same kind replace earlier ones, including with nothing: a later "A:" with an
// empty remainder clears a previous answer.
func parseCardLines(contents string) cardLines {
	var out cardLines

	for _, raw := range strings.Split(contents, "\n") {
		line, ok := trimLine(raw)
		if !ok {
			continue
		}

		switch {
		case strings.HasPrefix(line, questionPrefix):
			out.question, out.hasQuestion = trimLine(line[len(questionPrefix):])
		case strings.HasPrefix(line, answerPrefix):
			out.answer, out.hasAnswer = trimLine(line[len(answerPrefix):])
		case strings.HasPrefix(line, clozePrefix):
			out.cloze, out.hasCloze = trimLine(line[len(clozePrefix):])
		}
	}

	return out
}

// FindClozeRanges returns the byte offsets of every [...] pair in text. A '['
// opens a span only when none is open; a ']' closes the open span. Brackets
// do not nest: "[a [b] c]" yields the single span around "a [b".
func FindClozeRanges(text string) [][2]int {
	var ranges [][2]int
	start := -1

	for i, ch := range text {
		switch {
		case ch == '[' && start < 0:
			start = i
		case ch == ']' && start >= 0:
			ranges = append(ranges, [2]int{start, i})
			start = -1
		}
	}

	return ranges
}

// ContentToCard classifies one segment and builds its card. start and end are
// the segment's half-open line range in path; together with the raw contents
// they determine the card hash.
func ContentToCard(path, contents string, start, end int) (domain.Card, error) {
	lines := parseCardLines(contents)
	r := domain.LineRange{Start: start, End: end}

	var content domain.CardContent
	switch {
	case lines.hasQuestion && lines.hasAnswer:
		content = domain.Basic{Question: lines.question, Answer: lines.answer}
	case lines.hasCloze:
		cloze, err := NewCloze(lines.cloze)
		if err != nil {
			return domain.Card{}, err
		}
		content = cloze
	default:
		return domain.Card{}, fmt.Errorf("%w from %q", ErrMalformedCard, contents)
	}

	return domain.NewCard(path, contents, r, content)
}

// NewCloze builds cloze content for text, hiding its first [...] span.
func NewCloze(text string) (domain.Cloze, error) {
	text, ok := trimLine(text)
	if !ok {
		return domain.Cloze{}, fmt.Errorf("%w: empty cloze text", ErrMalformedCard)
	}

	spans := FindClozeRanges(text)
	if len(spans) == 0 {
		return domain.Cloze{}, fmt.Errorf("%w: %q", domain.ErrClozeSpanMissing, text)
	}

	return domain.Cloze{Text: text, Start: spans[0][0], End: spans[0][1]}, nil
}
