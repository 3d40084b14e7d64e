package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/yuin/goldmark"
)

// ClozeBlank replaces the hidden span of a cloze card on the question side.
const ClozeBlank = "[...]"

var markdown = goldmark.New()

// CardMarkdown returns the card-file text for content: "Q:"/"A:" lines for a
// basic card, a single "C:" line for a cloze card. The text ends in a newline.
func CardMarkdown(content domain.CardContent) string {
	return domain.MatchContent(content,
		func(b domain.Basic) string {
			return fmt.Sprintf("Q: %s\nA: %s\n", b.Question, b.Answer)
		},
		func(c domain.Cloze) string {
			return fmt.Sprintf("C: %s\n", c.Text)
		},
	)
}

// Prompt is the question side of a card. Cloze cards show their text with
// the hidden span blanked out.
func Prompt(content domain.CardContent) string {
	return domain.MatchContent(content,
		func(b domain.Basic) string { return b.Question },
		func(c domain.Cloze) string {
			return c.Text[:c.Start] + ClozeBlank + c.Text[c.End+1:]
		},
	)
}

// Answer is the answer side of a card: the answer of a basic card or the
// hidden text of a cloze card.
func Answer(content domain.CardContent) string {
	return domain.MatchContent(content,
		func(b domain.Basic) string { return b.Answer },
		func(c domain.Cloze) string { return c.Hidden() },
	)
}

// CardText renders a card for the terminal: its source location, prompt and
// answer.
func CardText(card domain.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d\n", card.FilePath, card.Range.Start+1)
	fmt.Fprintf(&b, "  %s\n", Prompt(card.Content))
	fmt.Fprintf(&b, "  > %s\n", Answer(card.Content))
	return b.String()
}

// CardHTML renders the prompt and answer of a card as HTML fragments.
// Both sides are treated as markdown, so inline code and emphasis in card
// text survive; raw HTML in card text is not passed through.
func CardHTML(card domain.Card) (prompt, answer string, err error) {
	prompt, err = markdownToHTML(Prompt(card.Content))
	if err != nil {
		return "", "", err
	}
	answer, err = markdownToHTML(Answer(card.Content))
	if err != nil {
		return "", "", err
	}
	return prompt, answer, nil
}

func markdownToHTML(input string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(input), &buf); err != nil {
		return html.EscapeString(input), fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
