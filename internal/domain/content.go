package domain

// CardKind names a CardContent variant. It is the value persisted in the
// card_type column.
type CardKind string

// Card content variants
const (
	CardKindBasic CardKind = "basic"
	CardKindCloze CardKind = "cloze"
)

// CardContent is the closed set of things a card can ask: a Basic question and
// answer, or a Cloze deletion. Only this package can add variants.
type CardContent interface {
	Kind() CardKind
	Validate() error
	isCardContent()
}

// Basic is a question/answer card.
type Basic struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Cloze is a fill-in-the-blank card. Start and End are byte offsets into Text of
// the first '[' and its closing ']'.
type Cloze struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

var (
	_ CardContent = Basic{}
	_ CardContent = Cloze{}
)

func (Basic) isCardContent() {}
func (Cloze) isCardContent() {}

// Kind implements CardContent.
func (Basic) Kind() CardKind { return CardKindBasic }

// Kind implements CardContent.
func (Cloze) Kind() CardKind { return CardKindCloze }

// Validate implements CardContent.
func (b Basic) Validate() error {
	if b.Question == "" {
		return ErrEmptyQuestion
	}
	if b.Answer == "" {
		return ErrEmptyAnswer
	}
	return nil
}

// Validate implements CardContent.
func (c Cloze) Validate() error {
	if c.Start < 0 || c.End <= c.Start || c.End >= len(c.Text) {
		return ErrClozeSpanInvalid
	}
	if c.Text[c.Start] != '[' || c.Text[c.End] != ']' {
		return ErrClozeSpanInvalid
	}
	return nil
}

// Hidden returns the text inside the deletion span, without brackets.
func (c Cloze) Hidden() string {
	return c.Text[c.Start+1 : c.End]
}

// MatchContent dispatches on the content variant. Both handlers are required,
// so every caller handles every variant.
func MatchContent[T any](c CardContent, basic func(Basic) T, cloze func(Cloze) T) T {
	switch v := c.(type) {
	case Basic:
		return basic(v)
	case Cloze:
		return cloze(v)
	default:
		// ALLOW-PANIC: CardContent is sealed; reaching here means a nil content.
		panic("domain: unknown card content variant")
	}
}
