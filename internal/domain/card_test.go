package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution

	segment := "Q: what?\nA: yes\n"
	r := LineRange{Start: 0, End: 2}

	card, err := NewCard("deck.md", segment, r, Basic{Question: "what?", Answer: "yes"})
	require.NoError(t, err)

	assert.Equal(t, "deck.md", card.FilePath)
	assert.Equal(t, r, card.Range)
	assert.Equal(t, HashCard(segment, 0, 2), card.Hash)
	assert.Equal(t, CardKindBasic, card.Kind())

	_, err = NewCard("", segment, r, Basic{Question: "what?", Answer: "yes"})
	assert.ErrorIs(t, err, ErrCardPathEmpty)

	_, err = NewCard("deck.md", segment, LineRange{Start: 3, End: 1}, Basic{Question: "q", Answer: "a"})
	assert.ErrorIs(t, err, ErrCardRangeInvalid)

	_, err = NewCard("deck.md", segment, r, nil)
	assert.ErrorIs(t, err, ErrCardContentEmpty)
}

func TestNewCardIdentityIgnoresPath(t *testing.T) {
	t.Parallel() // Enable parallel execution

	segment := "Q: what?\nA: yes\n"
	r := LineRange{Start: 0, End: 2}
	content := Basic{Question: "what?", Answer: "yes"}

	a, err := NewCard("deck.md", segment, r, content)
	require.NoError(t, err)
	b, err := NewCard("notes/copy.md", segment, r, content)
	require.NoError(t, err)
	assert.Equal(t, a.Hash, b.Hash)

	moved, err := NewCard("deck.md", segment, LineRange{Start: 2, End: 4}, content)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash, moved.Hash)
}

func TestBasicValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name    string
		content Basic
		wantErr error
	}{
		{name: "valid", content: Basic{Question: "q", Answer: "a"}},
		{name: "empty question", content: Basic{Answer: "a"}, wantErr: ErrEmptyQuestion},
		{name: "empty answer", content: Basic{Question: "q"}, wantErr: ErrEmptyAnswer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.content.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestClozeValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name    string
		content Cloze
		valid   bool
	}{
		{name: "valid span", content: Cloze{Text: "ping? [pong]", Start: 6, End: 11}, valid: true},
		{name: "start not bracket", content: Cloze{Text: "ping? [pong]", Start: 5, End: 11}},
		{name: "end out of range", content: Cloze{Text: "ping? [pong]", Start: 6, End: 12}},
		{name: "inverted", content: Cloze{Text: "ping? [pong]", Start: 11, End: 6}},
		{name: "empty text", content: Cloze{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.content.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrClozeSpanInvalid)
		})
	}
}

func TestClozeHidden(t *testing.T) {
	t.Parallel() // Enable parallel execution

	c := Cloze{Text: "ping? [pong]", Start: 6, End: 11}
	assert.Equal(t, "pong", c.Hidden())
}

func TestMatchContent(t *testing.T) {
	t.Parallel() // Enable parallel execution

	describe := func(c CardContent) string {
		return MatchContent(c,
			func(b Basic) string { return "basic:" + b.Question },
			func(c Cloze) string { return "cloze:" + c.Hidden() },
		)
	}

	assert.Equal(t, "basic:q", describe(Basic{Question: "q", Answer: "a"}))
	assert.Equal(t, "cloze:x", describe(Cloze{Text: "[x]", Start: 0, End: 2}))
	assert.Panics(t, func() { describe(nil) })
}

func TestReviewState(t *testing.T) {
	t.Parallel() // Enable parallel execution

	now := mustTime(t, "2025-03-10T12:00:00Z")
	past := now.Add(-1)
	future := now.AddDate(0, 0, 1)

	var fresh ReviewState
	assert.True(t, fresh.IsNew())
	assert.True(t, fresh.IsDue(now), "no due date means due now")

	assert.True(t, ReviewState{ReviewCount: 2, DueDate: &past}.IsDue(now))
	assert.True(t, ReviewState{ReviewCount: 2, DueDate: &now}.IsDue(now))
	assert.False(t, ReviewState{ReviewCount: 2, DueDate: &future}.IsDue(now))
}
