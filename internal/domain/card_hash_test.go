package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]+$`)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestHashCardFormat(t *testing.T) {
	t.Parallel() // Enable parallel execution

	h := HashCard("Q: what?\nA: yes\n", 0, 2)
	assert.Len(t, h, CardHashLength)
	assert.Regexp(t, hexDigest, h)
}

func TestHashCardDeterministic(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.Equal(t, HashCard("C: ping? [pong]\n", 4, 5), HashCard("C: ping? [pong]\n", 4, 5))
}

func TestHashCardDistinguishesPosition(t *testing.T) {
	t.Parallel() // Enable parallel execution

	text := "Q: what?\nA: yes\n"
	ranges := []LineRange{{0, 2}, {2, 4}, {0, 3}, {1, 2}, {10, 12}}

	seen := make(map[string]LineRange)
	for _, r := range ranges {
		h := HashCard(text, r.Start, r.End)
		prev, dup := seen[h]
		assert.Falsef(t, dup, "range %v collides with %v", r, prev)
		seen[h] = r
	}
}

func TestHashCardDistinguishesText(t *testing.T) {
	t.Parallel() // Enable parallel execution

	texts := []string{
		"Q: what?\nA: yes\n",
		"Q: what?\nA: no\n",
		"Q: what? \nA: yes\n",
		"",
	}

	seen := make(map[string]string)
	for _, text := range texts {
		h := HashCard(text, 0, 2)
		prev, dup := seen[h]
		assert.Falsef(t, dup, "text %q collides with %q", text, prev)
		seen[h] = text
	}
}
