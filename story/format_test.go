package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "three clean paragraphs",
			raw:  "P1\n\nP2\n\nP3",
			want: []string{"P1", "P2", "P3"},
		},
		{
			name: "whitespace-only blank line",
			raw:  "P1\n \n\nP2",
			want: []string{"P1", "P2"},
		},
		{
			name: "triple newline",
			raw:  "P1\n\n\nP2",
			want: []string{"P1", "P2"},
		},
		{
			name: "leading and trailing whitespace",
			raw:  "  P1  \n\n\tP2\t\n\n",
			want: []string{"P1", "P2"},
		},
		{
			name: "single paragraph",
			raw:  "just one block of text",
			want: []string{"just one block of text"},
		},
		{
			name: "tab-only separator line",
			raw:  "P1\n\t\nP2",
			want: []string{"P1", "P2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitParagraphs(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitParagraphsUnparsable(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n\n", " \n \n "} {
		_, err := SplitParagraphs(raw)
		assert.ErrorIs(t, err, ErrNoParagraphs, "input %q", raw)
	}
}

func TestSplitParagraphsIdempotent(t *testing.T) {
	raw := "First paragraph.\n \n\nSecond one.\n\n\nThird, after a triple break."

	first, err := SplitParagraphs(raw)
	require.NoError(t, err)

	again, err := SplitParagraphs(strings.Join(first, "\n\n"))
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestRender(t *testing.T) {
	out := Render([]string{"A short one.", "Another short one."})

	border := strings.Repeat("=", 70)
	assert.Contains(t, out, border)
	assert.Contains(t, out, "YOUR GENERATED STORY")
	assert.Contains(t, out, "Paragraph 1:")
	assert.Contains(t, out, "Paragraph 2:")
	assert.Contains(t, out, "A short one.")
}

func TestRenderWrapsLongParagraphs(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 60))
	out := Render([]string{long})

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 70, "line %q exceeds the display width", line)
	}
}

func TestWrapKeepsOverlongWordsIntact(t *testing.T) {
	word := strings.Repeat("x", 90)
	assert.Equal(t, word, wrap(word, 70))
}
