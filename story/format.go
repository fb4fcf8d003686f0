package story

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// displayWidth is the column width of the bordered terminal rendering.
const displayWidth = 70

// ErrNoParagraphs signals that generated text yielded zero paragraphs;
// callers must treat it as fatal for the rest of the pipeline.
var ErrNoParagraphs = errors.New("could not parse story paragraphs")

// blankRun matches any run of blank lines, including lines that contain only
// spaces or tabs, so stray whitespace collapses to one paragraph boundary.
var blankRun = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)*`)

// SplitParagraphs normalizes blank-line separators and splits the raw story
// into trimmed, non-empty paragraphs. Splitting its own joined output again
// yields the same set.
func SplitParagraphs(raw string) ([]string, error) {
	normalized := blankRun.ReplaceAllString(raw, "\n\n")

	var paragraphs []string
	for _, p := range strings.Split(normalized, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return nil, ErrNoParagraphs
	}
	return paragraphs, nil
}

// Render produces the bordered, wrapped terminal view of the story. Purely
// presentational; downstream stages consume the paragraphs themselves.
func Render(paragraphs []string) string {
	border := strings.Repeat("=", displayWidth)

	var b strings.Builder
	b.WriteString("\n" + border + "\n")
	b.WriteString(center("YOUR GENERATED STORY", displayWidth) + "\n")
	b.WriteString(border + "\n\n")

	for i, p := range paragraphs {
		fmt.Fprintf(&b, "Paragraph %d:\n", i+1)
		b.WriteString(wrap(p, displayWidth))
		b.WriteString("\n\n")
	}

	b.WriteString(border)
	return b.String()
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}

// wrap greedily breaks text into lines of at most width columns. Words longer
// than the width stay on their own line unbroken.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for _, w := range words {
		switch {
		case lineLen == 0:
			b.WriteString(w)
			lineLen = len(w)
		case lineLen+1+len(w) <= width:
			b.WriteString(" " + w)
			lineLen += 1 + len(w)
		default:
			b.WriteString("\n" + w)
			lineLen = len(w)
		}
	}
	return b.String()
}
