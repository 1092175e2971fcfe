package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessEmpty(t *testing.T) {
	res := Process("")
	assert.Equal(t, Result{}, res)
}

func TestProcessCollapsesWhitespace(t *testing.T) {
	res := Process("  Build   a\tpage.\n\n\nThen test it.  ")

	assert.Equal(t, "Build a page. Then test it.", res.Cleaned)
	assert.Equal(t, 4, res.Lines)
	assert.Equal(t, 2, res.BlankLines)
	assert.Equal(t, 2, res.Paragraphs)
	assert.Equal(t, res.OriginalLength-res.CleanedLength, res.CharactersRemoved)
	assert.False(t, res.ContainsMarkup)
}

func TestProcessNormalizesToNFC(t *testing.T) {
	decomposed := "cafe\u0301"
	res := Process(decomposed)

	assert.True(t, res.UnicodeNormalized)
	assert.Equal(t, "caf\u00e9", res.Cleaned)
	assert.Equal(t, 1, res.CharactersRemoved)

	assert.False(t, Process("caf\u00e9").UnicodeNormalized)
}

func TestProcessStripsMarkup(t *testing.T) {
	res := Process("<p>Write a <b>short</b> poem.</p><script>alert(1)</script>")

	assert.True(t, res.ContainsMarkup)
	assert.Equal(t, "Write a short poem.", res.Cleaned)
	assert.Equal(t, 3, res.MarkupElements)
}

func TestProcessIgnoresComparisonOperators(t *testing.T) {
	res := Process("Return rows where a < b and b > c.")
	assert.False(t, res.ContainsMarkup)
	assert.Equal(t, "Return rows where a < b and b > c.", res.Cleaned)
}

func TestProcessCountsMarkdownLayout(t *testing.T) {
	text := "# Task\n\nDo the following:\n- parse input\n- validate it\n1. report\n\n```go\n# not a heading\n- not a list\n```\n"
	res := Process(text)

	assert.Equal(t, 1, res.Headings)
	assert.Equal(t, 3, res.ListItems)
	assert.Equal(t, 1, res.CodeBlocks)
	assert.Equal(t, 3, res.Paragraphs)
}

func TestMetricsCoverEveryField(t *testing.T) {
	set := Process("Hello <em>world</em>").Metrics()
	assert.Len(t, set, 13)
	assert.Equal(t, "yes", set["contains_markup"].Value())
	assert.Equal(t, 1, set["markup_elements"].Value())
}
