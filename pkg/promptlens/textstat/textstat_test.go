package textstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace", "  \n\t ", []string{}},
		{"no terminal punctuation", "just some words", []string{"just some words"}},
		{"single", "Hello world.", []string{"Hello world."}},
		{
			"mixed terminators",
			"Build it. Does it work? Ship it!  Done",
			[]string{"Build it.", "Does it work?", "Ship it!", "Done"},
		},
		{"ellipsis", "Wait... what?", []string{"Wait...", "what?"}},
		{"decimal is not a boundary", "Version 2.5 is out. Try it.", []string{"Version 2.5 is out.", "Try it."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.text))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"don't", "re-use", "v2", "café"}, Words("don't re-use v2, café!"))
	assert.Empty(t, Words("!!! ..."))
	assert.NotNil(t, Words(""))
}

func TestSyllables(t *testing.T) {
	tests := map[string]int{
		"cat":         1,
		"the":         1,
		"page":        1,
		"table":       2,
		"free":        1,
		"readability": 5,
		"beautiful":   3,
		"rhythm":      1,
		"2023":        1,
		"":            1,
		"Hello":       2,
	}
	for word, want := range tests {
		assert.Equal(t, want, Syllables(word), "Syllables(%q)", word)
	}
}

func TestRatioGuardsZero(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(5, 0))
	assert.Equal(t, 2.5, Ratio(5, 2))
}

func TestJaccardAndShared(t *testing.T) {
	a := []string{"login", "page", "build"}
	b := []string{"page", "login", "tests"}

	assert.InDelta(t, 0.5, Jaccard(a, b), 1e-9)
	assert.Equal(t, 0.0, Jaccard(nil, nil))
	assert.Equal(t, []string{"login", "page"}, Shared(a, b))
	assert.Equal(t, []string{}, Shared(a, nil))
}

func TestClampAndRound(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	assert.Equal(t, 1.23, Round(1.234, 2))
}
