// Package textstat holds the surface-level text statistics shared by the
// analyzers: sentence and word splitting, syllable counting and a few
// numeric helpers.
package textstat

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)
	wordPattern      = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’-][\p{L}\p{N}]+)*`)
	vowelGroups      = regexp.MustCompile(`[aeiouy]+`)
)

// Sentences splits text on runs of . ! ? followed by whitespace.
// Terminal punctuation stays attached to its sentence; empty pieces are dropped.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	var out []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		// Keep the punctuation, drop the trailing whitespace.
		end := loc[0] + len(strings.TrimRightFunc(text[loc[0]:loc[1]], unicode.IsSpace))
		if s := strings.TrimSpace(text[last:end]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if s := strings.TrimSpace(text[last:]); s != "" {
		out = append(out, s)
	}
	if out == nil {
		return []string{}
	}
	return out
}

// Words returns the word-like runs of letters and digits in text, keeping
// internal apostrophes and hyphens.
func Words(text string) []string {
	words := wordPattern.FindAllString(text, -1)
	if words == nil {
		return []string{}
	}
	return words
}

// Syllables estimates the syllable count of a word by counting vowel groups,
// correcting for a trailing silent e. The result is never below 1.
func Syllables(word string) int {
	w := strings.ToLower(lettersOnly(word))
	if w == "" {
		return 1
	}

	count := len(vowelGroups.FindAllStringIndex(w, -1))
	if count > 1 && strings.HasSuffix(w, "e") && silentE(w) {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// silentE reports whether the final e of w is silent: not part of a vowel
// pair ("free") and not a consonant+le ending ("table").
func silentE(w string) bool {
	n := len(w)
	if n < 2 {
		return false
	}
	prev := w[n-2]
	if isVowel(prev) {
		return false
	}
	if prev == 'l' && n >= 3 && !isVowel(w[n-3]) {
		return false
	}
	return true
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Ratio divides a by b, returning 0 when b is zero.
func Ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Clamp bounds v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Jaccard returns |a∩b| / |a∪b| over the distinct elements of two slices.
// Two empty slices have similarity 0.
func Jaccard(a, b []string) float64 {
	aSet := make(map[string]struct{}, len(a))
	for _, s := range a {
		aSet[s] = struct{}{}
	}
	bSet := make(map[string]struct{}, len(b))
	for _, s := range b {
		bSet[s] = struct{}{}
	}

	intersection := 0
	for s := range aSet {
		if _, ok := bSet[s]; ok {
			intersection++
		}
	}
	union := len(aSet) + len(bSet) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Shared returns the distinct elements present in both slices, in the order
// they appear in a.
func Shared(a, b []string) []string {
	bSet := make(map[string]struct{}, len(b))
	for _, s := range b {
		bSet[s] = struct{}{}
	}
	out := []string{}
	seen := make(map[string]struct{})
	for _, s := range a {
		if _, ok := bSet[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
