package tokenizer

import (
	"sort"
	"strings"
)

// NGram is a case-folded word sequence and the number of times it occurs.
type NGram struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// NGrams holds the most frequent n-grams of each order.
type NGrams struct {
	Unigrams  []NGram `json:"unigrams"`
	Bigrams   []NGram `json:"bigrams"`
	Trigrams  []NGram `json:"trigrams"`
	Fourgrams []NGram `json:"fourgrams"`
}

// ngrams counts 1- to 4-grams over word tokens only. Adjacency is measured
// in word tokens, so punctuation between two words does not break a gram.
func (t *Tokenizer) ngrams(tokens []Token) NGrams {
	var words []string
	for _, tok := range tokens {
		if tok.Type == TypeWord {
			words = append(words, strings.ToLower(tok.Text))
		}
	}
	return NGrams{
		Unigrams:  topGrams(countGrams(words, 1), t.topK),
		Bigrams:   topGrams(countGrams(words, 2), t.topK),
		Trigrams:  topGrams(countGrams(words, 3), t.topK),
		Fourgrams: topGrams(countGrams(words, 4), t.topK),
	}
}

func countGrams(words []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(words); i++ {
		counts[strings.Join(words[i:i+n], " ")]++
	}
	return counts
}

// topGrams orders by count desc, then text, and keeps the first k.
func topGrams(counts map[string]int, k int) []NGram {
	out := make([]NGram, 0, len(counts))
	for text, c := range counts {
		out = append(out, NGram{Text: text, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
