package tokenizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/promptlens/pkg/promptlens/lexicon"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// TokenType classifies a token.
type TokenType string

const (
	TypeURL          TokenType = "url"
	TypeEmail        TokenType = "email"
	TypeHashtag      TokenType = "hashtag"
	TypeMention      TokenType = "mention"
	TypeContraction  TokenType = "contraction"
	TypeAbbreviation TokenType = "abbreviation"
	TypeNumber       TokenType = "number"
	TypeWord         TokenType = "word"
	TypePunctuation  TokenType = "punctuation"
	TypeSymbol       TokenType = "symbol"
	TypeWhitespace   TokenType = "whitespace"
)

// pattern pairs a token type with its anchored expression.
type pattern struct {
	typ TokenType
	re  *regexp.Regexp
}

// patterns is ordered by tie-break priority: when two patterns match the
// same number of bytes at a position, the earlier one wins.
var patterns = []pattern{
	{TypeURL, regexp.MustCompile(`^(?i)(?:https?://|www\.)[^\s<>"']*[^\s<>"'.,;:!?)\]]`)},
	{TypeEmail, regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)},
	{TypeHashtag, regexp.MustCompile(`^#[\p{L}\p{N}_]+`)},
	{TypeMention, regexp.MustCompile(`^@[A-Za-z0-9_]+`)},
	{TypeContraction, regexp.MustCompile(`^(?i)(?:[a-z]+n['’]t|[a-z]+['’](?:s|re|ve|ll|d|m))`)},
	{TypeAbbreviation, regexp.MustCompile(`^(?:(?:[A-Za-z]\.){2,}|(?:Mr|Mrs|Ms|Dr|Prof|Sr|Jr|St|vs|etc|Inc|Ltd|Co|approx|dept|est|fig)\.)`)},
	{TypeNumber, regexp.MustCompile(`^\d+(?:[.,]\d+)*%?`)},
	{TypeWord, regexp.MustCompile(`^\p{L}[\p{L}\p{M}\p{N}]*(?:-[\p{L}\p{N}]+)*`)},
	{TypePunctuation, regexp.MustCompile(`^\p{P}`)},
	{TypeSymbol, regexp.MustCompile(`^\p{S}`)},
	{TypeWhitespace, regexp.MustCompile(`^\s+`)},
}

// Token is one lexical unit of the input.
type Token struct {
	Text       string    `json:"text"`
	Type       TokenType `json:"type"`
	Position   int       `json:"position"`
	Length     int       `json:"length"`
	Syllables  int       `json:"syllables"`
	Frequency  int       `json:"frequency"`
	IsStopWord bool      `json:"is_stop_word"`
	Lemma      string    `json:"lemma"`
}

// Tokenizer splits text into typed tokens and derives lexical statistics.
type Tokenizer struct {
	lexicon *lexicon.Lexicon
	topK    int
}

// DefaultTopK is the number of n-grams kept per order.
const DefaultTopK = 10

// NewTokenizer creates a tokenizer backed by the given lexicon.
// A nil lexicon selects the built-in one.
func NewTokenizer(lex *lexicon.Lexicon) *Tokenizer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Tokenizer{lexicon: lex, topK: DefaultTopK}
}

// SetTopK sets how many n-grams of each order are reported.
func (t *Tokenizer) SetTopK(k int) {
	if k > 0 {
		t.topK = k
	}
}

// Extract runs the pattern scanner over text and returns the tokens ordered
// by position. At every cursor position each pattern is tried; the longest
// match wins and ties go to the earlier pattern in priority order. When no
// pattern matches, the cursor skips one rune.
func (t *Tokenizer) Extract(text string) []Token {
	tokens := []Token{}
	pos := 0
	for pos < len(text) {
		rest := text[pos:]
		bestLen := 0
		var bestType TokenType
		for _, p := range patterns {
			loc := p.re.FindStringIndex(rest)
			if loc == nil || loc[1] <= bestLen {
				continue
			}
			bestLen = loc[1]
			bestType = p.typ
		}

		if bestLen == 0 {
			_, size := utf8.DecodeRuneInString(rest)
			pos += size
			continue
		}

		tokens = append(tokens, t.newToken(rest[:bestLen], bestType, pos))
		pos += bestLen
	}

	t.assignFrequencies(tokens)
	return tokens
}

func (t *Tokenizer) newToken(text string, typ TokenType, pos int) Token {
	tok := Token{
		Text:     text,
		Type:     typ,
		Position: pos,
		Length:   utf8.RuneCountInString(text),
		Lemma:    strings.ToLower(text),
	}
	switch typ {
	case TypeWord, TypeContraction:
		tok.Syllables = textstat.Syllables(text)
		tok.IsStopWord = t.lexicon.Is(lexicon.Stopwords, text)
		tok.Lemma = t.lemma(text)
	case TypeAbbreviation:
		tok.Syllables = 1
	}
	return tok
}

// assignFrequencies counts identical (case-folded) texts per token type.
func (t *Tokenizer) assignFrequencies(tokens []Token) {
	type key struct {
		typ  TokenType
		text string
	}
	counts := make(map[key]int)
	for _, tok := range tokens {
		counts[key{tok.Type, strings.ToLower(tok.Text)}]++
	}
	for i := range tokens {
		tokens[i].Frequency = counts[key{tokens[i].Type, strings.ToLower(tokens[i].Text)}]
	}
}

// lemma maps a word to its canonical form: synonym groups first, then a
// small set of suffix rules.
func (t *Tokenizer) lemma(word string) string {
	w := strings.ToLower(word)
	if t.lexicon.HasSynonyms(w) {
		return t.lexicon.Normalize(w)
	}
	if i := strings.IndexAny(w, "'’"); i > 0 {
		w = w[:i]
	}

	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 5 && strings.HasSuffix(w, "ing"):
		return w[:len(w)-3]
	case len(w) > 4 && strings.HasSuffix(w, "ed"):
		return w[:len(w)-2]
	case len(w) > 4 && (strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes") || strings.HasSuffix(w, "xes")):
		return w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us"):
		return w[:len(w)-1]
	}
	return w
}
