package tokenizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/cognicore/promptlens/pkg/promptlens/lexicon"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// Result is the full output of the tokenizer stage.
type Result struct {
	Tokens      []Token          `json:"tokens"`
	TypeCounts  map[string]int   `json:"type_counts"`
	TotalTokens int              `json:"total_tokens"`
	WordCount   int              `json:"word_count"`
	UniqueWords int              `json:"unique_words"`
	StopWords   int              `json:"stop_words"`
	NGrams      NGrams           `json:"ngrams"`
	POS         POSDistribution  `json:"pos"`
	Syntax      []SentenceSyntax `json:"syntax"`
	SyntaxMix   map[string]int   `json:"syntax_mix"`
	Entities    []Entity         `json:"entities"`
	Sentiment   Sentiment        `json:"sentiment"`
	Characters  CharacterStats   `json:"characters"`
	Lemmas      map[string]int   `json:"lemmas"`
}

// POSDistribution counts dictionary part-of-speech tags over word tokens.
type POSDistribution struct {
	Counts map[string]int `json:"counts"`
	Tagged []TaggedWord   `json:"tagged"`
}

// TaggedWord is a word with its dictionary tag.
type TaggedWord struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// SentenceSyntax holds the naive syntax tags of one sentence.
type SentenceSyntax struct {
	Sentence   string `json:"sentence"`
	Mood       string `json:"mood"`
	ClauseType string `json:"clause_type"`
}

// Entity is a capitalized span. Every span is tagged PERSON; this is a
// surface heuristic, not named-entity recognition.
type Entity struct {
	Text     string `json:"text"`
	Label    string `json:"label"`
	Position int    `json:"position"`
}

// Sentiment is a lexicon-based polarity score.
type Sentiment struct {
	Score    float64  `json:"score"`
	Label    string   `json:"label"`
	Positive int      `json:"positive"`
	Negative int      `json:"negative"`
	Matches  []string `json:"matches"`
}

// CharacterStats is a character-class scan of the raw text.
type CharacterStats struct {
	Total       int `json:"total"`
	Letters     int `json:"letters"`
	Digits      int `json:"digits"`
	Whitespace  int `json:"whitespace"`
	Punctuation int `json:"punctuation"`
	Unicode     int `json:"unicode"`
	Uppercase   int `json:"uppercase"`
}

var entityPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// Tokenize runs token extraction and every derived statistic over text.
func (t *Tokenizer) Tokenize(text string) Result {
	tokens := t.Extract(text)

	res := Result{
		Tokens:      tokens,
		TypeCounts:  make(map[string]int),
		TotalTokens: len(tokens),
		Lemmas:      make(map[string]int),
	}

	var words []string
	unique := make(map[string]struct{})
	for _, tok := range tokens {
		res.TypeCounts[string(tok.Type)]++
		if tok.Type != TypeWord && tok.Type != TypeContraction {
			continue
		}
		lower := strings.ToLower(tok.Text)
		words = append(words, lower)
		unique[lower] = struct{}{}
		res.Lemmas[tok.Lemma]++
		if tok.IsStopWord {
			res.StopWords++
		}
	}
	res.WordCount = len(words)
	res.UniqueWords = len(unique)

	res.NGrams = t.ngrams(tokens)
	res.POS = t.tagPOS(words)
	res.Syntax, res.SyntaxMix = syntaxTags(text)
	res.Entities = t.entities(text)
	res.Sentiment = t.sentiment(words)
	res.Characters = characterStats(text)
	return res
}

// tagPOS tags each word by dictionary lookup: nouns, then verbs, then
// adjectives, then the -ly adverb rule; everything else is unknown.
func (t *Tokenizer) tagPOS(words []string) POSDistribution {
	dist := POSDistribution{
		Counts: map[string]int{"noun": 0, "verb": 0, "adjective": 0, "adverb": 0, "unknown": 0},
		Tagged: make([]TaggedWord, 0, len(words)),
	}
	for _, w := range words {
		tag := "unknown"
		switch {
		case t.lexicon.Is(lexicon.Nouns, w):
			tag = "noun"
		case t.lexicon.Is(lexicon.Verbs, w):
			tag = "verb"
		case t.lexicon.Is(lexicon.Adjectives, w):
			tag = "adjective"
		case len(w) > 3 && strings.HasSuffix(w, "ly"):
			tag = "adverb"
		}
		dist.Counts[tag]++
		dist.Tagged = append(dist.Tagged, TaggedWord{Word: w, Tag: tag})
	}
	return dist
}

// syntaxTags labels each sentence's mood by its final character and its
// clause type by conjunction cues.
func syntaxTags(text string) ([]SentenceSyntax, map[string]int) {
	sentences := textstat.Sentences(text)
	out := make([]SentenceSyntax, 0, len(sentences))
	mix := map[string]int{
		"declarative": 0, "interrogative": 0, "exclamatory": 0,
		"simple": 0, "compound": 0, "complex": 0,
	}
	for _, s := range sentences {
		mood := "declarative"
		switch {
		case strings.HasSuffix(s, "?"):
			mood = "interrogative"
		case strings.HasSuffix(s, "!"):
			mood = "exclamatory"
		}

		lower := " " + strings.ToLower(s) + " "
		clause := "simple"
		switch {
		case strings.Contains(lower, " because ") || strings.Contains(lower, " although "):
			clause = "complex"
		case strings.Contains(lower, " and ") && strings.Contains(s, ","):
			clause = "compound"
		}

		mix[mood]++
		mix[clause]++
		out = append(out, SentenceSyntax{Sentence: s, Mood: mood, ClauseType: clause})
	}
	return out, mix
}

// entities finds runs of capitalized words. Single-word matches that are
// stopwords or known verbs ("The", "Build") are skipped.
func (t *Tokenizer) entities(text string) []Entity {
	out := []Entity{}
	for _, loc := range entityPattern.FindAllStringIndex(text, -1) {
		span := text[loc[0]:loc[1]]
		if !strings.ContainsAny(span, " \t\n") {
			if t.lexicon.Is(lexicon.Stopwords, span) || t.lexicon.Is(lexicon.Verbs, span) ||
				t.lexicon.Is(lexicon.Connectors, span) {
				continue
			}
		}
		out = append(out, Entity{Text: span, Label: "PERSON", Position: loc[0]})
	}
	return out
}

// sentiment scores (positive - negative) / (positive + negative).
func (t *Tokenizer) sentiment(words []string) Sentiment {
	s := Sentiment{Label: "neutral", Matches: []string{}}
	for _, w := range words {
		switch {
		case t.lexicon.Is(lexicon.Positive, w):
			s.Positive++
			s.Matches = append(s.Matches, w)
		case t.lexicon.Is(lexicon.Negative, w):
			s.Negative++
			s.Matches = append(s.Matches, w)
		}
	}
	total := s.Positive + s.Negative
	s.Score = textstat.Ratio(float64(s.Positive-s.Negative), float64(total))
	switch {
	case s.Score > 0.2:
		s.Label = "positive"
	case s.Score < -0.2:
		s.Label = "negative"
	}
	return s
}

func characterStats(text string) CharacterStats {
	var cs CharacterStats
	for _, r := range text {
		cs.Total++
		switch {
		case unicode.IsLetter(r):
			cs.Letters++
			if unicode.IsUpper(r) {
				cs.Uppercase++
			}
		case unicode.IsDigit(r):
			cs.Digits++
		case unicode.IsSpace(r):
			cs.Whitespace++
		case unicode.IsPunct(r):
			cs.Punctuation++
		}
		if r > unicode.MaxASCII {
			cs.Unicode++
		}
	}
	return cs
}

// WordTexts returns the case-folded text of the word and contraction tokens.
func (r Result) WordTexts() []string {
	out := make([]string, 0, r.WordCount)
	for _, tok := range r.Tokens {
		if tok.Type == TypeWord || tok.Type == TypeContraction {
			out = append(out, strings.ToLower(tok.Text))
		}
	}
	return out
}

// TopLemmas returns up to n lemmas ordered by count desc then text.
func (r Result) TopLemmas(n int) []string {
	type kv struct {
		lemma string
		count int
	}
	list := make([]kv, 0, len(r.Lemmas))
	for l, c := range r.Lemmas {
		list = append(list, kv{l, c})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].lemma < list[j].lemma
	})
	out := []string{}
	for i := 0; i < len(list) && i < n; i++ {
		out = append(out, list[i].lemma)
	}
	return out
}
