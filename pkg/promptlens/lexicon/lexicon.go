package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Class names one word list of the lexicon.
type Class string

const (
	Stopwords         Class = "stopwords"
	Nouns             Class = "nouns"
	Verbs             Class = "verbs"
	Adjectives        Class = "adjectives"
	Positive          Class = "positive"
	Negative          Class = "negative"
	ActionVerbs       Class = "action_verbs"
	Modals            Class = "modals"
	Hedges            Class = "hedges"
	ExampleMarkers    Class = "example_markers"
	ArgumentMarkers   Class = "argument_markers"
	IdeaMarkers       Class = "idea_markers"
	QuestionStarters  Class = "question_starters"
	RequirementCues   Class = "requirement_cues"
	NeedCues          Class = "need_cues"
	GoalCues          Class = "goal_cues"
	UrgencyHigh       Class = "urgency_high"
	UrgencyLow        Class = "urgency_low"
	ScopeLarge        Class = "scope_large"
	ScopeSmall        Class = "scope_small"
	SequenceMarkers   Class = "sequence_markers"
	PrecedenceMarkers Class = "precedence_markers"
	CausalMarkers     Class = "causal_markers"
	Connectors        Class = "connectors"
)

// Lexicon stores the static vocabulary the analyzers classify text with:
// word classes (stopwords, parts of speech, sentiment), cue phrases,
// synonym groups and a keyword taxonomy of topics.
//
// A Lexicon is built once and never mutated afterwards, so it is safe to
// share between concurrent analyses.
type Lexicon struct {
	// canonical -> all variants (including canonical itself)
	synonyms map[string][]string

	// variant -> canonical
	reverseIndex map[string]string

	// single-word lookup per class
	words map[Class]map[string]struct{}

	// phrases per class, longest first
	phrases map[Class][]string

	// topic -> keywords
	topics     map[string][]string
	topicOrder []string
}

// document is the YAML shape of a lexicon file.
//
//	classes:
//	  stopwords: [the, a, an]
//	  hedges: [i think, maybe]
//	synonyms:
//	  - canonical: test
//	    variants: [tests, testing]
//	topics:
//	  web: [html, css, page]
type document struct {
	Classes  map[string][]string `yaml:"classes"`
	Synonyms []struct {
		Canonical string   `yaml:"canonical"`
		Variants  []string `yaml:"variants"`
	} `yaml:"synonyms"`
	Topics map[string][]string `yaml:"topics"`
}

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the built-in lexicon, parsed once per process.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Parse(defaultYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("lexicon: embedded default is invalid: %v", defaultErr))
	}
	return defaultLex
}

// Parse builds a lexicon from YAML data.
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	lex := newLexicon()
	lex.apply(doc)
	lex.finish()
	return lex, nil
}

// LoadFromYAML loads a lexicon file and layers it on top of the built-in
// lexicon: word lists and topic keywords are merged, synonym groups in the
// file replace built-in groups with the same canonical form.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	var base document
	if err := yaml.Unmarshal(defaultYAML, &base); err != nil {
		return nil, fmt.Errorf("parse built-in lexicon: %w", err)
	}

	lex := newLexicon()
	lex.apply(base)
	lex.apply(doc)
	lex.finish()
	return lex, nil
}

func newLexicon() *Lexicon {
	return &Lexicon{
		synonyms:     make(map[string][]string),
		reverseIndex: make(map[string]string),
		words:        make(map[Class]map[string]struct{}),
		phrases:      make(map[Class][]string),
		topics:       make(map[string][]string),
	}
}

func (l *Lexicon) apply(doc document) {
	for name, entries := range doc.Classes {
		class := Class(name)
		if l.words[class] == nil {
			l.words[class] = make(map[string]struct{})
		}
		for _, e := range entries {
			p := normalizePhrase(e)
			if p == "" {
				continue
			}
			if _, dup := l.words[class][p]; dup {
				continue
			}
			l.words[class][p] = struct{}{}
			l.phrases[class] = append(l.phrases[class], p)
		}
	}

	for _, entry := range doc.Synonyms {
		l.addSynonymGroup(entry.Canonical, entry.Variants)
	}

	for topic, keywords := range doc.Topics {
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				l.topics[topic] = append(l.topics[topic], kw)
			}
		}
	}
}

func (l *Lexicon) finish() {
	for class, list := range l.phrases {
		sort.SliceStable(list, func(i, j int) bool {
			if len(list[i]) != len(list[j]) {
				return len(list[i]) > len(list[j])
			}
			return list[i] < list[j]
		})
		l.phrases[class] = list
	}
	l.topicOrder = make([]string, 0, len(l.topics))
	for topic := range l.topics {
		l.topicOrder = append(l.topicOrder, topic)
	}
	sort.Strings(l.topicOrder)
}

// addSynonymGroup adds a synonym group with a canonical form and its variants.
// The canonical form is always included as the first entry in the variants list.
// If the group already exists, old reverse index entries are cleaned up first.
func (l *Lexicon) addSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	if canonical == "" {
		return
	}

	if oldVariants, exists := l.synonyms[canonical]; exists {
		for _, oldV := range oldVariants {
			delete(l.reverseIndex, oldV)
		}
	}

	normalized := make([]string, 0, len(variants)+1)
	seen := make(map[string]bool)
	normalized = append(normalized, canonical)
	seen[canonical] = true
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && !seen[v] {
			normalized = append(normalized, v)
			seen[v] = true
		}
	}

	l.synonyms[canonical] = normalized
	for _, v := range normalized {
		l.reverseIndex[v] = canonical
	}
}

// Normalize returns the canonical form of a token.
// If the token is not in the lexicon, returns the lowercased token itself.
//
// Examples:
//   - Normalize("tests") -> "test"
//   - Normalize("unknown") -> "unknown"
func (l *Lexicon) Normalize(token string) string {
	token = strings.ToLower(token)
	if canonical, ok := l.reverseIndex[token]; ok {
		return canonical
	}
	return token
}

// HasSynonyms returns true if the token belongs to a synonym group.
func (l *Lexicon) HasSynonyms(token string) bool {
	_, exists := l.reverseIndex[strings.ToLower(token)]
	return exists
}

// Variants returns all known variants of a token (including the canonical form).
func (l *Lexicon) Variants(token string) []string {
	token = strings.ToLower(token)
	if variants, ok := l.synonyms[token]; ok {
		return append([]string(nil), variants...)
	}
	if canonical, ok := l.reverseIndex[token]; ok {
		return append([]string(nil), l.synonyms[canonical]...)
	}
	return []string{token}
}

// Is reports whether a single word belongs to the class. Case-insensitive.
func (l *Lexicon) Is(class Class, word string) bool {
	_, ok := l.words[class][strings.ToLower(word)]
	return ok
}

// Cues returns the phrases of the class found in text on word boundaries,
// longest phrases first. Overlapping shorter phrases are still reported.
func (l *Lexicon) Cues(class Class, text string) []string {
	padded := " " + normalizePhrase(text) + " "
	out := []string{}
	for _, p := range l.phrases[class] {
		if strings.Contains(padded, " "+p+" ") {
			out = append(out, p)
		}
	}
	return out
}

// HasCue reports whether any phrase of the class occurs in text.
func (l *Lexicon) HasCue(class Class, text string) bool {
	padded := " " + normalizePhrase(text) + " "
	for _, p := range l.phrases[class] {
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

// LeadingCue returns the longest phrase of the class that text starts with,
// or "" if none does.
func (l *Lexicon) LeadingCue(class Class, text string) string {
	padded := normalizePhrase(text) + " "
	for _, p := range l.phrases[class] {
		if strings.HasPrefix(padded, p+" ") {
			return p
		}
	}
	return ""
}

// TrimLeading strips up to three leading phrases of the class from text
// ("And then, finally deploy" -> "deploy") and returns the rest together with
// the phrases removed. Words are the letter and digit runs phrases are
// matched on, so "Next:deploy" leaves "deploy".
func (l *Lexicon) TrimLeading(class Class, text string) (string, []string) {
	rest := strings.TrimSpace(text)
	cues := []string{}
	for i := 0; i < 3; i++ {
		cue := l.LeadingCue(class, rest)
		if cue == "" {
			break
		}
		cues = append(cues, cue)
		rest = strings.TrimLeftFunc(skipWords(rest, len(strings.Fields(cue))), func(r rune) bool {
			return !isWordRune(r)
		})
		if rest == "" {
			break
		}
	}
	return rest, cues
}

// skipWords returns s after its first n words.
func skipWords(s string, n int) string {
	inWord := false
	for i, r := range s {
		switch {
		case isWordRune(r):
			inWord = true
		case inWord:
			inWord = false
			if n--; n == 0 {
				return s[i:]
			}
		}
	}
	return ""
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’'
}

// Size returns the number of entries in a class.
func (l *Lexicon) Size(class Class) int {
	return len(l.words[class])
}

// Topics determines which taxonomy topics apply to the given tokens.
// The result is sorted by topic name.
func (l *Lexicon) Topics(tokens []string) []string {
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[strings.ToLower(tok)] = struct{}{}
	}

	result := []string{}
	for _, topic := range l.topicOrder {
		for _, kw := range l.topics[topic] {
			if _, ok := tokenSet[kw]; ok {
				result = append(result, topic)
				break
			}
		}
	}
	return result
}

// TopicScores counts, per topic, how many tokens hit one of its keywords.
// Topics with no hits are omitted.
func (l *Lexicon) TopicScores(tokens []string) map[string]int {
	scores := make(map[string]int)
	for _, topic := range l.topicOrder {
		kws := make(map[string]struct{}, len(l.topics[topic]))
		for _, kw := range l.topics[topic] {
			kws[kw] = struct{}{}
		}
		for _, tok := range tokens {
			if _, ok := kws[strings.ToLower(tok)]; ok {
				scores[topic]++
			}
		}
	}
	return scores
}

// normalizePhrase lowercases s, turns everything except letters, digits and
// apostrophes into spaces and collapses runs of spaces.
func normalizePhrase(s string) string {
	var b strings.Builder
	space := true
	for _, r := range strings.ToLower(s) {
		if isWordRune(r) {
			if r == '’' {
				r = '\''
			}
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
