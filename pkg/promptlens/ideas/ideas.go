// Package ideas segments a text into sentences, classifies each by thought
// type and groups them into topical idea clusters.
package ideas

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/cognicore/promptlens/pkg/promptlens/lexicon"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// DefaultSimilarity is the keyword Jaccard similarity a sentence needs to
// join an existing cluster.
const DefaultSimilarity = 0.25

// Progression patterns.
const (
	ProgressionNone      = "No content"
	ProgressionFocused   = "Focused single idea"
	ProgressionLinear    = "Linear development"
	ProgressionRecursive = "Recursive development"
	ProgressionScattered = "Scattered development"
)

// Sentence is one classified sentence of the input.
type Sentence struct {
	Index       int         `json:"index"`
	Text        string      `json:"text"`
	ThoughtType ThoughtType `json:"thought_type"`
	Confidence  float64     `json:"confidence"`
	Keywords    []string    `json:"keywords"`
	ClusterID   string      `json:"cluster_id"`
}

// IdeaCluster groups sentences that share a topic.
type IdeaCluster struct {
	ID             string      `json:"id"`
	MainTopic      string      `json:"main_topic"`
	Category       string      `json:"category"`
	ThoughtType    ThoughtType `json:"thought_type"`
	TypeConfidence float64     `json:"type_confidence"`
	Sentences      []string    `json:"sentences"`
	KeyWords       []string    `json:"key_words"`
	PositionInText float64     `json:"position_in_text"`
	Complexity     float64     `json:"complexity"`
}

// group accumulates the members of a cluster while sentences are assigned.
type group struct {
	id       string
	keywords map[string]int
	members  []int
}

// Assignment maps one sentence to the cluster it belongs to.
type Assignment struct {
	Sentence    string
	ClusterID   string
	ThoughtType ThoughtType
	Keywords    []string
}

// Result is the output of the idea analyzer.
type Result struct {
	Sentences           []Sentence     `json:"sentences"`
	Clusters            []IdeaCluster  `json:"clusters"`
	UniqueIdeas         int            `json:"unique_ideas"`
	IdeaDensity         float64        `json:"idea_density"`
	ConceptualCoherence float64        `json:"conceptual_coherence"`
	ConceptualBreadth   float64        `json:"conceptual_breadth"`
	ThoughtConsistency  float64        `json:"thought_consistency"`
	TopicTransitions    int            `json:"topic_transitions"`
	ProgressionPattern  string         `json:"progression_pattern"`
	TypeDistribution    map[string]int `json:"type_distribution"`
	Topics              []string       `json:"topics"`
}

// Analyzer classifies and clusters sentences.
type Analyzer struct {
	lexicon    *lexicon.Lexicon
	similarity float64
}

// NewAnalyzer creates an analyzer. A nil lexicon selects the built-in one and
// a similarity outside (0,1] selects DefaultSimilarity.
func NewAnalyzer(lex *lexicon.Lexicon, similarity float64) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	if similarity <= 0 || similarity > 1 {
		similarity = DefaultSimilarity
	}
	return &Analyzer{lexicon: lex, similarity: similarity}
}

// Analyze runs segmentation, classification, clustering and the aggregate
// idea metrics over text.
func (a *Analyzer) Analyze(text string) Result {
	res := Result{
		Sentences:        []Sentence{},
		Clusters:         []IdeaCluster{},
		TypeDistribution: make(map[string]int, len(cueOrder)),
		Topics:           []string{},
	}
	for _, t := range cueOrder {
		res.TypeDistribution[string(t)] = 0
	}

	for i, s := range textstat.Sentences(text) {
		typ, conf := classify(a.lexicon, s)
		res.Sentences = append(res.Sentences, Sentence{
			Index:       i,
			Text:        s,
			ThoughtType: typ,
			Confidence:  conf,
			Keywords:    a.Keywords(s),
		})
		res.TypeDistribution[string(typ)]++
	}
	if len(res.Sentences) == 0 {
		res.ProgressionPattern = ProgressionNone
		return res
	}

	groups := a.cluster(&res)
	a.summarize(&res, groups)
	res.computeMetrics(a.lexicon)
	return res
}

// Keywords returns the distinct content words of a sentence in order of
// first appearance, mapped to their synonym canonical forms.
func (a *Analyzer) Keywords(sentence string) []string {
	return Keywords(a.lexicon, sentence)
}

// Keywords extracts sentence keywords with the given lexicon: words of three
// or more letters that are not stopwords or plain numbers.
func Keywords(lex *lexicon.Lexicon, sentence string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, w := range textstat.Words(sentence) {
		lower := strings.ToLower(w)
		if len([]rune(lower)) < 3 || isNumeric(lower) || lex.Is(lexicon.Stopwords, lower) {
			continue
		}
		kw := lex.Normalize(lower)
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// cluster walks the sentences in order. Each joins the existing cluster with
// the highest keyword similarity at or above the threshold, ties going to the
// earliest cluster; otherwise it opens a new cluster. A sentence without
// keywords stays with the cluster of the previous sentence.
func (a *Analyzer) cluster(res *Result) []*group {
	var groups []*group
	for i := range res.Sentences {
		s := &res.Sentences[i]

		var target *group
		if len(s.Keywords) == 0 {
			if i > 0 {
				target = findGroup(groups, res.Sentences[i-1].ClusterID)
			}
		} else {
			best := 0.0
			for _, g := range groups {
				sim := textstat.Jaccard(s.Keywords, g.vocabulary())
				if sim >= a.similarity && sim > best {
					best = sim
					target = g
				}
			}
		}

		if target == nil {
			target = &group{
				id:       fmt.Sprintf("idea_%d", len(groups)+1),
				keywords: make(map[string]int),
			}
			groups = append(groups, target)
		}
		target.members = append(target.members, i)
		for _, kw := range s.Keywords {
			target.keywords[kw]++
		}
		s.ClusterID = target.id
	}
	return groups
}

func findGroup(groups []*group, id string) *group {
	for _, g := range groups {
		if g.id == id {
			return g
		}
	}
	return nil
}

// vocabulary returns the cluster keywords sorted alphabetically.
func (g *group) vocabulary() []string {
	out := make([]string, 0, len(g.keywords))
	for kw := range g.keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

func (a *Analyzer) summarize(res *Result, groups []*group) {
	total := float64(len(res.Sentences))
	for _, g := range groups {
		c := IdeaCluster{
			ID:        g.id,
			MainTopic: "general",
			Sentences: make([]string, 0, len(g.members)),
		}

		ranked := rankKeywords(g.keywords)
		c.KeyWords = ranked
		if len(c.KeyWords) > 5 {
			c.KeyWords = c.KeyWords[:5]
		}
		if len(ranked) > 0 {
			c.MainTopic = ranked[0]
		}
		c.Category = category(a.lexicon, ranked)

		typeCounts := make(map[ThoughtType]int)
		complexity := 0.0
		for _, idx := range g.members {
			s := res.Sentences[idx]
			c.Sentences = append(c.Sentences, s.Text)
			typeCounts[s.ThoughtType]++
			complexity += sentenceWeight(s.Text)
		}

		c.ThoughtType = dominantType(typeCounts)
		conf := 0.0
		for _, idx := range g.members {
			if res.Sentences[idx].ThoughtType == c.ThoughtType {
				conf += res.Sentences[idx].Confidence
			}
		}
		c.TypeConfidence = textstat.Round(conf/float64(typeCounts[c.ThoughtType]), 4)
		c.PositionInText = textstat.Round(float64(g.members[0])/total, 4)
		c.Complexity = textstat.Round(complexity/float64(len(g.members)), 2)

		res.Clusters = append(res.Clusters, c)
	}
}

// rankKeywords orders keywords by frequency desc, then alphabetically.
func rankKeywords(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for kw := range counts {
		out = append(out, kw)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// category picks the taxonomy topic matching the most keywords.
func category(lex *lexicon.Lexicon, keywords []string) string {
	best, bestScore := "general", 0
	scores := lex.TopicScores(keywords)
	for _, topic := range lex.Topics(keywords) {
		if scores[topic] > bestScore {
			best, bestScore = topic, scores[topic]
		}
	}
	return best
}

func dominantType(counts map[ThoughtType]int) ThoughtType {
	best := TypeFact
	bestCount := -1
	for _, t := range cueOrder {
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best
}

// sentenceWeight is the word and syllable load of a sentence.
func sentenceWeight(sentence string) float64 {
	words := textstat.Words(sentence)
	syllables := 0
	for _, w := range words {
		syllables += textstat.Syllables(w)
	}
	return 0.3*float64(len(words)) + 0.2*float64(syllables)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Assignments returns the sentence to cluster mapping in text order.
func (r Result) Assignments() []Assignment {
	out := make([]Assignment, 0, len(r.Sentences))
	for _, s := range r.Sentences {
		out = append(out, Assignment{
			Sentence:    s.Text,
			ClusterID:   s.ClusterID,
			ThoughtType: s.ThoughtType,
			Keywords:    s.Keywords,
		})
	}
	return out
}

// DominantType is the most frequent thought type. Ties follow cue order and
// an empty result reports TypeFact.
func (r Result) DominantType() ThoughtType {
	if len(r.Sentences) == 0 {
		return TypeFact
	}
	counts := make(map[ThoughtType]int, len(r.TypeDistribution))
	for t, n := range r.TypeDistribution {
		counts[ThoughtType(t)] = n
	}
	return dominantType(counts)
}
