// Package insights turns the complexity, idea and token analyses into a
// narrative: a summary, prioritized observations, an idea breakdown, a
// writing quality assessment and recommendations.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/promptlens/pkg/promptlens/complexity"
	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	th "github.com/cognicore/promptlens/pkg/promptlens/thresholds"
	"github.com/cognicore/promptlens/pkg/promptlens/tokenizer"
)

// Insight kinds, in reporting order for equal priorities.
const (
	KindReadability   = "readability"
	KindIdeaDiversity = "idea_diversity"
	KindVocabulary    = "vocabulary"
	KindStructure     = "structure"
	KindTone          = "tone"
)

// Impact levels.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

var kindOrder = map[string]int{
	KindReadability:   0,
	KindIdeaDiversity: 1,
	KindVocabulary:    2,
	KindStructure:     3,
	KindTone:          4,
}

// Insight is one observation about the text. Lower priorities come first.
type Insight struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence"`
	Impact      string   `json:"impact"`
	Priority    int      `json:"priority"`
}

// Result is the output of the insight generator.
type Result struct {
	Summary         string           `json:"summary"`
	Insights        []Insight        `json:"insights"`
	IdeaBreakdown   IdeaBreakdown    `json:"idea_breakdown"`
	WritingQuality  WritingQuality   `json:"writing_quality"`
	ContentProfile  ContentProfile   `json:"content_profile"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Generate derives the insights. It only reads its inputs.
func Generate(c complexity.Result, id ideas.Result, tok tokenizer.Result) Result {
	return Result{
		Summary:         summary(c, id),
		Insights:        observe(c, id, tok),
		IdeaBreakdown:   breakdown(id),
		WritingQuality:  quality(c, id, tok),
		ContentProfile:  profile(c, id, tok),
		Recommendations: recommend(c, id, tok),
	}
}

func summary(c complexity.Result, id ideas.Result) string {
	if c.Words == 0 {
		return "No content to analyze."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s, %d %s, %d %s.",
		c.Sentences, plural(c.Sentences, "sentence"),
		c.Words, plural(c.Words, "word"),
		id.UniqueIdeas, plural(id.UniqueIdeas, "idea"))
	fmt.Fprintf(&b, " Readability: %s (grade %.1f).", c.Difficulty, c.ConsensusGrade)
	if id.ProgressionPattern != "" {
		fmt.Fprintf(&b, " Progression: %s.", id.ProgressionPattern)
	}
	if len(id.Topics) > 0 {
		fmt.Fprintf(&b, " Topics: %s.", strings.Join(id.Topics, ", "))
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// observe applies the insight rules and orders the result by priority, then
// kind.
func observe(c complexity.Result, id ideas.Result, tok tokenizer.Result) []Insight {
	out := []Insight{}
	if c.Words == 0 {
		return out
	}
	add := func(in Insight) { out = append(out, in) }
	ease := fmt.Sprintf("Flesch reading ease %.1f", c.FleschReadingEase)
	grade := fmt.Sprintf("Flesch-Kincaid grade %.1f", c.FleschKincaidGrade)

	switch {
	case c.FleschReadingEase < th.FleschVeryDifficult:
		add(Insight{KindReadability, "Very difficult to read",
			"Most readers will need several passes to follow this text.",
			[]string{ease, grade}, ImpactHigh, 1})
	case c.FleschReadingEase < th.FleschDifficult:
		add(Insight{KindReadability, "Difficult to read",
			"The text reads at a college level.",
			[]string{ease, grade}, ImpactMedium, 2})
	case c.FleschReadingEase >= th.FleschPlain:
		add(Insight{KindReadability, "Easy to read",
			"Plain language that most readers follow on the first pass.",
			[]string{ease}, ImpactLow, 4})
	}

	sentences := len(id.Sentences)
	switch {
	case id.UniqueIdeas > th.FocusedIdeasMax && id.IdeaDensity >= th.IdeaDensityHigh:
		add(Insight{KindIdeaDiversity, "Many separate ideas",
			"Almost every sentence opens a new topic.",
			[]string{fmt.Sprintf("%d ideas in %d sentences", id.UniqueIdeas, sentences)}, ImpactHigh, 2})
	case id.UniqueIdeas == 1 && sentences > 1:
		add(Insight{KindIdeaDiversity, "Single focused idea",
			"Every sentence develops the same topic.",
			[]string{fmt.Sprintf("main topic %q", id.Clusters[0].MainTopic)}, ImpactLow, 4})
	}

	if c.LexicalDiversity < th.LexicalDiversityLow {
		add(Insight{KindVocabulary, "Repetitive vocabulary",
			"The same words recur often enough to blur the distinctions between sentences.",
			[]string{fmt.Sprintf("lexical diversity %.2f", c.LexicalDiversity)}, ImpactMedium, 3})
	}
	if share := c.AccessibleShare(); share < th.AccessibleWordsLow {
		add(Insight{KindVocabulary, "Heavy vocabulary",
			"Many words are long or have several syllables.",
			[]string{fmt.Sprintf("%.0f%% simple or moderate words", share*100)}, ImpactMedium, 2})
	}

	if c.AvgSentenceLength > th.SentenceLengthLong {
		add(Insight{KindStructure, "Long sentences",
			"Long sentences hold several requirements at once.",
			[]string{fmt.Sprintf("%.1f words per sentence", c.AvgSentenceLength),
				fmt.Sprintf("longest sentence %d words", c.LongestLength)}, ImpactHigh, 2})
	}
	if sentences > 1 && id.ConceptualCoherence < th.CoherenceLow {
		add(Insight{KindStructure, "Loose connections between sentences",
			"Consecutive sentences share few keywords.",
			[]string{fmt.Sprintf("coherence %.2f", id.ConceptualCoherence),
				fmt.Sprintf("%d topic transitions", id.TopicTransitions)}, ImpactMedium, 3})
	}

	s := tok.Sentiment
	toneEvidence := []string{fmt.Sprintf("sentiment %.2f", s.Score)}
	if len(s.Matches) > 0 {
		toneEvidence = append(toneEvidence, "cues: "+strings.Join(s.Matches, ", "))
	}
	switch s.Label {
	case "negative":
		add(Insight{KindTone, "Negative tone",
			"Negative wording can steer answers toward caution or refusal.",
			toneEvidence, ImpactLow, 3})
	case "positive":
		add(Insight{KindTone, "Positive tone",
			"Encouraging wording; it rarely changes what gets done.",
			toneEvidence, ImpactLow, 5})
	default:
		add(Insight{KindTone, "Neutral tone",
			"The wording does not push the answer in any particular direction.",
			toneEvidence, ImpactLow, 5})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return kindOrder[out[i].Type] < kindOrder[out[j].Type]
	})
	return out
}
