package insights

import (
	"math"

	"github.com/cognicore/promptlens/pkg/promptlens/complexity"
	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
	th "github.com/cognicore/promptlens/pkg/promptlens/thresholds"
	"github.com/cognicore/promptlens/pkg/promptlens/tokenizer"
)

// Writing quality weights.
const (
	clarityWeight     = 0.30
	coherenceWeight   = 0.25
	depthWeight       = 0.25
	originalityWeight = 0.20
)

// WritingQuality scores the prose on four 0-100 axes.
type WritingQuality struct {
	Clarity     float64 `json:"clarity"`
	Coherence   float64 `json:"coherence"`
	Depth       float64 `json:"depth"`
	Originality float64 `json:"originality"`
	Overall     float64 `json:"overall"`
	Rating      string  `json:"rating"`
}

// ContentProfile characterizes the text as a whole. Audience follows the
// grade level, Style the sentence complexity, Vocabulary the lexical
// diversity and Breadth the share of distinct concepts.
type ContentProfile struct {
	Type       string `json:"type"`
	Purpose    string `json:"purpose"`
	Audience   string `json:"audience"`
	Tone       string `json:"tone"`
	Style      string `json:"style"`
	Vocabulary string `json:"vocabulary"`
	Breadth    string `json:"breadth"`
}

func quality(c complexity.Result, id ideas.Result, tok tokenizer.Result) WritingQuality {
	if c.Words == 0 {
		return WritingQuality{Rating: "none"}
	}
	score := func(v float64) float64 { return textstat.Round(textstat.Clamp(v, 0, 100), 2) }

	q := WritingQuality{
		Clarity:   score(0.5*textstat.Clamp(c.FleschReadingEase, 0, 100) + 0.5*100*c.AccessibleShare()),
		Coherence: score(70*id.ConceptualCoherence + 30*id.ThoughtConsistency),
		Depth: score(50*textstat.Clamp(c.ConsensusGrade/th.GradeLevelHigh, 0, 1) +
			50*math.Min(1, float64(id.UniqueIdeas)/th.FocusedIdeasMax)),
		Originality: score(60*c.LexicalDiversity +
			40*(1-textstat.Ratio(float64(tok.StopWords), float64(tok.WordCount)))),
	}
	q.Overall = score(clarityWeight*q.Clarity + coherenceWeight*q.Coherence +
		depthWeight*q.Depth + originalityWeight*q.Originality)
	q.Rating = rating(q.Overall)
	return q
}

func rating(v float64) string {
	switch {
	case v >= th.Strong:
		return "excellent"
	case v >= th.Passing:
		return "good"
	case v >= th.Failing:
		return "fair"
	default:
		return "needs work"
	}
}

var contentTypes = map[ideas.ThoughtType][2]string{
	ideas.TypeQuestion:    {"inquiry", "information request"},
	ideas.TypeExample:     {"illustrative", "explanation"},
	ideas.TypeInstruction: {"instructional", "task request"},
	ideas.TypeArgument:    {"persuasive", "persuasion"},
	ideas.TypeOpinion:     {"persuasive", "persuasion"},
	ideas.TypeIdea:        {"conceptual", "exploration"},
	ideas.TypeDescription: {"descriptive", "explanation"},
	ideas.TypeFact:        {"informational", "explanation"},
}

func profile(c complexity.Result, id ideas.Result, tok tokenizer.Result) ContentProfile {
	if c.Words == 0 {
		return ContentProfile{
			Type: "empty", Purpose: "none", Audience: "general", Tone: "neutral",
			Style: "none", Vocabulary: "none", Breadth: "none",
		}
	}
	kind := contentTypes[id.DominantType()]
	p := ContentProfile{Type: kind[0], Purpose: kind[1], Tone: tok.Sentiment.Label}

	switch {
	case c.ConsensusGrade <= 6:
		p.Audience = "general"
	case c.ConsensusGrade <= th.GradeLevelHigh:
		p.Audience = "informed"
	default:
		p.Audience = "expert"
	}
	if p.Tone == "neutral" && tok.SyntaxMix["exclamatory"] > tok.SyntaxMix["declarative"] {
		p.Tone = "emphatic"
	}

	switch {
	case c.SentenceComplexity <= th.SentenceComplexityMax:
		p.Style = "concise"
	case c.SentenceComplexity <= th.SentenceComplexityHigh:
		p.Style = "balanced"
	default:
		p.Style = "elaborate"
	}

	switch {
	case c.LexicalDiversity < th.LexicalDiversityLow:
		p.Vocabulary = "repetitive"
	case c.LexicalDiversity > th.LexicalDiversityHigh:
		p.Vocabulary = "varied"
	default:
		p.Vocabulary = "moderate"
	}

	switch {
	case id.ConceptualBreadth < th.BreadthNarrow:
		p.Breadth = "focused"
	case id.ConceptualBreadth > th.BreadthWide:
		p.Breadth = "broad"
	default:
		p.Breadth = "moderate"
	}
	return p
}
