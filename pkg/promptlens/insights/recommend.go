package insights

import (
	"sort"

	"github.com/cognicore/promptlens/pkg/promptlens/complexity"
	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	th "github.com/cognicore/promptlens/pkg/promptlens/thresholds"
	"github.com/cognicore/promptlens/pkg/promptlens/tokenizer"
)

// Recommendation is a concrete edit to the text.
type Recommendation struct {
	Area     string `json:"area"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// recommend emits one recommendation per threshold the text crosses, most
// important first.
func recommend(c complexity.Result, id ideas.Result, tok tokenizer.Result) []Recommendation {
	out := []Recommendation{}
	if c.Words == 0 {
		return out
	}
	add := func(area, msg string, prio int) {
		out = append(out, Recommendation{Area: area, Message: msg, Priority: prio})
	}

	if c.FleschReadingEase < th.FleschDifficult {
		add(KindReadability, "Use shorter sentences and simpler words to lift reading ease above 50.", 1)
	}
	if c.FleschKincaidGrade > th.GradeLevelHigh {
		add(KindReadability, "Aim for an eighth-grade reading level; the text currently needs college reading skills.", 2)
	}
	if c.AvgSentenceLength > th.SentenceLengthMax {
		add(KindStructure, "Break sentences longer than 20 words into one statement each.", 2)
	}
	if c.SentenceComplexity > th.SentenceComplexityHigh {
		add(KindStructure, "Move side conditions and clauses into their own sentences.", 3)
	}
	if c.LexicalDiversity < th.LexicalDiversityLow {
		add(KindVocabulary, "Vary the wording; repeated terms hide which sentence adds something new.", 4)
	}
	if c.AccessibleShare() < th.AccessibleWordsLow {
		add(KindVocabulary, "Replace long or technical words where an everyday word says the same.", 3)
	}
	if len(id.Sentences) > 1 && id.ConceptualCoherence < th.CoherenceLow {
		add(KindStructure, "Connect consecutive sentences by reusing the key term of the previous one.", 3)
	}
	if id.UniqueIdeas > th.FocusedIdeasMax && id.IdeaDensity > th.IdeaDensityHigh {
		add(KindIdeaDiversity, "Cover fewer topics, or group sentences by topic.", 2)
	}
	if tok.Sentiment.Label == "negative" {
		add(KindTone, "State what should happen rather than what is wrong.", 5)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
