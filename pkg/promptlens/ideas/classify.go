package ideas

import (
	"strings"

	"github.com/cognicore/promptlens/pkg/promptlens/lexicon"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// ThoughtType is the rhetorical role of a sentence.
type ThoughtType string

const (
	TypeQuestion    ThoughtType = "question"
	TypeExample     ThoughtType = "example"
	TypeInstruction ThoughtType = "instruction"
	TypeArgument    ThoughtType = "argument"
	TypeOpinion     ThoughtType = "opinion"
	TypeIdea        ThoughtType = "idea"
	TypeDescription ThoughtType = "description"
	TypeFact        ThoughtType = "fact"
)

// cueOrder is the order in which cues are tested; it also breaks ties when
// a cluster holds equally many sentences of two types.
var cueOrder = []ThoughtType{
	TypeQuestion,
	TypeExample,
	TypeInstruction,
	TypeArgument,
	TypeOpinion,
	TypeIdea,
	TypeDescription,
	TypeFact,
}

// classify assigns a thought type and a confidence in [0,1] to one sentence.
func classify(lex *lexicon.Lexicon, sentence string) (ThoughtType, float64) {
	trimmed := strings.TrimSpace(sentence)
	words := textstat.Words(trimmed)

	if strings.HasSuffix(trimmed, "?") {
		if len(words) > 0 && lex.Is(lexicon.QuestionStarters, words[0]) {
			return TypeQuestion, 0.95
		}
		return TypeQuestion, 0.9
	}
	if lex.HasCue(lexicon.ExampleMarkers, trimmed) {
		return TypeExample, 0.85
	}
	if lead := leadingVerb(lex, trimmed); lead != "" && lex.Is(lexicon.ActionVerbs, lead) {
		return TypeInstruction, 0.85
	}
	if lex.HasCue(lexicon.Modals, trimmed) {
		return TypeInstruction, 0.7
	}
	if lex.HasCue(lexicon.ArgumentMarkers, trimmed) {
		return TypeArgument, 0.75
	}
	if lex.HasCue(lexicon.Hedges, trimmed) {
		return TypeOpinion, 0.75
	}
	if lex.HasCue(lexicon.IdeaMarkers, trimmed) {
		return TypeIdea, 0.7
	}

	adjectives := 0
	for _, w := range words {
		if lex.Is(lexicon.Adjectives, w) {
			adjectives++
		}
	}
	if adjectives > 0 && textstat.Ratio(float64(adjectives), float64(len(words))) >= 0.2 {
		return TypeDescription, 0.6
	}
	return TypeFact, 0.5
}

// leadingVerb returns the first word after any leading connector
// ("Then", "And then", "Finally,").
func leadingVerb(lex *lexicon.Lexicon, sentence string) string {
	rest, _ := lex.TrimLeading(lexicon.Connectors, sentence)
	words := textstat.Words(rest)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0])
}
