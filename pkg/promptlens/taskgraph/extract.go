package taskgraph

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	"github.com/cognicore/promptlens/pkg/promptlens/lexicon"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// Edge strengths.
const (
	sequenceStrength = 0.9
	temporalStrength = 0.8
	causalStrength   = 0.5
)

const maxTitleRunes = 60

var temporalCue = regexp.MustCompile(`(?i)\b(?:after|once|when)\b`)

// Extractor turns sentences into a task graph.
type Extractor struct {
	lexicon *lexicon.Lexicon
}

// NewExtractor creates an extractor. A nil lexicon selects the built-in one.
func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Extractor{lexicon: lex}
}

// statement is a sentence with its cluster, the input of task extraction.
type statement struct {
	text     string
	cluster  string
	keywords []string
}

// Extract builds the graph from the idea analyzer's sentence to cluster
// mapping. When the mapping is empty, text is split naively on periods.
func (e *Extractor) Extract(text string, assignments []ideas.Assignment) Graph {
	var stmts []statement
	for _, a := range assignments {
		stmts = append(stmts, statement{text: a.Sentence, cluster: a.ClusterID, keywords: a.Keywords})
	}
	if len(stmts) == 0 {
		for _, s := range strings.Split(text, ".") {
			if s = strings.TrimSpace(s); s != "" {
				stmts = append(stmts, statement{text: s + "."})
			}
		}
	}

	g := newGraph()
	for _, st := range stmts {
		task, ok := e.task(st, len(g.Tasks)+1)
		if !ok {
			continue
		}
		g.add(task)
		e.linkDependencies(&g, st)
	}
	e.linkRelated(&g)
	g.finalize()
	return g
}

// task classifies a statement and fills in a Task, or reports false when the
// statement asks for nothing.
func (e *Extractor) task(st statement, n int) (Task, bool) {
	lex := e.lexicon
	sentence := strings.TrimSpace(st.text)
	body, _ := lex.TrimLeading(lexicon.Connectors, sentence)
	words := textstat.Words(body)
	if len(words) == 0 {
		return Task{}, false
	}

	var typ TaskType
	var confidence float64
	switch {
	case strings.HasSuffix(sentence, "?"):
		typ, confidence = TypeQuestion, 0.9
	case lex.HasCue(lexicon.RequirementCues, sentence):
		typ, confidence = TypeRequirement, 0.85
	case lex.HasCue(lexicon.NeedCues, sentence):
		typ, confidence = TypeNeed, 0.75
	case lex.HasCue(lexicon.GoalCues, sentence):
		typ, confidence = TypeGoal, 0.7
	case lex.Is(lexicon.ActionVerbs, words[0]):
		typ, confidence = TypeAction, 0.8
	default:
		return Task{}, false
	}

	verbs := []string{}
	seen := make(map[string]bool)
	for _, w := range words {
		lower := strings.ToLower(w)
		if lex.Is(lexicon.ActionVerbs, lower) && !seen[lower] {
			seen[lower] = true
			verbs = append(verbs, lower)
		}
	}
	if typ != TypeAction && len(verbs) > 0 {
		confidence += 0.1
	}

	keywords := st.keywords
	if keywords == nil {
		keywords = ideas.Keywords(lex, sentence)
	}

	return Task{
		ID:              fmt.Sprintf("task_%d", n),
		Title:           title(body),
		Type:            typ,
		Priority:        e.priority(sentence),
		EstimatedEffort: e.effort(sentence, len(words)),
		Confidence:      textstat.Round(textstat.Clamp(confidence, 0, 1), 2),
		Keywords:        append([]string{}, keywords...),
		ActionVerbs:     verbs,
		Description:     sentence,
		DependsOn:       []string{},
		Blocks:          []string{},
		ClusterID:       st.cluster,
	}, true
}

func (e *Extractor) priority(sentence string) string {
	switch {
	case e.lexicon.HasCue(lexicon.UrgencyHigh, sentence):
		return PriorityHigh
	case e.lexicon.HasCue(lexicon.UrgencyLow, sentence):
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func (e *Extractor) effort(sentence string, words int) string {
	switch {
	case e.lexicon.HasCue(lexicon.ScopeLarge, sentence):
		return EffortLarge
	case e.lexicon.HasCue(lexicon.ScopeSmall, sentence):
		return EffortSmall
	case words <= 8:
		return EffortSmall
	case words <= 20:
		return EffortMedium
	default:
		return EffortLarge
	}
}

// linkDependencies links the newest task to earlier ones according to the
// sequencing language of its sentence.
func (e *Extractor) linkDependencies(g *Graph, st statement) {
	cur := len(g.Tasks) - 1
	if cur == 0 {
		return
	}
	prev := cur - 1
	lex := e.lexicon
	sentence := strings.TrimSpace(st.text)
	body, leading := lex.TrimLeading(lexicon.Connectors, sentence)

	for _, cue := range leading {
		switch {
		case lex.Is(lexicon.PrecedenceMarkers, cue):
			// "Before that, ..." / "But first, ...": the previous task waits.
			g.link(prev, cur, RelationBlocks, sequenceStrength)
			return
		case lex.Is(lexicon.SequenceMarkers, cue):
			g.link(cur, prev, RelationDependsOn, sequenceStrength)
			return
		}
	}
	if lex.HasCue(lexicon.PrecedenceMarkers, body) {
		g.link(prev, cur, RelationBlocks, sequenceStrength)
		return
	}

	if g.Tasks[cur].Type != TypeQuestion && temporalCue.MatchString(sentence) {
		g.link(cur, bestOverlap(g, cur), RelationDependsOn, temporalStrength)
		return
	}

	if e.causal(sentence, leading) {
		g.link(cur, prev, RelationDependsOn, causalStrength)
	}
}

// causal reports whether the sentence follows from the previous one. A bare
// "so" only counts as a leading connector, since "so that" states a goal.
func (e *Extractor) causal(sentence string, leading []string) bool {
	for _, cue := range leading {
		if e.lexicon.Is(lexicon.CausalMarkers, cue) {
			return true
		}
	}
	for _, cue := range e.lexicon.Cues(lexicon.CausalMarkers, sentence) {
		if cue != "so" {
			return true
		}
	}
	return false
}

// bestOverlap picks the earlier task sharing the most keywords with task cur.
// Ties go to the most recent task; with no overlap at all, the previous task.
func bestOverlap(g *Graph, cur int) int {
	best, bestShared := cur-1, 0
	for i := cur - 1; i >= 0; i-- {
		shared := len(textstat.Shared(g.Tasks[cur].Keywords, g.Tasks[i].Keywords))
		if shared > bestShared {
			best, bestShared = i, shared
		}
	}
	return best
}

// linkRelated adds the non-dependency relations between tasks that are not
// already linked. Within a cluster each task is joined only to its nearest
// earlier member: subtask when it is an action under the cluster's latest
// goal, related otherwise. Consecutive independent actions from different
// clusters are parallel.
func (e *Extractor) linkRelated(g *Graph) {
	lastMember := make(map[string]int)
	lastGoal := make(map[string]int)
	for j, b := range g.Tasks {
		if j > 0 {
			a := g.Tasks[j-1]
			sameCluster := a.ClusterID != "" && a.ClusterID == b.ClusterID
			if !sameCluster && a.Type == TypeAction && b.Type == TypeAction {
				g.relate(j-1, j, RelationParallel, 0.5)
			}
		}
		if b.ClusterID == "" {
			continue
		}

		subtask := false
		if goal, ok := lastGoal[b.ClusterID]; ok && b.Type == TypeAction {
			subtask = g.relate(goal, j, RelationSubtask, 0.7)
		}
		if prev, ok := lastMember[b.ClusterID]; ok && !subtask {
			strength := textstat.Jaccard(g.Tasks[prev].Keywords, b.Keywords)
			if strength < 0.3 {
				strength = 0.3
			}
			g.relate(prev, j, RelationRelated, textstat.Round(strength, 4))
		}

		lastMember[b.ClusterID] = j
		if b.Type == TypeGoal {
			lastGoal[b.ClusterID] = j
		}
	}
}

// title is the task statement without trailing punctuation, capitalized and
// cut to a readable length.
func title(body string) string {
	t := strings.TrimRightFunc(strings.TrimSpace(body), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	if t == "" {
		return t
	}
	r, size := utf8.DecodeRuneInString(t)
	t = string(unicode.ToUpper(r)) + t[size:]
	if utf8.RuneCountInString(t) > maxTitleRunes {
		runes := []rune(t)
		t = strings.TrimSpace(string(runes[:maxTitleRunes])) + "..."
	}
	return t
}
