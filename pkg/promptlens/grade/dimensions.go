package grade

import (
	"math"

	"github.com/cognicore/promptlens/pkg/promptlens/complexity"
	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	"github.com/cognicore/promptlens/pkg/promptlens/taskgraph"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
	th "github.com/cognicore/promptlens/pkg/promptlens/thresholds"
)

// Dimension keys, in reporting order.
const (
	Understandability  = "understandability"
	Specificity        = "specificity"
	TaskComplexity     = "task_complexity"
	Clarity            = "clarity"
	Actionability      = "actionability"
	StructureQuality   = "structure_quality"
	ContextSufficiency = "context_sufficiency"
	ScopeManagement    = "scope_management"
)

var dimensionOrder = []string{
	Understandability,
	Specificity,
	TaskComplexity,
	Clarity,
	Actionability,
	StructureQuality,
	ContextSufficiency,
	ScopeManagement,
}

// OverallWeights blend the dimension scores into the overall score.
var OverallWeights = map[string]float64{
	Understandability:  0.20,
	Specificity:        0.15,
	TaskComplexity:     0.15,
	Clarity:            0.15,
	Actionability:      0.15,
	StructureQuality:   0.10,
	ContextSufficiency: 0.05,
	ScopeManagement:    0.05,
}

var labels = map[string]string{
	Understandability:  "Understandability",
	Specificity:        "Specificity",
	TaskComplexity:     "Task Complexity",
	Clarity:            "Clarity",
	Actionability:      "Actionability",
	StructureQuality:   "Structure Quality",
	ContextSufficiency: "Context Sufficiency",
	ScopeManagement:    "Scope Management",
}

var descriptions = map[string]string{
	Understandability:  "How easily a reader can parse the prompt: readability, sentence length and vocabulary.",
	Specificity:        "How concrete the prompt is: distinct keywords, detailed tasks and committed language.",
	TaskComplexity:     "How much work the prompt asks for. Reported, not graded: more is not worse.",
	Clarity:            "How consistent and direct the prompt reads.",
	Actionability:      "How much of the prompt turns into tasks a model can act on.",
	StructureQuality:   "How well ideas and steps are ordered.",
	ContextSufficiency: "Whether the prompt carries enough background, domain and goal to act on.",
	ScopeManagement:    "Whether the amount of work fits in one prompt.",
}

// Input is the upstream analysis the grader scores.
type Input struct {
	Complexity complexity.Result
	Ideas      ideas.Result
	Graph      taskgraph.Graph
}

// Factor is one normalized contribution to a dimension score.
type Factor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

func factor(name string, weight, value float64) Factor {
	return Factor{Name: name, Weight: weight, Value: textstat.Round(textstat.Clamp(value, 0, 100), 2)}
}

// weighted sums weight·value over the factors.
func weighted(factors []Factor) float64 {
	sum := 0.0
	for _, f := range factors {
		sum += f.Weight * f.Value
	}
	return sum
}

// factors computes the named factors of each dimension, each normalized to
// [0,100]. The weights of every dimension sum to 1.
func factors(in Input) map[string][]Factor {
	c, id, g := in.Complexity, in.Ideas, in.Graph
	empty := c.Words == 0
	sentences := len(id.Sentences)
	opinionShare := textstat.Ratio(float64(id.TypeDistribution[string(ideas.TypeOpinion)]), float64(sentences))

	return map[string][]Factor{
		Understandability: {
			factor("flesch_reading_ease", 0.30, guard(empty, c.FleschReadingEase)),
			factor("avg_sentence_length", 0.20, guard(empty, sentenceLengthScore(c.AvgSentenceLength))),
			factor("sentence_complexity", 0.20, guard(empty, sentenceComplexityScore(c.SentenceComplexity))),
			factor("lexical_diversity", 0.15, guard(empty, diversityScore(c.LexicalDiversity))),
			factor("word_complexity", 0.15, guard(empty, 100*c.AccessibleShare())),
		},
		Specificity: {
			factor("keyword_density", 0.35, 100*textstat.Ratio(float64(keywordCount(id)), float64(c.Words))/0.5),
			factor("task_detail", 0.25, 100*textstat.Ratio(float64(taskKeywords(g)), float64(g.TotalTasks))/4),
			factor("committed_language", 0.20, guard(empty, 100*(1-opinionShare))),
			factor("conceptual_breadth", 0.20, 100*id.ConceptualBreadth),
		},
		TaskComplexity: {
			factor("task_count", 0.40, 100*float64(g.TotalTasks)/8),
			factor("graph_complexity", 0.30, 100*g.GraphComplexity),
			factor("effort", 0.30, effortScore(g)),
		},
		Clarity: {
			factor("thought_consistency", 0.35, 100*id.ThoughtConsistency),
			factor("conceptual_coherence", 0.25, 100*id.ConceptualCoherence),
			factor("grade_level", 0.20, guard(empty, 100-math.Max(0, c.FleschKincaidGrade-th.GradeLevelTarget)*10)),
			factor("directness", 0.20, guard(empty, 100*(1-opinionShare))),
		},
		Actionability: {
			factor("task_coverage", 0.40, 100*textstat.Ratio(float64(g.TotalTasks), float64(sentences))),
			factor("action_verbs", 0.30, 100*textstat.Ratio(float64(tasksWithVerbs(g)), float64(g.TotalTasks))),
			factor("task_confidence", 0.30, 100*meanConfidence(g)),
		},
		StructureQuality: {
			factor("progression", 0.40, progressionScore(id.ProgressionPattern)),
			factor("sequencing", 0.30, sequencingScore(g)),
			factor("sentence_balance", 0.30, guard(empty, balanceScore(c.SentenceScores))),
		},
		ContextSufficiency: {
			factor("length", 0.50, contextLengthScore(c.Words)),
			factor("domain_grounding", 0.25, groundingScore(len(id.Topics), empty)),
			factor("stated_intent", 0.25, intentScore(g, empty)),
		},
		ScopeManagement: {
			factor("task_count_fit", 0.40, taskCountFit(g.TotalTasks, empty)),
			factor("effort_balance", 0.30, effortBalance(g, empty)),
			factor("idea_focus", 0.30, ideaFocus(id.UniqueIdeas, empty)),
		},
	}
}

func guard(empty bool, v float64) float64 {
	if empty {
		return 0
	}
	return v
}

// sentenceLengthScore is 100 inside the ideal band and falls off on either
// side of it.
func sentenceLengthScore(avg float64) float64 {
	switch {
	case avg < th.SentenceLengthMin:
		return 100 - (th.SentenceLengthMin-avg)*5
	case avg > th.SentenceLengthMax:
		return 100 - (avg-th.SentenceLengthMax)*4
	default:
		return 100
	}
}

func sentenceComplexityScore(avg float64) float64 {
	if avg <= th.SentenceComplexityMax {
		return 100
	}
	return 100 - (avg-th.SentenceComplexityMax)*8
}

func diversityScore(ld float64) float64 {
	switch {
	case ld < th.LexicalDiversityLow:
		return 100 * ld / th.LexicalDiversityLow
	case ld > th.LexicalDiversityHigh:
		return 100 - (ld-th.LexicalDiversityHigh)*150
	default:
		return 100
	}
}

func keywordCount(id ideas.Result) int {
	n := 0
	for _, s := range id.Sentences {
		n += len(s.Keywords)
	}
	return n
}

func taskKeywords(g taskgraph.Graph) int {
	n := 0
	for _, t := range g.Tasks {
		n += len(t.Keywords)
	}
	return n
}

func tasksWithVerbs(g taskgraph.Graph) int {
	n := 0
	for _, t := range g.Tasks {
		if len(t.ActionVerbs) > 0 {
			n++
		}
	}
	return n
}

func meanConfidence(g taskgraph.Graph) float64 {
	sum := 0.0
	for _, t := range g.Tasks {
		sum += t.Confidence
	}
	return textstat.Ratio(sum, float64(len(g.Tasks)))
}

func effortScore(g taskgraph.Graph) float64 {
	points := map[string]float64{
		taskgraph.EffortSmall:  25,
		taskgraph.EffortMedium: 60,
		taskgraph.EffortLarge:  100,
	}
	sum := 0.0
	for _, t := range g.Tasks {
		sum += points[t.EstimatedEffort]
	}
	return textstat.Ratio(sum, float64(len(g.Tasks)))
}

func progressionScore(pattern string) float64 {
	switch pattern {
	case ideas.ProgressionLinear:
		return 100
	case ideas.ProgressionFocused:
		return 90
	case ideas.ProgressionRecursive:
		return 60
	case ideas.ProgressionScattered:
		return 30
	default:
		return 0
	}
}

// sequencingScore rewards explicit ordering between tasks. A single task
// needs none.
func sequencingScore(g taskgraph.Graph) float64 {
	switch g.TotalTasks {
	case 0:
		return 0
	case 1:
		return 100
	}
	return 100 * float64(g.DependencyCount) / float64(g.TotalTasks-1)
}

// balanceScore penalizes uneven sentence complexity by its coefficient of
// variation.
func balanceScore(scores []float64) float64 {
	if len(scores) < 2 {
		return 100
	}
	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))
	if mean == 0 {
		return 100
	}
	variance := 0.0
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	cv := math.Sqrt(variance/float64(len(scores))) / mean
	return 100 - cv*100
}

func contextLengthScore(words int) float64 {
	switch {
	case words < th.ContextWordsMin:
		return 100 * float64(words) / th.ContextWordsMin
	case words > th.ContextWordsMax:
		return 100 - float64(words-th.ContextWordsMax)/10
	default:
		return 100
	}
}

func groundingScore(topics int, empty bool) float64 {
	switch {
	case empty:
		return 0
	case topics >= 2:
		return 100
	case topics == 1:
		return 70
	default:
		return 20
	}
}

// intentScore rewards prompts that say why, not only what.
func intentScore(g taskgraph.Graph, empty bool) float64 {
	if empty {
		return 0
	}
	for _, t := range g.Tasks {
		switch t.Type {
		case taskgraph.TypeGoal, taskgraph.TypeRequirement, taskgraph.TypeNeed:
			return 100
		}
	}
	return 40
}

func taskCountFit(n int, empty bool) float64 {
	switch {
	case empty:
		return 0
	case n == 0:
		return 50
	case n <= th.TasksMax:
		return 100
	default:
		return 100 - float64(n-th.TasksMax)*12
	}
}

func effortBalance(g taskgraph.Graph, empty bool) float64 {
	if empty {
		return 0
	}
	if g.TotalTasks == 0 {
		return 50
	}
	large := 0
	for _, t := range g.Tasks {
		if t.EstimatedEffort == taskgraph.EffortLarge {
			large++
		}
	}
	return 100 * float64(g.TotalTasks-large) / float64(g.TotalTasks)
}

func ideaFocus(unique int, empty bool) float64 {
	switch {
	case empty:
		return 0
	case unique <= th.FocusedIdeasMax:
		return 100
	default:
		return 100 - float64(unique-th.FocusedIdeasMax)*15
	}
}
