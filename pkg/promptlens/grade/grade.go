// Package grade scores a prompt on eight weighted dimensions, maps the scores
// to letter grades and turns weak scores into prioritized suggestions.
package grade

import (
	"fmt"
	"sort"

	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// DefaultStrengths is how many strengths and weak areas are reported.
const DefaultStrengths = 3

// Dimension is one graded aspect of a prompt. Grade is nil for dimensions
// that are reported but not graded.
type Dimension struct {
	Score       float64  `json:"score"`
	Grade       *string  `json:"grade"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Factors     []Factor `json:"factors"`
}

// Overall is the weighted blend of every dimension.
type Overall struct {
	Score      float64 `json:"score"`
	Grade      string  `json:"grade"`
	Summary    string  `json:"summary"`
	Percentile float64 `json:"percentile"`
}

// PromptGrade is the full grading report.
type PromptGrade struct {
	Understandability  Dimension    `json:"understandability"`
	Specificity        Dimension    `json:"specificity"`
	TaskComplexity     Dimension    `json:"task_complexity"`
	Clarity            Dimension    `json:"clarity"`
	Actionability      Dimension    `json:"actionability"`
	StructureQuality   Dimension    `json:"structure_quality"`
	ContextSufficiency Dimension    `json:"context_sufficiency"`
	ScopeManagement    Dimension    `json:"scope_management"`
	Overall            Overall      `json:"overall_grade"`
	Strengths          []string     `json:"strengths"`
	WeakAreas          []string     `json:"weak_areas"`
	Suggestions        []Suggestion `json:"suggestions"`
}

// Dimensions returns the dimensions keyed by name.
func (p PromptGrade) Dimensions() map[string]Dimension {
	return map[string]Dimension{
		Understandability:  p.Understandability,
		Specificity:        p.Specificity,
		TaskComplexity:     p.TaskComplexity,
		Clarity:            p.Clarity,
		Actionability:      p.Actionability,
		StructureQuality:   p.StructureQuality,
		ContextSufficiency: p.ContextSufficiency,
		ScopeManagement:    p.ScopeManagement,
	}
}

// Grader scores prompts. It is immutable and safe for concurrent use.
type Grader struct {
	strengths int
	rules     []Rule
}

// NewGrader creates a grader reporting n strengths and weak areas. A
// non-positive n selects DefaultStrengths.
func NewGrader(n int) *Grader {
	if n <= 0 {
		n = DefaultStrengths
	}
	return &Grader{strengths: n, rules: DefaultRules}
}

// WithRules returns a copy of the grader using rules instead of DefaultRules.
func (g *Grader) WithRules(rules []Rule) *Grader {
	cp := *g
	cp.rules = rules
	return &cp
}

// Grade scores the analysis.
func (g *Grader) Grade(in Input) PromptGrade {
	all := factors(in)
	dims := make(map[string]Dimension, len(all))
	scores := make(map[string]float64, len(all))
	overall := 0.0

	for _, name := range dimensionOrder {
		fs := all[name]
		score := textstat.Round(textstat.Clamp(weighted(fs), 0, 100), 2)
		d := Dimension{
			Score:       score,
			Label:       labels[name],
			Description: descriptions[name],
			Factors:     fs,
		}
		if graded(name) {
			letter := Letter(score)
			d.Grade = &letter
		}
		dims[name] = d
		scores[name] = score
		overall += OverallWeights[name] * score
	}
	overall = textstat.Round(textstat.Clamp(overall, 0, 100), 2)

	strong, weak := g.rank(scores)
	out := PromptGrade{
		Understandability:  dims[Understandability],
		Specificity:        dims[Specificity],
		TaskComplexity:     dims[TaskComplexity],
		Clarity:            dims[Clarity],
		Actionability:      dims[Actionability],
		StructureQuality:   dims[StructureQuality],
		ContextSufficiency: dims[ContextSufficiency],
		ScopeManagement:    dims[ScopeManagement],
		Strengths:          strong,
		WeakAreas:          weak,
		Suggestions:        suggest(g.rules, scores),
	}
	out.Overall = Overall{
		Score:      overall,
		Grade:      Letter(overall),
		Percentile: Percentile(overall),
	}
	out.Overall.Summary = summary(out.Overall, strong, weak)
	return out
}

func graded(name string) bool { return name != TaskComplexity }

// rank returns the labels of the n highest and n lowest graded dimensions.
// Equal scores keep reporting order.
func (g *Grader) rank(scores map[string]float64) (strong, weak []string) {
	var names []string
	for _, name := range dimensionOrder {
		if graded(name) {
			names = append(names, name)
		}
	}
	n := g.strengths
	if n > len(names) {
		n = len(names)
	}

	desc := append([]string(nil), names...)
	sort.SliceStable(desc, func(i, j int) bool { return scores[desc[i]] > scores[desc[j]] })
	asc := append([]string(nil), names...)
	sort.SliceStable(asc, func(i, j int) bool { return scores[asc[i]] < scores[asc[j]] })

	strong = make([]string, 0, n)
	weak = make([]string, 0, n)
	for i := 0; i < n; i++ {
		strong = append(strong, labels[desc[i]])
		weak = append(weak, labels[asc[i]])
	}
	return strong, weak
}

func summary(o Overall, strong, weak []string) string {
	s := fmt.Sprintf("Overall grade %s (%.1f/100, better than %.1f%% of prompts).", o.Grade, o.Score, o.Percentile)
	if len(strong) > 0 {
		s += fmt.Sprintf(" Strongest: %s.", strong[0])
	}
	if len(weak) > 0 {
		s += fmt.Sprintf(" Needs the most work: %s.", weak[0])
	}
	return s
}
