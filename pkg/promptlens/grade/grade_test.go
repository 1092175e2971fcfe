package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/promptlens/pkg/promptlens/complexity"
	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	"github.com/cognicore/promptlens/pkg/promptlens/taskgraph"
	th "github.com/cognicore/promptlens/pkg/promptlens/thresholds"
)

func analyze(text string) Input {
	id := ideas.NewAnalyzer(nil, 0).Analyze(text)
	return Input{
		Complexity: complexity.Analyze(text),
		Ideas:      id,
		Graph:      taskgraph.NewExtractor(nil).Extract(text, id.Assignments()),
	}
}

func TestLetterBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{95, "A+"},
		{94.99, "A"},
		{90, "A"},
		{89.9, "A-"},
		{87, "A-"},
		{86.9, "B+"},
		{80, "B"},
		{77, "B-"},
		{74, "C+"},
		{70, "C"},
		{67, "C-"},
		{64, "D+"},
		{60, "D"},
		{59.9, "D-"},
		{56.1, "D-"},
		{56, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Letter(tc.score), "score %v", tc.score)
	}
}

func TestPercentile(t *testing.T) {
	assert.Equal(t, 50.0, Percentile(65))
	assert.Equal(t, 84.1, Percentile(77))
	assert.Less(t, Percentile(20), 1.0)
	assert.Greater(t, Percentile(100), 99.0)
}

func TestWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range OverallWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	for name, fs := range factors(analyze("Build a login page.")) {
		total := 0.0
		for _, f := range fs {
			total += f.Weight
		}
		assert.InDelta(t, 1.0, total, 1e-9, name)
	}
}

func TestEmptyInputGradesF(t *testing.T) {
	g := NewGrader(0).Grade(analyze(""))

	assert.Zero(t, g.Overall.Score)
	assert.Equal(t, "F", g.Overall.Grade)
	assert.Nil(t, g.TaskComplexity.Grade)
	require.NotNil(t, g.Understandability.Grade)
	assert.Equal(t, "F", *g.Understandability.Grade)

	assert.Equal(t, []string{"Understandability", "Specificity", "Clarity"}, g.Strengths)
	assert.Equal(t, []string{"Understandability", "Specificity", "Clarity"}, g.WeakAreas)

	assert.Len(t, g.Suggestions, len(DefaultRules)-1, "every low-score rule fires, the task load rule does not")
	for _, s := range g.Suggestions {
		assert.Equal(t, PriorityHigh, s.Priority)
		assert.NotEqual(t, TaskComplexity, s.Dimension)
	}
}

func TestLoginPageGrade(t *testing.T) {
	g := NewGrader(DefaultStrengths).Grade(analyze("Build a login page. Then add password reset. Finally write tests."))

	for name, d := range g.Dimensions() {
		assert.GreaterOrEqual(t, d.Score, 0.0, name)
		assert.LessOrEqual(t, d.Score, 100.0, name)
		assert.NotEmpty(t, d.Label, name)
		for _, f := range d.Factors {
			assert.GreaterOrEqual(t, f.Value, 0.0, "%s.%s", name, f.Name)
			assert.LessOrEqual(t, f.Value, 100.0, "%s.%s", name, f.Name)
		}
		if name == TaskComplexity {
			assert.Nil(t, d.Grade)
		} else {
			require.NotNil(t, d.Grade, name)
			assert.Equal(t, Letter(d.Score), *d.Grade, name)
		}
	}

	// 0.40·100 task coverage + 0.30·100 verbs + 0.30·80 confidence
	assert.InDelta(t, 94, g.Actionability.Score, 0.01)
	assert.Equal(t, Letter(g.Overall.Score), g.Overall.Grade)
	assert.Len(t, g.Strengths, 3)
	assert.Len(t, g.WeakAreas, 3)
	assert.Contains(t, g.Strengths, "Actionability")
	assert.Contains(t, g.Overall.Summary, "Overall grade "+g.Overall.Grade)
}

func TestStrengthsCountIsCapped(t *testing.T) {
	g := NewGrader(10).Grade(analyze("Write a haiku about autumn."))
	assert.Len(t, g.Strengths, 7)
	assert.Len(t, g.WeakAreas, 7)
}

func TestSuggestionPriorityFromMissDistance(t *testing.T) {
	got := suggest(DefaultRules, map[string]float64{Understandability: 65})
	require.Len(t, got, 1)
	assert.Equal(t, PriorityLow, got[0].Priority)

	got = suggest(DefaultRules, map[string]float64{Understandability: 45})
	require.Len(t, got, 2)
	assert.Equal(t, PriorityHigh, got[0].Priority, "misses 70 by 25")
	assert.Equal(t, PriorityLow, got[1].Priority, "misses 50 by 5")

	got = suggest(DefaultRules, map[string]float64{Specificity: 58, Clarity: 42})
	require.Len(t, got, 3)
	assert.Equal(t, Clarity, got[0].Dimension)
	assert.Equal(t, PriorityHigh, got[0].Priority)
	assert.Equal(t, Specificity, got[1].Dimension)
	assert.Equal(t, PriorityMedium, got[1].Priority)
	assert.Equal(t, Clarity, got[2].Dimension)
	assert.Equal(t, PriorityLow, got[2].Priority)
}

func TestTaskLoadRuleFiresAbove(t *testing.T) {
	assert.Empty(t, suggest(DefaultRules, map[string]float64{TaskComplexity: th.TaskLoadHeavy}))

	got := suggest(DefaultRules, map[string]float64{TaskComplexity: 100})
	require.Len(t, got, 1)
	assert.Equal(t, PriorityHigh, got[0].Priority)
}

func TestSuggestionsAreMonotonic(t *testing.T) {
	for _, dim := range dimensionOrder {
		if dim == TaskComplexity {
			continue
		}
		fired := map[string]bool{}
		for score := 100.0; score >= 0; score -= 0.5 {
			now := map[string]bool{}
			for _, s := range suggest(DefaultRules, map[string]float64{dim: score}) {
				now[s.Message] = true
			}
			for msg := range fired {
				assert.True(t, now[msg], "%s at %.1f dropped %q", dim, score, msg)
			}
			fired = now
		}
	}
}

func TestMetricsEnvelope(t *testing.T) {
	g := NewGrader(0).Grade(analyze("Build a login page."))
	set := g.Metrics()
	require.Contains(t, set, "prompt_grade")
	assert.Equal(t, g.Overall.Grade, set["overall_grade"].Value())
	assert.Equal(t, len(g.Suggestions), set["suggestion_count"].Value())
}
