package grade

import (
	"math"
	"sort"

	th "github.com/cognicore/promptlens/pkg/promptlens/thresholds"
)

// Suggestion priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Direction says which side of its threshold a rule fires on.
type Direction int

const (
	Below Direction = iota
	Above
)

// Rule turns a dimension score into a suggestion once it crosses a threshold.
type Rule struct {
	Dimension string
	Threshold float64
	Direction Direction
	Message   string
	Impact    string
	Example   string
}

// Suggestion is one prioritized improvement.
type Suggestion struct {
	Dimension string `json:"dimension"`
	Priority  string `json:"priority"`
	Message   string `json:"message"`
	Impact    string `json:"impact"`
	Example   string `json:"example"`
}

// DefaultRules is the suggestion rule table.
var DefaultRules = []Rule{
	{
		Dimension: Understandability, Threshold: th.Passing, Direction: Below,
		Message: "Shorten long sentences and prefer everyday words.",
		Impact:  "Easier to parse prompts get more faithful answers.",
		Example: "Instead of \"Utilize the aforementioned methodology\", write \"Use the method above\".",
	},
	{
		Dimension: Understandability, Threshold: th.Failing, Direction: Below,
		Message: "Split the prompt into one instruction per sentence.",
		Impact:  "Dense sentences hide requirements that then get skipped.",
		Example: "Build the form. Validate the email field. Show errors inline.",
	},
	{
		Dimension: Specificity, Threshold: th.Passing, Direction: Below,
		Message: "Name the concrete objects, formats and constraints you expect.",
		Impact:  "Specific prompts leave less to guess.",
		Example: "Instead of \"make it better\", write \"reduce the page load time below 2 seconds\".",
	},
	{
		Dimension: Specificity, Threshold: th.Failing, Direction: Below,
		Message: "Replace opinions and hedges with explicit requirements.",
		Impact:  "Hedged wording is read as optional.",
		Example: "Instead of \"maybe add tests\", write \"add unit tests for the parser\".",
	},
	{
		Dimension: TaskComplexity, Threshold: th.TaskLoadHeavy, Direction: Above,
		Message: "Break the work into smaller prompts or numbered stages.",
		Impact:  "Heavy task loads raise the chance that steps are dropped.",
		Example: "Stage 1: design the schema. Stage 2: write the migrations.",
	},
	{
		Dimension: Clarity, Threshold: th.Passing, Direction: Below,
		Message: "Keep one voice throughout: state what you want directly.",
		Impact:  "Mixed questions, opinions and instructions blur the request.",
		Example: "Instead of \"I think it might be nice to have logging\", write \"Add logging\".",
	},
	{
		Dimension: Clarity, Threshold: th.Failing, Direction: Below,
		Message: "Keep related sentences together and drop off-topic asides.",
		Impact:  "Topic jumps make it unclear what matters.",
		Example: "Group every sentence about the login page before moving on to the dashboard.",
	},
	{
		Dimension: Actionability, Threshold: th.Passing, Direction: Below,
		Message: "Start instructions with an action verb.",
		Impact:  "Imperative sentences become tasks; descriptions do not.",
		Example: "Instead of \"The report could have a chart\", write \"Add a chart to the report\".",
	},
	{
		Dimension: Actionability, Threshold: th.Failing, Direction: Below,
		Message: "Say what the model should produce, not only what the situation is.",
		Impact:  "Without a task the answer has to guess its purpose.",
		Example: "Summarize the incident report in five bullet points.",
	},
	{
		Dimension: StructureQuality, Threshold: th.Passing, Direction: Below,
		Message: "Order the steps and mark the sequence with words like first, then and finally.",
		Impact:  "Explicit ordering turns a list of wishes into a plan.",
		Example: "First create the table. Then load the data. Finally add the index.",
	},
	{
		Dimension: ContextSufficiency, Threshold: th.Passing, Direction: Below,
		Message: "Add background: who it is for, the domain and the goal.",
		Impact:  "Context lets the model choose sensible defaults.",
		Example: "Our goal is to let support staff reset customer passwords without engineering help.",
	},
	{
		Dimension: ScopeManagement, Threshold: th.Passing, Direction: Below,
		Message: "Narrow the scope to the few tasks that matter now.",
		Impact:  "Smaller scopes are finished; larger ones are skimmed.",
		Example: "Focus on the checkout flow only; leave the admin panel for a later prompt.",
	},
}

// priority grades how far a score misses its threshold.
func priority(distance float64) string {
	switch {
	case distance >= th.MissHigh:
		return PriorityHigh
	case distance >= th.MissMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

var priorityRank = map[string]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}

// suggest applies rules to the dimension scores. Suggestions are ordered by
// priority, then dimension order, then rule order.
func suggest(rules []Rule, scores map[string]float64) []Suggestion {
	type ranked struct {
		Suggestion
		dim, rule int
	}
	dimIndex := make(map[string]int, len(dimensionOrder))
	for i, d := range dimensionOrder {
		dimIndex[d] = i
	}

	var out []ranked
	for i, r := range rules {
		score, ok := scores[r.Dimension]
		if !ok {
			continue
		}
		var miss float64
		switch r.Direction {
		case Below:
			if score >= r.Threshold {
				continue
			}
			miss = r.Threshold - score
		case Above:
			if score <= r.Threshold {
				continue
			}
			miss = score - r.Threshold
		}
		out = append(out, ranked{
			Suggestion: Suggestion{
				Dimension: r.Dimension,
				Priority:  priority(math.Abs(miss)),
				Message:   r.Message,
				Impact:    r.Impact,
				Example:   r.Example,
			},
			dim:  dimIndex[r.Dimension],
			rule: i,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
		if a.dim != b.dim {
			return a.dim < b.dim
		}
		return a.rule < b.rule
	})

	suggestions := make([]Suggestion, 0, len(out))
	for _, r := range out {
		suggestions = append(suggestions, r.Suggestion)
	}
	return suggestions
}
