package ideas

import (
	"github.com/cognicore/promptlens/pkg/promptlens/lexicon"
	"github.com/cognicore/promptlens/pkg/promptlens/metric"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// scatterRate is the share of sentence boundaries that must change topic,
// with at least one return to an earlier topic, for a text to count as
// scattered rather than recursive.
const scatterRate = 0.6

func (r *Result) computeMetrics(lex *lexicon.Lexicon) {
	n := len(r.Sentences)
	r.UniqueIdeas = len(r.Clusters)
	r.IdeaDensity = textstat.Ratio(float64(r.UniqueIdeas), float64(n))

	// Coherence: mean similarity of consecutive sentences. Sentences in the
	// same cluster count at least 0.5.
	switch {
	case n == 1:
		r.ConceptualCoherence = 1
	case n > 1:
		sum := 0.0
		for i := 1; i < n; i++ {
			prev, cur := r.Sentences[i-1], r.Sentences[i]
			sim := textstat.Jaccard(prev.Keywords, cur.Keywords)
			if prev.ClusterID == cur.ClusterID && sim < 0.5 {
				sim = 0.5
			}
			sum += sim
			if prev.ClusterID != cur.ClusterID {
				r.TopicTransitions++
			}
		}
		r.ConceptualCoherence = sum / float64(n-1)
	}

	var all []string
	distinct := make(map[string]struct{})
	for _, s := range r.Sentences {
		for _, kw := range s.Keywords {
			all = append(all, kw)
			distinct[kw] = struct{}{}
		}
	}
	r.ConceptualBreadth = textstat.Ratio(float64(len(distinct)), float64(len(all)))
	r.Topics = lex.Topics(all)

	maxType := 0
	for _, c := range r.TypeDistribution {
		if c > maxType {
			maxType = c
		}
	}
	r.ThoughtConsistency = textstat.Ratio(float64(maxType), float64(n))
	r.ProgressionPattern = r.progression()
}

// progression labels how the text moves between idea clusters.
func (r *Result) progression() string {
	n := len(r.Sentences)
	switch {
	case n == 0:
		return ProgressionNone
	case len(r.Clusters) == 1:
		return ProgressionFocused
	}

	returns := 0
	seen := map[string]bool{r.Sentences[0].ClusterID: true}
	for i := 1; i < n; i++ {
		id := r.Sentences[i].ClusterID
		if id != r.Sentences[i-1].ClusterID && seen[id] {
			returns++
		}
		seen[id] = true
	}

	switch {
	case returns == 0:
		return ProgressionLinear
	case float64(r.TopicTransitions)/float64(n-1) > scatterRate:
		return ProgressionScattered
	default:
		return ProgressionRecursive
	}
}

// Metrics wraps the result in display envelopes.
func (r Result) Metrics() metric.Set {
	return metric.Set{
		"unique_ideas": metric.Count(r.UniqueIdeas,
			"Number of distinct idea clusters.",
			"One prompt, one main idea: many clusters suggest splitting the prompt."),
		"idea_density": metric.Ratio(r.IdeaDensity,
			"Idea clusters per sentence.",
			"Near 1 every sentence introduces something new; near 0 the text dwells on one idea."),
		"conceptual_coherence": metric.Ratio(r.ConceptualCoherence,
			"Mean keyword similarity of consecutive sentences.",
			"Low coherence reads as jumping between topics; add transitions."),
		"conceptual_breadth": metric.Ratio(r.ConceptualBreadth,
			"Distinct keywords over all keyword occurrences.",
			"High breadth covers many concepts briefly; low breadth repeats a few."),
		"thought_consistency": metric.Ratio(r.ThoughtConsistency,
			"Share of sentences with the most common thought type.",
			"Mixed types are fine, but instructions should not drown in commentary."),
		"topic_transitions": metric.Count(r.TopicTransitions,
			"Consecutive sentence pairs that change cluster.",
			"Group related sentences together to reduce transitions."),
		"progression_pattern": metric.Label(r.ProgressionPattern,
			"How the text moves between ideas.",
			"Linear development is easiest to follow."),
		"thought_type_distribution": metric.Map(r.TypeDistribution,
			"Sentences per thought type.",
			"Prompts that ask for work should be mostly instructions."),
		"topics": metric.List(r.Topics,
			"Taxonomy topics mentioned.",
			"Check that the prompt stays in its intended domain."),
		"idea_clusters": metric.List(r.Clusters,
			"Sentences grouped by shared keywords.",
			"Each cluster is a candidate section of the prompt."),
		"sentences": metric.List(r.Sentences,
			"Every sentence with its thought type and cluster.",
			"Look for sentences whose type does not match your intent."),
	}
}
