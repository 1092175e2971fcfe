package perf

import "github.com/cognicore/promptlens/pkg/promptlens/metric"

// Metrics wraps the report in display envelopes.
func (m Metrics) Metrics() metric.Set {
	return metric.Set{
		"request_id": metric.Label(m.RequestID,
			"Unique, time-ordered id of this analysis.",
			"Quote it when reporting a surprising result."),
		"stage_durations": metric.Map(m.Stages,
			"Wall time of each analysis stage in milliseconds.",
			"Stages run in parallel in the first tier, so they do not add up to the total."),
		"parallel_tier": metric.Milliseconds(m.ParallelTierMS,
			"Slowest first-tier stage; the tier finishes when it does.",
			"Long inputs mostly grow this number."),
		"sequential_tier": metric.Milliseconds(m.SequentialTierMS,
			"Task graph, insights and grading run one after another.",
			"Many sentences with many tasks grow this number."),
		"total": metric.Milliseconds(m.TotalMS,
			"End-to-end analysis time in milliseconds.",
			"Analysis is in-memory; anything above a few hundred milliseconds points to very long input."),
	}
}
