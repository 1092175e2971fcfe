package insights

import "github.com/cognicore/promptlens/pkg/promptlens/metric"

// Metrics wraps the insights in display envelopes.
func (r Result) Metrics() metric.Set {
	return metric.Set{
		"summary": metric.Label(r.Summary,
			"One-paragraph overview of size, readability and progression.",
			"Read first; the sections below explain each number."),
		"insights": metric.List(r.Insights,
			"Observations ordered by priority, most important first.",
			"Address high impact insights before polishing the rest."),
		"idea_breakdown": metric.Report(r.IdeaBreakdown,
			"The most covered ideas, their roles and shared keywords.",
			"Ideas with no connections are candidates for a separate prompt."),
		"writing_quality": metric.Report(r.WritingQuality,
			"Clarity, coherence, depth and originality on a 0-100 scale.",
			"The lowest axis is usually the cheapest to improve."),
		"content_profile": metric.Report(r.ContentProfile,
			"What kind of text this is and who it reads for.",
			"Check the audience matches who will act on the prompt."),
		"recommendations": metric.List(r.Recommendations,
			"Edits triggered by readability, structure, vocabulary and tone thresholds.",
			"Apply them in order and re-run the analysis."),
	}
}
