package grade

import "github.com/cognicore/promptlens/pkg/promptlens/metric"

// Metrics wraps the report in the grading envelope.
func (p PromptGrade) Metrics() metric.Set {
	return metric.Set{
		"prompt_grade": metric.Report(p,
			"Eight weighted quality dimensions, an overall letter grade and prioritized suggestions.",
			"Work through the high priority suggestions first; each names the dimension it lifts."),
		"overall_score": metric.Score(p.Overall.Score,
			"Weighted blend of the dimension scores.",
			"Below 70 the prompt is likely to be misread or partially followed."),
		"overall_grade": metric.Label(p.Overall.Grade,
			"Letter grade of the overall score.",
			"Aim for B or better before sending a prompt that starts long work."),
		"suggestion_count": metric.Count(len(p.Suggestions),
			"Number of suggestions that fired.",
			"Zero means every dimension cleared its thresholds."),
	}
}
