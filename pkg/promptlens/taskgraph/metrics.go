package taskgraph

import "github.com/cognicore/promptlens/pkg/promptlens/metric"

// Metrics wraps the graph in display envelopes.
func (g Graph) Metrics() metric.Set {
	return metric.Set{
		"tasks": metric.List(g.Tasks,
			"Actionable statements found in the prompt.",
			"Every task should be something the model can act on."),
		"relationships": metric.List(g.Relationships,
			"Dependency and non-dependency links between tasks.",
			"Make implied ordering explicit with words like then or before that."),
		"root_tasks": metric.List(g.RootTasks,
			"Tasks that depend on nothing.",
			"Start here."),
		"leaf_tasks": metric.List(g.LeafTasks,
			"Tasks nothing depends on.",
			"These are the deliverables."),
		"critical_path": metric.List(g.CriticalPath,
			"Longest chain of dependent tasks, prerequisites first.",
			"A long chain means later steps inherit every earlier mistake."),
		"execution_order": metric.List(g.ExecutionOrder,
			"A valid order to carry out the tasks.",
			"Reorder the prompt to match if it reads out of sequence."),
		"graph_complexity": metric.Ratio(g.GraphComplexity,
			"0.5·edge density + 0.5·normalized critical path depth.",
			"Above 0.7 consider splitting the prompt into stages."),
		"total_tasks": metric.Count(g.TotalTasks,
			"Number of extracted tasks.",
			"More than five tasks in one prompt is hard to do well."),
		"dependency_count": metric.Count(g.DependencyCount,
			"Number of dependency edges.",
			"Zero with several tasks means the order is left implicit."),
		"task_type_counts": metric.Map(g.TypeCounts,
			"Tasks per type.",
			"Questions mixed with actions can split the model's focus."),
		"priority_counts": metric.Map(g.PriorityCounts,
			"Tasks per priority.",
			"Mark what matters most so it is not treated as optional."),
	}
}
