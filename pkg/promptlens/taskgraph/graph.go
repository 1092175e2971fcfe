// Package taskgraph extracts actionable tasks from prompt sentences and links
// them into a dependency graph.
package taskgraph

import (
	"sort"

	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// TaskType classifies what a task statement asks for.
type TaskType string

const (
	TypeAction      TaskType = "action"
	TypeRequirement TaskType = "requirement"
	TypeGoal        TaskType = "goal"
	TypeQuestion    TaskType = "question"
	TypeNeed        TaskType = "need"
)

// Priority levels.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Effort estimates.
const (
	EffortSmall  = "small"
	EffortMedium = "medium"
	EffortLarge  = "large"
)

// RelationType names the kind of link between two tasks.
type RelationType string

const (
	RelationDependsOn RelationType = "depends_on"
	RelationBlocks    RelationType = "blocks"
	RelationRelated   RelationType = "related"
	RelationSubtask   RelationType = "subtask"
	RelationParallel  RelationType = "parallel"
)

// Task is one extracted unit of work.
type Task struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Type            TaskType `json:"type"`
	Priority        string   `json:"priority"`
	EstimatedEffort string   `json:"estimated_effort"`
	Confidence      float64  `json:"confidence"`
	Keywords        []string `json:"keywords"`
	ActionVerbs     []string `json:"action_verbs"`
	Description     string   `json:"description"`
	DependsOn       []string `json:"depends_on"`
	Blocks          []string `json:"blocks"`
	ClusterID       string   `json:"cluster_id"`
}

// Relationship links two tasks. For depends_on, From depends on To; for
// blocks, From must finish before To.
type Relationship struct {
	FromTaskID   string       `json:"from_task_id"`
	ToTaskID     string       `json:"to_task_id"`
	RelationType RelationType `json:"relation_type"`
	Strength     float64      `json:"strength"`
}

// Graph is the task dependency graph of one prompt.
type Graph struct {
	Tasks           []Task         `json:"tasks"`
	Relationships   []Relationship `json:"relationships"`
	RootTasks       []string       `json:"root_tasks"`
	LeafTasks       []string       `json:"leaf_tasks"`
	CriticalPath    []string       `json:"critical_path"`
	ExecutionOrder  []string       `json:"execution_order"`
	GraphComplexity float64        `json:"graph_complexity"`
	TotalTasks      int            `json:"total_tasks"`
	DependencyCount int            `json:"dependency_count"`
	TypeCounts      map[string]int `json:"type_counts"`
	PriorityCounts  map[string]int `json:"priority_counts"`

	// task id -> position in Tasks
	index map[string]int
	// unordered task pairs joined by any relationship
	linked map[[2]int]bool
}

func newGraph() Graph {
	g := Graph{
		Tasks:          []Task{},
		Relationships:  []Relationship{},
		RootTasks:      []string{},
		LeafTasks:      []string{},
		CriticalPath:   []string{},
		ExecutionOrder: []string{},
		TypeCounts:     make(map[string]int),
		PriorityCounts: map[string]int{PriorityHigh: 0, PriorityMedium: 0, PriorityLow: 0},
		index:          make(map[string]int),
		linked:         make(map[[2]int]bool),
	}
	for _, t := range []TaskType{TypeAction, TypeRequirement, TypeGoal, TypeQuestion, TypeNeed} {
		g.TypeCounts[string(t)] = 0
	}
	return g
}

// add appends a task and indexes it.
func (g *Graph) add(t Task) {
	g.index[t.ID] = len(g.Tasks)
	g.Tasks = append(g.Tasks, t)
}

func pair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// link records that tasks[dependent] depends on tasks[prerequisite], keeping
// DependsOn and Blocks mutually consistent. It refuses self links, links
// already implied by existing dependencies and links that would close a
// cycle, and reports whether it linked.
func (g *Graph) link(dependent, prerequisite int, rel RelationType, strength float64) bool {
	if dependent == prerequisite || g.dependsOn(dependent, prerequisite) || g.dependsOn(prerequisite, dependent) {
		return false
	}
	dep, pre := &g.Tasks[dependent], &g.Tasks[prerequisite]
	dep.DependsOn = append(dep.DependsOn, pre.ID)
	pre.Blocks = append(pre.Blocks, dep.ID)

	r := Relationship{FromTaskID: dep.ID, ToTaskID: pre.ID, RelationType: RelationDependsOn, Strength: strength}
	if rel == RelationBlocks {
		r = Relationship{FromTaskID: pre.ID, ToTaskID: dep.ID, RelationType: RelationBlocks, Strength: strength}
	}
	g.Relationships = append(g.Relationships, r)
	g.linked[pair(dependent, prerequisite)] = true
	g.DependencyCount++
	return true
}

// relate adds a non-dependency relationship from tasks[a] to tasks[b] unless
// the pair is already joined.
func (g *Graph) relate(a, b int, rel RelationType, strength float64) bool {
	if a == b || g.linked[pair(a, b)] {
		return false
	}
	g.Relationships = append(g.Relationships, Relationship{
		FromTaskID: g.Tasks[a].ID, ToTaskID: g.Tasks[b].ID, RelationType: rel, Strength: strength,
	})
	g.linked[pair(a, b)] = true
	return true
}

// dependsOn reports whether task a transitively depends on task b.
func (g *Graph) dependsOn(a, b int) bool {
	seen := make(map[int]bool)
	stack := []int{a}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, id := range g.Tasks[cur].DependsOn {
			next := g.index[id]
			if next == b {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// finalize derives roots, leaves, execution order, critical path, counts and
// graph complexity from the linked tasks.
func (g *Graph) finalize() {
	n := len(g.Tasks)
	g.TotalTasks = n
	for _, t := range g.Tasks {
		if len(t.DependsOn) == 0 {
			g.RootTasks = append(g.RootTasks, t.ID)
		}
		if len(t.Blocks) == 0 {
			g.LeafTasks = append(g.LeafTasks, t.ID)
		}
		g.TypeCounts[string(t.Type)]++
		g.PriorityCounts[t.Priority]++
	}
	if n == 0 {
		return
	}

	order := g.topoOrder()
	for _, i := range order {
		g.ExecutionOrder = append(g.ExecutionOrder, g.Tasks[i].ID)
	}
	g.CriticalPath = g.criticalPath(order)

	density := 0.0
	depth := 0.0
	if n > 1 {
		density = float64(g.DependencyCount) / (float64(n) * float64(n-1) / 2)
		depth = float64(len(g.CriticalPath)-1) / float64(n-1)
	}
	g.GraphComplexity = textstat.Round(textstat.Clamp(0.5*density+0.5*depth, 0, 1), 4)
}

// topoOrder is Kahn's algorithm over depends_on edges, prerequisites first.
// Among ready tasks the lowest index goes first.
func (g *Graph) topoOrder() []int {
	pending := make([]int, len(g.Tasks))
	for i, t := range g.Tasks {
		pending[i] = len(t.DependsOn)
	}

	var ready, order []int
	for i, p := range pending {
		if p == 0 {
			ready = append(ready, i)
		}
	}
	for len(ready) > 0 {
		sort.Ints(ready)
		cur := ready[0]
		ready = ready[1:]
		order = append(order, cur)
		for _, id := range g.Tasks[cur].Blocks {
			next := g.index[id]
			pending[next]--
			if pending[next] == 0 {
				ready = append(ready, next)
			}
		}
	}
	return order
}

// criticalPath returns the longest dependency chain, prerequisites first.
// Ties go to the chain ending at, and passing through, the lowest task index.
func (g *Graph) criticalPath(order []int) []string {
	length := make([]int, len(g.Tasks))
	prev := make([]int, len(g.Tasks))
	for i := range prev {
		prev[i] = -1
		length[i] = 1
	}

	for _, cur := range order {
		for _, id := range g.Tasks[cur].DependsOn {
			p := g.index[id]
			if length[p]+1 > length[cur] || (length[p]+1 == length[cur] && p < prev[cur]) {
				length[cur] = length[p] + 1
				prev[cur] = p
			}
		}
	}

	end := 0
	for i := range length {
		if length[i] > length[end] {
			end = i
		}
	}

	path := []string{}
	for cur := end; cur >= 0; cur = prev[cur] {
		path = append(path, g.Tasks[cur].ID)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
