package insights

import (
	"sort"

	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// maxBreakdownIdeas caps the ideas listed in a breakdown.
const maxBreakdownIdeas = 5

// Idea roles.
const (
	RoleCentral     = "central"
	RoleOpening     = "opening"
	RoleElaboration = "elaboration"
	RoleClosing     = "closing"
	RoleSupporting  = "supporting"
)

// IdeaSummary is one idea cluster as reported in the breakdown.
type IdeaSummary struct {
	ID          string   `json:"id"`
	Topic       string   `json:"topic"`
	Category    string   `json:"category"`
	ThoughtType string   `json:"thought_type"`
	Coverage    float64  `json:"coverage"`
	Role        string   `json:"role"`
	KeyWords    []string `json:"key_words"`
}

// Connection links two ideas that share keywords.
type Connection struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Shared   []string `json:"shared"`
	Strength float64  `json:"strength"`
}

// IdeaBreakdown lists the most covered ideas and how they connect.
type IdeaBreakdown struct {
	Ideas       []IdeaSummary `json:"ideas"`
	Connections []Connection  `json:"connections"`
	MainIdea    string        `json:"main_idea"`
}

// breakdown keeps the clusters covering the most sentences, ties broken by
// position, and reports them in text order.
func breakdown(id ideas.Result) IdeaBreakdown {
	out := IdeaBreakdown{Ideas: []IdeaSummary{}, Connections: []Connection{}}
	total := len(id.Sentences)
	if total == 0 || len(id.Clusters) == 0 {
		return out
	}

	ranked := append([]ideas.IdeaCluster(nil), id.Clusters...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].Sentences) > len(ranked[j].Sentences)
	})
	if len(ranked) > maxBreakdownIdeas {
		ranked = ranked[:maxBreakdownIdeas]
	}
	out.MainIdea = ranked[0].ID
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PositionInText < ranked[j].PositionInText
	})

	meanComplexity := 0.0
	for _, c := range id.Clusters {
		meanComplexity += c.Complexity
	}
	meanComplexity /= float64(len(id.Clusters))

	for i, c := range ranked {
		out.Ideas = append(out.Ideas, IdeaSummary{
			ID:          c.ID,
			Topic:       c.MainTopic,
			Category:    c.Category,
			ThoughtType: string(c.ThoughtType),
			Coverage:    textstat.Round(float64(len(c.Sentences))/float64(total), 4),
			Role:        role(c, out.MainIdea, i, len(ranked), meanComplexity),
			KeyWords:    append([]string{}, c.KeyWords...),
		})
	}

	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			shared := textstat.Shared(ranked[i].KeyWords, ranked[j].KeyWords)
			if len(shared) == 0 {
				continue
			}
			out.Connections = append(out.Connections, Connection{
				From:     ranked[i].ID,
				To:       ranked[j].ID,
				Shared:   shared,
				Strength: textstat.Round(textstat.Jaccard(ranked[i].KeyWords, ranked[j].KeyWords), 4),
			})
		}
	}
	return out
}

func role(c ideas.IdeaCluster, main string, pos, n int, meanComplexity float64) string {
	switch {
	case c.ID == main:
		return RoleCentral
	case pos == 0:
		return RoleOpening
	case pos == n-1:
		return RoleClosing
	case c.Complexity > meanComplexity:
		return RoleElaboration
	default:
		return RoleSupporting
	}
}
