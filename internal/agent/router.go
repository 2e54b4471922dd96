package agent

import "strings"

var searchKeywords = []string{
	// web research: current facts, lookups, sources
	"search", "find", "look up", "lookup", "latest", "news", "current",
	"today", "recent", "website", "official", "price", "population",
	"weather", "release", "who is", "where is", "when did", "when was",
	"exchange rate", "stock", "requirements", "specification", "specs",
	"research", "information about", "happened",
}

var reasoningKeywords = []string{
	// logic and math: puzzles, step-by-step analysis
	"calculate", "compute", "solve", "math", "sum", "multiply", "divide",
	"percentage", "interest", "equation", "logic", "puzzle", "prove",
	"deduce", "analyze the argument", "step by step", "step-by-step",
	"reasoning", "evaluate", "compare the logic", "if all", "therefore",
	"how many", "how much",
}

// RoutingResult explains which agent a task was routed to and why.
type RoutingResult struct {
	Type           TaskType
	Confidence     float64
	SearchScore    int
	ReasoningScore int
	Reasoning      string
}

// TaskRouter classifies a task as search or reasoning work from keywords.
// It backs direct agent dispatch when the caller doesn't pick an agent.
type TaskRouter struct{}

func NewTaskRouter() *TaskRouter {
	return &TaskRouter{}
}

// Route analyses the task and returns the best matching agent type.
func (r *TaskRouter) Route(task string) RoutingResult {
	lower := strings.ToLower(task)

	searchScore := 0
	reasoningScore := 0

	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			searchScore++
		}
	}
	for _, kw := range reasoningKeywords {
		if strings.Contains(lower, kw) {
			reasoningScore++
		}
	}

	total := searchScore + reasoningScore
	if total == 0 {
		return RoutingResult{
			Type:       TaskSearch,
			Confidence: 0.5,
			Reasoning:  "no strong keywords, defaulting to search",
		}
	}

	if reasoningScore > searchScore {
		return RoutingResult{
			Type:           TaskReasoning,
			Confidence:     float64(reasoningScore) / float64(total),
			SearchScore:    searchScore,
			ReasoningScore: reasoningScore,
			Reasoning:      "task contains logic/calculation-related keywords",
		}
	}

	return RoutingResult{
		Type:           TaskSearch,
		Confidence:     float64(searchScore) / float64(total),
		SearchScore:    searchScore,
		ReasoningScore: reasoningScore,
		Reasoning:      "task contains research/lookup-related keywords",
	}
}
