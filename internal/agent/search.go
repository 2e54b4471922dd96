package agent

import (
	"context"

	"github.com/scoutai/scout/internal/llm"
	"github.com/scoutai/scout/internal/tools"
)

// SearchToolNames are the tools the search agent is allowed to use.
// archive_search is optional and skipped by Filter when not registered.
var SearchToolNames = []string{"google_search", "open_webpage", "search_and_read", "archive_search"}

const searchMaxTurns = 5

// SearchAgent finds and retrieves information from the web.
type SearchAgent struct {
	provider llm.Provider
	registry *tools.Registry
	obs      Observer
}

func NewSearchAgent(provider llm.Provider, registry *tools.Registry, obs Observer) *SearchAgent {
	if obs == nil {
		obs = NopObserver{}
	}
	return &SearchAgent{provider: provider, registry: registry, obs: obs}
}

func (a *SearchAgent) Name() string { return "SearchAgent" }

func (a *SearchAgent) Capabilities() Capability {
	return Capability{
		Name:        "SearchAgent",
		Description: "Specialized agent for finding and retrieving information from the web",
		BestFor: []string{
			"Factual questions requiring current information",
			"Finding specific data from websites",
			"Research on recent events or developments",
			"Looking up official information from authoritative sources",
			"Gathering comprehensive information on a topic",
		},
		ExampleTasks: []string{
			"What is the current population of Tokyo?",
			"Find the latest news about renewable energy developments",
			"What are the requirements for a US passport?",
			"Look up the official exchange rate for USD to EUR today",
			"Research the specifications of the latest iPhone model",
		},
	}
}

func (a *SearchAgent) CanHandle(req Request) bool {
	return req.Type == TaskSearch
}

func (a *SearchAgent) Execute(ctx context.Context, req Request) Response {
	res, err := runToolLoop(ctx, a.provider, a.registry.Filter(SearchToolNames...), a.obs, loopConfig{
		agentName: a.Name(),
		system:    searchSystemPrompt,
		marker:    "SEARCH_COMPLETE:",
		maxTurns:  searchMaxTurns,
	}, req.Task)
	if err != nil {
		return errorResponse(a.Name(), err.Error(), loopMetadata(res))
	}
	return successResponse(a.Name(), res.answer, loopMetadata(res))
}

func loopMetadata(res *loopResult) map[string]interface{} {
	if res == nil {
		return nil
	}
	return map[string]interface{}{
		"turns_used": res.turnsUsed,
		"tools_used": res.toolsUsed,
	}
}
