package agent

import (
	"context"

	"github.com/scoutai/scout/internal/llm"
	"github.com/scoutai/scout/internal/tools"
)

const soloMaxTurns = 10

// SoloAgent is the single-agent deep research mode: one model, all tools,
// no delegation. Useful for comparing against the orchestrated path.
type SoloAgent struct {
	provider llm.Provider
	registry *tools.Registry
	obs      Observer
}

func NewSoloAgent(provider llm.Provider, registry *tools.Registry, obs Observer) *SoloAgent {
	if obs == nil {
		obs = NopObserver{}
	}
	return &SoloAgent{provider: provider, registry: registry, obs: obs}
}

func (a *SoloAgent) Name() string { return "ResearchAgent" }

func (a *SoloAgent) Capabilities() Capability {
	return Capability{
		Name:        "ResearchAgent",
		Description: "Single agent with the full toolset for end-to-end research",
		BestFor: []string{
			"Deep research combining search, reading and calculation",
			"Questions where delegation overhead isn't worth it",
		},
		ExampleTasks: []string{
			"Research the population of Tokyo and compute its density",
		},
	}
}

func (a *SoloAgent) CanHandle(Request) bool { return true }

func (a *SoloAgent) Execute(ctx context.Context, req Request) Response {
	res, err := runToolLoop(ctx, a.provider, a.registry, a.obs, loopConfig{
		agentName:      a.Name(),
		system:         soloSystemPrompt,
		marker:         markerFinalAnswer,
		maxTurns:       soloMaxTurns,
		finalOnTimeout: true,
	}, req.Task)
	if err != nil {
		return errorResponse(a.Name(), err.Error(), loopMetadata(res))
	}
	return successResponse(a.Name(), res.answer, loopMetadata(res))
}
