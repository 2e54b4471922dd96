package agent

import (
	"context"

	"github.com/scoutai/scout/internal/llm"
	"github.com/scoutai/scout/internal/tools"
)

// ReasoningToolNames are the tools the reasoning agent is allowed to use.
var ReasoningToolNames = []string{"calculate"}

const reasoningMaxTurns = 5

// ReasoningAgent performs logical analysis, calculations and systematic
// problem solving.
type ReasoningAgent struct {
	provider llm.Provider
	registry *tools.Registry
	obs      Observer
}

func NewReasoningAgent(provider llm.Provider, registry *tools.Registry, obs Observer) *ReasoningAgent {
	if obs == nil {
		obs = NopObserver{}
	}
	return &ReasoningAgent{provider: provider, registry: registry, obs: obs}
}

func (a *ReasoningAgent) Name() string { return "ReasoningAgent" }

func (a *ReasoningAgent) Capabilities() Capability {
	return Capability{
		Name:        "ReasoningAgent",
		Description: "Specialized agent for logical analysis, mathematical calculations, and systematic problem solving",
		BestFor: []string{
			"Mathematical calculations and problem solving",
			"Logical reasoning and deduction",
			"Step-by-step analysis of complex problems",
			"Critical thinking and argument evaluation",
			"Puzzles and brain teasers requiring systematic approach",
		},
		ExampleTasks: []string{
			"Solve this math problem: If a train travels 120 km in 2 hours, what is its speed?",
			"Analyze the logic in this argument: All cats are animals. Fluffy is a cat. Therefore...",
			"Calculate compound interest on $1000 at 5% for 3 years",
			"Evaluate the reasoning: If all birds can fly, and penguins are birds, can penguins fly?",
		},
	}
}

func (a *ReasoningAgent) CanHandle(req Request) bool {
	return req.Type == TaskReasoning
}

func (a *ReasoningAgent) Execute(ctx context.Context, req Request) Response {
	res, err := runToolLoop(ctx, a.provider, a.registry.Filter(ReasoningToolNames...), a.obs, loopConfig{
		agentName: a.Name(),
		system:    reasoningSystemPrompt,
		marker:    "REASONING_COMPLETE:",
		maxTurns:  reasoningMaxTurns,
	}, req.Task)
	if err != nil {
		return errorResponse(a.Name(), err.Error(), loopMetadata(res))
	}
	return successResponse(a.Name(), res.answer, loopMetadata(res))
}
