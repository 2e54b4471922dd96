package agent

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/scoutai/scout/internal/llm"
	"github.com/scoutai/scout/internal/trace"
)

const orchestratorMaxTurns = 8

// Delegation markers the orchestrator model uses to hand work to sub-agents
// or finish.
const (
	markerDelegateSearch    = "DELEGATE_SEARCH:"
	markerDelegateReasoning = "DELEGATE_REASONING:"
	markerFinalAnswer       = "FINAL_ANSWER:"
)

// Orchestrator coordinates the specialized sub-agents: it analyzes the task,
// delegates to the right agent via text markers and combines the results.
type Orchestrator struct {
	provider llm.Provider
	agents   map[string]Agent
	order    []string
	obs      Observer
}

func NewOrchestrator(provider llm.Provider, search, reasoning Agent, obs Observer) *Orchestrator {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Orchestrator{
		provider: provider,
		agents: map[string]Agent{
			"search":    search,
			"reasoning": reasoning,
		},
		order: []string{"search", "reasoning"},
		obs:   obs,
	}
}

func (o *Orchestrator) Name() string { return "OrchestratorAgent" }

func (o *Orchestrator) Capabilities() Capability {
	return Capability{
		Name:        "OrchestratorAgent",
		Description: "Coordinates and manages specialized agents to solve complex multi-step tasks",
		BestFor: []string{
			"Complex queries requiring multiple types of expertise",
			"Tasks needing both research and analysis",
			"Multi-step problem solving",
			"Coordinating different specialized capabilities",
		},
		ExampleTasks: []string{
			"Research the latest climate data and analyze the trends",
			"Find information about quantum computing and explain how it works",
			"Look up the GDP of Japan and calculate the per capita income",
		},
	}
}

// CanHandle is always true; the orchestrator is the catch-all entry point.
func (o *Orchestrator) CanHandle(Request) bool { return true }

// systemPrompt is generated from the sub-agents' capabilities so adding an
// agent automatically teaches the orchestrator about it.
func (o *Orchestrator) systemPrompt() string {
	var descriptions []string
	for _, key := range o.order {
		c := o.agents[key].Capabilities()
		examples := c.ExampleTasks
		if len(examples) > 3 {
			examples = examples[:3]
		}
		descriptions = append(descriptions, fmt.Sprintf(
			"**%s**:\n- %s\n- Best for: %s\n- Example tasks: %s",
			c.Name, c.Description,
			strings.Join(c.BestFor, ", "),
			strings.Join(examples, "; "),
		))
	}

	return fmt.Sprintf(`You are an intelligent orchestrator that coordinates specialized agents to solve complex tasks.

Available agents and their capabilities:

%s

**Your approach**:
1. Analyze what the user is asking for
2. Determine which specialized agent(s) are best suited for the task
3. Delegate to the appropriate agent(s) based on their capabilities
4. You can use agents sequentially if needed
5. Combine results intelligently

**Delegation format**:
- To use SearchAgent: "DELEGATE_SEARCH: [specific task for search agent]"
- To use ReasoningAgent: "DELEGATE_REASONING: [specific task for reasoning agent]"
- When you have everything needed: "FINAL_ANSWER: [your complete response]"

**Key principles**:
- ALWAYS delegate tasks that match an agent's specialty area
- For mathematical calculations, logic puzzles, step-by-step analysis: use ReasoningAgent
- For factual information, current data, web research: use SearchAgent
- Only handle very simple conversational tasks directly (greetings, clarifications)
- Be specific about what you want each agent to do
- Choose agents based on their described capabilities and strengths
- Combine results from multiple agents when beneficial`, strings.Join(descriptions, "\n\n"))
}

func (o *Orchestrator) delegate(ctx context.Context, task, agentKey string) Response {
	sub, ok := o.agents[agentKey]
	if !ok {
		return errorResponse(o.Name(),
			fmt.Sprintf("no agent of type %q available (have: %s)", agentKey, strings.Join(o.order, ", ")), nil)
	}

	req := Request{Task: task, Type: TaskGeneral}
	switch agentKey {
	case "search":
		req.Type = TaskSearch
	case "reasoning":
		req.Type = TaskReasoning
	}

	ctx, span := trace.Tracer().Start(ctx, "orchestrator.delegate")
	span.SetAttributes(attribute.String("delegate.agent", agentKey))
	defer span.End()

	return sub.Execute(ctx, req)
}

// Execute runs the orchestration loop. The orchestrator model is called
// without tools; delegation happens purely through text markers, and
// sub-agent results are fed back as user messages.
func (o *Orchestrator) Execute(ctx context.Context, req Request) Response {
	ctx, span := trace.Tracer().Start(ctx, "orchestrator.execute")
	defer span.End()

	messages := []llm.Message{
		llm.System(o.systemPrompt()),
		llm.User(req.Task),
	}

	delegations := 0

	for turn := 0; turn < orchestratorMaxTurns; turn++ {
		completion, err := o.provider.Complete(ctx, llm.TruncateMessages(messages, llm.DefaultTokenBudget), nil)
		if err != nil {
			return errorResponse(o.Name(), fmt.Sprintf("orchestration failed: %v", err), map[string]interface{}{
				"turns_used":       turn + 1,
				"delegations_made": delegations,
			})
		}

		content := completion.Content
		o.obs.Thought(o.Name(), content)

		// Delegations are checked before the final-answer marker so a reply
		// containing both still routes work to the sub-agent first.
		var delegated *Response
		if task, found := cutMarker(content, markerDelegateSearch); found {
			o.obs.Delegation(o.Name(), "SearchAgent", task)
			resp := o.delegate(ctx, task, "search")
			delegated = &resp
			delegations++
		} else if task, found := cutMarker(content, markerDelegateReasoning); found {
			o.obs.Delegation(o.Name(), "ReasoningAgent", task)
			resp := o.delegate(ctx, task, "reasoning")
			delegated = &resp
			delegations++
		} else if answer, found := cutMarker(content, markerFinalAnswer); found {
			return successResponse(o.Name(), answer, map[string]interface{}{
				"turns_used":       turn + 1,
				"delegations_made": delegations,
			})
		}

		messages = append(messages, llm.Assistant(content))

		if delegated != nil {
			if delegated.Success {
				messages = append(messages, llm.User("Agent result: "+delegated.Result))
			} else {
				messages = append(messages, llm.User("Agent encountered an error: "+delegated.Err))
			}
		}
	}

	return errorResponse(o.Name(), "orchestration timeout - could not complete within turn limit", map[string]interface{}{
		"turns_used":       orchestratorMaxTurns,
		"delegations_made": delegations,
	})
}
