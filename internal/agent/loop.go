package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/scoutai/scout/internal/llm"
	"github.com/scoutai/scout/internal/tools"
	"github.com/scoutai/scout/internal/trace"
)

// loopConfig drives the shared tool-calling loop used by the sub-agents and
// the solo runner. The loop ends when the model emits the completion marker
// or maxTurns is exhausted.
type loopConfig struct {
	agentName string
	system    string
	marker    string
	maxTurns  int

	// finalOnTimeout asks the model for one last answer when the turn
	// budget runs out instead of failing.
	finalOnTimeout bool
}

type loopResult struct {
	answer    string
	turnsUsed int
	toolsUsed []string
}

func runToolLoop(ctx context.Context, provider llm.Provider, registry *tools.Registry, obs Observer, cfg loopConfig, task string) (*loopResult, error) {
	ctx, span := trace.Tracer().Start(ctx, cfg.agentName+".loop")
	span.SetAttributes(attribute.String("agent", cfg.agentName))
	defer span.End()

	defs := registry.Defs()
	messages := []llm.Message{
		llm.System(cfg.system),
		llm.User(task),
	}

	res := &loopResult{}

	for turn := 0; turn < cfg.maxTurns; turn++ {
		res.turnsUsed = turn + 1

		completion, err := provider.Complete(ctx, llm.TruncateMessages(messages, llm.DefaultTokenBudget), defs)
		if err != nil {
			return nil, fmt.Errorf("llm completion: %w", err)
		}

		if completion.Content != "" {
			obs.Thought(cfg.agentName, completion.Content)
		}

		if answer, found := cutMarker(completion.Content, cfg.marker); found {
			res.answer = answer
			return res, nil
		}

		if len(completion.ToolCalls) == 0 {
			messages = append(messages, llm.Assistant(completion.Content))
			continue
		}

		for _, tc := range completion.ToolCalls {
			input := parseToolArgs(tc)
			obs.ToolCall(cfg.agentName, tc.Name, input)
			res.toolsUsed = append(res.toolsUsed, tc.Name)

			result := executeTool(ctx, registry, tc.Name, input)
			obs.ToolResult(cfg.agentName, tc.Name, result)

			messages = append(messages,
				llm.Message{Role: llm.RoleAssistant, Content: completion.Content, ToolCalls: []llm.ToolCall{tc}},
				llm.ToolResult(tc.ID, result),
			)
		}
	}

	if !cfg.finalOnTimeout {
		return res, fmt.Errorf("max turns (%d) exceeded without completion", cfg.maxTurns)
	}

	// Turn budget exhausted; take whatever the model says now as the answer.
	completion, err := provider.Complete(ctx, llm.TruncateMessages(messages, llm.DefaultTokenBudget), defs)
	if err != nil {
		return nil, fmt.Errorf("final completion: %w", err)
	}
	answer := completion.Content
	if marked, found := cutMarker(answer, cfg.marker); found {
		answer = marked
	}
	res.answer = answer
	return res, nil
}

// executeTool runs a tool and folds failures into the result string so the
// model can react instead of the loop aborting.
func executeTool(ctx context.Context, registry *tools.Registry, name string, input map[string]interface{}) string {
	ctx, span := trace.Tracer().Start(ctx, "tool."+name)
	defer span.End()

	result, err := registry.Execute(ctx, name, input)
	if err != nil {
		log.Warn().Err(err).Str("tool", name).Msg("tool execution error")
		return fmt.Sprintf("Error executing %s: %v", name, err)
	}
	return result
}

func parseToolArgs(tc llm.ToolCall) map[string]interface{} {
	input := map[string]interface{}{}
	if tc.Arguments == "" {
		return input
	}
	if err := json.Unmarshal([]byte(tc.Arguments), &input); err != nil {
		log.Warn().Err(err).Str("tool", tc.Name).Msg("failed to parse tool arguments")
	}
	return input
}

// cutMarker returns the text after the marker, trimmed, if present.
func cutMarker(content, marker string) (string, bool) {
	if content == "" {
		return "", false
	}
	_, after, found := strings.Cut(content, marker)
	if !found {
		return "", false
	}
	return strings.TrimSpace(after), true
}
