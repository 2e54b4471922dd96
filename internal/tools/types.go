// Package tools defines the Tool type, the registry agents discover tools
// from, and the built-in tool implementations.
package tools

import (
	"context"

	"github.com/scoutai/scout/internal/llm"
)

// Tool represents a callable function the LLM can invoke
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Execute     func(ctx context.Context, input map[string]interface{}) (string, error)
}

// Def returns the tool as a provider-neutral definition.
func (t Tool) Def() llm.ToolDef {
	return llm.ToolDef{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.InputSchema,
	}
}
