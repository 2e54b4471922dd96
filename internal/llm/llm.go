// Package llm provides a provider-neutral chat completion interface with
// tool calling, implemented for OpenAI and Anthropic backends.
package llm

import "context"

// Message roles. Tool results are carried as RoleTool messages with the
// ToolCallID of the call they answer.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a tool invocation requested by the model. Arguments is the
// raw JSON string as returned by the provider.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message is a single conversation turn in provider-neutral form.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolDef describes a callable tool in JSON-schema form.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Completion is the model's reply: free text, tool calls, or both.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// Provider generates completions. Implementations must be safe for
// concurrent use.
type Provider interface {
	Complete(ctx context.Context, messages []Message, tools []ToolDef) (*Completion, error)
	Model() string
}

func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// ToolResult builds a tool-result message answering the given call ID.
func ToolResult(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}
