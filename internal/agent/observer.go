package agent

// Observer receives progress events while agents work. The CLI renders
// these to the terminal; the server ignores them.
type Observer interface {
	Thought(agent, text string)
	ToolCall(agent, tool string, args map[string]interface{})
	ToolResult(agent, tool, result string)
	Delegation(from, to, task string)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Thought(string, string)                          {}
func (NopObserver) ToolCall(string, string, map[string]interface{}) {}
func (NopObserver) ToolResult(string, string, string)               {}
func (NopObserver) Delegation(string, string, string)               {}
