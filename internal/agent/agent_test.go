package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/scoutai/scout/internal/llm"
	"github.com/scoutai/scout/internal/tools"
)

// fakeProvider replays a scripted sequence of completions and records the
// requests it saw.
type fakeProvider struct {
	script   []llm.Completion
	calls    int
	requests [][]llm.Message
}

func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) Complete(_ context.Context, messages []llm.Message, _ []llm.ToolDef) (*llm.Completion, error) {
	f.requests = append(f.requests, messages)
	if f.calls >= len(f.script) {
		return &llm.Completion{Content: "out of script"}, nil
	}
	c := f.script[f.calls]
	f.calls++
	return &c, nil
}

func testRegistry(t *testing.T, executed *[]string) *tools.Registry {
	t.Helper()
	mk := func(name, output string) tools.Tool {
		return tools.Tool{
			Name:        name,
			Description: name,
			InputSchema: map[string]interface{}{"type": "object"},
			Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
				if executed != nil {
					*executed = append(*executed, name)
				}
				return output, nil
			},
		}
	}
	return tools.NewRegistry(
		mk("google_search", "1. Result\n   URL: https://example.com\n   snippet"),
		mk("open_webpage", "Content from https://example.com:\n\npage text"),
		mk("search_and_read", "Comprehensive information"),
		mk("calculate", "42"),
	)
}

func TestSearchAgentCompletesWithMarker(t *testing.T) {
	var executed []string
	provider := &fakeProvider{script: []llm.Completion{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "google_search", Arguments: `{"query":"tokyo population"}`}}},
		{Content: "Found it. SEARCH_COMPLETE: Tokyo has about 14 million residents."},
	}}

	a := NewSearchAgent(provider, testRegistry(t, &executed), nil)
	resp := a.Execute(context.Background(), Request{Task: "population of tokyo", Type: TaskSearch})

	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Err)
	}
	if resp.Result != "Tokyo has about 14 million residents." {
		t.Errorf("result = %q", resp.Result)
	}
	if len(executed) != 1 || executed[0] != "google_search" {
		t.Errorf("executed tools = %v, want [google_search]", executed)
	}
	if resp.Agent != "SearchAgent" {
		t.Errorf("agent = %q", resp.Agent)
	}
}

func TestSearchAgentTimesOut(t *testing.T) {
	// Model never emits the completion marker.
	script := make([]llm.Completion, searchMaxTurns)
	for i := range script {
		script[i] = llm.Completion{Content: "still thinking"}
	}
	provider := &fakeProvider{script: script}

	a := NewSearchAgent(provider, testRegistry(t, nil), nil)
	resp := a.Execute(context.Background(), Request{Task: "anything", Type: TaskSearch})

	if resp.Success {
		t.Fatal("expected failure on turn exhaustion")
	}
	if !strings.Contains(resp.Err, "max turns") {
		t.Errorf("err = %q", resp.Err)
	}
}

func TestSearchAgentOnlySeesSearchTools(t *testing.T) {
	a := NewSearchAgent(&fakeProvider{}, testRegistry(t, nil), nil)
	names := a.registry.Filter(SearchToolNames...).Names()
	for _, n := range names {
		if n == "calculate" {
			t.Error("search agent should not see the calculate tool")
		}
	}
	if len(names) != 3 {
		t.Errorf("search tools = %v, want 3 entries", names)
	}
}

func TestReasoningAgentUsesCalculator(t *testing.T) {
	var executed []string
	provider := &fakeProvider{script: []llm.Completion{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "calculate", Arguments: `{"expression":"6*7"}`}}},
		{Content: "Let me double-check this reasoning: fine. REASONING_COMPLETE: The answer is 42."},
	}}

	a := NewReasoningAgent(provider, testRegistry(t, &executed), nil)
	resp := a.Execute(context.Background(), Request{Task: "what is 6*7", Type: TaskReasoning})

	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Err)
	}
	if resp.Result != "The answer is 42." {
		t.Errorf("result = %q", resp.Result)
	}
	if len(executed) != 1 || executed[0] != "calculate" {
		t.Errorf("executed = %v", executed)
	}
}

func TestToolErrorIsFedBackToModel(t *testing.T) {
	provider := &fakeProvider{script: []llm.Completion{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "no_such_tool", Arguments: `{}`}}},
		{Content: "SEARCH_COMPLETE: gave up gracefully"},
	}}

	a := NewSearchAgent(provider, testRegistry(t, nil), nil)
	resp := a.Execute(context.Background(), Request{Task: "x", Type: TaskSearch})

	if !resp.Success {
		t.Fatalf("tool error should not fail the loop: %q", resp.Err)
	}

	// The second request must contain the error as a tool result.
	second := provider.requests[1]
	var sawError bool
	for _, m := range second {
		if m.Role == llm.RoleTool && strings.Contains(m.Content, "Error executing no_such_tool") {
			sawError = true
		}
	}
	if !sawError {
		t.Error("tool error string not fed back to the model")
	}
}

func TestSoloAgentForcesFinalAnswerOnTimeout(t *testing.T) {
	script := make([]llm.Completion, soloMaxTurns)
	for i := range script {
		script[i] = llm.Completion{Content: "researching..."}
	}
	script = append(script, llm.Completion{Content: "Best effort summary."})
	provider := &fakeProvider{script: script}

	a := NewSoloAgent(provider, testRegistry(t, nil), nil)
	resp := a.Execute(context.Background(), Request{Task: "hard question"})

	if !resp.Success {
		t.Fatalf("solo agent should succeed with forced final answer, got %q", resp.Err)
	}
	if resp.Result != "Best effort summary." {
		t.Errorf("result = %q", resp.Result)
	}
	if provider.calls != soloMaxTurns+1 {
		t.Errorf("provider calls = %d, want %d", provider.calls, soloMaxTurns+1)
	}
}

func TestCanHandle(t *testing.T) {
	search := NewSearchAgent(&fakeProvider{}, testRegistry(t, nil), nil)
	reasoning := NewReasoningAgent(&fakeProvider{}, testRegistry(t, nil), nil)

	if !search.CanHandle(Request{Type: TaskSearch}) || search.CanHandle(Request{Type: TaskReasoning}) {
		t.Error("search agent CanHandle mismatch")
	}
	if !reasoning.CanHandle(Request{Type: TaskReasoning}) || reasoning.CanHandle(Request{Type: TaskSearch}) {
		t.Error("reasoning agent CanHandle mismatch")
	}
}
