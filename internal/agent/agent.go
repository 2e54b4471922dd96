// Package agent implements the research agents: an orchestrator that plans
// and delegates, specialized search and reasoning sub-agents, and a
// single-agent deep research runner.
package agent

import "context"

// TaskType classifies what kind of work a request asks for.
type TaskType string

const (
	TaskSearch    TaskType = "search"
	TaskReasoning TaskType = "reasoning"
	TaskGeneral   TaskType = "general"
)

// Request is the unit of work sent to an agent.
type Request struct {
	Task    string
	Type    TaskType
	Context map[string]interface{}
}

// Response is what an agent returns. Err is set (and Success false) when
// the agent could not complete the task.
type Response struct {
	Result   string
	Success  bool
	Err      string
	Agent    string
	Metadata map[string]interface{}
}

// Capability describes what an agent is good at. The orchestrator builds
// its delegation prompt from these.
type Capability struct {
	Name         string
	Description  string
	BestFor      []string
	ExampleTasks []string
}

// Agent is implemented by all agents, orchestrator included.
type Agent interface {
	Name() string
	Capabilities() Capability
	CanHandle(req Request) bool
	Execute(ctx context.Context, req Request) Response
}

func successResponse(name, result string, metadata map[string]interface{}) Response {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return Response{Result: result, Success: true, Agent: name, Metadata: metadata}
}

func errorResponse(name, errMsg string, metadata map[string]interface{}) Response {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return Response{Success: false, Err: errMsg, Agent: name, Metadata: metadata}
}
