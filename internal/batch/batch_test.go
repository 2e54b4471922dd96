package batch

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/scoutai/scout/internal/agent"
)

type countingAgent struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
	fail     map[string]bool
}

func (c *countingAgent) Name() string                    { return "stub" }
func (c *countingAgent) Capabilities() agent.Capability  { return agent.Capability{Name: "stub"} }
func (c *countingAgent) CanHandle(agent.Request) bool    { return true }
func (c *countingAgent) Execute(_ context.Context, req agent.Request) agent.Response {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.maxSeen {
		c.maxSeen = c.inFlight
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	if c.fail[req.Task] {
		return agent.Response{Success: false, Err: "simulated failure", Agent: "stub"}
	}
	return agent.Response{Success: true, Result: "answer to " + req.Task, Agent: "stub"}
}

func TestReadQuestionsSkipsBlanksAndComments(t *testing.T) {
	input := "first question\n\n# a comment\n  second question  \n"
	qs, err := readQuestions(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2: %v", len(qs), qs)
	}
	if qs[0] != "first question" || qs[1] != "second question" {
		t.Errorf("questions = %v", qs)
	}
}

func TestRunnerPreservesOrder(t *testing.T) {
	a := &countingAgent{}
	r := NewRunner(a, 4)

	questions := []string{"q0", "q1", "q2", "q3", "q4"}
	results := r.Run(context.Background(), questions)

	if len(results) != len(questions) {
		t.Fatalf("got %d results, want %d", len(results), len(questions))
	}
	for i, res := range results {
		if res.Index != i || res.Question != questions[i] {
			t.Errorf("result %d out of order: %+v", i, res)
		}
		if res.Answer != "answer to "+questions[i] {
			t.Errorf("result %d answer = %q", i, res.Answer)
		}
	}
}

func TestRunnerRecordsFailuresWithoutAborting(t *testing.T) {
	a := &countingAgent{fail: map[string]bool{"bad": true}}
	r := NewRunner(a, 2)

	results := r.Run(context.Background(), []string{"good", "bad", "also good"})

	if results[0].Err != "" || results[2].Err != "" {
		t.Error("successful questions should not carry errors")
	}
	if results[1].Err != "simulated failure" || results[1].Answer != "" {
		t.Errorf("failed question result = %+v", results[1])
	}
}

func TestRunnerRespectsConcurrencyLimit(t *testing.T) {
	a := &countingAgent{}
	r := NewRunner(a, 2)

	questions := make([]string, 20)
	for i := range questions {
		questions[i] = "q"
	}
	r.Run(context.Background(), questions)

	if a.maxSeen > 2 {
		t.Errorf("max concurrent executions = %d, want <= 2", a.maxSeen)
	}
}
