package agent_test

import (
	"testing"

	"github.com/scoutai/scout/internal/agent"
)

func TestTaskRouter_Search(t *testing.T) {
	r := agent.NewTaskRouter()

	searchTasks := []string{
		"Find the latest news about renewable energy",
		"What is the current population of Tokyo?",
		"Look up the official exchange rate for USD to EUR today",
		"search for the release date of the new model",
		"research the requirements for a US passport",
	}
	for _, task := range searchTasks {
		res := r.Route(task)
		if res.Type != agent.TaskSearch {
			t.Errorf("expected search for %q, got %q (confidence %.2f: %s)",
				task, res.Type, res.Confidence, res.Reasoning)
		}
	}
}

func TestTaskRouter_Reasoning(t *testing.T) {
	r := agent.NewTaskRouter()

	reasoningTasks := []string{
		"Calculate compound interest on $1000 at 5% for 3 years",
		"Solve this math puzzle step by step",
		"Evaluate the logic: if all birds fly and penguins are birds, therefore...",
		"compute the percentage change between the two values",
	}
	for _, task := range reasoningTasks {
		res := r.Route(task)
		if res.Type != agent.TaskReasoning {
			t.Errorf("expected reasoning for %q, got %q (confidence %.2f: %s)",
				task, res.Type, res.Confidence, res.Reasoning)
		}
	}
}

func TestTaskRouter_Default(t *testing.T) {
	r := agent.NewTaskRouter()
	res := r.Route("hello there")
	if res.Type != agent.TaskSearch {
		t.Errorf("default should be search, got %s", res.Type)
	}
	if res.Confidence != 0.5 {
		t.Errorf("default confidence = %.2f, want 0.5", res.Confidence)
	}
	if res.Reasoning == "" {
		t.Error("reasoning should not be empty")
	}
}
