package tools_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/scoutai/scout/internal/tools"
)

func stubTool(name string) tools.Tool {
	return tools.Tool{
		Name:        name,
		Description: "stub " + name,
		InputSchema: map[string]interface{}{"type": "object"},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			return "ran " + name, nil
		},
	}
}

func TestRegistryRegisterAndExecute(t *testing.T) {
	r := tools.NewRegistry(stubTool("alpha"), stubTool("beta"))

	out, err := r.Execute(context.Background(), "alpha", nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "ran alpha" {
		t.Errorf("output = %q, want %q", out, "ran alpha")
	}

	if err := r.Register(stubTool("alpha")); err == nil {
		t.Error("duplicate registration should fail")
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	r := tools.NewRegistry(stubTool("alpha"))
	if _, err := r.Execute(context.Background(), "missing", nil); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestRegistryFilter(t *testing.T) {
	r := tools.NewRegistry(stubTool("alpha"), stubTool("beta"), stubTool("gamma"))

	sub := r.Filter("beta", "does_not_exist", "alpha")
	names := sub.Names()
	if len(names) != 2 {
		t.Fatalf("filtered names = %v, want 2 entries", names)
	}
	if names[0] != "beta" || names[1] != "alpha" {
		t.Errorf("filtered order = %v, want [beta alpha]", names)
	}

	if _, ok := sub.Get("gamma"); ok {
		t.Error("gamma should not be in filtered registry")
	}
}

func TestRegistryDefs(t *testing.T) {
	r := tools.NewRegistry(stubTool("alpha"), stubTool("beta"))
	defs := r.Defs()
	if len(defs) != 2 {
		t.Fatalf("defs = %d, want 2", len(defs))
	}
	for i, name := range []string{"alpha", "beta"} {
		if defs[i].Name != name {
			t.Errorf("defs[%d].Name = %q, want %q", i, defs[i].Name, name)
		}
		if defs[i].Description == "" {
			t.Errorf("defs[%d] missing description", i)
		}
	}
}

func TestRegistryExecuteToolError(t *testing.T) {
	failing := tools.Tool{
		Name:        "boom",
		InputSchema: map[string]interface{}{"type": "object"},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			return "", fmt.Errorf("exploded")
		},
	}
	r := tools.NewRegistry(failing)
	if _, err := r.Execute(context.Background(), "boom", nil); err == nil {
		t.Error("expected tool error to propagate")
	}
}
