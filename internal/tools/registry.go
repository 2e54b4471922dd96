package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/scoutai/scout/internal/llm"
)

// Registry holds the tools available to agents. Agents discover tools by
// name and receive their schemas for function calling.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Tool
}

func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{byName: make(map[string]Tool)}
	for _, t := range ts {
		// duplicate names silently overwrite during construction; Register
		// reports them for dynamic additions
		if _, exists := r.byName[t.Name]; !exists {
			r.order = append(r.order, t.Name)
		}
		r.byName[t.Name] = t
	}
	return r
}

// Register adds a tool, rejecting duplicate names.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[t.Name]; exists {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.byName[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Defs returns the schemas of all registered tools for function calling.
func (r *Registry) Defs() []llm.ToolDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]llm.ToolDef, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name].Def())
	}
	return out
}

// Filter returns a new registry containing only the named tools. Unknown
// names are skipped, so agents can ask for optional tools unconditionally.
func (r *Registry) Filter(names ...string) *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub := &Registry{byName: make(map[string]Tool, len(names))}
	for _, name := range names {
		if t, ok := r.byName[name]; ok {
			sub.byName[name] = t
			sub.order = append(sub.order, name)
		}
	}
	return sub
}

// Execute runs the named tool. Unknown tools are an error so the caller can
// surface them to the model instead of aborting the loop.
func (r *Registry) Execute(ctx context.Context, name string, input map[string]interface{}) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("tool %q not found", name)
	}
	return t.Execute(ctx, input)
}
