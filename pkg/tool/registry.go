package tool

import (
	"math/rand/v2"
	"strings"
)

// Registry is an ordered set of tools keyed by name.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
	rng    *rand.Rand
}

// NewRegistry creates an empty registry. Custom sticker tools draw their
// rotations from rng.
func NewRegistry(rng *rand.Rand) *Registry {
	return &Registry{byName: make(map[string]Tool), rng: rng}
}

// Rand returns the registry's random source.
func (r *Registry) Rand() *rand.Rand { return r.rng }

// Add appends t. It reports false, leaving the registry unchanged, when a
// tool with the same name is already present.
func (r *Registry) Add(t Tool) bool {
	if _, ok := r.byName[t.Name()]; ok {
		return false
	}
	r.tools = append(r.tools, t)
	r.byName[t.Name()] = t
	return true
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// All returns the tools in registration order.
func (r *Registry) All() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name()
	}
	return names
}

func (r *Registry) Len() int { return len(r.tools) }

// AddCustom registers a sticker tool for symbol. A blank symbol, as returned
// by a cancelled prompt, registers nothing and reports false. If a tool with
// that name exists it is returned instead.
func (r *Registry) AddCustom(symbol string) (Tool, bool) {
	if strings.TrimSpace(symbol) == "" {
		return nil, false
	}
	if t, ok := r.byName[symbol]; ok {
		return t, true
	}
	t := NewSticker(symbol, r.rng)
	r.Add(t)
	return t, true
}
