package boss

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Registry holds all boss definitions.
type Registry struct {
	mu     sync.RWMutex
	bosses map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bosses: make(map[string]*Definition),
	}
}

// DefaultRegistry returns a registry loaded with the built-in catalog.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadFromYAML(defaultCatalog); err != nil {
		return nil, fmt.Errorf("default catalog: %w", err)
	}
	return r, nil
}

// LoadFromFile loads definitions from a .json, .yaml or .yml file.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read boss catalog: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return r.LoadFromJSON(data)
	}
	return r.LoadFromYAML(data)
}

// LoadFromJSON loads definitions from raw JSON bytes.
func (r *Registry) LoadFromJSON(data []byte) error {
	var list []*Definition
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse boss catalog JSON: %w", err)
	}
	return r.add(list)
}

// LoadFromYAML loads definitions from raw YAML bytes.
func (r *Registry) LoadFromYAML(data []byte) error {
	var list []*Definition
	if err := yaml.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse boss catalog YAML: %w", err)
	}
	return r.add(list)
}

func (r *Registry) add(list []*Definition) error {
	for i, d := range list {
		if d == nil || d.ID == "" {
			log.Printf("[Boss] skipping catalog entry %d without id", i)
			continue
		}
		if err := d.validate(); err != nil {
			return fmt.Errorf("boss %s: %w", d.ID, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range list {
		if d == nil || d.ID == "" {
			continue
		}
		r.bosses[d.ID] = d
	}
	return nil
}

// Get returns a definition by ID, or nil.
func (r *Registry) Get(id string) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bosses[id]
}

// Lookup is Get with ErrBossNotFound for unknown IDs.
func (r *Registry) Lookup(id string) (*Definition, error) {
	if d := r.Get(id); d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBossNotFound, id)
}

// All returns every definition by ascending unlock order.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	out := make([]*Definition, 0, len(r.bosses))
	for _, d := range r.bosses {
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UnlockOrder != out[j].UnlockOrder {
			return out[i].UnlockOrder < out[j].UnlockOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// First returns the boss with the lowest unlock order, or nil.
func (r *Registry) First() *Definition {
	all := r.All()
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// Next returns the boss unlocked after id, or nil when id is last.
func (r *Registry) Next(id string) *Definition {
	all := r.All()
	for i, d := range all {
		if d.ID == id && i+1 < len(all) {
			return all[i+1]
		}
	}
	return nil
}

// Count returns the total number of registered bosses.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bosses)
}
