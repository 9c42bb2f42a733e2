package transform

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the transformers available to the local tooling.
type Registry interface {
	// Register adds a transformer under a variant name
	Register(variant string, transformer Transformer) error
	// Get returns the transformer registered for a variant
	Get(variant string) (Transformer, error)
	// ListVariants returns the registered variants in lexical order
	ListVariants() []string
}

type registry struct {
	mu           sync.RWMutex
	transformers map[string]Transformer
}

func NewRegistry() Registry {
	return &registry{
		transformers: make(map[string]Transformer),
	}
}

func (r *registry) Register(variant string, transformer Transformer) error {
	if variant == "" {
		return fmt.Errorf("variant name cannot be empty")
	}
	if transformer == nil {
		return fmt.Errorf("transformer cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transformers[variant]; exists {
		return fmt.Errorf("variant %q is already registered", variant)
	}

	r.transformers[variant] = transformer
	return nil
}

func (r *registry) Get(variant string) (Transformer, error) {
	r.mu.RLock()
	transformer, exists := r.transformers[variant]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("variant %q is not registered", variant)
	}
	return transformer, nil
}

func (r *registry) ListVariants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variants := make([]string, 0, len(r.transformers))
	for variant := range r.transformers {
		variants = append(variants, variant)
	}
	sort.Strings(variants)
	return variants
}
