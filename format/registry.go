package format

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry indexes snapshot parsers by name and by file extension.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
	byExt   map[string]Parser
}

// DefaultRegistry holds the parsers that format packages register in init.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]Parser),
		byExt:   make(map[string]Parser),
	}
}

// Register adds p under its name and extensions. A later parser claiming
// the same name or extension replaces the earlier one.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[strings.ToLower(p.Name())] = p
	for _, ext := range p.Extensions() {
		r.byExt[normalizeExt(ext)] = p
	}
}

// GetParser returns the parser registered as name.
func (r *Registry) GetParser(name string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return p, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectFormat picks the parser for a snapshot: by the file extension
// when one is registered for it, else the first parser, in name order,
// whose CanParse accepts the data.
func (r *Registry) DetectFormat(filename string, data []byte) (Parser, error) {
	r.mu.RLock()
	if p, ok := r.byExt[normalizeExt(filepath.Ext(filename))]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	r.mu.RUnlock()

	if len(data) > 0 {
		for _, name := range r.List() {
			p, _ := r.GetParser(name)
			if p.CanParse(data) {
				return p, nil
			}
		}
	}

	if filename == "" {
		filename = "input"
	}
	return nil, fmt.Errorf("could not detect the snapshot format of %s", filename)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Register adds a parser to the default registry.
func Register(p Parser) {
	DefaultRegistry.Register(p)
}

// GetParser returns a parser from the default registry.
func GetParser(name string) (Parser, error) {
	return DefaultRegistry.GetParser(name)
}

// List returns the parser names of the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// DetectFormat detects a snapshot format with the default registry.
func DetectFormat(filename string, data []byte) (Parser, error) {
	return DefaultRegistry.DetectFormat(filename, data)
}
