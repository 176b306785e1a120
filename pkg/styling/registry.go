package styling

import (
	"strings"
	"sync"
)

// Sheet is a named rule mapping keyed by top-level selectors
type Sheet struct {
	Name  string
	Rules Rules
}

// CSS flattens the sheet
func (s Sheet) CSS() string {
	return FlattenSheet(s.Rules)
}

// Registry collects the sheets of one build in registration order
type Registry struct {
	mu     sync.RWMutex
	order  []string
	sheets map[string]Sheet
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sheets: make(map[string]Sheet)}
}

// Register adds a sheet. A sheet registered again under the same name
// replaces the earlier one and keeps its position.
func (r *Registry) Register(s Sheet) {
	if len(s.Rules) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sheets[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.sheets[s.Name] = s
}

// Sheets returns the registered sheets in order
func (r *Registry) Sheets() []Sheet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Sheet, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sheets[name])
	}
	return out
}

// CSS returns every registered sheet flattened, separated by blank lines
func (r *Registry) CSS() string {
	sheets := r.Sheets()
	parts := make([]string, 0, len(sheets))
	for _, s := range sheets {
		if css := s.CSS(); css != "" {
			parts = append(parts, css)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Reset clears all registered sheets (useful for testing)
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.sheets = make(map[string]Sheet)
}
