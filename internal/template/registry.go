package template

import (
	"fmt"
)

// Registry is the immutable catalog of builder templates. Detection order is
// registration order; the generic fallback is always present and never
// participates in detection scoring.
type Registry struct {
	defs    []*Definition
	byID    map[string]*Definition
	generic *Definition
}

// NewRegistry compiles raw definitions into a registry. Exactly one
// definition must carry the generic id.
func NewRegistry(raws []RawDefinition) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Definition, len(raws))}
	for i, raw := range raws {
		def, err := compileDefinition(raw, i)
		if err != nil {
			return nil, err
		}
		if _, dup := r.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", def.ID)
		}
		r.byID[def.ID] = def
		if def.ID == GenericID {
			r.generic = def
			continue
		}
		r.defs = append(r.defs, def)
	}
	if r.generic == nil {
		return nil, fmt.Errorf("registry has no %q template", GenericID)
	}
	return r, nil
}

// Builtin returns the registry of shipped builder templates, optionally
// extended with extra raw definitions (from a validated config file).
func Builtin(extra ...RawDefinition) (*Registry, error) {
	raws := make([]RawDefinition, 0, len(builtinDefinitions)+len(extra))
	raws = append(raws, builtinDefinitions...)
	raws = append(raws, extra...)
	return NewRegistry(raws)
}

// Definitions returns the detectable templates in registration order.
// Callers must not mutate the returned slice.
func (r *Registry) Definitions() []*Definition { return r.defs }

// Generic returns the fallback template.
func (r *Registry) Generic() *Definition { return r.generic }

// Get looks up a template by id, generic included.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// IsGeneric reports whether id names the fallback template.
func IsGeneric(id string) bool { return id == GenericID }
