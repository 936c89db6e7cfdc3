package conditions

import (
	"sort"
	"strings"
)

// Registry maps condition keys to their definitions
type Registry struct {
	defs map[string]Definition
}

// NewRegistry builds a registry; keys are normalized to lower case
func NewRegistry(defs []Definition) *Registry {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		key := normalizeKey(def.Key)
		if key == "" {
			continue
		}
		def.Key = key
		if def.Label == "" {
			def.Label = key
		}
		r.defs[key] = def
	}
	return r
}

// Lookup returns the definition for key. Unknown keys still produce a usable
// definition labelled with the key itself.
func (r *Registry) Lookup(key string) (Definition, bool) {
	key = normalizeKey(key)
	if r != nil {
		if def, ok := r.defs[key]; ok {
			return def, true
		}
	}
	return Definition{Key: key, Label: key}, false
}

// Label returns the display label for key
func (r *Registry) Label(key string) string {
	def, _ := r.Lookup(key)
	return def.Label
}

// Labels returns the key -> label view used for rendering
func (r *Registry) Labels() map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}
	for k, def := range r.defs {
		out[k] = def.Label
	}
	return out
}

// Keys returns the registered keys in sorted order
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.defs))
	for k := range r.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
