package injector

import "sort"

// Registry stores binding rules by key for a single injector node.
//
// Re-mapping an existing key replaces its rule; there is no duplicate-key error.
type Registry struct {
	rules map[Key]BindingRule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[Key]BindingRule)}
}

// Map starts a binding for key. Nothing is stored until one of the builder's
// To* methods is called.
//
//	reg.Map(injector.TypeKey("greeting")).ToValue("Hello World")
func (r *Registry) Map(key Key) *RuleBuilder {
	return &RuleBuilder{registry: r, key: key}
}

func (r *Registry) put(key Key, rule BindingRule) {
	r.rules[key] = rule
}

// Get returns the rule stored for key.
func (r *Registry) Get(key Key) (BindingRule, bool) {
	rule, ok := r.rules[key]
	return rule, ok
}

// Has reports whether this registry holds key.
func (r *Registry) Has(key Key) bool {
	_, ok := r.rules[key]
	return ok
}

// Unmap removes key. Removing an absent key is a no-op.
func (r *Registry) Unmap(key Key) {
	delete(r.rules, key)
}

// Clear removes every key.
func (r *Registry) Clear() {
	r.rules = make(map[Key]BindingRule)
}

// Len returns the number of stored bindings.
func (r *Registry) Len() int { return len(r.rules) }

// Keys returns all stored keys in a stable order.
func (r *Registry) Keys() []Key {
	out := make([]Key, 0, len(r.rules))
	for k := range r.rules {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}
