package injector

// ── Binding rules ─────────────────────────────────────────────────────────────

// Factory builds a fresh instance for Type and Singleton bindings.
type Factory func() any

// BindingRule is the strategy attached to a registry entry.
//
// The set of rules is closed: ValueRule, TypeRule and SingletonRule.
type BindingRule interface {
	// Kind names the strategy ("value", "type" or "singleton").
	Kind() string
	rule()
}

// ValueRule always resolves to the same stored value.
type ValueRule struct {
	Value any
}

// TypeRule calls Factory on every resolution and wires the result before
// returning it.
type TypeRule struct {
	Factory Factory
}

// SingletonRule calls Factory on first resolution, wires the result once and
// returns the cached instance afterwards.
type SingletonRule struct {
	Factory Factory

	instance any
	built    bool
}

func (*ValueRule) Kind() string     { return "value" }
func (*TypeRule) Kind() string      { return "type" }
func (*SingletonRule) Kind() string { return "singleton" }

func (*ValueRule) rule()     {}
func (*TypeRule) rule()      {}
func (*SingletonRule) rule() {}

// Built reports whether the singleton instance has been created.
func (r *SingletonRule) Built() bool { return r.built }
