package injector

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelfType is the type key every injector maps to itself.
const SelfType = "injector"

// ── Options ───────────────────────────────────────────────────────────────────

// Option configures an Injector at construction time.
type Option func(*Injector)

// WithLogger sets the logger used for debug events. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Injector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithParent sets the parent injector.
func WithParent(parent *Injector) Option {
	return func(i *Injector) { i.parent = parent }
}

// ── Injector ──────────────────────────────────────────────────────────────────

// Injector is a node in an injector chain.
//
// It owns one Registry and holds a non-owning reference to its parent. Lookups
// try the local registry first and then walk toward the root. Parents know
// nothing about their children.
//
// An Injector is not safe for concurrent use.
type Injector struct {
	id       string
	registry *Registry
	parent   *Injector

	// logger is the caller-supplied logger; log carries this node's id.
	logger *zap.Logger
	log    *zap.Logger
}

// New creates a root injector (or a child, with WithParent).
func New(opts ...Option) *Injector {
	i := &Injector{
		id:       uuid.NewString(),
		registry: NewRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.log = i.logger.With(zap.String("injector", i.id))

	// Local lookup wins before the chain is climbed, so each node resolves
	// "injector" to itself and never to an ancestor.
	i.registry.put(TypeKey(SelfType), &ValueRule{Value: i})
	return i
}

// ID returns the node's unique identifier.
func (i *Injector) ID() string { return i.id }

// Logger returns the node's logger, tagged with its id.
func (i *Injector) Logger() *zap.Logger { return i.log }

// ── Registration ──────────────────────────────────────────────────────────────

// Map starts a binding on this node. At most one name may be given; a name
// makes the binding qualified.
//
//	inj.Map("someValue").ToValue("Hello World")
//	inj.Map("someValue", "one").ToValue("Hello World 1")
func (i *Injector) Map(typ string, name ...string) *RuleBuilder {
	b := i.registry.Map(keyOf(typ, name))
	b.onCommit = func(k Key, r BindingRule) {
		i.log.Debug("mapped", keyFields(k, zap.String("rule", r.Kind()))...)
	}
	return b
}

// Unmap removes a binding from this node only. Absent keys are ignored.
func (i *Injector) Unmap(typ string, name ...string) {
	key := keyOf(typ, name)
	if !i.registry.Has(key) {
		return
	}
	i.registry.Unmap(key)
	i.log.Debug("unmapped", keyFields(key)...)
}

// HasMapping reports whether the key resolves anywhere from this node to the root.
func (i *Injector) HasMapping(typ string, name ...string) bool {
	key := keyOf(typ, name)
	for n := i; n != nil; n = n.parent {
		if n.registry.Has(key) {
			return true
		}
	}
	return false
}

// HasDirectMapping reports whether this node's own registry holds the key.
func (i *Injector) HasDirectMapping(typ string, name ...string) bool {
	return i.registry.Has(keyOf(typ, name))
}

// Teardown removes every binding of this node, including its self-mapping.
// Parents and children are unaffected.
func (i *Injector) Teardown() {
	n := i.registry.Len()
	i.registry.Clear()
	i.log.Debug("torn down", zap.Int("bindings", n))
}

// ── Resolution ────────────────────────────────────────────────────────────────

// GetInstance resolves the key starting at this node and climbing toward the
// root. It returns *MappingNotFoundError when no node holds the key.
func (i *Injector) GetInstance(typ string, name ...string) (any, error) {
	return i.resolve(keyOf(typ, name))
}

// MustGetInstance is like GetInstance but panics on error.
func (i *Injector) MustGetInstance(typ string, name ...string) any {
	v, err := i.GetInstance(typ, name...)
	if err != nil {
		panic(err)
	}
	return v
}

func (i *Injector) resolve(key Key) (any, error) {
	rule, ok := i.registry.Get(key)
	if !ok {
		if i.parent != nil {
			return i.parent.resolve(key)
		}
		i.log.Debug("mapping not found", keyFields(key)...)
		return nil, &MappingNotFoundError{Key: key}
	}
	return i.instantiate(key, rule)
}

// instantiate applies the rule owned by this node. Fresh instances are wired
// by this node before they are returned.
func (i *Injector) instantiate(key Key, rule BindingRule) (any, error) {
	switch r := rule.(type) {
	case *ValueRule:
		return r.Value, nil

	case *TypeRule:
		instance := r.Factory()
		if err := i.InjectInto(instance); err != nil {
			return nil, err
		}
		return instance, nil

	case *SingletonRule:
		if r.built {
			return r.instance, nil
		}
		instance := r.Factory()
		if err := i.InjectInto(instance); err != nil {
			return nil, err
		}
		r.instance, r.built = instance, true
		i.log.Debug("singleton built", keyFields(key)...)
		return instance, nil

	default:
		panic(fmt.Sprintf("injector: unhandled binding rule %T for %s", rule, key))
	}
}

// ── Chain ─────────────────────────────────────────────────────────────────────

// CreateChildInjector returns a new node whose parent is i. The child starts
// with only its own self-mapping and shares i's logger.
func (i *Injector) CreateChildInjector() *Injector {
	child := New(WithLogger(i.logger), WithParent(i))
	i.log.Debug("child created", zap.String("child", child.id))
	return child
}

// GetParentInjector returns the parent, or nil for a root.
func (i *Injector) GetParentInjector() *Injector { return i.parent }

// SetParentInjector replaces the parent. p must be an *Injector or nil;
// anything else returns ErrInvalidParent and leaves the parent unchanged.
func (i *Injector) SetParentInjector(p any) error {
	switch v := p.(type) {
	case nil:
		i.parent = nil
	case *Injector:
		i.parent = v
	default:
		return ErrInvalidParent
	}
	if i.parent != nil {
		i.log.Debug("parent set", zap.String("parent", i.parent.id))
	} else {
		i.log.Debug("parent cleared")
	}
	return nil
}

// Chain returns the nodes from i up to the root, i first.
func (i *Injector) Chain() []*Injector {
	var out []*Injector
	for n := i; n != nil; n = n.parent {
		out = append(out, n)
	}
	return out
}

// ── Introspection ─────────────────────────────────────────────────────────────

// BindingInfo describes one local binding.
type BindingInfo struct {
	Key  Key
	Kind string
	// Built is true for singletons whose instance exists.
	Built bool
}

// Bindings describes this node's own bindings in a stable order.
func (i *Injector) Bindings() []BindingInfo {
	keys := i.registry.Keys()
	out := make([]BindingInfo, 0, len(keys))
	for _, k := range keys {
		rule, _ := i.registry.Get(k)
		info := BindingInfo{Key: k, Kind: rule.Kind()}
		if s, ok := rule.(*SingletonRule); ok {
			info.Built = s.Built()
		}
		out = append(out, info)
	}
	return out
}

// Lookup finds the node that would answer key without building anything.
func (i *Injector) Lookup(key Key) (owner *Injector, info BindingInfo, ok bool) {
	for n := i; n != nil; n = n.parent {
		rule, found := n.registry.Get(key)
		if !found {
			continue
		}
		info = BindingInfo{Key: key, Kind: rule.Kind()}
		if s, isSingleton := rule.(*SingletonRule); isSingleton {
			info.Built = s.Built()
		}
		return n, info, true
	}
	return nil, BindingInfo{}, false
}

func keyFields(k Key, extra ...zap.Field) []zap.Field {
	fields := make([]zap.Field, 0, 2+len(extra))
	fields = append(fields, zap.String("type", k.Type))
	if k.Named {
		fields = append(fields, zap.String("name", k.Name))
	}
	return append(fields, extra...)
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls GetInstance and type-asserts the result.
//
//	greeting, err := injector.Resolve[string](inj, "greeting")
func Resolve[T any](i *Injector, typ string, name ...string) (T, error) {
	var zero T
	instance, err := i.GetInstance(typ, name...)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Key:    keyOf(typ, name),
			Target: "Resolve",
			Want:   reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:    reflect.TypeOf(instance).String(),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](i *Injector, typ string, name ...string) T {
	v, err := Resolve[T](i, typ, name...)
	if err != nil {
		panic(err)
	}
	return v
}
