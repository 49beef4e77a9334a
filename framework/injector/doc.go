// Package injector provides a hierarchical dependency-injection container.
//
// # Overview
//
// An Injector holds bindings keyed by a type key and an optional qualifier
// name. Each binding has one of three rules:
//
//	inj := injector.New()
//
//	// Value: always the same value
//	inj.Map("greeting").ToValue("Hello World")
//
//	// Type: a new, wired instance on every resolution
//	inj.Map("request").ToType(func() any { return &Request{} })
//
//	// Singleton: built and wired once, then shared
//	inj.Map("db", "primary").ToSingleton(func() any { return &DB{} })
//
// # Resolving
//
//	v, err := inj.GetInstance("greeting")
//	db, err := injector.Resolve[*DB](inj, "db", "primary")
//
// A miss returns *MappingNotFoundError with a fixed message:
//
//	Cannot return instance "db by name primary" because no mapping has been found
//
// # Injection markers
//
// InjectInto rewrites injection points on a target. A marker is a string:
//
//	inject                  bind by the property's own name
//	inject(name="Q")        ... qualified by Q
//	inject:K                bind type key K
//	inject(name="Q"):K      ... qualified by Q
//
// Markers are read from string values of a map[string]any, or from `di`
// struct tags. Structs may instead declare InjectionPoints explicitly:
//
//	type Greeter struct {
//	    Greeting string `di:"inject"`
//	    Other    string `di:"inject(name=\"one\"):greeting"`
//	}
//
//	func (g *Greeter) PostConstructs() []string { return []string{"Ready"} }
//	func (g *Greeter) Ready()                   { ... }
//
// # Chains
//
// CreateChildInjector returns a node whose misses fall through to the parent.
// A child may shadow any parent binding. Every node maps "injector" to itself,
// so GetInstance("injector") returns the node queried. Unmap and Teardown only
// ever touch the receiving node.
//
// # Concurrency
//
// Injectors take no locks. Share one across goroutines only with external
// synchronisation. Singleton instances are shared mutable state: a change made
// through one resolution is visible to every later one.
package injector
