package injector

import "fmt"

// RuleBuilder implements the fluent binding API returned by Map.
//
//	inj.Map("greeting").ToValue("Hello World")
//	inj.Map("mailer").ToType(func() any { return &SMTPMailer{} })
//	inj.Map("db", "primary").ToSingleton(func() any { return openDB() })
type RuleBuilder struct {
	registry *Registry
	key      Key
	onCommit func(Key, BindingRule)
}

// ToValue binds the key to v. Every resolution returns v itself.
func (b *RuleBuilder) ToValue(v any) {
	b.commit(&ValueRule{Value: v})
}

// ToType binds the key to factory. Every resolution builds and wires a new
// instance.
func (b *RuleBuilder) ToType(factory Factory) {
	b.mustFactory(factory)
	b.commit(&TypeRule{Factory: factory})
}

// ToSingleton binds the key to factory. The instance is built and wired on
// first resolution and shared afterwards.
func (b *RuleBuilder) ToSingleton(factory Factory) {
	b.mustFactory(factory)
	b.commit(&SingletonRule{Factory: factory})
}

func (b *RuleBuilder) mustFactory(factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("injector: nil factory for [%s]", b.key))
	}
}

func (b *RuleBuilder) commit(rule BindingRule) {
	b.registry.put(b.key, rule)
	if b.onCommit != nil {
		b.onCommit(b.key, rule)
	}
}
