package injector

import "reflect"

// ── Provider interface ────────────────────────────────────────────────────────

// Provider groups related bindings.
//
// Register is called as soon as the provider is added. Boot is called after
// every provider has been registered, so it may resolve bindings made by
// other providers.
//
//	type MailProvider struct{ injector.BaseProvider }
//
//	func (p *MailProvider) Register(inj *injector.Injector) {
//	    inj.Map("mailer").ToSingleton(func() any { return &SMTPMailer{} })
//	}
type Provider interface {
	Register(inj *Injector)
	Boot(inj *Injector) error
}

// BaseProvider is an embeddable no-op Boot.
type BaseProvider struct{}

func (BaseProvider) Boot(*Injector) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots providers against one injector.
//
// Providers are deduplicated by value, so pointer providers are the norm.
// A provider whose value is not comparable (a struct holding a slice or map)
// is never deduplicated.
type ProviderRegistry struct {
	inj        *Injector
	providers  []Provider
	registered map[Provider]bool
	booted     bool
	// bootErr is the first Boot failure; it is returned by every later Boot.
	bootErr error
}

// NewProviderRegistry creates a registry bound to inj.
func NewProviderRegistry(inj *Injector) *ProviderRegistry {
	return &ProviderRegistry{
		inj:        inj,
		registered: make(map[Provider]bool),
	}
}

// Register adds a provider and calls its Register method. Adding the same
// provider twice is a no-op. Providers added after Boot are booted immediately.
func (r *ProviderRegistry) Register(p Provider) error {
	if reflect.ValueOf(p).Comparable() {
		if r.registered[p] {
			return nil
		}
		r.registered[p] = true
	}

	p.Register(r.inj)
	r.providers = append(r.providers, p)

	if r.booted {
		return p.Boot(r.inj)
	}
	return nil
}

// Boot calls Boot on every registered provider in registration order and stops
// at the first error. After a success Boot is a no-op; after a failure the
// registry stays unbooted and every later Boot returns the same error.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	if r.bootErr != nil {
		return r.bootErr
	}
	for _, p := range r.providers {
		if err := p.Boot(r.inj); err != nil {
			r.bootErr = err
			return err
		}
	}
	r.booted = true
	return nil
}

// Booted reports whether every provider booted successfully.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in order.
func (r *ProviderRegistry) Providers() []Provider { return r.providers }
