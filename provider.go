package cask

import (
	"io"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Resolver is the resolution context handed to factories and exposed to
// consumers. Both *Provider and *Scope implement it; which one a factory
// receives depends on the lifetime of the service under construction, so a
// scoped service's dependencies land in the scope that asked for it.
type Resolver interface {
	// Get resolves the contract's most recent registration, or reports
	// false when none exists. It never errors; absence is the false result.
	Get(contract string) (any, bool)

	// GetRequired is Get, except that a missing registration is a fatal
	// usage defect: it panics with a *MissingServiceError.
	GetRequired(contract string) any

	// GetAll resolves every registration of the contract in registration
	// order, each under its own lifetime policy. No registrations yield an
	// empty slice, never an error.
	GetAll(contract string) []any

	// CreateScope opens a fresh, fully independent resolution scope.
	CreateScope() *Scope
}

// Provider is the resolution engine over a validated registry. It owns the
// singleton cache and an implicit root scope that serves scoped-lifetime
// resolutions made directly against the provider. Created scopes are
// independent of the root scope and of each other.
//
// Obtain a Provider from Registry.Build; the registry snapshot it wraps is
// read-only for the provider's whole life.
type Provider struct {
	registry   *Registry
	singletons *instanceCache
	root       *Scope
	logger     *zap.Logger
	concurrent bool
}

func newProvider(registry *Registry, opts ...ProviderOption) *Provider {
	p := &Provider{
		registry: registry,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.singletons = newInstanceCache(p.concurrent)
	p.root = newScope(p)

	p.logger.Debug("provider built",
		zap.Int("descriptors", registry.Len()),
		zap.Bool("concurrent", p.concurrent))

	return p
}

// Get resolves the contract through the provider's implicit root scope.
func (p *Provider) Get(contract string) (any, bool) {
	return p.root.Get(contract)
}

// GetRequired resolves the contract through the implicit root scope,
// panicking with a *MissingServiceError when nothing is registered.
func (p *Provider) GetRequired(contract string) any {
	return p.root.GetRequired(contract)
}

// GetAll resolves every registration of the contract through the implicit
// root scope.
func (p *Provider) GetAll(contract string) []any {
	return p.root.GetAll(contract)
}

// CreateScope opens a new scope with its own empty cache. The scope shares
// the provider's registry and singleton cache and nothing else.
func (p *Provider) CreateScope() *Scope {
	p.logger.Debug("scope created")

	return newScope(p)
}

// Contains reports whether any descriptor is registered for the contract.
func (p *Provider) Contains(contract string) bool {
	return p.registry.Contains(contract)
}

// Contracts returns the distinct registered contracts in first-registration
// order.
func (p *Provider) Contracts() []string {
	return p.registry.Contracts()
}

// Close disposes the implicit root scope, then releases every cached
// singleton, closing the ones that implement io.Closer in reverse
// construction order so dependents close before their dependencies.
func (p *Provider) Close() error {
	err := p.root.Close()

	for _, instance := range p.singletons.drain() {
		if closer, ok := instance.(io.Closer); ok {
			err = multierr.Append(err, closer.Close())
		}
	}

	p.logger.Debug("provider closed")

	return err
}

// resolveSingleton applies the single-instance discipline against the
// provider's singleton cache. The factory receives the provider itself:
// a singleton's dependencies always resolve at root level, never inside
// whichever scope happened to trigger construction.
func (p *Provider) resolveSingleton(id int, d *Descriptor) any {
	if instance, ok := p.singletons.lookup(id); ok {
		return instance
	}

	instance := d.factory(p)

	winner, stored := p.singletons.commit(id, instance)
	if stored {
		p.logger.Debug("constructed singleton",
			zap.String("contract", d.contract),
			zap.String("implementation", d.Implementation()))
	}

	return winner
}

// instanceCache is one cache level: the provider's singleton cache or a
// scope's cache. Entries are keyed by descriptor registration index and
// are append-only for the cache's lifetime.
type instanceCache struct {
	mu      sync.Locker
	entries map[int]any
	order   []int
}

func newInstanceCache(concurrent bool) *instanceCache {
	return &instanceCache{
		mu:      newLocker(concurrent),
		entries: make(map[int]any),
	}
}

func (c *instanceCache) lookup(id int) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	instance, ok := c.entries[id]

	return instance, ok
}

// commit stores the instance unless a concurrent construction of the same
// descriptor won the race, in which case the stored winner is returned and
// the caller's construction is discarded. The factory runs outside the
// lock — it re-enters resolution for its own dependencies — so under
// contention a losing construction can happen, but never a second entry.
func (c *instanceCache) commit(id int, instance any) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if winner, ok := c.entries[id]; ok {
		return winner, false
	}

	if c.entries == nil {
		// Cache drained by a concurrent Close; hand back the instance uncached.
		return instance, false
	}

	c.entries[id] = instance
	c.order = append(c.order, id)

	return instance, true
}

// drain empties the cache and returns its instances in reverse insertion
// order. Resolution is depth-first, so insertion order puts dependencies
// before dependents and the reversal closes dependents first.
func (c *instanceCache) drain() []any {
	c.mu.Lock()
	defer c.mu.Unlock()

	instances := make([]any, 0, len(c.order))
	for i := len(c.order) - 1; i >= 0; i-- {
		instances = append(instances, c.entries[c.order[i]])
	}

	c.entries = nil
	c.order = nil

	return instances
}
