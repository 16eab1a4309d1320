package cask

import (
	"io"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Scope is a bounded resolution context. Scoped-lifetime services resolve
// to at most one instance per scope, cached for the scope's lifetime;
// singleton and transient resolutions pass straight through to their usual
// policies. Every scope is independent, including from the provider's own
// implicit root scope.
type Scope struct {
	provider *Provider
	cache    *instanceCache
	mu       sync.Locker
	closed   bool
}

func newScope(p *Provider) *Scope {
	return &Scope{
		provider: p,
		cache:    newInstanceCache(p.concurrent),
		mu:       newLocker(p.concurrent),
	}
}

// Get resolves the contract's most recent registration within this scope,
// or reports false when none exists.
func (s *Scope) Get(contract string) (any, bool) {
	s.checkOpen()

	ids := s.provider.registry.indices(contract)
	if len(ids) == 0 {
		return nil, false
	}

	// Last registration wins single-instance lookups.
	return s.resolve(ids[len(ids)-1]), true
}

// GetRequired is Get, except that a missing registration panics with a
// *MissingServiceError. Validated configurations never trip it for
// declared dependencies; ad-hoc calls on undeclared contracts are the
// caller's own risk.
func (s *Scope) GetRequired(contract string) any {
	instance, ok := s.Get(contract)
	if !ok {
		panic(&MissingServiceError{Contract: contract})
	}

	return instance
}

// GetAll resolves every registration of the contract in registration order,
// each descriptor under its own lifetime policy.
func (s *Scope) GetAll(contract string) []any {
	s.checkOpen()

	ids := s.provider.registry.indices(contract)

	instances := make([]any, 0, len(ids))
	for _, id := range ids {
		instances = append(instances, s.resolve(id))
	}

	return instances
}

// CreateScope opens a sibling scope on the owning provider. Scopes never
// nest; each one is bound directly to the provider.
func (s *Scope) CreateScope() *Scope {
	return s.provider.CreateScope()
}

// Close releases the scoped cache, closing cached instances that implement
// io.Closer in reverse construction order. Closing an already-closed scope
// returns ErrScopeClosed; resolving through one panics with it.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return ErrScopeClosed
	}
	s.closed = true
	s.mu.Unlock()

	var err error
	for _, instance := range s.cache.drain() {
		if closer, ok := instance.(io.Closer); ok {
			err = multierr.Append(err, closer.Close())
		}
	}

	s.provider.logger.Debug("scope closed")

	return err
}

func (s *Scope) checkOpen() {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		panic(ErrScopeClosed)
	}
}

// resolve applies the lifetime policy for one descriptor. Scoped and
// transient factories receive this scope as their resolution context;
// singletons go through the provider.
func (s *Scope) resolve(id int) any {
	d := s.provider.registry.descriptors[id]

	switch d.lifetime {
	case Singleton:
		return s.provider.resolveSingleton(id, d)

	case Scoped:
		if instance, ok := s.cache.lookup(id); ok {
			return instance
		}

		instance := d.factory(s)

		winner, stored := s.cache.commit(id, instance)
		if stored {
			s.provider.logger.Debug("constructed scoped instance",
				zap.String("contract", d.contract),
				zap.String("implementation", d.Implementation()))
		}

		return winner

	default: // Transient
		return d.factory(s)
	}
}
