package cask

import "sync"

// Lazy defers a mandatory resolution until first use. The resolution is
// bound to a (contract, resolver) pair at construction but not performed;
// the first Value call performs it and memoizes the result, and every later
// call returns the memoized value. Memoization only defers timing — the
// instance's lifetime is still governed entirely by its contract's policy.
type Lazy[T any] struct {
	resolver Resolver
	contract string
	once     sync.Once
	value    T
	resolved bool
}

// NewLazy creates a deferred wrapper for the contract. Nothing is resolved
// until Value is called.
func NewLazy[T any](r Resolver, contract string) *Lazy[T] {
	return &Lazy[T]{resolver: r, contract: contract}
}

// Value resolves the contract on first call, panicking with a
// *MissingServiceError when nothing is registered, and returns the memoized
// instance on every call after that.
func (l *Lazy[T]) Value() T {
	l.once.Do(func() {
		l.value = GetRequired[T](l.resolver, l.contract)
		l.resolved = true
	})

	return l.value
}

// Resolved reports whether Value has run.
func (l *Lazy[T]) Resolved() bool {
	return l.resolved
}

// Contract returns the wrapped contract.
func (l *Lazy[T]) Contract() string {
	return l.contract
}

// OptionalLazy defers a zero-or-one resolution until first use. An absent
// registration is not an error; Value reports it as false.
type OptionalLazy[T any] struct {
	resolver Resolver
	contract string
	once     sync.Once
	value    T
	found    bool
}

// NewOptionalLazy creates a deferred wrapper for a contract that may be
// unregistered.
func NewOptionalLazy[T any](r Resolver, contract string) *OptionalLazy[T] {
	return &OptionalLazy[T]{resolver: r, contract: contract}
}

// Value resolves the contract on first call and memoizes the outcome,
// present or absent.
func (l *OptionalLazy[T]) Value() (T, bool) {
	l.once.Do(func() {
		l.value, l.found = Get[T](l.resolver, l.contract)
	})

	return l.value, l.found
}

// Contract returns the wrapped contract.
func (l *OptionalLazy[T]) Contract() string {
	return l.contract
}

// ManyLazy defers a zero-or-more resolution until first use, memoizing the
// whole collection.
type ManyLazy[T any] struct {
	resolver Resolver
	contract string
	once     sync.Once
	values   []T
}

// NewManyLazy creates a deferred wrapper over every registration of the
// contract.
func NewManyLazy[T any](r Resolver, contract string) *ManyLazy[T] {
	return &ManyLazy[T]{resolver: r, contract: contract}
}

// Values resolves every registration on first call, in registration order,
// and returns the memoized collection afterwards.
func (l *ManyLazy[T]) Values() []T {
	l.once.Do(func() {
		l.values = GetAll[T](l.resolver, l.contract)
	})

	return l.values
}

// Contract returns the wrapped contract.
func (l *ManyLazy[T]) Contract() string {
	return l.contract
}
