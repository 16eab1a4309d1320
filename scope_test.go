package cask

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_Scoped_CachedWithinScope(t *testing.T) {
	calls := 0

	r := NewRegistry()
	r.Add(NewScoped("session", func(Resolver) any {
		calls++

		return &fooService{label: "session"}
	}))
	p := mustBuild(t, r)

	scope := p.CreateScope()
	defer func() { _ = scope.Close() }()

	first := scope.GetRequired("session")
	second := scope.GetRequired("session")

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestScope_Scoped_DistinctAcrossScopes(t *testing.T) {
	r := NewRegistry()
	r.Add(NewScoped("session", func(Resolver) any { return &fooService{label: "session"} }))
	p := mustBuild(t, r)

	scope1 := p.CreateScope()
	scope2 := p.CreateScope()
	defer func() { _ = scope1.Close() }()
	defer func() { _ = scope2.Close() }()

	assert.NotSame(t, scope1.GetRequired("session"), scope2.GetRequired("session"))
}

func TestScope_RootScopeIndependent(t *testing.T) {
	// Scoped resolution directly on the provider goes through its implicit
	// root scope, which no created scope ever shares.
	r := NewRegistry()
	r.Add(NewScoped("session", func(Resolver) any { return &fooService{label: "session"} }))
	p := mustBuild(t, r)

	scope := p.CreateScope()
	defer func() { _ = scope.Close() }()

	rootFirst := p.GetRequired("session")
	rootSecond := p.GetRequired("session")

	assert.Same(t, rootFirst, rootSecond)
	assert.NotSame(t, rootFirst, scope.GetRequired("session"))
}

func TestScope_SingletonSharedAcrossScopes(t *testing.T) {
	r := NewRegistry()
	r.Add(NewSingleton("foo", func(Resolver) any { return &fooService{label: "foo"} }))
	p := mustBuild(t, r)

	scope1 := p.CreateScope()
	scope2 := p.CreateScope()

	assert.Same(t, scope1.GetRequired("foo"), scope2.GetRequired("foo"))
	assert.Same(t, p.GetRequired("foo"), scope1.GetRequired("foo"))
}

func TestScope_Transient_FreshInstances(t *testing.T) {
	r := NewRegistry()
	r.Add(NewTransient("foo", func(Resolver) any { return &fooService{label: "foo"} }))
	p := mustBuild(t, r)

	scope := p.CreateScope()

	assert.NotSame(t, scope.GetRequired("foo"), scope.GetRequired("foo"))
}

func TestScope_ScopedDependencyStaysInScope(t *testing.T) {
	// The outer scoped factory receives the resolving scope itself, so its
	// scoped dependency lands in the same cache.
	r := NewRegistry()
	r.Add(NewScoped("inner", func(Resolver) any { return &fooService{label: "inner"} }))
	r.Add(NewScoped("outer", func(rsv Resolver) any {
		return &barService{foo: GetRequired[*fooService](rsv, "inner")}
	}, WithDependencies(Requires("inner"))))
	p := mustBuild(t, r)

	scope := p.CreateScope()

	outer := GetRequired[*barService](scope, "outer")

	assert.Same(t, outer.foo, scope.GetRequired("inner"))
	assert.NotSame(t, outer.foo, p.GetRequired("inner"))
}

func TestScope_Close_ReverseConstructionOrder(t *testing.T) {
	var closed []string

	r := NewRegistry()
	r.Add(NewScoped("inner", func(Resolver) any {
		return &closeRecorder{label: "inner", closed: &closed}
	}))
	r.Add(NewScoped("outer", func(rsv Resolver) any {
		rsv.GetRequired("inner")

		return &closeRecorder{label: "outer", closed: &closed}
	}, WithDependencies(Requires("inner"))))
	p := mustBuild(t, r)

	scope := p.CreateScope()
	scope.GetRequired("outer")

	require.NoError(t, scope.Close())
	assert.Equal(t, []string{"outer", "inner"}, closed)
}

func TestScope_Close_Twice(t *testing.T) {
	p := mustBuild(t, NewRegistry())

	scope := p.CreateScope()

	require.NoError(t, scope.Close())
	assert.ErrorIs(t, scope.Close(), ErrScopeClosed)
}

func TestScope_ResolveAfterClose_Panics(t *testing.T) {
	r := NewRegistry()
	r.Add(NewScoped("session", func(Resolver) any { return &fooService{label: "session"} }))
	p := mustBuild(t, r)

	scope := p.CreateScope()
	require.NoError(t, scope.Close())

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrScopeClosed))
	}()

	scope.GetRequired("session")
}

func TestScope_CreateScope_Sibling(t *testing.T) {
	r := NewRegistry()
	r.Add(NewScoped("session", func(Resolver) any { return &fooService{label: "session"} }))
	p := mustBuild(t, r)

	scope := p.CreateScope()
	sibling := scope.CreateScope()

	assert.NotSame(t, scope.GetRequired("session"), sibling.GetRequired("session"))
}

func TestScope_Concurrent_SingleScopedInstance(t *testing.T) {
	r := NewRegistry()
	r.Add(NewScoped("session", func(Resolver) any { return &fooService{label: "session"} }))
	p := mustBuild(t, r, Concurrent())

	scope := p.CreateScope()

	const goroutines = 16

	var (
		wg        sync.WaitGroup
		instances = make([]any, goroutines)
	)

	for i := 0; i < goroutines; i++ {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()
			instances[i] = scope.GetRequired("session")
		}()
	}

	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, instances[0], instances[i])
	}
}

func TestProvider_Close_ClosesRootScopedInstances(t *testing.T) {
	var closed []string

	r := NewRegistry()
	r.Add(NewScoped("session", func(Resolver) any {
		return &closeRecorder{label: "session", closed: &closed}
	}))
	p := mustBuild(t, r)

	p.GetRequired("session")

	require.NoError(t, p.Close())
	assert.Equal(t, []string{"session"}, closed)
}
