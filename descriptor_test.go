package cask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDescriptor_Defaults(t *testing.T) {
	d := NewDescriptor("cache", Singleton, func(Resolver) any { return "instance" })

	assert.Equal(t, "cache", d.Contract())
	assert.Equal(t, Singleton, d.Lifetime())
	assert.Equal(t, "cache", d.Implementation())
	assert.Nil(t, d.Dependencies())
}

func TestNewDescriptor_Options(t *testing.T) {
	d := NewDescriptor("cache", Scoped, func(Resolver) any { return "instance" },
		WithImplementation("redisCache"),
		WithDependencies(Requires("config"), Optional("logger"), Many("codec")),
	)

	assert.Equal(t, "redisCache", d.Implementation())

	deps := d.Dependencies()
	require.Len(t, deps, 3)
	assert.Equal(t, Dependency{Contract: "config", Cardinality: ExactlyOne}, deps[0])
	assert.Equal(t, Dependency{Contract: "logger", Cardinality: ZeroOrOne}, deps[1])
	assert.Equal(t, Dependency{Contract: "codec", Cardinality: ZeroOrMore}, deps[2])
}

func TestDescriptor_DependenciesReturnsCopy(t *testing.T) {
	d := NewTransient("svc", func(Resolver) any { return "instance" },
		WithDependencies(Requires("config")))

	deps := d.Dependencies()
	deps[0].Contract = "mutated"

	assert.Equal(t, "config", d.Dependencies()[0].Contract)
}

func TestNewDescriptor_PanicsOnEmptyContract(t *testing.T) {
	assert.Panics(t, func() {
		NewDescriptor("", Singleton, func(Resolver) any { return nil })
	})
}

func TestNewDescriptor_PanicsOnNilFactory(t *testing.T) {
	assert.Panics(t, func() {
		NewDescriptor("cache", Singleton, nil)
	})
}

func TestLifetimeConstructors(t *testing.T) {
	factory := func(Resolver) any { return "instance" }

	assert.Equal(t, Singleton, NewSingleton("a", factory).Lifetime())
	assert.Equal(t, Scoped, NewScoped("b", factory).Lifetime())
	assert.Equal(t, Transient, NewTransient("c", factory).Lifetime())
}

func TestLifetime_String(t *testing.T) {
	assert.Equal(t, "Transient", Transient.String())
	assert.Equal(t, "Singleton", Singleton.String())
	assert.Equal(t, "Scoped", Scoped.String())
}

func TestCardinality_String(t *testing.T) {
	assert.Equal(t, "ExactlyOne", ExactlyOne.String())
	assert.Equal(t, "ZeroOrOne", ZeroOrOne.String())
	assert.Equal(t, "ZeroOrMore", ZeroOrMore.String())
}
