// Package cask provides a lifetime-aware dependency injection container
// built around explicit service descriptors.
//
// Services are registered as descriptors — contract, lifetime, factory and
// optionally the dependencies the factory consumes. [Registry.Build]
// statically validates the whole graph before anything is constructed,
// collecting every defect into one [ValidationError]: missing mandatory
// dependencies, dependency cycles, and singletons that would capture
// scoped services.
//
// # Quick Start
//
//	registry := cask.NewRegistry()
//	registry.Add(cask.NewSingleton("logger", newLogger))
//	registry.Add(cask.NewScoped("session", newSession,
//	    cask.WithDependencies(cask.Requires("logger"))))
//
//	provider, err := registry.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	logger := cask.GetRequired[*Logger](provider, "logger")
//
// # Lifetimes
//
// [Singleton] — one shared instance per provider. [Scoped] — one instance
// per [Scope], created with [Provider.CreateScope] and released by
// [Scope.Close]. [Transient] — a fresh instance on every resolution.
//
// # Concurrency
//
// By default a provider is single-owner and unsynchronized. Build with
// [Concurrent] to share it across goroutines; each cache is guarded
// independently and a concurrent first resolution stores exactly one
// instance.
//
// Descriptors declare their dependencies explicitly; the container performs
// no reflection and no auto-wiring. Layers that derive descriptors from
// constructor signatures sit entirely outside the core and only need to
// emit the same descriptor shape.
package cask
