package cask

import "fmt"

// Factory constructs one service instance. It receives the resolution
// context it may use to obtain its own dependencies; factories must never
// reach for ambient or global state instead.
type Factory func(Resolver) any

// Dependency declares one edge of the dependency graph: the contract a
// descriptor consumes and how many instances it expects.
type Dependency struct {
	// Contract names the consumed capability.
	Contract string

	// Cardinality is how many registrations the consumer expects.
	Cardinality Cardinality
}

// Requires declares a mandatory dependency on the given contract.
func Requires(contract string) Dependency {
	return Dependency{Contract: contract, Cardinality: ExactlyOne}
}

// Optional declares a dependency that may be absent from the registry.
func Optional(contract string) Dependency {
	return Dependency{Contract: contract, Cardinality: ZeroOrOne}
}

// Many declares a dependency on every registration of the given contract.
func Many(contract string) Dependency {
	return Dependency{Contract: contract, Cardinality: ZeroOrMore}
}

// Descriptor is an immutable record of one service registration: the
// contract it satisfies, the lifetime policy governing its instances, the
// factory that produces them, and optionally the dependencies it consumes.
//
// Declaring dependencies is an opt-in to static validation. A descriptor
// without declarations still registers and resolves normally; the validator
// simply has no edges to check for it.
type Descriptor struct {
	contract       string
	implementation string
	lifetime       Lifetime
	factory        Factory
	dependencies   []Dependency
}

// DescriptorOption configures a descriptor during construction.
type DescriptorOption func(*Descriptor)

// WithImplementation records the name of the concrete implementation,
// used only for diagnostics.
func WithImplementation(name string) DescriptorOption {
	return func(d *Descriptor) {
		d.implementation = name
	}
}

// WithDependencies declares the contracts the descriptor's factory resolves,
// in the order the factory consumes them.
func WithDependencies(deps ...Dependency) DescriptorOption {
	return func(d *Descriptor) {
		d.dependencies = append(d.dependencies, deps...)
	}
}

// NewDescriptor creates a descriptor for the given contract, lifetime and
// factory. It panics if the contract is empty or the factory is nil; both
// are programming errors that no later call could recover from.
func NewDescriptor(contract string, lifetime Lifetime, factory Factory, opts ...DescriptorOption) *Descriptor {
	if contract == "" {
		panic("cask: descriptor contract cannot be empty")
	}

	if factory == nil {
		panic(fmt.Sprintf("cask: descriptor %q factory cannot be nil", contract))
	}

	d := &Descriptor{
		contract: contract,
		lifetime: lifetime,
		factory:  factory,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// NewSingleton creates a Singleton descriptor for the contract.
func NewSingleton(contract string, factory Factory, opts ...DescriptorOption) *Descriptor {
	return NewDescriptor(contract, Singleton, factory, opts...)
}

// NewScoped creates a Scoped descriptor for the contract.
func NewScoped(contract string, factory Factory, opts ...DescriptorOption) *Descriptor {
	return NewDescriptor(contract, Scoped, factory, opts...)
}

// NewTransient creates a Transient descriptor for the contract.
func NewTransient(contract string, factory Factory, opts ...DescriptorOption) *Descriptor {
	return NewDescriptor(contract, Transient, factory, opts...)
}

// Contract returns the contract the descriptor satisfies.
func (d *Descriptor) Contract() string {
	return d.contract
}

// Implementation returns the diagnostic implementation name, or the
// contract when none was recorded.
func (d *Descriptor) Implementation() string {
	if d.implementation == "" {
		return d.contract
	}

	return d.implementation
}

// Lifetime returns the descriptor's lifetime policy.
func (d *Descriptor) Lifetime() Lifetime {
	return d.lifetime
}

// Dependencies returns a copy of the declared dependencies in declaration
// order.
func (d *Descriptor) Dependencies() []Dependency {
	if len(d.dependencies) == 0 {
		return nil
	}

	deps := make([]Dependency, len(d.dependencies))
	copy(deps, d.dependencies)

	return deps
}
