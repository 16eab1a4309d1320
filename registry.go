package cask

// Registry is an ordered collection of service descriptors. Registration
// order is significant: GetAll resolves in registration order, and the most
// recent registration wins single-instance lookups.
//
// A Registry is not safe for concurrent mutation. Populate it during
// configuration, then call Build; the provider takes an immutable snapshot,
// so later mutation of the registry never affects a built provider.
type Registry struct {
	descriptors []*Descriptor
	byContract  map[string][]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byContract: make(map[string][]int),
	}
}

// Add appends the descriptor unconditionally. Registering several
// descriptors for one contract is how GetAll collections are built.
func (r *Registry) Add(d *Descriptor) {
	r.byContract[d.contract] = append(r.byContract[d.contract], len(r.descriptors))
	r.descriptors = append(r.descriptors, d)
}

// TryAdd appends the descriptor only when no registration exists for its
// contract; otherwise it is a no-op.
func (r *Registry) TryAdd(d *Descriptor) {
	if r.Contains(d.contract) {
		return
	}

	r.Add(d)
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Contains reports whether any descriptor targets the contract.
func (r *Registry) Contains(contract string) bool {
	return len(r.byContract[contract]) > 0
}

// Contracts returns the distinct registered contracts in first-registration
// order.
func (r *Registry) Contracts() []string {
	seen := make(map[string]bool, len(r.byContract))
	contracts := make([]string, 0, len(r.byContract))

	for _, d := range r.descriptors {
		if seen[d.contract] {
			continue
		}

		seen[d.contract] = true
		contracts = append(contracts, d.contract)
	}

	return contracts
}

// Build validates the registry and, on success, wraps a snapshot of it in a
// Provider. On failure it returns the aggregated *ValidationError and no
// provider; no service is constructed either way.
func (r *Registry) Build(opts ...ProviderOption) (*Provider, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}

	return newProvider(r.snapshot(), opts...), nil
}

// snapshot copies the descriptor sequence and contract index so the built
// provider is insulated from later registry mutation.
func (r *Registry) snapshot() *Registry {
	s := &Registry{
		descriptors: make([]*Descriptor, len(r.descriptors)),
		byContract:  make(map[string][]int, len(r.byContract)),
	}
	copy(s.descriptors, r.descriptors)

	for contract, ids := range r.byContract {
		s.byContract[contract] = append([]int(nil), ids...)
	}

	return s
}

// indices returns the registration positions for the contract, in order.
func (r *Registry) indices(contract string) []int {
	return r.byContract[contract]
}
