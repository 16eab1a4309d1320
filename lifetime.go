package cask

//go:generate go tool stringer -type=Lifetime -output=lifetime_string.go
//go:generate go tool stringer -type=Cardinality -output=cardinality_string.go

// Lifetime controls how instances produced by a descriptor are cached.
type Lifetime int

const (
	// Transient services are constructed fresh on every resolution and
	// never cached.
	Transient Lifetime = iota

	// Singleton services are constructed at most once per provider and
	// shared by every consumer, regardless of scope.
	Singleton

	// Scoped services are constructed at most once per scope; distinct
	// scopes hold distinct instances.
	Scoped
)

// Cardinality describes how many instances a dependency declaration expects.
type Cardinality int

const (
	// ExactlyOne requires a registered descriptor for the dependency's
	// contract; validation fails when none exists.
	ExactlyOne Cardinality = iota

	// ZeroOrOne tolerates an absent registration; the consumer handles
	// the missing case itself.
	ZeroOrOne

	// ZeroOrMore resolves every registration for the contract, including
	// none at all.
	ZeroOrMore
)
