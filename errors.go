package cask

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ErrScopeClosed is carried by the panic raised when resolution is
// attempted on a closed scope.
var ErrScopeClosed = errors.New("scope is closed")

// UnregisteredDependencyError reports a declared mandatory dependency whose
// contract has no registration.
type UnregisteredDependencyError struct {
	// Consumer is the contract whose descriptor declared the dependency.
	Consumer string

	// Missing is the dependency contract with no registration.
	Missing string
}

func (e *UnregisteredDependencyError) Error() string {
	return fmt.Sprintf("service %q requires unregistered service %q", e.Consumer, e.Missing)
}

// CircularDependencyError reports a cycle in the dependency graph.
type CircularDependencyError struct {
	// Cycle is the ordered path of contracts that closes the cycle; the
	// first contract appears again as the last element.
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Cycle, " -> "))
}

// CapturedDependencyError reports a singleton that would capture a scoped
// service. A singleton outlives every scope, so caching a scoped instance
// inside one leaks the instance beyond its scope and reuses it, stale,
// across scopes.
type CapturedDependencyError struct {
	// Singleton is the singleton-lifetime contract at the root of the chain.
	Singleton string

	// Scoped is the scoped-lifetime contract it would capture.
	Scoped string
}

func (e *CapturedDependencyError) Error() string {
	return fmt.Sprintf("singleton service %q cannot depend on scoped service %q", e.Singleton, e.Scoped)
}

// MissingServiceError is the panic value raised by GetRequired when no
// descriptor exists for the requested contract. It indicates a programming
// error: validated configurations guarantee every declared dependency
// exists, so only an ad-hoc call on an unregistered contract can reach it.
type MissingServiceError struct {
	// Contract is the contract that had no registration.
	Contract string
}

func (e *MissingServiceError) Error() string {
	return fmt.Sprintf("no service registered for contract %q", e.Contract)
}

// ValidationError aggregates every defect found in one validation pass.
// Build and Validate never fail fast; a broken configuration is reported
// in full so it can be fixed in one round.
type ValidationError struct {
	err error
}

func newValidationError(violations []error) *ValidationError {
	return &ValidationError{err: multierr.Combine(violations...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid service configuration: %s", e.err.Error())
}

// Violations returns the individual defects. Each is one of
// *UnregisteredDependencyError, *CircularDependencyError or
// *CapturedDependencyError.
func (e *ValidationError) Violations() []error {
	return multierr.Errors(e.err)
}

// Unwrap exposes the aggregated defects to errors.Is and errors.As.
func (e *ValidationError) Unwrap() error {
	return e.err
}
