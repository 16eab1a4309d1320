package cask

import "fmt"

// Get resolves the contract with type safety. It reports false when the
// contract has no registration; a registration whose instance is not a T
// is a programming error and panics.
func Get[T any](r Resolver, contract string) (T, bool) {
	instance, ok := r.Get(contract)
	if !ok {
		var zero T

		return zero, false
	}

	return cast[T](contract, instance), true
}

// GetRequired resolves the contract with type safety, panicking with a
// *MissingServiceError when nothing is registered.
func GetRequired[T any](r Resolver, contract string) T {
	return cast[T](contract, r.GetRequired(contract))
}

// GetAll resolves every registration of the contract with type safety, in
// registration order.
func GetAll[T any](r Resolver, contract string) []T {
	instances := r.GetAll(contract)

	typed := make([]T, 0, len(instances))
	for _, instance := range instances {
		typed = append(typed, cast[T](contract, instance))
	}

	return typed
}

func cast[T any](contract string, instance any) T {
	typed, ok := instance.(T)
	if !ok {
		var zero T

		panic(fmt.Sprintf("cask: contract %q resolved to %T, want %T", contract, instance, zero))
	}

	return typed
}
