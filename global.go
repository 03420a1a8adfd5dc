// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

var (
	globalRegistry *Registry
	globalMatchers *SharedMatcherCache
)

// GetGlobalRegistry returns the process-global registry, creating it on first
// use. Hosts that do not manage their own registry register against this one.
func GetGlobalRegistry() *Registry {
	if globalRegistry == nil {
		SetGlobalRegistry(NewRegistry())
	}
	return globalRegistry
}

// SetGlobalRegistry replaces the process-global registry and resets the
// global matcher cache.
func SetGlobalRegistry(registry *Registry) {
	globalRegistry = registry
	globalMatchers = NewSharedMatcherCache(registry)
}

// Get returns the memoized matcher for the given type from the global shared
// cache.
func Get(t *TypeDescriptor) Matcher {
	GetGlobalRegistry()
	return globalMatchers.Get(t)
}

// Find returns the memoized matcher for the concrete type bound to paramName
// in the instance's type chain, using the global registry and shared cache.
func Find(instance any, ancestor *TypeDescriptor, paramName string) (Matcher, error) {
	GetGlobalRegistry()
	return globalMatchers.Find(instance, ancestor, paramName)
}

// Resolve resolves a type parameter against the global registry.
func Resolve(instance any, ancestor *TypeDescriptor, paramName string) (*TypeDescriptor, error) {
	return GetGlobalRegistry().ResolveConcreteType(instance, ancestor, paramName)
}
