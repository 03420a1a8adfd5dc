// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

// Matcher is an immutable predicate testing whether a value is an instance of
// one resolved type. Matchers have no identity beyond their behavior; caches
// hand out one shared instance per type.
type Matcher interface {
	Match(v any) bool
}

// matchAny accepts every value, including nil. It is the matcher for AnyType.
var matchAny Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(any) bool {
	return true
}

type typeMatcher struct {
	typ *TypeDescriptor
}

func (m *typeMatcher) Match(v any) bool {
	return m.typ.IsInstance(v)
}

// MatcherCache memoizes matchers for a single execution context. It keeps two
// lazily created maps: type descriptor to matcher, and querying type to
// per-parameter-name matchers. Entries are never evicted; registered types
// are stable for the process lifetime.
//
// A MatcherCache performs no locking. Each execution context (worker, task)
// owns its own instance, so access is sequential by construction. Use
// SharedMatcherCache when a single cache is shared across goroutines.
type MatcherCache struct {
	registry *Registry
	get      map[*TypeDescriptor]Matcher
	find     map[*TypeDescriptor]map[string]Matcher
}

// NewMatcherCache creates an empty matcher cache backed by the registry.
func NewMatcherCache(registry *Registry) *MatcherCache {
	return &MatcherCache{registry: registry}
}

// Registry returns the registry the cache resolves against.
func (c *MatcherCache) Registry() *Registry {
	return c.registry
}

// Get returns the matcher for the given type, constructing and memoizing it
// on first use. AnyType (and nil) yield the always-true matcher. Get never
// fails; within one cache it returns the identical matcher for the same type.
func (c *MatcherCache) Get(t *TypeDescriptor) Matcher {
	if t == nil || t == AnyType {
		return matchAny
	}

	if matcher, exists := c.get[t]; exists {
		return matcher
	}

	if c.get == nil {
		c.get = map[*TypeDescriptor]Matcher{}
	}
	matcher := &typeMatcher{typ: t}
	c.get[t] = matcher

	return matcher
}

// Find returns the matcher for the concrete type bound to paramName, a type
// parameter declared by ancestor, in the instance's type chain. The result is
// memoized per (runtime type, parameter name), so repeated lookups for
// instances of the same type skip resolution entirely.
//
// Resolution failures from ResolveConcreteType propagate unchanged.
func (c *MatcherCache) Find(instance any, ancestor *TypeDescriptor, paramName string) (Matcher, error) {
	this, ok := c.registry.DescriptorOf(instance)
	if !ok {
		return nil, &UnresolvableParameterError{ParamName: paramName}
	}

	sub := c.find[this]
	if matcher, exists := sub[paramName]; exists {
		return matcher, nil
	}

	resolved, err := c.registry.resolveConcreteType(this, ancestor, paramName)
	if err != nil {
		return nil, err
	}

	matcher := c.Get(resolved)
	if sub == nil {
		sub = map[string]Matcher{}
		if c.find == nil {
			c.find = map[*TypeDescriptor]map[string]Matcher{}
		}
		c.find[this] = sub
	}
	sub[paramName] = matcher

	return matcher, nil
}
