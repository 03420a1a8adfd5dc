// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import (
	"context"
	"sync"
)

// CacheProvider hands out the matcher cache of the calling execution context.
// Implementations must return the same cache instance for the same context
// and independent instances for independent contexts; typematch itself never
// shares a non-locking cache across contexts.
//
// A host with worker-scoped state implements this directly; hosts that carry
// a context.Context use WithMatcherCache / MatcherCacheFrom instead.
type CacheProvider interface {
	MatcherCache() *MatcherCache
}

type contextKey struct{}

// WithMatcherCache attaches a matcher cache to the context, making the
// context an execution-context carrier for Find/Get lookups.
func WithMatcherCache(ctx context.Context, cache *MatcherCache) context.Context {
	return context.WithValue(ctx, contextKey{}, cache)
}

// MatcherCacheFrom returns the matcher cache attached to the context.
func MatcherCacheFrom(ctx context.Context) (*MatcherCache, bool) {
	cache, ok := ctx.Value(contextKey{}).(*MatcherCache)
	return cache, ok
}

// SharedMatcherCache is the synchronized alternative to per-context caches:
// one process-wide cache guarded by a read-write mutex. Concurrent misses on
// the same type may build a matcher twice, but the first write wins, so the
// cache still hands out one matcher instance per type.
type SharedMatcherCache struct {
	registry *Registry
	mutex    sync.RWMutex
	get      map[*TypeDescriptor]Matcher
	find     map[*TypeDescriptor]map[string]Matcher
}

// NewSharedMatcherCache creates an empty shared matcher cache backed by the
// registry.
func NewSharedMatcherCache(registry *Registry) *SharedMatcherCache {
	return &SharedMatcherCache{
		registry: registry,
		get:      map[*TypeDescriptor]Matcher{},
		find:     map[*TypeDescriptor]map[string]Matcher{},
	}
}

// Registry returns the registry the cache resolves against.
func (c *SharedMatcherCache) Registry() *Registry {
	return c.registry
}

// Get returns the memoized matcher for the given type. Safe for concurrent
// use.
func (c *SharedMatcherCache) Get(t *TypeDescriptor) Matcher {
	if t == nil || t == AnyType {
		return matchAny
	}

	c.mutex.RLock()
	if matcher, exists := c.get[t]; exists {
		c.mutex.RUnlock()
		return matcher
	}
	c.mutex.RUnlock()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.getLocked(t)
}

func (c *SharedMatcherCache) getLocked(t *TypeDescriptor) Matcher {
	if matcher, exists := c.get[t]; exists {
		return matcher
	}

	matcher := &typeMatcher{typ: t}
	c.get[t] = matcher

	return matcher
}

// Find returns the memoized matcher for the concrete type bound to paramName
// in the instance's type chain. Safe for concurrent use; resolution errors
// propagate unchanged and are not cached.
func (c *SharedMatcherCache) Find(instance any, ancestor *TypeDescriptor, paramName string) (Matcher, error) {
	this, ok := c.registry.DescriptorOf(instance)
	if !ok {
		return nil, &UnresolvableParameterError{ParamName: paramName}
	}

	c.mutex.RLock()
	if matcher, exists := c.find[this][paramName]; exists {
		c.mutex.RUnlock()
		return matcher, nil
	}
	c.mutex.RUnlock()

	resolved, err := c.registry.resolveConcreteType(this, ancestor, paramName)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if matcher, exists := c.find[this][paramName]; exists {
		return matcher, nil
	}

	var matcher Matcher
	if resolved == AnyType {
		matcher = matchAny
	} else {
		matcher = c.getLocked(resolved)
	}

	sub := c.find[this]
	if sub == nil {
		sub = map[string]Matcher{}
		c.find[this] = sub
	}
	sub[paramName] = matcher

	return matcher, nil
}
