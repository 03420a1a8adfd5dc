// Package typematch recovers the concrete types bound to declared type
// parameters of a registered type hierarchy and exposes reusable matchers that
// test values against the recovered types. Go's reflection cannot see type
// parameters at runtime, so the hierarchy and its generic declarations are
// supplied as explicit registry metadata: registered by hand, loaded from a
// YAML declaration, or generated from Go source by typematch-gen.
//
// A host framework typically registers its generic base types once, then asks
// for a matcher per handler instance:
//
//	reg := typematch.NewRegistry()
//	base, _ := reg.Register("Handler", typematch.WithTypeParams("T"))
//	reg.Register("EventHandler",
//		typematch.WithGoType(reflect.TypeOf(EventHandler{})),
//		typematch.WithParent("Handler", typematch.Named("Event")))
//
//	cache := typematch.NewMatcherCache(reg)
//	matcher, err := cache.Find(handler, base, "T")
//	if matcher.Match(msg) { ... }
//
// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.
package typematch

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry holds the type hierarchy metadata all resolution runs against.
// It maps registry names and backing Go types to descriptors.
//
// A Registry is safe for concurrent use. Registration is expected to happen
// during initialization; descriptors are immutable afterwards (Bind attaches a
// Go type but never alters hierarchy metadata), so the resolver can read them
// without further locking.
type Registry struct {
	mutex  sync.RWMutex
	byName map[string]*TypeDescriptor
	byType map[reflect.Type]*TypeDescriptor
}

// NewRegistry creates a registry pre-populated with descriptors for the
// builtin Go scalar types and []byte, named after their reflect string
// representation ("string", "uint64", "[]uint8", ...).
func NewRegistry() *Registry {
	r := &Registry{
		byName: map[string]*TypeDescriptor{},
		byType: map[reflect.Type]*TypeDescriptor{},
	}

	for _, goType := range builtinGoTypes {
		desc := &TypeDescriptor{
			registry: r,
			name:     goType.String(),
			goType:   goType,
		}
		r.byName[desc.name] = desc
		r.byType[goType] = desc
	}

	// []byte doubles as the array descriptor of uint8.
	if bytes, ok := r.byName["[]uint8"]; ok {
		elem := r.byName["uint8"]
		bytes.elem = elem
		elem.array = bytes
	}

	return r
}

// Register adds a type to the registry and returns its descriptor.
//
// The name must be unique within the registry. Options declare the type's own
// type parameters, its backing Go type, and the link to its parent type. When
// a parent link supplies type arguments, their count must match the parent's
// declared parameters, and placeholder arguments must reference a parameter
// the registered type itself declares.
func (r *Registry) Register(name string, opts ...RegisterOption) (*TypeDescriptor, error) {
	options := &registerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if name == "" || name == AnyType.name {
		return nil, fmt.Errorf("invalid type name %q", name)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byName[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}

	desc := &TypeDescriptor{
		registry: r,
		name:     name,
		goType:   options.goType,
		params:   options.params,
	}

	if options.hasParent {
		parent, exists := r.byName[options.parentName]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParent, options.parentName)
		}

		link := &parentLink{typ: parent, raw: options.rawParent}
		if !options.rawParent {
			if len(options.parentArgs) != len(parent.params) {
				return nil, fmt.Errorf("%w: %s supplies %d arguments, %s declares %d parameters",
					ErrArgumentCount, name, len(options.parentArgs), parent.name, len(parent.params))
			}
			args := make([]TypeArgument, len(options.parentArgs))
			for i, arg := range options.parentArgs {
				resolved, err := r.resolveArgument(desc, arg)
				if err != nil {
					return nil, err
				}
				args[i] = resolved
			}
			link.args = args
		}
		desc.parent = link
	}

	if desc.goType != nil {
		if _, exists := r.byType[desc.goType]; exists {
			return nil, fmt.Errorf("%w: go type %s", ErrDuplicateType, desc.goType)
		}
		r.byType[desc.goType] = desc
	}
	r.byName[name] = desc

	return desc, nil
}

// resolveArgument normalizes a user-supplied type argument: named references
// become concrete descriptors and placeholders are checked against the
// registering type's own parameter list and stamped with their declarer.
// Called with the registry lock held.
func (r *Registry) resolveArgument(owner *TypeDescriptor, arg TypeArgument) (TypeArgument, error) {
	switch arg.Kind {
	case argNamed:
		target, exists := r.byName[arg.Param]
		if !exists {
			if arg.Param == AnyType.name {
				return Concrete(AnyType), nil
			}
			return TypeArgument{}, fmt.Errorf("%w: %s", ErrUnknownType, arg.Param)
		}
		return Concrete(target), nil

	case ArgConcrete:
		if arg.Type == nil {
			return TypeArgument{}, fmt.Errorf("%w: concrete argument without type", ErrUnknownType)
		}
		return arg, nil

	case ArgArray:
		elem, err := r.resolveArgument(owner, *arg.Elem)
		if err != nil {
			return TypeArgument{}, err
		}
		return TypeArgument{Kind: ArgArray, Elem: &elem}, nil

	case ArgParam:
		found := false
		for _, param := range owner.params {
			if param == arg.Param {
				found = true
				break
			}
		}
		if !found {
			return TypeArgument{}, fmt.Errorf("%w: %s does not declare %q", ErrUnknownParameter, owner.name, arg.Param)
		}
		arg.declarer = owner
		return arg, nil

	default:
		return TypeArgument{Kind: ArgUnresolved}, nil
	}
}

// RegisterGoType registers a parameterless type named after its reflect
// string representation.
func (r *Registry) RegisterGoType(t reflect.Type) (*TypeDescriptor, error) {
	return r.Register(t.String(), WithGoType(t))
}

// Bind attaches a backing Go type to a previously registered metadata-only
// descriptor, typically one loaded from a YAML hierarchy declaration.
func (r *Registry) Bind(name string, goType reflect.Type) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	desc, exists := r.byName[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	if desc.goType != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, name)
	}
	if _, exists := r.byType[goType]; exists {
		return fmt.Errorf("%w: go type %s", ErrDuplicateType, goType)
	}

	desc.goType = goType
	r.byType[goType] = desc

	return nil
}

// Lookup returns the descriptor registered under the given name. The name
// "any" resolves to AnyType.
func (r *Registry) Lookup(name string) (*TypeDescriptor, bool) {
	if name == AnyType.name {
		return AnyType, true
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	desc, exists := r.byName[name]
	return desc, exists
}

// DescriptorOf returns the descriptor for the value's runtime type, following
// pointers to their element type.
func (r *Registry) DescriptorOf(v any) (*TypeDescriptor, bool) {
	if v == nil {
		return nil, false
	}
	desc := r.descriptorOfType(reflect.TypeOf(v))
	return desc, desc != nil
}

func (r *Registry) descriptorOfType(rt reflect.Type) *TypeDescriptor {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.byType[rt]
}

// arrayOf synthesizes (or returns the cached) descriptor for arrays of elem.
func (r *Registry) arrayOf(elem *TypeDescriptor) *TypeDescriptor {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if elem.array != nil {
		return elem.array
	}

	desc := &TypeDescriptor{
		registry: r,
		name:     "[]" + elem.name,
		elem:     elem,
	}
	if elem.goType != nil {
		desc.goType = reflect.SliceOf(elem.goType)
	}

	if existing, exists := r.byName[desc.name]; exists {
		// Pre-registered under the synthesized name, reuse it.
		elem.array = existing
		return existing
	}

	r.byName[desc.name] = desc
	if desc.goType != nil {
		if _, exists := r.byType[desc.goType]; !exists {
			r.byType[desc.goType] = desc
		}
	}
	elem.array = desc

	return desc
}

// Types returns a snapshot of all registered descriptors in no particular
// order. Useful for diagnostics and generated-code verification.
func (r *Registry) Types() []*TypeDescriptor {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	types := make([]*TypeDescriptor, 0, len(r.byName))
	for _, desc := range r.byName {
		types = append(types, desc)
	}

	return types
}
