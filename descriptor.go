// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import (
	"reflect"
)

// ArgKind identifies the shape of an actual type argument bound at a parent link.
type ArgKind uint8

const (
	// ArgUnresolved marks an argument whose shape could not be determined.
	ArgUnresolved ArgKind = iota
	// ArgConcrete is an argument bound to a concrete registered type.
	ArgConcrete
	// ArgArray is an argument bound to an array/slice of another argument.
	ArgArray
	// ArgParam is a placeholder referencing a type parameter declared by the
	// subtype that supplies the argument.
	ArgParam

	// argNamed is a concrete argument referenced by registry name. It only
	// exists between construction and registration; Register resolves it to
	// ArgConcrete.
	argNamed
)

// TypeArgument is the actual type argument a subtype binds to one of its
// parent's declared type parameters. It is a small tagged union: exactly one
// of Type, Elem or Param is meaningful, selected by Kind.
type TypeArgument struct {
	Kind  ArgKind
	Type  *TypeDescriptor // ArgConcrete
	Elem  *TypeArgument   // ArgArray
	Param string          // ArgParam (and argNamed before registration)

	// declarer is the descriptor whose declared parameter the placeholder
	// references. Stamped by Register; nil on hand-built arguments that never
	// passed through a registry.
	declarer *TypeDescriptor
}

// Concrete returns a type argument bound to the given descriptor.
func Concrete(t *TypeDescriptor) TypeArgument {
	return TypeArgument{Kind: ArgConcrete, Type: t}
}

// Named returns a type argument bound to the registered type with the given
// name. The name is resolved against the registry when the referencing type
// is registered.
func Named(name string) TypeArgument {
	return TypeArgument{Kind: argNamed, Param: name}
}

// ArrayOf returns a type argument bound to an array of the given argument.
func ArrayOf(elem TypeArgument) TypeArgument {
	return TypeArgument{Kind: ArgArray, Elem: &elem}
}

// Param returns a placeholder argument referencing a type parameter declared
// by the registering type itself.
func Param(name string) TypeArgument {
	return TypeArgument{Kind: ArgParam, Param: name}
}

// Unresolved returns an argument with no recoverable type information.
func Unresolved() TypeArgument {
	return TypeArgument{Kind: ArgUnresolved}
}

// parentLink records how a type references its direct parent: either with a
// full set of actual type arguments, or as a raw reference that erases the
// parent's parameters.
type parentLink struct {
	typ  *TypeDescriptor
	args []TypeArgument // nil when raw
	raw  bool
}

// TypeDescriptor is the runtime handle for a registered type. Descriptors are
// created by a Registry and are immutable once registered (Bind attaches a Go
// type but never changes hierarchy metadata).
type TypeDescriptor struct {
	registry *Registry
	name     string
	goType   reflect.Type
	params   []string
	parent   *parentLink
	elem     *TypeDescriptor // non-nil on synthesized array descriptors
	array    *TypeDescriptor // cached ArrayOf result
}

// AnyType is the universal fallback type. It is the resolution result whenever
// erasure or indirection prevents recovering a concrete binding, and its
// matcher accepts every value.
var AnyType = &TypeDescriptor{name: "any"}

// Name returns the registry-unique name of the type.
func (t *TypeDescriptor) Name() string {
	return t.name
}

// GoType returns the backing Go type, or nil for metadata-only descriptors.
func (t *TypeDescriptor) GoType() reflect.Type {
	return t.goType
}

// Parent returns the direct parent descriptor, or nil at the top of the chain.
func (t *TypeDescriptor) Parent() *TypeDescriptor {
	if t.parent == nil {
		return nil
	}
	return t.parent.typ
}

// TypeParams returns the declared type parameter names in declaration order.
func (t *TypeDescriptor) TypeParams() []string {
	params := make([]string, len(t.params))
	copy(params, t.params)
	return params
}

// IsArray reports whether the descriptor was synthesized by ArrayOf.
func (t *TypeDescriptor) IsArray() bool {
	return t.elem != nil
}

// Elem returns the element descriptor of an array descriptor, or nil.
func (t *TypeDescriptor) Elem() *TypeDescriptor {
	return t.elem
}

// ArrayOf returns the descriptor for arrays of this type. The result is
// synthesized on first use and cached, so repeated calls return the same
// descriptor.
func (t *TypeDescriptor) ArrayOf() *TypeDescriptor {
	if t == AnyType {
		return AnyType
	}
	if t.registry == nil {
		return AnyType
	}
	return t.registry.arrayOf(t)
}

// AssignableFrom reports whether other is this type or one of its subtypes,
// following the registered parent chain.
func (t *TypeDescriptor) AssignableFrom(other *TypeDescriptor) bool {
	if t == AnyType {
		return true
	}
	for cur := other; cur != nil; cur = cur.Parent() {
		if cur == t {
			return true
		}
	}
	return false
}

// IsInstance reports whether the value's runtime type is this type or a
// subtype of it. Go-backed descriptors additionally honor reflect
// assignability, so interface-typed descriptors match implementations.
func (t *TypeDescriptor) IsInstance(v any) bool {
	if t == AnyType {
		return true
	}
	if v == nil {
		return false
	}

	rt := reflect.TypeOf(v)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	if t.goType != nil {
		if t.goType.Kind() == reflect.Interface {
			if rt.Implements(t.goType) || reflect.PtrTo(rt).Implements(t.goType) {
				return true
			}
		} else if rt.AssignableTo(t.goType) {
			return true
		}
	}

	if t.registry != nil {
		if desc := t.registry.descriptorOfType(rt); desc != nil {
			if t.AssignableFrom(desc) {
				return true
			}
		}
		// Array descriptors without a backing Go type still match slices whose
		// element type maps to a subtype of the element descriptor.
		if t.elem != nil && rt.Kind() == reflect.Slice {
			if elemDesc := t.registry.descriptorOfType(rt.Elem()); elemDesc != nil {
				return t.elem.AssignableFrom(elemDesc)
			}
		}
	}

	return false
}

func (t *TypeDescriptor) String() string {
	return t.name
}
