// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import (
	"testing"
)

func TestAssignableFrom(t *testing.T) {
	r := newTestRegistry(t)

	base := mustLookup(t, r, "Base")
	mid := mustLookup(t, r, "Mid")
	leaf := mustLookup(t, r, "Leaf")
	pair := mustLookup(t, r, "Pair")

	tests := []struct {
		name     string
		target   *TypeDescriptor
		other    *TypeDescriptor
		expected bool
	}{
		{"SelfAssignable", base, base, true},
		{"DirectChild", mid, leaf, true},
		{"TransitiveChild", base, leaf, true},
		{"ReverseDirection", leaf, base, false},
		{"UnrelatedChains", pair, leaf, false},
		{"AnyTypeAcceptsAll", AnyType, leaf, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.AssignableFrom(tt.other); got != tt.expected {
				t.Errorf("%s.AssignableFrom(%s) = %v, expected %v", tt.target, tt.other, got, tt.expected)
			}
		})
	}
}

func TestDescriptorAccessors(t *testing.T) {
	r := newTestRegistry(t)

	mid := mustLookup(t, r, "Mid")
	base := mustLookup(t, r, "Base")
	leaf := mustLookup(t, r, "Leaf")

	if mid.Parent() != base {
		t.Errorf("Mid parent is not Base")
	}
	if base.Parent() != nil {
		t.Errorf("Base unexpectedly has a parent")
	}
	if leaf.GoType() != typeOf[leafHandler]() {
		t.Errorf("Leaf does not carry its go type")
	}
	if mid.String() != "Mid" {
		t.Errorf("String() = %s", mid.String())
	}

	params := mid.TypeParams()
	if len(params) != 1 || params[0] != "U" {
		t.Errorf("unexpected type params %v", params)
	}
	params[0] = "mutated"
	if mid.TypeParams()[0] != "U" {
		t.Errorf("TypeParams returned an aliased slice")
	}
}

func TestIsInstance(t *testing.T) {
	r := newTestRegistry(t)

	base := mustLookup(t, r, "Base")
	leaf := mustLookup(t, r, "Leaf")
	stringDesc := mustLookup(t, r, "string")

	tests := []struct {
		name     string
		desc     *TypeDescriptor
		value    any
		expected bool
	}{
		{"ExactGoType", stringDesc, "x", true},
		{"WrongGoType", stringDesc, 1, false},
		{"NilValue", stringDesc, nil, false},
		{"RegisteredValue", leaf, leafHandler{}, true},
		{"PointerToRegisteredValue", leaf, &leafHandler{}, true},
		{"AncestorViaChain", base, leafHandler{}, true},
		{"UnrelatedRegisteredValue", base, kvHandler{}, false},
		{"UnregisteredValue", base, struct{}{}, false},
		{"AnyTypeAndNil", AnyType, nil, true},
		{"AnyTypeAndValue", AnyType, 3.14, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.IsInstance(tt.value); got != tt.expected {
				t.Errorf("%s.IsInstance(%v) = %v, expected %v", tt.desc, tt.value, got, tt.expected)
			}
		})
	}

	t.Run("MetadataOnlyArray", func(t *testing.T) {
		// []Leaf values match Base.ArrayOf() through the element chain even
		// though the array descriptor has no backing go type of its own.
		arr := base.ArrayOf()
		if !arr.IsInstance([]leafHandler{{}}) {
			t.Errorf("metadata-only array rejected a slice of a subtype")
		}
		if arr.IsInstance([]string{"x"}) {
			t.Errorf("metadata-only array accepted an unrelated slice")
		}
	})
}
