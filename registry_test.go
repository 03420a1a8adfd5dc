// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"bool", "string", "int", "int64", "uint8", "uint64", "float64", "[]uint8"} {
		if _, exists := r.Lookup(name); !exists {
			t.Errorf("builtin %s not registered", name)
		}
	}

	t.Run("ByteSliceIsArrayOfUint8", func(t *testing.T) {
		bytes := mustLookup(t, r, "[]uint8")
		uint8Desc := mustLookup(t, r, "uint8")

		if bytes.Elem() != uint8Desc {
			t.Errorf("[]uint8 element is not the uint8 descriptor")
		}
		if uint8Desc.ArrayOf() != bytes {
			t.Errorf("uint8.ArrayOf() did not reuse the []uint8 builtin")
		}
	})

	t.Run("DescriptorOfBuiltinValue", func(t *testing.T) {
		desc, ok := r.DescriptorOf("hello")
		if !ok || desc.Name() != "string" {
			t.Errorf("expected string descriptor, got %v", desc)
		}
	})

	t.Run("LookupAny", func(t *testing.T) {
		desc, ok := r.Lookup("any")
		if !ok || desc != AnyType {
			t.Errorf("lookup of \"any\" did not yield AnyType")
		}
	})
}

func TestRegisterErrors(t *testing.T) {
	type payload struct{}

	tests := []struct {
		name     string
		setup    func(r *Registry) error
		expected error
	}{
		{
			name: "DuplicateName",
			setup: func(r *Registry) error {
				if _, err := r.Register("Base", WithTypeParams("T")); err != nil {
					return err
				}
				_, err := r.Register("Base")
				return err
			},
			expected: ErrDuplicateType,
		},
		{
			name: "DuplicateGoType",
			setup: func(r *Registry) error {
				if _, err := r.Register("First", WithGoType(typeOf[payload]())); err != nil {
					return err
				}
				_, err := r.Register("Second", WithGoType(typeOf[payload]()))
				return err
			},
			expected: ErrDuplicateType,
		},
		{
			name: "UnknownParent",
			setup: func(r *Registry) error {
				_, err := r.Register("Leaf", WithParent("Missing"))
				return err
			},
			expected: ErrUnknownParent,
		},
		{
			name: "ArgumentCountMismatch",
			setup: func(r *Registry) error {
				if _, err := r.Register("Base", WithTypeParams("T")); err != nil {
					return err
				}
				_, err := r.Register("Leaf", WithParent("Base", Named("string"), Named("int")))
				return err
			},
			expected: ErrArgumentCount,
		},
		{
			name: "UnknownNamedArgument",
			setup: func(r *Registry) error {
				if _, err := r.Register("Base", WithTypeParams("T")); err != nil {
					return err
				}
				_, err := r.Register("Leaf", WithParent("Base", Named("Missing")))
				return err
			},
			expected: ErrUnknownType,
		},
		{
			name: "PlaceholderNotDeclared",
			setup: func(r *Registry) error {
				if _, err := r.Register("Base", WithTypeParams("T")); err != nil {
					return err
				}
				_, err := r.Register("Mid", WithTypeParams("U"), WithParent("Base", Param("V")))
				return err
			},
			expected: ErrUnknownParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup(NewRegistry())
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got: %v", tt.expected, err)
			}
		})
	}

	t.Run("InvalidNames", func(t *testing.T) {
		r := NewRegistry()
		for _, name := range []string{"", "any"} {
			if _, err := r.Register(name); err == nil {
				t.Errorf("expected error registering name %q", name)
			}
		}
	})
}

func TestRegistryBind(t *testing.T) {
	type widget struct{}

	r := NewRegistry()
	if _, err := r.Register("Widget"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if err := r.Bind("Widget", typeOf[widget]()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	desc, ok := r.DescriptorOf(widget{})
	if !ok || desc.Name() != "Widget" {
		t.Errorf("bound go type did not map back to the descriptor")
	}

	t.Run("RebindFails", func(t *testing.T) {
		err := r.Bind("Widget", typeOf[widget]())
		if !errors.Is(err, ErrAlreadyBound) {
			t.Errorf("expected ErrAlreadyBound, got: %v", err)
		}
	})

	t.Run("UnknownNameFails", func(t *testing.T) {
		err := r.Bind("Missing", typeOf[widget]())
		if !errors.Is(err, ErrUnknownType) {
			t.Errorf("expected ErrUnknownType, got: %v", err)
		}
	})
}

func TestRegisterGoType(t *testing.T) {
	type message struct{}

	r := NewRegistry()
	desc, err := r.RegisterGoType(typeOf[message]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(desc.Name(), "message") {
		t.Errorf("expected name derived from go type, got %s", desc.Name())
	}
	if desc.GoType() != typeOf[message]() {
		t.Errorf("descriptor does not carry its go type")
	}
}

func TestArrayOfSynthesis(t *testing.T) {
	r := newTestRegistry(t)

	t.Run("CachedIdentity", func(t *testing.T) {
		intDesc := mustLookup(t, r, "int")
		if intDesc.ArrayOf() != intDesc.ArrayOf() {
			t.Errorf("ArrayOf returned different descriptors")
		}
		if intDesc.ArrayOf().Name() != "[]int" {
			t.Errorf("unexpected array name %s", intDesc.ArrayOf().Name())
		}
	})

	t.Run("GoTypeIsSlice", func(t *testing.T) {
		intDesc := mustLookup(t, r, "int")
		if intDesc.ArrayOf().GoType() != reflect.SliceOf(typeOf[int]()) {
			t.Errorf("array descriptor does not carry the slice go type")
		}
	})

	t.Run("MetadataOnlyElement", func(t *testing.T) {
		base := mustLookup(t, r, "Base")
		arr := base.ArrayOf()
		if arr.GoType() != nil {
			t.Errorf("metadata-only array unexpectedly has a go type")
		}
		if arr.Elem() != base {
			t.Errorf("array element mismatch")
		}
	})

	t.Run("AnyTypeArrayIsAnyType", func(t *testing.T) {
		if AnyType.ArrayOf() != AnyType {
			t.Errorf("AnyType.ArrayOf() must stay the universal fallback")
		}
	})
}

func TestRegistryTypesSnapshot(t *testing.T) {
	r := newTestRegistry(t)

	types := r.Types()
	if len(types) == 0 {
		t.Fatalf("snapshot is empty")
	}

	found := false
	for _, desc := range types {
		if desc.Name() == "Leaf" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("snapshot does not contain registered type Leaf")
	}
}
