// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import "reflect"

type RegisterOption func(*registerOptions)

type registerOptions struct {
	goType     reflect.Type
	params     []string
	parentName string
	parentArgs []TypeArgument
	hasParent  bool
	rawParent  bool
}

// WithTypeParams declares the type parameter names of the registered type, in
// declaration order.
func WithTypeParams(names ...string) RegisterOption {
	return func(opts *registerOptions) {
		opts.params = names
	}
}

// WithGoType attaches a backing Go type to the registered descriptor. The
// registry indexes it so instances of the type can be mapped back to the
// descriptor.
func WithGoType(t reflect.Type) RegisterOption {
	return func(opts *registerOptions) {
		opts.goType = t
	}
}

// WithParent links the registered type to its parent, supplying one actual
// type argument per parameter the parent declares.
func WithParent(name string, args ...TypeArgument) RegisterOption {
	return func(opts *registerOptions) {
		opts.parentName = name
		opts.parentArgs = args
		opts.hasParent = true
		opts.rawParent = false
	}
}

// WithRawParent links the registered type to its parent without supplying type
// arguments, erasing any parameters the parent declares.
func WithRawParent(name string) RegisterOption {
	return func(opts *registerOptions) {
		opts.parentName = name
		opts.parentArgs = nil
		opts.hasParent = true
		opts.rawParent = true
	}
}
