// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import "reflect"

// Go types registered as builtin descriptors by NewRegistry. Their descriptor
// names are the reflect type strings ("bool", "string", "[]uint8", ...).
var builtinGoTypes = []reflect.Type{
	reflect.TypeOf(bool(false)),
	reflect.TypeOf(string("")),
	reflect.TypeOf(int(0)),
	reflect.TypeOf(int8(0)),
	reflect.TypeOf(int16(0)),
	reflect.TypeOf(int32(0)),
	reflect.TypeOf(int64(0)),
	reflect.TypeOf(uint(0)),
	reflect.TypeOf(uint8(0)),
	reflect.TypeOf(uint16(0)),
	reflect.TypeOf(uint32(0)),
	reflect.TypeOf(uint64(0)),
	reflect.TypeOf(float32(0)),
	reflect.TypeOf(float64(0)),
	reflect.TypeOf([]byte(nil)),
}
