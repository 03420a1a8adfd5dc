// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import "fmt"

var (
	ErrDuplicateType    = fmt.Errorf("type is already registered")
	ErrUnknownType      = fmt.Errorf("type is not registered")
	ErrUnknownParent    = fmt.Errorf("parent type is not registered")
	ErrArgumentCount    = fmt.Errorf("argument count does not match parent type parameters")
	ErrUnknownParameter = fmt.Errorf("type does not declare the referenced type parameter")
	ErrAlreadyBound     = fmt.Errorf("type is already bound to a go type")
)

// UnresolvableParameterError is returned when a type parameter cannot be
// located at all: either the queried ancestor does not declare a parameter
// with the requested name, or the instance's type chain never reaches the
// ancestor. It signals a caller-side configuration error and is never
// recovered internally.
type UnresolvableParameterError struct {
	// Type is the runtime descriptor of the queried instance. Nil when the
	// instance's type was not registered at all.
	Type *TypeDescriptor
	// ParamName is the requested type parameter name.
	ParamName string
}

func (e *UnresolvableParameterError) Error() string {
	typeName := "<unregistered>"
	if e.Type != nil {
		typeName = e.Type.Name()
	}
	return fmt.Sprintf("cannot determine the type of the type parameter '%s': %s", e.ParamName, typeName)
}
