// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

// ResolveConcreteType determines the concrete type bound to a type parameter
// declared by an ancestor of the instance's runtime type.
//
// The resolver walks the instance's registered parent chain to the link that
// references the ancestor and inspects the actual type argument bound at the
// parameter's declaration slot. A binding that is itself a placeholder for an
// outer type parameter re-targets the walk at the placeholder's declaring
// type until a concrete binding (or an erased link) is found.
//
// Erased and partially resolvable bindings degrade to AnyType: a raw parent
// reference, an array of a non-concrete element, or a placeholder whose
// declaring type is not in the instance's chain all resolve to the universal
// fallback rather than erroring.
//
// An UnresolvableParameterError is returned only when the ancestor does not
// declare a parameter with the given name, or the instance's chain never
// reaches the ancestor.
func (r *Registry) ResolveConcreteType(instance any, ancestor *TypeDescriptor, paramName string) (*TypeDescriptor, error) {
	this, ok := r.DescriptorOf(instance)
	if !ok {
		return nil, &UnresolvableParameterError{ParamName: paramName}
	}
	return r.resolveConcreteType(this, ancestor, paramName)
}

// resolveConcreteType is an explicit loop rather than a recursion: placeholder
// indirections re-target (target, name) and restart from the instance's type.
// The hierarchy is acyclic and finite, so the loop terminates after at most
// one iteration per distinct placeholder indirection.
func (r *Registry) resolveConcreteType(this *TypeDescriptor, ancestor *TypeDescriptor, paramName string) (*TypeDescriptor, error) {
	current := this
	target := ancestor
	name := paramName

	for {
		for current != nil && current.Parent() != target {
			current = current.Parent()
		}
		if current == nil {
			return nil, &UnresolvableParameterError{Type: this, ParamName: name}
		}

		paramIndex := -1
		for i, param := range target.params {
			if param == name {
				paramIndex = i
				break
			}
		}
		if paramIndex < 0 {
			return nil, &UnresolvableParameterError{Type: this, ParamName: name}
		}

		link := current.parent
		if link.raw || link.args == nil {
			// The parameter is erased at this link.
			return AnyType, nil
		}

		arg := link.args[paramIndex]
		switch arg.Kind {
		case ArgConcrete:
			return arg.Type, nil

		case ArgArray:
			if arg.Elem.Kind == ArgConcrete {
				return arg.Elem.Type.ArrayOf(), nil
			}
			return AnyType, nil

		case ArgParam:
			// The binding points at another type parameter. Restart the walk
			// against the declaring type, if it is an ancestor of the instance
			// at all.
			declarer := arg.declarer
			if declarer == nil {
				return AnyType, nil
			}
			if !declarer.AssignableFrom(this) {
				return AnyType, nil
			}
			current = this
			target = declarer
			name = arg.Param

		default:
			return nil, &UnresolvableParameterError{Type: this, ParamName: name}
		}
	}
}
