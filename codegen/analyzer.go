// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

// Package codegen turns generic Go type declarations into typematch registry
// metadata. It reads type-parameter lists and embedded parent instantiations
// from go/types and emits a RegisterHierarchy function, so hierarchies are
// described at build time instead of by hand.
package codegen

import (
	"fmt"
	"go/types"
)

// TypeInfo describes one analyzed type declaration.
type TypeInfo struct {
	Name       string      // declared type name, used as registry name
	TypeParams []string    // declared type parameter names, in order
	Parent     *ParentInfo // embedded parent link, nil for roots
	HasGoType  bool        // non-generic types get a reflect.TypeOf binding
}

// ParentInfo describes how a type references its embedded parent.
type ParentInfo struct {
	Name string
	Raw  bool // generic parent referenced without type arguments
	Args []ArgInfo
}

// ArgInfo is one actual type argument of a parent reference. Exactly one of
// the fields is set; a zero ArgInfo means the argument shape was not
// recognized and registers as unresolved.
type ArgInfo struct {
	Concrete string   // registry name of a concrete type
	Param    string   // type parameter declared by the referencing type
	Elem     *ArgInfo // array/slice element
}

// Analyzer walks the named types of one package and collects hierarchy
// metadata in registration order (parents before children).
type Analyzer struct {
	pkg   *types.Package
	infos map[string]*TypeInfo
	order []string
}

// NewAnalyzer creates an analyzer for the given type-checked package.
func NewAnalyzer(pkg *types.Package) *Analyzer {
	return &Analyzer{
		pkg:   pkg,
		infos: map[string]*TypeInfo{},
	}
}

// AddType analyzes the named type and, transitively, the embedded parents it
// references within the same package.
func (a *Analyzer) AddType(name string) error {
	obj := a.pkg.Scope().Lookup(name)
	if obj == nil {
		return fmt.Errorf("type %s not found in package %s", name, a.pkg.Path())
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return fmt.Errorf("type %s is not a named type", name)
	}

	_, err := a.analyzeNamed(named)
	return err
}

// Types returns the analyzed type infos in registration order.
func (a *Analyzer) Types() []*TypeInfo {
	infos := make([]*TypeInfo, len(a.order))
	for i, name := range a.order {
		infos[i] = a.infos[name]
	}
	return infos
}

func (a *Analyzer) analyzeNamed(named *types.Named) (*TypeInfo, error) {
	origin := named.Origin()
	name := origin.Obj().Name()

	if info, exists := a.infos[name]; exists {
		return info, nil
	}

	// Types from other packages are referenced by name only; their own
	// generated file registers them.
	if origin.Obj().Pkg() != nil && origin.Obj().Pkg() != a.pkg {
		return &TypeInfo{Name: name}, nil
	}

	info := &TypeInfo{Name: name}
	a.infos[name] = info

	tparams := origin.TypeParams()
	for i := 0; i < tparams.Len(); i++ {
		info.TypeParams = append(info.TypeParams, tparams.At(i).Obj().Name())
	}
	info.HasGoType = tparams.Len() == 0

	if structType, ok := origin.Underlying().(*types.Struct); ok {
		parent, err := a.parentLink(structType)
		if err != nil {
			return nil, err
		}
		info.Parent = parent
	}

	a.order = append(a.order, name)

	return info, nil
}

// parentLink maps the first embedded named struct field to the parent
// reference of the hierarchy.
func (a *Analyzer) parentLink(structType *types.Struct) (*ParentInfo, error) {
	for i := 0; i < structType.NumFields(); i++ {
		field := structType.Field(i)
		if !field.Embedded() {
			continue
		}

		fieldType := field.Type()
		if ptr, ok := fieldType.(*types.Pointer); ok {
			fieldType = ptr.Elem()
		}
		parentNamed, ok := fieldType.(*types.Named)
		if !ok {
			continue
		}
		if _, ok := parentNamed.Origin().Underlying().(*types.Struct); !ok {
			continue
		}

		parentInfo, err := a.analyzeNamed(parentNamed)
		if err != nil {
			return nil, err
		}

		link := &ParentInfo{Name: parentInfo.Name}
		targs := parentNamed.TypeArgs()
		if targs.Len() == 0 {
			link.Raw = parentNamed.Origin().TypeParams().Len() > 0
		} else {
			for j := 0; j < targs.Len(); j++ {
				link.Args = append(link.Args, a.argInfo(targs.At(j)))
			}
		}

		return link, nil
	}

	return nil, nil
}

func (a *Analyzer) argInfo(t types.Type) ArgInfo {
	switch t := t.(type) {
	case *types.TypeParam:
		return ArgInfo{Param: t.Obj().Name()}
	case *types.Slice:
		elem := a.argInfo(t.Elem())
		return ArgInfo{Elem: &elem}
	case *types.Pointer:
		return a.argInfo(t.Elem())
	case *types.Basic:
		return ArgInfo{Concrete: basicName(t)}
	case *types.Named:
		// Parameterized references degrade to their origin type, matching the
		// raw-type handling of erased generics.
		return ArgInfo{Concrete: t.Origin().Obj().Name()}
	case *types.Alias:
		return a.argInfo(types.Unalias(t))
	default:
		return ArgInfo{}
	}
}

// basicName maps go/types basic names onto the reflect naming the registry
// builtins use.
func basicName(t *types.Basic) string {
	switch t.Name() {
	case "byte":
		return "uint8"
	case "rune":
		return "int32"
	default:
		return t.Name()
	}
}
