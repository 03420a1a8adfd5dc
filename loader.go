// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// hierarchyFile is the YAML shape consumed by LoadHierarchy:
//
//	types:
//	  - name: Base
//	    params: [T]
//	  - name: Mid
//	    params: [U]
//	    extends: {type: Base, args: [U]}
//	  - name: Raw
//	    extends: {type: Base, raw: true}
//	  - name: Leaf
//	    extends: {type: Mid, args: [string]}
type hierarchyFile struct {
	Types []typeDecl `yaml:"types"`
}

type typeDecl struct {
	Name    string       `yaml:"name"`
	Params  []string     `yaml:"params"`
	Extends *extendsDecl `yaml:"extends"`
}

type extendsDecl struct {
	Type string   `yaml:"type"`
	Args []string `yaml:"args"`
	Raw  bool     `yaml:"raw"`
}

// LoadHierarchy registers the type declarations from a YAML hierarchy file,
// in file order. Parent types must be declared (or already registered) before
// the types referencing them.
//
// Each argument string is one of: "?" (unresolved), "[]X" (array of X), a
// parameter name the declaring type itself declares (placeholder), or the
// name of a registered type. Declarations carry no Go types; attach those
// afterwards with Bind.
func (r *Registry) LoadHierarchy(data []byte) error {
	var file hierarchyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("error parsing hierarchy file: %w", err)
	}

	for _, decl := range file.Types {
		opts := []RegisterOption{}
		if len(decl.Params) > 0 {
			opts = append(opts, WithTypeParams(decl.Params...))
		}
		if decl.Extends != nil {
			if decl.Extends.Raw {
				opts = append(opts, WithRawParent(decl.Extends.Type))
			} else {
				args := make([]TypeArgument, len(decl.Extends.Args))
				for i, spec := range decl.Extends.Args {
					args[i] = parseArgument(decl.Params, spec)
				}
				opts = append(opts, WithParent(decl.Extends.Type, args...))
			}
		}

		if _, err := r.Register(decl.Name, opts...); err != nil {
			return fmt.Errorf("error registering type %s: %w", decl.Name, err)
		}
	}

	return nil
}

func parseArgument(ownParams []string, spec string) TypeArgument {
	spec = strings.TrimSpace(spec)

	if spec == "?" || spec == "" {
		return Unresolved()
	}
	if strings.HasPrefix(spec, "[]") {
		return ArrayOf(parseArgument(ownParams, spec[2:]))
	}
	for _, param := range ownParams {
		if param == spec {
			return Param(spec)
		}
	}
	return Named(spec)
}
