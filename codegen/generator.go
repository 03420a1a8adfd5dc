// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package codegen

import (
	"fmt"
	"go/types"
	"os"
	"path/filepath"
	"strings"
)

// Generator emits a registration source file for the analyzed hierarchy of a
// single package. The generated file lives in the analyzed package itself so
// reflect.TypeOf bindings can reference the types directly.
type Generator struct {
	analyzer *Analyzer
	pkgName  string
}

// NewGenerator creates a generator for the given type-checked package.
func NewGenerator(pkg *types.Package) *Generator {
	return &Generator{
		analyzer: NewAnalyzer(pkg),
		pkgName:  pkg.Name(),
	}
}

// AddTypes analyzes the named types (and their same-package ancestors) for
// generation.
func (g *Generator) AddTypes(names ...string) error {
	for _, name := range names {
		if err := g.analyzer.AddType(name); err != nil {
			return err
		}
	}
	return nil
}

// Generate returns the registration source file as a string.
func (g *Generator) Generate() (string, error) {
	infos := g.analyzer.Types()
	if len(infos) == 0 {
		return "", fmt.Errorf("no types analyzed for generation")
	}

	needReflect := false
	for _, info := range infos {
		if info.HasGoType {
			needReflect = true
			break
		}
	}

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "// Code generated by typematch-gen %s. DO NOT EDIT.\n\n", Version)
	fmt.Fprintf(&builder, "package %s\n\n", g.pkgName)

	builder.WriteString("import (\n")
	if needReflect {
		builder.WriteString("\t\"reflect\"\n\n")
	}
	builder.WriteString("\ttypematch \"github.com/typematch/typematch\"\n")
	builder.WriteString(")\n\n")

	fmt.Fprintf(&builder, "// RegisterHierarchy registers the %s type hierarchy.\n", g.pkgName)
	builder.WriteString("func RegisterHierarchy(r *typematch.Registry) error {\n")
	for _, info := range infos {
		opts := registerOptions(info)
		fmt.Fprintf(&builder, "\tif _, err := r.Register(%q%s); err != nil {\n", info.Name, opts)
		builder.WriteString("\t\treturn err\n")
		builder.WriteString("\t}\n")
	}
	builder.WriteString("\treturn nil\n")
	builder.WriteString("}\n")

	return builder.String(), nil
}

// GenerateToFile writes the registration source file to the given path,
// creating parent directories as needed.
func (g *Generator) GenerateToFile(path string) error {
	code, err := g.Generate()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write code to file %s: %w", path, err)
	}

	return nil
}

func registerOptions(info *TypeInfo) string {
	opts := strings.Builder{}

	if info.HasGoType {
		fmt.Fprintf(&opts, ",\n\t\ttypematch.WithGoType(reflect.TypeOf((*%s)(nil)).Elem())", info.Name)
	}
	if len(info.TypeParams) > 0 {
		quoted := make([]string, len(info.TypeParams))
		for i, param := range info.TypeParams {
			quoted[i] = fmt.Sprintf("%q", param)
		}
		fmt.Fprintf(&opts, ",\n\t\ttypematch.WithTypeParams(%s)", strings.Join(quoted, ", "))
	}
	if info.Parent != nil {
		if info.Parent.Raw {
			fmt.Fprintf(&opts, ",\n\t\ttypematch.WithRawParent(%q)", info.Parent.Name)
		} else {
			args := make([]string, len(info.Parent.Args))
			for i, arg := range info.Parent.Args {
				args[i] = argExpr(arg)
			}
			fmt.Fprintf(&opts, ",\n\t\ttypematch.WithParent(%q%s)", info.Parent.Name, joinArgs(args))
		}
	}

	return opts.String()
}

func joinArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return ", " + strings.Join(args, ", ")
}

func argExpr(arg ArgInfo) string {
	switch {
	case arg.Elem != nil:
		return fmt.Sprintf("typematch.ArrayOf(%s)", argExpr(*arg.Elem))
	case arg.Param != "":
		return fmt.Sprintf("typematch.Param(%q)", arg.Param)
	case arg.Concrete != "":
		return fmt.Sprintf("typematch.Named(%q)", arg.Concrete)
	default:
		return "typematch.Unresolved()"
	}
}
