// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

// typematch-gen generates registry metadata for generic Go type hierarchies.
//
// Usage:
//
//	typematch-gen -package ./handlers -types EventHandler,CommandHandler -output handlers_typematch.go
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/typematch/typematch/codegen"
)

func main() {
	var (
		packagePath = flag.String("package", "", "Go package path to analyze")
		typeNames   = flag.String("types", "", "Comma-separated list of type names to generate metadata for")
		outputFile  = flag.String("output", "", "Output file path for generated code")
		verbose     = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	if *packagePath == "" {
		log.Fatal("Package path is required (-package)")
	}
	if *typeNames == "" {
		log.Fatal("Type names are required (-types)")
	}
	if *outputFile == "" {
		log.Fatal("Output file is required (-output)")
	}

	if *verbose {
		log.Printf("Analyzing package: %s", *packagePath)
		log.Printf("Looking for types: %s", *typeNames)
		log.Printf("Output file: %s", *outputFile)
	}

	cfg := &packages.Config{
		Mode: packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, *packagePath)
	if err != nil {
		log.Fatalf("Failed to load package %s: %v", *packagePath, err)
	}

	if len(pkgs) == 0 {
		log.Fatalf("No packages found for %s", *packagePath)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		for _, err := range pkg.Errors {
			log.Printf("Package error: %v", err)
		}
		log.Fatalf("Package %s has errors", *packagePath)
	}

	if *verbose {
		log.Printf("Successfully loaded package: %s", pkg.Name)
	}

	requestedTypes := strings.Split(*typeNames, ",")
	for i, typeName := range requestedTypes {
		requestedTypes[i] = strings.TrimSpace(typeName)
	}

	generator := codegen.NewGenerator(pkg.Types)
	if err := generator.AddTypes(requestedTypes...); err != nil {
		log.Fatalf("Failed to analyze types: %v", err)
	}

	if *verbose {
		log.Printf("Generating code...")
	}

	if err := generator.GenerateToFile(*outputFile); err != nil {
		log.Fatalf("Failed to generate code: %v", err)
	}

	if *verbose {
		log.Printf("Successfully generated metadata for %d types", len(requestedTypes))
	} else {
		fmt.Printf("Generated typematch metadata for %d types in %s\n", len(requestedTypes), *outputFile)
	}
}
