// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package codegen

import (
	"runtime/debug"
)

// Version is the typematch library version embedded in generated file
// headers. It is resolved from build information at initialization and stays
// "unknown" during development builds.
var Version = "unknown"

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			if dep.Path == "github.com/typematch/typematch" {
				Version = dep.Version
				break
			}
		}
	}
}
