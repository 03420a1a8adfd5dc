// Copyright (c) 2025 the typematch authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the typematch library.

package typematch

import (
	"fmt"

	"github.com/casbin/govaluate"
)

type exprMatcher struct {
	expression *govaluate.EvaluableExpression
	matchers   map[string]Matcher
}

// CompileMatcher builds a composite matcher from a boolean expression over
// registered type names, e.g. "Event || (Command && !Retryable)". Each
// identifier in the expression evaluates to whether the tested value is an
// instance of the named type; "any" is always true.
//
// Identifiers must be plain registered names (synthesized array names like
// "[]uint8" are not expressible). Unknown names and invalid syntax fail at
// compile time; evaluation itself never fails.
func (r *Registry) CompileMatcher(expr string) (Matcher, error) {
	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("error parsing match expression: %v", err)
	}

	vars := expression.Vars()
	if len(vars) == 0 {
		return nil, fmt.Errorf("match expression references no types: %s", expr)
	}

	matchers := make(map[string]Matcher, len(vars))
	for _, name := range vars {
		desc, exists := r.Lookup(name)
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
		}
		if desc == AnyType {
			matchers[name] = matchAny
		} else {
			matchers[name] = &typeMatcher{typ: desc}
		}
	}

	return &exprMatcher{expression: expression, matchers: matchers}, nil
}

func (m *exprMatcher) Match(v any) bool {
	params := make(map[string]any, len(m.matchers))
	for name, matcher := range m.matchers {
		params[name] = matcher.Match(v)
	}

	result, err := m.expression.Evaluate(params)
	if err != nil {
		return false
	}

	matched, ok := result.(bool)
	return ok && matched
}
