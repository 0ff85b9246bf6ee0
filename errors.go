// Copyright (c) 2026 WD Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package di

import (
	"fmt"
	"reflect"
	"strings"
)

// NotRegisteredError is returned when resolution is requested for a type that
// has no descriptor in the provider. When the lookup fails in the middle of a
// dependency chain the in-flight resolution stack is included so the caller
// can see which registration pulled in the missing type.
type NotRegisteredError struct {
	Type  reflect.Type
	Stack []string
}

func (e *NotRegisteredError) Error() string {
	if len(e.Stack) == 0 {
		return fmt.Sprintf("di: no service registered for type %v", e.Type)
	}
	return fmt.Sprintf(
		"di: no service registered for type %v (resolution stack: %s)",
		e.Type, strings.Join(e.Stack, " -> "),
	)
}

// InvalidStateError is returned when a mutation is attempted on a sealed
// Collection, or when Decorate targets a type with no prior registration.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "di: " + e.Reason
}

// InvalidOperationError is returned when a scoped service is resolved
// directly from the root provider. The caller must create a scope first.
type InvalidOperationError struct {
	Type reflect.Type
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf(
		"di: cannot resolve scoped service %v from the root provider; create a scope with CreateScope()",
		e.Type,
	)
}

// InvalidRegistrationError is returned for malformed registrations: a
// descriptor with zero or two implementation sources, an abstract
// implementation type, a constructor with an unusable signature, or an
// injected field that cannot be set.
type InvalidRegistrationError struct {
	Reason string
}

func (e *InvalidRegistrationError) Error() string {
	return "di: invalid registration: " + e.Reason
}

// CircularDependencyError is returned when a service's dependency graph
// requests a type that is already being resolved on the current call chain.
// Path holds the cycle from its first occurrence through the repeat,
// inclusive.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return "di: circular dependency detected: " + strings.Join(e.Path, " -> ")
}

// CircularDecoratorError is returned when a cycle is attributable to a
// decorator re-requesting the service it decorates, directly or through its
// own dependencies. It is distinct from CircularDependencyError because it
// usually points at decorator logic rather than the constructor graph.
// Chain holds the decorator-specific sub-chain.
type CircularDecoratorError struct {
	Chain []string
}

func (e *CircularDecoratorError) Error() string {
	return "di: circular decorator chain detected: " + strings.Join(e.Chain, " -> ")
}
