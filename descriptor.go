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

	"go.uber.org/atomic"

	"github.com/wd-go/di/internal/direflect"
)

// Resolver resolves services. It is implemented by Provider and Scope, and
// by the context-carrying resolver handed to factories and decorators so
// that nested resolutions share the in-flight cycle-detection stack.
type Resolver interface {
	// Resolve returns an instance for the given service type, honoring
	// the registration's lifetime.
	Resolve(serviceType reflect.Type) (interface{}, error)
}

// Factory builds a service instance, resolving any dependencies it needs
// through the given Resolver.
type Factory func(Resolver) (interface{}, error)

// Decorator wraps an already-built instance to add cross-cutting behavior.
// It receives the inner instance and must return the instance to use in its
// place, which may be the inner instance itself.
type Decorator func(Resolver, interface{}) (interface{}, error)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// decoratorEntry pairs a decorator with the resolution-stack frame assigned
// to it at registration. Frames carry a sequence number because func names
// alone can collide (two closures from one generic wrapper, or one named
// function decorating two services), and a collision would read as a false
// decorator cycle.
type decoratorEntry struct {
	fn    Decorator
	frame string
}

var decoratorSeq atomic.Uint64

// newDecoratorEntry builds the entry for dec. name is the identity shown in
// cycle chains; callers that wrap the user's decorator in an adapter pass
// the original function's name so diagnostics point at the user's code, not
// the adapter.
func newDecoratorEntry(dec Decorator, name string) decoratorEntry {
	if name == "" {
		name = direflect.FuncName(dec)
	}
	return decoratorEntry{
		fn:    dec,
		frame: fmt.Sprintf("%s#%d", name, decoratorSeq.Inc()),
	}
}

// Descriptor is an immutable record of one service registration: the service
// type, exactly one construction recipe, a lifetime, and an ordered decorator
// chain. Descriptors placed in a Collection are never mutated; attaching a
// decorator produces a copy.
type Descriptor struct {
	serviceType reflect.Type
	implType    reflect.Type  // concrete type built via reflection
	constructor reflect.Value // func whose parameters are injected
	factory     Factory
	lifetime    Lifetime
	decorators  []decoratorEntry
}

// newDescriptor validates and builds a descriptor. impl may be a
// reflect.Type (a concrete type to construct), a constructor function, or
// nil when factory is set. Exactly one construction recipe must result.
func newDescriptor(lifetime Lifetime, serviceType reflect.Type, impl interface{}, factory Factory) (*Descriptor, error) {
	if serviceType == nil {
		return nil, &InvalidRegistrationError{Reason: "service type cannot be nil"}
	}

	d := &Descriptor{
		serviceType: serviceType,
		lifetime:    lifetime,
		factory:     factory,
	}

	if impl == nil && factory == nil {
		// Self-binding preserves the collection API's shorthand: the
		// service type is its own implementation.
		impl = serviceType
	}

	if impl != nil && factory != nil {
		return nil, &InvalidRegistrationError{
			Reason: fmt.Sprintf("exactly one of implementation or factory must be provided for %v", serviceType),
		}
	}

	switch v := impl.(type) {
	case nil:
		// Factory-only registration.
	case reflect.Type:
		if err := validateImplType(serviceType, v); err != nil {
			return nil, err
		}
		d.implType = v
	default:
		fn := reflect.ValueOf(impl)
		if fn.Kind() != reflect.Func {
			return nil, &InvalidRegistrationError{
				Reason: fmt.Sprintf(
					"implementation for %v must be a reflect.Type or a constructor function, got %T",
					serviceType, impl,
				),
			}
		}
		if err := validateConstructor(serviceType, fn.Type()); err != nil {
			return nil, err
		}
		d.constructor = fn
	}

	return d, nil
}

// ServiceType returns the abstraction this descriptor satisfies.
func (d *Descriptor) ServiceType() reflect.Type { return d.serviceType }

// Lifetime returns the registration's lifetime.
func (d *Descriptor) Lifetime() Lifetime { return d.lifetime }

// withDecorator returns a copy of the descriptor with dec appended to its
// chain. The receiver is left untouched.
func (d *Descriptor) withDecorator(dec Decorator, name string) (*Descriptor, error) {
	if dec == nil {
		return nil, &InvalidRegistrationError{
			Reason: fmt.Sprintf("decorator for %v cannot be nil", d.serviceType),
		}
	}
	decorators := make([]decoratorEntry, len(d.decorators)+1)
	copy(decorators, d.decorators)
	decorators[len(d.decorators)] = newDecoratorEntry(dec, name)

	return &Descriptor{
		serviceType: d.serviceType,
		implType:    d.implType,
		constructor: d.constructor,
		factory:     d.factory,
		lifetime:    d.lifetime,
		decorators:  decorators,
	}, nil
}

// validateImplType rejects implementation types the injector cannot
// instantiate: interfaces (abstract), non-structs, and structs with
// unexported injected fields.
func validateImplType(serviceType, implType reflect.Type) error {
	if implType.Kind() == reflect.Interface {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf(
				"implementation type %v for %v is abstract; register the concrete type instead",
				implType, serviceType,
			),
		}
	}

	elem := implType
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("implementation type %v for %v must be a struct or pointer to struct", implType, serviceType),
		}
	}

	for i := 0; i < elem.NumField(); i++ {
		f := elem.Field(i)
		if _, tagged := f.Tag.Lookup(injectTag); !tagged {
			continue
		}
		if f.PkgPath != "" {
			return &InvalidRegistrationError{
				Reason: fmt.Sprintf("injected field %s.%s must be exported", elem, f.Name),
			}
		}
	}

	if !implType.AssignableTo(serviceType) {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("implementation type %v does not satisfy %v", implType, serviceType),
		}
	}

	return nil
}

// validateConstructor checks the constructor signature up front so that a
// bad registration fails at Add time rather than on first resolution.
func validateConstructor(serviceType, fn reflect.Type) error {
	switch fn.NumOut() {
	case 1:
		// just the instance
	case 2:
		if !fn.Out(1).Implements(errType) {
			return &InvalidRegistrationError{
				Reason: fmt.Sprintf("constructor for %v must return (T) or (T, error), second result is %v", serviceType, fn.Out(1)),
			}
		}
	default:
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("constructor for %v must return (T) or (T, error), got %d results", serviceType, fn.NumOut()),
		}
	}

	out := fn.Out(0)
	if !out.AssignableTo(serviceType) {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("constructor for %v returns %v, which does not satisfy it", serviceType, out),
		}
	}

	return nil
}
