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

	"github.com/wd-go/di/internal/direflect"
)

// TypeOf returns the reflect.Type of T. It is the bridge between the
// generic sugar below and the reflect.Type-keyed registry.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register registers service type S with the given lifetime. impl may be a
// constructor function, a reflect.Type, or nil to self-bind S.
func Register[S any](c *Collection, lifetime Lifetime, impl interface{}) error {
	return c.Add(lifetime, TypeOf[S](), impl)
}

// RegisterFactory registers service type S built by a typed factory.
func RegisterFactory[S any](c *Collection, lifetime Lifetime, factory func(Resolver) (S, error)) error {
	if factory == nil {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("factory for %v cannot be nil", TypeOf[S]()),
		}
	}
	return c.AddFactory(lifetime, TypeOf[S](), func(r Resolver) (interface{}, error) {
		return factory(r)
	})
}

// RegisterInstance registers a pre-built object as a singleton for S.
func RegisterInstance[S any](c *Collection, instance S) error {
	return c.AddInstance(TypeOf[S](), instance)
}

// DecorateService attaches a typed decorator to the registration for S. The
// cycle-detection frame is named after dec itself, so a decorator cycle
// reported through this wrapper still identifies the user's function.
func DecorateService[S any](c *Collection, dec func(Resolver, S) (S, error)) error {
	if dec == nil {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("decorator for %v cannot be nil", TypeOf[S]()),
		}
	}
	return c.decorate(TypeOf[S](), func(r Resolver, inner interface{}) (interface{}, error) {
		typed, ok := inner.(S)
		if !ok {
			return nil, &InvalidRegistrationError{
				Reason: fmt.Sprintf("decorator for %v received %T", TypeOf[S](), inner),
			}
		}
		return dec(r, typed)
	}, direflect.FuncName(dec))
}

// Resolve resolves T from the given resolver.
func Resolve[T any](r Resolver) (T, error) {
	var zero T

	instance, err := r.Resolve(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: resolved value is %T, expected %v", instance, TypeOf[T]())
	}
	return typed, nil
}

// MustResolve resolves T and panics on failure. Intended for composition
// roots where a missing registration is a programmer error.
func MustResolve[T any](r Resolver) T {
	instance, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return instance
}
