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
	"sync"

	"go.uber.org/atomic"

	"github.com/wd-go/di/internal/dilog"
	"github.com/wd-go/di/internal/direflect"
)

// Collection is the ordered, append-only registry of service descriptors.
// Registrations accumulate here; BuildProvider seals the collection and
// turns it into a Provider. Any mutation after sealing fails with
// InvalidStateError.
type Collection struct {
	mu       sync.Mutex
	services []*Descriptor
	sealed   atomic.Bool
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// ensureNotSealed must be called with c.mu held, so that the seal check and
// the mutation it guards are atomic with respect to BuildProvider.
func (c *Collection) ensureNotSealed() error {
	if c.sealed.Load() {
		return &InvalidStateError{
			Reason: "cannot modify Collection after a Provider has been built",
		}
	}
	return nil
}

// Add registers a service with the given lifetime. impl may be a
// reflect.Type naming the concrete type to construct, a constructor
// function whose parameters are resolved as dependencies, or nil to
// self-bind serviceType.
func (c *Collection) Add(lifetime Lifetime, serviceType reflect.Type, impl interface{}) error {
	return c.add(lifetime, serviceType, impl, nil)
}

// AddTransient registers a transient service: a new instance per resolution.
func (c *Collection) AddTransient(serviceType reflect.Type, impl interface{}) error {
	return c.add(Transient, serviceType, impl, nil)
}

// AddScoped registers a scoped service: one instance per scope.
func (c *Collection) AddScoped(serviceType reflect.Type, impl interface{}) error {
	return c.add(Scoped, serviceType, impl, nil)
}

// AddSingleton registers a singleton service: one instance per provider.
func (c *Collection) AddSingleton(serviceType reflect.Type, impl interface{}) error {
	return c.add(Singleton, serviceType, impl, nil)
}

// AddFactory registers a service built by an explicit factory.
func (c *Collection) AddFactory(lifetime Lifetime, serviceType reflect.Type, factory Factory) error {
	if factory == nil {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("factory for %v cannot be nil", serviceType),
		}
	}
	return c.add(lifetime, serviceType, nil, factory)
}

// AddTransientFactory registers a transient service built by factory.
func (c *Collection) AddTransientFactory(serviceType reflect.Type, factory Factory) error {
	return c.AddFactory(Transient, serviceType, factory)
}

// AddScopedFactory registers a scoped service built by factory.
func (c *Collection) AddScopedFactory(serviceType reflect.Type, factory Factory) error {
	return c.AddFactory(Scoped, serviceType, factory)
}

// AddSingletonFactory registers a singleton service built by factory.
func (c *Collection) AddSingletonFactory(serviceType reflect.Type, factory Factory) error {
	return c.AddFactory(Singleton, serviceType, factory)
}

// AddInstance registers a pre-built object as a singleton for serviceType.
// Every resolution, from the root or any scope, returns exactly this object.
func (c *Collection) AddInstance(serviceType reflect.Type, instance interface{}) error {
	if instance == nil {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("instance for %v cannot be nil", serviceType),
		}
	}
	if it := reflect.TypeOf(instance); !it.AssignableTo(serviceType) {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("instance of type %v does not satisfy %v", it, serviceType),
		}
	}
	return c.add(Singleton, serviceType, nil, func(Resolver) (interface{}, error) {
		return instance, nil
	})
}

func (c *Collection) add(lifetime Lifetime, serviceType reflect.Type, impl interface{}, factory Factory) error {
	desc, err := newDescriptor(lifetime, serviceType, impl, factory)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureNotSealed(); err != nil {
		return err
	}
	c.services = append(c.services, desc)
	return nil
}

// Decorate attaches a decorator to the first registration for serviceType.
// The existing descriptor is replaced by a copy carrying the decorator
// appended to its chain; the last decorator registered becomes the
// outermost wrapper at build time.
func (c *Collection) Decorate(serviceType reflect.Type, dec Decorator) error {
	return c.decorate(serviceType, dec, direflect.FuncName(dec))
}

// decorate is Decorate with an explicit decorator name for the cycle chain.
// Typed wrappers pass the user function's name so a decorator cycle points
// at the user's code rather than the adapter closure.
func (c *Collection) decorate(serviceType reflect.Type, dec Decorator, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureNotSealed(); err != nil {
		return err
	}

	for i, desc := range c.services {
		if desc.serviceType != serviceType {
			continue
		}
		decorated, err := desc.withDecorator(dec, name)
		if err != nil {
			return err
		}
		c.services[i] = decorated
		return nil
	}

	return &InvalidStateError{
		Reason: fmt.Sprintf("no service registered for %v; cannot apply decorator", serviceType),
	}
}

// Len returns the number of registered descriptors.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.services)
}

// BuildProvider seals the collection and returns a Provider bound to the
// frozen descriptor set. When the same type was registered more than once,
// the last registration wins at resolution time. Sealing twice yields
// providers over the same frozen set.
func (c *Collection) BuildProvider(opts ...ProviderOption) *Provider {
	// Seal and snapshot under one critical section; a registration racing
	// the build either lands in the snapshot or fails the seal check.
	c.mu.Lock()
	c.sealed.Store(true)
	descriptors := make(map[reflect.Type]*Descriptor, len(c.services))
	for _, desc := range c.services {
		descriptors[desc.serviceType] = desc
	}
	count := len(c.services)
	c.mu.Unlock()

	p := &Provider{
		descriptors: descriptors,
		singletons:  make(map[reflect.Type]interface{}),
		scoped:      make(map[reflect.Type]interface{}),
		log:         dilog.Nop(),
	}
	p.root = p

	for _, opt := range opts {
		opt(p)
	}

	for _, desc := range descriptors {
		p.log.LogEvent(dilog.ProvideEvent{
			ServiceType: direflect.TypeName(desc.serviceType),
			Lifetime:    desc.lifetime.String(),
			Decorators:  len(desc.decorators),
		})
	}
	p.log.LogEvent(dilog.BuildEvent{Count: count})

	return p
}
