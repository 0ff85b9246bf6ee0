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
	"io"
	"reflect"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wd-go/di/internal/dilog"
	"github.com/wd-go/di/internal/direflect"
)

// Disposable releases resources held by a scoped instance when its scope
// ends. Scoped instances implementing Disposable or io.Closer are tracked
// by their scope and released exactly once on disposal.
type Disposable interface {
	Dispose() error
}

// ProviderOption configures a Provider at build time.
type ProviderOption func(*Provider)

// WithLogger routes container events (registrations, scope lifecycle,
// disposal failures) to the given zap logger. Without it events are
// discarded.
func WithLogger(logger *zap.Logger) ProviderOption {
	return withEventLogger(dilog.New(logger))
}

func withEventLogger(logger dilog.Logger) ProviderOption {
	return func(p *Provider) {
		p.log = logger
	}
}

// Provider resolves services against a sealed descriptor set. The root
// provider owns the singleton cache; scopes created from it (all peers,
// regardless of which provider created them) share that cache while owning
// their own scoped-instance cache and disposal list.
type Provider struct {
	root *Provider

	// Shared with every scope, owned by the root.
	descriptors map[reflect.Type]*Descriptor
	singletonMu sync.RWMutex
	singletons  map[reflect.Type]interface{}
	log         dilog.Logger

	// Per-scope state. Scoped caches are confined to one logical call
	// chain by contract and take no lock.
	scoped      map[reflect.Type]interface{}
	disposables []interface{}
}

var _ Resolver = (*Provider)(nil)

func (p *Provider) isRoot() bool { return p.root == p }

// Resolve returns an instance for serviceType, building it (and its
// dependencies, recursively) as needed and caching it per the
// registration's lifetime.
func (p *Provider) Resolve(serviceType reflect.Type) (interface{}, error) {
	return p.resolve(&resolutionContext{}, serviceType)
}

func (p *Provider) resolve(rc *resolutionContext, serviceType reflect.Type) (interface{}, error) {
	root := p.root

	desc, ok := root.descriptors[serviceType]
	if !ok {
		return nil, &NotRegisteredError{Type: serviceType, Stack: rc.frames()}
	}

	// Fast path: lifetime caches.
	switch desc.lifetime {
	case Singleton:
		root.singletonMu.RLock()
		instance, hit := root.singletons[serviceType]
		root.singletonMu.RUnlock()
		if hit {
			return instance, nil
		}
	case Scoped:
		if p.isRoot() {
			return nil, &InvalidOperationError{Type: serviceType}
		}
		if instance, hit := p.scoped[serviceType]; hit {
			return instance, nil
		}
	}
	// Transient: always rebuild.

	frame := direflect.TypeName(serviceType)
	if idx, found := rc.index(frame); found {
		return nil, rc.diagnoseCycle(idx, frame, desc)
	}

	rc.push(frame)
	instance, err := p.build(rc, desc)
	rc.pop()
	if err != nil {
		return nil, err
	}

	switch desc.lifetime {
	case Singleton:
		// Double-checked publish: the instance was built outside the
		// lock, so a concurrent chain may have won the race. Everyone
		// observes the published winner.
		root.singletonMu.Lock()
		if winner, hit := root.singletons[serviceType]; hit {
			root.singletonMu.Unlock()
			return winner, nil
		}
		root.singletons[serviceType] = instance
		root.singletonMu.Unlock()
	case Scoped:
		p.scoped[serviceType] = instance
		p.trackDisposable(instance)
	}

	return instance, nil
}

// build constructs the raw instance for desc and folds its decorator chain
// around it, last registered outermost. Decorator frames participate in
// cycle detection just like service frames.
func (p *Provider) build(rc *resolutionContext, desc *Descriptor) (interface{}, error) {
	var instance interface{}
	var err error

	switch {
	case desc.factory != nil:
		instance, err = desc.factory(&scopedResolver{provider: p, rc: rc})
	case desc.constructor.IsValid():
		instance, err = p.callConstructor(rc, desc.constructor)
	default:
		instance, err = p.buildStruct(rc, desc.implType)
	}
	if err != nil {
		return nil, err
	}

	for i := len(desc.decorators) - 1; i >= 0; i-- {
		dec := desc.decorators[i]
		if idx, found := rc.index(dec.frame); found {
			return nil, &CircularDecoratorError{Chain: rc.cyclePath(idx, dec.frame)}
		}

		rc.push(dec.frame)
		instance, err = dec.fn(&scopedResolver{provider: p, rc: rc}, instance)
		rc.pop()
		if err != nil {
			return nil, err
		}
	}

	return instance, nil
}

func (p *Provider) trackDisposable(instance interface{}) {
	switch instance.(type) {
	case Disposable, io.Closer:
		p.disposables = append(p.disposables, instance)
	}
}

// CreateScope returns a new scope bound to this provider's root. Scopes do
// not nest for caching purposes: a scope created from another scope is a
// peer sharing the same root singleton cache.
func (p *Provider) CreateScope() *Scope {
	root := p.root
	child := &Provider{
		root:   root,
		scoped: make(map[reflect.Type]interface{}),
	}
	root.log.LogEvent(dilog.ScopeCreatedEvent{})
	return &Scope{Provider: child}
}

// Dispose releases every tracked disposable in this provider's scope.
// Release failures are logged individually and never propagated, so one
// failing disposal cannot prevent the rest from running. The disposal list
// and scoped cache are cleared unconditionally afterwards; the singleton
// cache and other scopes are untouched.
func (p *Provider) Dispose() {
	var errs []error
	for _, instance := range p.disposables {
		var err error
		switch v := instance.(type) {
		case Disposable:
			err = v.Dispose()
		case io.Closer:
			err = v.Close()
		}
		if err != nil {
			errs = append(errs, err)
			p.root.log.LogEvent(dilog.DisposeErrorEvent{
				Instance: direflect.InstanceName(instance),
				Err:      err,
			})
		}
	}

	p.root.log.LogEvent(dilog.ScopeDisposedEvent{
		Disposed: len(p.disposables),
		Err:      multierr.Combine(errs...),
	})

	p.disposables = nil
	p.scoped = make(map[reflect.Type]interface{})
}

// Scope is a bounded resolution unit. It shares the root's descriptors and
// singleton cache and owns an independent scoped-instance cache and
// disposal list. Dispose it when done; scoped instances exposing a release
// operation are released then.
type Scope struct {
	*Provider
}

// scopedResolver is handed to factories and decorators during a build. It
// resolves against the same provider while carrying the in-flight
// resolution context, so re-entrant resolutions keep feeding the cycle
// detector.
type scopedResolver struct {
	provider *Provider
	rc       *resolutionContext
}

var _ Resolver = (*scopedResolver)(nil)

func (r *scopedResolver) Resolve(serviceType reflect.Type) (interface{}, error) {
	return r.provider.resolve(r.rc, serviceType)
}
