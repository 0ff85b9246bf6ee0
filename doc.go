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

// Package di is a descriptor-based dependency-injection container.
//
// A Collection accumulates service registrations: each maps a service type
// to a construction recipe (a constructor function, a concrete type, an
// explicit factory, or a pre-built instance), a lifetime, and an optional
// decorator chain. Building the collection seals it into a Provider, which
// resolves services on demand, recursively constructing dependencies and
// caching instances per lifetime:
//
//	services := di.NewCollection()
//	_ = di.Register[Repository](services, di.Singleton, NewPostgresRepository)
//	_ = di.Register[Handler](services, di.Transient, NewHandler)
//	provider := services.BuildProvider()
//
//	handler, err := di.Resolve[Handler](provider)
//
// Lifetimes
//
// Transient services are rebuilt on every resolution. Singleton services
// are built once per provider and shared everywhere; concurrent first
// resolutions race to publish exactly one winner. Scoped services are built
// once per Scope and must be resolved from one:
//
//	scope := provider.CreateScope()
//	defer scope.Dispose()
//	uow, err := di.Resolve[UnitOfWork](scope)
//
// Disposing a scope releases scoped instances that implement Disposable or
// io.Closer; release failures are logged and never propagated.
//
// Decorators
//
// Decorate wraps an already-built instance with cross-cutting behavior.
// Decorators fold outside-in at build time: the last one registered becomes
// the outermost wrapper.
//
//	_ = di.DecorateService[Handler](services, func(r di.Resolver, inner Handler) (Handler, error) {
//		return LoggingHandler{Inner: inner}, nil
//	})
//
// Cycle detection
//
// Every resolution call chain carries its own stack of in-flight frames.
// A dependency graph that re-requests a type already being built fails with
// CircularDependencyError; a decorator that re-requests the service it
// wraps fails with CircularDecoratorError. Both carry the offending path,
// and neither can overflow the call stack.
package di
