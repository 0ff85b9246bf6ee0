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

// MiddlewareBuilder assembles a Pipeline whose middleware may be resolved
// from the container. Container-resolved middleware is registered transient
// and resolved once per pipeline execution.
type MiddlewareBuilder struct {
	services *Collection
	pipeline *Pipeline
	provider *Provider // set once by ApplicationBuilder.Build
	err      error
}

// Use appends a middleware instance to the pipeline.
func (b *MiddlewareBuilder) Use(m Middleware) *MiddlewareBuilder {
	b.pipeline.Use(m)
	return b
}

// UseFunc appends a function middleware to the pipeline.
func (b *MiddlewareBuilder) UseFunc(f MiddlewareFunc) *MiddlewareBuilder {
	b.pipeline.UseFunc(f)
	return b
}

// UseMiddleware registers middleware type M as a transient service and
// appends an adapter that resolves a fresh M from the application's
// provider on every pipeline execution.
func UseMiddleware[M Middleware](b *MiddlewareBuilder, impl interface{}) *MiddlewareBuilder {
	if err := Register[M](b.services, Transient, impl); err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}

	b.pipeline.UseFunc(func(ctx interface{}, next Next) (interface{}, error) {
		if b.provider == nil {
			return nil, &InvalidStateError{
				Reason: "middleware pipeline executed before the application was built",
			}
		}
		m, err := Resolve[M](b.provider)
		if err != nil {
			return nil, err
		}
		return m.Invoke(ctx, next)
	})
	return b
}

// ApplicationBuilder wires a middleware pipeline into a service collection
// and builds the application's provider exactly once.
type ApplicationBuilder struct {
	services *Collection
	builder  *MiddlewareBuilder
}

// NewApplicationBuilder returns a builder over the given collection.
func NewApplicationBuilder(services *Collection) *ApplicationBuilder {
	return &ApplicationBuilder{
		services: services,
		builder:  &MiddlewareBuilder{services: services, pipeline: NewPipeline()},
	}
}

// ConfigureMiddleware lets configure assemble the pipeline.
func (b *ApplicationBuilder) ConfigureMiddleware(configure func(*MiddlewareBuilder)) *ApplicationBuilder {
	configure(b.builder)
	return b
}

// Build registers the pipeline and the provider itself as singletons, then
// seals the collection. Middleware adapters resolve their instances from
// the returned provider on each execution.
func (b *ApplicationBuilder) Build(opts ...ProviderOption) (*Provider, error) {
	if b.builder.err != nil {
		return nil, b.builder.err
	}

	if err := RegisterInstance[*Pipeline](b.services, b.builder.pipeline); err != nil {
		return nil, err
	}

	var provider *Provider
	if err := RegisterFactory[*Provider](b.services, Singleton, func(Resolver) (*Provider, error) {
		return provider, nil
	}); err != nil {
		return nil, err
	}

	provider = b.services.BuildProvider(opts...)
	b.builder.provider = provider
	return provider, nil
}
