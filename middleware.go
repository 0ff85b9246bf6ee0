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
	"sync"

	"go.uber.org/zap"
)

// Next advances the middleware pipeline. Calling it runs the remainder of
// the chain and returns its result.
type Next func() (interface{}, error)

// Middleware processes a pipeline context and decides whether to call the
// rest of the chain.
type Middleware interface {
	Invoke(ctx interface{}, next Next) (interface{}, error)
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(ctx interface{}, next Next) (interface{}, error)

// Invoke calls f.
func (f MiddlewareFunc) Invoke(ctx interface{}, next Next) (interface{}, error) {
	return f(ctx, next)
}

// Pipeline executes middleware in registration order; each middleware wraps
// everything registered after it. It is an in-process chain of
// responsibility, unrelated to service resolution.
type Pipeline struct {
	middleware []Middleware
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Use appends a middleware to the pipeline.
func (p *Pipeline) Use(m Middleware) *Pipeline {
	p.middleware = append(p.middleware, m)
	return p
}

// UseFunc appends a function middleware to the pipeline.
func (p *Pipeline) UseFunc(f MiddlewareFunc) *Pipeline {
	return p.Use(f)
}

// Execute runs the pipeline against ctx. An empty pipeline yields nil.
func (p *Pipeline) Execute(ctx interface{}) (interface{}, error) {
	index := 0
	var next Next
	next = func() (interface{}, error) {
		if index >= len(p.middleware) {
			return nil, nil
		}
		m := p.middleware[index]
		index++
		return m.Invoke(ctx, next)
	}
	return next()
}

// RecoveryMiddleware converts panics from downstream middleware into
// errors, keeping a misbehaving handler from unwinding the caller.
type RecoveryMiddleware struct{}

// Invoke runs the rest of the chain under a recover.
func (RecoveryMiddleware) Invoke(ctx interface{}, next Next) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("di: middleware panic: %v", r)
		}
	}()
	return next()
}

// LoggingMiddleware logs pipeline execution and its outcome.
type LoggingMiddleware struct {
	Logger *zap.Logger
}

// Invoke logs around the rest of the chain.
func (m LoggingMiddleware) Invoke(ctx interface{}, next Next) (interface{}, error) {
	log := m.Logger
	if log == nil {
		log = zap.NewNop()
	}

	log.Debug("executing pipeline", zap.Any("context", ctx))
	result, err := next()
	if err != nil {
		log.Error("pipeline execution failed", zap.Error(err))
		return result, err
	}
	log.Debug("pipeline execution completed")
	return result, nil
}

// ValidationMiddleware rejects contexts that fail a predicate before they
// reach the rest of the chain.
type ValidationMiddleware struct {
	Validate func(ctx interface{}) bool
}

// Invoke validates ctx and then runs the rest of the chain.
func (m ValidationMiddleware) Invoke(ctx interface{}, next Next) (interface{}, error) {
	if m.Validate != nil && !m.Validate(ctx) {
		return nil, fmt.Errorf("di: invalid pipeline context: %v", ctx)
	}
	return next()
}

// CachingMiddleware memoizes chain results by the context's string
// rendering. Safe for concurrent executions.
type CachingMiddleware struct {
	mu    sync.Mutex
	cache map[string]interface{}
}

// NewCachingMiddleware returns an empty cache middleware.
func NewCachingMiddleware() *CachingMiddleware {
	return &CachingMiddleware{cache: make(map[string]interface{})}
}

// Invoke returns a cached result for ctx if one exists, otherwise runs the
// rest of the chain and caches its result.
func (m *CachingMiddleware) Invoke(ctx interface{}, next Next) (interface{}, error) {
	key := fmt.Sprintf("%v", ctx)

	m.mu.Lock()
	if cached, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return cached, nil
	}
	m.mu.Unlock()

	result, err := next()
	if err != nil {
		return result, err
	}

	m.mu.Lock()
	m.cache[key] = result
	m.mu.Unlock()
	return result, nil
}
