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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func traceMiddleware(trace *[]string, tag string) MiddlewareFunc {
	return func(ctx interface{}, next Next) (interface{}, error) {
		*trace = append(*trace, tag+":before")
		result, err := next()
		*trace = append(*trace, tag+":after")
		return result, err
	}
}

func TestPipelineOrder(t *testing.T) {
	var trace []string
	pipeline := NewPipeline().
		UseFunc(traceMiddleware(&trace, "outer")).
		UseFunc(traceMiddleware(&trace, "inner"))

	_, err := pipeline.Execute("request")
	require.NoError(t, err)

	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, trace)
}

func TestEmptyPipeline(t *testing.T) {
	result, err := NewPipeline().Execute("request")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestPipelineResultFlowsOutward(t *testing.T) {
	pipeline := NewPipeline().
		UseFunc(func(ctx interface{}, next Next) (interface{}, error) {
			inner, err := next()
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("wrapped(%v)", inner), nil
		}).
		UseFunc(func(ctx interface{}, next Next) (interface{}, error) {
			return fmt.Sprintf("handled:%v", ctx), nil
		})

	result, err := pipeline.Execute("req")
	require.NoError(t, err)
	assert.Equal(t, "wrapped(handled:req)", result)
}

func TestRecoveryMiddleware(t *testing.T) {
	pipeline := NewPipeline().
		Use(RecoveryMiddleware{}).
		UseFunc(func(interface{}, Next) (interface{}, error) {
			panic("handler exploded")
		})

	result, err := pipeline.Execute("req")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "middleware panic")
	assert.Contains(t, err.Error(), "handler exploded")
}

func TestValidationMiddleware(t *testing.T) {
	pipeline := NewPipeline().
		Use(ValidationMiddleware{Validate: func(ctx interface{}) bool {
			_, ok := ctx.(string)
			return ok
		}}).
		UseFunc(func(ctx interface{}, _ Next) (interface{}, error) {
			return ctx, nil
		})

	result, err := pipeline.Execute("valid")
	require.NoError(t, err)
	assert.Equal(t, "valid", result)

	_, err = pipeline.Execute(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pipeline context")
}

func TestCachingMiddleware(t *testing.T) {
	calls := 0
	pipeline := NewPipeline().
		Use(NewCachingMiddleware()).
		UseFunc(func(ctx interface{}, _ Next) (interface{}, error) {
			calls++
			return fmt.Sprintf("result:%v", ctx), nil
		})

	first, err := pipeline.Execute("key")
	require.NoError(t, err)
	second, err := pipeline.Execute("key")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "the second execution must be served from cache")

	_, err = pipeline.Execute("other")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	pipeline := NewPipeline().
		Use(LoggingMiddleware{Logger: zap.New(core)}).
		UseFunc(func(ctx interface{}, _ Next) (interface{}, error) {
			return ctx, nil
		})

	_, err := pipeline.Execute("req")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("executing pipeline").Len())
	assert.Equal(t, 1, logs.FilterMessage("pipeline execution completed").Len())
}

type echoMiddleware struct{}

func newEchoMiddleware() *echoMiddleware { return &echoMiddleware{} }

func (*echoMiddleware) Invoke(ctx interface{}, next Next) (interface{}, error) {
	if _, err := next(); err != nil {
		return nil, err
	}
	return fmt.Sprintf("echo: %v", ctx), nil
}

func TestApplicationBuilder(t *testing.T) {
	services := NewCollection()
	app := NewApplicationBuilder(services)
	app.ConfigureMiddleware(func(b *MiddlewareBuilder) {
		UseMiddleware[*echoMiddleware](b, newEchoMiddleware)
	})

	provider, err := app.Build()
	require.NoError(t, err)

	pipeline, err := Resolve[*Pipeline](provider)
	require.NoError(t, err)

	result, err := pipeline.Execute("hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", result)

	self, err := Resolve[*Provider](provider)
	require.NoError(t, err)
	assert.Same(t, provider, self, "the provider resolves itself")
}

func TestPipelineExecutionBeforeBuild(t *testing.T) {
	services := NewCollection()
	var captured *MiddlewareBuilder
	NewApplicationBuilder(services).ConfigureMiddleware(func(b *MiddlewareBuilder) {
		captured = b
		UseMiddleware[*echoMiddleware](b, newEchoMiddleware)
	})

	_, err := captured.pipeline.Execute("hi")

	var state *InvalidStateError
	require.ErrorAs(t, err, &state)
	assert.Contains(t, err.Error(), "before the application was built")
}

func TestApplicationBuilderBadMiddleware(t *testing.T) {
	services := NewCollection()
	app := NewApplicationBuilder(services)
	app.ConfigureMiddleware(func(b *MiddlewareBuilder) {
		UseMiddleware[*echoMiddleware](b, 42)
	})

	_, err := app.Build()

	var invalid *InvalidRegistrationError
	require.ErrorAs(t, err, &invalid)
}
