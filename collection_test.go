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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionSealing(t *testing.T) {
	services := NewCollection()
	require.NoError(t, services.AddTransientFactory(TypeOf[*widget](), newWidgetFactory()))
	services.BuildProvider()

	var sealed *InvalidStateError

	err := services.AddTransient(TypeOf[*widget](), nil)
	require.ErrorAs(t, err, &sealed)

	err = services.AddSingletonFactory(TypeOf[*widget](), newWidgetFactory())
	require.ErrorAs(t, err, &sealed)

	err = services.AddInstance(TypeOf[*widget](), &widget{})
	require.ErrorAs(t, err, &sealed)

	err = services.Decorate(TypeOf[*widget](), func(_ Resolver, inner interface{}) (interface{}, error) {
		return inner, nil
	})
	require.ErrorAs(t, err, &sealed)
	assert.Contains(t, err.Error(), "after a Provider has been built")
}

func TestSealRacingRegistration(t *testing.T) {
	// A registration racing BuildProvider must either land in the sealed
	// snapshot or be rejected; it can never be accepted and then lost.
	for i := 0; i < 50; i++ {
		services := NewCollection()

		var wg sync.WaitGroup
		wg.Add(2)
		var addErr error
		var provider *Provider
		go func() {
			defer wg.Done()
			addErr = services.AddSingletonFactory(TypeOf[*widget](), newWidgetFactory())
		}()
		go func() {
			defer wg.Done()
			provider = services.BuildProvider()
		}()
		wg.Wait()

		if addErr != nil {
			var state *InvalidStateError
			assert.ErrorAs(t, addErr, &state)
			continue
		}
		_, err := Resolve[*widget](provider)
		assert.NoError(t, err, "an accepted registration must be visible to the provider")
	}
}

func TestBuildProviderTwice(t *testing.T) {
	services := NewCollection()
	require.NoError(t, RegisterInstance[*widget](services, &widget{id: 5}))

	first := services.BuildProvider()
	second := services.BuildProvider()

	a, err := Resolve[*widget](first)
	require.NoError(t, err)
	b, err := Resolve[*widget](second)
	require.NoError(t, err)
	assert.Same(t, a, b, "providers built from one collection see the same frozen set")
}

func TestDecorateWithoutRegistration(t *testing.T) {
	services := NewCollection()

	err := services.Decorate(TypeOf[*widget](), func(_ Resolver, inner interface{}) (interface{}, error) {
		return inner, nil
	})

	var state *InvalidStateError
	require.ErrorAs(t, err, &state)
	assert.Contains(t, err.Error(), "cannot apply decorator")
}

func TestDecorateTargetsFirstRegistration(t *testing.T) {
	services := NewCollection()
	require.NoError(t, services.AddTransientFactory(TypeOf[*widget](), func(Resolver) (interface{}, error) {
		return &widget{id: 1}, nil
	}))
	require.NoError(t, services.AddTransientFactory(TypeOf[*widget](), func(Resolver) (interface{}, error) {
		return &widget{id: 2}, nil
	}))
	require.NoError(t, DecorateService[*widget](services, func(_ Resolver, inner *widget) (*widget, error) {
		inner.id += 100
		return inner, nil
	}))
	provider := services.BuildProvider()

	// Decorate patches the first registration while resolution picks the
	// last one, so the winner here is undecorated.
	w, err := Resolve[*widget](provider)
	require.NoError(t, err)
	assert.Equal(t, 2, w.id)
}

func TestAddInstanceValidation(t *testing.T) {
	services := NewCollection()

	var invalid *InvalidRegistrationError

	err := services.AddInstance(TypeOf[*widget](), nil)
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "cannot be nil")

	err = services.AddInstance(TypeOf[*widget](), "not a widget")
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "does not satisfy")
}

func TestAddFactoryNil(t *testing.T) {
	services := NewCollection()

	var invalid *InvalidRegistrationError
	err := services.AddFactory(Transient, TypeOf[*widget](), nil)
	require.ErrorAs(t, err, &invalid)
}

func TestCollectionLen(t *testing.T) {
	services := NewCollection()
	assert.Equal(t, 0, services.Len())

	require.NoError(t, services.AddTransientFactory(TypeOf[*widget](), newWidgetFactory()))
	require.NoError(t, services.AddScopedFactory(TypeOf[*conn](), func(Resolver) (interface{}, error) {
		return &conn{}, nil
	}))
	assert.Equal(t, 2, services.Len())
}
