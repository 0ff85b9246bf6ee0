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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type database struct{ dsn string }

func newDatabase() *database { return &database{dsn: "memory"} }

type repository struct{ db *database }

func newRepository(db *database) *repository { return &repository{db: db} }

type catalog struct {
	Repo *repository `di:""`
	Name string
}

func TestConstructorInjection(t *testing.T) {
	services := NewCollection()
	require.NoError(t, Register[*database](services, Singleton, newDatabase))
	require.NoError(t, Register[*repository](services, Transient, newRepository))
	provider := services.BuildProvider()

	first, err := Resolve[*repository](provider)
	require.NoError(t, err)
	require.NotNil(t, first.db)
	assert.Equal(t, "memory", first.db.dsn)

	second, err := Resolve[*repository](provider)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Same(t, first.db, second.db, "both repositories share the singleton database")
}

func TestVariadicConstructorTailSkipped(t *testing.T) {
	services := NewCollection()
	require.NoError(t, Register[*database](services, Singleton, newDatabase))
	require.NoError(t, Register[*repository](services, Transient, func(db *database, labels ...string) *repository {
		if len(labels) != 0 {
			return nil
		}
		return &repository{db: db}
	}))
	provider := services.BuildProvider()

	repo, err := Resolve[*repository](provider)
	require.NoError(t, err)
	assert.NotNil(t, repo, "the variadic tail is never injected")
}

func TestConstructorErrorIsWrapped(t *testing.T) {
	services := NewCollection()
	require.NoError(t, Register[*database](services, Singleton, func() (*database, error) {
		return nil, errors.New("connection refused")
	}))
	provider := services.BuildProvider()

	_, err := Resolve[*database](provider)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constructor")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStructFieldInjection(t *testing.T) {
	services := NewCollection()
	require.NoError(t, Register[*database](services, Singleton, newDatabase))
	require.NoError(t, Register[*repository](services, Transient, newRepository))
	require.NoError(t, Register[*catalog](services, Transient, nil))
	provider := services.BuildProvider()

	c, err := Resolve[*catalog](provider)
	require.NoError(t, err)
	require.NotNil(t, c.Repo)
	assert.Equal(t, "memory", c.Repo.db.dsn)
	assert.Empty(t, c.Name, "untagged fields are left alone")
}

func TestValueTypeRegistration(t *testing.T) {
	services := NewCollection()
	require.NoError(t, Register[greeter](services, Transient, TypeOf[plainGreeter]()))
	provider := services.BuildProvider()

	g, err := Resolve[greeter](provider)
	require.NoError(t, err)
	assert.Equal(t, "plainGreeter: hello", g.Greet())
}

func TestStructFieldInjectionMissingDependency(t *testing.T) {
	services := NewCollection()
	require.NoError(t, Register[*catalog](services, Transient, nil))
	provider := services.BuildProvider()

	_, err := Resolve[*catalog](provider)

	var notRegistered *NotRegisteredError
	require.ErrorAs(t, err, &notRegistered)
	assert.Equal(t, TypeOf[*repository](), notRegistered.Type)
	require.Len(t, notRegistered.Stack, 1)
	assert.Contains(t, notRegistered.Stack[0], "catalog")
}

func TestMustResolvePanicsOnFailure(t *testing.T) {
	provider := NewCollection().BuildProvider()

	assert.Panics(t, func() {
		MustResolve[*database](provider)
	})
}

func TestMustResolveReturnsInstance(t *testing.T) {
	services := NewCollection()
	require.NoError(t, RegisterInstance[*database](services, &database{dsn: "fixed"}))
	provider := services.BuildProvider()

	db := MustResolve[*database](provider)
	assert.Equal(t, "fixed", db.dsn)
}
