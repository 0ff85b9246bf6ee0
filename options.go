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
	"github.com/pkg/errors"

	"github.com/wd-go/di/config"
)

// Options wraps a strongly typed settings object bound from configuration.
// Each instantiation Options[T] is its own service type in the registry, so
// settings for different T coexist under distinct keys.
type Options[T any] struct {
	value T
}

// Value returns the bound settings.
func (o *Options[T]) Value() T { return o.value }

// Configure registers a singleton *Options[T] whose value is bound from the
// named section of the registered config.Configuration. An empty section
// binds from the configuration root. The configuration itself must be
// registered separately, typically with RegisterInstance.
func Configure[T any](c *Collection, section string) error {
	return RegisterFactory[*Options[T]](c, Singleton, func(r Resolver) (*Options[T], error) {
		cfg, err := Resolve[config.Configuration](r)
		if err != nil {
			return nil, errors.Wrap(err, "di: options binding requires a registered config.Configuration")
		}

		var value T
		if err := cfg.Bind(section, &value); err != nil {
			return nil, err
		}
		return &Options[T]{value: value}, nil
	})
}
