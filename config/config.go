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

// Package config provides the hierarchical configuration collaborator the
// container's options binding consumes: fetch a value by colon-separated
// key, fetch a sub-section as another Configuration, or bind a section onto
// a struct.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration is a read-only view over merged configuration data.
type Configuration interface {
	// Get returns the value at a colon-separated hierarchical key.
	Get(key string) (interface{}, bool)

	// GetString returns the value at key rendered as a string, or ""
	// when the key is absent.
	GetString(key string) string

	// Section returns the sub-tree at key as another Configuration.
	// A missing or scalar-valued key yields an empty section.
	Section(key string) Configuration

	// Bind unmarshals the sub-tree at key onto target, which must be a
	// pointer. An empty key binds the whole configuration.
	Bind(key string, target interface{}) error
}

type configuration struct {
	data map[string]interface{}
}

// New returns a Configuration over the given data. Nested sections are
// nested maps.
func New(data map[string]interface{}) Configuration {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &configuration{data: data}
}

func (c *configuration) Get(key string) (interface{}, bool) {
	var current interface{} = c.data
	for _, part := range strings.Split(key, ":") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func (c *configuration) GetString(key string) string {
	v, ok := c.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (c *configuration) Section(key string) Configuration {
	v, ok := c.Get(key)
	if !ok {
		return New(nil)
	}
	if m, ok := v.(map[string]interface{}); ok {
		return New(m)
	}
	return New(nil)
}

func (c *configuration) Bind(key string, target interface{}) error {
	data := interface{}(c.data)
	if key != "" {
		v, ok := c.Get(key)
		if !ok {
			return nil // absent section leaves target at its zero value
		}
		data = v
	}

	// A yaml round-trip gives us map-to-struct binding with the same
	// coercion rules as the file sources.
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("config: cannot bind section %q: %w", key, err)
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("config: cannot bind section %q: %w", key, err)
	}
	return nil
}
