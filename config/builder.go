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

package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Source supplies one layer of configuration data.
type Source interface {
	Name() string
	Load() (map[string]interface{}, error)
}

// Builder accumulates sources and merges them into a Configuration. Later
// sources override earlier ones key by key.
type Builder struct {
	sources []Source
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a source.
func (b *Builder) Add(source Source) *Builder {
	b.sources = append(b.sources, source)
	return b
}

// AddMap appends an in-memory source.
func (b *Builder) AddMap(data map[string]interface{}) *Builder {
	return b.Add(mapSource{data: data})
}

// AddJSONFile appends a JSON file source. A missing file is skipped.
func (b *Builder) AddJSONFile(path string) *Builder {
	return b.Add(fileSource{path: path, unmarshal: json.Unmarshal})
}

// AddYAMLFile appends a YAML file source. A missing file is skipped.
func (b *Builder) AddYAMLFile(path string) *Builder {
	return b.Add(fileSource{path: path, unmarshal: yaml.Unmarshal})
}

// AddDotEnvFile appends a dotenv file source. A missing file is skipped.
func (b *Builder) AddDotEnvFile(path string) *Builder {
	return b.Add(dotenvSource{path: path})
}

// AddEnvironment appends the process environment as a source. When prefix
// is non-empty, only variables with that prefix are included, with the
// prefix stripped.
func (b *Builder) AddEnvironment(prefix string) *Builder {
	return b.Add(envSource{prefix: prefix})
}

// Build loads every source in order and merges them, later sources winning.
// Load failures are combined and returned alongside the configuration built
// from the sources that did load.
func (b *Builder) Build() (Configuration, error) {
	merged := map[string]interface{}{}
	var errs error
	for _, source := range b.sources {
		data, err := source.Load()
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "config: loading %s", source.Name()))
			continue
		}
		for k, v := range data {
			merged[k] = v
		}
	}
	return New(merged), errs
}

type mapSource struct {
	data map[string]interface{}
}

func (s mapSource) Name() string { return "map" }

func (s mapSource) Load() (map[string]interface{}, error) {
	return s.data, nil
}

type fileSource struct {
	path      string
	unmarshal func([]byte, interface{}) error
}

func (s fileSource) Name() string { return s.path }

func (s fileSource) Load() (map[string]interface{}, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	if err := s.unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

type dotenvSource struct {
	path string
}

func (s dotenvSource) Name() string { return s.path }

func (s dotenvSource) Load() (map[string]interface{}, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}

	env, err := godotenv.Read(s.path)
	if err != nil {
		return nil, err
	}

	data := make(map[string]interface{}, len(env))
	for k, v := range env {
		data[k] = v
	}
	return data, nil
}

type envSource struct {
	prefix string
}

func (s envSource) Name() string { return "environment" }

func (s envSource) Load() (map[string]interface{}, error) {
	data := map[string]interface{}{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if s.prefix != "" {
			if !strings.HasPrefix(k, s.prefix) {
				continue
			}
			k = strings.TrimPrefix(k, s.prefix)
		}
		data[k] = v
	}
	return data, nil
}
