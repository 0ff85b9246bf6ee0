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
	"reflect"

	"github.com/pkg/errors"

	"github.com/wd-go/di/internal/direflect"
)

// injectTag marks struct fields to be filled from the container when a
// registration names a concrete type rather than a constructor.
const injectTag = "di"

// callConstructor resolves each of the constructor's parameter types
// through the current resolution context and invokes it. A variadic tail is
// never injected. The signature was validated at registration time.
func (p *Provider) callConstructor(rc *resolutionContext, fn reflect.Value) (interface{}, error) {
	ft := fn.Type()

	numIn := ft.NumIn()
	if ft.IsVariadic() {
		numIn--
	}

	args := make([]reflect.Value, numIn)
	for i := 0; i < numIn; i++ {
		dep, err := p.resolve(rc, ft.In(i))
		if err != nil {
			return nil, err
		}
		if dep == nil {
			args[i] = reflect.Zero(ft.In(i))
		} else {
			args[i] = reflect.ValueOf(dep)
		}
	}

	out := fn.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, errors.Wrapf(
			out[1].Interface().(error),
			"di: constructor %s failed", direflect.FuncName(fn.Interface()),
		)
	}
	return out[0].Interface(), nil
}

// buildStruct instantiates a concrete type and fills its `di`-tagged fields
// from the container. A type with no tagged fields is instantiated directly
// with no dependencies. The type shape was validated at registration time.
func (p *Provider) buildStruct(rc *resolutionContext, implType reflect.Type) (interface{}, error) {
	elem := implType
	ptr := false
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
		ptr = true
	}

	v := reflect.New(elem)
	for i := 0; i < elem.NumField(); i++ {
		f := elem.Field(i)
		if _, tagged := f.Tag.Lookup(injectTag); !tagged {
			continue
		}

		dep, err := p.resolve(rc, f.Type)
		if err != nil {
			return nil, err
		}
		if dep != nil {
			v.Elem().Field(i).Set(reflect.ValueOf(dep))
		}
	}

	if ptr {
		return v.Interface(), nil
	}
	return v.Elem().Interface(), nil
}
