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

// Package direflect turns types and functions into the stable, readable
// names used as resolution-stack frames and in log events.
package direflect

import (
	"reflect"
	"runtime"
)

// TypeName returns a readable identity for a service type, suitable for use
// as a resolution-stack frame.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "n/a"
	}
	return t.String()
}

// FuncName returns a func's fully qualified name. Distinct closures get
// distinct names, which is what makes func identity usable for cycle
// detection on decorator frames.
func FuncName(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func {
		return "n/a"
	}

	rf := runtime.FuncForPC(fnV.Pointer())
	if rf == nil {
		return "n/a"
	}
	return rf.Name() + "()"
}

// InstanceName names a live instance by its dynamic type, for log events.
func InstanceName(v interface{}) string {
	if v == nil {
		return "n/a"
	}
	return TypeName(reflect.TypeOf(v))
}
