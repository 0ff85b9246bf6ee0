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

// resolutionContext is the per-call-chain stack of in-flight resolution
// frames used for cycle detection. Every top-level Resolve creates a fresh
// context and threads it explicitly through the whole recursive build, so
// concurrent call chains never observe each other's frames. Go has no
// task-local storage to lean on, and explicit threading keeps the
// concurrency story honest.
type resolutionContext struct {
	stack []string
}

func (rc *resolutionContext) push(frame string) {
	rc.stack = append(rc.stack, frame)
}

func (rc *resolutionContext) pop() {
	rc.stack = rc.stack[:len(rc.stack)-1]
}

// index returns the position of the first occurrence of frame, if any.
func (rc *resolutionContext) index(frame string) (int, bool) {
	for i, f := range rc.stack {
		if f == frame {
			return i, true
		}
	}
	return 0, false
}

// frames returns a copy of the current stack for error reporting.
func (rc *resolutionContext) frames() []string {
	frames := make([]string, len(rc.stack))
	copy(frames, rc.stack)
	return frames
}

// cyclePath returns the cycle from the first occurrence of frame through the
// repeat, inclusive.
func (rc *resolutionContext) cyclePath(idx int, frame string) []string {
	path := make([]string, 0, len(rc.stack)-idx+1)
	path = append(path, rc.stack[idx:]...)
	return append(path, frame)
}

// diagnoseCycle classifies a re-entered frame. If the descriptor being
// re-entered carries decorators and the frame pushed right after its first
// occurrence belongs to one of those decorators, the cycle came from the
// decorator chain: the decorator (or something it called) is re-requesting
// the service it wraps. Anything else is a plain dependency cycle.
func (rc *resolutionContext) diagnoseCycle(idx int, frame string, desc *Descriptor) error {
	path := rc.cyclePath(idx, frame)

	if len(desc.decorators) > 0 && idx+1 < len(rc.stack) {
		next := rc.stack[idx+1]
		for _, dec := range desc.decorators {
			if dec.frame == next {
				return &CircularDecoratorError{Chain: path}
			}
		}
	}

	return &CircularDependencyError{Path: path}
}
