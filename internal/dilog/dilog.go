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

// Package dilog is the container's structured-logging seam. The engine
// emits typed events; sinks decide how to render them. The default sink is
// a nop, so nothing about console output is load-bearing.
package dilog

import (
	"go.uber.org/zap"
)

// Logger defines the interface used for logging container events.
type Logger interface {
	// LogEvent is called when a logging event is emitted.
	LogEvent(Event)
}

// Event is a container logging event.
type Event interface{}

// ProvideEvent is emitted for every descriptor sealed into a provider.
type ProvideEvent struct {
	ServiceType string
	Lifetime    string
	Decorators  int
}

// BuildEvent is emitted once when a collection is sealed into a provider.
type BuildEvent struct {
	Count int
}

// ScopeCreatedEvent is emitted when a new scope is created.
type ScopeCreatedEvent struct{}

// DisposeErrorEvent is emitted for every scoped instance whose release
// operation fails during scope disposal. Failures are reported here and
// never propagated, so one failing disposal cannot starve the rest.
type DisposeErrorEvent struct {
	Instance string
	Err      error
}

// ScopeDisposedEvent is emitted after a scope has released all tracked
// instances. Err combines any individual disposal failures.
type ScopeDisposedEvent struct {
	Disposed int
	Err      error
}

type nopLogger struct{}

func (nopLogger) LogEvent(Event) {}

// Nop returns a Logger that discards all events.
func Nop() Logger { return nopLogger{} }

var _ Logger = (*zapLogger)(nil)

type zapLogger struct {
	logger *zap.Logger
}

// New wraps a zap logger into an event sink.
func New(logger *zap.Logger) Logger {
	return &zapLogger{logger: logger}
}

func (l *zapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case ProvideEvent:
		l.logger.Info("providing",
			zap.String("type", e.ServiceType),
			zap.String("lifetime", e.Lifetime),
			zap.Int("decorators", e.Decorators),
		)
	case BuildEvent:
		l.logger.Info("built provider", zap.Int("services", e.Count))
	case ScopeCreatedEvent:
		l.logger.Debug("scope created")
	case DisposeErrorEvent:
		l.logger.Error("error disposing instance",
			zap.String("instance", e.Instance),
			zap.Error(e.Err),
		)
	case ScopeDisposedEvent:
		if e.Err != nil {
			l.logger.Warn("scope disposed with errors",
				zap.Int("disposed", e.Disposed),
				zap.Error(e.Err),
			)
			return
		}
		l.logger.Debug("scope disposed", zap.Int("disposed", e.Disposed))
	}
}
