// Copyright 2025 The Athenaeum Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tracing provides span-based tracing for the pipeline phases. By
// default a no-op tracer is used; when built with the "otel" build tag and
// configured via the standard OTEL_* environment variables, spans are
// exported over OTLP.
package tracing

import "context"

// Span is a single named, timed operation. Call End when it completes.
type Span interface {
	// SetAttribute sets a key-value attribute on the span.
	SetAttribute(key string, value interface{})
	// End marks the span as finished.
	End()
}

// Tracer creates spans for named operations.
type Tracer interface {
	// Start starts a new span. The returned context should be used for
	// downstream calls; the span must be ended with End.
	Start(ctx context.Context, name string) (context.Context, Span)
}

var globalTracer Tracer = NoopTracer{}

// SetTracer sets the global tracer used by Start and Run. Passing nil
// restores the no-op tracer.
func SetTracer(t Tracer) {
	if t == nil {
		globalTracer = NoopTracer{}
		return
	}
	globalTracer = t
}

// GetTracer returns the current global tracer (never nil).
func GetTracer() Tracer {
	return globalTracer
}

// Start starts a new span using the global tracer.
func Start(ctx context.Context, name string) (context.Context, Span) {
	return globalTracer.Start(ctx, name)
}

// Enabled reports whether a real (non-noop) tracer is configured. In the
// default build this always returns false.
func Enabled() bool {
	_, noop := globalTracer.(NoopTracer)
	return !noop
}

// Run starts a span with the given name and attributes, runs fn with the
// span's context, and ends the span. When no real tracer is configured, fn
// is called directly with no overhead.
func Run(ctx context.Context, name string, attrs map[string]interface{}, fn func(context.Context) error) error {
	if !Enabled() {
		return fn(ctx)
	}
	ctx, span := globalTracer.Start(ctx, name)
	defer span.End()
	for k, v := range attrs {
		span.SetAttribute(k, v)
	}
	return fn(ctx)
}
