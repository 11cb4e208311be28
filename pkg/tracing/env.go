//go:build !otel

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

package tracing

import "context"

// InitFromEnv is a no-op in the default build. Build with -tags=otel to
// enable OpenTelemetry export.
func InitFromEnv() error {
	return nil
}

// Shutdown is a no-op in the default build.
func Shutdown(_ context.Context) error {
	return nil
}
