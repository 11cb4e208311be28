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

// Package hashengines defines the incremental digest contract used by the
// fingerprint pass and a registry of named engine providers.
//
// Every algorithm in the fixed set, whether its underlying implementation is
// natively incremental (hash.Hash), an extendable-output function, or a
// one-shot API, is adapted to the same update/finalize contract so the
// digest pass can feed one byte stream to all of them.
package hashengines

import (
	"github.com/APTlantis/Athenaeum/pkg/hashing/digests"
)

// HashEngine is the finalize side of a digest computation.
type HashEngine interface {
	// Compute finalizes the computation and returns the resulting digest.
	// After Compute, the engine must be Reset before further use.
	Compute() (digests.Digest, error)

	// DigestName returns the canonical name of the algorithm. The name is
	// used as the registry key and as the field name in the manifest, so it
	// must include any parameter that changes the output (output length for
	// an XOF, variant for a multi-width hash).
	DigestName() string

	// DigestSize returns the size in bytes of digests produced by this
	// engine. It must match the Size of the Digest returned by Compute.
	DigestSize() int
}

// Streaming is the update side: feeding bytes incrementally.
//
// Kept separate from HashEngine so the two concerns stay small; the digest
// pass only ever uses the composed StreamingHashEngine.
type Streaming interface {
	// Update appends bytes to the data being digested. An engine must
	// reflect every byte passed to Update in its final digest; adapters for
	// one-shot APIs may not finalize from placeholder data.
	Update(data []byte)

	// Reset clears the engine state and optionally seeds it with data.
	Reset(data []byte)
}

// StreamingHashEngine composes HashEngine and Streaming; this is the type
// the registry hands out and the fingerprint pass consumes.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
