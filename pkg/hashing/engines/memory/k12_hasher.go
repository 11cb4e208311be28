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

package memory

import (
	"github.com/cloudflare/circl/xof/k12"

	"github.com/APTlantis/Athenaeum/pkg/hashing/digests"
	hashengines "github.com/APTlantis/Athenaeum/pkg/hashing/engines"
)

var _ hashengines.StreamingHashEngine = (*K12Engine)(nil)

// K12OutputSize is the requested output length for KangarooTwelve.
// K12 is an extendable-output function; 32 bytes puts it in the same
// 256-bit class as the other main digests.
const K12OutputSize = 32

// K12Engine adapts the KangarooTwelve XOF to the StreamingHashEngine
// contract. The CIRCL state is write-then-read: once output has been
// squeezed no further absorption is possible, so Compute reads from a clone
// and keeps the absorbing state intact.
type K12Engine struct {
	state k12.State
}

// NewK12Engine creates a KangarooTwelve engine with an empty customization
// string. If initialData is non-empty it is absorbed immediately.
func NewK12Engine(initialData []byte) *K12Engine {
	e := &K12Engine{state: k12.NewDraft10(nil)}
	if len(initialData) > 0 {
		_, _ = e.state.Write(initialData)
	}
	return e
}

// Update absorbs more bytes into the XOF state.
func (e *K12Engine) Update(data []byte) {
	if len(data) > 0 {
		_, _ = e.state.Write(data)
	}
}

// Reset clears the state and optionally absorbs data.
func (e *K12Engine) Reset(data []byte) {
	e.state = k12.NewDraft10(nil)
	if len(data) > 0 {
		_, _ = e.state.Write(data)
	}
}

// Compute squeezes K12OutputSize bytes of output and returns the digest.
// The read happens on a clone so the engine can keep absorbing afterwards.
func (e *K12Engine) Compute() (digests.Digest, error) {
	clone := e.state.Clone()
	out := make([]byte, K12OutputSize)
	if _, err := clone.Read(out); err != nil {
		return digests.Digest{}, err
	}
	return digests.NewDigest(e.DigestName(), out), nil
}

// DigestName returns the canonical algorithm name.
func (e *K12Engine) DigestName() string {
	return AlgKangaroo12
}

// DigestSize returns the requested XOF output length.
func (e *K12Engine) DigestSize() int {
	return K12OutputSize
}
