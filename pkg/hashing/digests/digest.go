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

// Package digests provides the value type for computed digests.
//
// A Digest pairs an algorithm name with the computed hash bytes. Fields are
// unexported and constructors and accessors copy the underlying data, so a
// Digest is effectively immutable once built.
package digests

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Digest is a computed hash value together with the name of the algorithm
// that produced it.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest creates a Digest for the given algorithm and raw hash bytes.
// The value slice is copied so later mutations by the caller cannot change
// the digest.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// Algorithm returns the name of the algorithm that produced this digest.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Hex returns the lowercase hexadecimal encoding of the digest value.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the length in bytes of the digest value.
func (d Digest) Size() int {
	return len(d.value)
}

// String formats the digest as "algorithm:hexvalue".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether two digests have the same algorithm and value.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}
