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
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/cespare/xxhash/v2"
	"github.com/jzelinskie/whirlpool"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	hashengines "github.com/APTlantis/Athenaeum/pkg/hashing/engines"
)

// Canonical names for the fixed algorithm set. These are the registry keys
// and the field names in the manifest's [hashes] section.
const (
	AlgKangaroo12 = "kangaroo12"
	AlgBLAKE3     = "blake3"
	AlgSHA3_256   = "sha3_256"
	AlgBLAKE2b    = "blake2b"
	AlgSHA512     = "sha512"
	AlgWhirlpool  = "whirlpool"
	AlgRIPEMD160  = "ripemd160"
	AlgXXH3       = "xxh3"
	AlgSHA256     = "sha256"
	AlgXXHash64   = "xxhash64"
	AlgMurmur3    = "murmur3"
)

// The manifest groups the algorithm set into three categories; the order
// within each group is the order fields appear in the [hashes] section.
var (
	// MainAlgorithms are the modern general-purpose digests plus the XOF.
	MainAlgorithms = []string{AlgKangaroo12, AlgBLAKE3, AlgSHA3_256, AlgBLAKE2b, AlgSHA512}

	// ChecksumAlgorithms are legacy digests kept for compatibility auditing
	// plus the fastest of the non-cryptographic hashes.
	ChecksumAlgorithms = []string{AlgWhirlpool, AlgRIPEMD160, AlgXXH3}

	// AdditionalAlgorithms round out the set: the ubiquitous SHA-256 and two
	// more non-cryptographic hashes for quick integrity and dedup checks.
	AdditionalAlgorithms = []string{AlgSHA256, AlgXXHash64, AlgMurmur3}
)

// TreeAlgorithms returns the full fixed algorithm set in manifest order.
func TreeAlgorithms() []string {
	all := make([]string, 0, len(MainAlgorithms)+len(ChecksumAlgorithms)+len(AdditionalAlgorithms))
	all = append(all, MainAlgorithms...)
	all = append(all, ChecksumAlgorithms...)
	all = append(all, AdditionalAlgorithms...)
	return all
}

// generic registers a GenericEngine factory for a hash.Hash constructor that
// cannot fail.
func generic(name string, size int, newHash func() hash.Hash) {
	hashengines.MustRegister(name, func() (hashengines.StreamingHashEngine, error) {
		return NewGenericEngine(name, size, func() (hash.Hash, error) {
			return newHash(), nil
		}, nil)
	})
}

func init() {
	generic(AlgSHA256, sha256.Size, sha256.New)
	generic(AlgSHA512, sha512.Size, sha512.New)
	generic(AlgSHA3_256, 32, sha3.New256)
	generic(AlgWhirlpool, 64, whirlpool.New)
	generic(AlgRIPEMD160, ripemd160.Size, ripemd160.New)
	generic(AlgBLAKE3, 32, func() hash.Hash { return blake3.New(32, nil) })
	generic(AlgXXHash64, 8, func() hash.Hash { return xxhash.New() })
	generic(AlgXXH3, 8, func() hash.Hash { return xxh3.New() })
	generic(AlgMurmur3, 16, func() hash.Hash { return murmur3.New128() })

	// blake2b's constructor returns an error only for oversized keys; with a
	// nil key it cannot fail, but the factory signature carries it through.
	hashengines.MustRegister(AlgBLAKE2b, func() (hashengines.StreamingHashEngine, error) {
		return NewGenericEngine(AlgBLAKE2b, blake2b.Size256, func() (hash.Hash, error) {
			return blake2b.New256(nil)
		}, nil)
	})

	hashengines.MustRegister(AlgKangaroo12, func() (hashengines.StreamingHashEngine, error) {
		return NewK12Engine(nil), nil
	})
}
