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

// Package manifest composes the terminal TOML artifact of a run.
//
// The composer is a pure serializer: it writes the inventory, digest set
// and signature it is given, in a fixed section order, without reordering,
// deduplicating or filtering records. For unchanged input and fixed
// timestamps and key, two runs produce byte-identical output except for the
// signature block (OpenPGP signatures embed a creation time).
package manifest

import (
	"fmt"
	"strings"
	"time"

	"github.com/APTlantis/Athenaeum/pkg/fingerprint"
	"github.com/APTlantis/Athenaeum/pkg/hashing/engines/memory"
	"github.com/APTlantis/Athenaeum/pkg/inventory"
)

// DateFormat is the timestamp layout used for all manifest fields.
const DateFormat = "2006-01-02 15:04:05"

// Manifest holds everything the composer serializes. Write-once.
type Manifest struct {
	// Name is the display name of the sealed directory.
	Name string
	// Inventory is the capture this manifest describes.
	Inventory *inventory.Inventory
	// Digests is the tree-level digest set.
	Digests fingerprint.Result
	// KeyID identifies the signing key, 0x-prefixed.
	KeyID string
	// Signature is the armored detached signature over SignableBody.
	Signature string
	// GeneratedAt is the manifest generation time (cosmetic header only).
	GeneratedAt time.Time
}

// New assembles a Manifest from the run's artifacts.
func New(name string, inv *inventory.Inventory, res fingerprint.Result, keyID, signature string, generatedAt time.Time) *Manifest {
	return &Manifest{
		Name:        name,
		Inventory:   inv,
		Digests:     res,
		KeyID:       keyID,
		Signature:   signature,
		GeneratedAt: generatedAt,
	}
}

// SignableBody builds the canonical byte block that gets signed: the
// directory name, the eleven digests in manifest order, and the inventory
// date. Every field is recoverable from a parsed manifest, so a verifier
// can rebuild the exact block from the manifest file alone.
func SignableBody(dirName string, hashes map[string]string, inventoryDate string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s\n", dirName)
	for _, alg := range memory.TreeAlgorithms() {
		fmt.Fprintf(&b, "%s: %s\n", alg, hashes[alg])
	}
	fmt.Fprintf(&b, "Inventory-Date: %s", inventoryDate)
	return []byte(b.String())
}

// SignableBody returns the canonical signed block for this manifest.
func (m *Manifest) SignableBody() []byte {
	hashes := make(map[string]string, m.Digests.Len())
	for _, alg := range memory.TreeAlgorithms() {
		hashes[alg] = m.Digests.Hex(alg)
	}
	return SignableBody(m.Name, hashes, m.Inventory.CapturedAt.Format(DateFormat))
}
