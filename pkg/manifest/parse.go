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

package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Document is the parsed form of a written manifest, used by the verify
// operation.
type Document struct {
	Directory DirectorySection     `toml:"directory"`
	Hashes    map[string]string    `toml:"hashes"`
	Signature SignatureSection     `toml:"signature"`
	Files     map[string]FileEntry `toml:"files"`
}

// DirectorySection mirrors the [directory] table.
type DirectorySection struct {
	Name             string `toml:"name"`
	TotalFiles       int    `toml:"total_files"`
	TotalDirectories int    `toml:"total_directories"`
	TotalSizeBytes   int64  `toml:"total_size_bytes"`
	InventoryDate    string `toml:"inventory_date"`
}

// SignatureSection mirrors the [signature] table.
type SignatureSection struct {
	GPGKeyID     string `toml:"gpg_key_id"`
	GPGSignature string `toml:"gpg_signature"`
}

// FileEntry mirrors one nested [files."path"] table.
type FileEntry struct {
	Size     int64  `toml:"size"`
	Modified string `toml:"modified"`
}

// ParseFile reads a manifest back from disk.
func ParseFile(path string) (*Document, error) {
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &doc, nil
}

// SignableBody rebuilds the canonical signed block from the parsed fields.
// It matches the block the sealer signed byte for byte.
func (d *Document) SignableBody() []byte {
	return SignableBody(d.Directory.Name, d.Hashes, d.Directory.InventoryDate)
}
