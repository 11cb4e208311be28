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
	"os"
	"path/filepath"
	"strings"

	"github.com/APTlantis/Athenaeum/pkg/hashing/engines/memory"
)

// banner is the cosmetic header at the top of every manifest.
const banner = `# =====================================================================
#
#      .  .   ATHENAEUM
#     /|  |\  directory seal
#    /_|__|_\
#      |  |   eleven digests, one signature, one archive
#
# =====================================================================`

// Render serializes the manifest. Section order is fixed: banner,
// generation timestamp, [directory], [hashes] grouped by category,
// [signature], then [files] in inventory order.
func (m *Manifest) Render() []byte {
	var b strings.Builder

	b.WriteString(banner)
	b.WriteString("\n")
	fmt.Fprintf(&b, "# Generated on: %s\n\n", m.GeneratedAt.Format(DateFormat))

	b.WriteString("[directory]\n")
	fmt.Fprintf(&b, "name = %s\n", quote(m.Name))
	fmt.Fprintf(&b, "total_files = %d\n", m.Inventory.TotalFiles)
	fmt.Fprintf(&b, "total_directories = %d\n", m.Inventory.TotalDirs)
	fmt.Fprintf(&b, "total_size_bytes = %d\n", m.Inventory.TotalSize)
	fmt.Fprintf(&b, "inventory_date = %s\n", quote(m.Inventory.CapturedAt.Format(DateFormat)))
	b.WriteString("\n")

	b.WriteString("[hashes]\n")
	b.WriteString("# Main hashes\n")
	m.writeHashGroup(&b, memory.MainAlgorithms)
	b.WriteString("\n# Less common checksums\n")
	m.writeHashGroup(&b, memory.ChecksumAlgorithms)
	b.WriteString("\n# Additional hashes\n")
	m.writeHashGroup(&b, memory.AdditionalAlgorithms)
	b.WriteString("\n")

	b.WriteString("[signature]\n")
	fmt.Fprintf(&b, "gpg_key_id = %s\n", quote(m.KeyID))
	fmt.Fprintf(&b, "gpg_signature = \"\"\"\n%s\"\"\"\n", m.Signature)
	b.WriteString("\n")

	b.WriteString("[files]\n")
	for _, rec := range m.Inventory.Records {
		if rec.IsDir {
			continue
		}
		fmt.Fprintf(&b, "[files.%s]\n", quote(rec.RelPath))
		fmt.Fprintf(&b, "size = %d\n", rec.Size)
		fmt.Fprintf(&b, "modified = %s\n\n", quote(rec.ModTime.Format(DateFormat)))
	}

	return []byte(b.String())
}

func (m *Manifest) writeHashGroup(b *strings.Builder, algorithms []string) {
	for _, alg := range algorithms {
		fmt.Fprintf(b, "%s = %s\n", alg, quote(m.Digests.Hex(alg)))
	}
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// WriteFile renders the manifest and writes it atomically: the content goes
// to a .part file first and is renamed into place only when fully written,
// so a failed run never leaves a manifest that looks complete.
func (m *Manifest) WriteFile(path string) error {
	tmp := path + ".part"
	if err := os.WriteFile(tmp, m.Render(), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize manifest %s: %w", path, err)
	}
	return nil
}
