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

package fingerprint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/APTlantis/Athenaeum/pkg/hashing/engines/memory"
	"github.com/APTlantis/Athenaeum/pkg/inventory"
)

// knownSHA256 is the SHA-256 of "helloworld".
const knownSHA256 = "936a185caaa266bb9cbe981e9e05cb78cd732b0b3280eb944412bb6f8f8f07af"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func hashTree(t *testing.T, root string, opts HasherOptions) Result {
	t.Helper()
	inv, err := inventory.Capture(root, nil)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	hasher, err := NewHasher(opts)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	res, err := hasher.HashTree(context.Background(), inv)
	if err != nil {
		t.Fatalf("HashTree() error = %v", err)
	}
	return res
}

// Files are streamed in sorted relative-path order, so a tree of a.txt and
// b.txt must digest exactly like the concatenation of their contents.
func TestHashTree_ConcatenationOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt": "hello",
		"b.txt": "world",
	})

	res := hashTree(t, root, HasherOptions{})
	if got := res.Hex(memory.AlgSHA256); got != knownSHA256 {
		t.Errorf("sha256 = %s, want %s", got, knownSHA256)
	}
}

func TestHashTree_FullAlgorithmSet(t *testing.T) {
	root := writeTree(t, map[string]string{"f.txt": "content"})

	res := hashTree(t, root, HasherOptions{})
	if res.Len() != 11 {
		t.Fatalf("result has %d digests, want 11", res.Len())
	}
	for _, name := range memory.TreeAlgorithms() {
		d, ok := res.Digest(name)
		if !ok {
			t.Errorf("missing digest for %s", name)
			continue
		}
		if d.Size() == 0 {
			t.Errorf("%s: empty digest", name)
		}
	}
}

func TestHashTree_Deterministic(t *testing.T) {
	root := writeTree(t, map[string]string{
		"x/one.bin": "payload one",
		"two.bin":   "payload two",
	})

	first := hashTree(t, root, HasherOptions{})
	second := hashTree(t, root, HasherOptions{})

	for _, name := range first.Algorithms() {
		if first.Hex(name) != second.Hex(name) {
			t.Errorf("%s: two passes over an unchanged tree disagree", name)
		}
	}
}

func TestHashTree_SingleBitChange(t *testing.T) {
	before := writeTree(t, map[string]string{"f.bin": "content A"})
	after := writeTree(t, map[string]string{"f.bin": "content B"})

	resBefore := hashTree(t, before, HasherOptions{})
	resAfter := hashTree(t, after, HasherOptions{})

	for _, name := range resBefore.Algorithms() {
		if resBefore.Hex(name) == resAfter.Hex(name) {
			t.Errorf("%s: digest unchanged after content change", name)
		}
	}
}

// Empty files contribute no bytes, so adding one must not move any digest.
func TestHashTree_EmptyFileNeutral(t *testing.T) {
	plain := writeTree(t, map[string]string{"a.txt": "data"})
	withEmpty := writeTree(t, map[string]string{
		"a.txt": "data",
		"z.txt": "",
	})

	resPlain := hashTree(t, plain, HasherOptions{})
	resEmpty := hashTree(t, withEmpty, HasherOptions{})

	for _, name := range resPlain.Algorithms() {
		if resPlain.Hex(name) != resEmpty.Hex(name) {
			t.Errorf("%s: empty file changed the digest", name)
		}
	}
}

func TestHashTree_SmallChunks(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt": "hello",
		"b.txt": "world",
	})

	res := hashTree(t, root, HasherOptions{ChunkSize: 3})
	if got := res.Hex(memory.AlgSHA256); got != knownSHA256 {
		t.Errorf("sha256 with 3-byte chunks = %s, want %s", got, knownSHA256)
	}
}

func TestHashTree_UnreadableFile(t *testing.T) {
	root := writeTree(t, map[string]string{"gone.txt": "bytes"})

	inv, err := inventory.Capture(root, nil)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	// Remove the file after capture so the digest pass hits a missing path.
	if err := os.Remove(filepath.Join(root, "gone.txt")); err != nil {
		t.Fatal(err)
	}

	hasher, err := NewHasher(HasherOptions{})
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	_, err = hasher.HashTree(context.Background(), inv)
	if !errors.Is(err, ErrRead) {
		t.Errorf("HashTree() error = %v, want ErrRead", err)
	}
}

func TestHashTree_ContextCanceled(t *testing.T) {
	root := writeTree(t, map[string]string{"f.txt": "content"})

	inv, err := inventory.Capture(root, nil)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hasher, err := NewHasher(HasherOptions{})
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	_, err = hasher.HashTree(ctx, inv)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("HashTree() error = %v, want context.Canceled", err)
	}
}

func TestHashTree_FinalProgressReport(t *testing.T) {
	root := writeTree(t, map[string]string{"f.txt": "content"})

	var lastPercent float64
	var lastProcessed int64
	calls := 0
	hashTree(t, root, HasherOptions{
		Progress: func(percent float64, processed, total int64) {
			lastPercent = percent
			lastProcessed = processed
			calls++
		},
	})

	if calls == 0 {
		t.Fatal("progress callback never invoked")
	}
	if lastPercent != 100 {
		t.Errorf("final progress percent = %v, want 100", lastPercent)
	}
	if lastProcessed != int64(len("content")) {
		t.Errorf("final processed = %d, want %d", lastProcessed, len("content"))
	}
}

func TestNewHasher_UnknownAlgorithm(t *testing.T) {
	_, err := NewHasher(HasherOptions{Algorithms: []string{"no_such_algorithm"}})
	if err == nil {
		t.Error("expected error for an unregistered algorithm")
	}
}

func TestNewHasher_SubsetOfAlgorithms(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt": "hello",
		"b.txt": "world",
	})

	res := hashTree(t, root, HasherOptions{Algorithms: []string{memory.AlgSHA256}})
	if res.Len() != 1 {
		t.Fatalf("result has %d digests, want 1", res.Len())
	}
	if got := res.Hex(memory.AlgSHA256); got != knownSHA256 {
		t.Errorf("sha256 = %s, want %s", got, knownSHA256)
	}
}

func TestResult_Accessors(t *testing.T) {
	root := writeTree(t, map[string]string{"f.txt": "content"})
	res := hashTree(t, root, HasherOptions{Algorithms: []string{memory.AlgSHA256, memory.AlgSHA512}})

	if res.Hex("absent") != "" {
		t.Error("Hex() for an absent algorithm should be empty")
	}
	if _, ok := res.Digest("absent"); ok {
		t.Error("Digest() for an absent algorithm should report false")
	}

	names := res.Algorithms()
	if len(names) != 2 || names[0] != memory.AlgSHA256 || names[1] != memory.AlgSHA512 {
		t.Errorf("Algorithms() = %v, want sorted [sha256 sha512]", names)
	}
}
