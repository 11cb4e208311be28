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
	"bytes"
	"testing"

	hashengines "github.com/APTlantis/Athenaeum/pkg/hashing/engines"
)

// knownSHA256 is the SHA-256 of "helloworld".
const knownSHA256 = "936a185caaa266bb9cbe981e9e05cb78cd732b0b3280eb944412bb6f8f8f07af"

func TestTreeAlgorithms_AllRegistered(t *testing.T) {
	algorithms := TreeAlgorithms()
	if len(algorithms) != 11 {
		t.Fatalf("TreeAlgorithms() has %d entries, want 11", len(algorithms))
	}
	for _, name := range algorithms {
		if !hashengines.IsSupported(name) {
			t.Errorf("algorithm %q is not registered", name)
		}
	}
}

func TestEngines_DigestSizeMatchesOutput(t *testing.T) {
	for _, name := range TreeAlgorithms() {
		engine, err := hashengines.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		engine.Update([]byte("sample input"))
		d, err := engine.Compute()
		if err != nil {
			t.Fatalf("%s: Compute() error = %v", name, err)
		}
		if d.Size() != engine.DigestSize() {
			t.Errorf("%s: digest size %d does not match DigestSize() %d",
				name, d.Size(), engine.DigestSize())
		}
		if d.Algorithm() != name {
			t.Errorf("%s: digest algorithm %q does not match engine name", name, d.Algorithm())
		}
	}
}

// Feeding a stream in chunks must produce the same digest as feeding it in
// one write. This is what the chunked file pass depends on, and it is where
// an adapter for a one-shot API would break.
func TestEngines_IncrementalMatchesOneShot(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefghij"), 1000)

	for _, name := range TreeAlgorithms() {
		oneShot, err := hashengines.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		oneShot.Update(data)
		want, err := oneShot.Compute()
		if err != nil {
			t.Fatalf("%s: Compute() error = %v", name, err)
		}

		chunked, err := hashengines.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		for i := 0; i < len(data); i += 137 {
			end := i + 137
			if end > len(data) {
				end = len(data)
			}
			chunked.Update(data[i:end])
		}
		got, err := chunked.Compute()
		if err != nil {
			t.Fatalf("%s: Compute() error = %v", name, err)
		}

		if !got.Equal(want) {
			t.Errorf("%s: chunked digest %s differs from one-shot %s", name, got.Hex(), want.Hex())
		}
	}
}

func TestEngines_Deterministic(t *testing.T) {
	for _, name := range TreeAlgorithms() {
		first, err := hashengines.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		second, err := hashengines.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}

		first.Update([]byte("determinism check"))
		second.Update([]byte("determinism check"))

		a, err := first.Compute()
		if err != nil {
			t.Fatalf("%s: Compute() error = %v", name, err)
		}
		b, err := second.Compute()
		if err != nil {
			t.Fatalf("%s: Compute() error = %v", name, err)
		}
		if !a.Equal(b) {
			t.Errorf("%s: two engines over identical input disagree", name)
		}
	}
}

func TestEngines_ResetClearsState(t *testing.T) {
	for _, name := range TreeAlgorithms() {
		engine, err := hashengines.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}

		engine.Update([]byte("stale bytes"))
		engine.Reset(nil)
		engine.Update([]byte("fresh"))
		afterReset, err := engine.Compute()
		if err != nil {
			t.Fatalf("%s: Compute() error = %v", name, err)
		}

		fresh, err := hashengines.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		fresh.Update([]byte("fresh"))
		want, err := fresh.Compute()
		if err != nil {
			t.Fatalf("%s: Compute() error = %v", name, err)
		}

		if !afterReset.Equal(want) {
			t.Errorf("%s: Reset did not clear prior state", name)
		}
	}
}

func TestSHA256_KnownVector(t *testing.T) {
	engine, err := hashengines.Create(AlgSHA256)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	engine.Update([]byte("hello"))
	engine.Update([]byte("world"))
	d, err := engine.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if d.Hex() != knownSHA256 {
		t.Errorf("sha256(helloworld) = %s, want %s", d.Hex(), knownSHA256)
	}
}

// xxh3 regression: the digest must be a function of the streamed bytes, not
// a placeholder. Two different inputs must produce two different outputs.
func TestXXH3_ReflectsInput(t *testing.T) {
	a, err := hashengines.Create(AlgXXH3)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b, err := hashengines.Create(AlgXXH3)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	a.Update([]byte("input one"))
	b.Update([]byte("input two"))

	da, err := a.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	db, err := b.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if da.Equal(db) {
		t.Error("xxh3 produced identical digests for different inputs")
	}
	if da.Size() != 8 {
		t.Errorf("xxh3 digest size = %d, want 8", da.Size())
	}
}

// K12 state is write-then-read; Compute must leave the engine able to keep
// absorbing, and the continued stream must match a fresh engine fed the full
// input at once.
func TestK12_ComputeDoesNotConsumeState(t *testing.T) {
	engine := NewK12Engine(nil)
	engine.Update([]byte("first half"))

	mid, err := engine.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	engine.Update([]byte(" second half"))
	full, err := engine.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	fresh := NewK12Engine(nil)
	fresh.Update([]byte("first half second half"))
	want, err := fresh.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if !full.Equal(want) {
		t.Errorf("continued stream digest %s differs from one-shot %s", full.Hex(), want.Hex())
	}
	if mid.Equal(full) {
		t.Error("digest did not change after absorbing more input")
	}
}

func TestK12_InitialData(t *testing.T) {
	seeded := NewK12Engine([]byte("seed"))
	a, err := seeded.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	manual := NewK12Engine(nil)
	manual.Update([]byte("seed"))
	b, err := manual.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if !a.Equal(b) {
		t.Error("initial data and equivalent Update produced different digests")
	}
}

func TestGenericEngine_ResetWithSeed(t *testing.T) {
	engine, err := hashengines.Create(AlgSHA256)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	engine.Update([]byte("discarded"))
	engine.Reset([]byte("hello"))
	engine.Update([]byte("world"))

	d, err := engine.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if d.Hex() != knownSHA256 {
		t.Errorf("seeded reset digest = %s, want %s", d.Hex(), knownSHA256)
	}
}
