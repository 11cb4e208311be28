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

// Package fingerprint computes the tree-level digest set.
//
// Every regular file of an inventory is read exactly once, in sorted order,
// in fixed-size chunks; each chunk is fed to all accumulators before the
// next chunk is read, so I/O cost is paid once regardless of how many
// algorithms are active. The result is a pure function of the sorted file
// list and each file's bytes.
package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/APTlantis/Athenaeum/pkg/hashing/digests"
	hashengines "github.com/APTlantis/Athenaeum/pkg/hashing/engines"
	"github.com/APTlantis/Athenaeum/pkg/hashing/engines/memory"
	"github.com/APTlantis/Athenaeum/pkg/inventory"
	"github.com/APTlantis/Athenaeum/pkg/logging"
)

// ErrRead indicates a file could not be read during the digest pass. The
// whole run aborts: a fingerprint missing bytes from one file is actively
// misleading, so no partial result is ever produced.
var ErrRead = errors.New("file unreadable during digest pass")

const (
	// DefaultChunkSize is the read buffer size for the streaming pass.
	DefaultChunkSize = 1 << 20

	// DefaultProgressInterval bounds how often progress is reported.
	DefaultProgressInterval = 3 * time.Second
)

// ProgressFunc receives progress updates during the digest pass. percent is
// the share of total known byte volume already processed.
type ProgressFunc func(percent float64, processed, total int64)

// Result maps algorithm names to their final digests. Produced once per
// run; immutable.
type Result struct {
	byAlgorithm map[string]digests.Digest
}

// NewResult builds a Result from already computed digests. The map is
// copied.
func NewResult(byAlgorithm map[string]digests.Digest) Result {
	copied := make(map[string]digests.Digest, len(byAlgorithm))
	for name, d := range byAlgorithm {
		copied[name] = d
	}
	return Result{byAlgorithm: copied}
}

// Digest returns the digest for the named algorithm.
func (r Result) Digest(name string) (digests.Digest, bool) {
	d, ok := r.byAlgorithm[name]
	return d, ok
}

// Hex returns the hex-encoded digest value for the named algorithm, or the
// empty string if the algorithm is not in the result.
func (r Result) Hex(name string) string {
	d, ok := r.byAlgorithm[name]
	if !ok {
		return ""
	}
	return d.Hex()
}

// Algorithms returns the algorithm names in the result, sorted.
func (r Result) Algorithms() []string {
	names := make([]string, 0, len(r.byAlgorithm))
	for name := range r.byAlgorithm {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of digests in the result.
func (r Result) Len() int {
	return len(r.byAlgorithm)
}

// HasherOptions configures a Hasher.
type HasherOptions struct {
	// Algorithms names the registry entries to instantiate. Empty means the
	// full fixed tree set.
	Algorithms []string
	// ChunkSize is the read buffer size. Zero means DefaultChunkSize.
	ChunkSize int
	// ProgressInterval bounds how often Progress is called. Zero means
	// DefaultProgressInterval.
	ProgressInterval time.Duration
	// Progress, if non-nil, receives wall-clock-bounded progress updates.
	Progress ProgressFunc
	// Logger receives per-file debug output.
	Logger logging.Logger
}

// Hasher streams file content into a set of digest engines.
type Hasher struct {
	engines  []hashengines.StreamingHashEngine
	chunk    int
	interval time.Duration
	progress ProgressFunc
	logger   logging.Logger
}

// NewHasher creates a Hasher with one engine per configured algorithm.
func NewHasher(opts HasherOptions) (*Hasher, error) {
	algorithms := opts.Algorithms
	if len(algorithms) == 0 {
		algorithms = memory.TreeAlgorithms()
	}

	engines := make([]hashengines.StreamingHashEngine, 0, len(algorithms))
	for _, name := range algorithms {
		engine, err := hashengines.Create(name)
		if err != nil {
			return nil, err
		}
		engines = append(engines, engine)
	}

	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	return &Hasher{
		engines:  engines,
		chunk:    chunk,
		interval: interval,
		progress: opts.Progress,
		logger:   logging.EnsureLogger(opts.Logger),
	}, nil
}

// HashTree streams every regular file of the inventory, in its sorted
// order, through all engines and returns the finalized digest set.
//
// The context is checked between files and between chunk reads; a canceled
// context aborts the pass. Any open or read failure aborts with ErrRead.
func (h *Hasher) HashTree(ctx context.Context, inv *inventory.Inventory) (Result, error) {
	for _, engine := range h.engines {
		engine.Reset(nil)
	}

	var processed int64
	lastReport := time.Now()
	buf := make([]byte, h.chunk)

	for _, rec := range inv.RegularFiles() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		h.logger.Debug("hashing %s (%d bytes)", rec.RelPath, rec.Size)

		n, err := h.hashFile(ctx, rec.Path, buf, processed, inv.TotalSize, &lastReport)
		processed += n
		if err != nil {
			return Result{}, err
		}
	}

	if h.progress != nil {
		h.progress(100, processed, inv.TotalSize)
	}

	byAlgorithm := make(map[string]digests.Digest, len(h.engines))
	for _, engine := range h.engines {
		d, err := engine.Compute()
		if err != nil {
			return Result{}, fmt.Errorf("finalize %s: %w", engine.DigestName(), err)
		}
		byAlgorithm[engine.DigestName()] = d
	}
	return Result{byAlgorithm: byAlgorithm}, nil
}

// hashFile reads one file in chunks, fanning each chunk out to every engine
// before the next read. The file handle is released on every exit path.
func (h *Hasher) hashFile(ctx context.Context, path string, buf []byte, processedBefore, total int64, lastReport *time.Time) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", ErrRead, path, err)
	}
	defer f.Close()

	var read int64
	for {
		if err := ctx.Err(); err != nil {
			return read, err
		}

		n, err := f.Read(buf)
		if n > 0 {
			for _, engine := range h.engines {
				engine.Update(buf[:n])
			}
			read += int64(n)

			if h.progress != nil && time.Since(*lastReport) >= h.interval {
				h.report(processedBefore+read, total)
				*lastReport = time.Now()
			}
		}
		if err != nil {
			if err == io.EOF {
				return read, nil
			}
			return read, fmt.Errorf("%w: read %s: %v", ErrRead, path, err)
		}
	}
}

func (h *Hasher) report(processed, total int64) {
	percent := 100.0
	if total > 0 {
		percent = float64(processed) / float64(total) * 100
	}
	h.progress(percent, processed, total)
}
