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

// Package inventory walks a directory tree and produces an ordered,
// deterministic list of file records.
//
// Records are sorted by relative path before being returned, so the digest
// pass sees the same order regardless of how the filesystem enumerates
// entries. Per-entry failures are logged and skipped; only a missing or
// inaccessible root fails the capture.
package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/APTlantis/Athenaeum/pkg/logging"
)

// ErrRootNotFound indicates the root path does not exist or cannot be
// accessed. This is the only fatal condition during capture.
var ErrRootNotFound = errors.New("root directory not found")

// FileRecord describes one entry of the tree. Immutable once captured.
type FileRecord struct {
	// Path is the entry's path on the local filesystem.
	Path string
	// RelPath is the path relative to the root, with forward slashes.
	// Unique within a capture.
	RelPath string
	// Size is the entry's size in bytes (zero for directories).
	Size int64
	// ModTime is the entry's modification time.
	ModTime time.Time
	// IsDir reports whether the entry is a directory.
	IsDir bool
}

// Inventory is the result of one capture: every record of the tree in
// sorted relative-path order, plus aggregates. Never mutated after the walk
// completes.
type Inventory struct {
	RootDir    string
	Records    []FileRecord
	TotalFiles int
	TotalDirs  int
	TotalSize  int64
	CapturedAt time.Time
}

// RegularFiles returns the subset of records that are regular files, in the
// same sorted order as Records.
func (inv *Inventory) RegularFiles() []FileRecord {
	files := make([]FileRecord, 0, inv.TotalFiles)
	for _, rec := range inv.Records {
		if !rec.IsDir {
			files = append(files, rec)
		}
	}
	return files
}

// Capture walks root and returns its inventory.
//
// Symbolic links are skipped: following them would admit cycles and pull
// content from outside the tree into the fingerprint. Entries whose
// metadata cannot be read are logged and skipped; the walk continues.
func Capture(root string, logger logging.Logger) (*Inventory, error) {
	logger = logging.EnsureLogger(logger)

	rootInfo, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRootNotFound, root, err)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	inv := &Inventory{
		RootDir:    root,
		CapturedAt: time.Now(),
	}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("%w: %s: %v", ErrRootNotFound, root, err)
			}
			logger.Warn("skipping inaccessible entry %s: %v", path, err)
			return nil
		}

		if path == root {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			logger.Debug("skipping symlink %s", path)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("skipping entry with unreadable metadata %s: %v", path, err)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			logger.Warn("skipping entry with no relative path %s: %v", path, err)
			return nil
		}

		rec := FileRecord{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			ModTime: info.ModTime(),
			IsDir:   info.IsDir(),
		}
		if !rec.IsDir {
			rec.Size = info.Size()
		}
		inv.Records = append(inv.Records, rec)

		if rec.IsDir {
			inv.TotalDirs++
		} else {
			inv.TotalFiles++
			inv.TotalSize += rec.Size
		}
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}

	// Deterministic order regardless of filesystem enumeration.
	sort.Slice(inv.Records, func(i, j int) bool {
		return inv.Records[i].RelPath < inv.Records[j].RelPath
	})

	return inv, nil
}

// DirName derives the display name of the tree from its root path. Paths
// ending in a separator or dot fall back to the parent's base name.
func DirName(root string) string {
	base := filepath.Base(root)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		base = filepath.Base(filepath.Dir(root))
	}
	return base
}
