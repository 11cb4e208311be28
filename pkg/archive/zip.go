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

// Package archive packages a directory tree into a structure-preserving
// zip container. It has no dependency on digest or signature state and can
// run concurrently with the rest of the pipeline; the only shared input is
// the read-only root path.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrWrite indicates the archive could not be produced. Fatal; the run
// never leaves a partial archive behind.
var ErrWrite = errors.New("failed to write archive")

// ZipTree packages every entry under root, including empty directories,
// into a zip file at dest. Entry names use forward slashes and are relative
// to root; the root entry itself is not a member. The archive is written to
// a .part file and renamed into place only on success.
func ZipTree(root, dest string) error {
	tmp := dest + ".part"

	if err := writeZip(root, tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func writeZip(root, dest string) error {
	zipFile, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Symlinks are skipped, matching the inventory walk: following them
		// would store target bytes under the link's name and a directory
		// link would abort the copy.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}

		header.Name = strings.ReplaceAll(rel, string(filepath.Separator), "/")
		header.Method = zip.Deflate
		if info.IsDir() {
			header.Name += "/"
		}

		w, err := zipWriter.CreateHeader(header)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		_ = zipWriter.Close()
		return err
	}
	if err := zipWriter.Close(); err != nil {
		return err
	}
	return zipFile.Sync()
}
