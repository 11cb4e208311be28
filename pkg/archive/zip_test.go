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

package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "top.txt"), []byte("top content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "inner.txt"), []byte("inner content"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func readEntry(t *testing.T, f *zip.File) string {
	t.Helper()
	rc, err := f.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestZipTree_RoundTrip(t *testing.T) {
	root := writeTree(t)
	dest := filepath.Join(t.TempDir(), "tree.zip")

	if err := ZipTree(root, dest); err != nil {
		t.Fatalf("ZipTree() error = %v", err)
	}

	if _, err := os.Stat(dest + ".part"); !os.IsNotExist(err) {
		t.Error("temporary .part file left behind")
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer r.Close()

	entries := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		entries[f.Name] = f
	}

	for name, want := range map[string]string{
		"top.txt":       "top content",
		"sub/inner.txt": "inner content",
	} {
		f, ok := entries[name]
		if !ok {
			t.Fatalf("entry %q missing; have %v", name, names(r.File))
		}
		if got := readEntry(t, f); got != want {
			t.Errorf("entry %q content = %q, want %q", name, got, want)
		}
	}
}

func TestZipTree_PreservesEmptyDirectories(t *testing.T) {
	root := writeTree(t)
	dest := filepath.Join(t.TempDir(), "tree.zip")

	if err := ZipTree(root, dest); err != nil {
		t.Fatalf("ZipTree() error = %v", err)
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	found := false
	for _, f := range r.File {
		if f.Name == "empty/" {
			found = true
			if !f.FileInfo().IsDir() {
				t.Error("empty/ entry is not a directory")
			}
		}
	}
	if !found {
		t.Errorf("empty directory missing from archive; have %v", names(r.File))
	}
}

func TestZipTree_NoRootEntryNoBackslashes(t *testing.T) {
	root := writeTree(t)
	dest := filepath.Join(t.TempDir(), "tree.zip")

	if err := ZipTree(root, dest); err != nil {
		t.Fatalf("ZipTree() error = %v", err)
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == "." || f.Name == "./" || f.Name == "" {
			t.Errorf("root entry present as %q", f.Name)
		}
		if strings.Contains(f.Name, `\`) {
			t.Errorf("entry %q contains a backslash", f.Name)
		}
		if strings.HasPrefix(f.Name, "/") {
			t.Errorf("entry %q is absolute", f.Name)
		}
	}
}

func TestZipTree_SkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	root := writeTree(t)
	if err := os.Symlink(filepath.Join(root, "top.txt"), filepath.Join(root, "filelink.txt")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "dirlink")); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(t.TempDir(), "tree.zip")

	if err := ZipTree(root, dest); err != nil {
		t.Fatalf("ZipTree() error = %v", err)
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == "filelink.txt" || f.Name == "dirlink" || f.Name == "dirlink/" {
			t.Errorf("symlink %q archived", f.Name)
		}
		if strings.HasPrefix(f.Name, "dirlink/") {
			t.Errorf("entry %q reached through a directory symlink", f.Name)
		}
	}
}

func TestZipTree_MissingRoot(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "tree.zip")

	err := ZipTree(filepath.Join(t.TempDir(), "nope"), dest)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("ZipTree() error = %v, want ErrWrite", err)
	}
	if _, statErr := os.Stat(dest + ".part"); !os.IsNotExist(statErr) {
		t.Error("failed run left a .part file behind")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("failed run left an archive behind")
	}
}

func TestZipTree_UnwritableDest(t *testing.T) {
	root := writeTree(t)

	err := ZipTree(root, filepath.Join(t.TempDir(), "missing", "tree.zip"))
	if !errors.Is(err, ErrWrite) {
		t.Errorf("ZipTree() error = %v, want ErrWrite", err)
	}
}

func names(files []*zip.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
