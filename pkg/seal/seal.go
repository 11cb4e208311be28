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

// Package seal orchestrates the full pipeline: inventory, digest pass,
// signing identity, manifest, and archive.
//
// The digest chain is sequential by design; the archiver shares nothing
// with it beyond the read-only root path, so it runs concurrently and is
// joined before the manifest is written. Both artifacts are written
// atomically, so a failed run never leaves output that looks complete.
package seal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/APTlantis/Athenaeum/pkg/archive"
	"github.com/APTlantis/Athenaeum/pkg/fingerprint"
	"github.com/APTlantis/Athenaeum/pkg/inventory"
	"github.com/APTlantis/Athenaeum/pkg/logging"
	"github.com/APTlantis/Athenaeum/pkg/manifest"
	"github.com/APTlantis/Athenaeum/pkg/signing/gpg"
	"github.com/APTlantis/Athenaeum/pkg/tracing"
)

// Options is the immutable configuration record for one run. It is
// assembled by the caller (typically the CLI layer) and passed in whole;
// the pipeline keeps no global state.
type Options struct {
	// RootPath is the directory to seal. Required.
	RootPath string
	// Progress enables periodic progress logging during the digest pass.
	Progress bool
	// KeyPath optionally points at armored secret-key material. When empty
	// a fresh identity is generated for this run.
	KeyPath string
	// SaveKeyPath optionally persists a generated private key, so later
	// unattended runs can re-supply the same identity via KeyPath.
	SaveKeyPath string
	// ManifestPath overrides the manifest destination. Empty means
	// "<root>.toml".
	ManifestPath string
	// ArchivePath overrides the archive destination. Empty means
	// "<root>.zip".
	ArchivePath string
	// ChunkSize overrides the digest pass read buffer size.
	ChunkSize int
	// ProgressInterval overrides how often progress is reported.
	ProgressInterval time.Duration
}

// ManifestDest returns the effective manifest path.
func (o Options) ManifestDest() string {
	if o.ManifestPath != "" {
		return o.ManifestPath
	}
	return filepath.Clean(o.RootPath) + ".toml"
}

// ArchiveDest returns the effective archive path.
func (o Options) ArchiveDest() string {
	if o.ArchivePath != "" {
		return o.ArchivePath
	}
	return filepath.Clean(o.RootPath) + ".zip"
}

// Result reports what a successful run produced.
type Result struct {
	ManifestPath string
	ArchivePath  string
	KeyID        string
	PublicKey    string
	Digests      fingerprint.Result
	Inventory    *inventory.Inventory
	Duration     time.Duration
}

// Run executes the pipeline. Fatal errors name the phase that failed; the
// only recovered errors are per-entry walk failures inside the inventory
// phase.
func Run(ctx context.Context, opts Options, logger logging.Logger) (*Result, error) {
	logger = logging.EnsureLogger(logger)
	started := time.Now()

	logger.Info("sealing directory %s", opts.RootPath)

	var inv *inventory.Inventory
	err := tracing.Run(ctx, "seal.inventory", map[string]interface{}{"root": opts.RootPath}, func(context.Context) error {
		var err error
		inv, err = inventory.Capture(opts.RootPath, logger)
		return err
	})
	if err != nil {
		return nil, phaseErr("inventory", err)
	}
	logger.Info("inventory complete: %d files, %d directories, %.2f MB",
		inv.TotalFiles, inv.TotalDirs, mb(inv.TotalSize))

	// The archiver only reads the tree; start it now and join it before
	// the manifest is written.
	archiveDest := opts.ArchiveDest()
	archiveDone := make(chan error, 1)
	go func() {
		archiveDone <- tracing.Run(ctx, "seal.archive", map[string]interface{}{"dest": archiveDest}, func(context.Context) error {
			return archive.ZipTree(opts.RootPath, archiveDest)
		})
	}()

	res, err := runDigestPass(ctx, opts, inv, logger)
	if err != nil {
		<-archiveDone
		removeArtifact(archiveDest, logger)
		return nil, phaseErr("digest", err)
	}

	identity, err := resolveIdentity(opts, logger)
	if err != nil {
		<-archiveDone
		removeArtifact(archiveDest, logger)
		return nil, phaseErr("signing identity", err)
	}

	name := inventory.DirName(opts.RootPath)
	m := manifest.New(name, inv, res, identity.KeyID(), "", time.Now())

	var signature string
	err = tracing.Run(ctx, "seal.sign", nil, func(context.Context) error {
		var err error
		signature, err = identity.Sign(m.SignableBody())
		return err
	})
	if err != nil {
		<-archiveDone
		removeArtifact(archiveDest, logger)
		return nil, phaseErr("sign", err)
	}
	m.Signature = signature
	logger.Info("digest block signed with key %s", identity.KeyID())

	// Join the archiver before the terminal artifact is written.
	if err := <-archiveDone; err != nil {
		return nil, phaseErr("archive", err)
	}
	logger.Info("archive written to %s", archiveDest)

	manifestDest := opts.ManifestDest()
	err = tracing.Run(ctx, "seal.manifest", map[string]interface{}{"dest": manifestDest}, func(context.Context) error {
		return m.WriteFile(manifestDest)
	})
	if err != nil {
		removeArtifact(archiveDest, logger)
		return nil, phaseErr("manifest", err)
	}
	logger.Info("manifest written to %s", manifestDest)

	publicKey, err := identity.ArmoredPublicKey()
	if err != nil {
		// The artifacts are already valid; a failed export only means the
		// caller cannot print the public block.
		logger.Warn("could not export public key: %v", err)
	}

	return &Result{
		ManifestPath: manifestDest,
		ArchivePath:  archiveDest,
		KeyID:        identity.KeyID(),
		PublicKey:    publicKey,
		Digests:      res,
		Inventory:    inv,
		Duration:     time.Since(started),
	}, nil
}

func runDigestPass(ctx context.Context, opts Options, inv *inventory.Inventory, logger logging.Logger) (fingerprint.Result, error) {
	var progress fingerprint.ProgressFunc
	if opts.Progress {
		progress = func(percent float64, processed, total int64) {
			logger.Info("hashing progress: %.1f%% complete (%.2f MB / %.2f MB)",
				percent, mb(processed), mb(total))
		}
	}

	hasher, err := fingerprint.NewHasher(fingerprint.HasherOptions{
		ChunkSize:        opts.ChunkSize,
		ProgressInterval: opts.ProgressInterval,
		Progress:         progress,
		Logger:           logger,
	})
	if err != nil {
		return fingerprint.Result{}, err
	}

	var res fingerprint.Result
	err = tracing.Run(ctx, "seal.digest", map[string]interface{}{"files": inv.TotalFiles, "bytes": inv.TotalSize}, func(ctx context.Context) error {
		var err error
		res, err = hasher.HashTree(ctx, inv)
		return err
	})
	return res, err
}

func resolveIdentity(opts Options, logger logging.Logger) (*gpg.Identity, error) {
	if opts.KeyPath != "" {
		logger.Debug("loading signing key from %s", opts.KeyPath)
		return gpg.LoadIdentity(opts.KeyPath)
	}

	logger.Info("no signing key supplied, generating a new one")
	identity, err := gpg.GenerateHostIdentity()
	if err != nil {
		return nil, err
	}

	if opts.SaveKeyPath != "" {
		if err := identity.SavePrivateKey(opts.SaveKeyPath); err != nil {
			return nil, fmt.Errorf("save generated key to %s: %w", opts.SaveKeyPath, err)
		}
		logger.Info("generated private key saved to %s", opts.SaveKeyPath)
	}
	return identity, nil
}

func phaseErr(phase string, err error) error {
	return fmt.Errorf("%s phase: %w", phase, err)
}

// removeArtifact deletes an already produced artifact after a later phase
// failed, so the run leaves nothing that looks complete.
func removeArtifact(path string, logger logging.Logger) {
	if err := removeIfExists(path); err != nil {
		logger.Warn("could not remove %s after failed run: %v", path, err)
	}
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func mb(n int64) float64 {
	return float64(n) / (1024 * 1024)
}
