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

package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/APTlantis/Athenaeum/cmd/athenaeum/cli/options"
	"github.com/APTlantis/Athenaeum/pkg/fingerprint"
	"github.com/APTlantis/Athenaeum/pkg/inventory"
	"github.com/APTlantis/Athenaeum/pkg/manifest"
	"github.com/APTlantis/Athenaeum/pkg/signing/gpg"
	"github.com/APTlantis/Athenaeum/pkg/utils"
)

// Verify builds the verify subcommand.
func Verify() *cobra.Command {
	o := &options.VerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify MANIFEST",
		Short: "Verify a manifest's signature, optionally re-hashing the tree.",
		Long: `Verify parses MANIFEST, rebuilds the signed digest block, and checks the
embedded signature against the supplied public key. With --dir the
directory is re-hashed and every digest is compared against the manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := args[0]
			if err := utils.ValidateFileExists("manifest", manifestPath); err != nil {
				return err
			}
			if err := utils.ValidateFileExists("public key", o.PublicKeyPath); err != nil {
				return err
			}

			doc, err := manifest.ParseFile(manifestPath)
			if err != nil {
				return err
			}

			publicKey, err := os.ReadFile(o.PublicKeyPath)
			if err != nil {
				return fmt.Errorf("read public key: %w", err)
			}

			if err := gpg.VerifyDetached(string(publicKey), doc.SignableBody(), doc.Signature.GPGSignature); err != nil {
				color.Red("✗ signature verification failed")
				return err
			}
			color.Green("✓ signature valid (key %s)", doc.Signature.GPGKeyID)

			if o.DirPath == "" {
				return nil
			}
			return verifyDigests(cmd, o, doc)
		},
	}

	o.AddFlags(cmd)
	return cmd
}

// verifyDigests re-hashes the tree and compares every algorithm present in
// the manifest against the freshly computed value.
func verifyDigests(cmd *cobra.Command, o *options.VerifyOptions, doc *manifest.Document) error {
	if err := utils.ValidateDirExists("directory", o.DirPath); err != nil {
		return err
	}

	logger := ro.NewLogger(o.Verbose)

	inv, err := inventory.Capture(o.DirPath, logger)
	if err != nil {
		return err
	}

	hasher, err := fingerprint.NewHasher(fingerprint.HasherOptions{Logger: logger})
	if err != nil {
		return err
	}
	res, err := hasher.HashTree(cmd.Context(), inv)
	if err != nil {
		return err
	}

	mismatches := 0
	for alg, want := range doc.Hashes {
		got := res.Hex(alg)
		if got == "" {
			color.Yellow("? %s: not computed", alg)
			continue
		}
		if got != want {
			color.Red("✗ %s mismatch", alg)
			mismatches++
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d digest(s) do not match the manifest", mismatches)
	}
	color.Green("✓ all %d digests match", len(doc.Hashes))
	return nil
}
