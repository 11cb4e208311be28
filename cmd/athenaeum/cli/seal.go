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
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/APTlantis/Athenaeum/cmd/athenaeum/cli/options"
	"github.com/APTlantis/Athenaeum/pkg/seal"
	"github.com/APTlantis/Athenaeum/pkg/utils"
)

// Seal builds the seal subcommand.
func Seal() *cobra.Command {
	o := &options.SealOptions{}

	cmd := &cobra.Command{
		Use:   "seal DIR",
		Short: "Fingerprint, sign and archive a directory.",
		Long: `Seal walks DIR, streams every regular file once through the full digest
set, signs the digest record, writes DIR.toml and packages the tree into
DIR.zip. Supply --gpg-key to sign with an existing key; otherwise a fresh
key is generated for this run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if err := utils.ValidateDirExists("directory", root); err != nil {
				return err
			}
			if o.GPGKeyPath != "" {
				if err := utils.ValidateFileExists("GPG key", o.GPGKeyPath); err != nil {
					return err
				}
			}

			logger := ro.NewLogger(o.Verbose)

			// The spinner and the progress log lines would fight over the
			// terminal; only spin when progress reporting is off.
			var spin *spinner.Spinner
			if !o.Progress && !o.Verbose {
				spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
					spinner.WithWriter(os.Stderr))
				spin.Suffix = fmt.Sprintf(" sealing %s...", root)
				spin.Start()
			}

			res, err := seal.Run(cmd.Context(), seal.Options{
				RootPath:     root,
				Progress:     o.Progress,
				KeyPath:      o.GPGKeyPath,
				SaveKeyPath:  o.SaveKeyPath,
				ManifestPath: o.ManifestPath,
				ArchivePath:  o.ArchivePath,
			}, logger)

			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				color.Red("✗ seal failed: %v", err)
				return err
			}

			color.Green("✓ sealed %s in %s", root, res.Duration.Round(time.Millisecond))
			fmt.Printf("  manifest:  %s\n", res.ManifestPath)
			fmt.Printf("  archive:   %s\n", res.ArchivePath)
			fmt.Printf("  key id:    %s\n", res.KeyID)
			fmt.Printf("  files:     %d (%d bytes)\n", res.Inventory.TotalFiles, res.Inventory.TotalSize)
			return nil
		},
	}

	o.AddFlags(cmd)
	return cmd
}
