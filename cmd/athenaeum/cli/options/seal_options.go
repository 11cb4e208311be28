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

package options

import "github.com/spf13/cobra"

// SealOptions are the flags of the seal subcommand.
type SealOptions struct {
	// Verbose enables per-file debug logging.
	Verbose bool
	// Progress enables periodic progress reporting during hashing.
	Progress bool
	// GPGKeyPath points at armored secret-key material. Empty generates a
	// fresh key for this run.
	GPGKeyPath string
	// SaveKeyPath persists a generated private key for reuse.
	SaveKeyPath string
	// ManifestPath overrides the manifest destination.
	ManifestPath string
	// ArchivePath overrides the archive destination.
	ArchivePath string
}

var _ Interface = (*SealOptions)(nil)

// AddFlags adds the seal flags to cmd.
func (o *SealOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"enable verbose per-file output")

	cmd.Flags().BoolVar(&o.Progress, "progress", true,
		"show progress while hashing large trees")

	cmd.Flags().StringVar(&o.GPGKeyPath, "gpg-key", "",
		"path to an armored GPG private key file (a new key is generated when omitted)")
	_ = cmd.MarkFlagFilename("gpg-key")

	cmd.Flags().StringVar(&o.SaveKeyPath, "save-key", "",
		"write a generated private key to this path for reuse in later runs")

	cmd.Flags().StringVar(&o.ManifestPath, "manifest", "",
		"manifest output path (defaults to <dir>.toml)")

	cmd.Flags().StringVar(&o.ArchivePath, "archive", "",
		"archive output path (defaults to <dir>.zip)")
}
