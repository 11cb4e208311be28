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

// VerifyOptions are the flags of the verify subcommand.
type VerifyOptions struct {
	// PublicKeyPath points at the armored public key the signature is
	// checked against. Required.
	PublicKeyPath string
	// DirPath, when set, re-hashes the directory and compares every digest
	// against the manifest.
	DirPath string
	// Verbose enables per-file debug logging during a re-hash.
	Verbose bool
}

var _ Interface = (*VerifyOptions)(nil)

// AddFlags adds the verify flags to cmd.
func (o *VerifyOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.PublicKeyPath, "key", "",
		"path to the armored GPG public key to verify against (required)")
	_ = cmd.MarkFlagFilename("key")
	_ = cmd.MarkFlagRequired("key")

	cmd.Flags().StringVar(&o.DirPath, "dir", "",
		"re-hash this directory and compare against the manifest")

	cmd.Flags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"enable verbose per-file output")
}
