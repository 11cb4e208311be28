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

// Package cli wires the athenaeum commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/APTlantis/Athenaeum/cmd/athenaeum/cli/options"
)

var ro = &options.RootOptions{}

// New builds the root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "athenaeum",
		Short:             "Directory fingerprinting, signing and archiving.",
		Long: `Athenaeum seals a directory: it streams every file once through eleven
digest algorithms, signs the digest record with a GPG key, writes a
deterministic TOML manifest, and packages the tree into a zip archive.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}
	ro.AddFlags(cmd)

	cmd.AddCommand(Seal())
	cmd.AddCommand(Verify())
	return cmd
}
