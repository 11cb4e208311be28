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

// Package options defines the command-line options and flags for the
// athenaeum CLI.
package options

import "github.com/spf13/cobra"

// Interface is implemented by every option group that contributes flags to
// a command.
type Interface interface {
	// AddFlags adds this option group's flags to cmd.
	AddFlags(cmd *cobra.Command)
}
