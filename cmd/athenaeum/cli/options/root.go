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

import (
	"github.com/spf13/cobra"

	"github.com/APTlantis/Athenaeum/pkg/logging"
)

// RootOptions are the global flags available on every subcommand.
type RootOptions struct {
	// LogLevel sets the minimum log level (debug, info, warn, error, silent).
	LogLevel string
	// LogFormat sets the log output format (text, json).
	LogFormat string
}

// ValidLogLevels lists the accepted log level strings.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "silent"}

// ValidLogFormats lists the accepted log format strings.
var ValidLogFormats = []string{"text", "json"}

var _ Interface = (*RootOptions)(nil)

// AddFlags adds the root-level persistent flags to cmd.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info",
		"set the minimum log level (debug, info, warn, error, silent)")

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json)")
}

// NewLogger creates a logger from the root options. When verbose is true
// the level is forced down to debug.
func (o *RootOptions) NewLogger(verbose bool) logging.Logger {
	level := logging.ParseLogLevel(o.LogLevel)
	if verbose && level > logging.LevelDebug {
		level = logging.LevelDebug
	}
	return logging.NewLoggerWithOptions(logging.LoggerOptions{
		Level:  level,
		Format: logging.ParseLogFormat(o.LogFormat),
	})
}
