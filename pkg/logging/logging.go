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

// Package logging provides the structured, leveled logging interface used
// throughout the pipeline. It defines a Logger interface that any backend
// can implement and a Formatter interface for output formats; the built-in
// DefaultLogger supports text and JSON.
package logging

import "strings"

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LevelDebug is the most verbose level; the seal pipeline logs per-file
	// progress here.
	LevelDebug LogLevel = iota
	// LevelInfo is used for phase-level informational messages.
	LevelInfo
	// LevelWarn is used for recovered problems, such as skipped walk entries.
	LevelWarn
	// LevelError is used for failures.
	LevelError
	// LevelSilent disables all output.
	LevelSilent
)

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel, defaulting to LevelInfo
// for unrecognized input.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "silent", "none", "off":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// LogFormat selects the output format of the default logger.
type LogFormat int

const (
	// FormatText outputs human-readable text logs.
	FormatText LogFormat = iota
	// FormatJSON outputs one JSON object per line.
	FormatJSON
)

// String returns the string representation of a log format.
func (f LogFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseLogFormat parses a string into a LogFormat, defaulting to FormatText.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger is the leveled logging interface the pipeline components accept.
type Logger interface {
	// Debug logs at debug level with printf-style formatting.
	Debug(format string, args ...interface{})
	// Info logs at info level with printf-style formatting.
	Info(format string, args ...interface{})
	// Warn logs at warn level with printf-style formatting.
	Warn(format string, args ...interface{})
	// Error logs at error level with printf-style formatting.
	Error(format string, args ...interface{})

	// GetLevel returns the current minimum log level.
	GetLevel() LogLevel

	// WithField returns a new Logger with the key-value pair attached to
	// every entry.
	WithField(key string, value interface{}) Logger
}

// Default returns an info-level text logger.
func Default() Logger {
	return NewLogger(false)
}

// EnsureLogger returns l if non-nil, otherwise a default logger. Components
// use this so a nil logger never has to be checked at call sites.
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}
