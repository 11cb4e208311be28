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

package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// LogEntry is a single log record handed to a Formatter.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Message   string
	Fields    map[string]interface{}
}

// Formatter renders a LogEntry into bytes, including the trailing newline.
type Formatter interface {
	Format(entry LogEntry) ([]byte, error)
}

// TextFormatter renders entries as human-readable lines.
type TextFormatter struct {
	// TimeFormat is the layout for the timestamp prefix; empty means no
	// timestamp.
	TimeFormat string
	// ShowLevel prefixes each line with the level name.
	ShowLevel bool
}

// Format renders the entry as a text line. Structured fields are appended
// as key=value pairs in sorted key order.
func (f *TextFormatter) Format(entry LogEntry) ([]byte, error) {
	var b strings.Builder

	if f.TimeFormat != "" {
		b.WriteString(entry.Timestamp.Format(f.TimeFormat))
		b.WriteByte(' ')
	}
	if f.ShowLevel {
		fmt.Fprintf(&b, "[%s] ", strings.ToUpper(entry.Level.String()))
	}
	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
		}
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// JSONFormatter renders entries as one JSON object per line.
type JSONFormatter struct {
	// TimeFormat is the layout for the time field; empty means RFC 3339.
	TimeFormat string
}

// Format renders the entry as a JSON line.
func (f *JSONFormatter) Format(entry LogEntry) ([]byte, error) {
	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339
	}

	obj := make(map[string]interface{}, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		obj[k] = v
	}
	obj["time"] = entry.Timestamp.Format(layout)
	obj["level"] = entry.Level.String()
	obj["msg"] = entry.Message

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
