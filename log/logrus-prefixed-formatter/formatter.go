// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package prefixed implements a logrus.Formatter that renders a line as
// "time [level] prefix: message key=value ..." with ANSI colors unless
// DisableColors is set; it does not detect whether it writes to a terminal.
package prefixed

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultTimestampFormat = time.RFC3339

type colorScheme struct {
	debug, info, warn, errorAndAbove, prefix, timestamp string
}

var (
	// ANSI color codes; reset returns the terminal to its default.
	reset = "\x1b[0m"

	defaultColors = colorScheme{
		debug:         "\x1b[36m", // cyan
		info:          "\x1b[32m", // green
		warn:          "\x1b[33m", // yellow
		errorAndAbove: "\x1b[31m", // red
		prefix:        "\x1b[34m", // blue
		timestamp:     "\x1b[90m", // gray
	}
)

// TextFormatter renders log entries with a bracketed level, an optional
// "prefix:" field pulled from the entry's fields, and the remaining
// fields sorted and appended as key=value pairs.
type TextFormatter struct {
	// FullTimestamp prints TimestampFormat instead of an elapsed-time
	// counter since the formatter was created.
	FullTimestamp bool

	// TimestampFormat is a time.Format layout; defaults to time.RFC3339.
	TimestampFormat string

	// DisableColors forces plain text output; without it every line
	// carries ANSI color codes.
	DisableColors bool

	// DisableTimestamp omits the timestamp field entirely.
	DisableTimestamp bool

	once       sync.Once
	startTime  time.Time
}

// Format implements logrus.Formatter.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	f.once.Do(func() { f.startTime = time.Now() })

	var buf *bytes.Buffer
	if entry.Buffer != nil {
		buf = entry.Buffer
	} else {
		buf = &bytes.Buffer{}
	}

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	colors := f.DisableColors
	prefix, fields := extractPrefix(entry.Data)
	keys := sortedKeys(fields)

	if !f.DisableTimestamp {
		f.appendTimestamp(buf, entry.Time, timestampFormat, colors)
	}
	f.appendLevel(buf, entry.Level, colors)
	if prefix != "" {
		f.appendValue(buf, defaultColors.prefix, colors, prefix+":")
	}
	fmt.Fprint(buf, entry.Message)

	for _, k := range keys {
		fmt.Fprintf(buf, " %s=%v", k, fields[k])
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (f *TextFormatter) appendTimestamp(buf *bytes.Buffer, t time.Time, layout string, plain bool) {
	var ts string
	if f.FullTimestamp {
		ts = t.Format(layout)
	} else {
		ts = fmt.Sprintf("[%04d]", int(time.Since(f.startTime)/time.Second))
	}
	f.appendValue(buf, defaultColors.timestamp, plain, ts+" ")
}

func (f *TextFormatter) appendLevel(buf *bytes.Buffer, level logrus.Level, plain bool) {
	color := levelColor(level)
	f.appendValue(buf, color, plain, "["+strings.ToUpper(level.String())+"] ")
}

func (f *TextFormatter) appendValue(buf *bytes.Buffer, color string, plain bool, s string) {
	if plain || color == "" {
		buf.WriteString(s)
		return
	}
	buf.WriteString(color)
	buf.WriteString(s)
	buf.WriteString(reset)
}

func levelColor(level logrus.Level) string {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return defaultColors.debug
	case logrus.InfoLevel:
		return defaultColors.info
	case logrus.WarnLevel:
		return defaultColors.warn
	default:
		return defaultColors.errorAndAbove
	}
}

// extractPrefix pulls the conventional "prefix" field out of the entry's
// data, leaving the rest untouched.
func extractPrefix(data logrus.Fields) (string, logrus.Fields) {
	rest := make(logrus.Fields, len(data))
	var prefix string
	for k, v := range data {
		if k == "prefix" {
			if s, ok := v.(string); ok {
				prefix = s
				continue
			}
		}
		rest[k] = v
	}
	return prefix, rest
}

func sortedKeys(fields logrus.Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
