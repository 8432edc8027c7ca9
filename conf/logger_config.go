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

package conf

// LoggerConfig controls the engine's logger: whether it writes to the
// console only or also rotates to a file, and how aggressively old log
// files are trimmed.
type LoggerConfig struct {
	// LogFile is the rotated log file's name, relative to the node's log
	// directory. Empty means console-only.
	LogFile string

	// Level is a logrus level name ("debug", "info", "warn", "error").
	Level string

	MaxSize    int  // megabytes per file before rotation
	MaxBackups int  // number of rotated files to retain
	MaxAge     int  // days to retain a rotated file
	Compress   bool // gzip rotated files

	// TotalSizeCap, in megabytes, bounds the log directory's total size;
	// the oldest files are removed once it is exceeded. Zero disables the
	// cap.
	TotalSizeCap int
	LocalTime    bool

	// Console duplicates file output to stdout as well, when LogFile is set.
	Console bool

	// JSONFormat switches the file formatter from the prefixed text
	// formatter to logrus's JSON formatter.
	JSONFormat bool
}

// DefaultLoggerConfig returns the engine's out-of-the-box logging policy:
// console-only, info level.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:      "info",
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     30,
		Compress:   true,
		LocalTime:  true,
	}
}

// Validate clamps out-of-range fields to their defaults rather than
// rejecting the config outright.
func (c *LoggerConfig) Validate() error {
	if c.MaxSize <= 0 {
		c.MaxSize = 100
	}
	if c.MaxBackups < 0 {
		c.MaxBackups = 7
	}
	if c.MaxAge < 0 {
		c.MaxAge = 30
	}
	if c.Level == "" {
		c.Level = "info"
	}
	return nil
}
