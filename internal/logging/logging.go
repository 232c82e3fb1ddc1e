// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package logging is a tiny verbosity-gated logger for the cmd/ tools.
// The core library packages stay side-effect-free and never import this
// package; only cmd/analyze_bwt and cmd/beller log diagnostics through it.
package logging

import (
	"log"
	"os"
	"strconv"
)

// Level is a verbosity tier: 0 silences all output, 3 is the most verbose.
type Level int

const (
	Silent Level = iota
	Error
	Info
	Debug
)

// Logger prints to stderr when called at or below its configured level.
type Logger struct {
	level Level
	std   *log.Logger
}

// New creates a Logger at the given level, writing to os.Stderr with a
// time-stamped prefix.
func New(level Level) *Logger {
	return &Logger{level: level, std: log.New(os.Stderr, "", log.LstdFlags)}
}

// FromEnv creates a Logger from the STOOL_LOG_LEVEL environment variable
// (0-3; missing or unparseable defaults to Error).
func FromEnv() *Logger {
	level := Error

	if s := os.Getenv("STOOL_LOG_LEVEL"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= int(Silent) && v <= int(Debug) {
			level = Level(v)
		}
	}

	return New(level)
}

// Errorf logs at Error level.
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(Error, format, args...) }

// Infof logs at Info level.
func (l *Logger) Infof(format string, args ...interface{}) { l.logf(Info, format, args...) }

// Debugf logs at Debug level.
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(Debug, format, args...) }

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l.level < level {
		return
	}

	l.std.Printf(format, args...)
}
