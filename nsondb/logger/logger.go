//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

// Package logger provides leveled logging for the SDK.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// LogLevel controls which messages a Logger emits.
//
// The levels are ordered. Enabling logging at a given level also enables
// logging at all higher levels: a logger set to Debug emits Debug, Info,
// Warn and Error messages. The Off level turns logging off entirely.
type LogLevel int

const (
	// Fine is used for tracing messages, such as per-field decode traces.
	Fine LogLevel = 10

	// Debug is used for debug messages.
	Debug LogLevel = 20

	// Info is used for informative messages.
	Info LogLevel = 30

	// Warn is used for warning messages.
	Warn LogLevel = 40

	// Error is used for error messages.
	Error LogLevel = 50

	// Off turns off logging.
	Off LogLevel = 99
)

// String returns a string representation for the log level.
//
// This implements the fmt.Stringer interface.
func (level LogLevel) String() string {
	switch level {
	case Fine:
		return "Fine"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warn:
		return "Warn"
	case Error:
		return "Error"
	case Off:
		return "Off"
	default:
		return "N/A"
	}
}

// Logger wraps a log.Logger with level filtering. All methods are safe to
// call on a nil *Logger, which silently discards the message.
type Logger struct {
	logger *log.Logger
	level  LogLevel
}

// New creates a logger that writes messages of the specified level or
// higher to out. Log entry times are UTC. It returns nil, meaning logging
// is disabled, if out is nil or level is Off or unrecognized.
func New(out io.Writer, level LogLevel) *Logger {
	if out == nil {
		return nil
	}

	switch level {
	case Fine, Debug, Info, Warn, Error:
	default:
		return nil
	}

	return &Logger{
		level:  level,
		logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds|log.LUTC),
	}
}

// Fine writes the message to the logger at the Fine level.
//
// The arguments are handled in the manner of fmt.Printf.
func (l *Logger) Fine(messageFormat string, messageArgs ...interface{}) {
	l.Log(Fine, messageFormat, messageArgs...)
}

// Debug writes the message to the logger at the Debug level.
//
// The arguments are handled in the manner of fmt.Printf.
func (l *Logger) Debug(messageFormat string, messageArgs ...interface{}) {
	l.Log(Debug, messageFormat, messageArgs...)
}

// Info writes the message to the logger at the Info level.
//
// The arguments are handled in the manner of fmt.Printf.
func (l *Logger) Info(messageFormat string, messageArgs ...interface{}) {
	l.Log(Info, messageFormat, messageArgs...)
}

// Warn writes the message to the logger at the Warn level.
//
// The arguments are handled in the manner of fmt.Printf.
func (l *Logger) Warn(messageFormat string, messageArgs ...interface{}) {
	l.Log(Warn, messageFormat, messageArgs...)
}

// Error writes the message to the logger at the Error level.
//
// The arguments are handled in the manner of fmt.Printf.
func (l *Logger) Error(messageFormat string, messageArgs ...interface{}) {
	l.Log(Error, messageFormat, messageArgs...)
}

// Log writes the message to the logger if the specified level is the same
// as or higher than the logger's level.
//
// The arguments are handled in the manner of fmt.Printf.
func (l *Logger) Log(level LogLevel, messageFormat string, messageArgs ...interface{}) {
	if l == nil || level == Off || l.level > level {
		return
	}

	l.logger.Print(label(level), fmt.Sprintf(messageFormat, messageArgs...))
}

// label returns the display label for the specified logging level.
func label(level LogLevel) string {
	switch level {
	case Fine:
		return "[FINE]  "
	case Debug:
		return "[DEBUG] "
	case Info:
		return "[INFO]  "
	case Warn:
		return "[WARN]  "
	case Error:
		return "[ERROR] "
	default:
		return ""
	}
}

// DefaultLogger writes warning and higher priority events to stderr.
var DefaultLogger *Logger = New(os.Stderr, Warn)
