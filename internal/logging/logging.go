// Package logging wraps the standard logger with a debug level and optional
// rotating file output.
//
// stdout is reserved for the MCP protocol, so output defaults to stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

var debug atomic.Bool

// Options configures Setup.
type Options struct {
	// Debug enables Debugf output.
	Debug bool

	// File, when set, sends output to a rotating log file.
	File string
}

// Setup configures the standard logger and returns a closer for the log file,
// if one was opened.
func Setup(opts Options) io.Closer {
	debug.Store(opts.Debug)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if opts.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 2,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(lj)
	return lj
}

// SetDebug toggles debug output.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// DebugEnabled reports whether Debugf writes anything.
func DebugEnabled() bool {
	return debug.Load()
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
}

// Println calls the standard log.Println()
func Println(v ...interface{}) {
	log.Output(2, fmt.Sprintln(v...))
}

// Debugf logs with a [DEBUG] prefix when debug output is enabled.
func Debugf(format string, v ...interface{}) {
	if !debug.Load() {
		return
	}
	log.Output(2, "[DEBUG] "+fmt.Sprintf(format, v...))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
