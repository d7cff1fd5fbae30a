// Package logutil provides the shared loggers used by the keyway packages.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

// Discard is a Logger that ignores all loggings.
var Discard = log.New(io.Discard, "", 0)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	loggers []*log.Logger
)

// New returns a logger with the given prefix writing to the current output.
// Later SetOutput calls redirect it.
func New(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := log.New(out, prefix, log.Lmicroseconds)
	loggers = append(loggers, l)
	return l
}

// SetOutput redirects every logger returned by New
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	for _, l := range loggers {
		l.SetOutput(w)
	}
}

// SetOutputFile opens path for appending and redirects output to it. The
// returned file is closed by the caller.
func SetOutputFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return f, nil
}
