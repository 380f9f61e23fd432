package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

const logRingSize = 256

// logRing keeps the most recent lines written through any Logger sharing it.
type logRing struct {
	mu    sync.Mutex
	lines []string
}

func (r *logRing) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lines) >= logRingSize {
		r.lines = r.lines[1:]
	}
	r.lines = append(r.lines, s)
}

// Logger wraps the standard logger with severity prefixes and a component name.
type Logger struct {
	out     *log.Logger
	name    string
	verbose bool
	ring    *logRing
}

func NewLogger(w io.Writer, verbose bool) *Logger {
	return &Logger{
		out:     log.New(w, "", log.LstdFlags),
		verbose: verbose,
		ring:    &logRing{},
	}
}

// Logger that writes nowhere but still records lines. Used by tests.
func newDiscardLogger() *Logger {
	return NewLogger(io.Discard, true)
}

// With returns a child logger that prefixes every line with [name].
func (lg *Logger) With(name string) *Logger {
	child := *lg
	child.name = name
	return &child
}

func (lg *Logger) printf(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if lg.name != "" {
		msg = "[" + lg.name + "] " + msg
	}
	msg = level + ": " + msg
	lg.ring.add(msg)
	lg.out.Print(msg)
}

func (lg *Logger) Infof(format string, args ...interface{}) {
	lg.printf("Info", format, args...)
}

func (lg *Logger) Warnf(format string, args ...interface{}) {
	lg.printf("Warning", format, args...)
}

func (lg *Logger) Errorf(format string, args ...interface{}) {
	lg.printf("Error", format, args...)
}

func (lg *Logger) Debugf(format string, args ...interface{}) {
	if lg.verbose {
		lg.printf("Debug", format, args...)
	}
}

// Lines returns a copy of the recent log lines.
func (lg *Logger) Lines() []string {
	lg.ring.mu.Lock()
	defer lg.ring.mu.Unlock()
	return append([]string(nil), lg.ring.lines...)
}

// Contains reports whether any recent line contains s.
func (lg *Logger) Contains(s string) bool {
	for _, l := range lg.Lines() {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// openLogFile returns a writer that tees into the given file as well as
// stderr. An empty path means stderr only.
func openLogFile(path string) (io.Writer, *os.File) {
	if path == "" {
		return NewLogWriter(), nil
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not create log file", path+":", err)
		return NewLogWriter(), nil
	}
	return io.MultiWriter(NewLogWriter(), f), f
}
