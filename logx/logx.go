// Package logx provides the five independent logging streams spec.md §6
// names as the framework's logger collaborator: hex, raw, struct, error,
// stack. The codec/schema engine itself emits no I/O; these streams are
// written to by the dispatch package, by cmd/binframed, and by the
// discriminator through the Namespace.ErrorLog hook binframed wires up.
package logx

import (
	"io"
	"log"
	"os"
)

// Logger bundles the five named streams. Each is a standard *log.Logger so
// callers get familiar Printf/Println semantics and can redirect any one
// stream independently.
type Logger struct {
	Hex    *log.Logger
	Raw    *log.Logger
	Struct *log.Logger
	Error  *log.Logger
	Stack  *log.Logger
}

// New builds a Logger with all five streams writing to w, each tagged with
// its stream name as a prefix.
func New(w io.Writer) *Logger {
	mk := func(prefix string) *log.Logger {
		return log.New(w, prefix+": ", log.LstdFlags)
	}
	return &Logger{
		Hex:    mk("hex"),
		Raw:    mk("raw"),
		Struct: mk("struct"),
		Error:  mk("error"),
		Stack:  mk("stack"),
	}
}

// Default builds a Logger writing all five streams to stderr.
func Default() *Logger {
	return New(os.Stderr)
}

// ErrorFunc adapts l.Error into the func(string) shape
// discriminator.Namespace.ErrorLog expects.
func (l *Logger) ErrorFunc() func(string) {
	return func(msg string) { l.Error.Println(msg) }
}
