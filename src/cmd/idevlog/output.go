// FILE: idevlog/src/cmd/idevlog/output.go
package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// OutputHandler writes user-facing CLI messages, honoring quiet mode.
// Streamed records never pass through it.
type OutputHandler struct {
	quiet  bool
	mu     sync.RWMutex
	stdout io.Writer
	stderr io.Writer
}

var output = &OutputHandler{stdout: os.Stdout, stderr: os.Stderr}

// Print writes to stdout. Command results are printed even in quiet mode.
func (o *OutputHandler) Print(format string, args ...any) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	fmt.Fprintf(o.stdout, format, args...)
}

// Error writes to stderr unless quiet
func (o *OutputHandler) Error(format string, args ...any) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

func (o *OutputHandler) FatalError(code int, format string, args ...any) {
	o.Error(format, args...)
	os.Exit(code)
}

func (o *OutputHandler) SetQuiet(quiet bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.quiet = quiet
}

func (o *OutputHandler) Stdout() io.Writer {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.stdout
}

func Print(format string, args ...any) {
	output.Print(format, args...)
}

func Error(format string, args ...any) {
	output.Error(format, args...)
}

func FatalError(code int, format string, args ...any) {
	output.FatalError(code, format, args...)
}
