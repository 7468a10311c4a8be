// Package diag routes diagnostic output to a stream separate from the
// result payload. Search results go to stdout; everything here goes to
// stderr (or a custom writer) so piped output stays machine-parseable.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu        sync.Mutex
	verbosity int
	output    io.Writer = os.Stderr
)

// SetVerbosity sets the global verbosity level (0 = silent).
func SetVerbosity(level int) {
	mu.Lock()
	defer mu.Unlock()
	verbosity = level
}

// Verbosity returns the current verbosity level.
func Verbosity() int {
	mu.Lock()
	defer mu.Unlock()
	return verbosity
}

// SetOutput redirects diagnostic output. Pass nil to discard.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Logf writes a diagnostic line when the current verbosity is at least level.
func Logf(level int, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if output == nil || verbosity < level {
		return
	}
	fmt.Fprintf(output, format, args...)
}
