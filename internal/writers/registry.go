// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"exoparam/internal/output"
)

// StartFunc launches a writer goroutine for one output format.
type StartFunc func(out io.Writer, bufSize int, o Options) (chan<- output.Report, <-chan error)

// Options tune the writers that support them.
type Options struct {
	Header bool // TSV header row
}

var registry = map[string]StartFunc{}

// Register adds a format (idempotent, last wins). Called from init blocks.
func Register(format string, fn StartFunc) { registry[format] = fn }

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Known reports whether format has a registered writer.
func Known(format string) bool {
	_, ok := registry[format]
	return ok
}

// Start dispatches to the writer registered for format.
func Start(format string, out io.Writer, bufSize int, o Options) (chan<- output.Report, <-chan error, error) {
	fn, ok := registry[format]
	if !ok {
		return nil, nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	in, done := fn(out, bufSize, o)
	return in, done, nil
}
