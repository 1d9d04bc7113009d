// Package streamutil runs a writer goroutine that drains a channel into a
// buffered output.
package streamutil

import (
	"bufio"
	"io"
	"sync"
)

// Writers share pooled 64 KiB buffers; each Start rebinds one to its output.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Sink receives the stream on the writer goroutine.
//   - Begin runs once before the first item.
//   - Item runs per value in channel order.
//   - End runs once after the channel closes (buffering sinks render here).
type Sink[T any] interface {
	Begin(w *bufio.Writer) error
	Item(w *bufio.Writer, v T) error
	End(w *bufio.Writer) error
}

// Start spins up a writer goroutine for values of type T. The returned error
// channel yields exactly one value after the input channel is closed.
// After a write error the goroutine keeps draining the input so senders never
// block; broken-pipe errors (per isBroken) are reported as nil.
func Start[T any](out io.Writer, bufSize int, sink Sink[T], isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		err := sink.Begin(bw)
		for v := range in {
			if err != nil {
				continue
			}
			err = sink.Item(bw, v)
		}
		if err == nil {
			err = sink.End(bw)
		}
		if err == nil {
			err = bw.Flush()
		}
		if err != nil && isBroken != nil && isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
