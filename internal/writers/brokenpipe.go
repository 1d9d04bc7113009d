package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err is a broken or closed pipe, as happens
// when a downstream consumer such as `head` exits early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
