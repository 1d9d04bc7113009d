package streamutil

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lines struct {
	failAt int
	seen   int
}

func (l *lines) Begin(w *bufio.Writer) error {
	_, err := w.WriteString("begin\n")
	return err
}

func (l *lines) Item(w *bufio.Writer, v int) error {
	l.seen++
	if l.failAt > 0 && v == l.failAt {
		return errBoom
	}
	_, err := fmt.Fprintf(w, "%d\n", v)
	return err
}

func (l *lines) End(w *bufio.Writer) error {
	_, err := w.WriteString("end\n")
	return err
}

var errBoom = errors.New("boom")

func TestStart_WritesInOrder(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[int](&buf, 2, &lines{}, nil)
	for i := 1; i <= 3; i++ {
		in <- i
	}
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, "begin\n1\n2\n3\nend\n", buf.String())
}

func TestStart_DrainsAfterError(t *testing.T) {
	var buf bytes.Buffer
	sink := &lines{failAt: 2}
	in, done := Start[int](&buf, 1, sink, nil)
	for i := 1; i <= 50; i++ {
		in <- i
	}
	close(in)
	assert.ErrorIs(t, <-done, errBoom)
	assert.Equal(t, 2, sink.seen)
	assert.Empty(t, buf.String())
}

func TestStart_BrokenPipeSuppressed(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[int](&buf, 1, &lines{failAt: 1}, func(err error) bool { return errors.Is(err, errBoom) })
	in <- 1
	close(in)
	assert.NoError(t, <-done)
}
