// internal/writers/report.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"

	"exoparam/internal/output"
	"exoparam/internal/streamutil"
)

// Output format names.
const (
	FormatText  = "text"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
)

func init() {
	Register(FormatText, func(out io.Writer, n int, _ Options) (chan<- output.Report, <-chan error) {
		return streamutil.Start[output.Report](out, n, textSink{}, IsBrokenPipe)
	})
	Register(FormatTSV, func(out io.Writer, n int, o Options) (chan<- output.Report, <-chan error) {
		return streamutil.Start[output.Report](out, n, tsvSink{header: o.Header}, IsBrokenPipe)
	})
	Register(FormatJSONL, StartJSONLWriter)
	Register(FormatJSON, func(out io.Writer, n int, _ Options) (chan<- output.Report, <-chan error) {
		return streamutil.Start[output.Report](out, n, &batchSink{render: output.WriteJSON}, IsBrokenPipe)
	})
	Register(FormatYAML, func(out io.Writer, n int, _ Options) (chan<- output.Report, <-chan error) {
		return streamutil.Start[output.Report](out, n, &batchSink{render: output.WriteYAML}, IsBrokenPipe)
	})
}

// StartJSONLWriter streams each report as one JSON line (v1).
func StartJSONLWriter(out io.Writer, bufSize int, _ Options) (chan<- output.Report, <-chan error) {
	return streamutil.Start[output.Report](out, bufSize, jsonlSink{}, IsBrokenPipe)
}

type textSink struct{}

func (textSink) Begin(*bufio.Writer) error { return nil }
func (textSink) Item(w *bufio.Writer, r output.Report) error {
	return output.WriteTextReport(w, r)
}
func (textSink) End(*bufio.Writer) error { return nil }

type tsvSink struct{ header bool }

func (s tsvSink) Begin(w *bufio.Writer) error {
	if !s.header {
		return nil
	}
	_, err := w.WriteString(output.TSVHeader + "\n")
	return err
}
func (tsvSink) Item(w *bufio.Writer, r output.Report) error {
	return output.WriteTSVRows(w, r)
}
func (tsvSink) End(*bufio.Writer) error { return nil }

type jsonlSink struct{}

func (jsonlSink) Begin(*bufio.Writer) error { return nil }
func (jsonlSink) Item(w *bufio.Writer, r output.Report) error {
	return json.NewEncoder(w).Encode(output.ToAPIResult(r))
}
func (jsonlSink) End(*bufio.Writer) error { return nil }

// batchSink buffers the whole run for formats that emit one document.
type batchSink struct {
	buf    []output.Report
	render func(io.Writer, []output.Report) error
}

func (s *batchSink) Begin(*bufio.Writer) error { return nil }
func (s *batchSink) Item(_ *bufio.Writer, r output.Report) error {
	s.buf = append(s.buf, r)
	return nil
}
func (s *batchSink) End(w *bufio.Writer) error {
	list := s.buf
	if list == nil {
		list = []output.Report{}
	}
	return s.render(w, list)
}
