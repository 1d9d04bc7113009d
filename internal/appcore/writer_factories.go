package appcore

import (
	"io"

	"exoparam/internal/output"
	"exoparam/internal/writers"
)

// ReportWriterFactory starts the registered writer for one output format.
type ReportWriterFactory struct {
	Format string
	Header bool
}

func NewReportWriterFactory(format string, header bool) ReportWriterFactory {
	return ReportWriterFactory{Format: format, Header: header}
}

// Streaming reports whether reports reach the output as they arrive rather
// than after the whole batch.
func (w ReportWriterFactory) Streaming() bool {
	return w.Format != writers.FormatJSON && w.Format != writers.FormatYAML
}

func (w ReportWriterFactory) Start(out io.Writer, bufSize int) (chan<- output.Report, <-chan error, error) {
	return writers.Start(w.Format, out, bufSize, writers.Options{Header: w.Header})
}
