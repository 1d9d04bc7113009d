// internal/output/tsv.go
package output

import (
	"fmt"
	"io"
	"strings"

	"exoparam/pkg/api"
)

// TSVHeader is the canonical header row for TSV output.
const TSVHeader = "source_file\tstudy\tfield\tvalue\tunc\tunit\tinputs\terror"

// WriteTSVRows writes one row per resolved field, plus a signal row. A failed
// study produces a single row with the error column set.
func WriteTSVRows(w io.Writer, r Report) error {
	v := ToAPIResult(r)
	if !v.OK {
		_, err := fmt.Fprintf(w, "%s\t%s\t\t\t\t\t\t%s\n", v.SourceFile, v.Name, tsvClean(v.Error))
		return err
	}
	for _, f := range v.Fields {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			v.SourceFile, v.Name, f.Name,
			FormatNumber(f.Value), FormatNumber(f.Unc), f.Unit,
			strings.Join(f.Inputs, ","),
		); err != nil {
			return err
		}
	}
	return writeSignalRow(w, v)
}

func writeSignalRow(w io.Writer, v api.ResultV1) error {
	if v.Signal == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\t%s\tsignal\t%s\t%s\t%s\tH,RpRs,Rs\t\n",
		v.SourceFile, v.Name, FormatNumber(v.Signal.Value), FormatNumber(v.Signal.Unc), v.Signal.Unit)
	return err
}

func tsvClean(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ").Replace(s)
}
