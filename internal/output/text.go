// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"exoparam/pkg/api"
)

// FormatNumber renders a report value with six significant digits.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// WriteTextReport renders one study as a titled table. Failed studies get a
// single error line instead.
func WriteTextReport(w io.Writer, r Report) error {
	return writeTextResult(w, ToAPIResult(r))
}

func writeTextResult(w io.Writer, v api.ResultV1) error {
	if !v.OK {
		_, err := fmt.Fprintf(w, "%s: FAILED: %s\n\n", v.Name, v.Error)
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	title := v.Name
	if v.SourceFile != "" {
		title += " (" + v.SourceFile + ")"
	}
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Field", "Quantity", "Value", "±", "Unit", "From"})
	for _, f := range v.Fields {
		from := "input"
		if !f.Direct {
			from = strings.Join(f.Inputs, ", ")
		}
		t.AppendRow(table.Row{f.Name, f.Label, FormatNumber(f.Value), FormatNumber(f.Unc), f.Unit, from})
	}
	if v.Signal != nil {
		t.AppendFooter(table.Row{
			"signal",
			fmt.Sprintf("%g scale heights", v.ScaleHeightCount),
			FormatNumber(v.Signal.Value),
			FormatNumber(v.Signal.Unc),
			v.Signal.Unit,
			"H, RpRs, Rs",
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	t.Render()
	_, err := io.WriteString(w, "\n")
	return err
}
