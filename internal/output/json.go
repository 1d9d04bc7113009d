// internal/output/json.go
package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"exoparam/internal/jsonutil"
)

// WriteJSON writes a single JSON array of v1 results (pretty-indented).
func WriteJSON(w io.Writer, list []Report) error {
	return jsonutil.EncodePretty(w, ToAPIResults(list))
}

// WriteYAML writes a single YAML sequence of v1 results.
func WriteYAML(w io.Writer, list []Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToAPIResults(list)); err != nil {
		return err
	}
	return enc.Close()
}
