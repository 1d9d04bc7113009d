// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL/YAML schema for one resolved study.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	RunID            string    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Name             string    `json:"name" yaml:"name"`
	SourceFile       string    `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	OK               bool      `json:"ok" yaml:"ok"`
	Error            string    `json:"error,omitempty" yaml:"error,omitempty"`
	Stage            string    `json:"stage,omitempty" yaml:"stage,omitempty"` // failing stage
	ScaleHeightCount float64   `json:"scale_height_count" yaml:"scale_height_count"`
	Fields           []FieldV1 `json:"fields,omitempty" yaml:"fields,omitempty"`
	Signal           *ValueV1  `json:"signal,omitempty" yaml:"signal,omitempty"`
}

// FieldV1 is one resolved parameter in report units.
// Unit "" means dimensionless; "dex(cm/s^2)" values are base-10 logarithms.
type FieldV1 struct {
	Name   string   `json:"name" yaml:"name"`
	Label  string   `json:"label" yaml:"label"`
	Value  float64  `json:"value" yaml:"value"`
	Unc    float64  `json:"unc" yaml:"unc"`
	Unit   string   `json:"unit" yaml:"unit"`
	Direct bool     `json:"direct" yaml:"direct"` // copied from the study
	Inputs []string `json:"inputs" yaml:"inputs"`
}

// ValueV1 is a bare value with uncertainty and unit.
type ValueV1 struct {
	Value float64 `json:"value" yaml:"value"`
	Unc   float64 `json:"unc" yaml:"unc"`
	Unit  string  `json:"unit" yaml:"unit"`
}
