// Package writers turns resolved reports into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (tables, TSV, JSON/JSONL/YAML).
//   - Engine stays domain-only; pipeline stays orchestration-only.
//   - JSON, JSONL and YAML go through pkg/api (v1) for a stable wire format.
package writers
