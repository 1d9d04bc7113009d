// Package dataset loads literature studies from YAML documents.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"exoparam/core/quantity"
	"exoparam/core/study"
)

// SupportedVersions is the semver constraint a document's version must meet.
const SupportedVersions = "^1"

var (
	ErrVersion = errors.New("unsupported dataset version")
	ErrParam   = errors.New("invalid parameter")
)

// Error locates a failure inside a dataset document.
type Error struct {
	Source string
	Index  int
	Study  string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "study #%d", e.Index+1)
	if e.Study != "" {
		fmt.Fprintf(&b, " (%s)", e.Study)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %s", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

type document struct {
	Version string      `yaml:"version"`
	Studies []studyNode `yaml:"studies"`
}

type studyNode struct {
	Name             string               `yaml:"name"`
	ScaleHeightCount *float64             `yaml:"scale_height_count"`
	Params           map[string]yaml.Node `yaml:"params"`
}

type paramNode struct {
	Value *float64 `yaml:"value"`
	Unc   float64  `yaml:"unc"`
	Unit  string   `yaml:"unit"`
}

// LoadFile reads a dataset from path.
func LoadFile(path string) ([]study.Study, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, path)
}

// Load decodes one dataset document. source names the input in errors.
func Load(r io.Reader, source string) ([]study.Study, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	out := make([]study.Study, 0, len(doc.Studies))
	for i, sn := range doc.Studies {
		s, err := sn.build()
		if err != nil {
			var de *Error
			if errors.As(err, &de) {
				de.Source, de.Index = source, i
				return nil, de
			}
			return nil, &Error{Source: source, Index: i, Study: sn.Name, Err: err}
		}
		out = append(out, s)
	}
	return out, nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing version", ErrVersion)
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrVersion, v, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(ver) {
		return fmt.Errorf("%w %q (want %s)", ErrVersion, v, SupportedVersions)
	}
	return nil
}

func (sn studyNode) build() (study.Study, error) {
	var opts []study.Option
	if sn.ScaleHeightCount != nil {
		opts = append(opts, study.WithScaleHeightCount(*sn.ScaleHeightCount))
	}
	for _, name := range sortedKeys(sn.Params) {
		f, err := study.ParseField(name)
		if err != nil {
			return study.Study{}, &Error{Study: sn.Name, Field: name, Err: err}
		}
		node := sn.Params[name]
		q, err := decodeParam(&node)
		if err != nil {
			return study.Study{}, &Error{Study: sn.Name, Field: name, Err: err}
		}
		opts = append(opts, study.WithField(f, q))
	}
	return study.New(sn.Name, opts...)
}

// sortedKeys returns params in the canonical field order, unknown names last.
func sortedKeys(m map[string]yaml.Node) []string {
	keys := make([]string, 0, len(m))
	seen := map[string]bool{}
	for _, f := range study.InputFields {
		if _, ok := m[string(f)]; ok {
			keys = append(keys, string(f))
			seen[string(f)] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func decodeParam(n *yaml.Node) (quantity.Quantity, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return ParseQuantity(n.Value)
	case yaml.MappingNode:
		var p paramNode
		if err := n.Decode(&p); err != nil {
			return quantity.Quantity{}, fmt.Errorf("%w: %v", ErrParam, err)
		}
		if p.Value == nil {
			return quantity.Quantity{}, fmt.Errorf("%w: missing value", ErrParam)
		}
		return build(*p.Value, p.Unc, p.Unit)
	default:
		return quantity.Quantity{}, fmt.Errorf("%w: expected string or mapping at line %d", ErrParam, n.Line)
	}
}

// ParseQuantity parses the shorthand "<value> [± <unc>] [unit]". "+/-" is
// accepted for "±" and a unit of the form dex(<unit>) reads value and
// uncertainty as base-10 logarithms.
func ParseQuantity(s string) (quantity.Quantity, error) {
	s = strings.ReplaceAll(s, "+/-", " ± ")
	s = strings.ReplaceAll(s, "±", " ± ")
	tok := strings.Fields(s)
	if len(tok) == 0 {
		return quantity.Quantity{}, fmt.Errorf("%w: empty", ErrParam)
	}
	v, err := strconv.ParseFloat(tok[0], 64)
	if err != nil {
		return quantity.Quantity{}, fmt.Errorf("%w: value %q", ErrParam, tok[0])
	}
	tok = tok[1:]
	var u float64
	if len(tok) > 0 && tok[0] == "±" {
		if len(tok) < 2 {
			return quantity.Quantity{}, fmt.Errorf("%w: missing uncertainty in %q", ErrParam, s)
		}
		u, err = strconv.ParseFloat(tok[1], 64)
		if err != nil {
			return quantity.Quantity{}, fmt.Errorf("%w: uncertainty %q", ErrParam, tok[1])
		}
		tok = tok[2:]
	}
	return build(v, u, strings.Join(tok, " "))
}

func build(v, u float64, unit string) (quantity.Quantity, error) {
	if u < 0 {
		return quantity.Quantity{}, fmt.Errorf("%w: negative uncertainty %g", ErrParam, u)
	}
	if inner, ok := strings.CutPrefix(unit, "dex("); ok && strings.HasSuffix(inner, ")") {
		return quantity.FromDex(v, u, strings.TrimSuffix(inner, ")"))
	}
	return quantity.FromUnit(v, u, unit)
}
