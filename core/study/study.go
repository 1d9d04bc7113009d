// core/study/study.go
// A Study is one literature parameter set for a star–planet system: a name,
// any subset of the input fields, and the number of scale heights used to
// scale the transmission signal. Unset fields mean "unknown", never zero.

package study

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"exoparam/core/quantity"
)

// DefaultScaleHeightCount is the signal scaling used when none is given.
const DefaultScaleHeightCount = 5.0

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidStudy   = errors.New("invalid study")
	ErrDuplicateField = errors.New("field supplied twice")
)

// Study is immutable once built by New.
type Study struct {
	name   string
	values map[Field]quantity.Quantity
	nScale float64
}

// Option sets one optional part of a Study.
type Option func(*builder) error

type builder struct {
	values map[Field]quantity.Quantity
	nScale float64
}

// WithField supplies a measured value for f.
func WithField(f Field, q quantity.Quantity) Option {
	return func(b *builder) error {
		if !f.IsInput() {
			return fmt.Errorf("%w %q", ErrUnknownField, string(f))
		}
		if _, dup := b.values[f]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateField, f)
		}
		if q.Dim() != f.Dim() {
			return fmt.Errorf("%s (%s): %w: got [%s], want [%s]",
				f, f.Label(), quantity.ErrDimensionMismatch, q.Dim(), f.Dim())
		}
		if !q.IsFinite() {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidStudy, f)
		}
		if q.Uncertainty() < 0 {
			return fmt.Errorf("%w: %s has negative uncertainty %g", ErrInvalidStudy, f, q.Uncertainty())
		}
		b.values[f] = q
		return nil
	}
}

// WithScaleHeightCount sets how many scale heights the reported signal spans.
func WithScaleHeightCount(n float64) Option {
	return func(b *builder) error {
		if !(n > 0) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: scale_height_count must be > 0, got %g", ErrInvalidStudy, n)
		}
		b.nScale = n
		return nil
	}
}

// Stellar options.
func WithStellarTemperature(q quantity.Quantity) Option { return WithField(StellarTemperature, q) }
func WithStellarDensity(q quantity.Quantity) Option     { return WithField(StellarDensity, q) }
func WithStellarMass(q quantity.Quantity) Option        { return WithField(StellarMass, q) }
func WithStellarRadius(q quantity.Quantity) Option      { return WithField(StellarRadius, q) }
func WithStellarGravity(q quantity.Quantity) Option     { return WithField(StellarGravity, q) }
func WithStellarLuminosity(q quantity.Quantity) Option  { return WithField(StellarLuminosity, q) }

// Orbital options.
func WithRadiusRatio(q quantity.Quantity) Option     { return WithField(RadiusRatio, q) }
func WithScaledSemiMajor(q quantity.Quantity) Option { return WithField(ScaledSemiMajor, q) }
func WithSemiMajorAxis(q quantity.Quantity) Option   { return WithField(SemiMajorAxis, q) }
func WithImpactParameter(q quantity.Quantity) Option { return WithField(ImpactParameter, q) }
func WithPeriod(q quantity.Quantity) Option          { return WithField(Period, q) }
func WithRVSemiAmplitude(q quantity.Quantity) Option { return WithField(RVSemiAmplitude, q) }
func WithInclination(q quantity.Quantity) Option     { return WithField(Inclination, q) }

// Planet options.
func WithMeanMolecularWeight(q quantity.Quantity) Option { return WithField(MeanMolecularWeight, q) }
func WithAlbedo(q quantity.Quantity) Option              { return WithField(Albedo, q) }
func WithPlanetTemperature(q quantity.Quantity) Option   { return WithField(PlanetTemperature, q) }
func WithPlanetDensity(q quantity.Quantity) Option       { return WithField(PlanetDensity, q) }
func WithPlanetMass(q quantity.Quantity) Option          { return WithField(PlanetMass, q) }
func WithPlanetRadius(q quantity.Quantity) Option        { return WithField(PlanetRadius, q) }
func WithPlanetGravity(q quantity.Quantity) Option       { return WithField(PlanetGravity, q) }

// New builds a Study. Each supplied quantity must carry its field's dimension
// and a finite, non-negative uncertainty.
func New(name string, opts ...Option) (Study, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Study{}, fmt.Errorf("%w: empty name", ErrInvalidStudy)
	}
	b := builder{values: make(map[Field]quantity.Quantity, len(opts)), nScale: DefaultScaleHeightCount}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(&b); err != nil {
			return Study{}, fmt.Errorf("study %q: %w", name, err)
		}
	}
	return Study{name: name, values: b.values, nScale: b.nScale}, nil
}

// MustNew is New for fixtures; it panics on error.
func MustNew(name string, opts ...Option) Study {
	s, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Study) Name() string              { return s.name }
func (s Study) ScaleHeightCount() float64 { return s.nScale }

// Lookup returns the supplied value for f, if any.
func (s Study) Lookup(f Field) (quantity.Quantity, bool) {
	q, ok := s.values[f]
	return q, ok
}

// Has reports whether f was supplied.
func (s Study) Has(f Field) bool {
	_, ok := s.values[f]
	return ok
}

// Given lists the supplied fields in InputFields order.
func (s Study) Given() []Field {
	out := make([]Field, 0, len(s.values))
	for _, f := range InputFields {
		if _, ok := s.values[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// WithScaleHeightCount returns a copy of s using n scale heights.
func (s Study) WithScaleHeightCount(n float64) (Study, error) {
	if !(n > 0) || math.IsInf(n, 0) {
		return Study{}, fmt.Errorf("study %q: %w: scale_height_count must be > 0, got %g", s.name, ErrInvalidStudy, n)
	}
	s.nScale = n
	return s, nil
}
