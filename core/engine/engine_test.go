package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exoparam/core/quantity"
	"exoparam/core/study"
)

// --- local helpers (test-only) ---------------------------------------------

func q(t *testing.T, v, u float64, unit string) quantity.Quantity {
	t.Helper()
	out, err := quantity.FromUnit(v, u, unit)
	require.NoError(t, err)
	return out
}

// scenarioOpts is a transit + RV study with a/Rs and Rp/Rs supplied.
func scenarioOpts(t *testing.T) map[study.Field]quantity.Quantity {
	return map[study.Field]quantity.Quantity{
		study.MeanMolecularWeight: q(t, 2, 0, "u"),
		study.Albedo:              q(t, 0, 0, ""),
		study.Inclination:         q(t, 85.74, 0.95, "deg"),
		study.Period:              q(t, 1.21288287, 1.7e-7, "d"),
		study.RadiusRatio:         q(t, 0.11616, 0.00081, ""),
		study.StellarTemperature:  q(t, 5885, 72, "K"),
		study.StellarRadius:       q(t, 1.089, 0.028, "Rsun"),
		study.ScaledSemiMajor:     q(t, 4.5459, 0.0919, ""),
		study.RVSemiAmplitude:     q(t, 368.5, 17.6, "m/s"),
	}
}

// build makes a study from base, dropping the fields in drop and adding extra.
func build(t *testing.T, base map[study.Field]quantity.Quantity, drop []study.Field, extra map[study.Field]quantity.Quantity) study.Study {
	t.Helper()
	skip := map[study.Field]bool{}
	for _, f := range drop {
		skip[f] = true
	}
	var opts []study.Option
	for _, f := range study.InputFields {
		if v, ok := extra[f]; ok {
			opts = append(opts, study.WithField(f, v))
			continue
		}
		if v, ok := base[f]; ok && !skip[f] {
			opts = append(opts, study.WithField(f, v))
		}
	}
	s, err := study.New("test", opts...)
	require.NoError(t, err)
	return s
}

func scenario(t *testing.T) study.Study { return build(t, scenarioOpts(t), nil, nil) }

func mustResolve(t *testing.T, s study.Study) (Result, Provenance) {
	t.Helper()
	res, prov, err := Resolve(s)
	require.NoError(t, err)
	return res, prov
}

func rel(want float64) float64 { return math.Abs(want) * 1e-9 }

// ---------------------------------------------------------------------------

func TestConcreteScenario(t *testing.T) {
	res, prov := mustResolve(t, scenario(t))

	assert.Equal(t, []study.Field{study.Period, study.ScaledSemiMajor}, prov.Inputs(study.StellarDensity))
	assert.Equal(t, []study.Field{study.RadiusRatio, study.StellarRadius}, prov.Inputs(study.PlanetRadius))
	assert.Equal(t, []study.Field{study.StellarRadius, study.StellarTemperature}, prov.Inputs(study.StellarLuminosity))
	assert.Equal(t, []study.Field{study.ScaledSemiMajor, study.Inclination}, prov.Inputs(study.ImpactParameter))
	assert.Equal(t, []study.Field{study.RVSemiAmplitude, study.Inclination, study.Period, study.StellarMass}, prov.Inputs(study.PlanetMass))
	assert.Equal(t, []study.Field{study.StellarDensity, study.StellarRadius}, prov.Inputs(study.StellarMass))
	assert.Equal(t, []study.Field{study.PlanetTemperature, study.MeanMolecularWeight, study.PlanetGravity}, prov.Inputs(study.ScaleHeight))
	assert.True(t, prov.Direct(study.ScaledSemiMajor))
	assert.True(t, prov.Direct(study.RadiusRatio))

	// Independent plain-float recomputation.
	const G = 6.67430e-11
	P := 1.21288287 * 86400
	aRs := 4.5459
	Rs := 1.089 * 6.957e8
	inc := 85.74 * math.Pi / 180

	rhoS := 3 * math.Pi / (G * P * P) * aRs * aRs * aRs
	assert.InDelta(t, rhoS, res.RhoS.Value(), rel(rhoS))

	Rp := 0.11616 * Rs
	assert.InDelta(t, Rp, res.Rp.Value(), rel(Rp))

	Ms := rhoS * 4.0 / 3.0 * math.Pi * Rs * Rs * Rs
	assert.InDelta(t, Ms, res.Ms.Value(), rel(Ms))

	Mp := 368.5 / math.Sin(inc) * math.Cbrt(P/(2*math.Pi*G)) * math.Pow(Ms, 2.0/3.0)
	assert.InDelta(t, Mp, res.Mp.Value(), rel(Mp))

	Tp := 5885 * math.Sqrt(0.5/aRs)
	assert.InDelta(t, Tp, res.Tp.Value(), rel(Tp))

	gp := G * Mp / (Rp * Rp)
	assert.InDelta(t, gp, res.Gp.Value(), rel(gp))

	H := 1.380649e-23 * Tp / (2 * 1.66053906660e-27 * gp)
	assert.InDelta(t, H, res.H.Value(), rel(H))

	dD := 2 * H * 0.11616 / Rs
	assert.InDelta(t, dD, res.DD.Value(), rel(dD))
	assert.InDelta(t, dD*5e6, res.SignalPPM().Value(), rel(dD*5e6))

	b := aRs * math.Cos(inc)
	assert.InDelta(t, b, res.B.Value(), rel(b))

	// Sanity: a hot Jupiter around a Sun-like star.
	mjup, _ := res.Mp.MustIn("Mjup")
	assert.Greater(t, mjup, 1.0)
	assert.Less(t, mjup, 3.0)

	// Uncertainty is propagated, never dropped.
	for _, f := range []study.Field{study.StellarDensity, study.StellarMass, study.PlanetMass, study.PlanetTemperature, study.ScaleHeight, study.SignalDepth} {
		v, ok := res.Get(f)
		require.True(t, ok)
		assert.Greater(t, v.Uncertainty(), 0.0, "field %s", f)
	}
}

func TestCompletenessAcrossVariants(t *testing.T) {
	base := scenarioOpts(t)
	Rs := base[study.StellarRadius]
	Ts := base[study.StellarTemperature]
	L := luminosity(Rs, Ts)
	aRs := base[study.ScaledSemiMajor]
	rho := stellarDensity(base[study.Period], aRs)

	cases := []struct {
		name  string
		drop  []study.Field
		extra map[study.Field]quantity.Quantity
	}{
		{"R+T", nil, nil},
		{"R+T+L", nil, map[study.Field]quantity.Quantity{study.StellarLuminosity: L}},
		{"R+L", []study.Field{study.StellarTemperature}, map[study.Field]quantity.Quantity{study.StellarLuminosity: L}},
		{"T+L", []study.Field{study.StellarRadius}, map[study.Field]quantity.Quantity{study.StellarLuminosity: L}},
		{"Rp only", []study.Field{study.RadiusRatio}, map[study.Field]quantity.Quantity{study.PlanetRadius: q(t, 1.2, 0.05, "Rjup")}},
		{"rho_s", []study.Field{study.ScaledSemiMajor}, map[study.Field]quantity.Quantity{study.StellarDensity: rho}},
		{"a", []study.Field{study.ScaledSemiMajor}, map[study.Field]quantity.Quantity{study.SemiMajorAxis: q(t, 0.0232, 0.0004, "au")}},
		{"b given", []study.Field{study.ScaledSemiMajor}, map[study.Field]quantity.Quantity{
			study.StellarDensity:  rho,
			study.ImpactParameter: q(t, 0.3, 0.05, ""),
		}},
		{"all planet directs", nil, map[study.Field]quantity.Quantity{
			study.StellarMass:       q(t, 1.1, 0.05, "Msun"),
			study.PlanetMass:        q(t, 2.1, 0.1, "Mjup"),
			study.PlanetTemperature: q(t, 2000, 50, "K"),
			study.StellarGravity:    q(t, 2.5e2, 10, "m/s^2"),
			study.PlanetGravity:     q(t, 30, 2, "m/s^2"),
			study.PlanetDensity:     q(t, 1.5, 0.2, "g/cm^3"),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := build(t, base, tc.drop, tc.extra)
			res, prov := mustResolve(t, s)
			assert.Equal(t, len(OutputFields), prov.Len())
			assert.Equal(t, OutputFields, prov.Fields())
			for _, f := range OutputFields {
				v, ok := res.Get(f)
				require.True(t, ok, f)
				assert.Equal(t, f.Dim(), v.Dim(), "dimension of %s", f)
				assert.NotEmpty(t, prov.Inputs(f), "provenance of %s", f)
				assert.False(t, math.IsNaN(v.Value()), "value of %s", f)
			}
			// Supplied fields are always used verbatim, except the ratio when Rp is present.
			for _, f := range s.Given() {
				if f == study.RadiusRatio && s.Has(study.PlanetRadius) {
					continue
				}
				assert.True(t, prov.Direct(f), "%s should be direct", f)
				want, _ := s.Lookup(f)
				got, _ := res.Get(f)
				assert.Equal(t, want, got, f)
			}
		})
	}
}

func TestConflictingInputs(t *testing.T) {
	base := scenarioOpts(t)
	rho := stellarDensity(base[study.Period], base[study.ScaledSemiMajor])
	a := q(t, 0.0232, 0.0004, "au")

	cases := []struct {
		name  string
		extra map[study.Field]quantity.Quantity
		drop  []study.Field
		stage string
		want  []study.Field
	}{
		{"aRs+rho_s", map[study.Field]quantity.Quantity{study.StellarDensity: rho}, nil,
			StageOrbitalScale, []study.Field{study.StellarDensity, study.ScaledSemiMajor}},
		{"aRs+a", map[study.Field]quantity.Quantity{study.SemiMajorAxis: a}, nil,
			StageOrbitalScale, []study.Field{study.ScaledSemiMajor, study.SemiMajorAxis}},
		{"rho_s+a", map[study.Field]quantity.Quantity{study.StellarDensity: rho, study.SemiMajorAxis: a},
			[]study.Field{study.ScaledSemiMajor},
			StageOrbitalScale, []study.Field{study.StellarDensity, study.SemiMajorAxis}},
		{"aRs+b", map[study.Field]quantity.Quantity{study.ImpactParameter: q(t, 0.3, 0.05, "")}, nil,
			StageImpact, []study.Field{study.ScaledSemiMajor, study.ImpactParameter}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, prov, err := Resolve(build(t, base, tc.drop, tc.extra))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConflictingInputs)
			var ce *ConflictingInputsError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.stage, ce.Stage)
			assert.Equal(t, tc.want, ce.Fields)
			assert.Equal(t, tc.stage, StageOf(err))
			assert.Equal(t, Result{}, res)
			assert.Zero(t, prov.Len())
		})
	}
}

func TestMissingInput(t *testing.T) {
	cases := []struct {
		drop  study.Field
		stage string
	}{
		{study.Inclination, StageDirects},
		{study.RVSemiAmplitude, StageDirects},
		{study.Albedo, StageDirects},
		{study.MeanMolecularWeight, StageMolecular},
		{study.Period, StagePeriod},
		{study.RadiusRatio, StageRadiusRatio},
		{study.ScaledSemiMajor, StageOrbitalScale},
		{study.StellarTemperature, StagePhotosphere},
	}
	for _, tc := range cases {
		t.Run(string(tc.drop), func(t *testing.T) {
			_, _, err := Resolve(build(t, scenarioOpts(t), []study.Field{tc.drop}, nil))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingInput)
			var me *MissingInputError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, tc.stage, me.Stage)
			assert.NotEmpty(t, me.Alternatives)
			if tc.drop != study.RadiusRatio && tc.drop != study.ScaledSemiMajor {
				assert.Equal(t, tc.drop, me.Field)
			}
			assert.Contains(t, err.Error(), string(me.Field))
		})
	}
}

func TestMissingPhotosphereCombinations(t *testing.T) {
	_, _, err := Resolve(build(t, scenarioOpts(t), []study.Field{study.StellarRadius, study.StellarTemperature}, nil))
	var me *MissingInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, study.StellarRadius, me.Field)
	assert.Len(t, me.Alternatives, 3)

	// Only Ts: still needs Ls.
	_, _, err = Resolve(build(t, scenarioOpts(t), []study.Field{study.StellarRadius}, nil))
	require.ErrorAs(t, err, &me)
	assert.Equal(t, study.StellarRadius, me.Field)
}

func TestPlanetRadiusWinsOverRatio(t *testing.T) {
	Rp := q(t, 1.3, 0.04, "Rjup")
	s := build(t, scenarioOpts(t), nil, map[study.Field]quantity.Quantity{
		study.PlanetRadius: Rp,
		study.RadiusRatio:  q(t, 0.2, 0.01, ""), // deliberately inconsistent
	})
	res, prov := mustResolve(t, s)

	Rs, _ := s.Lookup(study.StellarRadius)
	want := Rp.Div(Rs)
	assert.Equal(t, want, res.RpRs)
	assert.NotEqual(t, 0.2, res.RpRs.Value())
	assert.Equal(t, []study.Field{study.PlanetRadius, study.StellarRadius}, prov.Inputs(study.RadiusRatio))
	assert.True(t, prov.Direct(study.PlanetRadius))
}

func TestPhotosphereRoundTrip(t *testing.T) {
	base := scenarioOpts(t)
	R := base[study.StellarRadius]
	T := base[study.StellarTemperature]

	res, _ := mustResolve(t, build(t, base, nil, nil))
	L := res.Ls
	sigma := 5.670374419e-8
	want := 4 * math.Pi * R.Value() * R.Value() * sigma * math.Pow(T.Value(), 4)
	assert.InDelta(t, want, L.Value(), rel(want))

	// (T, L) -> R
	res, prov := mustResolve(t, build(t, base, []study.Field{study.StellarRadius},
		map[study.Field]quantity.Quantity{study.StellarLuminosity: L}))
	assert.InDelta(t, R.Value(), res.Rs.Value(), rel(R.Value()))
	assert.Equal(t, []study.Field{study.StellarTemperature, study.StellarLuminosity}, prov.Inputs(study.StellarRadius))

	// (R, L) -> T
	res, prov = mustResolve(t, build(t, base, []study.Field{study.StellarTemperature},
		map[study.Field]quantity.Quantity{study.StellarLuminosity: L}))
	assert.InDelta(t, T.Value(), res.Ts.Value(), rel(T.Value()))
	assert.Equal(t, []study.Field{study.StellarRadius, study.StellarLuminosity}, prov.Inputs(study.StellarTemperature))
}

func TestIdempotentAndNonMutating(t *testing.T) {
	s := scenario(t)
	before := s.Given()

	r1, p1 := mustResolve(t, s)
	r2, p2 := mustResolve(t, s)
	assert.Equal(t, r1, r2)
	assert.Equal(t, p1, p2)
	for _, f := range OutputFields {
		a, _ := r1.Get(f)
		b, _ := r2.Get(f)
		assert.Equal(t, math.Float64bits(a.Value()), math.Float64bits(b.Value()), f)
		assert.Equal(t, math.Float64bits(a.Uncertainty()), math.Float64bits(b.Uncertainty()), f)
	}
	assert.Equal(t, before, s.Given())
}

func TestProvenanceInputsIsCopy(t *testing.T) {
	_, prov := mustResolve(t, scenario(t))
	in := prov.Inputs(study.StellarDensity)
	in[0] = "mutated"
	assert.Equal(t, study.Period, prov.Inputs(study.StellarDensity)[0])
	assert.Nil(t, prov.Inputs("nope"))
}

func TestObserverSeesEveryFieldOnce(t *testing.T) {
	seen := map[study.Field]int{}
	var order []string
	eng := New(Config{Observer: func(stage string, f study.Field, inputs []study.Field) {
		seen[f]++
		if len(order) == 0 || order[len(order)-1] != stage {
			order = append(order, stage)
		}
		assert.NotEmpty(t, inputs)
	}})
	_, _, err := eng.Resolve(scenario(t))
	require.NoError(t, err)
	for _, f := range OutputFields {
		assert.Equal(t, 1, seen[f], f)
	}
	var names []string
	for _, s := range eng.Stages() {
		names = append(names, s.Name)
	}
	assert.Equal(t, names, order)
}

func TestDimensionFailureIsFatal(t *testing.T) {
	eng := &Engine{stages: []stage{{
		name:   "broken",
		fields: []study.Field{study.StellarRadius},
		run: func(s *state) error {
			quantity.New(1, 0, quantity.LengthDim).Add(quantity.New(1, 0, quantity.MassDim))
			return nil
		},
	}}}
	res, prov, err := eng.Resolve(scenario(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, quantity.ErrDimensionMismatch))
	assert.Equal(t, "broken", StageOf(err))
	assert.Equal(t, Result{}, res)
	assert.Zero(t, prov.Len())
}

func TestIncompleteStageTable(t *testing.T) {
	eng := &Engine{stages: defaultStages[:3]}
	_, _, err := eng.Resolve(scenario(t))
	assert.ErrorIs(t, err, ErrIncomplete)

	lazy := &Engine{stages: []stage{{name: "lazy", fields: []study.Field{study.Period}, run: func(*state) error { return nil }}}}
	_, _, err = lazy.Resolve(scenario(t))
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestDoubleWritePanics(t *testing.T) {
	st := newState(scenario(t), nil)
	st.put(study.Period, quantity.New(1, 0, quantity.TimeDim), study.Period)
	assert.Panics(t, func() { st.put(study.Period, quantity.New(2, 0, quantity.TimeDim), study.Period) })
}

func TestNonFiniteResultFailsStudy(t *testing.T) {
	tests := []struct {
		name  string
		extra map[study.Field]quantity.Quantity
		stage string
		field study.Field
	}{
		{"albedo at one", map[study.Field]quantity.Quantity{study.Albedo: q(t, 1, 0.05, "")}, StageEquilibrium, study.PlanetTemperature},
		{"albedo above one", map[study.Field]quantity.Quantity{study.Albedo: q(t, 1.2, 0, "")}, StageEquilibrium, study.PlanetTemperature},
		{"face-on orbit", map[study.Field]quantity.Quantity{study.Inclination: q(t, 0, 0, "deg")}, StagePlanetMass, study.PlanetMass},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen []study.Field
			eng := New(Config{Observer: func(_ string, f study.Field, _ []study.Field) { seen = append(seen, f) }})
			res, prov, err := eng.Resolve(build(t, scenarioOpts(t), nil, tc.extra))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNonFinite)
			assert.Equal(t, tc.stage, StageOf(err))
			assert.Contains(t, err.Error(), string(tc.field))
			assert.Equal(t, Result{}, res)
			assert.Zero(t, prov.Len())
			assert.NotContains(t, seen, study.ScaleHeight)
		})
	}
}

func TestNonFiniteStudyDoesNotAffectOthers(t *testing.T) {
	edge := build(t, scenarioOpts(t), nil, map[study.Field]quantity.Quantity{study.Albedo: q(t, 1, 0.05, "")})
	want, _ := mustResolve(t, scenario(t))

	for i, s := range []study.Study{scenario(t), edge, scenario(t)} {
		res, _, err := Resolve(s)
		if i == 1 {
			assert.ErrorIs(t, err, ErrNonFinite)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, want, res)
	}
}

func TestSealRejectsNonFinite(t *testing.T) {
	st := newState(scenario(t), nil)
	st.stage = "fake"
	for _, f := range OutputFields {
		st.put(f, quantity.New(1, 0, f.Dim()), f)
	}
	st.vals[study.PlanetMass] = quantity.New(math.Inf(1), 0, study.PlanetMass.Dim())
	_, _, err := st.seal()
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Equal(t, "fake", StageOf(err))
}
