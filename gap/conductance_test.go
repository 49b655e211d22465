package gap

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/thermogap/gapcond/InputParameters"
	"github.com/thermogap/gapcond/utils"
)

// test fakes for the collaborator contracts

type constField float64

func (f constField) Value(qp int) float64 { return float64(f) }

type mapLocator map[int]*PenetrationInfo

func (m mapLocator) PenetrationInfo(qp int) *PenetrationInfo { return m[qp] }

type pairDOFMap struct{}

func (pairDOFMap) DofIndices(elem, varNum int) []int { return []int{2 * elem, 2*elem + 1} }

type vecSolution struct{ v *mat.VecDense }

func (s vecSolution) At(dof int) float64 { return s.v.AtVec(dof) }

func plateParams() *InputParameters.GapParameters {
	gp := InputParameters.NewGapParameters()
	gp.GapGeometryType = "PLATE"
	return gp
}

func directMode(gapDistance, gapTemp float64) *DirectFields {
	return &DirectFields{
		GapDistance: constField(gapDistance),
		GapTemp:     constField(gapTemp),
	}
}

func TestGapLength(t *testing.T) {
	var (
		minGap = 1.e-6
		maxGap = 1.e6
	)
	{ // Clamp range and idempotence
		for _, raw := range []float64{-5, 0, 1.e-9, 0.01, 3, 1.e7} {
			L := GapRect(raw, minGap, maxGap)
			assert.True(t, L >= minGap && L <= maxGap)
			assert.Equal(t, L, GapRect(L, minGap, maxGap)) // clamp(clamp(x)) == clamp(x)
		}
	}
	{ // PLATE: in-range distance passes through exactly, inverted distance clamps to MinGap
		assert.Equal(t, 0.01, GapRect(0.01, minGap, maxGap))
		assert.Equal(t, minGap, GapRect(-5, minGap, maxGap))
	}
	{ // CYLINDER: radius * ln(r2/r1)
		var (
			r1, r2 = 0.05, 0.052
			expect = r1 * math.Log(r2/r1)
		)
		assert.Equal(t, expect, GapCyl(r1, r1, r2, minGap, maxGap))
		assert.Equal(t, expect, GapLength(CYLINDER, r1, r1, r2, minGap, maxGap))
	}
	{ // SPHERE: radius^2 * (1/r1 - 1/r2)
		var (
			r1, r2 = 0.05, 0.052
			expect = r1 * r1 * ((1. / r1) - (1. / r2))
		)
		assert.Equal(t, expect, GapSphere(r1, r1, r2, minGap, maxGap))
		assert.Equal(t, expect, GapLength(SPHERE, r1, r1, r2, minGap, maxGap))
	}
}

func TestRadiation(t *testing.T) {
	{ // Either emissivity zero disables radiation entirely
		for _, es := range [][2]float64{{0, 0}, {0.8, 0}, {0, 0.8}} {
			gp := plateParams()
			gp.Emissivity1, gp.Emissivity2 = es[0], es[1]
			gc, err := NewGapConductance(gp, COORD_XYZ, directMode(-0.01, 300))
			require.NoError(t, err)
			assert.Equal(t, 0., gc.HRadiation(500, 400))
			assert.Equal(t, 0., gc.DhRadiation(500, 400))
		}
	}
	{ // Closed form h_r = sigma*(T^2+Tg^2)*(T+Tg)/Fe, Fe = 1/e1 + 1/e2 - 1
		var (
			gp    = plateParams()
			T, Tg = 500., 400.
			sigma = 5.669e-8
			Fe    = 1./0.8 + 1./0.8 - 1 // 1.5
		)
		gp.Emissivity1, gp.Emissivity2 = 0.8, 0.8
		gc, err := NewGapConductance(gp, COORD_XYZ, directMode(-0.01, Tg))
		require.NoError(t, err)
		assert.Equal(t, Fe, gc.Emissivity)
		expect := sigma * (T*T + Tg*Tg) * (T + Tg) / Fe
		assert.InDelta(t, 13.94574, expect, 1.e-5) // sanity: the closed form itself
		assert.Equal(t, expect, gc.HRadiation(T, Tg))
		expectDT := sigma * (3*T*T + Tg*(2*T+Tg)) / Fe
		assert.Equal(t, expectDT, gc.DhRadiation(T, Tg))
	}
}

func TestComputeQpProperties(t *testing.T) {
	qp := QueryPoint{
		QP:     0,
		Point:  utils.NewPoint(0.5, 0, 0),
		Normal: utils.NewPoint(0, 1, 0),
		Temp:   400,
	}
	{ // End to end PLATE, conduction only: h = k/L = 1.0/0.02, dh/dT = 0
		gc, err := NewGapConductance(plateParams(), COORD_XYZ, directMode(-0.02, 300))
		require.NoError(t, err)
		res, err := gc.ComputeQpProperties(qp)
		require.NoError(t, err)
		assert.Equal(t, 50., res.Conductance)
		assert.Equal(t, 0., res.ConductanceDT)
		assert.Equal(t, 1., res.Conductivity)
	}
	{ // Conduction + radiation, derivative comes only from the radiation term
		gp := plateParams()
		gp.Emissivity1, gp.Emissivity2 = 0.8, 0.8
		gc, err := NewGapConductance(gp, COORD_XYZ, directMode(-0.02, 300))
		require.NoError(t, err)
		res, err := gc.ComputeQpProperties(qp)
		require.NoError(t, err)
		assert.Equal(t, 50.+gc.HRadiation(400, 300), res.Conductance)
		assert.Equal(t, gc.DhRadiation(400, 300), res.ConductanceDT)
	}
	{ // Conductivity scaling function evaluated at current time
		gp := plateParams()
		gp.GapConductivity = 2.0
		gc, err := NewGapConductance(gp, COORD_XYZ, directMode(-0.02, 300))
		require.NoError(t, err)
		gc.GapConductivityFunction = func(tt float64, p utils.Point) float64 {
			return 1 + tt + p[0]
		}
		qpT := qp
		qpT.Time = 2.5
		res, err := gc.ComputeQpProperties(qpT)
		require.NoError(t, err)
		assert.InDelta(t, 2.0*(1+2.5+0.5), res.Conductivity, 1.e-14)
		assert.InDelta(t, res.Conductivity/0.02, res.Conductance, 1.e-10)
	}
	{ // Conductivity scaling function evaluated at a coupled variable instead of time
		gp := plateParams()
		gc, err := NewGapConductance(gp, COORD_XYZ, directMode(-0.02, 300))
		require.NoError(t, err)
		gc.GapConductivityFunction = func(v float64, p utils.Point) float64 { return v }
		gc.GapConductivityFunctionVariable = constField(3)
		res, err := gc.ComputeQpProperties(qp)
		require.NoError(t, err)
		assert.Equal(t, 3., res.Conductivity)
		assert.Equal(t, 3./0.02, res.Conductance)
	}
	{ // Clamped closed gap: MinGap bounds the conduction denominator
		gp := plateParams()
		gc, err := NewGapConductance(gp, COORD_XYZ, directMode(5, 300)) // inverted gap
		require.NoError(t, err)
		res, err := gc.ComputeQpProperties(qp)
		require.NoError(t, err)
		assert.Equal(t, 1./gp.MinGap, res.Conductance)
	}
}

func TestSearchBasedMode(t *testing.T) {
	var (
		solution = vecSolution{v: mat.NewVecDense(4, []float64{310, 330, 350, 370})}
		qp       = QueryPoint{
			QP:     7,
			Point:  utils.NewPoint(0.5, 0, 0),
			Normal: utils.NewPoint(0, 1, 0),
			Temp:   400,
		}
	)
	searchMode := func(loc PenetrationLocator) *SearchBased {
		return &SearchBased{
			PairedBoundary: "far",
			Locator:        loc,
			DofMap:         pairDOFMap{},
			Solution:       solution,
		}
	}
	{ // Matched point: gap temp is the phi-weighted sum over the side's dofs
		loc := mapLocator{7: {Distance: -0.02, Side: 1, SidePhi: []float64{0.25, 0.75}}}
		gc, err := NewGapConductance(plateParams(), COORD_XYZ, searchMode(loc))
		require.NoError(t, err)
		gapTemp, gapDistance, hasInfo, err := gc.ComputeGapValues(qp)
		require.NoError(t, err)
		assert.True(t, hasInfo)
		assert.Equal(t, -0.02, gapDistance)
		assert.Equal(t, 0.25*350+0.75*370, gapTemp) // side 1 -> dofs 2,3
		res, err := gc.ComputeQpProperties(qp)
		require.NoError(t, err)
		assert.Equal(t, 50., res.Conductance)
	}
	{ // No match: conductance and derivative are exactly zero regardless of inputs
		gc, err := NewGapConductance(plateParams(), COORD_XYZ, searchMode(mapLocator{}))
		require.NoError(t, err)
		gapTemp, gapDistance, hasInfo, err := gc.ComputeGapValues(qp)
		require.NoError(t, err)
		assert.False(t, hasInfo)
		assert.Equal(t, 0., gapTemp)
		assert.Equal(t, float64(NoContactDistance), gapDistance)
		res, err := gc.ComputeQpProperties(qp)
		require.NoError(t, err)
		assert.Equal(t, ConductanceResult{}, res)
	}
	{ // No match with radiation configured still yields exactly zero
		gp := plateParams()
		gp.Emissivity1, gp.Emissivity2 = 0.8, 0.9
		gc, err := NewGapConductance(gp, COORD_XYZ, searchMode(mapLocator{}))
		require.NoError(t, err)
		res, err := gc.ComputeQpProperties(qp)
		require.NoError(t, err)
		assert.Equal(t, 0., res.Conductance)
		assert.Equal(t, 0., res.ConductanceDT)
	}
	{ // A locator reporting a positive matched distance violates the sign contract
		loc := mapLocator{7: {Distance: 0.02, Side: 0, SidePhi: []float64{1, 0}}}
		gc, err := NewGapConductance(plateParams(), COORD_XYZ, searchMode(loc))
		require.NoError(t, err)
		_, _, _, err = gc.ComputeGapValues(qp)
		var geomErr *GeometryError
		assert.True(t, errors.As(err, &geomErr))
	}
}

func TestModeValidation(t *testing.T) {
	{ // Direct mode requires both coupled fields
		_, err := NewGapConductance(plateParams(), COORD_XYZ, &DirectFields{GapTemp: constField(300)})
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
		_, err = NewGapConductance(plateParams(), COORD_XYZ, &DirectFields{GapDistance: constField(-0.01)})
		assert.True(t, errors.As(err, &cfgErr))
	}
	{ // Search mode requires the paired boundary and all collaborator handles
		_, err := NewGapConductance(plateParams(), COORD_XYZ, &SearchBased{
			Locator:  mapLocator{},
			DofMap:   pairDOFMap{},
			Solution: vecSolution{v: mat.NewVecDense(1, []float64{0})},
		})
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
		_, err = NewGapConductance(plateParams(), COORD_XYZ, &SearchBased{PairedBoundary: "far"})
		assert.True(t, errors.As(err, &cfgErr))
	}
	{ // No mode at all
		_, err := NewGapConductance(plateParams(), COORD_XYZ, nil)
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	{ // Parallel sweep matches the serial result point for point
		gc, err := NewGapConductance(plateParams(), COORD_XYZ, directMode(-0.02, 300))
		require.NoError(t, err)
		points := make([]QueryPoint, 1000)
		for i := range points {
			points[i] = QueryPoint{
				QP:     i,
				Point:  utils.NewPoint(float64(i)/1000., 0, 0),
				Normal: utils.NewPoint(0, 1, 0),
				Temp:   400,
			}
		}
		results, err := gc.EvaluateConcurrent(points, 8)
		require.NoError(t, err)
		require.Len(t, results, 1000)
		for i, res := range results {
			serial, err := gc.ComputeQpProperties(points[i])
			require.NoError(t, err)
			assert.Equal(t, serial, res)
		}
	}
	{ // A degenerate point anywhere in the sweep surfaces as an error
		gp := InputParameters.NewGapParameters()
		gp.GapGeometryType = "CYLINDER"
		gp.CylinderAxisPoint1 = []float64{0, 0, 0}
		gp.CylinderAxisPoint2 = []float64{0, 0, 1}
		gc, err := NewGapConductance(gp, COORD_XYZ, directMode(-0.002, 300))
		require.NoError(t, err)
		points := make([]QueryPoint, 64)
		for i := range points {
			points[i] = QueryPoint{
				QP:     i,
				Point:  utils.NewPoint(0.05, 0, float64(i)),
				Normal: utils.NewPoint(1, 0, 0),
			}
		}
		points[37].Normal = utils.NewPoint(0, 0, 1) // axial normal, degenerate
		_, err = gc.EvaluateConcurrent(points, 4)
		var geomErr *GeometryError
		assert.True(t, errors.As(err, &geomErr))
	}
}

func BenchmarkComputeQpProperties(b *testing.B) {
	gp := plateParams()
	gp.Emissivity1, gp.Emissivity2 = 0.8, 0.8
	gc, err := NewGapConductance(gp, COORD_XYZ, directMode(-0.02, 300))
	if err != nil {
		b.Fatal(err)
	}
	qp := QueryPoint{
		Point:  utils.NewPoint(0.5, 0, 0),
		Normal: utils.NewPoint(0, 1, 0),
		Temp:   400,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = gc.ComputeQpProperties(qp); err != nil {
			b.Fatal(err)
		}
	}
}
