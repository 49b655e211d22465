package GapHeat

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/thermogap/gapcond/InputParameters"
	"github.com/thermogap/gapcond/gap"
	"github.com/thermogap/gapcond/utils"
)

type CaseType uint8

const (
	PLATE_PAIR CaseType = iota
	CONCENTRIC_CYLINDERS
	CONCENTRIC_SPHERES
)

var case_names = []string{
	"Parallel Plate Pair",
	"Concentric Cylinders",
	"Concentric Spheres",
}

// GapHeat is a model problem: two opposed discretized surfaces separated by a
// thin gap, with prescribed temperature fields on both sides. Conductance is
// evaluated at every near-surface point in both evaluation modes and the
// h*(T - Tg) interface coupling is assembled into a sparse matrix block.
type GapHeat struct {
	Case           CaseType
	N              int // evaluation points on the near surface
	Params         *InputParameters.GapParameters
	CoordSys       gap.CoordinateSystem
	ParallelDegree int

	Points  []utils.Point // near surface evaluation points
	Normals []utils.Point
	Temps   []float64

	FarNodes []utils.Point // far surface nodes, ordered along the surface
	FarTemps *mat.VecDense // nodal temperatures, the "solution vector"

	Locator *SegmentLocator
}

const (
	plateGap    = 0.02
	innerRadius = 0.05
	outerRadius = 0.052
)

func NewGapHeat(caseType CaseType, N, parallelDegree int,
	params *InputParameters.GapParameters) (gh *GapHeat) {
	gh = &GapHeat{
		Case:           caseType,
		N:              N,
		Params:         params,
		CoordSys:       gap.COORD_XYZ,
		ParallelDegree: parallelDegree,
	}
	var (
		nFar     = N + 3 // overhang so every query point lands inside a far segment
		farTemps = make([]float64, nFar)
	)
	gh.Points = make([]utils.Point, N)
	gh.Normals = make([]utils.Point, N)
	gh.Temps = utils.ConstArray(N, 400)
	gh.FarNodes = make([]utils.Point, nFar)
	switch caseType {
	case PLATE_PAIR:
		// Near plate along y=0 facing +y, far plate at y=plateGap facing -y
		for i := 0; i < N; i++ {
			gh.Points[i] = utils.NewPoint(float64(i)/float64(N-1), 0, 0)
			gh.Normals[i] = utils.NewPoint(0, 1, 0)
		}
		for n := 0; n < nFar; n++ {
			x := -0.1 + 1.2*float64(n)/float64(nFar-1)
			gh.FarNodes[n] = utils.NewPoint(x, plateGap, 0)
			farTemps[n] = 300 + 50*x
		}
	case CONCENTRIC_CYLINDERS:
		params.CylinderAxisPoint1 = []float64{0, 0, 0}
		params.CylinderAxisPoint2 = []float64{0, 0, 1}
		params.GapGeometryType = "CYLINDER"
		gh.buildArcs(farTemps)
	case CONCENTRIC_SPHERES:
		params.SphereOrigin = []float64{0, 0, 0}
		params.GapGeometryType = "SPHERE"
		gh.buildArcs(farTemps)
	}
	gh.FarTemps = mat.NewVecDense(nFar, farTemps)
	gh.Locator = &SegmentLocator{
		QueryPoints: gh.Points,
		Normals:     gh.Normals,
		FarNodes:    gh.FarNodes,
	}
	return
}

// buildArcs places the near points on a quarter arc of the inner surface and
// the far nodes on a wider arc of the outer surface, both in the equatorial
// plane, with outward radial normals on the inner (near) surface
func (gh *GapHeat) buildArcs(farTemps []float64) {
	var (
		N    = gh.N
		nFar = len(gh.FarNodes)
	)
	for i := 0; i < N; i++ {
		theta := 0.5 * math.Pi * float64(i) / float64(N-1)
		rHat := utils.NewPoint(math.Cos(theta), math.Sin(theta), 0)
		gh.Points[i] = rHat.Scale(innerRadius)
		gh.Normals[i] = rHat
	}
	for n := 0; n < nFar; n++ {
		theta := -0.05*math.Pi + 0.6*math.Pi*float64(n)/float64(nFar-1)
		gh.FarNodes[n] = utils.NewPoint(math.Cos(theta), math.Sin(theta), 0).Scale(outerRadius)
		farTemps[n] = 300 + 20*theta
	}
}

// NodalField is a FieldAccessor over a plain per point slice
type NodalField []float64

func (f NodalField) Value(qp int) float64 { return f[qp] }

// VecSolution adapts a gonum vector to the SolutionAccessor contract
type VecSolution struct {
	V *mat.VecDense
}

func (s VecSolution) At(dof int) float64 { return s.V.AtVec(dof) }

// SegmentDOFMap maps far segment i to its node ids (i, i+1); node ids double
// as global dof indices in this model problem
type SegmentDOFMap struct{}

func (SegmentDOFMap) DofIndices(elem, varNum int) []int { return []int{elem, elem + 1} }

// SegmentLocator is a brute force nearest-segment penetration search over the
// far surface polyline. It honors the search contract: matched distances are
// <= 0, weights are the linear shape functions at the projection.
type SegmentLocator struct {
	QueryPoints []utils.Point
	Normals     []utils.Point
	FarNodes    []utils.Point
}

func (sl *SegmentLocator) PenetrationInfo(qp int) *gap.PenetrationInfo {
	if qp < 0 || qp >= len(sl.QueryPoints) {
		return nil
	}
	var (
		p        = sl.QueryPoints[qp]
		normal   = sl.Normals[qp]
		bestDist = math.MaxFloat64
		bestSeg  = -1
		bestS    float64
	)
	for seg := 0; seg < len(sl.FarNodes)-1; seg++ {
		var (
			a = sl.FarNodes[seg]
			b = sl.FarNodes[seg+1]
			d = b.Sub(a)
			s = -(a.Sub(p).Dot(d)) / d.NormSq()
		)
		if s < 0 || s > 1 {
			continue
		}
		q := a.Add(d.Scale(s))
		if q.Sub(p).Dot(normal) <= 0 {
			continue // far point is behind the near surface
		}
		if dist := q.Sub(p).Norm(); dist < bestDist {
			bestDist, bestSeg, bestS = dist, seg, s
		}
	}
	if bestSeg < 0 {
		return nil
	}
	return &gap.PenetrationInfo{
		Distance: -bestDist,
		Side:     bestSeg,
		SidePhi:  []float64{1 - bestS, bestS},
	}
}

// gapFields samples the match distance and far temperature at each near
// point, playing the role of the externally computed gap distance and gap
// temperature aux fields in node based mode
func (gh *GapHeat) gapFields() (gapDistance, gapTemp NodalField) {
	gapDistance = make(NodalField, gh.N)
	gapTemp = make(NodalField, gh.N)
	for i := 0; i < gh.N; i++ {
		pinfo := gh.Locator.PenetrationInfo(i)
		if pinfo == nil {
			panic(fmt.Errorf("model problem far surface does not cover near point %d at %s",
				i, gh.Points[i]))
		}
		gapDistance[i] = pinfo.Distance
		gapTemp[i] = pinfo.SidePhi[0]*gh.FarTemps.AtVec(pinfo.Side) +
			pinfo.SidePhi[1]*gh.FarTemps.AtVec(pinfo.Side+1)
	}
	return
}

func (gh *GapHeat) queryPoints() (points []gap.QueryPoint) {
	points = make([]gap.QueryPoint, gh.N)
	for i := range points {
		points[i] = gap.QueryPoint{
			QP:     i,
			Point:  gh.Points[i],
			Normal: gh.Normals[i],
			Temp:   gh.Temps[i],
		}
	}
	return
}

// Run evaluates the conductance at every near point in both modes and
// assembles the quadrature mode interface coupling h*(T - Tg) into a sparse
// DOK block over the combined near+far dof space
func (gh *GapHeat) Run(verbose bool) (nodeResults, quadResults []gap.ConductanceResult,
	K *sparse.DOK, err error) {
	var (
		points             = gh.queryPoints()
		gcNode, gcQuad     *gap.GapConductance
		gapDistanceField   NodalField
		gapTempField       NodalField
		nDOF               = gh.N + len(gh.FarNodes)
		nearDOF            = gh.N
		dofMap             = SegmentDOFMap{}
	)
	gapDistanceField, gapTempField = gh.gapFields()
	if gcNode, err = gap.NewGapConductance(gh.Params, gh.CoordSys, &gap.DirectFields{
		GapDistance: gapDistanceField,
		GapTemp:     gapTempField,
	}); err != nil {
		return
	}
	if gcQuad, err = gap.NewGapConductance(gh.Params, gh.CoordSys, &gap.SearchBased{
		PairedBoundary: "far",
		Locator:        gh.Locator,
		DofMap:         dofMap,
		Solution:       VecSolution{V: gh.FarTemps},
	}); err != nil {
		return
	}
	if nodeResults, err = gcNode.EvaluateConcurrent(points, gh.ParallelDegree); err != nil {
		return
	}
	if quadResults, err = gcQuad.EvaluateConcurrent(points, gh.ParallelDegree); err != nil {
		return
	}

	K = sparse.NewDOK(nDOF, nDOF)
	for i, res := range quadResults {
		pinfo := gh.Locator.PenetrationInfo(i)
		if pinfo == nil {
			continue // no contact, no coupling
		}
		h := res.Conductance
		K.Set(i, i, K.At(i, i)+h)
		K.Set(i, nearDOF+pinfo.Side, K.At(i, nearDOF+pinfo.Side)-h*pinfo.SidePhi[0])
		K.Set(i, nearDOF+pinfo.Side+1, K.At(i, nearDOF+pinfo.Side+1)-h*pinfo.SidePhi[1])
	}

	if verbose {
		fmt.Printf("Model: %s, N = %d points, parallel degree %d\n",
			case_names[gh.Case], gh.N, gh.ParallelDegree)
		gh.Params.Print()
		fmt.Printf("%4s %12s %12s %12s %12s\n", "pt", "h(node)", "h(quad)", "dh/dT", "k")
		for i := range quadResults {
			fmt.Printf("%4d %12.5f %12.5f %12.5f %12.5f\n", i,
				nodeResults[i].Conductance, quadResults[i].Conductance,
				quadResults[i].ConductanceDT, quadResults[i].Conductivity)
		}
	}
	return
}
