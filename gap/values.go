package gap

import (
	"fmt"

	"github.com/thermogap/gapcond/utils"
)

// NoContactDistance is the sentinel gap distance reported when the contact
// search finds no opposing surface for a query point
const NoContactDistance = 88888

// FieldAccessor supplies per point values of a coupled field, already
// interpolated by the enclosing assembly. Stable for one evaluation pass.
type FieldAccessor interface {
	Value(qp int) float64
}

// PenetrationInfo is the record returned by the contact search for a matched
// query point. Distance is signed: <= 0 by construction when the opposing
// surface faces the query point. SidePhi holds the shape function values of
// the matched opposing element at the contact point, ordered to match the
// element's node ordering in the DOF map.
type PenetrationInfo struct {
	Distance float64
	Side     int // matched opposing element handle
	SidePhi  []float64
}

// PenetrationLocator is the contact/penetration search collaborator. A nil
// return means no opposing surface was found for the query point.
type PenetrationLocator interface {
	PenetrationInfo(qp int) *PenetrationInfo
}

// DOFMap returns the ordered global indices of an element's nodes for one
// variable
type DOFMap interface {
	DofIndices(elem, varNum int) []int
}

// SolutionAccessor reads the current (possibly not yet assembled) solution
// vector by global index
type SolutionAccessor interface {
	At(dof int) float64
}

// ScalarFunc evaluates a scalar at (t, p) where t is either the simulation
// time or a coupled variable's value, used for conductivity scaling
type ScalarFunc func(t float64, p utils.Point) float64

// EvaluationMode selects how the far side of the gap is located, fixed at
// construction: DirectFields reads precomputed nodal fields, SearchBased
// queries the penetration locator per point.
type EvaluationMode interface {
	evaluationMode()
}

type DirectFields struct {
	GapDistance FieldAccessor
	GapTemp     FieldAccessor
}

func (*DirectFields) evaluationMode() {}

type SearchBased struct {
	PairedBoundary string
	Locator        PenetrationLocator
	DofMap         DOFMap
	Solution       SolutionAccessor
	VarNum         int // temperature variable identifier in the DOF map
}

func (*SearchBased) evaluationMode() {}

// ComputeGapValues produces the opposing side temperature and the signed gap
// distance for one evaluation point. hasInfo is false when the search found
// no opposing surface, in which case the conductance is forced to zero
// downstream.
func (gc *GapConductance) ComputeGapValues(qp QueryPoint) (gapTemp, gapDistance float64,
	hasInfo bool, err error) {
	switch m := gc.mode.(type) {
	case *DirectFields:
		hasInfo = true
		gapTemp = m.GapTemp.Value(qp.QP)
		gapDistance = m.GapDistance.Value(qp.QP)
	case *SearchBased:
		gapTemp = 0
		gapDistance = NoContactDistance
		hasInfo = false

		pinfo := m.Locator.PenetrationInfo(qp.QP)
		if pinfo == nil {
			if gc.Warnings {
				fmt.Printf("Warning: no gap value information found for node %d at coordinate %s\n",
					qp.QP, qp.Point)
			}
			return
		}
		if pinfo.Distance > 0 {
			err = geomErrf("penetration search returned positive distance %g for node %d, "+
				"matched gap distances must be <= 0", pinfo.Distance, qp.QP)
			return
		}
		gapDistance = pinfo.Distance
		hasInfo = true

		dofIndices := m.DofMap.DofIndices(pinfo.Side, m.VarNum)
		if len(dofIndices) != len(pinfo.SidePhi) {
			panic(fmt.Errorf("side %d has %d dof indices but %d shape function values",
				pinfo.Side, len(dofIndices), len(pinfo.SidePhi)))
		}
		for i, dof := range dofIndices {
			gapTemp += pinfo.SidePhi[i] * m.Solution.At(dof)
		}
	default:
		panic(fmt.Errorf("unknown evaluation mode %T", gc.mode))
	}
	return
}
