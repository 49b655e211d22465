package gap

import (
	"sync"

	"github.com/thermogap/gapcond/utils"
)

// ComputeQpProperties evaluates the gap conductance and its temperature
// derivative at one point. The computation is pure: all state it reads is
// fixed at construction.
func (gc *GapConductance) ComputeQpProperties(qp QueryPoint) (res ConductanceResult, err error) {
	gapTemp, gapDistance, hasInfo, err := gc.ComputeGapValues(qp)
	if err != nil {
		return
	}
	var r1, r2, radius float64
	if r1, r2, radius, err = ComputeGapRadii(gc.GapGeometryType, qp.Point, gc.P1, gc.P2,
		gapDistance, qp.Normal); err != nil {
		return
	}
	if !hasInfo {
		// No contact means no heat path
		return ConductanceResult{}, nil
	}
	res.Conductivity = gc.gapK(qp)
	res.Conductance = gc.hConduction(res.Conductivity, radius, r1, r2) +
		gc.HRadiation(qp.Temp, gapTemp)
	res.ConductanceDT = gc.dhConduction() + gc.DhRadiation(qp.Temp, gapTemp)
	return
}

// EvaluateConcurrent maps ComputeQpProperties over a set of points using np
// goroutines, one per PartitionMap bucket. Points are independent, so the only
// synchronization is the final join; the first error encountered in any
// partition is returned.
func (gc *GapConductance) EvaluateConcurrent(points []QueryPoint, np int) ([]ConductanceResult, error) {
	if len(points) == 0 {
		return nil, nil
	}
	if np < 1 {
		np = 1
	}
	if np > len(points) {
		np = len(points)
	}
	var (
		results = make([]ConductanceResult, len(points))
		errs    = make([]error, np)
		pm      = utils.NewPartitionMap(np, len(points))
		wg      sync.WaitGroup
	)
	for n := 0; n < np; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(n)
			for k := kMin; k < kMax; k++ {
				if results[k], errs[n] = gc.ComputeQpProperties(points[k]); errs[n] != nil {
					return
				}
			}
		}(n)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
