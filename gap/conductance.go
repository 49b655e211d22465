package gap

import (
	"fmt"
	"math"

	"github.com/thermogap/gapcond/InputParameters"
	"github.com/thermogap/gapcond/utils"
)

// GapConductance computes the effective heat transfer coefficient across a
// thin gap, combining conduction through the gap material with the diffusion
// approximation for radiation, together with its temperature derivative for a
// Newton solve. Geometry parameters are resolved once at construction and are
// immutable afterwards, so a single instance is safe to share across any
// number of concurrent point evaluations.
type GapConductance struct {
	GapGeometryType GapGeometryType
	P1, P2          utils.Point

	GapConductivity                 float64
	GapConductivityFunction         ScalarFunc    // optional, multiplies GapConductivity
	GapConductivityFunctionVariable FieldAccessor // optional, replaces time as the function argument

	StefanBoltzmann float64
	Emissivity      float64 // combined factor 1/e1 + 1/e2 - 1, 0 disables radiation
	MinGap, MaxGap  float64
	Warnings        bool

	mode EvaluationMode
}

// QueryPoint is the per evaluation point context, recomputed every call
type QueryPoint struct {
	QP     int // query point identifier (quadrature node id in search mode)
	Point  utils.Point
	Normal utils.Point // outward unit normal of the surface owning the point
	Temp   float64
	Time   float64
}

// ConductanceResult holds the per point outputs consumed by the enclosing
// assembly
type ConductanceResult struct {
	Conductance   float64
	ConductanceDT float64
	Conductivity  float64
}

// NewGapConductance validates the geometry/coordinate-system/mode combination
// and fixes the geometry parameters. All rejections are ConfigurationErrors;
// nothing here may be mutated once evaluation begins.
func NewGapConductance(params *InputParameters.GapParameters, coordSys CoordinateSystem,
	mode EvaluationMode) (gc *GapConductance, err error) {
	gc = &GapConductance{
		GapConductivity: params.GapConductivity,
		StefanBoltzmann: params.StefanBoltzmann,
		MinGap:          params.MinGap,
		MaxGap:          params.MaxGap,
		Warnings:        params.Warnings,
		mode:            mode,
	}
	if gc.GapGeometryType, gc.P1, gc.P2, err = SetGapGeometryParameters(params, coordSys); err != nil {
		return nil, err
	}
	switch m := mode.(type) {
	case *DirectFields:
		if m.GapDistance == nil {
			return nil, configErrf("no 'GapDistance' field coupled for gap conductance")
		}
		if m.GapTemp == nil {
			return nil, configErrf("no 'GapTemp' field coupled for gap conductance")
		}
	case *SearchBased:
		if m.PairedBoundary == "" {
			return nil, configErrf("no 'PairedBoundary' provided for quadrature point based gap conductance")
		}
		if m.Locator == nil || m.DofMap == nil || m.Solution == nil {
			return nil, configErrf("quadrature point based gap conductance requires a penetration locator, " +
				"a DOF map and a solution accessor")
		}
	default:
		return nil, configErrf("no evaluation mode provided for gap conductance")
	}
	if params.Emissivity1 != 0 && params.Emissivity2 != 0 {
		gc.Emissivity = 1./params.Emissivity1 + 1./params.Emissivity2 - 1
	}
	if gc.MinGap <= 0 {
		// Permitted, but the conduction denominator is then bounded below
		// only by MaxGap
		fmt.Printf("Warning: MinGap = %g leaves the gap conduction denominator unclamped as the gap closes\n",
			gc.MinGap)
	}
	return
}

// GapLength is the geometry dependent effective conduction length used as the
// denominator of the conduction term
func GapLength(gapGeometryType GapGeometryType, radius, r1, r2, minGap, maxGap float64) float64 {
	switch gapGeometryType {
	case CYLINDER:
		return GapCyl(radius, r1, r2, minGap, maxGap)
	case SPHERE:
		return GapSphere(radius, r1, r2, minGap, maxGap)
	default:
		return GapRect(r2-r1, minGap, maxGap)
	}
}

func GapRect(distance, minGap, maxGap float64) float64 {
	return math.Max(minGap, math.Min(distance, maxGap))
}

func GapCyl(radius, r1, r2, minDenom, maxDenom float64) float64 {
	denominator := radius * math.Log(r2/r1)
	return math.Max(minDenom, math.Min(denominator, maxDenom))
}

func GapSphere(radius, r1, r2, minDenom, maxDenom float64) float64 {
	denominator := utils.POW(radius, 2) * ((1. / r1) - (1. / r2))
	return math.Max(minDenom, math.Min(denominator, maxDenom))
}

func (gc *GapConductance) gapK(qp QueryPoint) (gapConductivity float64) {
	gapConductivity = gc.GapConductivity
	if gc.GapConductivityFunction != nil {
		if gc.GapConductivityFunctionVariable != nil {
			gapConductivity *= gc.GapConductivityFunction(
				gc.GapConductivityFunctionVariable.Value(qp.QP), qp.Point)
		} else {
			gapConductivity *= gc.GapConductivityFunction(qp.Time, qp.Point)
		}
	}
	return
}

func (gc *GapConductance) hConduction(k, radius, r1, r2 float64) float64 {
	return k / GapLength(gc.GapGeometryType, radius, r1, r2, gc.MinGap, gc.MaxGap)
}

// dhConduction is identically zero: neither the conductivity nor the gap
// length is differentiated with respect to temperature, a deliberate
// linearization of the Newton system
func (gc *GapConductance) dhConduction() float64 {
	return 0.0
}

// HRadiation is the radiant gap conductance from the diffusion approximation
//
//	qr = sigma*Fe*(T^4 - Tg^4) ~ hr*(T - Tg)
//	hr = sigma*Fe*(T^2 + Tg^2)*(T + Tg)
//
// with the gap treated as infinite parallel planes, Fe = 1/(1/e1 + 1/e2 - 1).
// Emissivity stores the reciprocal combination 1/e1 + 1/e2 - 1 directly.
func (gc *GapConductance) HRadiation(temp, gapTemp float64) float64 {
	if gc.Emissivity == 0.0 {
		return 0.0
	}
	tempFunc := (temp*temp + gapTemp*gapTemp) * (temp + gapTemp)
	return gc.StefanBoltzmann * tempFunc / gc.Emissivity
}

func (gc *GapConductance) DhRadiation(temp, gapTemp float64) float64 {
	if gc.Emissivity == 0.0 {
		return 0.0
	}
	tempFunc := 3*temp*temp + gapTemp*(2*temp+gapTemp)
	return gc.StefanBoltzmann * tempFunc / gc.Emissivity
}
