package gap

import (
	"github.com/thermogap/gapcond/InputParameters"
	"github.com/thermogap/gapcond/utils"
)

type GapGeometryType uint8

const (
	PLATE GapGeometryType = iota
	CYLINDER
	SPHERE
)

var GapGeometryNameMap = map[string]GapGeometryType{
	"PLATE":    PLATE,
	"CYLINDER": CYLINDER,
	"SPHERE":   SPHERE,
}

func (gt GapGeometryType) String() string {
	switch gt {
	case PLATE:
		return "PLATE"
	case CYLINDER:
		return "CYLINDER"
	case SPHERE:
		return "SPHERE"
	}
	return "UNKNOWN"
}

type CoordinateSystem uint8

const (
	COORD_XYZ CoordinateSystem = iota // Cartesian
	COORD_RZ                          // Axisymmetric, y is the symmetry axis
	COORD_RSPHERICAL                  // Spherically symmetric, origin at x=0
)

var CoordinateSystemNameMap = map[string]CoordinateSystem{
	"XYZ":        COORD_XYZ,
	"RZ":         COORD_RZ,
	"RSPHERICAL": COORD_RSPHERICAL,
}

func (cs CoordinateSystem) String() string {
	switch cs {
	case COORD_XYZ:
		return "XYZ"
	case COORD_RZ:
		return "RZ"
	case COORD_RSPHERICAL:
		return "RSPHERICAL"
	}
	return "UNKNOWN"
}

func pointFromSlice(s []float64) (p utils.Point) {
	copy(p[:], s)
	return
}

// SetGapGeometryParameters resolves the gap geometry type and its axis/origin
// points from the case parameters and the model coordinate system. It runs
// once, before any per point evaluation; every rejected combination is a
// ConfigurationError.
func SetGapGeometryParameters(params *InputParameters.GapParameters,
	coordSys CoordinateSystem) (gapGeometryType GapGeometryType,
	p1, p2 utils.Point, err error) {
	if params.GapGeometryType != "" {
		var ok bool
		if gapGeometryType, ok = GapGeometryNameMap[params.GapGeometryType]; !ok {
			err = configErrf("unknown GapGeometryType %q, must be one of PLATE, CYLINDER, SPHERE",
				params.GapGeometryType)
			return
		}
	} else {
		switch coordSys {
		case COORD_XYZ:
			gapGeometryType = PLATE
		case COORD_RZ:
			gapGeometryType = CYLINDER
		case COORD_RSPHERICAL:
			gapGeometryType = SPHERE
		}
	}

	switch gapGeometryType {
	case PLATE:
		if coordSys == COORD_RSPHERICAL {
			err = configErrf("'GapGeometryType = PLATE' cannot be used with models having a spherical coordinate system")
			return
		}
	case CYLINDER:
		switch coordSys {
		case COORD_XYZ:
			if params.CylinderAxisPoint1 == nil || params.CylinderAxisPoint2 == nil {
				err = configErrf("For 'GapGeometryType = CYLINDER' to be used with a Cartesian model, " +
					"'CylinderAxisPoint1' and 'CylinderAxisPoint2' must be specified")
				return
			}
			p1 = pointFromSlice(params.CylinderAxisPoint1)
			p2 = pointFromSlice(params.CylinderAxisPoint2)
		case COORD_RZ:
			if params.CylinderAxisPoint1 != nil || params.CylinderAxisPoint2 != nil {
				err = configErrf("The 'CylinderAxisPoint1' and 'CylinderAxisPoint2' cannot be specified " +
					"with axisymmetric models, the y-axis is used as the cylindrical axis of symmetry")
				return
			}
			p1 = utils.NewPoint(0, 0, 0)
			p2 = utils.NewPoint(0, 1, 0)
		case COORD_RSPHERICAL:
			err = configErrf("'GapGeometryType = CYLINDER' cannot be used with models having a spherical coordinate system")
			return
		}
	case SPHERE:
		switch coordSys {
		case COORD_XYZ, COORD_RZ:
			if params.SphereOrigin == nil {
				err = configErrf("For 'GapGeometryType = SPHERE' to be used with a Cartesian or axisymmetric " +
					"model, 'SphereOrigin' must be specified")
				return
			}
			p1 = pointFromSlice(params.SphereOrigin)
		case COORD_RSPHERICAL:
			if params.SphereOrigin != nil {
				err = configErrf("The 'SphereOrigin' cannot be specified with spherical models, " +
					"x=0 is used as the spherical origin")
				return
			}
			p1 = utils.NewPoint(0, 0, 0)
		}
	}
	return
}

// ComputeGapRadii converts the signed gap distance at currentPoint into the
// pair of radii bounding the gap plus a representative radius for the
// effective conduction length. gapDistance is negative by construction for a
// matched point (see PenetrationInfo).
func ComputeGapRadii(gapGeometryType GapGeometryType, currentPoint, p1, p2 utils.Point,
	gapDistance float64, currentNormal utils.Point) (r1, r2, radius float64, err error) {
	switch gapGeometryType {
	case CYLINDER:
		// p1 + t*(p2-p1) defines the cylindrical axis; the nearest point on
		// the axis to currentPoint sets the radial direction
		p := currentPoint.NearestPointOnLine(p1, p2)
		radVec, rad := currentPoint.Sub(p).Unit()
		radDotNorm := radVec.Dot(currentNormal)
		switch {
		case radDotNorm > 0: // on inside surface
			r1 = rad
			r2 = rad - gapDistance
			radius = r1
		case radDotNorm < 0: // on outside surface
			r1 = rad + gapDistance
			r2 = rad
			radius = r2
		default:
			err = geomErrf("degenerate surface normal for cylindrical gap at %s: "+
				"normal %s is perpendicular to the radial direction", currentPoint, currentNormal)
			return
		}
	case SPHERE:
		originToCurrPoint := currentPoint.Sub(p1)
		normalDot := originToCurrPoint.Dot(currentNormal)
		currPointRadius := originToCurrPoint.Norm()
		switch {
		case normalDot > 0: // on inside surface
			r1 = currPointRadius
			r2 = currPointRadius - gapDistance
			radius = r1
		case normalDot < 0: // on outside surface
			r1 = currPointRadius + gapDistance
			r2 = currPointRadius
			radius = r2
		default:
			err = geomErrf("degenerate surface normal for spherical gap at %s: "+
				"normal %s is perpendicular to the radial direction", currentPoint, currentNormal)
			return
		}
	default:
		r2 = -gapDistance
		r1 = 0
		radius = 0
	}
	return
}
