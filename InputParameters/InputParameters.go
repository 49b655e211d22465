package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML case file
type GapParameters struct {
	Title              string    `yaml:"Title"`
	Quadrature         bool      `yaml:"Quadrature"`      // locate the far side via the penetration search instead of coupled fields
	PairedBoundary     string    `yaml:"PairedBoundary"`  // the boundary to be penetrated, required when Quadrature is true
	GapGeometryType    string    `yaml:"GapGeometryType"` // PLATE, CYLINDER or SPHERE; empty selects by coordinate system
	CylinderAxisPoint1 []float64 `yaml:"CylinderAxisPoint1"`
	CylinderAxisPoint2 []float64 `yaml:"CylinderAxisPoint2"`
	SphereOrigin       []float64 `yaml:"SphereOrigin"`
	GapConductivity    float64   `yaml:"GapConductivity"` // thermal conductivity of the gap material
	StefanBoltzmann    float64   `yaml:"StefanBoltzmann"`
	Emissivity1        float64   `yaml:"Emissivity1"` // emissivity of the near surface, 0 disables radiation
	Emissivity2        float64   `yaml:"Emissivity2"` // emissivity of the far surface, 0 disables radiation
	MinGap             float64   `yaml:"MinGap"`      // minimum gap (denominator) size
	MaxGap             float64   `yaml:"MaxGap"`      // maximum gap (denominator) size
	Warnings           bool      `yaml:"Warnings"`    // report quadrature points with no opposing surface
}

// NewGapParameters returns parameters loaded with the reference defaults
func NewGapParameters() *GapParameters {
	return &GapParameters{
		GapConductivity: 1.0,
		StefanBoltzmann: 5.669e-8,
		MinGap:          1.e-6,
		MaxGap:          1.e6,
	}
}

func (gp *GapParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, gp); err != nil {
		return err
	}
	return gp.Validate()
}

// Validate applies the range checks on scalar parameters. Geometry/mode
// combinations are validated downstream where the coordinate system is known.
func (gp *GapParameters) Validate() error {
	if gp.Emissivity1 < 0 || gp.Emissivity1 > 1 {
		return fmt.Errorf("Emissivity1 must be in [0,1], have %g", gp.Emissivity1)
	}
	if gp.Emissivity2 < 0 || gp.Emissivity2 > 1 {
		return fmt.Errorf("Emissivity2 must be in [0,1], have %g", gp.Emissivity2)
	}
	if gp.MinGap < 0 {
		return fmt.Errorf("MinGap must be >= 0, have %g", gp.MinGap)
	}
	if gp.MaxGap < 0 {
		return fmt.Errorf("MaxGap must be >= 0, have %g", gp.MaxGap)
	}
	for _, pt := range []struct {
		name string
		val  []float64
	}{
		{"CylinderAxisPoint1", gp.CylinderAxisPoint1},
		{"CylinderAxisPoint2", gp.CylinderAxisPoint2},
		{"SphereOrigin", gp.SphereOrigin},
	} {
		if pt.val != nil && len(pt.val) != 3 {
			return fmt.Errorf("%s must have 3 components, have %d", pt.name, len(pt.val))
		}
	}
	return nil
}

func (gp *GapParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", gp.Title)
	fmt.Printf("[%v]\t\t\t= Quadrature\n", gp.Quadrature)
	if gp.Quadrature {
		fmt.Printf("[%s]\t\t= PairedBoundary\n", gp.PairedBoundary)
	}
	fmt.Printf("[%s]\t\t= GapGeometryType\n", gp.GapGeometryType)
	fmt.Printf("%8.5f\t\t= GapConductivity\n", gp.GapConductivity)
	fmt.Printf("%8.4g\t\t= StefanBoltzmann\n", gp.StefanBoltzmann)
	fmt.Printf("%8.5f\t\t= Emissivity1\n", gp.Emissivity1)
	fmt.Printf("%8.5f\t\t= Emissivity2\n", gp.Emissivity2)
	fmt.Printf("%8.4g\t\t= MinGap\n", gp.MinGap)
	fmt.Printf("%8.4g\t\t= MaxGap\n", gp.MaxGap)
}
