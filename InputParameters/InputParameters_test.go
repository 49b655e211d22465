package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapParameters(t *testing.T) {
	{ // Defaults match the reference values
		gp := NewGapParameters()
		assert.Equal(t, 1.0, gp.GapConductivity)
		assert.Equal(t, 5.669e-8, gp.StefanBoltzmann)
		assert.Equal(t, 1.e-6, gp.MinGap)
		assert.Equal(t, 1.e6, gp.MaxGap)
		assert.Equal(t, 0., gp.Emissivity1)
		assert.False(t, gp.Quadrature)
	}
	{ // Parse overrides only what the case file names
		data := `
Title: Fuel-clad gap
Quadrature: true
PairedBoundary: clad_inner
GapGeometryType: CYLINDER
CylinderAxisPoint1: [0, 0, 0]
CylinderAxisPoint2: [0, 0, 1]
GapConductivity: 0.15
Emissivity1: 0.8
Emissivity2: 0.9
`
		gp := NewGapParameters()
		require.NoError(t, gp.Parse([]byte(data)))
		assert.Equal(t, "Fuel-clad gap", gp.Title)
		assert.True(t, gp.Quadrature)
		assert.Equal(t, "clad_inner", gp.PairedBoundary)
		assert.Equal(t, "CYLINDER", gp.GapGeometryType)
		assert.Equal(t, []float64{0, 0, 1}, gp.CylinderAxisPoint2)
		assert.Equal(t, 0.15, gp.GapConductivity)
		assert.Equal(t, 0.8, gp.Emissivity1)
		assert.Equal(t, 5.669e-8, gp.StefanBoltzmann) // untouched default
		assert.Equal(t, 1.e-6, gp.MinGap)
	}
	{ // Range checks
		gp := NewGapParameters()
		assert.Error(t, gp.Parse([]byte(`Emissivity1: 1.5`)))
		gp = NewGapParameters()
		assert.Error(t, gp.Parse([]byte(`Emissivity2: -0.1`)))
		gp = NewGapParameters()
		assert.Error(t, gp.Parse([]byte(`MinGap: -1.e-6`)))
		gp = NewGapParameters()
		assert.Error(t, gp.Parse([]byte(`MaxGap: -1`)))
		gp = NewGapParameters()
		assert.Error(t, gp.Parse([]byte(`SphereOrigin: [0, 0]`)))
		gp = NewGapParameters()
		assert.NoError(t, gp.Parse([]byte(`MinGap: 0`))) // permitted, warned downstream
	}
}
