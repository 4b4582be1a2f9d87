package tower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ones(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return out
}

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var (
	steel = Material{Name: "steel", E_Pa: 1e9, G_Pa: 1e8, SigmaY_Pa: 1e7, RhoKgM3: 1e4, UnitCost: 1e1}
	other = Material{Name: "other", E_Pa: 2e9, G_Pa: 2e8, SigmaY_Pa: 2e7, RhoKgM3: 2e4, UnitCost: 2e1}
)

func landTower() Segment {
	return Segment{
		S:                linspace(0, 1, 5),
		HeightM:          100,
		OuterDiameterM:   ones(5, 8),
		LayerThicknessM:  [][]float64{ones(4, 0.25)},
		LayerMaterials:   []string{"steel"},
		OutfittingFactor: 1.1,
	}
}

func monopileSegment(material string) *Segment {
	d := ones(5, 10)
	d[4] = 8
	return &Segment{
		S:                linspace(0, 1, 5),
		HeightM:          50,
		OuterDiameterM:   d,
		LayerThicknessM:  [][]float64{ones(4, 0.5)},
		LayerMaterials:   []string{material},
		OutfittingFactor: 1.2,
	}
}

func TestDiscretizeLandOneMaterial(t *testing.T) {
	sec, err := Discretize(Layup{Tower: landTower(), Materials: []Material{steel}})
	require.NoError(t, err)
	assert.Equal(t, ones(4, 25), sec.HeightM)
	assert.Equal(t, ones(5, 8), sec.OuterDiameterM)
	assert.Equal(t, ones(4, 0.25), sec.WallThicknessM)
	assert.Equal(t, ones(4, 1.1), sec.OutfittingFactor)
	assert.InDeltaSlice(t, ones(4, 1e9), sec.E_Pa, 1e-3)
	assert.InDeltaSlice(t, ones(4, 1e8), sec.G_Pa, 1e-4)
	assert.InDeltaSlice(t, ones(4, 1e7), sec.SigmaY_Pa, 1e-5)
	assert.InDeltaSlice(t, ones(4, 1e4), sec.RhoKgM3, 1e-9)
	assert.InDeltaSlice(t, ones(4, 1e1), sec.UnitCost, 1e-12)
}

func TestDiscretizeLandTwoMaterials(t *testing.T) {
	tw := landTower()
	tw.LayerThicknessM = [][]float64{{0.25, 0.25, 0, 0}, {0, 0, 0.1, 0.1}}
	tw.LayerMaterials = []string{"steel", "other"}
	sec, err := Discretize(Layup{Tower: tw, Materials: []Material{steel, other}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.25, 0.1, 0.1}, sec.WallThicknessM)
	assert.InDeltaSlice(t, []float64{1e9, 1e9, 2e9, 2e9}, sec.E_Pa, 1e-3)
	assert.InDeltaSlice(t, []float64{1e4, 1e4, 2e4, 2e4}, sec.RhoKgM3, 1e-9)
	assert.InDeltaSlice(t, []float64{10, 10, 20, 20}, sec.UnitCost, 1e-12)
}

func TestDiscretizeMixedLayers(t *testing.T) {
	tw := landTower()
	tw.LayerThicknessM = [][]float64{ones(4, 0.1), ones(4, 0.3)}
	tw.LayerMaterials = []string{"steel", "other"}
	sec, err := Discretize(Layup{Tower: tw, Materials: []Material{steel, other}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, ones(4, 0.4), sec.WallThicknessM, 1e-12)
	assert.InDeltaSlice(t, ones(4, 1.75e9), sec.E_Pa, 1)
}

func TestDiscretizeMonopile(t *testing.T) {
	sec, err := Discretize(Layup{Tower: landTower(), Monopile: monopileSegment("steel"), Materials: []Material{steel}})
	require.NoError(t, err)
	assert.Equal(t, concat(ones(4, 12.5), ones(4, 25)), sec.HeightM)
	assert.Equal(t, concat(ones(4, 10), ones(5, 8)), sec.OuterDiameterM)
	assert.Equal(t, concat(ones(4, 0.5), ones(4, 0.25)), sec.WallThicknessM)
	assert.Equal(t, concat(ones(4, 1.2), ones(4, 1.1)), sec.OutfittingFactor)
	assert.Len(t, sec.E_Pa, 8)
	require.NoError(t, sec.Validate())
}

func TestDiscretizeMonopileDifferentMaterials(t *testing.T) {
	sec, err := Discretize(Layup{Tower: landTower(), Monopile: monopileSegment("other"), Materials: []Material{steel, other}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, concat(ones(4, 2e9), ones(4, 1e9)), sec.E_Pa, 1e-3)
	assert.InDeltaSlice(t, concat(ones(4, 2e7), ones(4, 1e7)), sec.SigmaY_Pa, 1e-5)
	assert.InDeltaSlice(t, concat(ones(4, 20), ones(4, 10)), sec.UnitCost, 1e-12)
}

func TestDiscretizeRejectsBadInputs(t *testing.T) {
	mats := []Material{steel}

	tw := landTower()
	tw.LayerThicknessM[0][3] = 0
	_, err := Discretize(Layup{Tower: tw, Materials: mats})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	tw = landTower()
	tw.OuterDiameterM[4] = -1
	_, err = Discretize(Layup{Tower: tw, Materials: mats})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	tw = landTower()
	tw.S[4] = tw.S[3]
	_, err = Discretize(Layup{Tower: tw, Materials: mats})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	tw = landTower()
	tw.LayerMaterials = []string{"concrete"}
	_, err = Discretize(Layup{Tower: tw, Materials: mats})
	assert.ErrorIs(t, err, ErrUnknownMaterial)

	tw = landTower()
	tw.LayerThicknessM = [][]float64{ones(3, 0.25)}
	_, err = Discretize(Layup{Tower: tw, Materials: mats})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}
