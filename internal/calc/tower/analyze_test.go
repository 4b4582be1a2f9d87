package tower

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func landCase() Case {
	sec := uniformSections([]float64{40, 40}, 10, 0.1)
	sec.SigmaY_Pa = ones(2, 1e8)
	return Case{
		HubHeightM: 80,
		Sections:   &sec,
		RNA: RNA{
			MassKg: 2e5,
			CGM:    [3]float64{-3, 0, 1},
			IKgM2:  [6]float64{1e5, 1e5, 2e5},
		},
		Wind:     Wind{ZRefM: 80, ShearExp: 0.2},
		Standard: StandardUnit,
		LoadCases: []LoadCase{{
			Name:        "rated",
			URefMS:      15,
			RNAForceN:   [3]float64{2e3, 3e3, 4e3},
			RNAMomentNm: [3]float64{2e4, 3e4, 4e4},
		}},
	}
}

func fixedPileCase() Case {
	sec := uniformSections([]float64{15, 30, 30, 30}, 10, 0.1)
	c := landCase()
	c.Sections = &sec
	c.FoundationHeightM = -30
	c.SuctionPileDepthM = 15
	c.Monopile = true
	c.Points = PointMasses{TransitionPieceHeightM: 15, TransitionPieceMassKg: 1e2, GravityFoundationMassKg: 1e4}
	c.Soil = Soil{G_Pa: 1e7, Nu: 0.5}
	return c
}

func TestAnalyzeLand(t *testing.T) {
	res, err := Analyze(landCase())
	require.NoError(t, err)
	massDens := 1e4 * (25 - 4.9*4.9) * math.Pi
	assert.Equal(t, 0.0, res.ZStartM)
	assert.Equal(t, []float64{0, 40, 80}, res.Stations.ZParam)
	assert.Equal(t, 0.0, res.Stations.HeightConstraintM)
	assert.Equal(t, res.Cylinder.CostUSD, res.Mass.TowerRawCostUSD)
	assert.Equal(t, res.Cylinder.IBaseKgM2, res.Mass.TowerIBaseKgM2)
	assert.InDelta(t, 40.0, res.Mass.TowerCenterOfMassM, 1e-9)
	assert.Zero(t, res.Mass.MonopileMassKg)
	assert.Zero(t, res.Mass.MonopileCostUSD)
	assert.Zero(t, res.Mass.MonopileLengthM)
	assert.InEpsilon(t, massDens*80, res.Mass.TowerMassKg, 1e-9)

	assert.Equal(t, [6]float64{1e16, 1e16, 1e16, 1e16, 1e16, 1e16}, res.Frame.Reactions[0].Stiffness)
	assert.Equal(t, 6, res.Frame.Masses[0].Node)
	assert.Equal(t, 2e5, res.Frame.Masses[0].MassKg)
	assert.Equal(t, [3]float64{2e3, 3e3, 4e3}, res.Frame.Loads[0].ForceN)
	assert.Equal(t, [3]float64{2e4, 3e4, 4e4}, res.Frame.Loads[0].MomentN)

	require.Len(t, res.LoadCases, 1)
	lc := res.LoadCases[0]
	assert.Len(t, lc.Forces.Fz, 6)
	assert.Greater(t, res.MaxUtilization, 0.0)
	assert.Equal(t, lc.MaxUtilization, res.MaxUtilization)
	assert.Greater(t, lc.TopDeflectionM[0], 0.0)
	assert.Contains(t, res.Notes, "unfactored")
}

func TestAnalyzeFixedPile(t *testing.T) {
	res, err := Analyze(fixedPileCase())
	require.NoError(t, err)
	massDens := 1e4 * (25 - 4.9*4.9) * math.Pi
	assert.Equal(t, -45.0, res.ZStartM)
	assert.Equal(t, []float64{-45, -30, 0, 30, 60}, res.Stations.ZParam)
	assert.Equal(t, 20.0, res.Stations.HeightConstraintM)
	assert.InDelta(t, 60.0, res.Mass.MonopileLengthM, 1e-12)
	assert.InEpsilon(t, massDens*60+1e2+1e4, res.Mass.MonopileMassKg, 1e-9)
	assert.InEpsilon(t, massDens*45, res.Mass.TowerMassKg, 1e-9)
	assert.InEpsilon(t, (60./105.)*res.Cylinder.CostUSD, res.Mass.MonopileCostUSD, 1e-9)
	assert.InEpsilon(t, (40./105.)*res.Cylinder.CostUSD, res.Mass.TowerRawCostUSD, 1e-9)
	assert.InDelta(t, (7.5*massDens*105+15*1e2+1e4*-30)/(massDens*105+1e2+1e4), res.Mass.TowerCenterOfMassM, 1e-6)

	for _, k := range res.Frame.Reactions[0].Stiffness {
		assert.Greater(t, k, 0.0)
		assert.Less(t, k, RigidStiffness)
	}
	fr := res.Frame
	assert.Equal(t, []int{12, 7, 0}, []int{fr.Masses[0].Node, fr.Masses[1].Node, fr.Masses[2].Node})
	assert.Equal(t, [6]float64{1e2 * 25 * 0.5, 1e2 * 25 * 0.5, 1e2 * 25}, fr.Masses[1].IKgM2)
	assert.Equal(t, [6]float64{1e4 * 25 * 0.25, 1e4 * 25 * 0.25, 1e4 * 25 * 0.5}, fr.Masses[2].IKgM2)
	assert.Equal(t, 12, fr.Loads[0].Node)
}

func TestAddedMassLowersAxialForce(t *testing.T) {
	c := fixedPileCase()
	c.RNA.MassKg = 0
	c.Points.TransitionPieceMassKg = 0
	c.Points.GravityFoundationMassKg = 0
	base, err := Analyze(c)
	require.NoError(t, err)
	want := append([]float64(nil), base.LoadCases[0].Forces.Fz...)

	c.RNA.MassKg = 1e4
	res, err := Analyze(c)
	require.NoError(t, err)
	for i := range want {
		want[i] -= 1e4 * Gravity
	}
	assert.InDeltaSlice(t, want, res.LoadCases[0].Forces.Fz, 1e-6)

	c.Points.TransitionPieceMassKg = 1e2
	res, err = Analyze(c)
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		want[i] -= 1e2 * Gravity
	}
	assert.InDeltaSlice(t, want, res.LoadCases[0].Forces.Fz, 1e-6)

	c.Points.GravityFoundationMassKg = 1e3
	res, err = Analyze(c)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, res.LoadCases[0].Forces.Fz, 1e-6)
}

func TestCantileverTipLoad(t *testing.T) {
	c := landCase()
	c.RNA = RNA{}
	c.LoadCases = []LoadCase{{Name: "tip", RNAForceN: [3]float64{1e3, 0, 0}}}
	res, err := Analyze(c)
	require.NoError(t, err)

	inertia := math.Pi / 64 * (1e4 - math.Pow(9.8, 4))
	want := 1e3 * math.Pow(80, 3) / (3 * 1e9 * inertia)
	lc := res.LoadCases[0]
	assert.InEpsilon(t, want, lc.TopDeflectionM[0], 0.02)
	assert.InDelta(t, 0.0, lc.TopDeflectionM[1], 1e-12)
	assert.InDelta(t, -1e3, lc.BaseForceN[0], 1e-9)
	assert.InDelta(t, -1e3*80, lc.BaseMomentNm[1], 1e-6)
	assert.InDelta(t, res.Mass.TotalMassKg*Gravity, lc.BaseForceN[2], 1e-3)
	assert.Zero(t, lc.WindSpeedMS[0])
}

func TestAnalyzeFromLayup(t *testing.T) {
	c := landCase()
	c.Sections = nil
	c.HubHeightM = 100
	c.Layup = &Layup{Tower: landTower(), Materials: []Material{steel}}
	res, err := Analyze(c)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Sections.Len())
	assert.Len(t, res.Stations.ZFull, 13)
	assert.Len(t, res.Weldability, 4)
	assert.Len(t, res.Manufacturability, 4)

	thin := c.WithThicknessScale(0.5)
	assert.Equal(t, 0.25, c.Layup.Tower.LayerThicknessM[0][0])
	assert.Equal(t, 0.125, thin.Layup.Tower.LayerThicknessM[0][0])
	thinRes, err := Analyze(thin)
	require.NoError(t, err)
	assert.Greater(t, thinRes.MaxUtilization, res.MaxUtilization)
}

func TestAnalyzeErrors(t *testing.T) {
	c := landCase()
	c.HubHeightM = 0
	_, err := Analyze(c)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	c = landCase()
	c.Sections = nil
	_, err = Analyze(c)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	c = fixedPileCase()
	c.Soil = Soil{}
	_, err = Analyze(c)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}
