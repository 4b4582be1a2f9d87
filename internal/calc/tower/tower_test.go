package tower

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartHeight(t *testing.T) {
	assert.Equal(t, 0.0, StartHeight(0, 0, false))
	assert.Equal(t, 0.0, StartHeight(0, 10, false))
	assert.Equal(t, -40.0, StartHeight(-30, 10, true))
	assert.Equal(t, -40.0, StartHeight(-30, -10, true))
	assert.Equal(t, -30.0, StartHeight(-30, 0, true))
}

func uniformSections(heights []float64, d, tw float64) Sections {
	n := len(heights)
	return Sections{
		HeightM:          heights,
		OuterDiameterM:   ones(n+1, d),
		WallThicknessM:   ones(n, tw),
		OutfittingFactor: ones(n, 1),
		E_Pa:             ones(n, 1e9),
		G_Pa:             ones(n, 1e8),
		SigmaY_Pa:        ones(n, 1e8),
		RhoKgM3:          ones(n, 1e4),
		UnitCost:         ones(n, 5),
	}
}

func TestRefine(t *testing.T) {
	st, err := Refine(0, 100, uniformSections([]float64{40, 40}, 10, 0.1), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 40, 80}, st.ZParam)
	assert.Equal(t, 20.0, st.HeightConstraintM)
	require.Len(t, st.ZFull, 7)
	assert.InDeltaSlice(t, linspace(0, 80, 7), st.ZFull, 1e-12)
	assert.Equal(t, ones(7, 10), st.DFull)
	assert.Equal(t, 6, st.Elements())
	assert.Len(t, st.RhoKgM3, 6)

	tapered := uniformSections([]float64{40}, 0, 0.1)
	tapered.OuterDiameterM = []float64{6, 4}
	st, err = Refine(-10, 30, tapered, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{6, 5.5, 5, 4.5, 4}, st.DFull, 1e-12)
	assert.Equal(t, 0.0, st.HeightConstraintM)

	bad := uniformSections([]float64{40, 40}, 10, 0.1)
	bad.WallThicknessM[1] = 0
	_, err = Refine(0, 100, bad, 3)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestCylinderUniformTube(t *testing.T) {
	st, err := Refine(0, 80, uniformSections([]float64{40, 40}, 10, 0.1), 3)
	require.NoError(t, err)
	cyl := Cylinder(st, 0)
	massDens := 1e4 * (25 - 4.9*4.9) * math.Pi
	assert.InEpsilon(t, massDens*80, cyl.TotalMassKg, 1e-9)
	assert.InDelta(t, 40.0, cyl.CenterOfMassM, 1e-9)
	assert.InEpsilon(t, cyl.TotalMassKg*5, cyl.CostUSD, 1e-9)
	assert.InEpsilon(t, math.Pi*10*80, cyl.OuterSurfaceAreaM2, 1e-9)
	assert.Equal(t, cyl.IBaseKgM2[0], cyl.IBaseKgM2[1])
	// thick-walled tube: Izz = m (ro^2 + ri^2) / 2
	assert.InEpsilon(t, 0.5*cyl.TotalMassKg*(25+4.9*4.9), cyl.IBaseKgM2[2], 1e-9)

	painted := Cylinder(st, DefaultPaintingCostRate)
	assert.InEpsilon(t, cyl.CostUSD+DefaultPaintingCostRate*cyl.OuterSurfaceAreaM2, painted.CostUSD, 1e-9)
}

func TestAggregate(t *testing.T) {
	zFull := []float64{-50, -30, 0, 40, 80}
	cyl := CylinderMass{
		MassKg:               ones(4, 1e3),
		CostUSD:              1e5,
		CenterOfMassM:        10,
		SectionCenterOfMassM: []float64{-40, -15, 20, 60},
		IBaseKgM2:            [6]float64{1e4, 1e4, 1e4},
	}
	pm := PointMasses{
		TransitionPieceHeightM:  20,
		TransitionPieceMassKg:   1e2,
		GravityFoundationMassKg: 1e2,
		FoundationHeightM:       -30,
	}
	m := Aggregate(zFull, cyl, pm)
	assert.Equal(t, cyl.IBaseKgM2, m.TowerIBaseKgM2)
	assert.InDelta(t, (4*1e3*10.0+1e2*20.0+1e2*-30.0)/(4*1e3+2e2), m.TowerCenterOfMassM, 1e-12)
	assert.Equal(t, cyl.SectionCenterOfMassM, m.SectionCenterOfMass)
	assert.InDelta(t, 1e3*2.5+2*1e2, m.MonopileMassKg, 1e-9)
	assert.InDelta(t, 1e5*2.5/4.0, m.MonopileCostUSD, 1e-9)
	assert.Equal(t, 70.0, m.MonopileLengthM)
	assert.InDelta(t, 1e3*(4-2.5), m.TowerMassKg, 1e-9)
	assert.Equal(t, 1e5, m.TowerRawCostUSD)
	assert.Equal(t, 4.2e3, m.TotalMassKg)
}

func TestAggregateLand(t *testing.T) {
	zFull := []float64{0, 40, 80}
	cyl := CylinderMass{MassKg: ones(2, 1e3), CostUSD: 1e4, CenterOfMassM: 40}
	m := Aggregate(zFull, cyl, PointMasses{})
	assert.Zero(t, m.MonopileMassKg)
	assert.Zero(t, m.MonopileCostUSD)
	assert.Zero(t, m.MonopileLengthM)
	assert.Equal(t, 2e3, m.TowerMassKg)
	assert.Equal(t, 1e4, m.TowerRawCostUSD)
	assert.Equal(t, 40.0, m.TowerCenterOfMassM)
}

func TestTowerCost(t *testing.T) {
	zFull := []float64{-50, -30, 0, 40, 80}
	cyl := CylinderMass{ElementCostUSD: []float64{1, 10, 100, 1000}}
	assert.Equal(t, 1000.0, TowerCost(zFull, cyl, 20))
	assert.Equal(t, 1100.0, TowerCost(zFull, cyl, 0))
	assert.Equal(t, 1111.0, TowerCost(zFull, cyl, -50))
	assert.Zero(t, TowerCost(zFull, cyl, 80))
}

func TestSoilStiffness(t *testing.T) {
	k, err := SoilStiffness(Soil{G_Pa: 1e7, Nu: 0.5}, 0, 5)
	require.NoError(t, err)
	assert.InEpsilon(t, 4*1e7*5/0.5, k[4], 1e-12)
	assert.InEpsilon(t, 32*0.5*1e7*5/3, k[0], 1e-12)
	assert.Equal(t, k[0], k[2])
	assert.Equal(t, k[1], k[3])
	assert.InEpsilon(t, 16*1e7*125/3.0, k[5], 1e-12)

	deep, err := SoilStiffness(Soil{G_Pa: 1e7, Nu: 0.5}, 15, 5)
	require.NoError(t, err)
	for i := range k {
		assert.Greater(t, deep[i], 0.0)
		assert.Less(t, deep[i], RigidStiffness)
		assert.GreaterOrEqual(t, deep[i], k[i])
	}

	_, err = SoilStiffness(Soil{G_Pa: 0, Nu: 0.3}, 10, 5)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = SoilStiffness(Soil{G_Pa: 1e7, Nu: 0.7}, 10, 5)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func testRNA() RNA {
	return RNA{
		MassKg:  1e5,
		CGM:     [3]float64{-3, 0, 1},
		IKgM2:   [6]float64{1e5, 1e5, 2e5},
		ForceN:  [3]float64{2e5, 3e5, 4e5},
		MomentN: [3]float64{2e6, 3e6, 4e6},
	}
}

func TestPreFrameLand(t *testing.T) {
	z := make([]float64, 7)
	for i := range z {
		z[i] = 10 * float64(i)
	}
	fr, err := PreFrame(FrameInput{ZFull: z, DFull: ones(7, 6), RNA: testRNA()})
	require.NoError(t, err)

	require.Len(t, fr.Reactions, 1)
	assert.Equal(t, 0, fr.Reactions[0].Node)
	for _, k := range fr.Reactions[0].Stiffness {
		assert.Equal(t, RigidStiffness, k)
	}
	require.Len(t, fr.Masses, 3)
	assert.Equal(t, []int{6, 0, 0}, []int{fr.Masses[0].Node, fr.Masses[1].Node, fr.Masses[2].Node})
	assert.Equal(t, 1e5, fr.Masses[0].MassKg)
	assert.Equal(t, [3]float64{-3, 0, 1}, fr.Masses[0].RhoM)
	assert.Equal(t, [6]float64{1e5, 1e5, 2e5}, fr.Masses[0].IKgM2)
	assert.Zero(t, fr.Masses[1].MassKg)
	assert.Zero(t, fr.Masses[2].MassKg)
	assert.Equal(t, [6]float64{}, fr.Masses[1].IKgM2)

	require.Len(t, fr.Loads, 1)
	assert.Equal(t, 6, fr.Loads[0].Node)
	assert.Equal(t, [3]float64{2e5, 3e5, 4e5}, fr.Loads[0].ForceN)
	assert.Equal(t, [3]float64{2e6, 3e6, 4e6}, fr.Loads[0].MomentN)
}

func TestPreFrameMonopile(t *testing.T) {
	z := make([]float64, 13)
	for i := range z {
		z[i] = 10 * float64(i-6)
	}
	k := [6]float64{20, 21, 22, 23, 24, 25}
	fr, err := PreFrame(FrameInput{
		ZFull:     z,
		DFull:     ones(13, 6),
		Monopile:  true,
		KMonopile: k,
		RNA:       testRNA(),
		Points: PointMasses{
			TransitionPieceHeightM:  10,
			TransitionPieceMassKg:   1e3,
			GravityFoundationMassKg: 1e4,
			FoundationHeightM:       -30,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, k, fr.Reactions[0].Stiffness)
	assert.Equal(t, []int{12, 7, 0}, []int{fr.Masses[0].Node, fr.Masses[1].Node, fr.Masses[2].Node})
	assert.Equal(t, []float64{1e5, 1e3, 1e4}, []float64{fr.Masses[0].MassKg, fr.Masses[1].MassKg, fr.Masses[2].MassKg})
	assert.Equal(t, [6]float64{1e3 * 9 * 0.5, 1e3 * 9 * 0.5, 1e3 * 9}, fr.Masses[1].IKgM2)
	assert.Equal(t, [6]float64{1e4 * 9 * 0.25, 1e4 * 9 * 0.25, 1e4 * 9 * 0.5}, fr.Masses[2].IKgM2)
	assert.Equal(t, [3]float64{}, fr.Masses[1].RhoM)
	assert.Equal(t, 12, fr.Loads[0].Node)

	_, err = PreFrame(FrameInput{ZFull: z[:1], DFull: ones(1, 6)})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestWindProfile(t *testing.T) {
	w := Wind{ZRefM: 80, ShearExp: 0.2}
	assert.Equal(t, 15.0, w.Speed(15, 80))
	assert.Zero(t, w.Speed(15, 0))
	assert.Zero(t, w.Speed(15, -10))
	assert.InDelta(t, 15*math.Pow(0.5, 0.2), w.Speed(15, 40), 1e-12)
}

func TestCylinderDrag(t *testing.T) {
	assert.InDelta(t, 1.11, CylinderDrag(1e4), 1e-12)
	assert.InDelta(t, 0.7, CylinderDrag(2e7), 1e-12)
	assert.InDelta(t, 4.0, CylinderDrag(1), 1e-12)
	assert.InDelta(t, 0.7, CylinderDrag(1e9), 1e-12)
	cd := CylinderDrag(7.5e6)
	assert.InDelta(t, 0.7, cd, 1e-12)
	assert.Equal(t, 1.3, Wind{CdUser: 1.3}.drag(10, 5))
}

func TestConstraints(t *testing.T) {
	d := []float64{6, 4.935, 3.87}
	tw := []float64{1.3 * 0.025, 1.3 * 0.021}
	assert.InDeltaSlice(t, []float64{-0.40192308, -0.34386447}, Weldability(d, tw, 120), 1e-7)

	m := Manufacturability([]float64{10, 10, 8}, 0.2)
	assert.InDeltaSlice(t, []float64{0.2, 0}, m, 1e-12)
	assert.Nil(t, Manufacturability([]float64{10}, 0.2))
}

func TestFactors(t *testing.T) {
	sf, name := Factors(StandardIEC)
	assert.Equal(t, "IEC 61400-1 ULS", name)
	assert.InDelta(t, 1.35*1.3, sf.Stress(), 1e-12)
	unit, _ := Factors(StandardUnit)
	assert.Equal(t, 1.0, unit.Stress())
	def, _ := Factors("")
	assert.Equal(t, sf, def)
}
