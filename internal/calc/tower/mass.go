package tower

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

const Gravity = 9.80633

// DefaultPaintingCostRate is applied to the outer surface, USD/m^2.
const DefaultPaintingCostRate = 28.8

type CylinderMass struct {
	MassKg               []float64  `json:"mass_kg"`
	SectionCenterOfMassM []float64  `json:"section_center_of_mass_m"`
	CenterOfMassM        float64    `json:"center_of_mass_m"`
	IBaseKgM2            [6]float64 `json:"i_base_kg_m2"`
	CostUSD              float64    `json:"cost_usd"`
	ElementCostUSD       []float64  `json:"element_cost_usd"`
	OuterSurfaceAreaM2   float64    `json:"outer_surface_area_m2"`
	TotalMassKg          float64    `json:"total_mass_kg"`
}

// frustum returns the volume and the centroid height (from the lower end) of
// a solid cone frustum with end radii r1, r2.
func frustum(r1, r2, h float64) (vol, zc float64) {
	s := r1*r1 + r1*r2 + r2*r2
	vol = math.Pi * h * s / 3
	if s == 0 {
		return 0, 0
	}
	zc = h * (r1*r1 + 2*r1*r2 + 3*r2*r2) / (4 * s)
	return vol, zc
}

// Cylinder integrates the tapered shell element by element. Mass includes
// the outfitting factor; the base inertia is taken about z = ZFull[0].
func Cylinder(st Stations, paintingCostRate float64) CylinderMass {
	ne := st.Elements()
	out := CylinderMass{
		MassKg:               make([]float64, ne),
		SectionCenterOfMassM: make([]float64, ne),
		ElementCostUSD:       make([]float64, ne),
	}
	zBase := st.ZFull[0]
	for e := 0; e < ne; e++ {
		h := st.ZFull[e+1] - st.ZFull[e]
		ro1, ro2 := st.DFull[e]/2, st.DFull[e+1]/2
		ri1, ri2 := math.Max(ro1-st.TFull[e], 0), math.Max(ro2-st.TFull[e], 0)
		vo, zo := frustum(ro1, ro2, h)
		vi, zi := frustum(ri1, ri2, h)
		vol := vo - vi
		m := st.RhoKgM3[e] * st.OutfittingFactor[e] * vol
		zc := 0.5 * h
		if vol > 0 {
			zc = (vo*zo - vi*zi) / vol
		}
		out.MassKg[e] = m
		out.SectionCenterOfMassM[e] = st.ZFull[e] + zc

		ro := 0.5 * (ro1 + ro2)
		ri := 0.5 * (ri1 + ri2)
		izz := 0.5 * m * (ro*ro + ri*ri)
		ixx := m*((ro*ro+ri*ri)/4+h*h/12) + m*math.Pow(out.SectionCenterOfMassM[e]-zBase, 2)
		out.IBaseKgM2[0] += ixx
		out.IBaseKgM2[1] += ixx
		out.IBaseKgM2[2] += izz

		area := math.Pi * (ro1 + ro2) * math.Hypot(h, ro1-ro2)
		out.OuterSurfaceAreaM2 += area
		out.ElementCostUSD[e] = m*st.UnitCost[e] + paintingCostRate*area
		out.CostUSD += out.ElementCostUSD[e]
	}
	out.TotalMassKg = floats.Sum(out.MassKg)
	if out.TotalMassKg > 0 {
		out.CenterOfMassM = stat.Mean(out.SectionCenterOfMassM, out.MassKg)
	}
	return out
}

type PointMasses struct {
	TransitionPieceHeightM  float64 `json:"transition_piece_height_m" yaml:"transition_piece_height_m"`
	TransitionPieceMassKg   float64 `json:"transition_piece_mass_kg" yaml:"transition_piece_mass_kg"`
	GravityFoundationMassKg float64 `json:"gravity_foundation_mass_kg" yaml:"gravity_foundation_mass_kg"`
	FoundationHeightM       float64 `json:"foundation_height_m" yaml:"foundation_height_m"`
}

type MassSummary struct {
	TowerMassKg         float64    `json:"tower_mass_kg"`
	TowerRawCostUSD     float64    `json:"tower_raw_cost_usd"`
	TowerCenterOfMassM  float64    `json:"tower_center_of_mass_m"`
	TowerIBaseKgM2      [6]float64 `json:"tower_i_base_kg_m2"`
	SectionCenterOfMass []float64  `json:"tower_section_center_of_mass_m"`
	MonopileMassKg      float64    `json:"monopile_mass_kg"`
	MonopileCostUSD     float64    `json:"monopile_cost_usd"`
	MonopileLengthM     float64    `json:"monopile_length_m"`
	TotalMassKg         float64    `json:"total_mass_kg"`
}

// Aggregate splits the cylinder mass into monopile and tower at the
// transition piece and adds the point masses. The raw cost is that of the
// whole cylinder passed in; see TowerCost for the part above the
// transition piece.
func Aggregate(zFull []float64, cyl CylinderMass, pm PointMasses) MassSummary {
	cylMass := floats.Sum(cyl.MassKg)
	cum := make([]float64, len(zFull))
	floats.CumSum(cum[1:], cyl.MassKg)

	var monoCyl, monoLen float64
	if pm.TransitionPieceHeightM > zFull[0] && len(zFull) > 1 {
		var f interp.PiecewiseLinear
		if err := f.Fit(zFull, cum); err == nil {
			monoCyl = f.Predict(pm.TransitionPieceHeightM)
		}
		monoLen = pm.TransitionPieceHeightM - zFull[0]
	}
	monoCost := 0.0
	if cylMass > 0 {
		monoCost = cyl.CostUSD * monoCyl / cylMass
	}

	masses := []float64{cylMass, pm.TransitionPieceMassKg, pm.GravityFoundationMassKg}
	heights := []float64{cyl.CenterOfMassM, pm.TransitionPieceHeightM, pm.FoundationHeightM}
	total := floats.Sum(masses)
	com := 0.0
	if total > 0 {
		com = stat.Mean(heights, masses)
	}
	return MassSummary{
		TowerMassKg:         cylMass - monoCyl,
		TowerRawCostUSD:     cyl.CostUSD,
		TowerCenterOfMassM:  com,
		TowerIBaseKgM2:      cyl.IBaseKgM2,
		SectionCenterOfMass: cyl.SectionCenterOfMassM,
		MonopileMassKg:      monoCyl + pm.TransitionPieceMassKg + pm.GravityFoundationMassKg,
		MonopileCostUSD:     monoCost,
		MonopileLengthM:     monoLen,
		TotalMassKg:         total,
	}
}

// TowerCost sums the cost of the elements from the first node at or above
// the transition piece to the top.
func TowerCost(zFull []float64, cyl CylinderMass, transitionPieceHeightM float64) float64 {
	cost := 0.0
	for e, c := range cyl.ElementCostUSD {
		if zFull[e] >= transitionPieceHeightM {
			cost += c
		}
	}
	return cost
}
