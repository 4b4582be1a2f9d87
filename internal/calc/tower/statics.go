package tower

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

type LoadCase struct {
	Name        string     `json:"name" yaml:"name"`
	URefMS      float64    `json:"u_ref_m_s" yaml:"u_ref_m_s"`
	RNAForceN   [3]float64 `json:"rna_force_n" yaml:"rna_force_n"`
	RNAMomentNm [3]float64 `json:"rna_moment_nm" yaml:"rna_moment_nm"`
}

// ElementForces are internal forces at the lower end of each element,
// positive Fz in tension.
type ElementForces struct {
	Fx  []float64 `json:"fx_n"`
	Fy  []float64 `json:"fy_n"`
	Fz  []float64 `json:"fz_n"`
	Mxx []float64 `json:"mxx_nm"`
	Myy []float64 `json:"myy_nm"`
	Mzz []float64 `json:"mzz_nm"`
}

type LoadCaseResult struct {
	Name              string        `json:"name"`
	WindSpeedMS       []float64     `json:"wind_speed_m_s"`
	DragCoefficient   []float64     `json:"drag_coefficient"`
	Forces            ElementForces `json:"forces"`
	BaseForceN        [3]float64    `json:"base_force_n"`
	BaseMomentNm      [3]float64    `json:"base_moment_nm"`
	AxialStressPa     []float64     `json:"axial_stress_pa"`
	BendingStressPa   []float64     `json:"bending_stress_pa"`
	ShearStressPa     []float64     `json:"shear_stress_pa"`
	VonMisesPa        []float64     `json:"von_mises_pa"`
	StressUtilization []float64     `json:"stress_utilization"`
	MaxUtilization    float64       `json:"max_utilization"`
	TopDeflectionM    [2]float64    `json:"top_deflection_m"`
}

type tube struct {
	area, inertia, modulus, polar float64
}

func tubeSection(d, t float64) tube {
	di := math.Max(d-2*t, 0)
	a := math.Pi / 4 * (d*d - di*di)
	i := math.Pi / 64 * (d*d*d*d - di*di*di*di)
	return tube{area: a, inertia: i, modulus: i / (d / 2), polar: 2 * i}
}

// Solve runs the static cantilever for one load case. The frame supplies
// the point masses and the RNA loads at the top node; self-weight and drag are
// lumped half to each end of an element.
func Solve(st Stations, cyl CylinderMass, fr Frame, wind Wind, lc LoadCase, sf SafetyFactors) LoadCaseResult {
	n := len(st.ZFull)
	ne := n - 1
	wind = wind.withDefaults(st.ZFull[n-1])
	fx := make([]float64, n)
	fy := make([]float64, n)
	fz := make([]float64, n)
	mx := make([]float64, n)
	my := make([]float64, n)
	mz := make([]float64, n)

	res := LoadCaseResult{
		Name:            lc.Name,
		WindSpeedMS:     make([]float64, ne),
		DragCoefficient: make([]float64, ne),
	}
	for e := 0; e < ne; e++ {
		w := cyl.MassKg[e] * Gravity
		fz[e] -= w / 2
		fz[e+1] -= w / 2

		h := st.ZFull[e+1] - st.ZFull[e]
		z := 0.5 * (st.ZFull[e] + st.ZFull[e+1])
		d := 0.5 * (st.DFull[e] + st.DFull[e+1])
		u := wind.Speed(lc.URefMS, z)
		cd := wind.drag(u, d)
		drag := 0.5 * wind.RhoAir * u * u * cd * d * h
		fx[e] += drag / 2
		fx[e+1] += drag / 2
		res.WindSpeedMS[e] = u
		res.DragCoefficient[e] = cd
	}
	for _, pm := range fr.Masses {
		w := pm.MassKg * Gravity
		fz[pm.Node] -= w
		// weight acting at the cg offset
		mx[pm.Node] -= w * pm.RhoM[1]
		my[pm.Node] += w * pm.RhoM[0]
	}
	for _, pl := range fr.Loads {
		fx[pl.Node] += pl.ForceN[0]
		fy[pl.Node] += pl.ForceN[1]
		fz[pl.Node] += pl.ForceN[2]
		mx[pl.Node] += pl.MomentN[0]
		my[pl.Node] += pl.MomentN[1]
		mz[pl.Node] += pl.MomentN[2]
	}

	// moments about node i of every load above it
	above := func(i int) (sx, sy, sz, smx, smy, smz float64) {
		for j := i + 1; j < n; j++ {
			dz := st.ZFull[j] - st.ZFull[i]
			sx += fx[j]
			sy += fy[j]
			sz += fz[j]
			smx += mx[j] - dz*fy[j]
			smy += my[j] + dz*fx[j]
			smz += mz[j]
		}
		return
	}

	f := ElementForces{
		Fx: make([]float64, ne), Fy: make([]float64, ne), Fz: make([]float64, ne),
		Mxx: make([]float64, ne), Myy: make([]float64, ne), Mzz: make([]float64, ne),
	}
	for e := 0; e < ne; e++ {
		f.Fx[e], f.Fy[e], f.Fz[e], f.Mxx[e], f.Myy[e], f.Mzz[e] = above(e)
	}
	res.Forces = f

	bx, by, bz, bmx, bmy, bmz := above(0)
	res.BaseForceN = [3]float64{-(bx + fx[0]), -(by + fy[0]), -(bz + fz[0])}
	res.BaseMomentNm = [3]float64{-(bmx + mx[0]), -(bmy + my[0]), -(bmz + mz[0])}

	res.AxialStressPa = make([]float64, ne)
	res.BendingStressPa = make([]float64, ne)
	res.ShearStressPa = make([]float64, ne)
	res.VonMisesPa = make([]float64, ne)
	res.StressUtilization = make([]float64, ne)
	for e := 0; e < ne; e++ {
		sec := tubeSection(st.DFull[e], st.TFull[e])
		axial := f.Fz[e] / sec.area
		bending := math.Hypot(f.Mxx[e], f.Myy[e]) / sec.modulus
		shear := 2*math.Hypot(f.Fx[e], f.Fy[e])/sec.area + math.Abs(f.Mzz[e])*(st.DFull[e]/2)/sec.polar
		normal := math.Abs(axial) + bending
		vm := math.Sqrt(normal*normal + 3*shear*shear)
		res.AxialStressPa[e] = axial
		res.BendingStressPa[e] = bending
		res.ShearStressPa[e] = shear
		res.VonMisesPa[e] = vm
		res.StressUtilization[e] = sf.Stress() * vm / st.SigmaY_Pa[e]
	}
	res.MaxUtilization = floats.Max(res.StressUtilization)

	// moment-area deflection of the top node
	zTop := st.ZFull[n-1]
	kx := make([]float64, n)
	ky := make([]float64, n)
	for i := 0; i < n; i++ {
		e := i
		if e >= ne {
			e = ne - 1
		}
		_, _, _, smx, smy, _ := above(i)
		if i > 0 {
			smx += mx[i]
			smy += my[i]
		}
		ei := st.E_Pa[e] * tubeSection(st.DFull[i], st.TFull[e]).inertia
		arm := zTop - st.ZFull[i]
		kx[i] = arm * smy / ei
		ky[i] = -arm * smx / ei
	}
	res.TopDeflectionM = [2]float64{
		integrate.Trapezoidal(st.ZFull, kx),
		integrate.Trapezoidal(st.ZFull, ky),
	}
	return res
}
