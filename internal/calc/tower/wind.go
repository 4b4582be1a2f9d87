package tower

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

type Wind struct {
	ZRefM    float64 `json:"z_ref_m" yaml:"z_ref_m"`
	Z0M      float64 `json:"z0_m" yaml:"z0_m"`
	ShearExp float64 `json:"shear_exp" yaml:"shear_exp"`
	RhoAir   float64 `json:"rho_air_kg_m3" yaml:"rho_air_kg_m3"`
	MuAir    float64 `json:"mu_air_pa_s" yaml:"mu_air_pa_s"`
	CdUser   float64 `json:"cd_usr" yaml:"cd_usr"` // replaces the drag table when positive
}

func (w Wind) withDefaults(hubHeightM float64) Wind {
	if w.ZRefM == 0 {
		w.ZRefM = hubHeightM
	}
	if w.ShearExp == 0 {
		w.ShearExp = 0.2
	}
	if w.RhoAir <= 0 {
		w.RhoAir = 1.225
	}
	if w.MuAir <= 0 {
		w.MuAir = 1.7934e-5
	}
	return w
}

// Speed is the power-law profile scaled to uRef at the reference height.
func (w Wind) Speed(uRef, z float64) float64 {
	if z <= w.Z0M || w.ZRefM <= w.Z0M {
		return 0
	}
	return uRef * math.Pow((z-w.Z0M)/(w.ZRefM-w.Z0M), w.ShearExp)
}

// Reynolds numbers in millions and the matching smooth-cylinder drag.
var (
	dragRe = []float64{1e-5, 1e-4, 1e-3, 0.01, 0.02, 0.122, 0.2, 0.3, 0.4, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 5, 10}
	dragCd = []float64{4, 2, 1.11, 1.11, 1.2, 1.2, 1.17, 0.9, 0.54, 0.31, 0.38, 0.46, 0.53, 0.57, 0.61, 0.64, 0.67, 0.7, 0.7}
)

var dragCurve = func() *interp.PiecewiseLinear {
	logRe := make([]float64, len(dragRe))
	for i, re := range dragRe {
		logRe[i] = math.Log10(re)
	}
	var f interp.PiecewiseLinear
	if err := f.Fit(logRe, dragCd); err != nil {
		panic(err)
	}
	return &f
}()

// CylinderDrag returns the drag coefficient at Reynolds number re. Values
// outside the table take the nearest end.
func CylinderDrag(re float64) float64 {
	if re <= 0 {
		return dragCd[0]
	}
	return dragCurve.Predict(math.Log10(re / 1e6))
}

func (w Wind) drag(u, d float64) float64 {
	if w.CdUser > 0 {
		return w.CdUser
	}
	return CylinderDrag(w.RhoAir * u * d / w.MuAir)
}
