package tower

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

const DefaultRefine = 3

// StartHeight is the elevation of the lowest station. A monopile starts
// below the foundation by the suction pile depth, whatever its sign.
func StartHeight(foundationHeightM, suctionPileDepthM float64, monopile bool) float64 {
	if !monopile {
		return foundationHeightM
	}
	return foundationHeightM - math.Abs(suctionPileDepthM)
}

// Stations is the refined element grid. Per-element arrays have
// len(ZFull)-1 entries.
type Stations struct {
	ZParam            []float64 `json:"z_param"`
	ZFull             []float64 `json:"z_full"`
	DFull             []float64 `json:"d_full"`
	TFull             []float64 `json:"t_full"`
	HeightConstraintM float64   `json:"height_constraint_m"`

	OutfittingFactor []float64 `json:"outfitting_factor"`
	E_Pa             []float64 `json:"e_pa"`
	G_Pa             []float64 `json:"g_pa"`
	SigmaY_Pa        []float64 `json:"sigma_y_pa"`
	RhoKgM3          []float64 `json:"rho_kg_m3"`
	UnitCost         []float64 `json:"unit_cost_usd_kg"`
}

func (s Stations) Elements() int { return len(s.ZFull) - 1 }

// Refine places the sections on top of zStart and splits each one into
// nRefine equal elements.
func Refine(zStart, hubHeightM float64, sec Sections, nRefine int) (Stations, error) {
	if err := sec.Validate(); err != nil {
		return Stations{}, err
	}
	if nRefine <= 0 {
		nRefine = DefaultRefine
	}
	n := sec.Len()
	zParam := make([]float64, n+1)
	floats.CumSum(zParam[1:], sec.HeightM)
	floats.AddConst(zStart, zParam)

	var dOfZ interp.PiecewiseLinear
	if err := dOfZ.Fit(zParam, sec.OuterDiameterM); err != nil {
		return Stations{}, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	ne := n * nRefine
	st := Stations{
		ZParam:            zParam,
		ZFull:             make([]float64, 0, ne+1),
		HeightConstraintM: hubHeightM - zParam[n],
		TFull:             make([]float64, ne),
		OutfittingFactor:  make([]float64, ne),
		E_Pa:              make([]float64, ne),
		G_Pa:              make([]float64, ne),
		SigmaY_Pa:         make([]float64, ne),
		RhoKgM3:           make([]float64, ne),
		UnitCost:          make([]float64, ne),
	}
	for i := 0; i < n; i++ {
		step := sec.HeightM[i] / float64(nRefine)
		for k := 0; k < nRefine; k++ {
			st.ZFull = append(st.ZFull, zParam[i]+float64(k)*step)
		}
	}
	st.ZFull = append(st.ZFull, zParam[n])

	st.DFull = make([]float64, len(st.ZFull))
	for j, z := range st.ZFull {
		st.DFull[j] = dOfZ.Predict(z)
	}
	for e := 0; e < ne; e++ {
		i := e / nRefine
		st.TFull[e] = sec.WallThicknessM[i]
		st.OutfittingFactor[e] = sec.OutfittingFactor[i]
		st.E_Pa[e] = sec.E_Pa[i]
		st.G_Pa[e] = sec.G_Pa[i]
		st.SigmaY_Pa[e] = sec.SigmaY_Pa[i]
		st.RhoKgM3[e] = sec.RhoKgM3[i]
		st.UnitCost[e] = sec.UnitCost[i]
	}
	return st, nil
}

// nearestNode returns the first node closest to z.
func nearestNode(zFull []float64, z float64) int {
	best, idx := math.Inf(1), 0
	for i, zi := range zFull {
		if d := math.Abs(zi - z); d < best {
			best, idx = d, i
		}
	}
	return idx
}
