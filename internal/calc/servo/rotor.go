package servo

import "math"

// Rotor gives the power and thrust coefficients at a tip-speed ratio and
// collective pitch in degrees.
type Rotor interface {
	Coefficients(tsr, pitchDeg float64) (cp, ct float64)
}

// Heier is the analytic Cp(lambda, beta) surface of Heier (1998). Thrust
// comes from actuator disk momentum theory.
type Heier struct {
	C [6]float64 `json:"c" yaml:"c"`
}

var heierDefault = [6]float64{0.5176, 116, 0.4, 5, 21, 0.0068}

const betzLimit = 16.0 / 27.0

func (h Heier) Coefficients(tsr, pitchDeg float64) (cp, ct float64) {
	c := h.C
	if c == ([6]float64{}) {
		c = heierDefault
	}
	den := tsr + 0.08*pitchDeg
	if tsr <= 0 || den <= 0 {
		return 0, 0
	}
	inv := 1/den - 0.035/(pitchDeg*pitchDeg*pitchDeg+1)
	cp = c[0]*(c[1]*inv-c[2]*pitchDeg-c[3])*math.Exp(-c[4]*inv) + c[5]*tsr
	cp = math.Min(math.Max(cp, 0), betzLimit)
	a := inductionFromCp(cp)
	return cp, 4 * a * (1 - a)
}

// inductionFromCp inverts cp = 4a(1-a)^2 on [0, 1/3], where it is
// increasing.
func inductionFromCp(cp float64) float64 {
	lo, hi := 0.0, 1.0/3.0
	for i := 0; i < 60; i++ {
		mid := 0.5 * (lo + hi)
		if 4*mid*(1-mid)*(1-mid) < cp {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}
