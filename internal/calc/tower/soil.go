package tower

import (
	"fmt"
	"math"
)

// RigidStiffness stands in for a clamped support.
const RigidStiffness = 1e16

type Soil struct {
	G_Pa float64 `json:"g_pa" yaml:"g_pa"`
	Nu   float64 `json:"nu" yaml:"nu"`
}

// SoilStiffness returns the embedded circular foundation springs in the order
// [kx, ktx, ky, kty, kz, ktz] (Arya, Drewyer and Pincus).
func SoilStiffness(soil Soil, depthM, radiusM float64) ([6]float64, error) {
	var k [6]float64
	if soil.G_Pa <= 0 || radiusM <= 0 {
		return k, fmt.Errorf("%w: soil shear modulus and foundation radius must be positive", ErrInvalidGeometry)
	}
	if soil.Nu < 0 || soil.Nu > 0.5 {
		return k, fmt.Errorf("%w: soil Poisson ratio must be in [0, 0.5]", ErrInvalidGeometry)
	}
	g, nu, r0 := soil.G_Pa, soil.Nu, radiusM
	h := math.Abs(depthM) / r0

	etaZ := 1 + 0.6*(1-nu)*h
	kz := 4 * g * r0 * etaZ / (1 - nu)

	etaX := 1 + 0.55*(2-nu)*h
	kx := 32 * (1 - nu) * g * r0 * etaX / (7 - 8*nu)

	etaR := 1 + 1.2*(1-nu)*h + 0.2*(2-nu)*h*h*h
	kr := 8 * g * r0 * r0 * r0 * etaR / (3 * (1 - nu))

	kt := 16 * g * r0 * r0 * r0 / 3

	k = [6]float64{kx, kr, kx, kr, kz, kt}
	return k, nil
}
