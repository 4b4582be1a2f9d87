package tower

import "math"

// Weldability is positive when a section's mean diameter to thickness ratio
// is below minDtoT.
func Weldability(outerDiameterM, wallThicknessM []float64, minDtoT float64) []float64 {
	out := make([]float64, len(wallThicknessM))
	for i, t := range wallThicknessM {
		dMean := 0.5 * (outerDiameterM[i] + outerDiameterM[i+1])
		out[i] = 1 - (dMean/t)/minDtoT
	}
	return out
}

// Manufacturability is positive when a section tapers less than maxTaper.
func Manufacturability(outerDiameterM []float64, maxTaper float64) []float64 {
	if len(outerDiameterM) < 2 {
		return nil
	}
	out := make([]float64, len(outerDiameterM)-1)
	for i := range out {
		out[i] = maxTaper - math.Abs(1-outerDiameterM[i+1]/outerDiameterM[i])
	}
	return out
}
