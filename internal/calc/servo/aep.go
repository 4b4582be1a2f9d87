package servo

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/distuv"
)

const hoursPerYear = 365 * 24

// AEP integrates a power curve against a Weibull wind distribution with the
// given mean speed and shape k (k = 2 is Rayleigh). The result is in kWh.
func AEP(v, p []float64, meanWindMS, k, losses float64) (float64, error) {
	if len(v) < 2 || len(v) != len(p) {
		return 0, fmt.Errorf("%w: need matching wind speed and power samples", ErrInvalidInput)
	}
	if !sort.Float64sAreSorted(v) {
		return 0, fmt.Errorf("%w: wind speeds must be increasing", ErrInvalidInput)
	}
	if meanWindMS <= 0 {
		return 0, fmt.Errorf("%w: mean wind speed must be positive", ErrInvalidInput)
	}
	if k <= 0 {
		k = 2
	}
	if losses < 0 || losses >= 1 {
		return 0, fmt.Errorf("%w: losses must be in [0, 1)", ErrInvalidInput)
	}
	w := distuv.Weibull{K: k, Lambda: meanWindMS / math.Gamma(1+1/k)}
	cdf := make([]float64, len(v))
	for i, vi := range v {
		cdf[i] = w.CDF(vi)
	}
	wh := integrate.Trapezoidal(cdf, p) * hoursPerYear * (1 - losses)
	return wh / 1e3, nil
}
