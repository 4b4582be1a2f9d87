package recommend

import (
	"fmt"
	"math"

	"WindSE/internal/calc/bos"
)

type CableInput struct {
	Cables          []bos.CableSpec `json:"cable_specs"`
	Turbines        int             `json:"turbines"`
	TurbineRatingMW float64         `json:"turbine_rating_MW"`
	SegmentM        float64         `json:"segment_length_m"`
	LineFrequencyHz float64         `json:"line_frequency_hz"`
}

type CableOption struct {
	Name        string  `json:"name"`
	CapacityMW  float64 `json:"capacity_mw"`
	MaxTurbines int     `json:"max_turbines"`
	CostUSDPerM float64 `json:"cost_usd_per_m"`
}

type CableResult struct {
	Recommended CableOption   `json:"recommended"`
	Options     []CableOption `json:"options"`
	Notes       string        `json:"notes"`
}

// Cable picks the cheapest cable able to carry the given number of turbines
// over one segment.
func Cable(in CableInput) (CableResult, error) {
	if in.Turbines <= 0 || in.TurbineRatingMW <= 0 || in.SegmentM <= 0 || len(in.Cables) == 0 {
		return CableResult{}, fmt.Errorf("%w: turbines, rating, segment length and cables required", bos.ErrInvalidInput)
	}
	if in.LineFrequencyHz <= 0 {
		in.LineFrequencyHz = 60
	}
	var res CableResult
	found := false
	for _, c := range in.Cables {
		mw := bos.CableCapacityMW(c, in.SegmentM, in.LineFrequencyHz)
		opt := CableOption{
			Name:        c.Name,
			CapacityMW:  mw,
			MaxTurbines: int(math.Floor(mw/in.TurbineRatingMW + 1e-9)),
			CostUSDPerM: c.CostUSDPerM,
		}
		res.Options = append(res.Options, opt)
		if opt.MaxTurbines >= in.Turbines && (!found || opt.CostUSDPerM < res.Recommended.CostUSDPerM) {
			res.Recommended, found = opt, true
		}
	}
	if !found {
		return CableResult{}, fmt.Errorf("%w: no cable carries %d turbines", bos.ErrInvalidInput, in.Turbines)
	}
	res.Notes = fmt.Sprintf("Cheapest cable for %d x %.2f MW over %.0f m.", in.Turbines, in.TurbineRatingMW, in.SegmentM)
	return res, nil
}
