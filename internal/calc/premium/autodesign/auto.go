package autodesign

import (
	"errors"
	"fmt"

	"WindSE/internal/calc/tower"

	"gonum.org/v1/gonum/floats"
)

var ErrInfeasible = errors.New("no feasible wall thickness scale")

const sizingIterations = 60

// TowerAutoInput is a tower case and the bracket searched for the thickness
// scale. A zero bracket means 0.1 to 10.
type TowerAutoInput struct {
	Case     tower.Case `json:"case" yaml:"case"`
	MinScale float64    `json:"min_scale" yaml:"min_scale"`
	MaxScale float64    `json:"max_scale" yaml:"max_scale"`
}

type TowerAutoResult struct {
	Scale          float64   `json:"thickness_scale"`
	WallThicknessM []float64 `json:"wall_thickness_m"`
	TowerMassKg    float64   `json:"tower_mass_kg"`
	MonopileMassKg float64   `json:"monopile_mass_kg"`
	MaxUtilization float64   `json:"max_utilization"`
	MinWeldability float64   `json:"min_weldability"`
	Notes          string    `json:"notes"`
}

func feasible(res tower.Result) bool {
	return res.MaxUtilization <= 1 && floats.Min(res.Weldability) >= 0
}

// Tower scales every wall thickness by the smallest common factor for which
// the worst load case utilization is at most 1 and every section is
// weldable.
func Tower(in TowerAutoInput) (TowerAutoResult, error) {
	lo, hi := in.MinScale, in.MaxScale
	if lo <= 0 {
		lo = 0.1
	}
	if hi <= 0 {
		hi = 10
	}
	if hi <= lo {
		return TowerAutoResult{}, fmt.Errorf("%w: max scale must exceed min scale", tower.ErrInvalidGeometry)
	}
	analyze := func(f float64) (tower.Result, error) { return tower.Analyze(in.Case.WithThicknessScale(f)) }

	best, err := analyze(hi)
	if err != nil {
		return TowerAutoResult{}, err
	}
	if !feasible(best) {
		return TowerAutoResult{}, fmt.Errorf("%w: utilization %.3f at scale %.3g", ErrInfeasible, best.MaxUtilization, hi)
	}
	scale := hi
	if res, err := analyze(lo); err == nil && feasible(res) {
		scale, best = lo, res
	} else {
		for i := 0; i < sizingIterations; i++ {
			mid := 0.5 * (lo + hi)
			res, err := analyze(mid)
			if err != nil {
				return TowerAutoResult{}, err
			}
			if feasible(res) {
				hi, scale, best = mid, mid, res
			} else {
				lo = mid
			}
		}
	}

	return TowerAutoResult{
		Scale:          scale,
		WallThicknessM: best.Sections.WallThicknessM,
		TowerMassKg:    best.Mass.TowerMassKg,
		MonopileMassKg: best.Mass.MonopileMassKg,
		MaxUtilization: best.MaxUtilization,
		MinWeldability: floats.Min(best.Weldability),
		Notes:          fmt.Sprintf("Wall thickness scaled by %.4f (%s).", scale, best.Notes),
	}, nil
}
