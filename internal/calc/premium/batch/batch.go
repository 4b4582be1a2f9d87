package batch

import (
	"errors"
	"fmt"

	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/servo"
	"WindSE/internal/calc/tower"
)

var ErrEmpty = errors.New("no items")

type Input struct {
	Towers      []tower.Case          `json:"towers" yaml:"towers"`
	PowerCurves []servo.Request       `json:"power_curves" yaml:"power_curves"`
	Collections []bos.CollectionInput `json:"collections" yaml:"collections"`
}

type Result struct {
	Towers      []tower.Result         `json:"towers"`
	PowerCurves []servo.Response       `json:"power_curves"`
	Collections []bos.CollectionResult `json:"collections"`
}

// Run evaluates every item in order and stops at the first failure, naming
// the failing item.
func Run(in Input) (Result, error) {
	if len(in.Towers)+len(in.PowerCurves)+len(in.Collections) == 0 {
		return Result{}, ErrEmpty
	}
	out := Result{
		Towers:      make([]tower.Result, 0, len(in.Towers)),
		PowerCurves: make([]servo.Response, 0, len(in.PowerCurves)),
		Collections: make([]bos.CollectionResult, 0, len(in.Collections)),
	}
	for i, c := range in.Towers {
		res, err := tower.Analyze(c)
		if err != nil {
			return Result{}, fmt.Errorf("tower %d: %w", i, err)
		}
		out.Towers = append(out.Towers, res)
	}
	for i, req := range in.PowerCurves {
		res, err := servo.Run(req)
		if err != nil {
			return Result{}, fmt.Errorf("power curve %d: %w", i, err)
		}
		out.PowerCurves = append(out.PowerCurves, res)
	}
	for i, c := range in.Collections {
		res, err := bos.Collection{}.Compute(c)
		if err != nil {
			return Result{}, fmt.Errorf("collection %d: %w", i, err)
		}
		out.Collections = append(out.Collections, res)
	}
	return out, nil
}
