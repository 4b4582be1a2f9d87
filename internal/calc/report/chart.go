package report

import (
	"bytes"
	"fmt"

	"WindSE/internal/calc/servo"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PowerCurvePNG draws the spline power curve with the regulated samples in
// kW over wind speed.
func PowerCurvePNG(res servo.Result, width, height vg.Length) ([]byte, error) {
	if len(res.VSpline) == 0 || len(res.VSpline) != len(res.PSpline) {
		return nil, fmt.Errorf("power curve has no spline")
	}
	spline := make(plotter.XYs, len(res.VSpline))
	for i := range res.VSpline {
		spline[i].X = res.VSpline[i]
		spline[i].Y = res.PSpline[i] / 1e3
	}
	samples := make(plotter.XYs, len(res.Samples))
	for i, s := range res.Samples {
		samples[i].X = s.VMS
		samples[i].Y = s.PowerW / 1e3
	}

	p := plot.New()
	p.Title.Text = "Power curve"
	p.X.Label.Text = "Wind speed [m/s]"
	p.Y.Label.Text = "Power [kW]"
	if err := plotutil.AddLinePoints(p, "spline", spline); err != nil {
		return nil, err
	}
	if err := plotutil.AddScatters(p, "regulated", samples); err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultChartSize is the chart size embedded in reports.
var DefaultChartSize = [2]vg.Length{6 * vg.Inch, 4 * vg.Inch}
