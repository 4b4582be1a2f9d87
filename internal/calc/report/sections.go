package report

import (
	"fmt"

	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/servo"
	"WindSE/internal/calc/tower"

	"gonum.org/v1/gonum/floats"
)

func num(format string, v float64) string { return fmt.Sprintf(format, v) }

func Tower(res tower.Result) []Section {
	m := res.Mass
	s := []Section{{
		Heading: "Tower mass",
		Rows: []Row{
			{"Tower mass [kg]", num("%.0f", m.TowerMassKg)},
			{"Tower raw cost [USD]", num("%.2f", m.TowerRawCostUSD)},
			{"Tower center of mass [m]", num("%.3f", m.TowerCenterOfMassM)},
			{"Monopile mass [kg]", num("%.0f", m.MonopileMassKg)},
			{"Monopile cost [USD]", num("%.2f", m.MonopileCostUSD)},
			{"Monopile length [m]", num("%.2f", m.MonopileLengthM)},
			{"Total structural mass [kg]", num("%.0f", m.TotalMassKg)},
		},
	}}
	checks := Section{Heading: "Checks", Rows: []Row{
		{"Max utilization", num("%.3f", res.MaxUtilization)},
	}}
	if len(res.Weldability) > 0 {
		checks.Rows = append(checks.Rows, Row{"Min weldability", num("%.3f", floats.Min(res.Weldability))})
	}
	if len(res.Manufacturability) > 0 {
		checks.Rows = append(checks.Rows, Row{"Min manufacturability", num("%.3f", floats.Min(res.Manufacturability))})
	}
	for _, lc := range res.LoadCases {
		checks.Rows = append(checks.Rows,
			Row{lc.Name + " utilization", num("%.3f", lc.MaxUtilization)},
			Row{lc.Name + " top deflection [m]", num("%.4f", lc.TopDeflectionM[0])},
		)
	}
	return append(s, checks)
}

func PowerCurve(res servo.Response) []Section {
	rows := []Row{
		{"Rated wind speed [m/s]", num("%.2f", res.RatedVMS)},
		{"Rated rotor speed [rpm]", num("%.2f", res.RatedOmegaRPM)},
		{"Rated pitch [deg]", num("%.2f", res.RatedPitchDeg)},
		{"Rated thrust [kN]", num("%.1f", res.RatedThrustN/1e3)},
		{"Rated torque [kNm]", num("%.1f", res.RatedTorqueNm/1e3)},
		{"Binding bound", res.Binding},
	}
	if res.AEPkWh > 0 {
		rows = append(rows, Row{"AEP [MWh]", num("%.1f", res.AEPkWh/1e3)})
	}
	return []Section{{Heading: "Power curve", Rows: rows}}
}

func Collection(res bos.CollectionResult) []Section {
	ops := Section{Heading: "Collection cost"}
	for _, r := range res.ModuleTypeOperation {
		ops.Rows = append(ops.Rows, Row{r.TypeOfCost + " [USD]", num("%.2f", r.CostPerProject)})
	}
	details := Section{Heading: "Collection system"}
	for _, d := range res.Details {
		details.Rows = append(details.Rows, Row{fmt.Sprintf("%s [%s]", d.Variable, d.Unit), num("%g", d.Value)})
	}
	return []Section{ops, details}
}
