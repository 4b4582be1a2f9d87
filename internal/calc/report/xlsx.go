package report

import (
	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/servo"
	"WindSE/internal/calc/tower"

	"github.com/xuri/excelize/v2"
)

// book appends sheets to a new workbook and drops the default sheet.
type book struct {
	f   *excelize.File
	err error
}

func newBook() *book { return &book{f: excelize.NewFile()} }

func (b *book) sheet(name string, header []any, rows [][]any) {
	if b.err != nil {
		return
	}
	if _, b.err = b.f.NewSheet(name); b.err != nil {
		return
	}
	b.err = b.f.SetSheetRow(name, "A1", &header)
	for i := range rows {
		if b.err != nil {
			return
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		b.err = b.f.SetSheetRow(name, cell, &rows[i])
	}
}

func (b *book) done() (*excelize.File, error) {
	if b.err == nil {
		b.err = b.f.DeleteSheet("Sheet1")
	}
	if b.err != nil {
		b.f.Close()
		return nil, b.err
	}
	b.f.SetActiveSheet(0)
	return b.f, nil
}

func CollectionXLSX(res bos.CollectionResult) (*excelize.File, error) {
	b := newBook()
	ops := make([][]any, len(res.ModuleTypeOperation))
	for i, r := range res.ModuleTypeOperation {
		ops[i] = []any{r.Module, r.TypeOfCost, r.Operation, r.CostPerTurbine, r.CostPerProject, r.USDPerKW}
	}
	b.sheet("module_type_operation", []any{"module", "type_of_cost", "operation_id", "cost_per_turbine_usd", "cost_per_project_usd", "usd_per_kw"}, ops)
	details := make([][]any, len(res.Details))
	for i, d := range res.Details {
		details[i] = []any{d.Variable, d.Unit, d.Value}
	}
	b.sheet("details", []any{"variable", "unit", "value"}, details)
	return b.done()
}

func PowerCurveXLSX(res servo.Result) (*excelize.File, error) {
	b := newBook()
	rows := make([][]any, len(res.Samples))
	for i, s := range res.Samples {
		rows[i] = []any{s.VMS, s.OmegaRPM, s.PitchDeg, s.PowerW, s.AeroPowerW, s.ThrustN, s.TorqueNm, s.Cp, s.CpAero, s.Ct, s.Cq, s.Region}
	}
	b.sheet("power_curve", []any{"v_m_s", "omega_rpm", "pitch_deg", "p_w", "p_aero_w", "t_n", "q_nm", "cp", "cp_aero", "ct", "cq", "region"}, rows)
	spline := make([][]any, len(res.VSpline))
	for i := range res.VSpline {
		spline[i] = []any{res.VSpline[i], res.PSpline[i]}
	}
	b.sheet("spline", []any{"v_m_s", "p_w"}, spline)
	b.sheet("rated", []any{"quantity", "value"}, [][]any{
		{"rated_v_m_s", res.RatedVMS},
		{"rated_omega_rpm", res.RatedOmegaRPM},
		{"rated_pitch_deg", res.RatedPitchDeg},
		{"rated_thrust_n", res.RatedThrustN},
		{"rated_torque_nm", res.RatedTorqueNm},
		{"binding_bound", res.Binding},
	})
	return b.done()
}

func TowerXLSX(res tower.Result) (*excelize.File, error) {
	b := newBook()
	st := res.Stations
	stations := make([][]any, len(st.ZFull))
	for i := range st.ZFull {
		stations[i] = []any{st.ZFull[i], st.DFull[i]}
		if i < len(st.TFull) {
			stations[i] = append(stations[i], st.TFull[i])
		}
	}
	b.sheet("stations", []any{"z_m", "d_m", "t_m"}, stations)

	elements := make([][]any, len(res.Cylinder.MassKg))
	for i, m := range res.Cylinder.MassKg {
		elements[i] = []any{i, m, res.Cylinder.SectionCenterOfMassM[i]}
	}
	b.sheet("elements", []any{"element", "mass_kg", "center_of_mass_m"}, elements)

	sections := make([][]any, res.Sections.Len())
	for i := range sections {
		sections[i] = []any{i, res.Sections.HeightM[i], res.Sections.WallThicknessM[i], res.Weldability[i], res.Manufacturability[i]}
	}
	b.sheet("sections", []any{"section", "height_m", "wall_thickness_m", "weldability", "manufacturability"}, sections)

	rows := Tower(res)
	summary := make([][]any, 0)
	for _, s := range rows {
		for _, r := range s.Rows {
			summary = append(summary, []any{s.Heading, r.Key, r.Value})
		}
	}
	b.sheet("summary", []any{"section", "quantity", "value"}, summary)
	return b.done()
}
