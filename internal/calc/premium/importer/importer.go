package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/tower"

	"github.com/xuri/excelize/v2"
)

var ErrBadSheet = errors.New("bad sheet")

const (
	SheetCables   = "cable_specs"
	SheetCrews    = "rsmeans"
	SheetInputs   = "inputs"
	SheetSections = "sections"
)

// table is a sheet with a header row. Columns are found by header name.
type table struct {
	sheet  string
	header map[string]int
	rows   [][]string
}

func readTable(f *excelize.File, sheet string, required ...string) (table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return table{}, fmt.Errorf("%w: %s: %v", ErrBadSheet, sheet, err)
	}
	if len(rows) < 2 {
		return table{}, fmt.Errorf("%w: %s is empty", ErrBadSheet, sheet)
	}
	t := table{sheet: sheet, header: map[string]int{}, rows: rows[1:]}
	for i, h := range rows[0] {
		t.header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := t.header[name]; !ok {
			return table{}, fmt.Errorf("%w: %s has no %q column", ErrBadSheet, sheet, name)
		}
	}
	return t, nil
}

func (t table) text(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number reads a numeric cell; blank optional cells are zero.
func (t table) number(row []string, line int, col string) (float64, error) {
	s := t.text(row, col)
	if s == "" {
		return 0, nil
	}
	v, err := toFloat(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s row %d %s: %q", ErrBadSheet, t.sheet, line+2, col, s)
	}
	return v, nil
}

func (t table) numbers(row []string, line int, cols []string, dst []*float64) error {
	for k, col := range cols {
		v, err := t.number(row, line, col)
		if err != nil {
			return err
		}
		*dst[k] = v
	}
	return nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func ReadCableSpecs(f *excelize.File) ([]bos.CableSpec, error) {
	cols := []string{"current_capacity_a", "rated_voltage_kv", "ac_resistance_ohm_per_km", "inductance_mh_per_km", "capacitance_nf_per_km", "cost_usd_per_m"}
	t, err := readTable(f, SheetCables, append([]string{"name"}, cols...)...)
	if err != nil {
		return nil, err
	}
	var out []bos.CableSpec
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		c := bos.CableSpec{Name: t.text(row, "name")}
		dst := []*float64{&c.CurrentA, &c.VoltageKV, &c.ResistanceOhm, &c.InductanceMH, &c.CapacitanceNF, &c.CostUSDPerM}
		if err := t.numbers(row, i, cols, dst); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func ReadCrewRates(f *excelize.File) ([]bos.CrewRate, error) {
	cols := []string{"daily_output_m", "labor_usd_per_day", "equipment_usd_per_day"}
	t, err := readTable(f, SheetCrews, append([]string{"operation"}, cols...)...)
	if err != nil {
		return nil, err
	}
	var out []bos.CrewRate
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		c := bos.CrewRate{Operation: t.text(row, "operation")}
		if err := t.numbers(row, i, cols, []*float64{&c.DailyOutputM, &c.LaborUSDPerDay, &c.EquipmentUSDPerDay}); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadCollection reads the cable and crew tables and, when present, the
// key/value "inputs" sheet for the scalar inputs.
func ReadCollection(f *excelize.File) (bos.CollectionInput, error) {
	var in bos.CollectionInput
	var err error
	if in.CableSpecs, err = ReadCableSpecs(f); err != nil {
		return in, err
	}
	if in.Crews, err = ReadCrewRates(f); err != nil {
		return in, err
	}
	if idx, _ := f.GetSheetIndex(SheetInputs); idx < 0 {
		return in, nil
	}
	t, err := readTable(f, SheetInputs, "key", "value")
	if err != nil {
		return in, err
	}
	fields := map[string]*float64{
		"line_frequency_hz":               &in.LineFrequencyHz,
		"turbine_rating_mw":               &in.TurbineRatingMW,
		"turbine_spacing_rotor_diameters": &in.TurbineSpacingRD,
		"rotor_diameter_m":                &in.RotorDiameterM,
		"plant_capacity_mw":               &in.PlantCapacityMW,
		"construct_duration":              &in.ConstructDurationMon,
		"row_spacing_rotor_diameters":     &in.RowSpacingRD,
	}
	for i, row := range t.rows {
		key := strings.ToLower(t.text(row, "key"))
		dst, ok := fields[key]
		if !ok {
			continue
		}
		if *dst, err = t.number(row, i, "value"); err != nil {
			return in, err
		}
	}
	return in, nil
}

// ReadSections reads one row per tower section, bottom to top. Each row
// gives the section height, its bottom diameter, wall thickness and
// material properties; the top diameter column of the last row closes the
// diameter stations.
func ReadSections(f *excelize.File) (tower.Sections, error) {
	cols := []string{"height_m", "d_bottom_m", "wall_thickness_m", "e_pa", "g_pa", "sigma_y_pa", "rho_kg_m3", "unit_cost"}
	t, err := readTable(f, SheetSections, cols...)
	if err != nil {
		return tower.Sections{}, err
	}
	var sec tower.Sections
	var dTop float64
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		var h, d, tw, e, g, sy, rho, cost float64
		if err := t.numbers(row, i, cols, []*float64{&h, &d, &tw, &e, &g, &sy, &rho, &cost}); err != nil {
			return tower.Sections{}, err
		}
		of, err := t.number(row, i, "outfitting_factor")
		if err != nil {
			return tower.Sections{}, err
		}
		if of <= 0 {
			of = 1
		}
		if dTop, err = t.number(row, i, "d_top_m"); err != nil {
			return tower.Sections{}, err
		}
		sec.HeightM = append(sec.HeightM, h)
		sec.OuterDiameterM = append(sec.OuterDiameterM, d)
		sec.WallThicknessM = append(sec.WallThicknessM, tw)
		sec.OutfittingFactor = append(sec.OutfittingFactor, of)
		sec.E_Pa = append(sec.E_Pa, e)
		sec.G_Pa = append(sec.G_Pa, g)
		sec.SigmaY_Pa = append(sec.SigmaY_Pa, sy)
		sec.RhoKgM3 = append(sec.RhoKgM3, rho)
		sec.UnitCost = append(sec.UnitCost, cost)
	}
	sec.OuterDiameterM = append(sec.OuterDiameterM, dTop)
	if err := sec.Validate(); err != nil {
		return tower.Sections{}, err
	}
	return sec, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
