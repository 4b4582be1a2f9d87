package bos

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	// PowerFactor of the collection system.
	PowerFactor     = 0.95
	daysPerMonth    = 30
	componentModule = "ArraySystem"
	operationID     = "Collection"
	crewTrenching   = "trenching"
	crewCableLay    = "cable_lay"

	// MaxTurbines bounds the plant size a collection layout is planned for.
	MaxTurbines = 10000
)

// ArraySystem sizes the array cable strings of a plant laid out in rows and
// prices cable material, trenching and cable laying.
type ArraySystem struct{}

// cableCarry is a cable and the number of turbines it can carry.
type cableCarry struct {
	spec     CableSpec
	turbines int
}

// CableCapacityMW is the three-phase power a cable carries over one segment
// of lengthM metres after the capacitive charging current is removed.
func CableCapacityMW(c CableSpec, lengthM, frequencyHz float64) float64 {
	vPhase := c.VoltageKV * 1e3 / math.Sqrt(3)
	cTotal := c.CapacitanceNF * 1e-9 * lengthM / 1e3
	charging := 2 * math.Pi * frequencyHz * cTotal * vPhase
	if charging >= c.CurrentA {
		return 0
	}
	usable := math.Sqrt(c.CurrentA*c.CurrentA - charging*charging)
	return math.Sqrt(3) * c.VoltageKV * usable * PowerFactor / 1e3
}

type layout struct {
	turbines   int
	perString  int
	strings    int
	segmentM   float64
	lengthM    map[string]float64
	cableOrder []string
}

func plan(specs []CableSpec, turbines int, ratingMW, segmentM, rowM, freq float64) (layout, error) {
	if turbines < 1 || turbines > MaxTurbines {
		return layout{}, fmt.Errorf("%w: %d turbines, want 1 to %d", ErrInvalidInput, turbines, MaxTurbines)
	}
	var carries []cableCarry
	for _, c := range specs {
		n := int(math.Floor(CableCapacityMW(c, segmentM, freq)/ratingMW + 1e-9))
		if n >= 1 {
			carries = append(carries, cableCarry{spec: c, turbines: n})
		}
	}
	if len(carries) == 0 {
		return layout{}, fmt.Errorf("%w: no cable can carry one %.2f MW turbine", ErrInvalidInput, ratingMW)
	}
	sort.SliceStable(carries, func(i, j int) bool { return carries[i].turbines < carries[j].turbines })
	largest := carries[len(carries)-1]

	l := layout{turbines: turbines, perString: largest.turbines, segmentM: segmentM, lengthM: map[string]float64{}}
	sizes := make([]int, 0, turbines/largest.turbines+1)
	for left := turbines; left > 0; left -= largest.turbines {
		sizes = append(sizes, min(left, largest.turbines))
	}
	l.strings = len(sizes)
	for _, c := range carries {
		l.cableOrder = append(l.cableOrder, c.spec.Name)
	}

	center := float64(l.strings-1) / 2
	for s, m := range sizes {
		for j := 1; j < m; j++ {
			for _, c := range carries {
				if c.turbines >= j {
					l.lengthM[c.spec.Name] += segmentM
					break
				}
			}
		}
		l.lengthM[largest.spec.Name] += segmentM + math.Abs(float64(s)-center)*rowM
	}
	return l, nil
}

func crew(rows []CrewRate, op string) (CrewRate, error) {
	for _, r := range rows {
		if r.Operation == op {
			return r, nil
		}
	}
	return CrewRate{}, fmt.Errorf("%w: crew %q", ErrMissingKey, op)
}

func money(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func (ArraySystem) Run(in Inputs, out Outputs) error {
	capacity, err := in.Float("plant_capacity_MW")
	if err != nil {
		return err
	}
	rating, err := in.Float("turbine_rating_MW")
	if err != nil {
		return err
	}
	spacing, err := in.Float("turbine_spacing_rotor_diameters")
	if err != nil {
		return err
	}
	rowSpacing, err := in.Float("row_spacing_rotor_diameters")
	if err != nil {
		return err
	}
	rotor, err := in.Float("rotor_diameter_m")
	if err != nil {
		return err
	}
	freq, err := in.Float("line_frequency_hz")
	if err != nil {
		return err
	}
	months, err := in.Float("construct_duration")
	if err != nil {
		return err
	}
	specs, err := in.CableSpecs("cable_specs_pd")
	if err != nil {
		return err
	}
	crews, err := in.CrewRates("rsmeans")
	if err != nil {
		return err
	}
	if capacity <= 0 || rating <= 0 || spacing <= 0 || rotor <= 0 || months <= 0 || rowSpacing < 0 || freq < 0 {
		return fmt.Errorf("%w: plant, turbine and schedule sizes must be positive", ErrInvalidInput)
	}
	trench, err := crew(crews, crewTrenching)
	if err != nil {
		return err
	}
	lay, err := crew(crews, crewCableLay)
	if err != nil {
		return err
	}
	if trench.DailyOutputM <= 0 || lay.DailyOutputM <= 0 {
		return fmt.Errorf("%w: crew daily output must be positive", ErrInvalidInput)
	}

	count := math.Round(capacity / rating)
	if count > MaxTurbines {
		return fmt.Errorf("%w: %.0f turbines exceeds %d", ErrInvalidInput, count, MaxTurbines)
	}
	turbines := max(1, int(count))
	l, err := plan(specs, turbines, rating, spacing*rotor, rowSpacing*rotor, freq)
	if err != nil {
		return err
	}

	cost := map[string]float64{}
	for _, c := range specs {
		cost[c.Name] = c.CostUSDPerM
	}
	var totalM float64
	material := decimal.Zero
	details := []CostDetail{
		{Variable: "Total turbines", Unit: "count", Value: float64(l.turbines)},
		{Variable: "Turbines per string", Unit: "count", Value: float64(l.perString)},
		{Variable: "Number of strings", Unit: "count", Value: float64(l.strings)},
	}
	for _, name := range l.cableOrder {
		m := l.lengthM[name]
		totalM += m
		material = material.Add(money(m).Mul(money(cost[name])))
		details = append(details, CostDetail{Variable: "Cable length " + name, Unit: "km", Value: m / 1e3})
	}

	trenchDays := totalM / trench.DailyOutputM
	layDays := totalM / lay.DailyOutputM
	labor := money(trenchDays).Mul(money(trench.LaborUSDPerDay)).Add(money(layDays).Mul(money(lay.LaborUSDPerDay)))
	equipment := money(trenchDays).Mul(money(trench.EquipmentUSDPerDay)).Add(money(layDays).Mul(money(lay.EquipmentUSDPerDay)))
	crewsNeeded := math.Ceil((trenchDays + layDays) / (months * daysPerMonth))
	total := material.Add(labor).Add(equipment).Round(2)

	details = append(details,
		CostDetail{Variable: "Total cable length", Unit: "km", Value: totalM / 1e3},
		CostDetail{Variable: "Trenching duration", Unit: "days", Value: trenchDays},
		CostDetail{Variable: "Cable lay duration", Unit: "days", Value: layDays},
		CostDetail{Variable: "Crews needed", Unit: "count", Value: crewsNeeded},
		CostDetail{Variable: "Total collection cost", Unit: "usd", Value: total.InexactFloat64()},
	)

	n := decimal.NewFromInt(int64(l.turbines))
	kw := money(capacity * 1e3)
	row := func(kind string, c decimal.Decimal) TypeOperation {
		c = c.Round(2)
		return TypeOperation{
			Module:         componentModule,
			TypeOfCost:     kind,
			Operation:      operationID,
			CostPerTurbine: c.Div(n).Round(2).InexactFloat64(),
			CostPerProject: c.InexactFloat64(),
			USDPerKW:       c.Div(kw).Round(2).InexactFloat64(),
		}
	}
	out["collection_cost_details"] = details
	out["collection_cost_module_type_operation"] = []TypeOperation{
		row("Materials", material),
		row("Labor", labor),
		row("Equipment rental", equipment),
	}
	return nil
}
