package bos

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

const componentName = "CollectionCost"

// CollectionInput carries the collection cost inputs under their typed
// names. Zero scalars take the defaults below.
type CollectionInput struct {
	LineFrequencyHz      float64        `json:"line_frequency_hz" yaml:"line_frequency_hz"`
	TurbineRatingMW      float64        `json:"turbine_rating_MW" yaml:"turbine_rating_MW"`
	TurbineSpacingRD     float64        `json:"turbine_spacing_rotor_diameters" yaml:"turbine_spacing_rotor_diameters"`
	RotorDiameterM       float64        `json:"rotor_diameter_m" yaml:"rotor_diameter_m"`
	PlantCapacityMW      float64        `json:"plant_capacity_MW" yaml:"plant_capacity_MW"`
	ConstructDurationMon float64        `json:"construct_duration" yaml:"construct_duration"`
	RowSpacingRD         float64        `json:"row_spacing_rotor_diameters" yaml:"row_spacing_rotor_diameters"`
	CableSpecs           []CableSpec    `json:"cable_specs" yaml:"cable_specs"`
	Crews                []CrewRate     `json:"rsmeans" yaml:"rsmeans"`
	Extra                map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

func (in CollectionInput) withDefaults() CollectionInput {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&in.LineFrequencyHz, 60)
	def(&in.TurbineRatingMW, 2.5)
	def(&in.TurbineSpacingRD, 10)
	def(&in.RotorDiameterM, 177)
	def(&in.PlantCapacityMW, 100)
	def(&in.ConstructDurationMon, 9)
	def(&in.RowSpacingRD, 10)
	return in
}

// Mapping merges the inputs into one mapping under the cost model key
// names. Typed fields take precedence over Extra.
func (in CollectionInput) Mapping() Inputs {
	in = in.withDefaults()
	m := Inputs{}
	for k, v := range in.Extra {
		m[k] = v
	}
	m["line_frequency_hz"] = in.LineFrequencyHz
	m["turbine_rating_MW"] = in.TurbineRatingMW
	m["turbine_spacing_rotor_diameters"] = in.TurbineSpacingRD
	m["rotor_diameter_m"] = in.RotorDiameterM
	m["plant_capacity_MW"] = in.PlantCapacityMW
	m["construct_duration"] = in.ConstructDurationMon
	m["row_spacing_rotor_diameters"] = in.RowSpacingRD
	m["cable_specs"] = in.CableSpecs
	m["cable_specs_pd"] = in.CableSpecs
	m["rsmeans"] = in.Crews
	return m
}

type CollectionResult struct {
	Details             []CostDetail    `json:"collection_cost_details"`
	ModuleTypeOperation []TypeOperation `json:"collection_cost_module_type_operation"`
}

// Collection adapts CollectionInput to a cost Module. A nil Module runs
// ArraySystem; Verbose writes the result tables to Out (stdout when nil).
type Collection struct {
	Module  Module
	Verbose bool
	Out     io.Writer
}

func (c Collection) Compute(in CollectionInput) (CollectionResult, error) {
	module := c.Module
	if module == nil {
		module = ArraySystem{}
	}
	out := Outputs{}
	if err := module.Run(in.Mapping(), out); err != nil {
		return CollectionResult{}, fmt.Errorf("%s: %w", componentName, err)
	}
	var res CollectionResult
	var err error
	if res.Details, err = out.Details("collection_cost_details"); err != nil {
		return CollectionResult{}, fmt.Errorf("%s: %w", componentName, err)
	}
	if res.ModuleTypeOperation, err = out.TypeOperations("collection_cost_module_type_operation"); err != nil {
		return CollectionResult{}, fmt.Errorf("%s: %w", componentName, err)
	}
	if c.Verbose {
		w := c.Out
		if w == nil {
			w = os.Stdout
		}
		if err := WriteTables(w, res); err != nil {
			return CollectionResult{}, err
		}
	}
	return res, nil
}

// WriteTables prints the module type operation table and then the detail
// table, each under the component name.
func WriteTables(w io.Writer, res CollectionResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s module_type_operation\n", componentName)
	fmt.Fprintln(tw, "module\ttype_of_cost\toperation_id\tcost_per_turbine\tcost_per_project\tusd_per_kw")
	for _, r := range res.ModuleTypeOperation {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n", r.Module, r.TypeOfCost, r.Operation, r.CostPerTurbine, r.CostPerProject, r.USDPerKW)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(tw, "\n%s details\n", componentName)
	fmt.Fprintln(tw, "variable\tunit\tvalue")
	for _, d := range res.Details {
		fmt.Fprintf(tw, "%s\t%s\t%g\n", d.Variable, d.Unit, d.Value)
	}
	return tw.Flush()
}
