package bos

// CableSpec is one row of the cable specification table.
type CableSpec struct {
	Name          string  `json:"name" yaml:"name"`
	CurrentA      float64 `json:"current_capacity_a" yaml:"current_capacity_a"`
	VoltageKV     float64 `json:"rated_voltage_kv" yaml:"rated_voltage_kv"`
	ResistanceOhm float64 `json:"ac_resistance_ohm_per_km" yaml:"ac_resistance_ohm_per_km"`
	InductanceMH  float64 `json:"inductance_mh_per_km" yaml:"inductance_mh_per_km"`
	CapacitanceNF float64 `json:"capacitance_nf_per_km" yaml:"capacitance_nf_per_km"`
	CostUSDPerM   float64 `json:"cost_usd_per_m" yaml:"cost_usd_per_m"`
}

// CrewRate is one row of the crew cost table.
type CrewRate struct {
	Operation          string  `json:"operation" yaml:"operation"`
	DailyOutputM       float64 `json:"daily_output_m" yaml:"daily_output_m"`
	LaborUSDPerDay     float64 `json:"labor_usd_per_day" yaml:"labor_usd_per_day"`
	EquipmentUSDPerDay float64 `json:"equipment_usd_per_day" yaml:"equipment_usd_per_day"`
}

type CostDetail struct {
	Variable string  `json:"variable_df_key_col_name"`
	Unit     string  `json:"unit"`
	Value    float64 `json:"value"`
}

type TypeOperation struct {
	Module         string  `json:"module"`
	TypeOfCost     string  `json:"type_of_cost"`
	Operation      string  `json:"operation_id"`
	CostPerTurbine float64 `json:"cost_per_turbine_usd"`
	CostPerProject float64 `json:"cost_per_project_usd"`
	USDPerKW       float64 `json:"usd_per_kw"`
}

// Module is a cost model run over plain mappings.
type Module interface {
	Run(in Inputs, out Outputs) error
}
