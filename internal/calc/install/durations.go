package install

import "fmt"

type Step struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type Schedule struct {
	Steps      []Step  `json:"steps"`
	TotalHours float64 `json:"total_hours"`
	Notes      string  `json:"notes"`
}

type MonopileInput struct {
	Count        int     `json:"count" yaml:"count"`
	EmbedLengthM float64 `json:"embed_length_m" yaml:"embed_length_m"`
	Connection   string  `json:"connection" yaml:"connection"` // bolted or grouted
}

type TurbineInput struct {
	Count         int `json:"count" yaml:"count"`
	TowerSections int `json:"tower_sections" yaml:"tower_sections"`
	Blades        int `json:"blades" yaml:"blades"`
}

type CableInput struct {
	Kind       string  `json:"kind" yaml:"kind"`     // array or export
	Method     string  `json:"method" yaml:"method"` // lay, lay_bury, bury, tow_plow
	LengthKm   float64 `json:"length_km" yaml:"length_km"`
	Splices    int     `json:"splices" yaml:"splices"`
	LandfallKm float64 `json:"landfall_km" yaml:"landfall_km"`
}

type planner struct {
	t     Table
	steps []Step
	err   error
}

func (p *planner) value(key string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := p.t.Lookup(key)
	if err != nil {
		p.err = err
		return 0
	}
	return v
}

func (p *planner) step(name string, hours float64) {
	p.steps = append(p.steps, Step{Name: name, Hours: hours})
}

func (p *planner) schedule(count int, notes string) (Schedule, error) {
	if p.err != nil {
		return Schedule{}, p.err
	}
	n := float64(count)
	out := Schedule{Steps: make([]Step, 0, len(p.steps)), Notes: notes}
	for _, s := range p.steps {
		s.Hours *= n
		out.Steps = append(out.Steps, s)
		out.TotalHours += s.Hours
	}
	return out, nil
}

// speedHours converts a distance into hours at the speed stored under key.
func (p *planner) speedHours(distanceKm float64, key string) float64 {
	v := p.value(key)
	if p.err != nil {
		return 0
	}
	if v <= 0 {
		p.err = fmt.Errorf("%w: %s must be positive", ErrInvalidInput, key)
		return 0
	}
	return distanceKm / v
}

func (t Table) Monopile(in MonopileInput) (Schedule, error) {
	if in.Count <= 0 {
		in.Count = 1
	}
	if in.Connection == "" {
		in.Connection = "bolted"
	}
	if in.Connection != "bolted" && in.Connection != "grouted" {
		return Schedule{}, fmt.Errorf("%w: connection must be bolted or grouted", ErrInvalidInput)
	}
	p := &planner{t: t}
	embed := in.EmbedLengthM
	if embed <= 0 {
		embed = p.value("mono_embed_len")
	}
	p.step("Fasten monopile", p.value("mono_fasten_time"))
	p.step("Fasten transition piece", p.value("tp_fasten_time"))
	p.step("Position at site", p.value("site_position_time"))
	p.step("ROV survey", p.value("rov_survey_time"))
	rate := p.value("mono_drive_rate")
	if p.err == nil && rate <= 0 {
		return Schedule{}, fmt.Errorf("%w: mono_drive_rate must be positive", ErrInvalidInput)
	}
	if p.err == nil {
		p.step("Drive monopile", embed/rate)
	}
	p.step("Release monopile", p.value("mono_release_time"))
	p.step("Release transition piece", p.value("tp_release_time"))
	if in.Connection == "bolted" {
		p.step("Bolt transition piece", p.value("tp_bolt_time"))
	} else {
		p.step("Pump grout", p.value("grout_pump_time"))
		p.step("Cure grout", p.value("grout_cure_time"))
	}
	return p.schedule(in.Count, fmt.Sprintf("%d monopile(s), %s transition piece.", in.Count, in.Connection))
}

func (t Table) Turbine(in TurbineInput) (Schedule, error) {
	if in.Count <= 0 {
		in.Count = 1
	}
	if in.TowerSections <= 0 {
		in.TowerSections = 1
	}
	if in.Blades <= 0 {
		in.Blades = 3
	}
	p := &planner{t: t}
	n := float64(in.TowerSections)
	b := float64(in.Blades)
	p.step("Position at site", p.value("site_position_time"))
	p.step("Fasten tower sections", n*p.value("tower_section_fasten_time"))
	p.step("Release tower sections", n*p.value("tower_section_release_time"))
	p.step("Attach tower sections", n*p.value("tower_section_attach_time"))
	p.step("Fasten nacelle", p.value("nacelle_fasten_time"))
	p.step("Release nacelle", p.value("nacelle_release_time"))
	p.step("Attach nacelle", p.value("nacelle_attach_time"))
	p.step("Fasten blades", b*p.value("blade_fasten_time"))
	p.step("Release blades", b*p.value("blade_release_time"))
	p.step("Attach blades", b*p.value("blade_attach_time"))
	p.step("Re-equip crane", p.value("crane_reequip_time"))
	return p.schedule(in.Count, fmt.Sprintf("%d turbine(s), %d tower section(s), %d blades.", in.Count, in.TowerSections, in.Blades))
}

func (t Table) Cable(in CableInput) (Schedule, error) {
	if in.LengthKm <= 0 {
		return Schedule{}, fmt.Errorf("%w: cable length must be positive", ErrInvalidInput)
	}
	if in.Kind == "" {
		in.Kind = "array"
	}
	if in.Method == "" {
		in.Method = "lay_bury"
	}
	if in.Kind != "array" && in.Kind != "export" {
		return Schedule{}, fmt.Errorf("%w: kind must be array or export", ErrInvalidInput)
	}
	p := &planner{t: t}
	p.step("Load cable", p.value("cable_load_time"))
	if in.Kind == "export" {
		p.step("Pre-lay grapnel run", p.speedHours(in.LengthKm, "plgr_speed"))
		p.step("Onshore construction", p.value("onshore_construction_time"))
		if in.LandfallKm > 0 {
			p.step("Dig landfall trench", p.speedHours(in.LandfallKm, "trench_dig_speed"))
			p.step("Pull cable to shore", p.speedHours(in.LandfallKm, "pull_winch_speed"))
		}
	}
	p.step("Prepare cable", p.value("cable_prep_time"))
	p.step("Lower cable", p.value("cable_lower_time"))
	p.step("Pull in cable", p.value("cable_pull_in_time"))
	p.step("Terminate cable", p.value("cable_termination_time"))
	switch in.Method {
	case "lay":
		p.step("Lay cable", p.speedHours(in.LengthKm, "cable_lay_speed"))
	case "lay_bury":
		p.step("Lay and bury cable", p.speedHours(in.LengthKm, "cable_lay_bury_speed"))
	case "bury":
		p.step("Lay cable", p.speedHours(in.LengthKm, "cable_lay_speed"))
		p.step("Bury cable", p.speedHours(in.LengthKm, "cable_bury_speed"))
	case "tow_plow":
		p.step("Lay cable", p.speedHours(in.LengthKm, "cable_lay_speed"))
		p.step("Tow plow burial", p.speedHours(in.LengthKm, "tow_plow_speed"))
	default:
		return Schedule{}, fmt.Errorf("%w: unknown burial method %q", ErrInvalidInput, in.Method)
	}
	if in.Kind == "array" {
		p.step("Raise cable", p.value("cable_raise_time"))
		p.step("Pull in cable", p.value("cable_pull_in_time"))
		p.step("Terminate cable", p.value("cable_termination_time"))
	}
	if in.Splices > 0 {
		p.step("Splice cable", float64(in.Splices)*p.value("cable_splice_time"))
	}
	return p.schedule(1, fmt.Sprintf("%s cable, %.2f km, %s.", in.Kind, in.LengthKm, in.Method))
}

func (t Table) ScourProtection(count int) (Schedule, error) {
	if count <= 0 {
		count = 1
	}
	p := &planner{t: t}
	p.step("Load rocks", p.value("load_rocks_time"))
	p.step("Position at site", p.value("site_position_time"))
	p.step("Drop rocks", p.value("drop_rocks_time"))
	return p.schedule(count, fmt.Sprintf("Scour protection at %d site(s).", count))
}

func (t Table) Substation() (Schedule, error) {
	p := &planner{t: t}
	p.step("Fasten topside", p.value("topside_fasten_time"))
	p.step("Position at site", p.value("site_position_time"))
	p.step("Release topside", p.value("topside_release_time"))
	p.step("Attach topside", p.value("topside_attach_time"))
	return p.schedule(1, "Offshore substation topside.")
}

// Request selects one estimator and the table overrides to run it with.
type Request struct {
	Operation string             `json:"operation" yaml:"operation"`
	Overrides map[string]float64 `json:"overrides" yaml:"overrides"`
	Count     int                `json:"count" yaml:"count"`
	Monopile  MonopileInput      `json:"monopile" yaml:"monopile"`
	Turbine   TurbineInput       `json:"turbine" yaml:"turbine"`
	Cable     CableInput         `json:"cable" yaml:"cable"`
}

func Plan(req Request) (Schedule, error) {
	t, err := Default().With(req.Overrides)
	if err != nil {
		return Schedule{}, err
	}
	switch req.Operation {
	case "monopile":
		return t.Monopile(req.Monopile)
	case "turbine":
		return t.Turbine(req.Turbine)
	case "array_cable":
		c := req.Cable
		c.Kind = "array"
		return t.Cable(c)
	case "export_cable":
		c := req.Cable
		c.Kind = "export"
		return t.Cable(c)
	case "scour":
		return t.ScourProtection(req.Count)
	case "substation":
		return t.Substation()
	default:
		return Schedule{}, fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, req.Operation)
	}
}
