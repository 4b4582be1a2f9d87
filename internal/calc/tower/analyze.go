package tower

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Case is a full tower analysis request. Either Layup or Sections must be
// set; Layup wins when both are.
type Case struct {
	HubHeightM        float64        `json:"hub_height_m" yaml:"hub_height_m"`
	FoundationHeightM float64        `json:"foundation_height_m" yaml:"foundation_height_m"`
	SuctionPileDepthM float64        `json:"suction_pile_depth_m" yaml:"suction_pile_depth_m"`
	Monopile          bool           `json:"monopile" yaml:"monopile"`
	NRefine           int            `json:"n_refine" yaml:"n_refine"`
	Layup             *Layup         `json:"layup,omitempty" yaml:"layup,omitempty"`
	Sections          *Sections      `json:"sections,omitempty" yaml:"sections,omitempty"`
	Points            PointMasses    `json:"point_masses" yaml:"point_masses"`
	RNA               RNA            `json:"rna" yaml:"rna"`
	Soil              Soil           `json:"soil" yaml:"soil"`
	Wind              Wind           `json:"wind" yaml:"wind"`
	LoadCases         []LoadCase     `json:"load_cases" yaml:"load_cases"`
	Standard          Standard       `json:"standard" yaml:"standard"`
	Safety            *SafetyFactors `json:"safety,omitempty" yaml:"safety,omitempty"`
	MinDtoT           float64        `json:"min_d_to_t" yaml:"min_d_to_t"`
	MaxTaper          float64        `json:"max_taper" yaml:"max_taper"`
	PaintingCostRate  float64        `json:"painting_cost_rate_usd_m2" yaml:"painting_cost_rate_usd_m2"`
}

type Result struct {
	ZStartM           float64          `json:"z_start_m"`
	Sections          Sections         `json:"sections"`
	Stations          Stations         `json:"stations"`
	Cylinder          CylinderMass     `json:"cylinder"`
	Mass              MassSummary      `json:"mass"`
	Weldability       []float64        `json:"weldability"`
	Manufacturability []float64        `json:"manufacturability"`
	SoilStiffness     [6]float64       `json:"soil_stiffness"`
	Frame             Frame            `json:"frame"`
	LoadCases         []LoadCaseResult `json:"load_cases"`
	MaxUtilization    float64          `json:"max_utilization"`
	Safety            SafetyFactors    `json:"safety"`
	Notes             string           `json:"notes"`
}

func (c Case) sections() (Sections, error) {
	if c.Layup != nil {
		return Discretize(*c.Layup)
	}
	if c.Sections != nil {
		sec := c.Sections.clone()
		if err := sec.Validate(); err != nil {
			return Sections{}, err
		}
		return sec, nil
	}
	return Sections{}, fmt.Errorf("%w: layup or sections required", ErrInvalidGeometry)
}

// WithThicknessScale returns a copy of c with every wall thickness (or layer
// thickness) multiplied by f.
func (c Case) WithThicknessScale(f float64) Case {
	out := c
	if c.Layup != nil {
		l := *c.Layup
		l.Tower = scaleSegment(l.Tower, f)
		if l.Monopile != nil {
			m := scaleSegment(*l.Monopile, f)
			l.Monopile = &m
		}
		out.Layup = &l
	}
	if c.Sections != nil {
		sec := c.Sections.clone()
		floats.Scale(f, sec.WallThicknessM)
		out.Sections = &sec
	}
	return out
}

func scaleSegment(s Segment, f float64) Segment {
	layers := make([][]float64, len(s.LayerThicknessM))
	for k, t := range s.LayerThicknessM {
		layers[k] = append([]float64(nil), t...)
		floats.Scale(f, layers[k])
	}
	s.LayerThicknessM = layers
	return s
}

func Analyze(c Case) (Result, error) {
	if c.HubHeightM <= 0 {
		return Result{}, fmt.Errorf("%w: hub height must be positive", ErrInvalidGeometry)
	}
	if c.MinDtoT <= 0 {
		c.MinDtoT = 120
	}
	if c.MaxTaper <= 0 {
		c.MaxTaper = 0.2
	}
	if c.PaintingCostRate < 0 {
		return Result{}, fmt.Errorf("%w: painting cost rate must not be negative", ErrInvalidGeometry)
	}
	if c.PaintingCostRate == 0 {
		c.PaintingCostRate = DefaultPaintingCostRate
	}
	sf, name := Factors(c.Standard)
	if c.Safety != nil {
		sf, name = *c.Safety, "user factors"
	}
	if len(c.LoadCases) == 0 {
		c.LoadCases = []LoadCase{{Name: "gravity"}}
	}
	if !c.Monopile {
		c.Points.TransitionPieceMassKg = 0
		c.Points.GravityFoundationMassKg = 0
		c.Points.TransitionPieceHeightM = c.FoundationHeightM
	}
	c.Points.FoundationHeightM = c.FoundationHeightM

	zStart := StartHeight(c.FoundationHeightM, c.SuctionPileDepthM, c.Monopile)
	sec, err := c.sections()
	if err != nil {
		return Result{}, err
	}
	st, err := Refine(zStart, c.HubHeightM, sec, c.NRefine)
	if err != nil {
		return Result{}, err
	}
	cyl := Cylinder(st, c.PaintingCostRate)
	res := Result{
		ZStartM:           zStart,
		Sections:          sec,
		Stations:          st,
		Cylinder:          cyl,
		Mass:              Aggregate(st.ZFull, cyl, c.Points),
		Weldability:       Weldability(sec.OuterDiameterM, sec.WallThicknessM, c.MinDtoT),
		Manufacturability: Manufacturability(sec.OuterDiameterM, c.MaxTaper),
		Safety:            sf,
	}
	res.Mass.TowerRawCostUSD = TowerCost(st.ZFull, cyl, c.Points.TransitionPieceHeightM)

	if c.Monopile {
		res.SoilStiffness, err = SoilStiffness(c.Soil, c.SuctionPileDepthM, 0.5*st.DFull[0])
		if err != nil {
			return Result{}, err
		}
	}
	wind := c.Wind.withDefaults(c.HubHeightM)
	for _, lc := range c.LoadCases {
		rna := c.RNA
		rna.ForceN = lc.RNAForceN
		rna.MomentN = lc.RNAMomentNm
		fr, err := PreFrame(FrameInput{
			ZFull:     st.ZFull,
			DFull:     st.DFull,
			Monopile:  c.Monopile,
			KMonopile: res.SoilStiffness,
			RNA:       rna,
			Points:    c.Points,
		})
		if err != nil {
			return Result{}, err
		}
		res.Frame = fr
		lr := Solve(st, cyl, fr, wind, lc, sf)
		res.LoadCases = append(res.LoadCases, lr)
		if lr.MaxUtilization > res.MaxUtilization {
			res.MaxUtilization = lr.MaxUtilization
		}
	}
	res.Notes = fmt.Sprintf("%d sections, %d elements, %d load case(s), %s.", sec.Len(), st.Elements(), len(c.LoadCases), name)
	return res, nil
}
