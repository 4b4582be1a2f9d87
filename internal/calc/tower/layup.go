package tower

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnknownMaterial = errors.New("unknown material")
)

type Material struct {
	Name      string  `json:"name" yaml:"name"`
	E_Pa      float64 `json:"e_pa" yaml:"e_pa"`
	G_Pa      float64 `json:"g_pa" yaml:"g_pa"`
	SigmaY_Pa float64 `json:"sigma_y_pa" yaml:"sigma_y_pa"`
	RhoKgM3   float64 `json:"rho_kg_m3" yaml:"rho_kg_m3"`
	UnitCost  float64 `json:"unit_cost_usd_kg" yaml:"unit_cost_usd_kg"`
}

// Segment is one tubular member described by normalized stations s in
// [0, 1] and per-layer wall thickness [layer][section].
type Segment struct {
	S                []float64   `json:"s" yaml:"s"`
	HeightM          float64     `json:"height_m" yaml:"height_m"`
	OuterDiameterM   []float64   `json:"outer_diameter_m" yaml:"outer_diameter_m"`
	LayerThicknessM  [][]float64 `json:"layer_thickness_m" yaml:"layer_thickness_m"`
	LayerMaterials   []string    `json:"layer_materials" yaml:"layer_materials"`
	OutfittingFactor float64     `json:"outfitting_factor" yaml:"outfitting_factor"`
}

func (s Segment) sections() int { return len(s.S) - 1 }

type Layup struct {
	Tower     Segment    `json:"tower" yaml:"tower"`
	Monopile  *Segment   `json:"monopile,omitempty" yaml:"monopile,omitempty"`
	Materials []Material `json:"materials" yaml:"materials"`
}

// Sections holds per-section properties ordered bottom to top. Outer
// diameters are given per station, so len(OuterDiameterM) = len(HeightM)+1.
type Sections struct {
	HeightM          []float64 `json:"height_m" yaml:"height_m"`
	OuterDiameterM   []float64 `json:"outer_diameter_m" yaml:"outer_diameter_m"`
	WallThicknessM   []float64 `json:"wall_thickness_m" yaml:"wall_thickness_m"`
	OutfittingFactor []float64 `json:"outfitting_factor" yaml:"outfitting_factor"`
	E_Pa             []float64 `json:"e_pa" yaml:"e_pa"`
	G_Pa             []float64 `json:"g_pa" yaml:"g_pa"`
	SigmaY_Pa        []float64 `json:"sigma_y_pa" yaml:"sigma_y_pa"`
	RhoKgM3          []float64 `json:"rho_kg_m3" yaml:"rho_kg_m3"`
	UnitCost         []float64 `json:"unit_cost_usd_kg" yaml:"unit_cost_usd_kg"`
}

func (s Sections) Len() int { return len(s.HeightM) }

// Validate checks that every per-section array has one entry per section and
// that the geometry is positive.
func (s Sections) Validate() error {
	n := len(s.HeightM)
	if n == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidGeometry)
	}
	if len(s.OuterDiameterM) != n+1 {
		return fmt.Errorf("%w: need %d outer diameters, got %d", ErrInvalidGeometry, n+1, len(s.OuterDiameterM))
	}
	for name, v := range map[string][]float64{
		"wall thickness": s.WallThicknessM, "outfitting factor": s.OutfittingFactor,
		"E": s.E_Pa, "G": s.G_Pa, "sigma_y": s.SigmaY_Pa, "rho": s.RhoKgM3, "unit cost": s.UnitCost,
	} {
		if len(v) != n {
			return fmt.Errorf("%w: need %d %s values, got %d", ErrInvalidGeometry, n, name, len(v))
		}
	}
	for i := 0; i < n; i++ {
		if s.HeightM[i] <= 0 {
			return fmt.Errorf("%w: section %d height must be positive", ErrInvalidGeometry, i)
		}
		if s.WallThicknessM[i] <= 0 {
			return fmt.Errorf("%w: section %d wall thickness must be positive", ErrInvalidGeometry, i)
		}
	}
	for i, d := range s.OuterDiameterM {
		if d <= 0 {
			return fmt.Errorf("%w: station %d outer diameter must be positive", ErrInvalidGeometry, i)
		}
	}
	return nil
}

func (s Sections) clone() Sections {
	return Sections{
		HeightM:          append([]float64(nil), s.HeightM...),
		OuterDiameterM:   append([]float64(nil), s.OuterDiameterM...),
		WallThicknessM:   append([]float64(nil), s.WallThicknessM...),
		OutfittingFactor: append([]float64(nil), s.OutfittingFactor...),
		E_Pa:             append([]float64(nil), s.E_Pa...),
		G_Pa:             append([]float64(nil), s.G_Pa...),
		SigmaY_Pa:        append([]float64(nil), s.SigmaY_Pa...),
		RhoKgM3:          append([]float64(nil), s.RhoKgM3...),
		UnitCost:         append([]float64(nil), s.UnitCost...),
	}
}

// Discretize flattens the layup into per-section properties, monopile
// sections first. Layer properties are averaged with the layer thickness as
// weight.
func Discretize(l Layup) (Sections, error) {
	mats := make(map[string]Material, len(l.Materials))
	for _, m := range l.Materials {
		mats[m.Name] = m
	}
	var out Sections
	var segs []Segment
	if l.Monopile != nil && len(l.Monopile.S) > 0 {
		segs = append(segs, *l.Monopile)
	}
	segs = append(segs, l.Tower)
	for i, seg := range segs {
		part, err := discretizeSegment(seg, mats)
		if err != nil {
			return Sections{}, err
		}
		d := part.OuterDiameterM
		if i < len(segs)-1 {
			// the top station is shared with the base of the next segment
			d = d[:len(d)-1]
		}
		out.HeightM = append(out.HeightM, part.HeightM...)
		out.OuterDiameterM = append(out.OuterDiameterM, d...)
		out.WallThicknessM = append(out.WallThicknessM, part.WallThicknessM...)
		out.OutfittingFactor = append(out.OutfittingFactor, part.OutfittingFactor...)
		out.E_Pa = append(out.E_Pa, part.E_Pa...)
		out.G_Pa = append(out.G_Pa, part.G_Pa...)
		out.SigmaY_Pa = append(out.SigmaY_Pa, part.SigmaY_Pa...)
		out.RhoKgM3 = append(out.RhoKgM3, part.RhoKgM3...)
		out.UnitCost = append(out.UnitCost, part.UnitCost...)
	}
	return out, nil
}

func discretizeSegment(seg Segment, mats map[string]Material) (Sections, error) {
	n := seg.sections()
	if n < 1 {
		return Sections{}, fmt.Errorf("%w: at least two stations required", ErrInvalidGeometry)
	}
	if seg.HeightM <= 0 {
		return Sections{}, fmt.Errorf("%w: segment height must be positive", ErrInvalidGeometry)
	}
	for i := 1; i < len(seg.S); i++ {
		if seg.S[i] <= seg.S[i-1] {
			return Sections{}, fmt.Errorf("%w: stations must be strictly increasing", ErrInvalidGeometry)
		}
	}
	if len(seg.OuterDiameterM) != len(seg.S) {
		return Sections{}, fmt.Errorf("%w: need one outer diameter per station", ErrInvalidGeometry)
	}
	for _, d := range seg.OuterDiameterM {
		if d <= 0 {
			return Sections{}, fmt.Errorf("%w: outer diameter must be positive", ErrInvalidGeometry)
		}
	}
	if len(seg.LayerThicknessM) == 0 || len(seg.LayerThicknessM) != len(seg.LayerMaterials) {
		return Sections{}, fmt.Errorf("%w: need one material per layer", ErrInvalidGeometry)
	}
	layers := make([]Material, len(seg.LayerMaterials))
	for k, name := range seg.LayerMaterials {
		m, ok := mats[name]
		if !ok {
			return Sections{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
		}
		layers[k] = m
		if len(seg.LayerThicknessM[k]) != n {
			return Sections{}, fmt.Errorf("%w: layer %d needs %d thickness values", ErrInvalidGeometry, k, n)
		}
	}

	out := Sections{
		HeightM:          make([]float64, n),
		OuterDiameterM:   append([]float64(nil), seg.OuterDiameterM...),
		WallThicknessM:   make([]float64, n),
		OutfittingFactor: make([]float64, n),
		E_Pa:             make([]float64, n),
		G_Pa:             make([]float64, n),
		SigmaY_Pa:        make([]float64, n),
		RhoKgM3:          make([]float64, n),
		UnitCost:         make([]float64, n),
	}
	outfitting := seg.OutfittingFactor
	if outfitting <= 0 {
		outfitting = 1
	}
	weights := make([]float64, len(layers))
	prop := make([]float64, len(layers))
	avg := func(get func(Material) float64) float64 {
		for k, m := range layers {
			prop[k] = get(m)
		}
		return stat.Mean(prop, weights)
	}
	for i := 0; i < n; i++ {
		for k := range layers {
			t := seg.LayerThicknessM[k][i]
			if t < 0 {
				return Sections{}, fmt.Errorf("%w: layer %d section %d thickness is negative", ErrInvalidGeometry, k, i)
			}
			weights[k] = t
		}
		t := floats.Sum(weights)
		if t <= 0 {
			return Sections{}, fmt.Errorf("%w: section %d wall thickness must be positive", ErrInvalidGeometry, i)
		}
		out.HeightM[i] = (seg.S[i+1] - seg.S[i]) * seg.HeightM
		out.WallThicknessM[i] = t
		out.OutfittingFactor[i] = outfitting
		out.E_Pa[i] = avg(func(m Material) float64 { return m.E_Pa })
		out.G_Pa[i] = avg(func(m Material) float64 { return m.G_Pa })
		out.SigmaY_Pa[i] = avg(func(m Material) float64 { return m.SigmaY_Pa })
		out.RhoKgM3[i] = avg(func(m Material) float64 { return m.RhoKgM3 })
		out.UnitCost[i] = avg(func(m Material) float64 { return m.UnitCost })
	}
	return out, nil
}
