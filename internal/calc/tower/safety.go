package tower

type Standard string

const (
	StandardIEC  Standard = "IEC61400-1"
	StandardDNV  Standard = "DNV-ST-0126"
	StandardUnit Standard = "unit"
)

type SafetyFactors struct {
	GammaF       float64 `json:"gamma_f" yaml:"gamma_f"`
	GammaM       float64 `json:"gamma_m" yaml:"gamma_m"`
	GammaN       float64 `json:"gamma_n" yaml:"gamma_n"`
	GammaB       float64 `json:"gamma_b" yaml:"gamma_b"`
	GammaFatigue float64 `json:"gamma_fatigue" yaml:"gamma_fatigue"`
}

// Stress is the combined factor applied to von Mises stress.
func (s SafetyFactors) Stress() float64 { return s.GammaF * s.GammaM * s.GammaN }

func Factors(std Standard) (SafetyFactors, string) {
	switch std {
	case StandardDNV:
		return SafetyFactors{GammaF: 1.35, GammaM: 1.1, GammaN: 1.0, GammaB: 1.1, GammaFatigue: 1.5}, "DNV-ST-0126 ULS"
	case StandardUnit:
		return SafetyFactors{GammaF: 1, GammaM: 1, GammaN: 1, GammaB: 1, GammaFatigue: 1}, "unfactored"
	default:
		return SafetyFactors{GammaF: 1.35, GammaM: 1.3, GammaN: 1.0, GammaB: 1.1, GammaFatigue: 1.755}, "IEC 61400-1 ULS"
	}
}
