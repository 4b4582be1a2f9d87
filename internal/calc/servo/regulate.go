package servo

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrRegulation   = errors.New("cannot regulate to rated power")
)

const (
	RegionII    = "II"
	RegionII5   = "II.5"
	RegionIII   = "III"
	BoundNone   = "none"
	BoundPower  = "rated_power"
	BoundSpeed  = "max_rotor_speed"
	BoundTip    = "max_tip_speed"
	rpmToRadPS  = math.Pi / 30
	defaultNPC  = 20
	defaultNSpl = 200
	pitchScan   = 90
)

type Input struct {
	VMinMS               float64 `json:"v_min_m_s" yaml:"v_min_m_s"`
	VMaxMS               float64 `json:"v_max_m_s" yaml:"v_max_m_s"`
	NPC                  int     `json:"n_pc" yaml:"n_pc"`
	NPCSpline            int     `json:"n_pc_spline" yaml:"n_pc_spline"`
	RatedPowerW          float64 `json:"rated_power_w" yaml:"rated_power_w"`
	OmegaMinRPM          float64 `json:"omega_min_rpm" yaml:"omega_min_rpm"`
	OmegaMaxRPM          float64 `json:"omega_max_rpm" yaml:"omega_max_rpm"`
	MaxTipSpeedMS        float64 `json:"max_tip_speed_m_s" yaml:"max_tip_speed_m_s"`
	TSR                  float64 `json:"tsr_operational" yaml:"tsr_operational"`
	PitchMinDeg          float64 `json:"pitch_min_deg" yaml:"pitch_min_deg"`
	PitchMaxDeg          float64 `json:"pitch_max_deg" yaml:"pitch_max_deg"`
	DrivetrainEfficiency float64 `json:"drivetrain_efficiency" yaml:"drivetrain_efficiency"`
	RadiusM              float64 `json:"r_tip_m" yaml:"r_tip_m"`
	RhoAir               float64 `json:"rho_air_kg_m3" yaml:"rho_air_kg_m3"`
	RegionIII            bool    `json:"region_iii" yaml:"region_iii"`
}

type Sample struct {
	VMS        float64 `json:"v_m_s"`
	OmegaRPM   float64 `json:"omega_rpm"`
	PitchDeg   float64 `json:"pitch_deg"`
	PowerW     float64 `json:"p_w"`
	AeroPowerW float64 `json:"p_aero_w"`
	ThrustN    float64 `json:"t_n"`
	TorqueNm   float64 `json:"q_nm"`
	Cp         float64 `json:"cp"`
	CpAero     float64 `json:"cp_aero"`
	Ct         float64 `json:"ct"`
	Cq         float64 `json:"cq"`
	Region     string  `json:"region"`
}

type Result struct {
	Samples       []Sample  `json:"samples"`
	VSpline       []float64 `json:"v_spline_m_s"`
	PSpline       []float64 `json:"p_spline_w"`
	RatedVMS      float64   `json:"rated_v_m_s"`
	RatedOmegaRPM float64   `json:"rated_omega_rpm"`
	RatedPitchDeg float64   `json:"rated_pitch_deg"`
	RatedThrustN  float64   `json:"rated_thrust_n"`
	RatedTorqueNm float64   `json:"rated_torque_nm"`
	Binding       string    `json:"binding_bound"`
	Notes         string    `json:"notes"`
}

func (r Result) V() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.VMS
	}
	return out
}

func (r Result) P() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.PowerW
	}
	return out
}

func (in *Input) normalize() error {
	if in.NPC == 0 {
		in.NPC = defaultNPC
	}
	if in.NPCSpline == 0 {
		in.NPCSpline = defaultNSpl
	}
	if in.RhoAir <= 0 {
		in.RhoAir = 1.225
	}
	if in.DrivetrainEfficiency == 0 {
		in.DrivetrainEfficiency = 1
	}
	if in.PitchMaxDeg == 0 {
		in.PitchMaxDeg = 90
	}
	switch {
	case in.VMinMS <= 0 || in.VMaxMS <= in.VMinMS:
		return fmt.Errorf("%w: need 0 < v_min < v_max", ErrInvalidInput)
	case in.NPC < 2 || in.NPCSpline < 2:
		return fmt.Errorf("%w: need at least two samples", ErrInvalidInput)
	case in.RatedPowerW <= 0 || in.RadiusM <= 0 || in.TSR <= 0:
		return fmt.Errorf("%w: rated power, tip radius and tsr must be positive", ErrInvalidInput)
	case in.DrivetrainEfficiency < 0 || in.DrivetrainEfficiency > 1:
		return fmt.Errorf("%w: drivetrain efficiency must be in (0, 1]", ErrInvalidInput)
	case in.OmegaMinRPM < 0 || in.OmegaMaxRPM < 0 || in.MaxTipSpeedMS < 0:
		return fmt.Errorf("%w: speed limits must not be negative", ErrInvalidInput)
	case in.PitchMaxDeg <= in.PitchMinDeg:
		return fmt.Errorf("%w: pitch max must exceed pitch min", ErrInvalidInput)
	}
	return nil
}

type regulator struct {
	in    Input
	rotor Rotor
	area  float64
	// omegaBound is the rotor speed limit in rad/s and bound names it.
	omegaBound float64
	bound      string
	vSpeed     float64
}

type point struct {
	v, omega, pitch, pAero, thrust float64
}

func (g *regulator) eval(v, omega, pitch float64) point {
	cp, ct := g.rotor.Coefficients(omega*g.in.RadiusM/v, pitch)
	q := 0.5 * g.in.RhoAir * g.area * v * v
	return point{v: v, omega: omega, pitch: pitch, pAero: q * v * cp, thrust: q * ct}
}

func (g *regulator) power(p point) float64 { return p.pAero * g.in.DrivetrainEfficiency }

// below evaluates the turbine below rated power: fixed TSR between the
// minimum rotor speed and the speed bound, minimum pitch. Where the rotor
// speed is clamped to either limit and Region III control is enabled, pitch
// is set for maximum power.
func (g *regulator) below(v float64) (point, string) {
	omegaTSR := v * g.in.TSR / g.in.RadiusM
	omega := math.Max(omegaTSR, g.in.OmegaMinRPM*rpmToRadPS)
	region := RegionII
	switch {
	case omega >= g.omegaBound:
		omega, region = g.omegaBound, RegionII5
	case omega == omegaTSR:
		return g.eval(v, omega, g.in.PitchMinDeg), RegionII
	}
	best := g.eval(v, omega, g.in.PitchMinDeg)
	if g.in.RegionIII {
		pitch := scanMax(func(b float64) float64 { return g.eval(v, omega, b).pAero }, g.in.PitchMinDeg, g.in.PitchMaxDeg, pitchScan)
		if p := g.eval(v, omega, pitch); p.pAero > best.pAero {
			best = p
		}
	}
	return best, region
}

// ratedPower returns the smallest sweep speed at which the below-rated power
// reaches rated, or false if it never does.
func (g *regulator) ratedPower(vs []float64) (float64, bool) {
	rated := g.in.RatedPowerW
	excess := func(v float64) float64 {
		p, _ := g.below(v)
		return g.power(p) - rated
	}
	prev := vs[0]
	if excess(prev) >= 0 {
		return prev, true
	}
	for _, v := range vs[1:] {
		if excess(v) >= 0 {
			return bisect(excess, prev, v), true
		}
		prev = v
	}
	return 0, false
}

// Regulate runs the power curve state machine over the wind speed sweep.
func Regulate(in Input, rotor Rotor) (Result, error) {
	if err := in.normalize(); err != nil {
		return Result{}, err
	}
	if rotor == nil {
		rotor = Heier{}
	}
	g := &regulator{
		in:         in,
		rotor:      rotor,
		area:       math.Pi * in.RadiusM * in.RadiusM,
		omegaBound: math.Inf(1),
		bound:      BoundNone,
		vSpeed:     math.Inf(1),
	}
	if in.OmegaMaxRPM > 0 {
		g.omegaBound, g.bound = in.OmegaMaxRPM*rpmToRadPS, BoundSpeed
	}
	if in.MaxTipSpeedMS > 0 && in.MaxTipSpeedMS/in.RadiusM < g.omegaBound {
		g.omegaBound, g.bound = in.MaxTipSpeedMS/in.RadiusM, BoundTip
	}
	if g.omegaBound < in.OmegaMinRPM*rpmToRadPS {
		return Result{}, fmt.Errorf("%w: rotor speed bound is below the minimum rotor speed", ErrInvalidInput)
	}
	if !math.IsInf(g.omegaBound, 1) {
		g.vSpeed = g.omegaBound * in.RadiusM / in.TSR
	}

	vs := make([]float64, in.NPC)
	floats.Span(vs, in.VMinMS, in.VMaxMS)

	res := Result{RatedVMS: in.VMaxMS, Binding: BoundNone}
	vPower, powerBinds := g.ratedPower(vs)
	switch {
	case powerBinds && vPower <= g.vSpeed:
		res.RatedVMS, res.Binding = vPower, BoundPower
	case g.vSpeed <= in.VMaxMS:
		res.RatedVMS, res.Binding = math.Max(g.vSpeed, in.VMinMS), g.bound
	}
	if res.Binding == BoundPower {
		vs[floats.MinIdx(absDiff(vs, res.RatedVMS))] = res.RatedVMS
	}

	var atPower point
	if powerBinds {
		atPower, _ = g.below(vPower)
	}
	for _, v := range vs {
		p, region := g.below(v)
		if powerBinds && g.power(p) >= in.RatedPowerW {
			var err error
			p, err = g.above(v, atPower, p)
			if err != nil {
				return Result{}, err
			}
			region = RegionIII
		}
		res.Samples = append(res.Samples, g.sample(p, region))
	}

	rated, _ := g.below(res.RatedVMS)
	if res.Binding == BoundPower {
		rated = atPower
	}
	res.RatedOmegaRPM = rated.omega / rpmToRadPS
	res.RatedPitchDeg = rated.pitch
	res.RatedThrustN = rated.thrust
	if rated.omega > 0 {
		res.RatedTorqueNm = rated.pAero / rated.omega
	}

	res.VSpline = make([]float64, in.NPCSpline)
	floats.Span(res.VSpline, in.VMinMS, in.VMaxMS)
	res.PSpline = make([]float64, in.NPCSpline)
	var spline interp.AkimaSpline
	if err := spline.Fit(res.V(), res.P()); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i, v := range res.VSpline {
		res.PSpline[i] = spline.Predict(v)
	}
	res.Notes = fmt.Sprintf("Rated %.2f m/s bound by %s; region III control %t.", res.RatedVMS, res.Binding, in.RegionIII)
	return res, nil
}

// above holds rated power with the rotor at its rated speed. With Region III
// pitch is solved for rated power; without it pitch stays at its rated value
// and thrust saturates at the rated point.
func (g *regulator) above(v float64, rated, unregulated point) (point, error) {
	target := g.in.RatedPowerW / g.in.DrivetrainEfficiency
	omega := math.Min(unregulated.omega, rated.omega)
	if !g.in.RegionIII {
		return point{v: v, omega: omega, pitch: rated.pitch, pAero: target, thrust: rated.thrust}, nil
	}
	excess := func(pitch float64) float64 { return g.eval(v, omega, pitch).pAero - target }
	lo := rated.pitch
	if excess(lo) <= 0 {
		return g.eval(v, omega, lo), nil
	}
	if excess(g.in.PitchMaxDeg) > 0 {
		return point{}, fmt.Errorf("%w at %.2f m/s within %.1f deg pitch", ErrRegulation, v, g.in.PitchMaxDeg)
	}
	pitch := bisect(excess, lo, g.in.PitchMaxDeg)
	p := g.eval(v, omega, pitch)
	p.pAero = target
	return p, nil
}

func (g *regulator) sample(p point, region string) Sample {
	q := 0.5 * g.in.RhoAir * g.area * p.v * p.v
	s := Sample{
		VMS:        p.v,
		OmegaRPM:   p.omega / rpmToRadPS,
		PitchDeg:   p.pitch,
		AeroPowerW: p.pAero,
		ThrustN:    p.thrust,
		Region:     region,
	}
	s.PowerW = p.pAero * g.in.DrivetrainEfficiency
	if p.omega > 0 {
		s.TorqueNm = p.pAero / p.omega
	}
	s.CpAero = p.pAero / (q * p.v)
	s.Cp = s.CpAero * g.in.DrivetrainEfficiency
	s.Ct = p.thrust / q
	s.Cq = s.TorqueNm / (q * g.in.RadiusM)
	return s
}

func absDiff(vs []float64, x float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Abs(v - x)
	}
	return out
}
