package tower

import "fmt"

type RNA struct {
	MassKg  float64    `json:"mass_kg" yaml:"mass_kg"`
	CGM     [3]float64 `json:"cg_m" yaml:"cg_m"`
	IKgM2   [6]float64 `json:"i_kg_m2" yaml:"i_kg_m2"`
	ForceN  [3]float64 `json:"force_n" yaml:"force_n"`
	MomentN [3]float64 `json:"moment_nm" yaml:"moment_nm"`
}

// Reaction is a spring support at a node, stiffness ordered
// [kx, ktx, ky, kty, kz, ktz].
type Reaction struct {
	Node      int        `json:"node"`
	Stiffness [6]float64 `json:"stiffness"`
}

type NodeMass struct {
	Node   int        `json:"node"`
	MassKg float64    `json:"mass_kg"`
	RhoM   [3]float64 `json:"rho_m"`
	IKgM2  [6]float64 `json:"i_kg_m2"`
}

type NodeLoad struct {
	Node    int        `json:"node"`
	ForceN  [3]float64 `json:"force_n"`
	MomentN [3]float64 `json:"moment_nm"`
}

// Frame is the boundary condition, point mass and point load description
// handed to the structural solver.
type Frame struct {
	Reactions []Reaction `json:"reactions"`
	Masses    []NodeMass `json:"masses"`
	Loads     []NodeLoad `json:"loads"`
}

type FrameInput struct {
	ZFull     []float64
	DFull     []float64
	Monopile  bool
	KMonopile [6]float64 // node 0 springs when Monopile is set
	RNA       RNA
	Points    PointMasses
}

// PreFrame always returns three point masses: the RNA at the top node, the
// transition piece at the node nearest its height and the gravity foundation
// at node 0. On land the last two are zero.
func PreFrame(in FrameInput) (Frame, error) {
	n := len(in.ZFull)
	if n < 2 || len(in.DFull) != n {
		return Frame{}, fmt.Errorf("%w: need at least two nodes with diameters", ErrInvalidGeometry)
	}
	top := n - 1

	k := [6]float64{RigidStiffness, RigidStiffness, RigidStiffness, RigidStiffness, RigidStiffness, RigidStiffness}
	tp := NodeMass{}
	gf := NodeMass{}
	if in.Monopile {
		k = in.KMonopile

		tp.Node = nearestNode(in.ZFull, in.Points.TransitionPieceHeightM)
		tp.MassKg = in.Points.TransitionPieceMassKg
		r := 0.5 * in.DFull[tp.Node]
		tp.IKgM2 = [6]float64{0.5 * tp.MassKg * r * r, 0.5 * tp.MassKg * r * r, tp.MassKg * r * r}

		gf.MassKg = in.Points.GravityFoundationMassKg
		r = 0.5 * in.DFull[0]
		gf.IKgM2 = [6]float64{0.25 * gf.MassKg * r * r, 0.25 * gf.MassKg * r * r, 0.5 * gf.MassKg * r * r}
	}

	return Frame{
		Reactions: []Reaction{{Node: 0, Stiffness: k}},
		Masses: []NodeMass{
			{Node: top, MassKg: in.RNA.MassKg, RhoM: in.RNA.CGM, IKgM2: in.RNA.IKgM2},
			tp,
			gf,
		},
		Loads: []NodeLoad{{Node: top, ForceN: in.RNA.ForceN, MomentN: in.RNA.MomentN}},
	}, nil
}
