package nleq1

import "github.com/sonVishal/nleq1/mcn"

// JacobianSource selects how the Jacobian is obtained.
type JacobianSource int

const (
	// JacUser uses the caller-supplied Options.JacDense/JacBand.
	JacUser JacobianSource = 1
	// JacFD uses the plain finite-difference kernels (JACFD/JACFDB).
	JacFD JacobianSource = 2
	// JacFeedback uses the feedback-controlled finite-difference
	// kernels (JCF/JCFB).
	JacFeedback JacobianSource = 3
)

// Storage selects the Jacobian storage layout.
type Storage int

const (
	// StorDense is a dense n×n Jacobian.
	StorDense Storage = 0
	// StorBand is a banded Jacobian in the LINPACK layout (package band).
	StorBand Storage = 1
)

// BoundedDamping selects the bounded-damping strategy.
type BoundedDamping int

const (
	// BoundedAuto enables bounded damping iff NonLin == 4.
	BoundedAuto BoundedDamping = 0
	// BoundedOn always restricts fc to [fca/FcBand, fca*FcBand].
	BoundedOn BoundedDamping = 1
	// BoundedOff never restricts fc beyond [FcMin, 1].
	BoundedOff BoundedDamping = 2
)

// Options configures a solve. Construct with DefaultOptions and
// override only the fields a particular problem needs, following the
// defaulted-struct convention of gonum's optimize.Settings rather than
// a string-keyed option map.
type Options struct {
	// RTol is the relative tolerance on the scaled correction's RMS
	// norm. Must lie in (eps*10*n, 0.1]; values below the lower bound
	// are clamped upward with a warning.
	RTol float64

	// NonLin classifies the problem: 1 linear, 2 mildly nonlinear,
	// 3 highly nonlinear, 4 extremely nonlinear. Selects damping
	// defaults and the xScal preconditioning default.
	NonLin int

	// JacGen selects the Jacobian source.
	JacGen JacobianSource
	// JacDense fills a dense Jacobian; required when JacGen==JacUser
	// and MStor==StorDense.
	JacDense JacDenseFunc
	// JacBand fills a banded Jacobian; required when JacGen==JacUser
	// and MStor==StorBand.
	JacBand JacBandFunc

	// MStor selects dense or banded Jacobian storage.
	MStor Storage
	// ML, MU are the lower/upper bandwidths, used when MStor==StorBand.
	ML, MU int

	// QRank1 enables Broyden rank-1 Jacobian updates.
	QRank1 bool
	// NBroy caps consecutive rank-1 steps. Zero selects the default
	// max(ML+MU+1, 10).
	NBroy int

	// QOrdi forces ordinary (undamped) Newton: fc is held at 1 and the
	// monotonicity test is skipped.
	QOrdi bool
	// QSimpl forces simplified Newton: the Jacobian is factored once
	// and reused every step. Implies QOrdi. QSimpl also forces
	// QRank1=false (see DESIGN.md open question 3) since simplified
	// Newton already reuses the Jacobian.
	QSimpl bool

	// BoundedDamp selects the bounded-damping strategy.
	BoundedDamp BoundedDamping
	// FcBand bounds the damping window when bounded damping is active.
	// Zero selects the default 10.
	FcBand float64

	// FcStart is the initial damping factor. Zero selects the default
	// (0.01; 1 when NonLin==1, since a linear problem needs no
	// ramp-up; 1e-4 when NonLin==4).
	FcStart float64
	// FcMin is the minimum damping factor. Zero selects the default
	// (1e-4; 1 when NonLin==1; 1e-8 when NonLin==4).
	FcMin float64

	// Sigma is the rank-1 acceptance threshold. Zero selects the
	// default (3, or 10/FcMin when QRank1==false — see DESIGN.md open
	// question 2, preserved verbatim rather than rederived).
	Sigma float64
	// Sigma2 enters only the rank-1 acceptance test, which requires
	// conv*Sigma2 < 1; the corrector loop never increases fc. Zero
	// selects the default 10/FcMin.
	Sigma2 float64

	// NItmax caps the number of Newton iterations. Zero selects the
	// default 50.
	NItmax int

	// NoRowScal disables automatic Jacobian row scaling (SCRF/SCRB).
	NoRowScal bool

	// QSucc indicates this call continues a previous State rather than
	// starting a fresh iteration.
	QSucc bool

	// Warn receives warnings about clamped inputs. Nil is silent.
	Warn Warn
}

// DefaultOptions returns Options with every field at its documented
// default for the given problem class nonLin (1-4), matching spec.md's
// configuration table. Callers override individual fields afterward.
func DefaultOptions(nonLin int) Options {
	o := Options{
		RTol:    1e-6,
		NonLin:  nonLin,
		JacGen:  JacFD,
		MStor:   StorDense,
		NItmax:  50,
		FcBand:  10,
		FcStart: 0.01,
		FcMin:   1e-4,
	}
	switch nonLin {
	case 1:
		// A linear problem needs no damping ramp-up: the monotonicity
		// test always passes for an affine F (the residual shrinks by
		// exactly (1-fc) regardless of fc), so the full Newton step is
		// taken immediately.
		o.FcStart = 1
		o.FcMin = 1
	case 4:
		o.FcStart = 1e-4
		o.FcMin = 1e-8
	}
	if o.QRank1 {
		o.Sigma = 3
	} else {
		o.Sigma = 10 / o.FcMin
	}
	o.Sigma2 = 10 / o.FcMin
	return o
}

// normalize fills in zero-valued defaults that depend on other fields
// (NBroy, FcBand already resolved by DefaultOptions but re-checked here
// for callers who build Options directly) and enforces cross-field
// invariants.
func (o *Options) normalize() {
	if o.FcBand == 0 {
		o.FcBand = 10
	}
	if o.FcStart == 0 {
		switch o.NonLin {
		case 1:
			o.FcStart = 1
		case 4:
			o.FcStart = 1e-4
		default:
			o.FcStart = 0.01
		}
	}
	if o.FcMin == 0 {
		switch o.NonLin {
		case 1:
			o.FcMin = 1
		case 4:
			o.FcMin = 1e-8
		default:
			o.FcMin = 1e-4
		}
	}
	if o.NItmax == 0 {
		o.NItmax = 50
	}
	if o.QSimpl {
		o.QOrdi = true
		o.QRank1 = false
	}
	if o.NBroy == 0 {
		o.NBroy = o.ML + o.MU + 1
		if o.NBroy < 10 {
			o.NBroy = 10
		}
	}
	if o.Sigma == 0 {
		if o.QRank1 {
			o.Sigma = 3
		} else {
			o.Sigma = 10 / o.FcMin
		}
	}
	if o.Sigma2 == 0 {
		o.Sigma2 = 10 / o.FcMin
	}
}

// validate checks the caller-supplied fields that must hold before any
// State is touched (spec.md §7.1). n is len(x).
func (o *Options) validate(n int) *Error {
	if n < 1 {
		return newError(BadDimension, "n must be >= 1")
	}
	lower := 10 * mcn.Eps * float64(n)
	if o.RTol <= 0 {
		return newError(BadTolerance, "rTol must be positive")
	}
	if o.RTol > 0.1 {
		return newError(BadTolerance, "rTol must be <= 0.1")
	}
	if o.RTol < lower {
		if o.Warn != nil {
			o.Warn("rtol-clamped", "rTol below 10*eps*n, raised to the minimum")
		}
		o.RTol = lower
	}
	if o.JacGen == JacUser {
		if o.MStor == StorDense && o.JacDense == nil {
			return newError(MissingJacobian, "jacGen=JacUser requires JacDense")
		}
		if o.MStor == StorBand && o.JacBand == nil {
			return newError(MissingJacobian, "jacGen=JacUser requires JacBand")
		}
	}
	return nil
}
