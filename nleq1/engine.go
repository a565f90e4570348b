package nleq1

import (
	"math"

	"github.com/sonVishal/nleq1/jacobian"
	"github.com/sonVishal/nleq1/levels"
	"github.com/sonVishal/nleq1/linsolve"
	"github.com/sonVishal/nleq1/matrix"
	"github.com/sonVishal/nleq1/mcn"
	"github.com/sonVishal/nleq1/rowscale"
	"github.com/sonVishal/nleq1/scale"
)

// solver binds one Solve/SolveStep call's callbacks and options to the
// phase methods below. It holds no state that must outlive a single
// step() call; persistent iteration data lives on *State.
type solver struct {
	f     Func
	opts  Options
	xScal []float64

	// Trial-step results, stashed by phaseCorrector and consumed by
	// phaseCommit within the same step() call.
	trialX, trialF, trialDxq []float64
	trialSumX                float64
}

// SolveStep runs exactly one Newton iteration (spec.md §4.6 phases A-G)
// against state, returning a return code (Success, NotConverged, or a
// terminal failure code) and, for a terminal failure code, a non-nil
// *Error describing it; Success and NotConverged come with a nil error.
// state must already have its XScal precondition
// applied (Solve does this on state's first call).
func SolveStep(f Func, opts Options, xScal []float64, state *State) (int, error) {
	sv := &solver{f: f, opts: opts, xScal: xScal}
	code, err := sv.step(state)
	if err != nil {
		return code, err
	}
	return code, nil
}

// step runs phases A-G once. Phase C's convergence test (spec.md §4.6:
// "accepted iterate" ‖dxq/xw‖_RMS ≤ rTol) is evaluated against the
// simplified corrector's level once phase E has accepted a trial step,
// not against phase B's pre-damping correction: a correction computed
// far from the root can itself be large (the full Newton step for a
// linear problem starting far from its root, for instance) even though
// the point it lands on is the exact solution, so only the corrector's
// own residual-derived level can certify that the accepted iterate is
// actually within tolerance (see DESIGN.md).
func (sv *solver) step(s *State) (int, *Error) {
	if err := sv.phaseSetup(s); err != nil {
		return err.Code, err
	}
	if err := sv.phaseCorrection(s); err != nil {
		return err.Code, err
	}
	preTol := math.Sqrt(s.sumX / float64(s.n))

	switch {
	case sv.opts.QOrdi:
		s.fc, s.fcPri = 1, 1
	case s.nIter >= 1:
		sv.phasePredictor(s)
	default:
		s.fcPri = s.fc
	}

	rejected, code, err := sv.phaseCorrector(s)
	if err != nil {
		return code, err
	}
	if rejected {
		s.recordIteration(preTol)
		return NotConverged, nil
	}

	tol := math.Sqrt(sv.trialSumX / float64(s.n))
	sv.phaseRank1(s)
	sv.phaseCommit(s)
	s.recordIteration(tol)
	if tol <= sv.opts.RTol {
		return Success, nil
	}
	return NotConverged, nil
}

// phaseSetup is phase A: ensure F(x) and the Jacobian factorization are
// current for this iteration.
func (sv *solver) phaseSetup(s *State) *Error {
	if s.firstCall {
		if ferr := sv.f(s.f, s.x); ferr != nil {
			return newError(CallbackFailed, "F evaluation failed: "+ferr.Error())
		}
		s.nFcn++
		s.firstCall = false
	}

	scale.Compute(s.xw, sv.xScal, s.x, s.xa, s.nIter == 0, 0)

	needJacobian := !s.haveJacobian || (s.nNew == 0 && !sv.opts.QSimpl)
	if !needJacobian {
		return nil
	}
	if err := sv.evalJacobian(s); err != nil {
		return err
	}
	if sv.opts.NoRowScal {
		for i := range s.fw {
			s.fw[i] = 1
		}
	} else {
		rowscale.Apply(sv.store(s), s.fw)
	}
	sv.columnScale(s)
	if err := sv.factor(s); err != nil {
		return err
	}
	s.haveJacobian = true
	return nil
}

// store returns the Jacobian storage matching opts.MStor.
func (sv *solver) store(s *State) matrix.Store {
	if sv.opts.MStor == StorBand {
		return s.bandA
	}
	return s.denseA
}

// columnScale right-scales the Jacobian's columns by xw so that
// solving the factored system yields the dimensionless scaled
// correction dx1 directly (descaled to the physical step by
// solveCorrection).
func (sv *solver) columnScale(s *State) {
	st := sv.store(s)
	for j := 0; j < s.n; j++ {
		lo, hi := st.ColRange(j)
		xwj := s.xw[j]
		for i := lo; i <= hi; i++ {
			st.Set(i, j, st.At(i, j)*xwj)
		}
	}
}

// factor builds a fresh Factorizer over the current Jacobian storage
// and factors it, mapping a singular pivot to SingularJacobian.
func (sv *solver) factor(s *State) *Error {
	if sv.opts.MStor == StorBand {
		s.fact = linsolve.NewBand(s.bandA)
	} else {
		s.fact = linsolve.NewDense(s.denseA)
	}
	if ferr := s.fact.Factorize(); ferr != nil {
		return newError(SingularJacobian, "Jacobian factorization failed: "+ferr.Error())
	}
	return nil
}

// evalJacobian dispatches to the configured Jacobian source, counting
// nJac once and any finite-difference function evaluations into nFcn
// and nFcnJ.
func (sv *solver) evalJacobian(s *State) *Error {
	var nFcn int
	var ferr error
	switch sv.opts.JacGen {
	case JacUser:
		if sv.opts.MStor == StorBand {
			ferr = sv.opts.JacBand(s.bandA, s.x)
		} else {
			ferr = sv.opts.JacDense(s.denseA, s.x)
		}
	case JacFeedback:
		if sv.opts.MStor == StorBand {
			nFcn, ferr = jacobian.BandedFeedback(s.bandA, jacobian.Func(sv.f), s.x, s.f, s.xw, s.eta, s.conv, mcn.AjMin)
		} else {
			nFcn, ferr = jacobian.DenseFeedback(s.denseA, jacobian.Func(sv.f), s.x, s.f, s.xw, s.eta, s.conv, mcn.AjMin)
		}
	default: // JacFD
		if sv.opts.MStor == StorBand {
			nFcn, ferr = jacobian.Banded(s.bandA, jacobian.Func(sv.f), s.x, s.f, s.xw, mcn.AjDel, mcn.AjMin)
		} else {
			nFcn, ferr = jacobian.Dense(s.denseA, jacobian.Func(sv.f), s.x, s.f, s.xw, mcn.AjDel, mcn.AjMin)
		}
	}
	s.nFcn += nFcn
	s.nFcnJ += nFcn
	s.nJac++
	if ferr != nil {
		return newError(CallbackFailed, "Jacobian evaluation failed: "+ferr.Error())
	}
	return nil
}

// solveCorrection solves the column-scaled factorization for the
// residual at fAtPoint, returning both the dimensionless scaled
// correction dx1 and its descaled (physical) counterpart dxq = dx1*xw.
func (sv *solver) solveCorrection(s *State, fAtPoint []float64) (dx1, dxq []float64, err *Error) {
	rhs := make([]float64, s.n)
	for i := range rhs {
		rhs[i] = -s.fw[i] * fAtPoint[i]
	}
	sol, serr := s.fact.Solve(rhs)
	if serr != nil {
		return nil, nil, newError(SingularJacobian, "linear solve failed: "+serr.Error())
	}
	dxq = make([]float64, s.n)
	for i := range dxq {
		dxq[i] = sol[i] * s.xw[i]
	}
	return sol, dxq, nil
}

// phaseCorrection is phase B: the undamped Newton correction at the
// current iterate, and the level functions it feeds into phases C-E.
func (sv *solver) phaseCorrection(s *State) *Error {
	dx1, dxq, err := sv.solveCorrection(s, s.f)
	if err != nil {
		return err
	}
	copy(s.dx, dx1)
	copy(s.dxq, dxq)
	sumx, conv, dlevf := levels.Compute(dx1, s.f)
	s.sumX, s.conv, s.dlevf = sumx, conv, dlevf
	return nil
}

// phasePredictor is phase D: predict the damping factor for this
// iteration's corrector loop from the ratio of the current and
// previous correction levels (Deuflhard's affine-invariant estimate of
// the local Lipschitz constant), clamped to [fcMin,1] and, when bounded
// damping is active, to [fca/fcBand, fca*fcBand].
func (sv *solver) phasePredictor(s *State) {
	dmyCor := math.Sqrt(s.sumXa / math.Max(s.sumX, mcn.Small))
	s.dmyCor = dmyCor

	fcPri := s.fca * dmyCor
	fcPri = clampFc(fcPri, sv.opts.FcMin, 1)

	bounded := sv.opts.BoundedDamp == BoundedOn ||
		(sv.opts.BoundedDamp == BoundedAuto && sv.opts.NonLin == 4)
	if bounded {
		fcPri = clampFc(fcPri, s.fca/sv.opts.FcBand, s.fca*sv.opts.FcBand)
		fcPri = clampFc(fcPri, sv.opts.FcMin, 1)
	}
	s.fcPri = fcPri
	s.fc = fcPri
}

func clampFc(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// phaseCorrector is phase E: the damping retry loop. It forms a trial
// step, evaluates F there, and tests the simplified corrector's level
// against the last undamped level (the monotonicity test). On success
// it stashes the trial for phaseCommit and returns (false,0,nil).
// Under QOrdi (ordinary Newton) the monotonicity test is skipped
// entirely and the single fc=1 trial is always accepted, per spec.md
// §3's description of QOrdi. A monotonicity failure while reusing a
// rank-1 Jacobian is not retried under the same stale factorization
// (spec.md §4.6): it is rejected outright, nRejR1 is counted, fc is
// halved, and the caller must redo setup (and so get a fresh Jacobian)
// on its next call without committing this attempt — signalled by
// rejected=true. A monotonicity failure with a freshly factored
// Jacobian instead reduces fc and retries: if the very first trial
// already sits at or below FcMin and fails, there was never a retry to
// exhaust, so that is reported as NotMonotone; once at least one retry
// has actually reduced fc and the loop still can't find an acceptable
// step by the time fc reaches FcMin, that is DampingTooSmall.
func (sv *solver) phaseCorrector(s *State) (rejected bool, code int, err *Error) {
	usingReused := s.nNew > 0
	retries := 0
	for {
		xTrial := addScaled(s.x, s.dxq, s.fc)
		fTrial := make([]float64, s.n)
		if ferr := sv.f(fTrial, xTrial); ferr != nil {
			return false, CallbackFailed, newError(CallbackFailed, "F evaluation failed: "+ferr.Error())
		}
		s.nFcn++

		dx1s, dxqs, serr := sv.solveCorrection(s, fTrial)
		if serr != nil {
			return false, serr.Code, serr
		}
		var sumxs float64
		for _, v := range dx1s {
			sumxs += v * v
		}

		if sv.opts.QOrdi || sumxs <= s.sumX {
			sv.trialX, sv.trialF, sv.trialDxq, sv.trialSumX = xTrial, fTrial, dxqs, sumxs
			return false, Success, nil
		}

		if usingReused {
			s.nRejR1++
			s.resetBroyden()
			s.fc = math.Max(sv.opts.FcMin, s.fc/2)
			return true, NotConverged, nil
		}

		if s.fc <= sv.opts.FcMin {
			if retries == 0 {
				// The predicted damping factor was already at or below
				// fcMin on the very first trial of this call: the
				// corrector loop never got a chance to retry at all, so
				// this is a monotonicity failure, not exhausted retries.
				return false, NotMonotone, newError(NotMonotone, "corrector not monotonically reducible at fcMin")
			}
			return false, DampingTooSmall, newError(DampingTooSmall, "no acceptable damping factor found")
		}
		s.nCorr++
		retries++
		newFc := s.fc * s.dmyCor
		if newFc >= s.fc {
			newFc = s.fc / 2
		}
		s.fc = math.Max(sv.opts.FcMin, newFc)
	}
}

// phaseRank1 is phase F: decide whether the Jacobian may be reused
// (via an implicit rank-1 update, tracked through the dxSave ring
// buffer) for the next iteration.
func (sv *solver) phaseRank1(s *State) {
	allowed := sv.opts.QRank1 &&
		s.nNew < sv.opts.NBroy &&
		s.fc >= sv.opts.Sigma*s.fcPri &&
		s.conv*sv.opts.Sigma2 < 1
	if allowed {
		s.pushBroyden(sv.trialDxq)
	} else {
		s.resetBroyden()
	}
}

// phaseCommit is phase G: advance the persistent state to the accepted
// trial step.
func (sv *solver) phaseCommit(s *State) {
	copy(s.xa, s.x)
	copy(s.x, sv.trialX)
	copy(s.fa, s.f)
	copy(s.f, sv.trialF)
	copy(s.dxqa, s.dxq)
	copy(s.dxq, sv.trialDxq)
	s.sumXa = s.sumX
	s.sumX = sv.trialSumX
	s.fca = s.fc
	s.nIter++
}

func addScaled(x, dx []float64, fc float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + fc*dx[i]
	}
	return out
}
