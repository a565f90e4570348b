// Package nleq1 implements NLEQ1, Deuflhard's affine-invariant damped
// Newton method for systems of nonlinear equations F(x)=0. The
// iteration, its damping-factor prediction/correction heuristics, and
// its optional Broyden rank-1 updates follow the same phase structure
// as gonum's optimize/nlls Levenberg-Marquardt driver; in place of a
// trust region this package predicts and corrects a single scalar
// damping factor per Deuflhard's theory of affine-invariant Newton
// methods.
package nleq1

import (
	"fmt"

	"github.com/sonVishal/nleq1/scale"
)

// Solve finds x such that f(x)=0, starting from the caller's initial
// guess x, which is overwritten in place with the result (or the last
// iterate reached, on failure). xScal supplies the problem's natural
// scale (a zero entry gets the problem-class default, see
// scale.Precondition); it is modified in place to the preconditioned
// scale actually used.
//
// state carries the iteration across calls. Pass a nil state for an
// ordinary, single-call solve; Solve allocates and discards one
// internally. Pass a state obtained from NewState, and set
// opts.QSucc, to resume an iteration across multiple calls (for
// example to interleave steps with caller-side bookkeeping) — see
// SolveStep.
func Solve(f Func, x, xScal []float64, opts Options, state *State) (Stats, error) {
	n := len(x)
	if len(xScal) != n {
		return Stats{}, newError(BadDimension, fmt.Sprintf("len(xScal)=%d does not match len(x)=%d", len(xScal), n))
	}
	opts.normalize()
	if err := opts.validate(n); err != nil {
		return Stats{}, err
	}

	if state == nil {
		state = NewState(n, opts)
	}
	if state.n != n {
		return Stats{}, newError(BadDimension, fmt.Sprintf("state was built for n=%d, got n=%d", state.n, n))
	}

	if state.firstCall {
		if err := scale.Precondition(xScal, opts.RTol, opts.NonLin, opts.Warn); err != nil {
			return Stats{}, newError(BadScale, err.Error())
		}
		copy(state.x, x)
	}

	budget := opts.NItmax
	if budget < 1 {
		budget = 1
	}

	var code int
	var err error
	for i := 0; i < budget; i++ {
		code, err = SolveStep(f, opts, xScal, state)
		if code != NotConverged {
			break
		}
		if err != nil {
			break
		}
	}

	copy(x, state.x)
	stats := newStats(state)
	if n := len(state.tolAll); n > 0 {
		stats.RTol = state.tolAll[n-1]
	}

	switch {
	case err != nil:
		return stats, err
	case code == Success:
		return stats, nil
	case opts.QSucc:
		// The per-call iteration budget ran out without convergence;
		// the caller is expected to call Solve again with the same
		// state to continue.
		return stats, newError(NotConverged, "iteration budget exhausted without convergence")
	default:
		return stats, newError(IterationLimit, "NItmax exceeded without convergence")
	}
}
