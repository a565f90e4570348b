package nleq1

import (
	"github.com/sonVishal/nleq1/linsolve"
	"github.com/sonVishal/nleq1/matrix"
)

// State is the opaque, persistent iteration workspace threaded through
// Solve/SolveStep. It is created by NewState and mutated only by this
// package; callers must not invoke Solve/SolveStep re-entrantly on the
// same State from more than one goroutine (spec.md §5).
type State struct {
	n int

	x, xa         []float64
	xw            []float64
	dx, dxq, dxqa []float64
	f, fa         []float64
	eta           []float64
	fw            []float64
	denseA        *matrix.DenseStore
	bandA         *matrix.BandStore
	fact          linsolve.Factorizer
	dxSave        [][]float64 // ring buffer, len nBroy, each len n
	haveJacobian  bool

	// Damping state.
	fc, fca, fcPri, dmyCor float64

	// Level state.
	sumX, sumXa, conv, dlevf float64

	// Counters. nNew counts consecutive rank-1 (Jacobian-reuse) steps
	// since the last full Jacobian refresh; nNew==0 at the start of an
	// iteration means a fresh Jacobian is required.
	nIter, nCorr, nFcn, nFcnJ, nJac, nRejR1, nNew int

	// History, pre-allocated to nItmax+1 entries.
	xIter              [][]float64
	sumXall, sumXQall  []float64
	dLevFall, tolAll   []float64
	fcAll              []float64

	firstCall bool
}

// NewState allocates a fresh State for an n-dimensional problem under
// opts. opts.NItmax bounds the pre-allocated history length.
func NewState(n int, opts Options) *State {
	s := &State{n: n}
	s.x = make([]float64, n)
	s.xa = make([]float64, n)
	s.xw = make([]float64, n)
	s.dx = make([]float64, n)
	s.dxq = make([]float64, n)
	s.dxqa = make([]float64, n)
	s.f = make([]float64, n)
	s.fa = make([]float64, n)
	s.eta = make([]float64, n)
	for i := range s.eta {
		s.eta[i] = mcnEtaInit
	}
	s.fw = make([]float64, n)

	if opts.MStor == StorBand {
		s.bandA = matrix.NewBandStore(n, opts.ML, opts.MU)
	} else {
		s.denseA = matrix.NewDenseStore(n)
	}

	nBroy := opts.NBroy
	if nBroy < 1 {
		nBroy = 10
	}
	s.dxSave = make([][]float64, nBroy)
	for i := range s.dxSave {
		s.dxSave[i] = make([]float64, n)
	}

	histCap := opts.NItmax + 1
	if histCap < 1 {
		histCap = 1
	}
	s.xIter = make([][]float64, 0, histCap)
	s.sumXall = make([]float64, 0, histCap)
	s.sumXQall = make([]float64, 0, histCap)
	s.dLevFall = make([]float64, 0, histCap)
	s.tolAll = make([]float64, 0, histCap)
	s.fcAll = make([]float64, 0, histCap)

	s.fc = opts.FcStart
	s.fca = opts.FcStart
	s.fcPri = opts.FcStart
	s.dmyCor = 0.5
	s.firstCall = true
	return s
}

// mcnEtaInit is the initial per-component feedback step before the
// first feedback-controlled Jacobian evaluation refines it.
const mcnEtaInit = 1e-6

// recordIteration appends the current level/damping quantities to the
// history slices, matching spec.md §9 ("append-only per iteration").
func (s *State) recordIteration(tol float64) {
	xCopy := append([]float64(nil), s.x...)
	s.xIter = append(s.xIter, xCopy)
	s.sumXall = append(s.sumXall, s.sumXa)
	s.sumXQall = append(s.sumXQall, s.sumX)
	s.dLevFall = append(s.dLevFall, s.dlevf)
	s.tolAll = append(s.tolAll, tol)
	s.fcAll = append(s.fcAll, s.fc)
}

// pushBroyden stores dxq into the rank-1 ring buffer, evicting the
// oldest entry once nBroy slots are in use, and advances nNew.
func (s *State) pushBroyden(dxq []float64) {
	idx := s.nNew % len(s.dxSave)
	copy(s.dxSave[idx], dxq)
	s.nNew++
}

// resetBroyden clears the rank-1 counter; called whenever the
// Jacobian is refreshed (spec.md §8: "resetting it occurs whenever a
// Jacobian is refreshed").
func (s *State) resetBroyden() { s.nNew = 0 }
