package nleq1

// Stats reports the outcome and per-iteration history of a solve,
// matching spec.md §6.2.
type Stats struct {
	// XScal is the scaling vector xw of the last step (the preconditioned
	// xScal raised componentwise to the iterate's magnitude, see
	// scale.Compute).
	XScal []float64
	// RTol is the tolerance achieved on return.
	RTol float64

	// Each history slice below gets one entry per accepted step, plus one
	// entry for each rank-1 step rejected by the monotonicity test (that
	// entry carries the unchanged iterate).

	// XIter holds a copy of the iterate after each accepted step.
	XIter [][]float64
	// NatLevel is the scaled natural level sumx at each iteration.
	NatLevel []float64
	// SimLevel is the scaled natural level of the simplified corrector
	// (sumx of the trial step) at each iteration.
	SimLevel []float64
	// StdLevel is the standard level dlevf at each iteration.
	StdLevel []float64
	// Precision is the achieved tolerance tolAll at each iteration.
	Precision []float64
	// DampingFc is the damping factor fc used at each iteration.
	DampingFc []float64

	NIter  int
	NCorr  int
	NFcn   int
	NFcnJ  int
	NJac   int
	NRejR1 int
}

func newStats(s *State) Stats {
	return Stats{
		XScal:     append([]float64(nil), s.xw...),
		RTol:      0, // filled by the driver from the final tolAll entry
		XIter:     s.xIter,
		NatLevel:  s.sumXall,
		SimLevel:  s.sumXQall,
		StdLevel:  s.dLevFall,
		Precision: s.tolAll,
		DampingFc: s.fcAll,
		NIter:     s.nIter,
		NCorr:     s.nCorr,
		NFcn:      s.nFcn,
		NFcnJ:     s.nFcnJ,
		NJac:      s.nJac,
		NRejR1:    s.nRejR1,
	}
}
