package nleq1

import (
	"math"
	"testing"

	"github.com/sonVishal/nleq1/internal/testprob"
	"github.com/sonVishal/nleq1/mcn"
)

func runChebyquad(t *testing.T, opts Options) (Stats, error) {
	t.Helper()
	n := 2
	x := testprob.ChebyquadStart(n)
	xScal := make([]float64, n)
	stats, err := Solve(testprob.Chebyquad(n), x, xScal, opts, nil)
	return stats, err
}

func TestInvariantDampingBounds(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions(3)
	opts.RTol = 1e-8
	stats, err := runChebyquad(t, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i, fc := range stats.DampingFc {
		if fc < opts.FcMin-1e-15 || fc > 1+1e-15 {
			t.Errorf("fcAll[%d] = %g, outside [fcMin,1] = [%g,1]", i, fc, opts.FcMin)
		}
	}
	for i, v := range stats.XScal {
		if v < mcn.Small || v > mcn.Great {
			t.Errorf("xw[%d] = %g, outside [SMALL,GREAT]", i, v)
		}
	}
}

func TestInvariantTolMonotone(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions(3)
	opts.RTol = 1e-8
	stats, err := runChebyquad(t, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i := 1; i < len(stats.Precision); i++ {
		if stats.Precision[i] > stats.Precision[i-1]*(1+1e-6) {
			t.Errorf("tolAll not monotone at %d: %g > %g", i, stats.Precision[i], stats.Precision[i-1])
		}
	}
}

func TestInvariantQOrdiForcesFcOne(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions(3)
	opts.RTol = 1e-6
	opts.QOrdi = true
	stats, err := runChebyquad(t, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i, fc := range stats.DampingFc {
		if fc != 1 {
			t.Errorf("fcAll[%d] = %g, want 1 under QOrdi", i, fc)
		}
	}
}

func TestInvariantCounters(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions(3)
	opts.RTol = 1e-8
	stats, err := runChebyquad(t, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if stats.NFcn < stats.NIter+1 {
		t.Errorf("nFcn = %d, want >= nIter+1 = %d", stats.NFcn, stats.NIter+1)
	}
	if stats.NJac > stats.NIter {
		t.Errorf("nJac = %d, want <= nIter = %d", stats.NJac, stats.NIter)
	}
	if lhs, rhs := stats.NCorr+stats.NRejR1, stats.NFcn-stats.NIter-1-stats.NFcnJ; lhs < rhs {
		t.Errorf("nCorr+nRejR1 = %d, want >= nFcn-nIter-1-nFcnJ = %d", lhs, rhs)
	}
}

func TestInvariantRank1RingBuffer(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions(3)
	opts.RTol = 1e-8
	opts.QRank1 = true
	opts.NBroy = 3
	if _, err := runChebyquad(t, opts); err != nil {
		t.Fatalf("Solve: %v", err)
	}
}

func TestInvariantAtanConverges(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions(3)
	opts.RTol = 1e-9
	opts.NItmax = 100
	x := []float64{10}
	xScal := []float64{0}
	stats, err := Solve(testprob.Atan, x, xScal, opts, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(x[0]-testprob.AtanRoot) > 1e-6 {
		t.Errorf("x = %v, want %g", x, testprob.AtanRoot)
	}
	var sawDamping bool
	for _, fc := range stats.DampingFc {
		if fc < 1 {
			sawDamping = true
			break
		}
	}
	if !sawDamping {
		t.Error("expected at least one damped (fc<1) iteration from x0=10")
	}
}
