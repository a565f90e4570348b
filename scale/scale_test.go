package scale

import (
	"math"
	"testing"

	"github.com/sonVishal/nleq1/mcn"
)

func TestPreconditionDefaults(t *testing.T) {
	t.Parallel()
	xScal := []float64{0, 0, 0}
	if err := Precondition(xScal, 1e-8, 1, nil); err != nil {
		t.Fatalf("Precondition: %v", err)
	}
	for i, v := range xScal {
		if v != 1.0 {
			t.Errorf("xScal[%d] = %g, want 1.0 for nonLin=1", i, v)
		}
	}

	xScal = []float64{0}
	if err := Precondition(xScal, 1e-8, 3, nil); err != nil {
		t.Fatalf("Precondition: %v", err)
	}
	if xScal[0] != 1e-8 {
		t.Errorf("xScal[0] = %g, want rTol for nonLin=3", xScal[0])
	}
}

func TestPreconditionClampAndReject(t *testing.T) {
	t.Parallel()
	xScal := []float64{1e-40, 1e40}
	if err := Precondition(xScal, 1e-8, 1, nil); err != nil {
		t.Fatalf("Precondition: %v", err)
	}
	if xScal[0] != mcn.Small {
		t.Errorf("xScal[0] = %g, want SMALL", xScal[0])
	}
	if xScal[1] != mcn.Great {
		t.Errorf("xScal[1] = %g, want GREAT", xScal[1])
	}

	if err := Precondition([]float64{-1}, 1e-8, 1, nil); err == nil {
		t.Error("Precondition accepted a negative xScal entry")
	}
}

func TestComputeMidpointForm(t *testing.T) {
	t.Parallel()
	xScal := []float64{0.1, 0.1}
	x := []float64{2, -3}
	xa := []float64{1, -1}
	xw := make([]float64, 2)
	Compute(xw, xScal, x, xa, false, 0)

	want0 := math.Max(0.1, math.Max(0.5*(2+1), mcn.Small))
	want1 := math.Max(0.1, math.Max(0.5*(3+1), mcn.Small))
	if xw[0] != want0 || xw[1] != want1 {
		t.Errorf("xw = %v, want [%g %g]", xw, want0, want1)
	}
}

func TestComputeFixedScale(t *testing.T) {
	t.Parallel()
	xScal := []float64{3, 4}
	xw := make([]float64, 2)
	Compute(xw, xScal, []float64{100, 100}, []float64{0, 0}, false, 1)
	if xw[0] != 3 || xw[1] != 4 {
		t.Errorf("xw = %v, want xScal copied verbatim when iScal=1", xw)
	}
}

func TestComputeBounds(t *testing.T) {
	t.Parallel()
	xScal := []float64{0, 0}
	x := []float64{0, 0}
	xa := []float64{0, 0}
	xw := make([]float64, 2)
	Compute(xw, xScal, x, xa, true, 0)
	for i, v := range xw {
		if v < mcn.Small {
			t.Errorf("xw[%d] = %g below SMALL", i, v)
		}
	}
}
