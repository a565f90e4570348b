package levels

import (
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	t.Parallel()
	dx1 := []float64{3, -4, 1}
	f := []float64{2, 0, -2, 4}

	sumx, conv, dlevf := Compute(dx1, f)

	if want := 9.0 + 16.0 + 1.0; sumx != want {
		t.Errorf("sumx = %g, want %g", sumx, want)
	}
	if conv != 4 {
		t.Errorf("conv = %g, want 4", conv)
	}
	wantDlevf := math.Sqrt((4.0 + 0 + 4.0 + 16.0) / 4)
	if math.Abs(dlevf-wantDlevf) > 1e-15 {
		t.Errorf("dlevf = %g, want %g", dlevf, wantDlevf)
	}
}

func TestComputeZero(t *testing.T) {
	t.Parallel()
	sumx, conv, dlevf := Compute([]float64{0, 0}, []float64{0, 0})
	if sumx != 0 || conv != 0 || dlevf != 0 {
		t.Errorf("zero input should give zero levels, got sumx=%g conv=%g dlevf=%g", sumx, conv, dlevf)
	}
}
