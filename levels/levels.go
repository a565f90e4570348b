// Package levels implements LVLS: the scaled natural level, the scaled
// max-norm, and the standard (residual RMS) level the damping heuristic
// of the core engine reasons about.
package levels

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Compute returns:
//
//	sumx  = ‖dx1‖² (scaled natural level)
//	conv  = max_i |dx1[i]| (scaled max-norm of the last unrelaxed correction)
//	dlevf = sqrt((1/n) * ‖f‖²) (standard level, RMS of the residual)
func Compute(dx1, f []float64) (sumx, conv, dlevf float64) {
	sumx = floats.Dot(dx1, dx1)
	conv = maxAbs(dx1)
	n := len(f)
	dlevf = math.Sqrt(floats.Dot(f, f) / float64(n))
	return sumx, conv, dlevf
}

func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}
