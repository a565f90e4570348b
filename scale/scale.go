// Package scale implements SCAL: derivation of the per-iteration
// scaling vector xw from the user scale, the current iterate, and the
// previous iterate.
package scale

import (
	"fmt"
	"math"

	"github.com/sonVishal/nleq1/mcn"
)

// Precondition applies the entry-time rules to a user-supplied scale
// vector xScal: zeros become defScal (rTol if nonLin>=3, else 1), out of
// range values are clamped into [mcn.Small, mcn.Great], and negative
// values are rejected. warn, if non-nil, is called once per clamped
// component describing what changed.
func Precondition(xScal []float64, rTol float64, nonLin int, warn func(code, msg string)) error {
	defScal := 1.0
	if nonLin >= 3 {
		defScal = rTol
	}
	for i, v := range xScal {
		switch {
		case v < 0:
			return fmt.Errorf("scale: xScal[%d] = %g is negative", i, v)
		case v == 0:
			xScal[i] = defScal
		case v < mcn.Small:
			xScal[i] = mcn.Small
			if warn != nil {
				warn("scale-clamp-low", fmt.Sprintf("xScal[%d] raised to SMALL", i))
			}
		case v > mcn.Great:
			xScal[i] = mcn.Great
			if warn != nil {
				warn("scale-clamp-high", fmt.Sprintf("xScal[%d] lowered to GREAT", i))
			}
		}
	}
	return nil
}

// Compute fills xw from xScal, x, and xa. When iScal==1 the caller has
// supplied a fixed scale and xw is copied from xScal unchanged;
// otherwise xw[i] = max(xScal[i], max(0.5*(|x[i]|+|xa[i]|), mcn.Small))
// — the scale-invariant midpoint-magnitude form (spec open question 1).
// On the very first call xa is not yet meaningful and firstCall should
// be true, so the |x|+|xa| term collapses to |x| alone.
func Compute(xw, xScal, x, xa []float64, firstCall bool, iScal int) {
	if iScal == 1 {
		copy(xw, xScal)
		return
	}
	for i := range xw {
		mag := math.Abs(x[i])
		if !firstCall {
			mag = 0.5 * (mag + math.Abs(xa[i]))
		}
		xw[i] = math.Max(xScal[i], math.Max(mag, mcn.Small))
	}
}
