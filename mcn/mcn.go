// Package mcn holds the machine constants the nleq1 solver family is
// built on: a floating-point field with machine epsilon, a smallest
// safe magnitude, and a largest safe magnitude.
package mcn

import "math"

// IEEE-754 double precision defaults.
const (
	// Eps is the machine epsilon.
	Eps = 2.220446049250313e-16

	// Small is the smallest value whose reciprocal does not overflow.
	Small = 1e-35

	// Great is the largest safe magnitude, 1/Small.
	Great = 1 / Small
)

// ETAMin and ETAMax bound the per-component feedback-control step size
// eta used by the JCF/JCFB Jacobian kernels.
const (
	ETAMin = 1e-7
	ETAMax = 1e-1
)

// ETADif is not a constant expression (math.Sqrt is not constant in Go),
// so it is computed once at package init.
var ETADif = math.Sqrt(1.1 * Eps)

// AjDel is the default relative perturbation for the plain
// finite-difference Jacobian kernels (JACFD/JACFDB), the conventional
// sqrt(eps) forward-difference step.
var AjDel = math.Sqrt(Eps)

// AjMin is the default floor on |x[k]| and yscal[k] used when sizing a
// finite-difference perturbation, preventing a zero step at x[k]=0.
const AjMin = 1e-11
