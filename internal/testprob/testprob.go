// Package testprob collects the fixed nonlinear systems nleq1's test
// files solve: a linear system, a scalar monotonicity fence, a
// singular system, a tridiagonal banded system, and the Chebyquad
// function used by gonum's own optimize test suite.
package testprob

import (
	"math"

	"github.com/sonVishal/nleq1/matrix"
)

// Linear2 is F(x) = A x - b for A = [[2,1],[1,3]], b=[3,4]; its unique
// root is x = [1, 1]. Being linear, a damped Newton iteration started
// anywhere converges in exactly one corrected step.
func Linear2(fx, x []float64) error {
	fx[0] = 2*x[0] + x[1] - 3
	fx[1] = x[0] + 3*x[1] - 4
	return nil
}

// Linear2Root is Linear2's unique root.
var Linear2Root = []float64{1, 1}

// Atan is F(x) = atan(x) - pi/3, a scalar problem whose corrector loop
// must actually damp: Newton's undamped step from most starting points
// overshoots far enough that the monotonicity test rejects it at least
// once before the iteration converges to tan(pi/3).
func Atan(fx, x []float64) error {
	fx[0] = math.Atan(x[0]) - math.Pi/3
	return nil
}

// AtanRoot is Atan's root.
var AtanRoot = math.Tan(math.Pi / 3)

// Singular2 is F(x) = [x1^2 - x2^2, 2*x1*x2], whose Jacobian
// [[2x1,-2x2],[2x2,2x1]] is singular at the origin.
func Singular2(fx, x []float64) error {
	fx[0] = x[0]*x[0] - x[1]*x[1]
	fx[1] = 2 * x[0] * x[1]
	return nil
}

// Tridiag returns a size-n system F(x)_i = -x[i-1] + 2*x[i] - x[i+1] - 1
// (with the out-of-range neighbors treated as zero), whose Jacobian is
// the constant tridiagonal matrix with -1 off-diagonals and 2 on the
// diagonal — exercised with both dense and banded (ml=mu=1) storage.
func Tridiag(n int) func(fx, x []float64) error {
	return func(fx, x []float64) error {
		for i := 0; i < n; i++ {
			v := 2*x[i] - 1
			if i > 0 {
				v -= x[i-1]
			}
			if i < n-1 {
				v -= x[i+1]
			}
			fx[i] = v
		}
		return nil
	}
}

// Chebyquad is the Chebyquad test function (Fletcher 1965) in n
// dimensions: for 0-based i, F_i(x) = (1/n) * sum_j T_{i+1}(2*x_j-1) - c_i,
// where T_{i+1} is the Chebyshev polynomial of degree i+1 and c_i is its
// exact mean over [0,1].
// It is the standard nonlinear-least-squares torture test used by
// gonum's own optimize package; here it is used as a genuinely
// nonlinear n-dimensional root-finding problem (n even, root near
// x_j = j/(n+1) scaled to [0,1]).
func Chebyquad(n int) func(fx, x []float64) error {
	c := chebyquadConstants(n)
	return func(fx, x []float64) error {
		t := make([][]float64, n)
		for j := 0; j < n; j++ {
			u := 2*x[j] - 1
			col := make([]float64, n+1)
			col[0] = 1
			col[1] = u
			for i := 2; i <= n; i++ {
				col[i] = 2*u*col[i-1] - col[i-2]
			}
			t[j] = col
		}
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += t[j][i+1]
			}
			fx[i] = sum/float64(n) - c[i]
		}
		return nil
	}
}

// ChebyquadJacobian returns the analytic Chebyquad Jacobian
// dF_i/dx_j = (2/n) * (i+1) * U_i(2x_j-1), where U is the Chebyshev
// polynomial of the second kind (T_{i+1}' = (i+1)*U_i), for use as a
// user-supplied JacDenseFunc.
func ChebyquadJacobian(n int) func(a *matrix.DenseStore, x []float64) error {
	return func(a *matrix.DenseStore, x []float64) error {
		for j := 0; j < n; j++ {
			u := 2*x[j] - 1
			uPrev, uCur := 1.0, 2*u // U_0, U_1
			for i := 0; i < n; i++ {
				tDeriv := float64(i+1) * uPrev // T_{i+1}' = (i+1)*U_i
				a.Set(i, j, 2*tDeriv/float64(n))
				uPrev, uCur = uCur, 2*u*uCur-uPrev
			}
		}
		return nil
	}
}

// ChebyquadStart returns the conventional Chebyquad starting point
// x_j = (j+1)/(n+1).
func ChebyquadStart(n int) []float64 {
	x := make([]float64, n)
	for j := range x {
		x[j] = float64(j+1) / float64(n+1)
	}
	return x
}

func chebyquadConstants(n int) []float64 {
	c := make([]float64, n)
	for i := 0; i < n; i++ {
		k := float64(i + 1) // degree of the polynomial behind F_i
		if (i+1)%2 == 1 {
			c[i] = 0
			continue
		}
		c[i] = -1 / (k*k - 1)
	}
	return c
}
