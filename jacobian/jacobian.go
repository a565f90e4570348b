// Package jacobian implements the finite-difference Jacobian
// approximation kernels JACFD/JACFDB (plain) and JCF/JCFB
// (feedback-controlled), dense and banded.
package jacobian

import (
	"math"

	"github.com/sonVishal/nleq1/band"
	"github.com/sonVishal/nleq1/matrix"
	"github.com/sonVishal/nleq1/mcn"
)

// Func evaluates F(x) into fx. A non-nil error aborts the sweep in
// progress; the engine maps it to a callback failure (return code 10).
type Func func(fx, x []float64) error

func perturbation(xk, ajmin, yscalk, step float64) float64 {
	sign := 1.0
	if xk < 0 {
		sign = -1.0
	}
	return sign * math.Max(math.Abs(xk), math.Max(ajmin, yscalk)) * step
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Dense computes a plain dense finite-difference Jacobian with fixed
// relative step ajdel, column by column.
func Dense(store *matrix.DenseStore, f Func, x, fx, yscal []float64, ajdel, ajmin float64) (nFcn int, err error) {
	n := len(x)
	fPert := make([]float64, n)
	for k := 0; k < n; k++ {
		xk := x[k]
		u := perturbation(xk, ajmin, yscal[k], ajdel)
		x[k] = xk + u
		if err := f(fPert, x); err != nil {
			x[k] = xk
			return nFcn, err
		}
		nFcn++
		for i := 0; i < n; i++ {
			store.Set(i, k, (fPert[i]-fx[i])/u)
		}
		x[k] = xk
	}
	return nFcn, nil
}

// Banded computes a plain banded finite-difference Jacobian, perturbing
// whole groups of ldab = ml+mu+1 columns per function evaluation since
// their derivative supports are disjoint rows.
func Banded(store *matrix.BandStore, f Func, x, fx, yscal []float64, ajdel, ajmin float64) (nFcn int, err error) {
	n := len(x)
	ml, mu := store.Bandwidth()
	ldab := band.Ldab(ml, mu)
	fPert := make([]float64, n)
	u := make([]float64, n)
	orig := make([]float64, n)

	for g := 0; g < ldab; g++ {
		for k := g; k < n; k += ldab {
			orig[k] = x[k]
			u[k] = perturbation(x[k], ajmin, yscal[k], ajdel)
			x[k] = orig[k] + u[k]
		}
		if err := f(fPert, x); err != nil {
			for k := g; k < n; k += ldab {
				x[k] = orig[k]
			}
			return nFcn, err
		}
		nFcn++
		for k := g; k < n; k += ldab {
			lo, hi := store.ColRange(k)
			for i := lo; i <= hi; i++ {
				store.Set(i, k, (fPert[i]-fx[i])/u[k])
			}
			x[k] = orig[k]
		}
	}
	return nFcn, nil
}

// discretizationError estimates the relative curvature noise in a
// perturbed column, per spec §4.2: sumd = sqrt((1/n) * sum_i r_i^2)
// where r_i = (fPert_i - fx_i) / max(|fx_i|, |fPert_i|).
func discretizationError(fx, fPert []float64) float64 {
	var sum float64
	n := len(fx)
	for i := 0; i < n; i++ {
		den := math.Max(math.Abs(fx[i]), math.Abs(fPert[i]))
		if den == 0 {
			continue
		}
		r := (fPert[i] - fx[i]) / den
		sum += r * r
	}
	return math.Sqrt(sum / float64(n))
}

// DenseFeedback computes a dense finite-difference Jacobian using a
// per-component step eta, updated from the measured discretization
// error of each column and retried at most once (JCF). conv is the
// scaled max-norm of the last correction (levels.Compute's conv); a
// column already close to convergence (conv<0.1) is accepted without
// retrying even if its discretization estimate is noisy.
func DenseFeedback(store *matrix.DenseStore, f Func, x, fx, yscal, eta []float64, conv, ajmin float64) (nFcn int, err error) {
	n := len(x)
	fPert := make([]float64, n)
	for k := 0; k < n; k++ {
		xk := x[k]
		for is := 0; is < 2; is++ {
			u := perturbation(xk, ajmin, yscal[k], eta[k])
			x[k] = xk + u
			if err := f(fPert, x); err != nil {
				x[k] = xk
				return nFcn, err
			}
			nFcn++
			for i := 0; i < n; i++ {
				store.Set(i, k, (fPert[i]-fx[i])/u)
			}
			sumd := discretizationError(fx, fPert)
			fine := conv < 0.1 || sumd >= mcn.ETAMin
			if !fine {
				if sumd > 0 {
					eta[k] = clamp(math.Sqrt(mcn.ETADif/sumd)*eta[k], mcn.ETAMin, mcn.ETAMax)
				}
				if is == 0 {
					continue
				}
			}
			break
		}
		x[k] = xk
	}
	return nFcn, nil
}

// BandedFeedback is the banded counterpart of DenseFeedback: columns
// are grouped by stride ldab as in Banded, and within a group only the
// columns whose discretization error failed the fine test are retried
// together in a second evaluation.
func BandedFeedback(store *matrix.BandStore, f Func, x, fx, yscal, eta []float64, conv, ajmin float64) (nFcn int, err error) {
	n := len(x)
	ml, mu := store.Bandwidth()
	ldab := band.Ldab(ml, mu)
	fPert := make([]float64, n)
	u := make([]float64, n)
	orig := make([]float64, n)

	for g := 0; g < ldab; g++ {
		var cols []int
		for k := g; k < n; k += ldab {
			cols = append(cols, k)
		}
		for is := 0; is < 2 && len(cols) > 0; is++ {
			for _, k := range cols {
				orig[k] = x[k]
				u[k] = perturbation(x[k], ajmin, yscal[k], eta[k])
				x[k] = orig[k] + u[k]
			}
			if err := f(fPert, x); err != nil {
				for _, k := range cols {
					x[k] = orig[k]
				}
				return nFcn, err
			}
			nFcn++
			var retry []int
			for _, k := range cols {
				lo, hi := store.ColRange(k)
				for i := lo; i <= hi; i++ {
					store.Set(i, k, (fPert[i]-fx[i])/u[k])
				}
				sumd := discretizationError(fx, fPert)
				fine := conv < 0.1 || sumd >= mcn.ETAMin
				x[k] = orig[k]
				if !fine {
					if sumd > 0 {
						eta[k] = clamp(math.Sqrt(mcn.ETADif/sumd)*eta[k], mcn.ETAMin, mcn.ETAMax)
					}
					if is == 0 {
						retry = append(retry, k)
					}
				}
			}
			cols = retry
		}
	}
	return nFcn, nil
}
