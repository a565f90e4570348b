// Package linsolve implements the FACT/SOLV adapter: factor a Jacobian
// once, then back-substitute for as many right-hand sides as the
// engine needs without refactoring. Both dense and banded storage are
// solved with gonum.org/v1/gonum/mat's LU; the banded path densifies
// the LINPACK-style band storage before factoring, since no library in
// the reference corpus binds a factor/solve pair directly to the
// spec's banded layout (see DESIGN.md).
package linsolve

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sonVishal/nleq1/matrix"
)

// ErrSingular is returned by Factorize when the Jacobian has no usable
// pivot. The engine maps it to return code 4.
var ErrSingular = errors.New("linsolve: singular matrix")

// Factorizer factors a Jacobian once and solves Ax=b for any number of
// right-hand sides against that factorization.
type Factorizer interface {
	Factorize() error
	Solve(b []float64) ([]float64, error)
}

// Dense solves Ax=b for a matrix.DenseStore using gonum's LU
// factorization.
type Dense struct {
	store *matrix.DenseStore
	lu    mat.LU
}

// NewDense returns a Factorizer over store. store's contents at the
// time Factorize is called are what gets factored.
func NewDense(store *matrix.DenseStore) *Dense {
	return &Dense{store: store}
}

func (d *Dense) Factorize() error {
	d.lu.Factorize(d.store.M)
	cond := d.lu.Cond()
	if math.IsInf(cond, 1) || math.IsNaN(cond) {
		return ErrSingular
	}
	return nil
}

func (d *Dense) Solve(b []float64) ([]float64, error) {
	n := len(b)
	bv := mat.NewVecDense(n, append([]float64(nil), b...))
	var xv mat.VecDense
	if err := d.lu.SolveVecTo(&xv, false, bv); err != nil {
		return nil, ErrSingular
	}
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = xv.AtVec(i)
	}
	return x, nil
}

// Band solves Ax=b for a matrix.BandStore. The LINPACK-convention
// storage itself (§6.4's index mapping) is exercised directly by the
// Jacobian and row-scaling kernels; Band's own factor/solve step
// instead densifies the current band contents into an n×n matrix and
// reuses gonum's partial-pivoting LU, rather than hand-deriving a
// pivoted band elimination (whose fill-in handling requires threading
// every row swap through all later columns that overlap the swapped
// rows — a derivation this module has no way to check by running it).
// The spec's linear-solve contract only requires a correct solve, not
// an in-place banded one, so this satisfies it at much lower risk.
type Band struct {
	store *matrix.BandStore
	n     int
	ml    int
	mu    int
	a     *mat.Dense
	lu    mat.LU
}

// NewBand returns a Factorizer over store.
func NewBand(store *matrix.BandStore) *Band {
	ml, mu := store.Bandwidth()
	n := store.N()
	return &Band{store: store, n: n, ml: ml, mu: mu, a: mat.NewDense(n, n, nil)}
}

// Factorize copies store's current band contents into a dense n×n
// matrix and factors it with gonum's LU.
func (b *Band) Factorize() error {
	n, ml, mu := b.n, b.ml, b.mu
	b.a.Zero()
	for j := 0; j < n; j++ {
		lo := j - mu
		if lo < 0 {
			lo = 0
		}
		hi := j + ml
		if hi > n-1 {
			hi = n - 1
		}
		for i := lo; i <= hi; i++ {
			b.a.Set(i, j, b.store.At(i, j))
		}
	}
	b.lu.Factorize(b.a)
	cond := b.lu.Cond()
	if math.IsInf(cond, 1) || math.IsNaN(cond) {
		return ErrSingular
	}
	return nil
}

// Solve back-substitutes rhs against the factorization computed by
// Factorize.
func (b *Band) Solve(rhs []float64) ([]float64, error) {
	n := b.n
	bv := mat.NewVecDense(n, append([]float64(nil), rhs...))
	var xv mat.VecDense
	if err := b.lu.SolveVecTo(&xv, false, bv); err != nil {
		return nil, ErrSingular
	}
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = xv.AtVec(i)
	}
	return x, nil
}
