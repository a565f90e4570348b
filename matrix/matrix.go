// Package matrix provides the Jacobian storage abstraction shared by
// jacobian, rowscale, and linsolve: a dense store backed by
// gonum.org/v1/gonum/mat, and a banded store in the LINPACK convention
// spec §6.4 mandates.
package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sonVishal/nleq1/band"
)

// Store is the Jacobian storage contract the rest of the module
// programs against, regardless of dense or banded layout.
type Store interface {
	// N returns the matrix order (it is always square here).
	N() int

	// At returns the logical element at row i, column j. Elements
	// outside the band of a banded store read as zero.
	At(i, j int) float64

	// Set assigns the logical element at row i, column j. Set panics
	// if (i,j) is outside the band of a banded store.
	Set(i, j int, v float64)

	// RowRange returns the inclusive range [lo,hi] of columns that can
	// hold a nonzero in row i.
	RowRange(i int) (lo, hi int)

	// ColRange returns the inclusive range [lo,hi] of rows that can
	// hold a nonzero in column j.
	ColRange(j int) (lo, hi int)

	// Zero clears every stored element, including fill-in space, ready
	// for reuse by the next Jacobian evaluation.
	Zero()
}

// DenseStore is a Store backed by a dense n×n gonum matrix.
type DenseStore struct {
	M *mat.Dense
}

// NewDenseStore allocates a zeroed n×n dense store.
func NewDenseStore(n int) *DenseStore {
	return &DenseStore{M: mat.NewDense(n, n, nil)}
}

func (d *DenseStore) N() int {
	r, _ := d.M.Dims()
	return r
}

func (d *DenseStore) At(i, j int) float64    { return d.M.At(i, j) }
func (d *DenseStore) Set(i, j int, v float64) { d.M.Set(i, j, v) }

func (d *DenseStore) RowRange(int) (int, int) { return 0, d.N() - 1 }
func (d *DenseStore) ColRange(int) (int, int) { return 0, d.N() - 1 }

func (d *DenseStore) Zero() {
	n := d.N()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.M.Set(i, j, 0)
		}
	}
}

// BandStore is a Store backed by the LINPACK band layout: physical
// leading dimension band.Width(ml,mu) = 2*ml+mu+1, columns stored
// contiguously per band.Index. linsolve.Band densifies this layout
// before factoring rather than factoring it in place.
type BandStore struct {
	n, ml, mu, width int
	data             []float64
}

// NewBandStore allocates a zeroed banded store for an n×n matrix with
// lower bandwidth ml and upper bandwidth mu.
func NewBandStore(n, ml, mu int) *BandStore {
	w := band.Width(ml, mu)
	return &BandStore{n: n, ml: ml, mu: mu, width: w, data: make([]float64, w*n)}
}

func (b *BandStore) N() int        { return b.n }
func (b *BandStore) Bandwidth() (ml, mu int) { return b.ml, b.mu }

func (b *BandStore) At(i, j int) float64 {
	row, ok := band.Index(i, j, b.ml, b.mu)
	if !ok {
		return 0
	}
	return b.data[j*b.width+row]
}

func (b *BandStore) Set(i, j int, v float64) {
	row, ok := band.Index(i, j, b.ml, b.mu)
	if !ok {
		panic("matrix: band.Set outside band")
	}
	b.data[j*b.width+row] = v
}

func (b *BandStore) RowRange(i int) (lo, hi int) {
	lo = i - b.ml
	if lo < 0 {
		lo = 0
	}
	hi = i + b.mu
	if hi > b.n-1 {
		hi = b.n - 1
	}
	return lo, hi
}

func (b *BandStore) ColRange(j int) (lo, hi int) {
	lo = j - b.mu
	if lo < 0 {
		lo = 0
	}
	hi = j + b.ml
	if hi > b.n-1 {
		hi = b.n - 1
	}
	return lo, hi
}

func (b *BandStore) Zero() {
	for i := range b.data {
		b.data[i] = 0
	}
}
