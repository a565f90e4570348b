// Package rowscale implements SCRF/SCRB: left-multiplying the Jacobian
// by diag(fw), where fw[k] is the reciprocal of row k's infinity norm,
// restricted to that row's nonzero (or in-band) support.
package rowscale

import (
	"math"

	"github.com/sonVishal/nleq1/matrix"
)

// Apply computes fw from store's current contents and left-scales store
// in place: store[i,:] *= fw[i]. A row with no nonzero entries in its
// support is left untouched and fw[i] is set to 1.
func Apply(store matrix.Store, fw []float64) {
	n := store.N()
	for i := 0; i < n; i++ {
		lo, hi := store.RowRange(i)
		var rowMax float64
		for j := lo; j <= hi; j++ {
			if a := math.Abs(store.At(i, j)); a > rowMax {
				rowMax = a
			}
		}
		if rowMax == 0 {
			fw[i] = 1
			continue
		}
		fw[i] = 1 / rowMax
		for j := lo; j <= hi; j++ {
			store.Set(i, j, store.At(i, j)*fw[i])
		}
	}
}
