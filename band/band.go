// Package band implements the LINPACK-convention banded storage index
// mapping so that the offset arithmetic is written once instead of at
// every call site (see spec §6.4 and §9).
package band

// Width returns the leading dimension (physical row count) of a banded
// matrix with lower bandwidth ml and upper bandwidth mu, stored in the
// LINPACK convention used throughout this module: ldab = 2*ml + mu + 1.
// Index places the logical band in physical rows 0..ml+mu, so the extra
// ml rows are the last ones of each column; nothing in this module
// writes them (linsolve.Band densifies the band before factoring).
func Width(ml, mu int) int {
	return 2*ml + mu + 1
}

// Ldab returns the bandwidth of the unfactored matrix, ml+mu+1, i.e. the
// number of physically meaningful rows before any fill-in from
// factorization.
func Ldab(ml, mu int) int {
	return ml + mu + 1
}

// Index maps the logical (row i, column j), 0-based, of an n×n banded
// matrix with bandwidths ml, mu to its physical row within a column of
// leading dimension Width(ml, mu). ok is false when (i,j) falls outside
// the storable band, i.e. |i-j| > ml (below) or |i-j| > mu (above).
func Index(i, j, ml, mu int) (row int, ok bool) {
	d := i - j
	if d > ml || -d > mu {
		return 0, false
	}
	return mu + d, true
}

// InBand reports whether the logical element (i,j) of an n×n matrix
// with bandwidths ml, mu lies within the storable band.
func InBand(i, j, ml, mu int) bool {
	_, ok := Index(i, j, ml, mu)
	return ok
}
