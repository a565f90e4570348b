package nleq1

import "github.com/sonVishal/nleq1/matrix"

// Func evaluates F(x) into fx. A non-nil error aborts the current step
// and is surfaced as return code 10.
type Func func(fx, x []float64) error

// JacDenseFunc fills a dense Jacobian store at x. Required when
// Options.JacGen is JacUser and Options.MStor is StorDense.
type JacDenseFunc func(a *matrix.DenseStore, x []float64) error

// JacBandFunc fills a banded Jacobian store at x. Required when
// Options.JacGen is JacUser and Options.MStor is StorBand.
type JacBandFunc func(a *matrix.BandStore, x []float64) error

// Warn receives a warning code and message whenever the driver clamps
// an input or an intermediate quantity to a valid range. A nil Warn is
// silent.
type Warn func(code, msg string)
