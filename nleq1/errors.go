package nleq1

import "fmt"

// Return/status codes, matching the conventional NLEQ1 return-code table.
const (
	// Success indicates convergence within RTol.
	Success = 0
	// NotConverged indicates the iteration has not yet converged. SolveStep
	// returns it (with a nil error) after any step that did not converge;
	// Solve returns it as an *Error only under Options.QSucc, when the
	// per-call iteration budget runs out.
	NotConverged = -1
	// IterationLimit indicates NItmax was exceeded.
	IterationLimit = 2
	// DampingTooSmall indicates the corrector loop retried at least once,
	// reducing fc each time, and still found no acceptable step by the
	// time fc reached FcMin.
	DampingTooSmall = 3
	// SingularJacobian indicates factorization failed.
	SingularJacobian = 4
	// NotMonotone indicates the very first trial of a corrector loop was
	// already at or below FcMin and failed the monotonicity test, so no
	// retry was ever possible.
	NotMonotone = 5
	// CallbackFailed indicates the user F or Jacobian callback returned
	// an error.
	CallbackFailed = 10
	// BadDimension indicates n < 1, len(xScal) != len(x), or a State
	// built for a different n.
	BadDimension = 20
	// BadTolerance indicates RTol is not positive or exceeds 0.1. A
	// positive RTol below eps*10*n is clamped upward instead.
	BadTolerance = 21
	// BadScale indicates a negative XScal entry.
	BadScale = 22
	// MissingJacobian indicates JacGen is JacUser but no Jacobian
	// callback was supplied.
	MissingJacobian = 99
)

// Error is returned by Solve for every non-success return code, and by
// SolveStep for every terminal failure code. Callers that need to branch on the code should type-assert via
// errors.As, rather than string-matching Error's message.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("nleq1: %s (code %d)", e.Msg, e.Code)
}

func newError(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}
