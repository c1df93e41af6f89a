package vcsp

import "math"

// Cost is an extended real number in [0, +Inf]. The infinite cost marks a
// forbidden label combination.
//
// Arithmetic follows the extended-real convention Inf ± finite = Inf, so
// projecting out of, or extending into, a forbidden cell leaves it forbidden.
// Operations only ever shift cells by finite values (see ErrNonFiniteValue),
// which rules out the undefined Inf - Inf case.
type Cost float64

// Forbidden is the infinite cost.
var Forbidden = Cost(math.Inf(1))

// IsForbidden reports whether c is the infinite cost.
func (c Cost) IsForbidden() bool {
	return math.IsInf(float64(c), 1)
}

func (c Cost) isFinite() bool {
	return !math.IsInf(float64(c), 0) && !math.IsNaN(float64(c))
}
