// Package osac computes Optimal Soft Arc Consistency reparameterizations of
// VCSP instances: equivalence-preserving transformations of the cost tensor
// that push the maximal provable lower bound into the constant term while the
// total cost of every complete assignment stays unchanged.
//
// One pass works in three steps:
//   - Formulate builds a linear program from a vcsp.Model whose optimum is the
//     total cost extractable into the constant term.
//   - an lp.Solver (gonum simplex by default, HiGHS optionally) solves it.
//   - Reparameterize applies the optimal solution back onto the cost tensor
//     through bulk project/extend operations and returns a new model.
//
// A model whose program optimum is (near) zero is already OSAC; running
// Reparameterize on the output of a successful pass therefore reports no
// change. ReparameterizeToFixedPoint wraps that loop.
package osac
