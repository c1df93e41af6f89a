// Package vcsp models Valued Constraint Satisfaction Problems: variables with
// finite, ordered domains and a cost tensor mapping every label combination of
// every declared scope to an extended-real cost.
//
// The cost tensor is partitioned by scope arity: a single constant cost (the
// accumulated lower bound), one unary cost function per variable and one n-ary
// cost function per declared scope of arity >= 2. All tensor operations
// (Project, Extend, UnaryProject and their bulk variants) are
// equivalence-preserving: for every complete assignment, the sum
//
//	constant + Σ unary + Σ n-ary
//
// is identical before and after the operation. Operations never mutate their
// receiver; they return a new snapshot sharing the untouched cost tables with
// the old one.
package vcsp
