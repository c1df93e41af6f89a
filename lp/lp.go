// Package lp defines the value types of a linear program and the abstract
// solver boundary consumed by the OSAC reparameterizer.
//
// A Program is a maximization over named real columns, unbounded in both
// directions, subject to constraints of the form
//
//	offset + Σ coef·column >= 0
//
// Solvers are expected to be side-effect free with respect to the Program:
// one Program in, one Solution out.
package lp

import "context"

// Status is the outcome reported by a solver.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusTimeLimit
	StatusError
)

// String returns the string representation of a solver outcome.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusTimeLimit:
		return "time limit"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Term is one coefficient applied to one column.
type Term struct {
	Col  int
	Coef float64
}

// A LinearExpression is a linear combination of Term.
type LinearExpression []Term

// Clone returns a copy of the underlying slice.
func (l LinearExpression) Clone() LinearExpression {
	res := make(LinearExpression, len(l))
	copy(res, l)
	return res
}

// Column is one named decision variable, free in both directions.
type Column struct {
	Name string
}

// Constraint requires Offset plus the value of Expr to be nonnegative.
type Constraint struct {
	Name   string
	Expr   LinearExpression
	Offset float64
}

// Program is a maximization linear program.
type Program struct {
	Columns     []Column
	Objective   LinearExpression
	Constraints []Constraint
}

// AddColumn declares a new free column and returns its index.
func (p *Program) AddColumn(name string) int {
	p.Columns = append(p.Columns, Column{Name: name})
	return len(p.Columns) - 1
}

// AddConstraint appends the requirement offset + expr >= 0.
func (p *Program) AddConstraint(name string, expr LinearExpression, offset float64) {
	p.Constraints = append(p.Constraints, Constraint{Name: name, Expr: expr, Offset: offset})
}

// Solution is a solver outcome. Objective and Values are meaningful only when
// Status is StatusOptimal; Values then holds one value per Program column.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Solver solves a Program. Implementations map context cancellation and
// deadline expiry to StatusTimeLimit; a non-nil error is reserved for
// malformed programs and internal solver failures.
type Solver interface {
	Solve(ctx context.Context, p Program) (Solution, error)
}

// Run executes solve bounded by ctx. It returns StatusTimeLimit as soon as
// ctx is done; a solve still in flight is abandoned. Adapters over solvers
// without native interruption use this as their outer loop.
func Run(ctx context.Context, solve func() (Solution, error)) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{Status: StatusTimeLimit}, nil
	}
	type outcome struct {
		sol Solution
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		sol, err := solve()
		done <- outcome{sol, err}
	}()
	select {
	case <-ctx.Done():
		return Solution{Status: StatusTimeLimit}, nil
	case out := <-done:
		return out.sol, out.err
	}
}
