// Package simplex adapts gonum's dense simplex method to the lp.Solver
// boundary. It is the default solver of the reparameterizer: pure Go, no
// external binary.
package simplex

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/vcsplib/osac/lp"
)

// Solver solves lp.Programs with gonum.org/v1/gonum/optimize/convex/lp.
type Solver struct {
	// Tol overrides the simplex pivot tolerance. Zero keeps gonum's default.
	Tol float64
}

// New returns a Solver with default tolerance.
func New() *Solver {
	return &Solver{}
}

// Solve converts p to standard form and runs the simplex method. Context
// cancellation is reported as StatusTimeLimit; the underlying solve is
// abandoned, not interrupted.
func (s *Solver) Solve(ctx context.Context, p lp.Program) (lp.Solution, error) {
	return lp.Run(ctx, func() (lp.Solution, error) {
		return s.solve(p)
	})
}

// solve builds the standard form
//
//	minimize  c·y   s.t.  A y = b,  y >= 0
//
// with y = [x⁺, x⁻, slack]: each free column x is split into x = x⁺ − x⁻ and
// each constraint offset + e(x) >= 0 becomes −e(x⁺−x⁻) + slack = offset.
func (s *Solver) solve(p lp.Program) (lp.Solution, error) {
	n := len(p.Columns)
	m := len(p.Constraints)

	obj := make([]float64, n)
	for _, t := range p.Objective {
		if t.Col < 0 || t.Col >= n {
			return lp.Solution{Status: lp.StatusError}, fmt.Errorf("simplex: objective references column %d of %d", t.Col, n)
		}
		obj[t.Col] += t.Coef
	}

	if n == 0 {
		return lp.Solution{Status: lp.StatusOptimal}, nil
	}
	if m == 0 {
		for _, c := range obj {
			if c != 0 {
				return lp.Solution{Status: lp.StatusUnbounded}, nil
			}
		}
		return lp.Solution{Status: lp.StatusOptimal, Values: make([]float64, n)}, nil
	}

	cols := 2*n + m
	c := make([]float64, cols)
	for j, v := range obj {
		c[j] = -v // maximize p.Objective == minimize its negation
		c[n+j] = v
	}

	a := mat.NewDense(m, cols, nil)
	b := make([]float64, m)
	for i, con := range p.Constraints {
		for _, t := range con.Expr {
			if t.Col < 0 || t.Col >= n {
				return lp.Solution{Status: lp.StatusError}, fmt.Errorf("simplex: constraint %q references column %d of %d", con.Name, t.Col, n)
			}
			a.Set(i, t.Col, a.At(i, t.Col)-t.Coef)
			a.Set(i, n+t.Col, a.At(i, n+t.Col)+t.Coef)
		}
		a.Set(i, 2*n+i, 1)
		b[i] = con.Offset
	}

	optF, optX, err := gonumlp.Simplex(c, a, b, s.Tol, nil)
	switch {
	case errors.Is(err, gonumlp.ErrInfeasible):
		return lp.Solution{Status: lp.StatusInfeasible}, nil
	case errors.Is(err, gonumlp.ErrUnbounded):
		return lp.Solution{Status: lp.StatusUnbounded}, nil
	case err != nil:
		return lp.Solution{Status: lp.StatusError}, fmt.Errorf("simplex: %w", err)
	}

	values := make([]float64, n)
	for j := range values {
		values[j] = optX[j] - optX[n+j]
	}
	return lp.Solution{Status: lp.StatusOptimal, Objective: -optF, Values: values}, nil
}
