//go:build cgo

// Package highs adapts the HiGHS solver (github.com/lanl/highs, cgo) to the
// lp.Solver boundary. Prefer it over the default simplex adapter for large
// programs.
package highs

import (
	"context"
	"fmt"
	"math"

	hs "github.com/lanl/highs"

	"github.com/vcsplib/osac/lp"
)

// Solver solves lp.Programs with HiGHS.
type Solver struct{}

// New returns a HiGHS-backed solver.
func New() *Solver {
	return &Solver{}
}

// Solve translates p into a HiGHS model in sparse triplet form and solves it.
// Context cancellation is reported as StatusTimeLimit; a solve in flight is
// abandoned, not interrupted.
func (s *Solver) Solve(ctx context.Context, p lp.Program) (lp.Solution, error) {
	return lp.Run(ctx, func() (lp.Solution, error) {
		return s.solve(p)
	})
}

func (s *Solver) solve(p lp.Program) (lp.Solution, error) {
	n := len(p.Columns)
	if n == 0 {
		return lp.Solution{Status: lp.StatusOptimal}, nil
	}

	model := new(hs.Model)
	model.ColCosts = make([]float64, n)
	model.ColLower = make([]float64, n)
	model.ColUpper = make([]float64, n)
	for j := 0; j < n; j++ {
		model.ColLower[j] = math.Inf(-1)
		model.ColUpper[j] = math.Inf(1)
	}
	// HiGHS minimizes; negate and flip the objective back afterwards.
	for _, t := range p.Objective {
		if t.Col < 0 || t.Col >= n {
			return lp.Solution{Status: lp.StatusError}, fmt.Errorf("highs: objective references column %d of %d", t.Col, n)
		}
		model.ColCosts[t.Col] -= t.Coef
	}

	// offset + e(x) >= 0 becomes e(x) >= -offset.
	model.RowLower = make([]float64, len(p.Constraints))
	model.RowUpper = make([]float64, len(p.Constraints))
	for i, con := range p.Constraints {
		for _, t := range con.Expr {
			if t.Col < 0 || t.Col >= n {
				return lp.Solution{Status: lp.StatusError}, fmt.Errorf("highs: constraint %q references column %d of %d", con.Name, t.Col, n)
			}
			model.ConstMatrix = append(model.ConstMatrix, hs.Nonzero{Row: i, Col: t.Col, Val: t.Coef})
		}
		model.RowLower[i] = -con.Offset
		model.RowUpper[i] = math.Inf(1)
	}

	sol, err := model.Solve()
	if err != nil {
		return lp.Solution{Status: lp.StatusError}, fmt.Errorf("highs: %w", err)
	}
	switch sol.Status {
	case hs.Optimal:
		values := make([]float64, n)
		copy(values, sol.ColumnPrimal)
		return lp.Solution{Status: lp.StatusOptimal, Objective: -sol.Objective, Values: values}, nil
	case hs.Infeasible:
		return lp.Solution{Status: lp.StatusInfeasible}, nil
	case hs.Unbounded, hs.UnboundedOrInfeasible:
		return lp.Solution{Status: lp.StatusUnbounded}, nil
	case hs.TimeLimit:
		return lp.Solution{Status: lp.StatusTimeLimit}, nil
	default:
		return lp.Solution{Status: lp.StatusError}, fmt.Errorf("highs: status %v", sol.Status)
	}
}
