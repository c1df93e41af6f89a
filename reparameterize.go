package osac

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vcsplib/osac/lp"
	"github.com/vcsplib/osac/vcsp"
)

// Result is the outcome of one successful reparameterization pass.
type Result[V comparable, L comparable] struct {
	// Model is the reparameterized model. When Changed is false it is the
	// input model itself: a model already OSAC is returned untouched rather
	// than run through a no-op transformation that could accumulate floating
	// error.
	Model *vcsp.Model[V, L]

	// Objective is the LP optimum: the amount of cost moved into the constant
	// term by this pass.
	Objective float64

	// Changed reports whether a transformation was applied.
	Changed bool

	// Passes is the number of LP solves performed (always 1 for
	// Reparameterize).
	Passes int
}

// Reparameterize runs one OSAC pass on m: it formulates the OSAC linear
// program, solves it within the configured time budget and applies the
// optimal solution onto a fresh snapshot of the cost tensor.
//
// When the solver does not report an optimal solution no result is produced:
// the returned error wraps ErrSolverTimeout, ErrSolverInfeasible,
// ErrSolverUnbounded or ErrSolver and the input model is left untouched.
func Reparameterize[V comparable, L comparable](ctx context.Context, m *vcsp.Model[V, L], opts ...Option) (*Result[V, L], error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	res, err := onePass(ctx, m, cfg)
	if err != nil {
		return nil, err
	}
	res.Passes = 1
	return res, nil
}

// ReparameterizeToFixedPoint re-invokes the pass until the LP objective falls
// within tolerance of zero, then returns the last result. The pass count is
// capped by WithMaxPasses; exceeding the cap is reported as an error since
// the objective should vanish on the pass after a successful one.
func ReparameterizeToFixedPoint[V comparable, L comparable](ctx context.Context, m *vcsp.Model[V, L], opts ...Option) (*Result[V, L], error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	current := m
	for pass := 1; pass <= cfg.maxPasses; pass++ {
		res, err := onePass(ctx, current, cfg)
		if err != nil {
			return nil, err
		}
		res.Passes = pass
		if !res.Changed {
			return res, nil
		}
		current = res.Model
		if pass == cfg.maxPasses {
			return nil, fmt.Errorf("osac: no fixed point after %d passes (objective %v)", pass, res.Objective)
		}
	}
	return nil, fmt.Errorf("osac: max passes must be at least 1")
}

func onePass[V comparable, L comparable](ctx context.Context, m *vcsp.Model[V, L], cfg config) (*Result[V, L], error) {
	prog, ix, err := Formulate(m)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug().
		Int("columns", len(prog.Columns)).
		Int("constraints", len(prog.Constraints)).
		Msg("formulated osac lp")

	solveCtx, cancel := context.WithTimeout(ctx, cfg.budget)
	defer cancel()
	start := time.Now()
	sol, err := cfg.solver.Solve(solveCtx, prog)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolver, err)
	}
	switch sol.Status {
	case lp.StatusOptimal:
	case lp.StatusTimeLimit:
		return nil, fmt.Errorf("%w after %s", ErrSolverTimeout, time.Since(start).Round(time.Millisecond))
	case lp.StatusInfeasible:
		return nil, ErrSolverInfeasible
	case lp.StatusUnbounded:
		return nil, ErrSolverUnbounded
	default:
		return nil, fmt.Errorf("%w: status %v", ErrSolver, sol.Status)
	}
	cfg.log.Debug().
		Float64("objective", sol.Objective).
		Dur("took", time.Since(start)).
		Msg("solved osac lp")

	if math.Abs(sol.Objective) < cfg.tolerance {
		return &Result[V, L]{Model: m, Objective: sol.Objective}, nil
	}

	tensor, err := m.Tensor().BulkUnaryProject(ix.UnaryValues(sol))
	if err != nil {
		return nil, fmt.Errorf("osac: apply unary projections: %w", err)
	}
	tensor, err = tensor.BulkProjectExtend(ix.ScopeShifts(sol))
	if err != nil {
		return nil, fmt.Errorf("osac: apply scope shifts: %w", err)
	}
	model, err := m.WithTensor(tensor)
	if err != nil {
		return nil, err
	}
	return &Result[V, L]{Model: model, Objective: sol.Objective, Changed: true}, nil
}
