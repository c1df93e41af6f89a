package osac

import "errors"

var (
	// ErrSolverTimeout is returned when the LP solver exhausted its time
	// budget. No reparameterization is applied.
	ErrSolverTimeout = errors.New("osac: lp solver hit the time limit")

	// ErrSolverInfeasible is returned when the LP solver reported an
	// infeasible program. The OSAC program always admits the all-zero point,
	// so this indicates a solver-side failure.
	ErrSolverInfeasible = errors.New("osac: lp solver reported an infeasible program")

	// ErrSolverUnbounded is returned when the LP solver reported an unbounded
	// program.
	ErrSolverUnbounded = errors.New("osac: lp solver reported an unbounded program")

	// ErrSolver is returned for any other solver failure.
	ErrSolver = errors.New("osac: lp solver failed")
)
