package osac

import (
	"fmt"
	"slices"

	"github.com/vcsplib/osac/lp"
	"github.com/vcsplib/osac/vcsp"
)

// Index maps the columns of a formulated program back to the tensor
// quantities they move: one u column per variable (unary function into the
// constant) and one p column per scope, scope variable and label (n-ary
// function into a unary function).
type Index[V comparable, L comparable] struct {
	vars    []V
	domains map[V][]L
	scopes  [][]V
	u       []int     // by variable order
	p       [][][]int // by scope order, scope position, label position
}

// Formulate builds the OSAC linear program of m:
//
//	maximize   Σ_v u[v]
//	subject to unary(v,a) − u[v] + Σ_{s∋v} p[s][v][a]  >= 0   for every (v,a)
//	           cost(s,t)  − Σ_{v∈s} p[s][v][t[v]]      >= 0   for every finite
//	                                                          assignment t of s
//
// Forbidden (infinite) costs impose no constraint: the cell can absorb any
// finite shift without becoming negative. Column and constraint order is
// deterministic, following variable, scope and domain declaration order.
//
// Formulate retains no state on the model; callers own the returned program
// for the duration of one solve.
func Formulate[V comparable, L comparable](m *vcsp.Model[V, L]) (lp.Program, *Index[V, L], error) {
	t := m.Tensor()
	vars := m.Variables()
	scopes := t.Scopes()

	ix := &Index[V, L]{vars: vars, scopes: scopes, domains: make(map[V][]L, len(vars))}
	for _, v := range vars {
		dom, err := m.Domain(v)
		if err != nil {
			return lp.Program{}, nil, err
		}
		ix.domains[v] = dom
	}

	var prog lp.Program
	ix.u = make([]int, len(vars))
	for vi, v := range vars {
		ix.u[vi] = prog.AddColumn(fmt.Sprintf("u[%v]", v))
	}
	ix.p = make([][][]int, len(scopes))
	for si, scope := range scopes {
		ix.p[si] = make([][]int, len(scope))
		for pi, v := range scope {
			dom := ix.domains[v]
			ix.p[si][pi] = make([]int, len(dom))
			for li, label := range dom {
				ix.p[si][pi][li] = prog.AddColumn(fmt.Sprintf("p[%v][%v][%v]", scope, v, label))
			}
		}
	}

	obj := make(lp.LinearExpression, len(vars))
	for vi := range vars {
		obj[vi] = lp.Term{Col: ix.u[vi], Coef: 1}
	}
	prog.Objective = obj

	for vi, v := range vars {
		for li, label := range ix.domains[v] {
			cost, err := t.Unary(v, label)
			if err != nil {
				return lp.Program{}, nil, err
			}
			if cost.IsForbidden() {
				continue
			}
			expr := lp.LinearExpression{{Col: ix.u[vi], Coef: -1}}
			for si, scope := range scopes {
				if pi := slices.Index(scope, v); pi >= 0 {
					expr = append(expr, lp.Term{Col: ix.p[si][pi][li], Coef: 1})
				}
			}
			prog.AddConstraint(fmt.Sprintf("%v %v", v, label), expr, float64(cost))
		}
	}

	for si, scope := range scopes {
		costs, err := t.Flatten(scope)
		if err != nil {
			return lp.Program{}, nil, err
		}
		sizes := make([]int, len(scope))
		for i, v := range scope {
			sizes[i] = len(ix.domains[v])
		}
		pos := make([]int, len(scope))
		for _, cost := range costs {
			if !cost.IsForbidden() {
				expr := make(lp.LinearExpression, len(scope))
				labels := make([]L, len(scope))
				for i := range scope {
					expr[i] = lp.Term{Col: ix.p[si][i][pos[i]], Coef: -1}
					labels[i] = ix.domains[scope[i]][pos[i]]
				}
				prog.AddConstraint(fmt.Sprintf("%v %v", scope, labels), expr, float64(cost))
			}
			advance(pos, sizes)
		}
	}
	return prog, ix, nil
}

// UnaryValues reads the optimal u values out of a solution, keyed by
// variable.
func (ix *Index[V, L]) UnaryValues(sol lp.Solution) map[V]vcsp.Cost {
	values := make(map[V]vcsp.Cost, len(ix.vars))
	for vi, v := range ix.vars {
		values[v] = vcsp.Cost(sol.Values[ix.u[vi]])
	}
	return values
}

// ScopeShifts reads the optimal p values out of a solution, one ScopeShift
// per declared scope in declaration order.
func (ix *Index[V, L]) ScopeShifts(sol lp.Solution) []vcsp.ScopeShift[V, L] {
	shifts := make([]vcsp.ScopeShift[V, L], len(ix.scopes))
	for si, scope := range ix.scopes {
		values := make(map[V]map[L]vcsp.Cost, len(scope))
		for pi, v := range scope {
			byLabel := make(map[L]vcsp.Cost, len(ix.domains[v]))
			for li, label := range ix.domains[v] {
				byLabel[label] = vcsp.Cost(sol.Values[ix.p[si][pi][li]])
			}
			values[v] = byLabel
		}
		shifts[si] = vcsp.ScopeShift[V, L]{Scope: scope, Values: values}
	}
	return shifts
}

// advance steps a mixed-radix counter in row-major order.
func advance(pos, sizes []int) {
	for i := len(pos) - 1; i >= 0; i-- {
		pos[i]++
		if pos[i] < sizes[i] {
			return
		}
		pos[i] = 0
	}
}
