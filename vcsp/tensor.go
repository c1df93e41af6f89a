package vcsp

import (
	"fmt"
	"maps"
	"slices"
)

// Tensor is the full collection of cost functions of a VCSP instance: the
// constant cost, one unary cost function per variable and one dense n-ary cost
// table per declared scope.
//
// N-ary tables are stored flat in row-major order: the first variable of the
// scope is the outermost loop, labels iterate in domain order. Tensors are
// immutable; every operation returns a new snapshot and shares the cost tables
// it did not touch.
type Tensor[V comparable, L comparable] struct {
	vars    []V
	domains map[V][]L
	pos     map[V]map[L]int // label -> position in domain order

	constant Cost
	unary    map[V][]Cost // indexed by label position
	scopes   [][]V        // declared n-ary scopes, in declaration order
	tables   [][]Cost     // parallel to scopes, flat row-major
}

// ScopeShift is the per-scope slice of an LP solution: for each
// (variable, label) pair of the scope, the net amount to move from the scope's
// n-ary cost function into that variable's unary cost function. Negative
// values move cost in the extend direction. Pairs absent from Values shift by
// zero.
type ScopeShift[V comparable, L comparable] struct {
	Scope  []V
	Values map[V]map[L]Cost
}

// clone returns a snapshot whose unary map and table list can be repointed
// without affecting t. The slices they reference are still shared and must be
// copied before being written to.
func (t *Tensor[V, L]) clone() *Tensor[V, L] {
	cp := *t
	cp.unary = maps.Clone(t.unary)
	cp.tables = slices.Clone(t.tables)
	return &cp
}

// Variables returns the variables in declaration order.
func (t *Tensor[V, L]) Variables() []V {
	return slices.Clone(t.vars)
}

// Domain returns the ordered domain of v.
func (t *Tensor[V, L]) Domain(v V) ([]L, error) {
	dom, ok := t.domains[v]
	if !ok {
		return nil, fmt.Errorf("domain of %v: %w", v, ErrNotFound)
	}
	return slices.Clone(dom), nil
}

// Scopes returns the declared n-ary scopes in declaration order.
func (t *Tensor[V, L]) Scopes() [][]V {
	res := make([][]V, len(t.scopes))
	for i, s := range t.scopes {
		res[i] = slices.Clone(s)
	}
	return res
}

// Constant returns the arity-0 cost, the instance's accumulated lower bound.
func (t *Tensor[V, L]) Constant() Cost {
	return t.constant
}

// Unary returns the unary cost of label for variable v.
func (t *Tensor[V, L]) Unary(v V, label L) (Cost, error) {
	li, err := t.labelPos(v, label)
	if err != nil {
		return 0, err
	}
	return t.unary[v][li], nil
}

// UnaryCosts returns the unary cost function of v, in domain order.
func (t *Tensor[V, L]) UnaryCosts(v V) ([]Cost, error) {
	row, ok := t.unary[v]
	if !ok {
		return nil, fmt.Errorf("unary costs of %v: %w", v, ErrNotFound)
	}
	return slices.Clone(row), nil
}

// Nary returns the cost of one assignment of an n-ary scope. labels must hold
// one label per scope variable, in scope order.
func (t *Tensor[V, L]) Nary(scope []V, labels []L) (Cost, error) {
	si, err := t.scopeIndex(scope)
	if err != nil {
		return 0, err
	}
	if len(labels) != len(scope) {
		return 0, fmt.Errorf("assignment of %v has %d labels: %w", scope, len(labels), ErrInvalidScope)
	}
	flat := 0
	for i, v := range scope {
		li, err := t.labelPos(v, labels[i])
		if err != nil {
			return 0, err
		}
		flat = flat*len(t.domains[v]) + li
	}
	return t.tables[si][flat], nil
}

// Flatten returns the dense cost table of scope in row-major order, outer loop
// over the first variable's labels. The result is a copy; no compatibility
// guarantee is made beyond in-process inspection.
func (t *Tensor[V, L]) Flatten(scope []V) ([]Cost, error) {
	si, err := t.scopeIndex(scope)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.tables[si]), nil
}

// TotalCost evaluates the full cost of one complete assignment:
// constant + every unary cost + every n-ary cost. This is the quantity every
// tensor operation preserves.
func (t *Tensor[V, L]) TotalCost(assignment map[V]L) (Cost, error) {
	total := t.constant
	for _, v := range t.vars {
		label, ok := assignment[v]
		if !ok {
			return 0, fmt.Errorf("assignment misses variable %v: %w", v, ErrNotFound)
		}
		li, err := t.labelPos(v, label)
		if err != nil {
			return 0, err
		}
		total += t.unary[v][li]
	}
	for si, scope := range t.scopes {
		flat := 0
		for _, v := range scope {
			li, err := t.labelPos(v, assignment[v])
			if err != nil {
				return 0, err
			}
			flat = flat*len(t.domains[v]) + li
		}
		total += t.tables[si][flat]
	}
	return total, nil
}

// UnaryProject moves value from every unary cost of v into the constant:
// each label's unary cost decreases by value, the constant increases by value.
func (t *Tensor[V, L]) UnaryProject(v V, value Cost) (*Tensor[V, L], error) {
	if !value.isFinite() {
		return nil, fmt.Errorf("unary project %v by %v: %w", v, value, ErrNonFiniteValue)
	}
	row, ok := t.unary[v]
	if !ok {
		return nil, fmt.Errorf("unary project: variable %v: %w", v, ErrNotFound)
	}
	nt := t.clone()
	nr := slices.Clone(row)
	for i := range nr {
		nr[i] -= value
	}
	nt.unary[v] = nr
	nt.constant += value
	return nt, nil
}

// Project moves value from the n-ary cost function of scope into the unary
// cost of (v, label): every assignment of scope whose component at v equals
// label decreases by value, and the unary cost of (v, label) increases by
// value. The scope must have arity >= 2 and contain v.
func (t *Tensor[V, L]) Project(scope []V, v V, label L, value Cost) (*Tensor[V, L], error) {
	return t.shift(scope, v, label, value)
}

// Extend is the inverse movement of Project: it moves value from the unary
// cost of (v, label) back into the matching assignments of scope's n-ary cost
// function.
func (t *Tensor[V, L]) Extend(scope []V, v V, label L, value Cost) (*Tensor[V, L], error) {
	return t.shift(scope, v, label, -value)
}

// shift applies a project of value (extend when value is negative).
func (t *Tensor[V, L]) shift(scope []V, v V, label L, value Cost) (*Tensor[V, L], error) {
	if !value.isFinite() {
		return nil, fmt.Errorf("shift %v at (%v, %v) by %v: %w", scope, v, label, value, ErrNonFiniteValue)
	}
	at := slices.Index(scope, v)
	if len(scope) < 2 || at < 0 {
		return nil, fmt.Errorf("scope %v with variable %v: %w", scope, v, ErrInvalidScope)
	}
	si, err := t.scopeIndex(scope)
	if err != nil {
		return nil, err
	}
	li, err := t.labelPos(v, label)
	if err != nil {
		return nil, err
	}

	nt := t.clone()
	table := slices.Clone(t.tables[si])
	t.forEachMatching(scope, at, li, func(flat int) {
		table[flat] -= value
	})
	nt.tables[si] = table

	ur := slices.Clone(t.unary[v])
	ur[li] += value
	nt.unary[v] = ur
	return nt, nil
}

// BulkUnaryProject applies one UnaryProject per entry of values, all computed
// against the pre-mutation tensor. Iteration follows variable declaration
// order so the result is deterministic; the operations commute regardless.
func (t *Tensor[V, L]) BulkUnaryProject(values map[V]Cost) (*Tensor[V, L], error) {
	for v, value := range values {
		if _, ok := t.unary[v]; !ok {
			return nil, fmt.Errorf("bulk unary project: variable %v: %w", v, ErrNotFound)
		}
		if !value.isFinite() {
			return nil, fmt.Errorf("bulk unary project %v by %v: %w", v, value, ErrNonFiniteValue)
		}
	}
	nt := t.clone()
	for _, v := range t.vars {
		value, ok := values[v]
		if !ok {
			continue
		}
		nr := slices.Clone(nt.unary[v])
		for i := range nr {
			nr[i] -= value
		}
		nt.unary[v] = nr
		nt.constant += value
	}
	return nt, nil
}

// BulkProjectExtend applies one LP solution's worth of project/extend moves:
// for every scope, every (variable, label) value is added to that variable's
// unary cost and subtracted from every matching assignment of the scope's
// n-ary table. The whole batch is validated before any table is touched and
// every shift is a constant read from shifts, so scopes sharing a variable
// all see the same starting tensor.
func (t *Tensor[V, L]) BulkProjectExtend(shifts []ScopeShift[V, L]) (*Tensor[V, L], error) {
	type resolved struct {
		si     int
		values [][]Cost // per scope position, per label position
	}
	batch := make([]resolved, len(shifts))
	for k, shift := range shifts {
		if len(shift.Scope) < 2 {
			return nil, fmt.Errorf("bulk project/extend: scope %v has arity %d: %w",
				shift.Scope, len(shift.Scope), ErrInvalidScope)
		}
		si, err := t.scopeIndex(shift.Scope)
		if err != nil {
			return nil, err
		}
		values := make([][]Cost, len(shift.Scope))
		for i, v := range shift.Scope {
			values[i] = make([]Cost, len(t.domains[v]))
		}
		for v, byLabel := range shift.Values {
			at := slices.Index(shift.Scope, v)
			if at < 0 {
				return nil, fmt.Errorf("bulk project/extend: variable %v not in scope %v: %w",
					v, shift.Scope, ErrInvalidScope)
			}
			for label, value := range byLabel {
				li, err := t.labelPos(v, label)
				if err != nil {
					return nil, err
				}
				if !value.isFinite() {
					return nil, fmt.Errorf("bulk project/extend %v at (%v, %v) by %v: %w",
						shift.Scope, v, label, value, ErrNonFiniteValue)
				}
				values[at][li] = value
			}
		}
		batch[k] = resolved{si: si, values: values}
	}

	nt := t.clone()
	for k, shift := range shifts {
		scope, values := shift.Scope, batch[k].values

		for i, v := range scope {
			nr := slices.Clone(nt.unary[v])
			for li := range nr {
				nr[li] += values[i][li]
			}
			nt.unary[v] = nr
		}

		table := slices.Clone(nt.tables[batch[k].si])
		sizes := make([]int, len(scope))
		for i, v := range scope {
			sizes[i] = len(t.domains[v])
		}
		pos := make([]int, len(scope))
		for flat := range table {
			for i := range scope {
				table[flat] -= values[i][pos[i]]
			}
			increment(pos, sizes)
		}
		nt.tables[batch[k].si] = table
	}
	return nt, nil
}

func (t *Tensor[V, L]) labelPos(v V, label L) (int, error) {
	byLabel, ok := t.pos[v]
	if !ok {
		return 0, fmt.Errorf("variable %v: %w", v, ErrNotFound)
	}
	li, ok := byLabel[label]
	if !ok {
		return 0, fmt.Errorf("label %v of variable %v: %w", label, v, ErrNotFound)
	}
	return li, nil
}

func (t *Tensor[V, L]) scopeIndex(scope []V) (int, error) {
	for si, s := range t.scopes {
		if slices.Equal(s, scope) {
			return si, nil
		}
	}
	return 0, fmt.Errorf("scope %v: %w", scope, ErrNotFound)
}

// forEachMatching visits the flat index of every assignment of scope whose
// component at position at has label position li.
func (t *Tensor[V, L]) forEachMatching(scope []V, at, li int, fn func(flat int)) {
	outer, inner := 1, 1
	for i, v := range scope {
		switch {
		case i < at:
			outer *= len(t.domains[v])
		case i > at:
			inner *= len(t.domains[v])
		}
	}
	size := len(t.domains[scope[at]])
	for o := 0; o < outer; o++ {
		base := (o*size + li) * inner
		for k := 0; k < inner; k++ {
			fn(base + k)
		}
	}
}

// increment advances a mixed-radix counter in row-major order, innermost
// digit last.
func increment(pos, sizes []int) {
	for i := len(pos) - 1; i >= 0; i-- {
		pos[i]++
		if pos[i] < sizes[i] {
			return
		}
		pos[i] = 0
	}
}
