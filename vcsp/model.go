package vcsp

import (
	"fmt"
	"slices"
)

// CostTable is one dense n-ary cost function of a raw cost specification.
// Values holds one cost per assignment of Scope, flat in row-major order:
// the first scope variable is the outermost loop, labels in domain order.
type CostTable[V comparable, L comparable] struct {
	Scope  []V
	Values []Cost
}

// Costs is a sparse cost specification. Only n-ary tables need to be
// supplied; the constant defaults to zero and so does every unary cost.
type Costs[V comparable, L comparable] struct {
	Constant Cost
	Unary    map[V][]Cost // optional, dense in domain order
	Tables   []CostTable[V, L]
}

// Model is a validated VCSP instance: ordered variables, their domains and a
// cost tensor. Models are immutable; transformations produce new models
// sharing variables and domains.
type Model[V comparable, L comparable] struct {
	vars    []V
	domains map[V][]L
	tensor  *Tensor[V, L]
}

// NewModel validates vars, domains and costs and assembles the cost tensor:
// the constant, one unary cost function per variable (zero unless supplied)
// and the supplied n-ary tables.
//
// Construction fails with ErrShapeMismatch when a table or unary function does
// not cover exactly the Cartesian product of its scope's domains, with
// ErrInvalidScope for malformed scopes and with ErrNotFound for unknown
// variables.
func NewModel[V comparable, L comparable](vars []V, domains map[V][]L, costs Costs[V, L]) (*Model[V, L], error) {
	m := &Model[V, L]{
		vars:    slices.Clone(vars),
		domains: make(map[V][]L, len(vars)),
	}
	pos := make(map[V]map[L]int, len(vars))
	for _, v := range vars {
		if _, ok := pos[v]; ok {
			return nil, fmt.Errorf("duplicate variable %v: %w", v, ErrShapeMismatch)
		}
		dom := domains[v]
		if len(dom) == 0 {
			return nil, fmt.Errorf("variable %v has an empty domain: %w", v, ErrShapeMismatch)
		}
		byLabel := make(map[L]int, len(dom))
		for li, label := range dom {
			if _, ok := byLabel[label]; ok {
				return nil, fmt.Errorf("duplicate label %v in domain of %v: %w", label, v, ErrShapeMismatch)
			}
			byLabel[label] = li
		}
		m.domains[v] = slices.Clone(dom)
		pos[v] = byLabel
	}

	unary := make(map[V][]Cost, len(vars))
	for _, v := range m.vars {
		unary[v] = make([]Cost, len(m.domains[v]))
	}
	for v, row := range costs.Unary {
		dom, ok := m.domains[v]
		if !ok {
			return nil, fmt.Errorf("unary costs for unknown variable %v: %w", v, ErrNotFound)
		}
		if len(row) != len(dom) {
			return nil, fmt.Errorf("unary costs of %v hold %d values for %d labels: %w",
				v, len(row), len(dom), ErrShapeMismatch)
		}
		unary[v] = slices.Clone(row)
	}

	scopes := make([][]V, 0, len(costs.Tables))
	tables := make([][]Cost, 0, len(costs.Tables))
	for _, table := range costs.Tables {
		if len(table.Scope) < 2 {
			return nil, fmt.Errorf("cost table scope %v has arity %d: %w",
				table.Scope, len(table.Scope), ErrInvalidScope)
		}
		want := 1
		seen := make(map[V]struct{}, len(table.Scope))
		for _, v := range table.Scope {
			dom, ok := m.domains[v]
			if !ok {
				return nil, fmt.Errorf("cost table scope %v: variable %v: %w", table.Scope, v, ErrNotFound)
			}
			if _, dup := seen[v]; dup {
				return nil, fmt.Errorf("cost table scope %v repeats variable %v: %w",
					table.Scope, v, ErrInvalidScope)
			}
			seen[v] = struct{}{}
			want *= len(dom)
		}
		for _, s := range scopes {
			if slices.Equal(s, table.Scope) {
				return nil, fmt.Errorf("cost table scope %v declared twice: %w", table.Scope, ErrInvalidScope)
			}
		}
		if len(table.Values) != want {
			return nil, fmt.Errorf("cost table %v holds %d values for %d assignments: %w",
				table.Scope, len(table.Values), want, ErrShapeMismatch)
		}
		scopes = append(scopes, slices.Clone(table.Scope))
		tables = append(tables, slices.Clone(table.Values))
	}

	m.tensor = &Tensor[V, L]{
		vars:     m.vars,
		domains:  m.domains,
		pos:      pos,
		constant: costs.Constant,
		unary:    unary,
		scopes:   scopes,
		tables:   tables,
	}
	return m, nil
}

// Variables returns the variables in declaration order.
func (m *Model[V, L]) Variables() []V {
	return slices.Clone(m.vars)
}

// Domain returns the ordered domain of v.
func (m *Model[V, L]) Domain(v V) ([]L, error) {
	dom, ok := m.domains[v]
	if !ok {
		return nil, fmt.Errorf("domain of %v: %w", v, ErrNotFound)
	}
	return slices.Clone(dom), nil
}

// Tensor returns the model's cost tensor.
func (m *Model[V, L]) Tensor() *Tensor[V, L] {
	return m.tensor
}

// TotalCost evaluates the full cost of one complete assignment.
func (m *Model[V, L]) TotalCost(assignment map[V]L) (Cost, error) {
	return m.tensor.TotalCost(assignment)
}

// WithTensor returns a model with the same variables and domains but a tensor
// derived from this model's tensor through equivalence-preserving operations.
func (m *Model[V, L]) WithTensor(t *Tensor[V, L]) (*Model[V, L], error) {
	if !slices.Equal(t.vars, m.vars) {
		return nil, fmt.Errorf("tensor variables %v differ from model variables %v: %w",
			t.vars, m.vars, ErrShapeMismatch)
	}
	return &Model[V, L]{vars: m.vars, domains: m.domains, tensor: t}, nil
}
