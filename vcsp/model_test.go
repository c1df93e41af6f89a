package vcsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelDefaults(t *testing.T) {
	m, err := NewModel(
		[]int{0, 1},
		map[int][]int{0: {0, 1}, 1: {0, 1, 2}},
		Costs[int, int]{
			Tables: []CostTable[int, int]{
				{Scope: []int{0, 1}, Values: []Cost{0, 1, 2, 3, 4, 5}},
			},
		},
	)
	require.NoError(t, err)

	tr := m.Tensor()
	assert.Equal(t, Cost(0), tr.Constant())
	for _, v := range m.Variables() {
		costs, err := tr.UnaryCosts(v)
		require.NoError(t, err)
		dom, err := m.Domain(v)
		require.NoError(t, err)
		assert.Equal(t, make([]Cost, len(dom)), costs, "unary costs of %d", v)
	}
	assert.Equal(t, [][]int{{0, 1}}, tr.Scopes())
}

func TestNewModelValidation(t *testing.T) {
	vars := []int{0, 1}
	domains := map[int][]int{0: {0, 1}, 1: {0, 1}}

	tests := []struct {
		name    string
		vars    []int
		domains map[int][]int
		costs   Costs[int, int]
		want    error
	}{
		{
			name: "table too short",
			vars: vars, domains: domains,
			costs: Costs[int, int]{Tables: []CostTable[int, int]{{Scope: []int{0, 1}, Values: []Cost{0, 1, 2}}}},
			want:  ErrShapeMismatch,
		},
		{
			name: "table too long",
			vars: vars, domains: domains,
			costs: Costs[int, int]{Tables: []CostTable[int, int]{{Scope: []int{0, 1}, Values: make([]Cost, 5)}}},
			want:  ErrShapeMismatch,
		},
		{
			name: "unary table wrong size",
			vars: vars, domains: domains,
			costs: Costs[int, int]{Unary: map[int][]Cost{0: {1}}},
			want:  ErrShapeMismatch,
		},
		{
			name: "unary table for unknown variable",
			vars: vars, domains: domains,
			costs: Costs[int, int]{Unary: map[int][]Cost{7: {0, 0}}},
			want:  ErrNotFound,
		},
		{
			name: "duplicate variable",
			vars: []int{0, 0}, domains: domains,
			want: ErrShapeMismatch,
		},
		{
			name: "missing domain",
			vars: []int{0, 1, 2}, domains: domains,
			want: ErrShapeMismatch,
		},
		{
			name: "duplicate label",
			vars: vars, domains: map[int][]int{0: {0, 0}, 1: {0, 1}},
			want: ErrShapeMismatch,
		},
		{
			name: "unary scope table",
			vars: vars, domains: domains,
			costs: Costs[int, int]{Tables: []CostTable[int, int]{{Scope: []int{0}, Values: []Cost{0, 0}}}},
			want:  ErrInvalidScope,
		},
		{
			name: "scope repeats variable",
			vars: vars, domains: domains,
			costs: Costs[int, int]{Tables: []CostTable[int, int]{{Scope: []int{0, 0}, Values: make([]Cost, 4)}}},
			want:  ErrInvalidScope,
		},
		{
			name: "scope declared twice",
			vars: vars, domains: domains,
			costs: Costs[int, int]{Tables: []CostTable[int, int]{
				{Scope: []int{0, 1}, Values: make([]Cost, 4)},
				{Scope: []int{0, 1}, Values: make([]Cost, 4)},
			}},
			want: ErrInvalidScope,
		},
		{
			name: "scope with unknown variable",
			vars: vars, domains: domains,
			costs: Costs[int, int]{Tables: []CostTable[int, int]{{Scope: []int{0, 7}, Values: make([]Cost, 4)}}},
			want:  ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.vars, tt.domains, tt.costs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestModelInputIsCopied(t *testing.T) {
	vars := []int{0, 1}
	domains := map[int][]int{0: {0, 1}, 1: {0, 1}}
	values := []Cost{0, 1, 2, 3}
	m, err := NewModel(vars, domains, Costs[int, int]{
		Tables: []CostTable[int, int]{{Scope: []int{0, 1}, Values: values}},
	})
	require.NoError(t, err)

	values[0] = 99
	domains[0][0] = 99
	vars[0] = 99

	assert.Equal(t, []int{0, 1}, m.Variables())
	dom, err := m.Domain(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, dom)
	table, err := m.Tensor().Flatten([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []Cost{0, 1, 2, 3}, table)
}

func TestWithTensor(t *testing.T) {
	m := testModel(t)
	nt, err := m.Tensor().UnaryProject("x", 0.5)
	require.NoError(t, err)

	nm, err := m.WithTensor(nt)
	require.NoError(t, err)
	assert.Equal(t, m.Variables(), nm.Variables())
	assert.Equal(t, Cost(1.5), nm.Tensor().Constant())
	// the source model still sees the original tensor
	assert.Equal(t, Cost(1), m.Tensor().Constant())

	other, err := NewModel([]string{"a", "b"}, map[string][]int{"a": {0}, "b": {0}}, Costs[string, int]{})
	require.NoError(t, err)
	_, err = other.WithTensor(nt)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
