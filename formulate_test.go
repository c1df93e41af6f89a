package osac

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsplib/osac/lp"
	"github.com/vcsplib/osac/vcsp"
)

func TestFormulate(t *testing.T) {
	m, err := vcsp.NewModel(
		[]int{0, 1},
		map[int][]int{0: {0, 1}, 1: {0, 1}},
		vcsp.Costs[int, int]{
			Tables: []vcsp.CostTable[int, int]{
				{Scope: []int{0, 1}, Values: []vcsp.Cost{0, 1, 1, vcsp.Forbidden}},
			},
		},
	)
	require.NoError(t, err)

	prog, ix, err := Formulate(m)
	require.NoError(t, err)
	require.NotNil(t, ix)

	want := lp.Program{
		Columns: []lp.Column{
			{Name: "u[0]"},
			{Name: "u[1]"},
			{Name: "p[[0 1]][0][0]"},
			{Name: "p[[0 1]][0][1]"},
			{Name: "p[[0 1]][1][0]"},
			{Name: "p[[0 1]][1][1]"},
		},
		Objective: lp.LinearExpression{{Col: 0, Coef: 1}, {Col: 1, Coef: 1}},
		Constraints: []lp.Constraint{
			{Name: "0 0", Expr: lp.LinearExpression{{Col: 0, Coef: -1}, {Col: 2, Coef: 1}}},
			{Name: "0 1", Expr: lp.LinearExpression{{Col: 0, Coef: -1}, {Col: 3, Coef: 1}}},
			{Name: "1 0", Expr: lp.LinearExpression{{Col: 1, Coef: -1}, {Col: 4, Coef: 1}}},
			{Name: "1 1", Expr: lp.LinearExpression{{Col: 1, Coef: -1}, {Col: 5, Coef: 1}}},
			{Name: "[0 1] [0 0]", Expr: lp.LinearExpression{{Col: 2, Coef: -1}, {Col: 4, Coef: -1}}},
			{Name: "[0 1] [0 1]", Expr: lp.LinearExpression{{Col: 2, Coef: -1}, {Col: 5, Coef: -1}}, Offset: 1},
			{Name: "[0 1] [1 0]", Expr: lp.LinearExpression{{Col: 3, Coef: -1}, {Col: 4, Coef: -1}}, Offset: 1},
			// the forbidden assignment (1,1) imposes no constraint
		},
	}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestFormulateSkipsForbiddenUnary(t *testing.T) {
	m, err := vcsp.NewModel(
		[]int{0, 1},
		map[int][]int{0: {0, 1}, 1: {0, 1}},
		vcsp.Costs[int, int]{
			Unary: map[int][]vcsp.Cost{0: {vcsp.Forbidden, 0}},
			Tables: []vcsp.CostTable[int, int]{
				{Scope: []int{0, 1}, Values: make([]vcsp.Cost, 4)},
			},
		},
	)
	require.NoError(t, err)

	prog, _, err := Formulate(m)
	require.NoError(t, err)

	names := make([]string, len(prog.Constraints))
	for i, con := range prog.Constraints {
		names[i] = con.Name
	}
	assert.NotContains(t, names, "0 0")
	assert.Contains(t, names, "0 1")
}

func TestFormulateSharedVariable(t *testing.T) {
	// a variable in two scopes collects one p term per scope in its unary
	// constraints
	m, err := vcsp.NewModel(
		[]int{0, 1, 2},
		map[int][]int{0: {0, 1}, 1: {0, 1}, 2: {0, 1}},
		vcsp.Costs[int, int]{
			Tables: []vcsp.CostTable[int, int]{
				{Scope: []int{0, 1}, Values: make([]vcsp.Cost, 4)},
				{Scope: []int{1, 2}, Values: make([]vcsp.Cost, 4)},
			},
		},
	)
	require.NoError(t, err)

	prog, _, err := Formulate(m)
	require.NoError(t, err)

	// columns: u[0..2] then p per scope position per label
	for _, con := range prog.Constraints {
		if con.Name == "1 0" {
			want := lp.LinearExpression{
				{Col: 1, Coef: -1},
				{Col: 5, Coef: 1}, // p[[0 1]][1][0]
				{Col: 7, Coef: 1}, // p[[1 2]][1][0]
			}
			assert.Equal(t, want, con.Expr)
			return
		}
	}
	t.Fatal("constraint \"1 0\" not found")
}
