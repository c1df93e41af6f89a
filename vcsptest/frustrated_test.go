package vcsptest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsplib/osac/vcsp"
)

func TestFrustratedCycleCosts(t *testing.T) {
	m := FrustratedCycle(3, 2)

	assert.Equal(t, []int{0, 1, 2}, m.Variables())
	tr := m.Tensor()
	assert.Equal(t, vcsp.Cost(0), tr.Constant())
	assert.Equal(t, [][]int{{0, 1}, {1, 2}, {2, 0}}, tr.Scopes())

	for _, edge := range [][]int{{0, 1}, {1, 2}} {
		got, err := tr.Flatten(edge)
		require.NoError(t, err)
		assert.Equal(t, []vcsp.Cost{0, 1, 1, 0}, got, "edge %v penalizes differing labels", edge)
	}
	got, err := tr.Flatten([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []vcsp.Cost{1, 0, 0, 1}, got, "the closing edge penalizes equal labels")
}

func TestFrustratedCycleShape(t *testing.T) {
	for _, m := range []*vcsp.Model[int, int]{
		FrustratedCycle(3, 2),
		FrustratedCycle(5, 3),
	} {
		tr := m.Tensor()
		for _, scope := range tr.Scopes() {
			want := 1
			for _, v := range scope {
				dom, err := m.Domain(v)
				require.NoError(t, err)
				want *= len(dom)
			}
			table, err := tr.Flatten(scope)
			require.NoError(t, err)
			assert.Len(t, table, want, "table %v covers the full Cartesian product", scope)
		}
		for _, v := range m.Variables() {
			dom, err := m.Domain(v)
			require.NoError(t, err)
			costs, err := tr.UnaryCosts(v)
			require.NoError(t, err)
			assert.Equal(t, make([]vcsp.Cost, len(dom)), costs)
		}
	}
}

func TestFrustratedCycleCompleteSplit(t *testing.T) {
	m := FrustratedCycleCompleteSplit(3, 2, 0)

	dom0, err := m.Domain(0)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {1, 1}}, dom0, "the split variable keeps diagonal pairs")
	dom1, err := m.Domain(1)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, dom1)

	F := vcsp.Forbidden
	tr := m.Tensor()
	tests := map[string]struct {
		scope []int
		want  []vcsp.Cost
	}{
		"edge (0,1)": {[]int{0, 1}, []vcsp.Cost{0, 1, F, F, F, F, 1, 0}},
		"edge (2,0)": {[]int{2, 0}, []vcsp.Cost{1, F, 0, F, F, 0, F, 1}},
	}
	for name, tt := range tests {
		got, err := tr.Flatten(tt.scope)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, name)
	}
}

func TestFrustratedCycleOneSplit(t *testing.T) {
	m := FrustratedCycleOneSplit(3, 2, 0, 2)

	dom1, err := m.Domain(1)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {1, 1}}, dom1, "only the destination variable is split")
	dom2, err := m.Domain(2)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, dom2)

	F := vcsp.Forbidden
	tr := m.Tensor()
	tests := map[string]struct {
		scope []int
		want  []vcsp.Cost
	}{
		// edges not joining source and destination carry no coupling
		"edge (0,1)": {[]int{0, 1}, []vcsp.Cost{0, 1, 1, 0}},
		"edge (1,2)": {[]int{1, 2}, []vcsp.Cost{0, 1, 0, 1, 1, 0, 1, 0}},
		// the closing edge joins them and forbids disagreeing split labels
		"edge (2,0)": {[]int{2, 0}, []vcsp.Cost{1, F, 0, F, F, 0, F, 1}},
	}
	for name, tt := range tests {
		got, err := tr.Flatten(tt.scope)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, name)
	}
}

func TestInvalidParametersPanic(t *testing.T) {
	assert.Panics(t, func() { FrustratedCycle(1, 2) })
	assert.Panics(t, func() { FrustratedCycle(3, 0) })
	assert.Panics(t, func() { FrustratedCycleCompleteSplit(3, 2, 3) })
	assert.Panics(t, func() { FrustratedCycleOneSplit(3, 2, -1, 1) })
}
