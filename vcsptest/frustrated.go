// Package vcsptest builds the frustrated-cycle VCSP instances used
// throughout the osac tests. The core treats them as opaque model producers.
//
// A frustrated cycle places length variables on a ring. Every adjacent pair
// carries cost 1 when the labels differ, except the closing edge which
// carries cost 1 when they are equal, so no assignment satisfies every edge.
// The split variants replace labels with (split component, own label) pairs
// and forbid, via infinite costs, edge assignments that disagree on the split
// component.
package vcsptest

import (
	"fmt"

	"github.com/vcsplib/osac/vcsp"
)

// FrustratedCycle builds the ring instance over variables 0..length-1 with
// labels 0..domainSize-1. It panics on invalid parameters; fixtures have no
// error path.
func FrustratedCycle(length, domainSize int) *vcsp.Model[int, int] {
	if length < 2 || domainSize < 1 {
		panic(fmt.Sprintf("vcsptest: frustrated cycle needs length >= 2 and domain size >= 1, got %d and %d", length, domainSize))
	}
	vars := make([]int, length)
	domains := make(map[int][]int, length)
	dom := make([]int, domainSize)
	for a := range dom {
		dom[a] = a
	}
	for i := range vars {
		vars[i] = i
		domains[i] = dom
	}

	tables := make([]vcsp.CostTable[int, int], length)
	for i := 0; i < length; i++ {
		values := make([]vcsp.Cost, domainSize*domainSize)
		k := 0
		for a := 0; a < domainSize; a++ {
			for b := 0; b < domainSize; b++ {
				if edgeCost(a, b, i == length-1) {
					values[k] = 1
				}
				k++
			}
		}
		tables[i] = vcsp.CostTable[int, int]{Scope: []int{i, (i + 1) % length}, Values: values}
	}

	m, err := vcsp.NewModel(vars, domains, vcsp.Costs[int, int]{Tables: tables})
	if err != nil {
		panic(fmt.Sprintf("vcsptest: frustrated cycle: %v", err))
	}
	return m
}

// FrustratedCycleOneSplit splits the destination variable of a frustrated
// cycle on the labels of a source variable: dst's domain becomes the pairs
// (source label, own label), every other variable keeps diagonal pairs
// (l, l), and edges joining src and dst forbid assignments whose split
// components disagree.
func FrustratedCycleOneSplit(length, domainSize, src, dst int) *vcsp.Model[int, [2]int] {
	if src < 0 || src >= length || dst < 0 || dst >= length {
		panic(fmt.Sprintf("vcsptest: split variables %d and %d out of range [0, %d)", src, dst, length))
	}
	return splitCycle(length, domainSize, func(v int) bool { return v == dst }, func(x, y int) bool {
		return (x == src || y == src) && (x == dst || y == dst)
	})
}

// FrustratedCycleCompleteSplit splits every variable of a frustrated cycle on
// the labels of splitVar: every other variable's domain becomes the pairs
// (splitVar label, own label) and every edge forbids assignments whose split
// components disagree.
func FrustratedCycleCompleteSplit(length, domainSize, splitVar int) *vcsp.Model[int, [2]int] {
	if splitVar < 0 || splitVar >= length {
		panic(fmt.Sprintf("vcsptest: split variable %d out of range [0, %d)", splitVar, length))
	}
	return splitCycle(length, domainSize, func(v int) bool { return v != splitVar }, func(x, y int) bool {
		return true
	})
}

// splitCycle rebuilds a frustrated cycle over pair labels. split reports
// whether a variable's domain is the full product of split and own labels
// (the others keep the diagonal), coupled whether an edge enforces equality
// of the split components.
func splitCycle(length, domainSize int, split func(v int) bool, coupled func(x, y int) bool) *vcsp.Model[int, [2]int] {
	if length < 2 || domainSize < 1 {
		panic(fmt.Sprintf("vcsptest: frustrated cycle needs length >= 2 and domain size >= 1, got %d and %d", length, domainSize))
	}
	vars := make([]int, length)
	doms := make(map[int][][2]int, length)
	for v := 0; v < length; v++ {
		vars[v] = v
		if split(v) {
			dom := make([][2]int, 0, domainSize*domainSize)
			for s := 0; s < domainSize; s++ {
				for o := 0; o < domainSize; o++ {
					dom = append(dom, [2]int{s, o})
				}
			}
			doms[v] = dom
		} else {
			dom := make([][2]int, domainSize)
			for l := 0; l < domainSize; l++ {
				dom[l] = [2]int{l, l}
			}
			doms[v] = dom
		}
	}

	tables := make([]vcsp.CostTable[int, [2]int], length)
	for i := 0; i < length; i++ {
		x, y := i, (i+1)%length
		values := make([]vcsp.Cost, 0, len(doms[x])*len(doms[y]))
		for _, a := range doms[x] {
			for _, b := range doms[y] {
				switch {
				case coupled(x, y) && a[0] != b[0]:
					values = append(values, vcsp.Forbidden)
				case edgeCost(a[1], b[1], i == length-1):
					values = append(values, 1)
				default:
					values = append(values, 0)
				}
			}
		}
		tables[i] = vcsp.CostTable[int, [2]int]{Scope: []int{x, y}, Values: values}
	}

	m, err := vcsp.NewModel(vars, doms, vcsp.Costs[int, [2]int]{Tables: tables})
	if err != nil {
		panic(fmt.Sprintf("vcsptest: split frustrated cycle: %v", err))
	}
	return m
}

// edgeCost reports whether labels a and b cost 1 on an edge: differing labels
// on a regular edge, equal labels on the closing edge.
func edgeCost(a, b int, closing bool) bool {
	return (a != b) != closing
}
