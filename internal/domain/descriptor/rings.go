package descriptor

import "github.com/turtacn/ChemDesc-Engine/internal/domain/graph"

// RingCount returns the cyclomatic number of the molecule, the size of a
// smallest set of rings that covers every cycle: bonds − atoms + components.
func RingCount(m *graph.Molecule) int {
	return m.BondCount() - m.AtomCount() + m.ComponentCount()
}

// HeavyAtomCount returns the number of non-hydrogen atoms.
func HeavyAtomCount(m *graph.Molecule) int {
	count := 0
	for _, atom := range m.Atoms() {
		if !atom.IsHydrogen() {
			count++
		}
	}
	return count
}

// AromaticRingCount returns the cyclomatic number of the aromatic subgraph.
// A bond belongs to the subgraph when its order is aromatic or both of its
// endpoints carry the aromatic flag, so both aromatic-order and kekulized
// representations are covered. Ring systems fused through shared bonds are
// counted per ring, not per system.
func AromaticRingCount(m *graph.Molecule) int {
	n := m.AtomCount()
	if n == 0 {
		return 0
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	edges := 0
	involved := make([]bool, n)
	for _, bond := range m.Bonds() {
		a, b := bond.Endpoints()
		if bond.Order() != graph.OrderAromatic && !(a.Aromatic && b.Aromatic) {
			continue
		}
		edges++
		ai, bi := a.Index(), b.Index()
		involved[ai], involved[bi] = true, true
		ra, rb := find(ai), find(bi)
		if ra != rb {
			parent[ra] = rb
		}
	}
	if edges == 0 {
		return 0
	}

	vertices, components := 0, 0
	for i := range involved {
		if !involved[i] {
			continue
		}
		vertices++
		if find(i) == i {
			components++
		}
	}
	return edges - vertices + components
}
