package descriptor

import "github.com/turtacn/ChemDesc-Engine/internal/domain/graph"

// RotatableBondCount returns the number of freely rotatable bonds: single
// bonds outside any ring whose two endpoints are both non-hydrogen atoms
// with at least two non-hydrogen neighbors each. Terminal bonds (methyl,
// hydroxyl and the like) therefore never count.
func RotatableBondCount(m *graph.Molecule) int {
	ring := m.RingBonds()
	count := 0
	for _, bond := range m.Bonds() {
		if bond.Order() != graph.OrderSingle || ring[bond.Index()] {
			continue
		}
		a, b := bond.Endpoints()
		if a.IsHydrogen() || b.IsHydrogen() {
			continue
		}
		if heavyDegree(m, a) < 2 || heavyDegree(m, b) < 2 {
			continue
		}
		count++
	}
	return count
}

func heavyDegree(m *graph.Molecule, a *graph.Atom) int {
	n := 0
	for _, neighbor := range m.Neighbors(a) {
		if !neighbor.IsHydrogen() {
			n++
		}
	}
	return n
}
