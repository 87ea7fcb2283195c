// Package descriptor implements molecular descriptor calculators over the
// immutable graph model: hydrogen-bond acceptor and donor counts, rotatable
// bonds, ring counts, molecular weight and formula. Every calculator is a
// pure function with no state across calls; concurrent evaluation over
// independent molecules, or read-only evaluation over a shared molecule, is
// safe.
package descriptor

import "github.com/turtacn/ChemDesc-Engine/internal/domain/graph"

// AcceptorCount returns the number of hydrogen-bond acceptor atoms under the
// classical heuristic rule set:
//
//   - a nitrogen with non-positive formal charge counts, unless it is bonded
//     to any oxygen, or it is aromatic without at least one double bond
//     (an aromatic nitrogen with no exocyclic double bond has its lone pair
//     delocalized into the ring);
//   - an oxygen with non-positive formal charge counts, unless any neighbor
//     is a nitrogen or an aromatic carbon;
//   - every other atom is ignored.
//
// The function is total: a molecule with zero atoms, or atoms without bonds,
// simply yields their contribution (an isolated neutral nitrogen counts as
// one). Disqualification short-circuits per atom, which affects only the
// amount of scanning, never the result. Runs in O(atoms + bonds).
func AcceptorCount(m *graph.Molecule) int {
	count := 0

atoms:
	for _, atom := range m.Atoms() {
		switch {
		case atom.Symbol == "N" && atom.FormalCharge <= 0:
			piBonds := 0
			for _, bond := range m.IncidentBonds(atom) {
				if bond.Other(atom).Symbol == "O" {
					continue atoms
				}
				if bond.Order() == graph.OrderDouble {
					piBonds++
				}
			}
			if atom.Aromatic && piBonds == 0 {
				continue atoms
			}
			count++

		case atom.Symbol == "O" && atom.FormalCharge <= 0:
			for _, neighbor := range m.Neighbors(atom) {
				if neighbor.Symbol == "N" || (neighbor.Symbol == "C" && neighbor.Aromatic) {
					continue atoms
				}
			}
			count++
		}
	}
	return count
}
