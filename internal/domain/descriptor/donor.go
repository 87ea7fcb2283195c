package descriptor

import "github.com/turtacn/ChemDesc-Engine/internal/domain/graph"

// DonorCount returns the number of hydrogen-bond donor atoms: each nitrogen
// or oxygen carrying at least one hydrogen, implicit or explicit, counts
// once regardless of how many hydrogens it bears. The scan short-circuits
// per atom after the first hydrogen is found.
func DonorCount(m *graph.Molecule) int {
	count := 0

atoms:
	for _, atom := range m.Atoms() {
		if atom.Symbol != "N" && atom.Symbol != "O" {
			continue
		}
		if atom.Hydrogens > 0 {
			count++
			continue
		}
		for _, neighbor := range m.Neighbors(atom) {
			if neighbor.IsHydrogen() {
				count++
				continue atoms
			}
		}
	}
	return count
}
