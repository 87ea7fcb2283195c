package descriptor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
)

// MolecularWeight returns the molecular weight in g/mol as the sum of the
// standard atomic weights of all atoms plus their implicit hydrogens. An
// element symbol outside the supported table yields a coded error naming
// the symbol.
func MolecularWeight(m *graph.Molecule) (float64, error) {
	total := 0.0
	for _, atom := range m.Atoms() {
		mass, err := graph.AtomicMass(atom.Symbol)
		if err != nil {
			return 0, err
		}
		total += mass + float64(atom.Hydrogens)*graph.HydrogenMass
	}
	return total, nil
}

// MolecularFormula returns the molecular formula in Hill order: carbon
// first, hydrogen second, every other element alphabetical; without carbon,
// all elements including hydrogen sort alphabetically. Implicit hydrogens
// are folded into the H count. The empty molecule yields the empty string.
func MolecularFormula(m *graph.Molecule) string {
	counts := make(map[string]int)
	for _, atom := range m.Atoms() {
		counts[atom.Symbol]++
		if atom.Hydrogens > 0 {
			counts["H"] += atom.Hydrogens
		}
	}
	if len(counts) == 0 {
		return ""
	}

	symbols := make([]string, 0, len(counts))
	for symbol := range counts {
		symbols = append(symbols, symbol)
	}
	if counts["C"] > 0 {
		sort.Slice(symbols, func(i, j int) bool {
			return hillRank(symbols[i]) < hillRank(symbols[j]) ||
				(hillRank(symbols[i]) == hillRank(symbols[j]) && symbols[i] < symbols[j])
		})
	} else {
		sort.Strings(symbols)
	}

	var sb strings.Builder
	for _, symbol := range symbols {
		sb.WriteString(symbol)
		if n := counts[symbol]; n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
	}
	return sb.String()
}

// hillRank orders C before H before everything else.
func hillRank(symbol string) int {
	switch symbol {
	case "C":
		return 0
	case "H":
		return 1
	default:
		return 2
	}
}
