package graph

import "github.com/turtacn/ChemDesc-Engine/pkg/errors"

// HydrogenMass is the standard atomic weight of hydrogen, used directly by
// calculators that fold implicit hydrogens into a total.
const HydrogenMass = 1.008

// atomicMasses lists IUPAC standard atomic weights (conventional values)
// for the elements the engine accepts in molecular-weight and formula
// calculations.
var atomicMasses = map[string]float64{
	"H": HydrogenMass, "He": 4.003,
	"Li": 6.94, "Be": 9.012, "B": 10.81, "C": 12.011, "N": 14.007,
	"O": 15.999, "F": 18.998, "Ne": 20.180,
	"Na": 22.990, "Mg": 24.305, "Al": 26.982, "Si": 28.085, "P": 30.974,
	"S": 32.06, "Cl": 35.45, "Ar": 39.95,
	"K": 39.098, "Ca": 40.078, "Ti": 47.867, "Cr": 51.996, "Mn": 54.938,
	"Fe": 55.845, "Co": 58.933, "Ni": 58.693, "Cu": 63.546, "Zn": 65.38,
	"Ga": 69.723, "Ge": 72.630, "As": 74.922, "Se": 78.971, "Br": 79.904,
	"Kr": 83.798,
	"Rb": 85.468, "Sr": 87.62, "Mo": 95.95, "Pd": 106.42, "Ag": 107.87,
	"Cd": 112.41, "In": 114.82, "Sn": 118.71, "Sb": 121.76, "Te": 127.60,
	"I": 126.90, "Xe": 131.29,
	"Cs": 132.91, "Ba": 137.33, "W": 183.84, "Pt": 195.08, "Au": 196.97,
	"Hg": 200.59, "Tl": 204.38, "Pb": 207.2, "Bi": 208.98,
}

// AtomicMass returns the standard atomic weight for an element symbol.
// Symbols outside the supported table yield a coded error.
func AtomicMass(symbol string) (float64, error) {
	mass, ok := atomicMasses[symbol]
	if !ok {
		return 0, errors.New(errors.ErrCodeMoleculeUnknownElement, "unknown element symbol").
			WithDetail("symbol=" + symbol)
	}
	return mass, nil
}

// KnownElement reports whether the symbol appears in the atomic mass table.
func KnownElement(symbol string) bool {
	_, ok := atomicMasses[symbol]
	return ok
}

// ElementWeights carries the per-element physical data the WHIM weighting
// schemes draw on: Pauling electronegativity, atomic polarizability in Å³
// and the van der Waals radius in Å.  Weights handed to the calculators are
// normalized relative to carbon.
type ElementWeights struct {
	Mass              float64
	Electronegativity float64
	Polarizability    float64
	VdwRadius         float64
}

var elementWeights = map[string]ElementWeights{
	"H":  {Mass: 1.008, Electronegativity: 2.20, Polarizability: 0.667, VdwRadius: 1.20},
	"B":  {Mass: 10.81, Electronegativity: 2.04, Polarizability: 3.03, VdwRadius: 1.92},
	"C":  {Mass: 12.011, Electronegativity: 2.55, Polarizability: 1.76, VdwRadius: 1.70},
	"N":  {Mass: 14.007, Electronegativity: 3.04, Polarizability: 1.10, VdwRadius: 1.55},
	"O":  {Mass: 15.999, Electronegativity: 3.44, Polarizability: 0.802, VdwRadius: 1.52},
	"F":  {Mass: 18.998, Electronegativity: 3.98, Polarizability: 0.557, VdwRadius: 1.47},
	"Si": {Mass: 28.085, Electronegativity: 1.90, Polarizability: 5.38, VdwRadius: 2.10},
	"P":  {Mass: 30.974, Electronegativity: 2.19, Polarizability: 3.63, VdwRadius: 1.80},
	"S":  {Mass: 32.06, Electronegativity: 2.58, Polarizability: 2.90, VdwRadius: 1.80},
	"Cl": {Mass: 35.45, Electronegativity: 3.16, Polarizability: 2.18, VdwRadius: 1.75},
	"Br": {Mass: 79.904, Electronegativity: 2.96, Polarizability: 3.05, VdwRadius: 1.85},
	"I":  {Mass: 126.90, Electronegativity: 2.66, Polarizability: 5.35, VdwRadius: 1.98},
}

// Weights returns the WHIM weighting data for an element symbol.  Symbols
// outside the supported table yield a coded error.
func Weights(symbol string) (ElementWeights, error) {
	w, ok := elementWeights[symbol]
	if !ok {
		return ElementWeights{}, errors.New(errors.ErrCodeMoleculeUnknownElement, "unknown element symbol").
			WithDetail("symbol=" + symbol)
	}
	return w, nil
}

// CarbonWeights returns carbon's weighting data, the normalization reference
// for every WHIM scheme.
func CarbonWeights() ElementWeights {
	return elementWeights["C"]
}
