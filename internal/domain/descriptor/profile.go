package descriptor

import "github.com/turtacn/ChemDesc-Engine/internal/domain/graph"

// Profile bundles the scalar descriptors computed for one molecule.
type Profile struct {
	Formula         string
	MolecularWeight float64
	AtomCount       int
	BondCount       int
	HeavyAtoms      int
	Acceptors       int
	Donors          int
	RotatableBonds  int
	Rings           int
	AromaticRings   int
}

// ComputeProfile evaluates every scalar descriptor for the molecule. The
// only failure mode is an element symbol outside the supported mass table;
// the counting descriptors are total.
func ComputeProfile(m *graph.Molecule) (*Profile, error) {
	weight, err := MolecularWeight(m)
	if err != nil {
		return nil, err
	}
	return &Profile{
		Formula:         MolecularFormula(m),
		MolecularWeight: weight,
		AtomCount:       m.AtomCount(),
		BondCount:       m.BondCount(),
		HeavyAtoms:      HeavyAtomCount(m),
		Acceptors:       AcceptorCount(m),
		Donors:          DonorCount(m),
		RotatableBonds:  RotatableBondCount(m),
		Rings:           RingCount(m),
		AromaticRings:   AromaticRingCount(m),
	}, nil
}
