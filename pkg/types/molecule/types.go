// Package molecule defines the molecule wire format and the descriptor
// request/response structures used by every API surface of the engine.  The
// DTOs are the only serialized molecule representation; chemical file formats
// (SDF, SMILES) are the caller's concern and never cross this boundary.
package molecule

import (
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Molecule wire format
// ─────────────────────────────────────────────────────────────────────────────

// AtomDTO is one atom of the wire-format molecule.
type AtomDTO struct {
	// Symbol is the element symbol ("C", "N", "Cl").
	Symbol string `json:"symbol"`

	// Charge is the formal charge under standard valence bookkeeping.
	Charge int `json:"charge,omitempty"`

	// Aromatic marks membership in a delocalized ring system.
	Aromatic bool `json:"aromatic,omitempty"`

	// Hydrogens is the implicit hydrogen count not present as explicit atoms.
	Hydrogens int `json:"hydrogens,omitempty"`

	// X, Y, Z are 3D coordinates in Å, meaningful only when HasCoords is set.
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Z         float64 `json:"z,omitempty"`
	HasCoords bool    `json:"has_coords,omitempty"`
}

// BondDTO is one bond of the wire-format molecule.  From and To are indices
// into the Atoms slice.
type BondDTO struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Order string `json:"order"` // "single" | "double" | "triple" | "aromatic"
}

// MoleculeDTO is the wire-format molecular graph.
type MoleculeDTO struct {
	Name  string    `json:"name,omitempty"`
	Atoms []AtomDTO `json:"atoms"`
	Bonds []BondDTO `json:"bonds,omitempty"`
}

// ToGraph validates the DTO and builds the immutable domain graph.  Every
// structural defect — empty symbol, negative hydrogen count, out-of-range or
// self-referencing bond endpoint, unknown bond order, duplicate bond — yields
// a coded error naming the offending atom or bond.
func (d *MoleculeDTO) ToGraph() (*graph.Molecule, error) {
	m := graph.New(graph.WithName(d.Name))

	atoms := make([]*graph.Atom, len(d.Atoms))
	for i, a := range d.Atoms {
		atom, err := m.AddAtom(graph.AtomSpec{
			Symbol:       a.Symbol,
			FormalCharge: a.Charge,
			Aromatic:     a.Aromatic,
			Hydrogens:    a.Hydrogens,
			X:            a.X,
			Y:            a.Y,
			Z:            a.Z,
			HasCoords:    a.HasCoords,
		})
		if err != nil {
			return nil, err
		}
		atoms[i] = atom
	}

	for i, b := range d.Bonds {
		if b.From < 0 || b.From >= len(atoms) || b.To < 0 || b.To >= len(atoms) {
			return nil, errors.New(errors.ErrCodeMoleculeAtomIndex, "bond references an atom index outside the molecule").
				WithDetailf("bond_index=%d from=%d to=%d atoms=%d", i, b.From, b.To, len(atoms))
		}
		order, err := graph.ParseBondOrder(b.Order)
		if err != nil {
			return nil, err
		}
		if _, err := m.AddBond(atoms[b.From], atoms[b.To], order); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromGraph converts a domain graph back to the wire format, preserving
// insertion order so that ToGraph(FromGraph(m)) reproduces m.
func FromGraph(m *graph.Molecule) *MoleculeDTO {
	dto := &MoleculeDTO{
		Name:  m.Name(),
		Atoms: make([]AtomDTO, 0, m.AtomCount()),
	}
	for _, a := range m.Atoms() {
		dto.Atoms = append(dto.Atoms, AtomDTO{
			Symbol:    a.Symbol,
			Charge:    a.FormalCharge,
			Aromatic:  a.Aromatic,
			Hydrogens: a.Hydrogens,
			X:         a.X,
			Y:         a.Y,
			Z:         a.Z,
			HasCoords: a.HasCoords,
		})
	}
	for _, b := range m.Bonds() {
		from, to := b.Endpoints()
		dto.Bonds = append(dto.Bonds, BondDTO{
			From:  from.Index(),
			To:    to.Index(),
			Order: b.Order().String(),
		})
	}
	return dto
}

// ─────────────────────────────────────────────────────────────────────────────
// Descriptor payloads
// ─────────────────────────────────────────────────────────────────────────────

// ProfileDTO carries the scalar descriptor profile of one molecule.
type ProfileDTO struct {
	Name            string  `json:"name,omitempty"`
	Formula         string  `json:"formula"`
	MolecularWeight float64 `json:"molecular_weight"`
	AtomCount       int     `json:"atom_count"`
	BondCount       int     `json:"bond_count"`
	HeavyAtoms      int     `json:"heavy_atoms"`
	Acceptors       int     `json:"h_bond_acceptors"`
	Donors          int     `json:"h_bond_donors"`
	RotatableBonds  int     `json:"rotatable_bonds"`
	Rings           int     `json:"rings"`
	AromaticRings   int     `json:"aromatic_rings"`
}

// FromProfile converts a domain profile to its wire format.
func FromProfile(name string, p *descriptor.Profile) *ProfileDTO {
	return &ProfileDTO{
		Name:            name,
		Formula:         p.Formula,
		MolecularWeight: p.MolecularWeight,
		AtomCount:       p.AtomCount,
		BondCount:       p.BondCount,
		HeavyAtoms:      p.HeavyAtoms,
		Acceptors:       p.Acceptors,
		Donors:          p.Donors,
		RotatableBonds:  p.RotatableBonds,
		Rings:           p.Rings,
		AromaticRings:   p.AromaticRings,
	}
}

// AcceptorCountDTO carries the standalone acceptor-count result.
type AcceptorCountDTO struct {
	Name  string `json:"name,omitempty"`
	Count int    `json:"count"`
}

// WhimRequest asks for WHIM descriptors under one or more weighting schemes.
type WhimRequest struct {
	Molecule MoleculeDTO `json:"molecule"`
	Schemes  []string    `json:"schemes,omitempty"` // default: ["unity"]
}

// WhimResultDTO carries the WHIM descriptor vector for one weighting scheme.
type WhimResultDTO struct {
	Scheme string  `json:"scheme"`
	L1     float64 `json:"lambda1"`
	L2     float64 `json:"lambda2"`
	L3     float64 `json:"lambda3"`
	Nu1    float64 `json:"nu1"`
	Nu2    float64 `json:"nu2"`
	T      float64 `json:"t"`
	A      float64 `json:"a"`
	V      float64 `json:"v"`
	K      float64 `json:"k"`
}

// SimilarityRequest asks for a pairwise similarity score.
type SimilarityRequest struct {
	A               MoleculeDTO `json:"a"`
	B               MoleculeDTO `json:"b"`
	Metric          string      `json:"metric,omitempty"`           // "tanimoto" | "dice" | "cosine"
	FingerprintKind string      `json:"fingerprint_kind,omitempty"` // "path" | "environment"
	Size            int         `json:"size,omitempty"`
	Depth           int         `json:"depth,omitempty"`
}

// SimilarityResponse carries a pairwise similarity score in [0, 1].
type SimilarityResponse struct {
	Metric          string  `json:"metric"`
	FingerprintKind string  `json:"fingerprint_kind"`
	Score           float64 `json:"score"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Async compute job payloads
// ─────────────────────────────────────────────────────────────────────────────

// ComputeJob is the payload of a molecule.compute.requested event.
type ComputeJob struct {
	JobID    string      `json:"job_id"`
	Molecule MoleculeDTO `json:"molecule"`
	Schemes  []string    `json:"whim_schemes,omitempty"`
}

// ComputeResult is the payload of a molecule.computed event.  Whim is present
// only when the job requested schemes and every atom carried coordinates.
type ComputeResult struct {
	JobID   string          `json:"job_id"`
	Profile *ProfileDTO     `json:"profile,omitempty"`
	Whim    []WhimResultDTO `json:"whim,omitempty"`
	Error   *string         `json:"error,omitempty"`
}
