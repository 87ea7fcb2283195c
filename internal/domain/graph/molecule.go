// Package graph defines the immutable molecular graph consumed by the
// descriptor calculators: a Molecule owning Atom nodes and Bond edges, with
// the query surface the calculators need (incident bonds, neighbors, ring
// membership). Molecules are built once through AddAtom/AddBond, which
// enforce the structural invariants up front; after construction the graph
// is treated as read-only, so concurrent descriptor evaluations over the
// same molecule are safe.
package graph

import (
	"strings"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// BondOrder classifies the covalent bond between two atoms.
type BondOrder uint8

const (
	OrderSingle BondOrder = iota + 1
	OrderDouble
	OrderTriple
	OrderAromatic
)

// IsValid reports whether the order is one of the defined enum values.
func (o BondOrder) IsValid() bool {
	return o >= OrderSingle && o <= OrderAromatic
}

func (o BondOrder) String() string {
	switch o {
	case OrderSingle:
		return "single"
	case OrderDouble:
		return "double"
	case OrderTriple:
		return "triple"
	case OrderAromatic:
		return "aromatic"
	default:
		return "unknown"
	}
}

// ParseBondOrder converts the wire representation of a bond order into the
// enum. Matching is case-insensitive.
func ParseBondOrder(s string) (BondOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return OrderSingle, nil
	case "double":
		return OrderDouble, nil
	case "triple":
		return OrderTriple, nil
	case "aromatic":
		return OrderAromatic, nil
	default:
		return 0, errors.New(errors.ErrCodeMoleculeUnknownOrder, "unknown bond order").
			WithDetail("order=" + s)
	}
}

// Atom is a node of the molecular graph. The chemical attributes are plain
// fields; identity is the pointer handed out by AddAtom, valid only within
// the owning molecule.
type Atom struct {
	// Symbol is the element symbol as written in formulas ("C", "Cl").
	Symbol string

	// FormalCharge is the integer charge under standard valence bookkeeping.
	FormalCharge int

	// Aromatic marks the atom as part of a delocalized ring system.
	Aromatic bool

	// Hydrogens is the implicit hydrogen count attached to this atom that is
	// not represented by explicit "H" neighbor atoms.
	Hydrogens int

	// X, Y, Z are 3D coordinates in Å, meaningful only when HasCoords is set.
	X, Y, Z   float64
	HasCoords bool

	mol *Molecule
	idx int
}

// Index returns the atom's position in the owning molecule's insertion order.
func (a *Atom) Index() int {
	return a.idx
}

// IsHydrogen reports whether the atom is an explicit hydrogen.
func (a *Atom) IsHydrogen() bool {
	return a.Symbol == "H"
}

// AtomSpec carries the attributes of an atom to be added to a molecule.
type AtomSpec struct {
	Symbol       string
	FormalCharge int
	Aromatic     bool
	Hydrogens    int
	X, Y, Z      float64
	HasCoords    bool
}

// Bond is an undirected edge between two atoms of the same molecule. The
// endpoints are borrowed from the owning molecule and never change after
// construction.
type Bond struct {
	a, b  *Atom
	order BondOrder
	idx   int
}

// Order returns the bond order.
func (b *Bond) Order() BondOrder {
	return b.order
}

// Index returns the bond's position in the owning molecule's insertion order.
func (b *Bond) Index() int {
	return b.idx
}

// Endpoints returns both endpoint atoms in insertion order.
func (b *Bond) Endpoints() (*Atom, *Atom) {
	return b.a, b.b
}

// Contains reports whether a is one of the bond's endpoints.
func (b *Bond) Contains(a *Atom) bool {
	return b.a == a || b.b == a
}

// Other returns the endpoint opposite a, or nil when a is not an endpoint of
// this bond.
func (b *Bond) Other(a *Atom) *Atom {
	switch a {
	case b.a:
		return b.b
	case b.b:
		return b.a
	default:
		return nil
	}
}

// Molecule is an undirected labeled graph owning its atoms and bonds.
// The zero value is not usable; construct with New.
type Molecule struct {
	name     string
	atoms    []*Atom
	bonds    []*Bond
	incident [][]*Bond
}

// Option configures a Molecule at construction time.
type Option func(*Molecule)

// WithName sets a display name carried through DTOs and log fields.
func WithName(name string) Option {
	return func(m *Molecule) { m.name = name }
}

// New returns an empty molecule ready for AddAtom/AddBond.
func New(opts ...Option) *Molecule {
	m := &Molecule{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the display name, possibly empty.
func (m *Molecule) Name() string {
	return m.name
}

// AtomCount returns the number of atoms.
func (m *Molecule) AtomCount() int {
	return len(m.atoms)
}

// BondCount returns the number of bonds.
func (m *Molecule) BondCount() int {
	return len(m.bonds)
}

// AddAtom appends an atom with the given attributes and returns its handle.
// It fails when the symbol is empty or the implicit hydrogen count is
// negative.
func (m *Molecule) AddAtom(spec AtomSpec) (*Atom, error) {
	symbol := strings.TrimSpace(spec.Symbol)
	if symbol == "" {
		return nil, errors.New(errors.ErrCodeMoleculeEmptySymbol, "atom element symbol must not be empty").
			WithDetailf("atom_index=%d", len(m.atoms))
	}
	if spec.Hydrogens < 0 {
		return nil, errors.New(errors.ErrCodeMoleculeNegativeHCount, "implicit hydrogen count must not be negative").
			WithDetailf("atom_index=%d symbol=%s hydrogens=%d", len(m.atoms), symbol, spec.Hydrogens)
	}
	a := &Atom{
		Symbol:       symbol,
		FormalCharge: spec.FormalCharge,
		Aromatic:     spec.Aromatic,
		Hydrogens:    spec.Hydrogens,
		X:            spec.X,
		Y:            spec.Y,
		Z:            spec.Z,
		HasCoords:    spec.HasCoords,
		mol:          m,
		idx:          len(m.atoms),
	}
	m.atoms = append(m.atoms, a)
	m.incident = append(m.incident, nil)
	return a, nil
}

// AddBond connects two atoms of this molecule with the given order. Both
// endpoints must have been returned by this molecule's AddAtom; foreign or
// nil atoms, self bonds, duplicate bonds, and unknown orders are rejected.
func (m *Molecule) AddBond(a, b *Atom, order BondOrder) (*Bond, error) {
	if a == nil || b == nil {
		return nil, errors.New(errors.ErrCodeMoleculeBondEndpoint, "bond endpoint must not be nil")
	}
	if a.mol != m || b.mol != m {
		return nil, errors.New(errors.ErrCodeMoleculeBondEndpoint, "bond endpoint does not belong to this molecule").
			WithDetailf("a=%s b=%s", a.Symbol, b.Symbol)
	}
	if a == b {
		return nil, errors.New(errors.ErrCodeMoleculeSelfBond, "bond endpoints must be distinct atoms").
			WithDetailf("atom_index=%d symbol=%s", a.idx, a.Symbol)
	}
	if !order.IsValid() {
		return nil, errors.New(errors.ErrCodeMoleculeUnknownOrder, "unknown bond order").
			WithDetailf("order=%d", order)
	}
	if m.BondBetween(a, b) != nil {
		return nil, errors.New(errors.ErrCodeMoleculeDuplicateBond, "bond between these atoms already exists").
			WithDetailf("a=%d b=%d", a.idx, b.idx)
	}
	bond := &Bond{a: a, b: b, order: order, idx: len(m.bonds)}
	m.bonds = append(m.bonds, bond)
	m.incident[a.idx] = append(m.incident[a.idx], bond)
	m.incident[b.idx] = append(m.incident[b.idx], bond)
	return bond, nil
}

// Atoms returns the atoms in insertion order. The slice is the molecule's
// backing storage; callers must treat it as read-only.
func (m *Molecule) Atoms() []*Atom {
	return m.atoms
}

// Bonds returns the bonds in insertion order. The slice is the molecule's
// backing storage; callers must treat it as read-only.
func (m *Molecule) Bonds() []*Bond {
	return m.bonds
}

// IncidentBonds returns the bonds touching a, in insertion order. The slice
// is backing storage; callers must treat it as read-only. Atoms of other
// molecules yield nil.
func (m *Molecule) IncidentBonds(a *Atom) []*Bond {
	if a == nil || a.mol != m {
		return nil
	}
	return m.incident[a.idx]
}

// Neighbors returns the atoms directly bonded to a.
func (m *Molecule) Neighbors(a *Atom) []*Atom {
	bonds := m.IncidentBonds(a)
	if len(bonds) == 0 {
		return nil
	}
	out := make([]*Atom, len(bonds))
	for i, b := range bonds {
		out[i] = b.Other(a)
	}
	return out
}

// Degree returns the number of explicit bonds touching a.
func (m *Molecule) Degree(a *Atom) int {
	return len(m.IncidentBonds(a))
}

// BondBetween returns the bond connecting a and b, or nil when they are not
// bonded or belong to another molecule.
func (m *Molecule) BondBetween(a, b *Atom) *Bond {
	if a == nil || b == nil || a.mol != m || b.mol != m {
		return nil
	}
	// Scan the smaller incident list.
	if len(m.incident[b.idx]) < len(m.incident[a.idx]) {
		a, b = b, a
	}
	for _, bond := range m.incident[a.idx] {
		if bond.Other(a) == b {
			return bond
		}
	}
	return nil
}
