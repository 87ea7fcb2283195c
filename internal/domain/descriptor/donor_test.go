package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
)

func TestDonorCount_EmptyMolecule(t *testing.T) {
	assert.Equal(t, 0, DonorCount(graph.New()))
}

func TestDonorCount_ImplicitHydrogens(t *testing.T) {
	// Ethanolamine: HO-CH2-CH2-NH2, two donors.
	m := graph.New()
	o := addAtom(t, m, graph.AtomSpec{Symbol: "O", Hydrogens: 1})
	c1 := addAtom(t, m, graph.AtomSpec{Symbol: "C", Hydrogens: 2})
	c2 := addAtom(t, m, graph.AtomSpec{Symbol: "C", Hydrogens: 2})
	n := addAtom(t, m, graph.AtomSpec{Symbol: "N", Hydrogens: 2})
	addBond(t, m, o, c1, graph.OrderSingle)
	addBond(t, m, c1, c2, graph.OrderSingle)
	addBond(t, m, c2, n, graph.OrderSingle)
	assert.Equal(t, 2, DonorCount(m))
}

func TestDonorCount_ExplicitHydrogen(t *testing.T) {
	// Water drawn with explicit H atoms still counts once.
	m := graph.New()
	o := addAtom(t, m, graph.AtomSpec{Symbol: "O"})
	h1 := addAtom(t, m, graph.AtomSpec{Symbol: "H"})
	h2 := addAtom(t, m, graph.AtomSpec{Symbol: "H"})
	addBond(t, m, o, h1, graph.OrderSingle)
	addBond(t, m, o, h2, graph.OrderSingle)
	assert.Equal(t, 1, DonorCount(m), "multiple hydrogens on one heteroatom count once")
}

func TestDonorCount_BareHeteroatoms(t *testing.T) {
	// Trimethylamine and dimethyl ether: N and O without any hydrogen.
	m := graph.New()
	n := addAtom(t, m, graph.AtomSpec{Symbol: "N"})
	o := addAtom(t, m, graph.AtomSpec{Symbol: "O"})
	for i := 0; i < 3; i++ {
		c := addAtom(t, m, graph.AtomSpec{Symbol: "C", Hydrogens: 3})
		addBond(t, m, n, c, graph.OrderSingle)
	}
	for i := 0; i < 2; i++ {
		c := addAtom(t, m, graph.AtomSpec{Symbol: "C", Hydrogens: 3})
		addBond(t, m, o, c, graph.OrderSingle)
	}
	assert.Equal(t, 0, DonorCount(m))
}

func TestDonorCount_CarbonHydrogensIgnored(t *testing.T) {
	m := graph.New()
	addAtom(t, m, graph.AtomSpec{Symbol: "C", Hydrogens: 4})
	addAtom(t, m, graph.AtomSpec{Symbol: "S", Hydrogens: 1})
	assert.Equal(t, 0, DonorCount(m), "only N-H and O-H are donors")
}

func TestDonorCount_AceticAcid(t *testing.T) {
	assert.Equal(t, 1, DonorCount(aceticAcid(t)), "only the hydroxyl oxygen bears a hydrogen")
}
