package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ringOfSize builds a simple cycle of n carbons and returns the molecule.
func ringOfSize(t *testing.T, n int) *Molecule {
	t.Helper()
	m := New()
	atoms := make([]*Atom, n)
	for i := range atoms {
		atoms[i] = mustAtom(t, m, AtomSpec{Symbol: "C"})
	}
	for i := range atoms {
		mustBond(t, m, atoms[i], atoms[(i+1)%n], OrderSingle)
	}
	return m
}

func TestRingBonds_EmptyAndChain(t *testing.T) {
	assert.Empty(t, New().RingBonds())

	m := New()
	a := mustAtom(t, m, AtomSpec{Symbol: "C"})
	b := mustAtom(t, m, AtomSpec{Symbol: "C"})
	c := mustAtom(t, m, AtomSpec{Symbol: "O"})
	mustBond(t, m, a, b, OrderSingle)
	mustBond(t, m, b, c, OrderSingle)

	assert.Equal(t, []bool{false, false}, m.RingBonds())
}

func TestRingBonds_SimpleRing(t *testing.T) {
	m := ringOfSize(t, 6)
	for i, inRing := range m.RingBonds() {
		assert.True(t, inRing, "bond %d of a 6-ring must be a ring bond", i)
	}
}

func TestRingBonds_RingWithTail(t *testing.T) {
	m := ringOfSize(t, 5)
	tail := mustAtom(t, m, AtomSpec{Symbol: "C"})
	tailBond := mustBond(t, m, m.Atoms()[0], tail, OrderSingle)

	ring := m.RingBonds()
	for i := 0; i < 5; i++ {
		assert.True(t, ring[i], "ring bond %d", i)
	}
	assert.False(t, ring[tailBond.Index()], "the tail bond is a bridge")
}

func TestRingBonds_FusedRings(t *testing.T) {
	// Two triangles sharing the edge a-b.
	m := New()
	a := mustAtom(t, m, AtomSpec{Symbol: "C"})
	b := mustAtom(t, m, AtomSpec{Symbol: "C"})
	c := mustAtom(t, m, AtomSpec{Symbol: "C"})
	d := mustAtom(t, m, AtomSpec{Symbol: "C"})
	mustBond(t, m, a, b, OrderSingle)
	mustBond(t, m, b, c, OrderSingle)
	mustBond(t, m, c, a, OrderSingle)
	mustBond(t, m, b, d, OrderSingle)
	mustBond(t, m, d, a, OrderSingle)

	for i, inRing := range m.RingBonds() {
		assert.True(t, inRing, "bond %d of fused rings must be a ring bond", i)
	}
}

func TestRingBonds_TwoComponents(t *testing.T) {
	m := ringOfSize(t, 3)
	// Disconnected two-atom chain.
	x := mustAtom(t, m, AtomSpec{Symbol: "N"})
	y := mustAtom(t, m, AtomSpec{Symbol: "O"})
	chain := mustBond(t, m, x, y, OrderSingle)

	ring := m.RingBonds()
	for i := 0; i < 3; i++ {
		assert.True(t, ring[i])
	}
	assert.False(t, ring[chain.Index()])
}

func TestComponentCount(t *testing.T) {
	assert.Equal(t, 0, New().ComponentCount())

	m := New()
	mustAtom(t, m, AtomSpec{Symbol: "C"})
	mustAtom(t, m, AtomSpec{Symbol: "C"})
	assert.Equal(t, 2, m.ComponentCount(), "isolated atoms are their own components")

	a := m.Atoms()[0]
	b := m.Atoms()[1]
	mustBond(t, m, a, b, OrderSingle)
	assert.Equal(t, 1, m.ComponentCount())

	ring := ringOfSize(t, 4)
	mustAtom(t, ring, AtomSpec{Symbol: "O"})
	assert.Equal(t, 2, ring.ComponentCount())
}
