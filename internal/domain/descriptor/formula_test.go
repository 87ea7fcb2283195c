package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

func TestMolecularWeight(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *graph.Molecule
		want  float64
	}{
		{
			name:  "empty molecule",
			build: func(t *testing.T) *graph.Molecule { return graph.New() },
			want:  0,
		},
		{
			name: "methane via implicit hydrogens",
			build: func(t *testing.T) *graph.Molecule {
				m := graph.New()
				addAtom(t, m, graph.AtomSpec{Symbol: "C", Hydrogens: 4})
				return m
			},
			want: 12.011 + 4*1.008,
		},
		{
			name:  "acetic acid",
			build: aceticAcid,
			want:  2*12.011 + 4*1.008 + 2*15.999,
		},
		{
			name: "chloride with explicit hydrogen",
			build: func(t *testing.T) *graph.Molecule {
				m := graph.New()
				h := addAtom(t, m, graph.AtomSpec{Symbol: "H"})
				cl := addAtom(t, m, graph.AtomSpec{Symbol: "Cl"})
				addBond(t, m, h, cl, graph.OrderSingle)
				return m
			},
			want: 1.008 + 35.45,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MolecularWeight(tt.build(t))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMolecularWeight_UnknownElement(t *testing.T) {
	m := graph.New()
	addAtom(t, m, graph.AtomSpec{Symbol: "Zz"})
	_, err := MolecularWeight(m)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeUnknownElement))
}

func TestMolecularFormula(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *graph.Molecule
		want  string
	}{
		{
			name:  "empty molecule",
			build: func(t *testing.T) *graph.Molecule { return graph.New() },
			want:  "",
		},
		{
			name:  "acetic acid in Hill order",
			build: aceticAcid,
			want:  "C2H4O2",
		},
		{
			name: "unit counts omit the subscript",
			build: func(t *testing.T) *graph.Molecule {
				m := graph.New()
				c := addAtom(t, m, graph.AtomSpec{Symbol: "C", Hydrogens: 3})
				cl := addAtom(t, m, graph.AtomSpec{Symbol: "Cl"})
				addBond(t, m, c, cl, graph.OrderSingle)
				return m
			},
			want: "CH3Cl",
		},
		{
			name: "heteroatoms after hydrogen sort alphabetically",
			build: func(t *testing.T) *graph.Molecule {
				// Thionyl-ish soup: one C so Hill order applies, then Br, N, O, S.
				m := graph.New()
				addAtom(t, m, graph.AtomSpec{Symbol: "S"})
				addAtom(t, m, graph.AtomSpec{Symbol: "O"})
				addAtom(t, m, graph.AtomSpec{Symbol: "N", Hydrogens: 1})
				addAtom(t, m, graph.AtomSpec{Symbol: "Br"})
				addAtom(t, m, graph.AtomSpec{Symbol: "C"})
				return m
			},
			want: "CHBrNOS",
		},
		{
			name: "no carbon sorts everything alphabetically",
			build: func(t *testing.T) *graph.Molecule {
				// Sulfuric acid: H2SO4, no carbon, H sorts between... nothing
				// special: alphabetical gives H2O4S.
				m := graph.New()
				s := addAtom(t, m, graph.AtomSpec{Symbol: "S"})
				for i := 0; i < 2; i++ {
					o := addAtom(t, m, graph.AtomSpec{Symbol: "O", Hydrogens: 1})
					addBond(t, m, s, o, graph.OrderSingle)
				}
				for i := 0; i < 2; i++ {
					o := addAtom(t, m, graph.AtomSpec{Symbol: "O"})
					addBond(t, m, s, o, graph.OrderDouble)
				}
				return m
			},
			want: "H2O4S",
		},
		{
			name: "explicit and implicit hydrogens merge",
			build: func(t *testing.T) *graph.Molecule {
				m := graph.New()
				c := addAtom(t, m, graph.AtomSpec{Symbol: "C", Hydrogens: 3})
				h := addAtom(t, m, graph.AtomSpec{Symbol: "H"})
				addBond(t, m, c, h, graph.OrderSingle)
				return m
			},
			want: "CH4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MolecularFormula(tt.build(t)))
		})
	}
}
