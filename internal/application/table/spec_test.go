package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

func TestNewTableSpec_OrderAndLookup(t *testing.T) {
	spec, err := NewTableSpec(
		ColumnSpec{Name: "Structure", Type: ColumnMolecule},
		ColumnSpec{Name: "ID", Type: ColumnString},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, spec.NumColumns())
	assert.Equal(t, "Structure", spec.Column(0).Name)
	i, ok := spec.Find("ID")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = spec.Find("missing")
	assert.False(t, ok)
}

func TestNewTableSpec_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		columns []ColumnSpec
	}{
		{"empty name", []ColumnSpec{{Name: "", Type: ColumnString}}},
		{"unknown type", []ColumnSpec{{Name: "c", Type: ColumnType("blob")}}},
		{"duplicate name", []ColumnSpec{
			{Name: "c", Type: ColumnString},
			{Name: "c", Type: ColumnInteger},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTableSpec(tt.columns...)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
		})
	}
}

func TestTableSpec_AppendLeavesReceiverUnchanged(t *testing.T) {
	spec, err := NewTableSpec(ColumnSpec{Name: "a", Type: ColumnString})
	require.NoError(t, err)

	grown, err := spec.Append(ColumnSpec{Name: "b", Type: ColumnDouble})
	require.NoError(t, err)

	assert.Equal(t, 1, spec.NumColumns())
	assert.Equal(t, 2, grown.NumColumns())
	assert.Equal(t, "b", grown.Column(1).Name)
}

func TestTableSpec_UniqueName(t *testing.T) {
	spec, err := NewTableSpec(
		ColumnSpec{Name: "Rings", Type: ColumnInteger},
		ColumnSpec{Name: "Rings (#1)", Type: ColumnInteger},
	)
	require.NoError(t, err)

	assert.Equal(t, "Formula", spec.UniqueName("Formula"))
	assert.Equal(t, "Rings (#2)", spec.UniqueName("Rings"))
}

func TestCell_ZeroValueIsMissing(t *testing.T) {
	var c Cell
	assert.True(t, c.IsMissing())
	assert.True(t, MissingCell().IsMissing())
	assert.True(t, MoleculeCell(nil).IsMissing())
}

func TestCell_TypedAccess(t *testing.T) {
	mol := &moltypes.MoleculeDTO{Name: "m", Atoms: []moltypes.AtomDTO{{Symbol: "C"}}}

	got, err := MoleculeCell(mol).Molecule()
	require.NoError(t, err)
	assert.Equal(t, "m", got.Name)

	n, err := IntegerCell(7).Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	f, err := DoubleCell(1.5).Double()
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	vs, err := DoubleListCell([]float64{1, 2}).DoubleList()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vs)

	s, err := StringCell("x").Text()
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestCell_TypeMismatch(t *testing.T) {
	_, err := IntegerCell(1).Double()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableCellType))

	_, err = MissingCell().Molecule()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableCellType))
}

func TestDoubleListCell_CopiesInput(t *testing.T) {
	src := []float64{1, 2, 3}
	c := DoubleListCell(src)
	src[0] = 99

	vs, err := c.DoubleList()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, vs)
}
