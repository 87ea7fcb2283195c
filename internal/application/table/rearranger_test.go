package table

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/internal/application/compute"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor/whim"
	"github.com/turtacn/ChemDesc-Engine/internal/testutil"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

func inputSpec(t *testing.T) *TableSpec {
	t.Helper()
	spec, err := NewTableSpec(
		ColumnSpec{Name: "ID", Type: ColumnString},
		ColumnSpec{Name: "Structure", Type: ColumnMolecule},
	)
	require.NoError(t, err)
	return spec
}

func methanolDTO() *moltypes.MoleculeDTO {
	return &moltypes.MoleculeDTO{
		Name: "methanol",
		Atoms: []moltypes.AtomDTO{
			{Symbol: "C", Hydrogens: 3, HasCoords: true},
			{Symbol: "O", Hydrogens: 1, X: 1.4, HasCoords: true},
		},
		Bonds: []moltypes.BondDTO{{From: 0, To: 1, Order: "single"}},
	}
}

func TestConfigure_NamedColumn(t *testing.T) {
	out, warning, err := Configure(inputSpec(t), Settings{
		MoleculeColumn: "Structure",
		ComputeProfile: true,
	})
	require.NoError(t, err)

	assert.Empty(t, warning)
	assert.Equal(t, 2+len(profileColumns), out.NumColumns())
	assert.Equal(t, "Formula", out.Column(2).Name)
	assert.Equal(t, ColumnString, out.Column(2).Type)
}

func TestConfigure_WrongColumnType(t *testing.T) {
	_, _, err := Configure(inputSpec(t), Settings{MoleculeColumn: "ID", ComputeProfile: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableColumnType))
}

func TestConfigure_ColumnAbsent(t *testing.T) {
	_, _, err := Configure(inputSpec(t), Settings{MoleculeColumn: "Molecule", ComputeProfile: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableColumnNotFound))
}

func TestConfigure_AutoDetect(t *testing.T) {
	_, warning, err := Configure(inputSpec(t), Settings{ComputeProfile: true})
	require.NoError(t, err)
	assert.Equal(t, `Column "Structure" automatically chosen as molecule column`, warning)
}

func TestConfigure_NoMoleculeColumn(t *testing.T) {
	spec, err := NewTableSpec(ColumnSpec{Name: "ID", Type: ColumnString})
	require.NoError(t, err)

	_, _, err = Configure(spec, Settings{ComputeProfile: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableNoMoleculeColumn))
}

func TestConfigure_NoOutputEnabled(t *testing.T) {
	_, _, err := Configure(inputSpec(t), Settings{MoleculeColumn: "Structure"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableSettingsInvalid))
}

func TestConfigure_WhimColumnsAndUniquify(t *testing.T) {
	spec, err := NewTableSpec(
		ColumnSpec{Name: "Structure", Type: ColumnMolecule},
		ColumnSpec{Name: "WHIM (unity)", Type: ColumnString},
	)
	require.NoError(t, err)

	out, _, err := Configure(spec, Settings{
		MoleculeColumn: "Structure",
		WhimSchemes:    []whim.Scheme{whim.SchemeUnity, whim.SchemeMass},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, out.NumColumns())
	assert.Equal(t, "WHIM (unity) (#1)", out.Column(2).Name)
	assert.Equal(t, ColumnDoubleList, out.Column(2).Type)
	assert.Equal(t, "WHIM (mass)", out.Column(3).Name)
}

func newTestRearranger(t *testing.T, settings Settings) *Rearranger {
	t.Helper()
	svc := compute.NewService(compute.Config{}, testutil.NewMockLogger(), nil)
	r, err := NewRearranger(inputSpec(t), settings, svc, testutil.NewMockLogger())
	require.NoError(t, err)
	return r
}

func TestAppend_ProfileCells(t *testing.T) {
	r := newTestRearranger(t, Settings{MoleculeColumn: "Structure", ComputeProfile: true})

	out, err := r.Append(context.Background(), Row{StringCell("r1"), MoleculeCell(methanolDTO())})
	require.NoError(t, err)
	require.Len(t, out, r.OutputSpec().NumColumns())

	formula, err := out[2].Text()
	require.NoError(t, err)
	assert.Equal(t, "CH4O", formula)

	weight, err := out[3].Double()
	require.NoError(t, err)
	assert.InDelta(t, 32.042, weight, 1e-9)

	i, ok := r.OutputSpec().Find("H-bond acceptors")
	require.True(t, ok)
	acceptors, err := out[i].Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(1), acceptors)
}

func TestAppend_WhimVector(t *testing.T) {
	r := newTestRearranger(t, Settings{
		MoleculeColumn: "Structure",
		WhimSchemes:    []whim.Scheme{whim.SchemeUnity},
	})

	out, err := r.Append(context.Background(), Row{StringCell("r1"), MoleculeCell(methanolDTO())})
	require.NoError(t, err)

	vec, err := out[2].DoubleList()
	require.NoError(t, err)
	require.Len(t, vec, 9)
	// Two atoms 1.4 Å apart on the x axis: a single non-zero eigenvalue.
	assert.InDelta(t, 0.49, vec[0], 1e-9)
	assert.Zero(t, vec[1])
}

func TestAppend_MissingMoleculeCell(t *testing.T) {
	r := newTestRearranger(t, Settings{MoleculeColumn: "Structure", ComputeProfile: true})

	out, err := r.Append(context.Background(), Row{StringCell("r1"), MissingCell()})
	require.NoError(t, err)
	require.Len(t, out, r.OutputSpec().NumColumns())
	for _, cell := range out[2:] {
		assert.True(t, cell.IsMissing())
	}
}

func TestAppend_MalformedMolecule(t *testing.T) {
	r := newTestRearranger(t, Settings{MoleculeColumn: "Structure", ComputeProfile: true})
	bad := &moltypes.MoleculeDTO{
		Atoms: []moltypes.AtomDTO{{Symbol: "C"}},
		Bonds: []moltypes.BondDTO{{From: 0, To: 5, Order: "single"}},
	}

	_, err := r.Append(context.Background(), Row{StringCell("r1"), MoleculeCell(bad)})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeAtomIndex))
}

func TestAppend_WrongCellTypeInMoleculeColumn(t *testing.T) {
	r := newTestRearranger(t, Settings{MoleculeColumn: "Structure", ComputeProfile: true})

	_, err := r.Append(context.Background(), Row{StringCell("r1"), StringCell("not a molecule")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableCellType))
}

func TestAppend_RowWidthMismatch(t *testing.T) {
	r := newTestRearranger(t, Settings{MoleculeColumn: "Structure", ComputeProfile: true})

	_, err := r.Append(context.Background(), Row{StringCell("r1")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestAppend_ConcurrentRows(t *testing.T) {
	r := newTestRearranger(t, Settings{MoleculeColumn: "Structure", ComputeProfile: true})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := r.Append(context.Background(), Row{StringCell("r"), MoleculeCell(methanolDTO())})
			assert.NoError(t, err)
			assert.Len(t, out, r.OutputSpec().NumColumns())
		}()
	}
	wg.Wait()
}
