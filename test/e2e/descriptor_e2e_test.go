package e2e_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

// aceticAcid is CH3-COOH with explicit heavy atoms and implicit hydrogens.
func aceticAcid() moltypes.MoleculeDTO {
	return moltypes.MoleculeDTO{
		Name: "acetic acid",
		Atoms: []moltypes.AtomDTO{
			{Symbol: "C", Hydrogens: 3},
			{Symbol: "C"},
			{Symbol: "O"},
			{Symbol: "O", Hydrogens: 1},
		},
		Bonds: []moltypes.BondDTO{
			{From: 0, To: 1, Order: "single"},
			{From: 1, To: 2, Order: "double"},
			{From: 1, To: 3, Order: "single"},
		},
	}
}

func benzene3D() moltypes.MoleculeDTO {
	// Flat regular hexagon, 1.39 Å bond length, aromatic ring.  Exact
	// vertex coordinates so the in-plane spread is perfectly symmetric.
	const r = 1.39
	h := r * math.Sqrt(3) / 2
	coords := [][2]float64{
		{r, 0}, {r / 2, h}, {-r / 2, h},
		{-r, 0}, {-r / 2, -h}, {r / 2, -h},
	}
	dto := moltypes.MoleculeDTO{Name: "benzene"}
	for _, c := range coords {
		dto.Atoms = append(dto.Atoms, moltypes.AtomDTO{
			Symbol: "C", Hydrogens: 1, Aromatic: true,
			X: c[0], Y: c[1], HasCoords: true,
		})
	}
	for i := 0; i < 6; i++ {
		order := "single"
		if i%2 == 0 {
			order = "double"
		}
		dto.Bonds = append(dto.Bonds, moltypes.BondDTO{From: i, To: (i + 1) % 6, Order: order})
	}
	return dto
}

func TestE2E_Profile(t *testing.T) {
	profile, err := env.sdk.Profile(context.Background(), aceticAcid())
	require.NoError(t, err)

	assert.Equal(t, "C2H4O2", profile.Formula)
	assert.InDelta(t, 60.052, profile.MolecularWeight, 0.01)
	assert.Equal(t, 2, profile.Acceptors)
	assert.Equal(t, 1, profile.Donors)
}

func TestE2E_Profile_InvalidMolecule(t *testing.T) {
	_, err := env.sdk.Profile(context.Background(), moltypes.MoleculeDTO{
		Atoms: []moltypes.AtomDTO{{Symbol: ""}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeEmptySymbol))
}

func TestE2E_Acceptors(t *testing.T) {
	count, err := env.sdk.Acceptors(context.Background(), aceticAcid())
	require.NoError(t, err)
	assert.Equal(t, 2, count.Count)
}

func TestE2E_ProfileBatch(t *testing.T) {
	resp, err := env.sdk.ProfileBatch(context.Background(), common.BatchRequest[moltypes.MoleculeDTO]{
		Items: []moltypes.MoleculeDTO{
			aceticAcid(),
			{Atoms: []moltypes.AtomDTO{{Symbol: "Zz"}}},
			benzene3D(),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalProcessed)
	require.Len(t, resp.Succeeded, 2)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, 1, resp.Failed[0].Index)
}

func TestE2E_Whim(t *testing.T) {
	results, err := env.sdk.Whim(context.Background(), moltypes.WhimRequest{
		Molecule: benzene3D(),
		Schemes:  []string{"unity", "mass"},
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "unity", results[0].Scheme)
	assert.Equal(t, "mass", results[1].Scheme)
	// A flat ring spreads equally over two principal axes.
	assert.InDelta(t, results[0].L1, results[0].L2, 1e-6)
	assert.InDelta(t, 0.0, results[0].L3, 1e-9)
}

func TestE2E_Whim_RequiresCoordinates(t *testing.T) {
	_, err := env.sdk.Whim(context.Background(), moltypes.WhimRequest{Molecule: aceticAcid()})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingCoordinates))
}

func TestE2E_Similarity(t *testing.T) {
	resp, err := env.sdk.Similarity(context.Background(), moltypes.SimilarityRequest{
		A:      aceticAcid(),
		B:      aceticAcid(),
		Metric: "tanimoto",
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, resp.Score, 1e-9)

	resp, err = env.sdk.Similarity(context.Background(), moltypes.SimilarityRequest{
		A: aceticAcid(),
		B: benzene3D(),
	})
	require.NoError(t, err)
	assert.Less(t, resp.Score, 1.0)
}
