package whim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// mustAtom adds an atom with coordinates or fails the test.
func mustAtom(t *testing.T, m *graph.Molecule, symbol string, x, y, z float64) *graph.Atom {
	t.Helper()
	a, err := m.AddAtom(graph.AtomSpec{Symbol: symbol, X: x, Y: y, Z: z, HasCoords: true})
	require.NoError(t, err)
	return a
}

func TestParseScheme(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"unity", "mass", "polarizability", "vdw", "electronegativity"} {
		scheme, err := ParseScheme(name)
		require.NoError(t, err, name)
		assert.Equal(t, Scheme(name), scheme)
	}

	scheme, err := ParseScheme("  Mass ")
	require.NoError(t, err)
	assert.Equal(t, SchemeMass, scheme)

	_, err = ParseScheme("charge")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownScheme))
}

func TestParseSchemes(t *testing.T) {
	t.Parallel()
	schemes, err := ParseSchemes(nil)
	require.NoError(t, err)
	assert.Equal(t, []Scheme{SchemeUnity}, schemes)

	schemes, err = ParseSchemes([]string{"mass", "vdw"})
	require.NoError(t, err)
	assert.Equal(t, []Scheme{SchemeMass, SchemeVdw}, schemes)

	_, err = ParseSchemes([]string{"mass", "mass"})
	require.Error(t, err)

	_, err = ParseSchemes([]string{"mass", "bogus"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownScheme))
}

func TestCalculate_PlanarSquare(t *testing.T) {
	t.Parallel()
	// Four unit-weight points on the axes of the xy-plane: eigenvalues are
	// exactly 0.5, 0.5, 0.
	m := graph.New()
	mustAtom(t, m, "C", 1, 0, 0)
	mustAtom(t, m, "C", -1, 0, 0)
	mustAtom(t, m, "C", 0, 1, 0)
	mustAtom(t, m, "C", 0, -1, 0)

	res, err := Calculate(m, SchemeUnity)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.L1, 1e-12)
	assert.InDelta(t, 0.5, res.L2, 1e-12)
	assert.InDelta(t, 0.0, res.L3, 1e-12)
	assert.InDelta(t, 1.0, res.T, 1e-12)
	assert.InDelta(t, 0.25, res.A, 1e-12)
	assert.InDelta(t, 1.25, res.V, 1e-12)
	assert.InDelta(t, 0.5, res.Nu1, 1e-12)
	assert.InDelta(t, 0.5, res.Nu2, 1e-12)
	assert.InDelta(t, 0.5, res.K, 1e-12)
}

func TestCalculate_LinearMolecule(t *testing.T) {
	t.Parallel()
	// Two points on the x axis: all variance along one direction, K = 1.
	m := graph.New()
	mustAtom(t, m, "C", 1, 0, 0)
	mustAtom(t, m, "C", -1, 0, 0)

	res, err := Calculate(m, SchemeUnity)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.L1, 1e-12)
	assert.InDelta(t, 0.0, res.L2, 1e-12)
	assert.InDelta(t, 1.0, res.Nu1, 1e-12)
	assert.InDelta(t, 1.0, res.K, 1e-12)
}

func TestCalculate_EqualWeightsCancel(t *testing.T) {
	t.Parallel()
	// A homonuclear pair gives identical results under every scheme because
	// the per-atom weights are equal and normalization divides them out.
	m := graph.New()
	mustAtom(t, m, "O", 1, 0, 0)
	mustAtom(t, m, "O", -1, 0, 0)

	unity, err := Calculate(m, SchemeUnity)
	require.NoError(t, err)
	for _, scheme := range []Scheme{SchemeMass, SchemePolarizability, SchemeVdw, SchemeElectronegativity} {
		res, err := Calculate(m, scheme)
		require.NoError(t, err, scheme)
		assert.InDelta(t, unity.L1, res.L1, 1e-12, scheme)
		assert.InDelta(t, unity.T, res.T, 1e-12, scheme)
	}
}

func TestCalculate_WeightsShiftCentroid(t *testing.T) {
	t.Parallel()
	// A heteronuclear pair: under the mass scheme the heavy atom pulls the
	// centroid, shrinking the weighted variance relative to unity.
	m := graph.New()
	mustAtom(t, m, "Br", 0, 0, 0)
	mustAtom(t, m, "H", 1.41, 0, 0)

	unity, err := Calculate(m, SchemeUnity)
	require.NoError(t, err)
	mass, err := Calculate(m, SchemeMass)
	require.NoError(t, err)
	assert.Less(t, mass.L1, unity.L1)
}

func TestCalculate_SingleAtom(t *testing.T) {
	t.Parallel()
	m := graph.New()
	mustAtom(t, m, "C", 3, 4, 5)

	res, err := Calculate(m, SchemeUnity)
	require.NoError(t, err)
	assert.Zero(t, res.L1)
	assert.Zero(t, res.T)
	assert.Zero(t, res.K)
}

func TestCalculate_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty molecule", func(t *testing.T) {
		t.Parallel()
		_, err := Calculate(graph.New(), SchemeUnity)
		assert.True(t, errors.IsCode(err, errors.ErrCodeEmptyMolecule))
	})

	t.Run("missing coordinates", func(t *testing.T) {
		t.Parallel()
		m := graph.New()
		_, err := m.AddAtom(graph.AtomSpec{Symbol: "C"})
		require.NoError(t, err)
		_, err = Calculate(m, SchemeUnity)
		assert.True(t, errors.IsCode(err, errors.ErrCodeMissingCoordinates))
	})

	t.Run("unknown element under mass scheme", func(t *testing.T) {
		t.Parallel()
		m := graph.New()
		mustAtom(t, m, "Zz", 0, 0, 0)
		_, err := Calculate(m, SchemeMass)
		assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeUnknownElement))

		// The unity scheme never consults the element table.
		_, err = Calculate(m, SchemeUnity)
		assert.NoError(t, err)
	})
}

func TestCalculateAll(t *testing.T) {
	t.Parallel()
	m := graph.New()
	mustAtom(t, m, "C", 1, 0, 0)
	mustAtom(t, m, "C", -1, 0, 0)

	results, err := CalculateAll(m, []Scheme{SchemeUnity, SchemeMass})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, SchemeUnity, results[SchemeUnity].Scheme)
	assert.Equal(t, SchemeMass, results[SchemeMass].Scheme)

	_, err = CalculateAll(graph.New(), []Scheme{SchemeUnity})
	assert.Error(t, err)
}
