package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// withBits builds a path fingerprint of 16 bits with the given indices set.
func withBits(t *testing.T, indices ...int) *Fingerprint {
	t.Helper()
	fp, err := New(KindPath, 16)
	require.NoError(t, err)
	for _, i := range indices {
		fp.SetBit(i)
	}
	return fp
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, MetricTanimoto, m, "the empty string defaults to Tanimoto")

	m, err = ParseMetric(" Dice ")
	require.NoError(t, err)
	assert.Equal(t, MetricDice, m)

	_, err = ParseMetric("euclidean")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedMetric))
}

func TestSimilarity_ExactValues(t *testing.T) {
	// |A|=2, |B|=2, intersection=1, union=3.
	a := withBits(t, 0, 1)
	b := withBits(t, 1, 2)

	tanimoto, err := Tanimoto(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, tanimoto, 1e-12)

	dice, err := Dice(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dice, 1e-12)

	cosine, err := Cosine(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cosine, 1e-12)
}

func TestSimilarity_IdenticalAndDisjoint(t *testing.T) {
	a := withBits(t, 0, 5, 9)

	for _, metric := range Metrics() {
		score, err := Compare(metric, a, a)
		require.NoError(t, err, metric)
		assert.InDelta(t, 1.0, score, 1e-12, "identical fingerprints score 1 under %s", metric)
	}

	disjoint := withBits(t, 1, 6)
	for _, metric := range Metrics() {
		score, err := Compare(metric, a, disjoint)
		require.NoError(t, err, metric)
		assert.Zero(t, score, "disjoint fingerprints score 0 under %s", metric)
	}
}

func TestSimilarity_EmptyFingerprints(t *testing.T) {
	empty1 := withBits(t)
	empty2 := withBits(t)
	for _, metric := range Metrics() {
		score, err := Compare(metric, empty1, empty2)
		require.NoError(t, err, metric)
		assert.Zero(t, score)
	}
}

func TestSimilarity_Mismatch(t *testing.T) {
	a := withBits(t, 0)

	longer, err := New(KindPath, 32)
	require.NoError(t, err)
	_, err = Tanimoto(a, longer)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintMismatch))

	env, err := New(KindEnvironment, 16)
	require.NoError(t, err)
	_, err = Dice(a, env)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintMismatch))

	_, err = Cosine(a, nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFingerprintMismatch))
}

func TestCompare_UnsupportedMetric(t *testing.T) {
	a := withBits(t, 0)
	_, err := Compare(Metric("manhattan"), a, a)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedMetric))
}
