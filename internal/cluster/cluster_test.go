package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two tight groups far apart; any sane 2-means run separates them.
var twoGroups = [][]float32{
	{0, 0}, {0.1, 0}, {0, 0.1},
	{10, 10}, {10.1, 10}, {10, 10.1},
}

func TestKMeans_SeparatesObviousGroups(t *testing.T) {
	labels, err := NewKMeans(42).Partition(twoGroups, 2)
	require.NoError(t, err)
	require.Len(t, labels, len(twoGroups))

	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.Equal(t, labels[3], labels[5])
	assert.NotEqual(t, labels[0], labels[3])
}

func TestKMeans_Deterministic(t *testing.T) {
	a, err := NewKMeans(42).Partition(twoGroups, 2)
	require.NoError(t, err)
	b, err := NewKMeans(42).Partition(twoGroups, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKMeans_LabelsWithinRange(t *testing.T) {
	labels, err := NewKMeans(7).Partition(twoGroups, 3)
	require.NoError(t, err)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 3)
	}
}

func TestKMeans_EveryLabelNamesARealPartition(t *testing.T) {
	labels, err := NewKMeans(1).Partition(twoGroups, 2)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, l := range labels {
		seen[l] = true
	}
	assert.Len(t, seen, 2)
}

func TestKMeans_ClampsKToVectorCount(t *testing.T) {
	vecs := [][]float32{{1}, {2}}
	labels, err := NewKMeans(42).Partition(vecs, 5)
	require.NoError(t, err)
	assert.Len(t, labels, 2)
	for _, l := range labels {
		assert.Less(t, l, 2)
	}
}

func TestKMeans_SingleVector(t *testing.T) {
	labels, err := NewKMeans(42).Partition([][]float32{{1, 2, 3}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, labels)
}

func TestKMeans_NoVectors(t *testing.T) {
	_, err := NewKMeans(42).Partition(nil, 2)
	assert.ErrorIs(t, err, ErrNoVectors)
}

func TestKMeans_InvalidK(t *testing.T) {
	_, err := NewKMeans(42).Partition([][]float32{{1}}, 0)
	assert.Error(t, err)
}

func TestKMeans_DimensionMismatch(t *testing.T) {
	_, err := NewKMeans(42).Partition([][]float32{{1, 2}, {1}}, 1)
	assert.Error(t, err)
}
