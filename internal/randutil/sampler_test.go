package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
}

func TestChooseIndex_AllZero(t *testing.T) {
	_, err := ChooseIndex([]float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrAllZeroWeights)
}

func TestChooseIndex_SingleNonZero(t *testing.T) {
	Seed(1, 1)
	idx, err := ChooseIndex([]float64{0, 0, 5, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestChooseIndex_Distribution(t *testing.T) {
	Seed(42, 7)
	counts := make([]int, 3)
	weights := []float64{1, 0, 9}
	for i := 0; i < 1000; i++ {
		idx, err := ChooseIndex(weights)
		require.NoError(t, err)
		counts[idx]++
	}
	assert.Zero(t, counts[1], "zero-weight entry should never be chosen")
	assert.Greater(t, counts[2], counts[0], "heavier weight should be chosen far more often")
}

func TestChooseWeighted(t *testing.T) {
	Seed(3, 4)
	handles := []string{"a", "b", "c"}
	weights := []float64{0, 1, 0}
	got, err := ChooseWeighted(handles, weights)
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}
