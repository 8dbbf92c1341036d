package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFundsRatio(t *testing.T) {
	split, err := SplitFunds(10000)
	require.NoError(t, err)

	assert.Equal(t, 7000.0, split.Team)
	assert.Equal(t, 2000.0, split.Mentor)
	assert.Equal(t, 1000.0, split.Lab)
}

func TestSplitFundsSumsToTotal(t *testing.T) {
	totals := []float64{0, 1, 99.99, 10000, 123456.78, 1e12}

	for _, total := range totals {
		split, err := SplitFunds(total)
		require.NoError(t, err, "total %v", total)

		sum := split.Team + split.Mentor + split.Lab
		assert.InDelta(t, total, sum, total*1e-9+1e-9, "total %v", total)

		if total > 0 {
			assert.InDelta(t, 7.0/2.0, split.Team/split.Mentor, 1e-9)
			assert.InDelta(t, 2.0/1.0, split.Mentor/split.Lab, 1e-9)
		}
	}
}

func TestSplitFundsZero(t *testing.T) {
	split, err := SplitFunds(0)
	require.NoError(t, err)
	assert.Zero(t, split.Team)
	assert.Zero(t, split.Mentor)
	assert.Zero(t, split.Lab)
}

func TestSplitFundsRejectsInvalidTotals(t *testing.T) {
	invalid := []float64{-1, -0.01, math.NaN(), math.Inf(1), math.Inf(-1)}

	for _, total := range invalid {
		_, err := SplitFunds(total)
		assert.ErrorIs(t, err, ErrInvalidAmount, "total %v", total)
	}
}
