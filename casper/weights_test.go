// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/casper"
)

func TestWeightUnknownValidatorIsNotFound(t *testing.T) {
	require := require.New(t)

	w := casper.NewWeights[sender](nil)
	_, err := w.Weight(s0)
	require.ErrorIs(err, casper.ErrNotFound)
}

func TestWeightOrInfinityForUnknownValidator(t *testing.T) {
	require := require.New(t)

	w := casper.NewWeights[sender](nil)
	require.True(math.IsInf(w.WeightOrInfinity(s0), 1))
}

func TestValidatorsExcludesNonPositiveAndNaN(t *testing.T) {
	require := require.New(t)

	w := casper.NewWeights(map[sender]float64{
		s0: 1.0,
		s1: 0,
		s2: -1.0,
		s3: math.NaN(),
		s4: math.Inf(1),
	})

	active := w.Validators()
	require.Contains(active, s0)
	require.NotContains(active, s1)
	require.NotContains(active, s2)
	require.NotContains(active, s3)
	require.Contains(active, s4)
}

func TestSumWeightsPropagatesNaNForUnknownValidator(t *testing.T) {
	require := require.New(t)

	w := casper.NewWeights(map[sender]float64{s0: 1.0})
	sum := w.SumWeights(map[sender]struct{}{s0: {}, s1: {}})
	require.True(math.IsNaN(sum))
}

func TestSumAllWeightsIgnoresInactive(t *testing.T) {
	require := require.New(t)

	w := casper.NewWeights(map[sender]float64{
		s0: 1.0,
		s1: 1.0,
		s2: 2.0,
		s3: 1.0,
		s4: 1.1,
	})
	require.InDelta(6.1, w.SumAllWeights(), 1e-9)
}

func TestInsertUpdatesWeight(t *testing.T) {
	require := require.New(t)

	w := casper.NewWeights[sender](nil)
	w.Insert(s0, 5.0)
	weight, err := w.Weight(s0)
	require.NoError(err)
	require.Equal(5.0, weight)

	w.Insert(s0, 0)
	_, inActive := w.Validators()[s0]
	require.False(inActive)
}
