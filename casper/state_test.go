// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/casper"
	"github.com/luxfi/casper/estimators/votecount"
)

// TestUpdateAdmitsEquivocationEvenOverThreshold checks that Update
// always folds every message into the latest-message projection, even
// an equivocation that would push the fault weight over threshold: the
// sender still ends up with a two-message tip set (and so drops out of
// Honest), but the over-threshold equivocation is never charged against
// the fault-weight budget or recorded in Equivocators.
func TestUpdateAdmitsEquivocationEvenOverThreshold(t *testing.T) {
	require := require.New(t)

	state := newState(map[sender]float64{s0: 1.0}, 0)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	b := casper.NewMessage[votecountType](s0, no(), nil)

	_, allNew := state.Update([]*casper.Message[votecountType, sender]{a, b})
	require.True(allNew)
	require.Len(state.LatestMessages().Get(s0), 2)
	require.Zero(state.FaultWeight())
	require.NotContains(state.Equivocators(), s0)
}

func TestUpdateReturnsTrueWhenEveryMessageIsAdmitted(t *testing.T) {
	require := require.New(t)

	state := newState(map[sender]float64{s0: 1.0, s1: 1.0}, 0)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	b := casper.NewMessage[votecountType](s1, no(), nil)

	_, allAdmitted := state.Update([]*casper.Message[votecountType, sender]{a, b})
	require.True(allAdmitted)
}

func TestHonestExcludesEquivocators(t *testing.T) {
	require := require.New(t)

	state := newState(map[sender]float64{s0: 1.0, s1: 1.0}, 1.0)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	b := casper.NewMessage[votecountType](s0, no(), nil)
	c := casper.NewMessage[votecountType](s1, yes(), nil)

	state.Update([]*casper.Message[votecountType, sender]{a, b, c})

	honest := state.Honest()
	senders := make(map[sender]struct{})
	for _, m := range honest.Messages() {
		senders[m.Sender()] = struct{}{}
	}
	require.NotContains(senders, s0)
	require.Contains(senders, s1)
}

// TestPluralityVoteScenario mirrors the vote-count estimator's
// simplest exercise: three honest validators each casting a single,
// unambiguous vote, with the majority estimate being the tally's
// plurality.
func TestPluralityVoteScenario(t *testing.T) {
	require := require.New(t)

	state := newState(map[sender]float64{s0: 1.0, s1: 1.0, s2: 1.0}, 0)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	b := casper.NewMessage[votecountType](s1, yes(), nil)
	c := casper.NewMessage[votecountType](s2, no(), nil)

	_, ok := state.Update([]*casper.Message[votecountType, sender]{a, b, c})
	require.True(ok)

	honest := state.Honest()
	estimate, err := honest.MakeEstimate(state.Weights(), votecount.Estimator[sender]())
	require.NoError(err)
	require.Equal(uint32(2), estimate.Yes)
	require.Equal(uint32(1), estimate.No)
}

func TestSortByFaultWeightOrdersFreeMessagesFirst(t *testing.T) {
	require := require.New(t)

	state := newState(map[sender]float64{s0: 1.0, s1: 5.0, s2: 1.0}, 10)
	a0 := casper.NewMessage[votecountType](s0, yes(), nil)
	b1 := casper.NewMessage[votecountType](s1, yes(), nil)
	state.Update([]*casper.Message[votecountType, sender]{a0, b1})

	// eq equivocates s1's existing tip (weight 5); fresh is s2's first
	// message, which never changes the fault weight.
	eq := casper.NewMessage[votecountType](s1, no(), nil)
	fresh := casper.NewMessage[votecountType](s2, yes(), nil)

	sorted := state.SortByFaultWeight([]*casper.Message[votecountType, sender]{eq, fresh})
	require.Len(sorted, 2)
	require.Same(fresh, sorted[0])
	require.Same(eq, sorted[1])
}
