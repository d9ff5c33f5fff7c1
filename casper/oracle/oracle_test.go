// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/casper"
	"github.com/luxfi/casper/block"
	"github.com/luxfi/casper/oracle"
)

type sender uint32

func (s sender) Bytes() []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(s))
	return buf
}

const (
	s0 sender = iota
	s1
)

func honestOf(msgs ...*casper.Message[*block.Block[sender], sender]) *casper.LatestHonest[*block.Block[sender], sender] {
	latest := casper.NewLatestMessages[*block.Block[sender], sender]()
	for _, m := range msgs {
		latest.Update(m)
	}
	return casper.NewLatestHonest(latest, map[sender]struct{}{})
}

// TestSafetyOraclesRequiresMutualAgreement checks that a validator's
// endorsement of an ancestor block only contributes to a clique once
// every member has, in their own justification, seen every other
// member agreeing too (§4.7, §8 scenario on clique formation).
func TestSafetyOraclesRequiresMutualAgreement(t *testing.T) {
	require := require.New(t)
	weights := casper.NewWeights(map[sender]float64{s0: 1.0, s1: 1.0})

	genesis := block.New[sender](nil, s0)
	m0 := casper.NewMessage[*block.Block[sender]](s0, genesis, nil)

	b1 := block.New(genesis, s1)
	m1 := casper.NewMessage[*block.Block[sender]](s1, b1, casper.NewJustification[*block.Block[sender], sender](m0))

	// Only m0 and m1 exist: s1 has seen s0 agreeing (via m0), but s0
	// has not yet seen s1 agreeing back, so no mutual edge exists.
	honest := honestOf(m0, m1)
	cliques := oracle.SafetyOracles[*block.Block[sender]](genesis, honest, map[sender]struct{}{}, 0, weights)
	require.Empty(cliques)

	// Once s0 produces a message citing m1, both directions of
	// agreement exist and {s0, s1} becomes a clique.
	b2 := block.New(b1, s0)
	m2 := casper.NewMessage[*block.Block[sender]](s0, b2, casper.NewJustification[*block.Block[sender], sender](m1))

	honestAfter := honestOf(m1, m2)
	cliquesAfter := oracle.SafetyOracles[*block.Block[sender]](genesis, honestAfter, map[sender]struct{}{}, 1.0, weights)
	require.Len(cliquesAfter, 1)
	require.True(cliquesAfter[0].Contains(s0))
	require.True(cliquesAfter[0].Contains(s1))
}

func TestSafetyOraclesExcludesCliquesUnderThreshold(t *testing.T) {
	require := require.New(t)
	weights := casper.NewWeights(map[sender]float64{s0: 1.0, s1: 1.0})

	genesis := block.New[sender](nil, s0)
	m0 := casper.NewMessage[*block.Block[sender]](s0, genesis, nil)

	b1 := block.New(genesis, s1)
	m1 := casper.NewMessage[*block.Block[sender]](s1, b1, casper.NewJustification[*block.Block[sender], sender](m0))

	b2 := block.New(b1, s0)
	m2 := casper.NewMessage[*block.Block[sender]](s0, b2, casper.NewJustification[*block.Block[sender], sender](m1))

	honest := honestOf(m1, m2)
	cliques := oracle.SafetyOracles[*block.Block[sender]](genesis, honest, map[sender]struct{}{}, 2.0, weights)
	require.Empty(cliques, "combined weight 2.0 does not strictly exceed a 2.0 threshold")
}
