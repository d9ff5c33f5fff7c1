// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/casper"
)

func TestMessageIDIsContentStable(t *testing.T) {
	require := require.New(t)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	b := casper.NewMessage[votecountType](s0, yes(), nil)

	require.Equal(a.ID(), b.ID())
	require.True(a.Equal(b))
}

func TestMessageIDChangesWithJustification(t *testing.T) {
	require := require.New(t)

	root := casper.NewMessage[votecountType](s0, yes(), nil)
	j1 := casper.NewJustification[votecountType, sender](root)
	j2 := casper.NewJustification[votecountType, sender]()

	withJustification := casper.NewMessage[votecountType](s1, no(), j1)
	withoutJustification := casper.NewMessage[votecountType](s1, no(), j2)

	require.NotEqual(withJustification.ID(), withoutJustification.ID())
}

func TestJustificationOrderDoesNotAffectID(t *testing.T) {
	require := require.New(t)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	b := casper.NewMessage[votecountType](s1, no(), nil)

	forward := casper.NewJustification[votecountType, sender](a, b)
	backward := casper.NewJustification[votecountType, sender](b, a)

	m1 := casper.NewMessage[votecountType](s2, yes(), forward)
	m2 := casper.NewMessage[votecountType](s2, yes(), backward)

	require.Equal(m1.ID(), m2.ID())
}

func TestDependsIsReflexiveAndTransitive(t *testing.T) {
	require := require.New(t)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	require.True(a.Depends(a))

	jb := casper.NewJustification[votecountType, sender](a)
	b := casper.NewMessage[votecountType](s1, no(), jb)
	require.True(b.Depends(a))
	require.False(a.Depends(b))

	jc := casper.NewJustification[votecountType, sender](b)
	c := casper.NewMessage[votecountType](s2, yes(), jc)
	require.True(c.Depends(a))
	require.True(c.Depends(b))
	require.False(a.Depends(c))
}

func TestEquivocatesDetectsSiblingMessagesFromSameSender(t *testing.T) {
	require := require.New(t)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	b := casper.NewMessage[votecountType](s0, no(), nil)

	require.True(a.Equivocates(b))
	require.True(b.Equivocates(a))
}

func TestEquivocatesIsFalseForDifferentSenders(t *testing.T) {
	require := require.New(t)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	b := casper.NewMessage[votecountType](s1, no(), nil)

	require.False(a.Equivocates(b))
}

func TestEquivocatesIsFalseAlongADependencyChain(t *testing.T) {
	require := require.New(t)

	a := casper.NewMessage[votecountType](s0, yes(), nil)
	jb := casper.NewJustification[votecountType, sender](a)
	b := casper.NewMessage[votecountType](s0, yes(), jb)

	require.False(a.Equivocates(b))
	require.False(b.Equivocates(a))
}
