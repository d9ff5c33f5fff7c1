// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package votecount is the simplest possible casper.Estimate: a
// binary yes/no tally, used to drive the package's own tests rather
// than shipped as a production estimator (this protocol's only
// Non-goal carve-out on the domain stack: the yes/no tally belongs to
// test scaffolding, not the generic core).
package votecount

import (
	"encoding/binary"

	"github.com/luxfi/casper"
)

// VoteCount is a binary vote tally estimate: Yes and No count the
// unjustified votes observed for each side.
type VoteCount struct {
	Yes uint32
	No  uint32
}

// Yes returns the vote-count estimate for a "yes" vote.
func Yes() VoteCount { return VoteCount{Yes: 1} }

// No returns the vote-count estimate for a "no" vote.
func No() VoteCount { return VoteCount{No: 1} }

// Bytes returns VoteCount's canonical encoding, satisfying
// casper.Estimate.
func (v VoteCount) Bytes() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], v.Yes)
	binary.BigEndian.PutUint32(buf[4:8], v.No)
	return buf
}

// Add returns the pointwise sum of v and o.
func (v VoteCount) Add(o VoteCount) VoteCount {
	return VoteCount{Yes: v.Yes + o.Yes, No: v.No + o.No}
}

// IsValid reports whether v is a single, unambiguous unjustified
// vote — exactly one of Yes or No set to 1 and the other 0.
func (v VoteCount) IsValid() bool {
	return (v.Yes == 1 && v.No == 0) || (v.Yes == 0 && v.No == 1)
}

// Toggle flips a valid single vote to its opposite, used to represent
// an equivocating validator's vote as canceling out their own tally.
func (v VoteCount) Toggle() VoteCount {
	switch {
	case v.Yes == 1 && v.No == 0:
		return VoteCount{Yes: 0, No: 1}
	case v.Yes == 0 && v.No == 1:
		return VoteCount{Yes: 1, No: 0}
	default:
		return v
	}
}

// Estimator tallies every honest validator's latest vote, unweighted:
// the plurality estimator (§4.8 example use, §8 scenario S1).
func Estimator[S casper.Sender]() casper.Estimator[VoteCount, S] {
	return func(honest *casper.LatestHonest[VoteCount, S], _ *casper.Weights[S]) (VoteCount, error) {
		var sum VoteCount
		for _, m := range honest.Messages() {
			sum = sum.Add(m.Estimate())
		}
		return sum, nil
	}
}
