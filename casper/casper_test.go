// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper_test

import (
	"encoding/binary"

	"github.com/luxfi/casper/estimators/votecount"
)

// sender is the test Sender: a small integer validator identity.
type sender uint32

func (s sender) Bytes() []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(s))
	return buf
}

const (
	s0 sender = iota
	s1
	s2
	s3
	s4
)

// votecountType names the estimate type this package's tests drive
// the generic protocol with, since plain type inference from a bare
// composite literal isn't always enough at call sites that also pass
// a nil justification.
type votecountType = votecount.VoteCount

func yes() votecountType { return votecount.Yes() }
func no() votecountType  { return votecount.No() }
