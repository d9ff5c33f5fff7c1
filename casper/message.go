// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper

import (
	"encoding/binary"
	"sort"
)

// Message is the immutable (sender, estimate, justification) triple,
// content-identified by Hash (C3, §3). Once constructed a Message is
// never mutated; many justifications and working sets may hold the
// same *Message, and Go's garbage collector reclaims it once the last
// holder releases its reference — the idiomatic analogue of the
// original's Arc<ProtoMsg> sharing.
type Message[E Estimate, S Sender] struct {
	sender        S
	estimate      E
	justification *Justification[E, S]
	id            Hash
}

// NewMessage builds a Message from its constituents and derives its
// content identifier per §6. justification may be nil, meaning empty
// (a genesis-like, unjustified message).
func NewMessage[E Estimate, S Sender](sender S, estimate E, justification *Justification[E, S]) *Message[E, S] {
	if justification == nil {
		justification = EmptyJustification[E, S]()
	}
	m := &Message[E, S]{
		sender:        sender,
		estimate:      estimate,
		justification: justification,
	}
	m.id = SumHash(encodeMessage(sender, estimate, justification))
	return m
}

// Sender returns the validator that sent m.
func (m *Message[E, S]) Sender() S { return m.sender }

// Estimate returns m's carried consensus value.
func (m *Message[E, S]) Estimate() E { return m.estimate }

// Justification returns m's justification (its causal past).
func (m *Message[E, S]) Justification() *Justification[E, S] { return m.justification }

// ID returns m's content identifier.
func (m *Message[E, S]) ID() Hash { return m.id }

// Equal reports whether m and o are the same message. Two messages
// are equal iff their identifiers are equal; pointer equality is
// checked first as a permitted fast path (§3).
func (m *Message[E, S]) Equal(o *Message[E, S]) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	return m.id == o.id
}

// encodeMessage produces the stable serialization whose hash is a
// Message's identifier: sender's canonical encoding, the estimate's
// canonical encoding, then the justification as its sorted ascending
// sequence of ids (§6). Two messages with the same justification SET
// serialize identically regardless of insertion order, because the
// justification is always re-sorted here.
func encodeMessage[E Estimate, S Sender](sender S, estimate E, justification *Justification[E, S]) []byte {
	senderBytes := sender.Bytes()
	estimateBytes := estimate.Bytes()
	ids := justification.SortedIDs()

	buf := make([]byte, 0, 8+len(senderBytes)+8+len(estimateBytes)+8+32*len(ids))
	buf = appendUint32Prefixed(buf, senderBytes)
	buf = appendUint32Prefixed(buf, estimateBytes)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(ids)))
	for _, id := range ids {
		buf = append(buf, id[:]...)
	}
	return buf
}

func appendUint32Prefixed(buf, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// SortedIDs returns the ascending-sorted ids of every message directly
// in j, used both for message-identifier derivation and for
// deterministic iteration elsewhere in the package.
func (j *Justification[E, S]) SortedIDs() []Hash {
	ids := make([]Hash, 0, len(j.messages))
	for _, m := range j.messages {
		ids = append(ids, m.id)
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i].Less(ids[k]) })
	return ids
}
