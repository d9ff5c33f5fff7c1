// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block supplies the example GHOST-based Estimate (C9): a
// simple chain of Blocks, each naming the validator that produced it
// and pointing at its (possibly nil) predecessor, content-identified
// the same way casper.Message is.
package block

import (
	"encoding/binary"

	"github.com/luxfi/casper"
)

// Block is a node in a chain of blocks: nil Prev marks a genesis
// block. Block satisfies casper.Estimate, so Message[Block[S], S] is a
// valid instantiation of the generic protocol (§4.6).
type Block[S casper.Sender] struct {
	Prev   *Block[S]
	Sender S
	id     casper.Hash
}

// New builds a Block from an optional predecessor and its producer.
func New[S casper.Sender](prev *Block[S], sender S) *Block[S] {
	b := &Block[S]{Prev: prev, Sender: sender}
	b.id = casper.SumHash(b.encode())
	return b
}

// ID returns the block's content identifier.
func (b *Block[S]) ID() casper.Hash {
	if b == nil {
		return casper.ZeroHash
	}
	return b.id
}

// Bytes returns Block's canonical encoding, satisfying casper.Estimate.
// Since Block is used as a casper.Estimate by value (via *Block[S]
// dereference at the call sites below), Bytes is defined on the value
// receiver so a Block copy still encodes consistently.
func (b Block[S]) Bytes() []byte {
	return (&b).encode()
}

func (b *Block[S]) encode() []byte {
	senderBytes := b.Sender.Bytes()
	prevID := casper.ZeroHash
	if b.Prev != nil {
		prevID = b.Prev.ID()
	}
	buf := make([]byte, 0, 4+len(senderBytes)+32)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(senderBytes)))
	buf = append(buf, senderBytes...)
	buf = append(buf, prevID[:]...)
	return buf
}

// IsMember reports whether b appears in rhs's ancestry: b equals rhs,
// or b is a member of rhs's predecessor, recursively (§4.6 point 1).
func (b *Block[S]) IsMember(rhs *Block[S]) bool {
	if rhs == nil {
		return b == nil
	}
	if b.sameAs(rhs) {
		return true
	}
	return b.IsMember(rhs.Prev)
}

func (b *Block[S]) sameAs(rhs *Block[S]) bool {
	if b == rhs {
		return true
	}
	if b == nil || rhs == nil {
		return false
	}
	return b.id == rhs.id
}
