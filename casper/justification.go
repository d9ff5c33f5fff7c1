// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper


// Justification is an ordered, deduplicated collection of messages
// directly cited by some other message, or directly admitted into a
// ValidatorState (C5, §3). Order is insertion order; SortedIDs exists
// for callers that need a canonical view.
type Justification[E Estimate, S Sender] struct {
	messages []*Message[E, S]
	index    map[Hash]struct{}
}

// EmptyJustification returns a Justification with no messages.
func EmptyJustification[E Estimate, S Sender]() *Justification[E, S] {
	return &Justification[E, S]{index: make(map[Hash]struct{})}
}

// NewJustification builds a Justification from an initial slice of
// messages, deduplicating by id.
func NewJustification[E Estimate, S Sender](msgs ...*Message[E, S]) *Justification[E, S] {
	j := EmptyJustification[E, S]()
	for _, m := range msgs {
		j.insert(m)
	}
	return j
}

// Len returns the number of messages directly in j.
func (j *Justification[E, S]) Len() int { return len(j.messages) }

// Contains reports whether a message with id is directly in j.
func (j *Justification[E, S]) Contains(id Hash) bool {
	_, ok := j.index[id]
	return ok
}

// Messages returns j's messages in insertion order. The returned slice
// must not be mutated by the caller.
func (j *Justification[E, S]) Messages() []*Message[E, S] { return j.messages }

// insert unconditionally adds m to j if not already present, with no
// fault-weight bookkeeping. Used by constructors and by the admission
// paths below once their checks have passed.
func (j *Justification[E, S]) insert(m *Message[E, S]) bool {
	if j.Contains(m.ID()) {
		return false
	}
	j.messages = append(j.messages, m)
	j.index[m.ID()] = struct{}{}
	return true
}

// FaultyInsert admits m into j, updating state's latest-message view
// and fault-weight ledger, applying the exact case analysis of §4.2:
//
//   - not an equivocation: insert and update latest messages
//     unconditionally.
//   - an equivocation from a sender already counted as faulty: insert
//     and update unconditionally (already paid for).
//   - a new equivocation whose sender's weight, added to the current
//     fault weight, would still be at or under the threshold: insert,
//     update latest messages, record the sender as an equivocator, and
//     add its weight to the fault weight.
//   - a new equivocation that would push the fault weight over the
//     threshold: refuse. j and state are left unchanged.
//
// An unrecognized sender is treated as having infinite weight, so any
// equivocation from them always refuses unless the threshold is
// itself infinite.
func (j *Justification[E, S]) FaultyInsert(m *Message[E, S], state *ValidatorState[E, S]) bool {
	isEquivocation := state.latest.WouldEquivocate(m)
	_, alreadyFaulty := state.equivocators[m.Sender()]

	switch {
	case !isEquivocation, isEquivocation && alreadyFaulty:
		j.insert(m)
		state.latest.Update(m)
		return true
	default:
		weight := state.weights.WeightOrInfinity(m.Sender())
		if weight+state.faultWeight > state.threshold {
			return false
		}
		j.insert(m)
		state.latest.Update(m)
		state.equivocators[m.Sender()] = struct{}{}
		state.faultWeight += weight
		return true
	}
}

// FaultyInsertWithSlash admits m unconditionally, but on detecting a
// new equivocation it zeroes the sender's weight in state's Weights
// instead of refusing admission — the alternative "slash" admission
// policy supplementing FaultyInsert (§9 redesign note).
func (j *Justification[E, S]) FaultyInsertWithSlash(m *Message[E, S], state *ValidatorState[E, S]) {
	isEquivocation := state.latest.WouldEquivocate(m)
	j.insert(m)
	state.latest.Update(m)
	if isEquivocation {
		state.equivocators[m.Sender()] = struct{}{}
		state.weights.Insert(m.Sender(), 0)
	}
}

// MakeEstimate projects j's own messages to their latest-honest view
// (ignoring equivocators) and runs estimator over it — the estimate a
// brand-new message citing exactly j as its justification would carry
// (§4.8).
func (j *Justification[E, S]) MakeEstimate(equivocators map[S]struct{}, weights *Weights[S], estimator Estimator[E, S]) (E, error) {
	latest := NewLatestMessages[E, S]()
	for _, m := range j.messages {
		latest.Update(m)
	}
	honest := NewLatestHonest(latest, equivocators)
	return honest.MakeEstimate(weights, estimator)
}

// FaultyInserts admits msgs into j one at a time, in the order
// produced by state.SortByFaultWeight, so that messages least likely
// to blow the fault-weight budget are tried first (§4.2). It returns
// the subset actually admitted, in admission order.
func (j *Justification[E, S]) FaultyInserts(msgs []*Message[E, S], state *ValidatorState[E, S]) []*Message[E, S] {
	ordered := state.SortByFaultWeight(msgs)
	admitted := make([]*Message[E, S], 0, len(ordered))
	for _, m := range ordered {
		if j.FaultyInsert(m, state) {
			admitted = append(admitted, m)
		}
	}
	return admitted
}
