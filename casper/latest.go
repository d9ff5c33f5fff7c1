// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper

// LatestMessages maps each validator to the set of messages from that
// validator which are tips: no other known message from the same
// validator (transitively) cites them, and no strictly-later message
// from the same validator supersedes them. A validator whose set has
// more than one member is in a detected equivocation (C6, §3).
//
// LatestMessages carries no internal lock: per §5, it is mutated only
// through the single admission path owned by one ValidatorState, not
// shared across threads directly.
type LatestMessages[E Estimate, S Sender] struct {
	tips map[S]map[Hash]*Message[E, S]
}

// NewLatestMessages returns an empty LatestMessages.
func NewLatestMessages[E Estimate, S Sender]() *LatestMessages[E, S] {
	return &LatestMessages[E, S]{tips: make(map[S]map[Hash]*Message[E, S])}
}

// Get returns the tip set for validator v, or nil if v has no known
// messages.
func (l *LatestMessages[E, S]) Get(v S) map[Hash]*Message[E, S] {
	return l.tips[v]
}

// Senders returns the set of validators with at least one tip.
func (l *LatestMessages[E, S]) Senders() []S {
	out := make([]S, 0, len(l.tips))
	for v := range l.tips {
		out = append(out, v)
	}
	return out
}

// Update inserts a new message into the tip set of its sender,
// applying the supersede/incomparable/stale rules of §4.3. It reports
// whether the set changed.
func (l *LatestMessages[E, S]) Update(m *Message[E, S]) bool {
	sender := m.Sender()
	existing, ok := l.tips[sender]
	if !ok || len(existing) == 0 {
		l.tips[sender] = map[Hash]*Message[E, S]{m.ID(): m}
		return true
	}

	changed := false
	for id, tip := range existing {
		if tip.Equal(m) {
			continue
		}
		mDependsTip := m.Depends(tip)
		tipDependsM := tip.Depends(m)
		switch {
		case mDependsTip && !tipDependsM:
			// m supersedes tip.
			delete(existing, id)
			existing[m.ID()] = m
			changed = true
		case !mDependsTip && !tipDependsM:
			// incomparable: equivocation, m joins tip as another tip.
			if _, present := existing[m.ID()]; !present {
				existing[m.ID()] = m
				changed = true
			}
		default:
			// tip depends on m: m is older, skip.
		}
	}
	return changed
}

// WouldEquivocate reports whether m would be incomparable with some
// existing tip from m's sender — i.e. whether admitting m introduces
// (or continues) an equivocation.
func (l *LatestMessages[E, S]) WouldEquivocate(m *Message[E, S]) bool {
	for _, tip := range l.tips[m.Sender()] {
		if tip.Equivocates(m) {
			return true
		}
	}
	return false
}

// FromJustification reconstructs LatestMessages by queue-based
// traversal: seed with every message directly in j, and whenever
// Update reports a change, enqueue that message's own justification
// entries for further exploration (§4.3). The reachable closure yields
// correct tips for the closure of the DAG rooted at j.
func FromJustification[E Estimate, S Sender](j *Justification[E, S]) *LatestMessages[E, S] {
	latest := NewLatestMessages[E, S]()
	queue := make([]*Message[E, S], 0, j.Len())
	queue = append(queue, j.messages...)
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		if latest.Update(m) {
			queue = append(queue, m.justification.messages...)
		}
	}
	return latest
}
