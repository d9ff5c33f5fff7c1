// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper

// Depends reports whether m causally depends on rhs: whether rhs is m
// itself, is directly justified by m, or is reachable by following
// justifications from m's direct justifications (C4, §4.1). The walk
// memoizes visited ids so a DAG with heavily shared ancestry is
// explored once per reachable message, not once per path to it.
func (m *Message[E, S]) Depends(rhs *Message[E, S]) bool {
	if m == nil || rhs == nil {
		return false
	}
	visited := make(map[Hash]struct{})
	return m.dependsOn(rhs, visited)
}

func (m *Message[E, S]) dependsOn(rhs *Message[E, S], visited map[Hash]struct{}) bool {
	if m.Equal(rhs) {
		return true
	}
	for _, j := range m.justification.messages {
		if _, seen := visited[j.id]; seen {
			continue
		}
		visited[j.id] = struct{}{}
		if j.Equal(rhs) {
			return true
		}
		if j.dependsOn(rhs, visited) {
			return true
		}
	}
	return false
}

// Equivocates reports whether m and rhs are a witnessed equivocation:
// distinct messages from the same sender, neither a causal descendant
// of the other (C4, §3).
func (m *Message[E, S]) Equivocates(rhs *Message[E, S]) bool {
	if m == nil || rhs == nil {
		return false
	}
	if m.Equal(rhs) {
		return false
	}
	if m.sender != rhs.sender {
		return false
	}
	if rhs.Depends(m) || m.Depends(rhs) {
		return false
	}
	return true
}

// IsCircular reports whether two distinct messages a and b mutually
// depend on each other. Equal messages are excluded (Depends is
// reflexive, so they trivially depend on each other) and IsCircular
// returns false for them. For well-formed DAGs it is always false; it
// is a sanity check against malformed justification DAGs rather than a
// reachable outcome of honest construction.
func IsCircular[E Estimate, S Sender](a, b *Message[E, S]) bool {
	return a.Depends(b) && b.Depends(a) && !a.Equal(b)
}
