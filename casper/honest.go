// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper

// LatestHonest is the projection of LatestMessages that excludes
// equivocators and validators with an ambiguous (cardinality != 1) tip
// set (C7, §4.4). It is the input consumed by estimators.
type LatestHonest[E Estimate, S Sender] struct {
	messages []*Message[E, S]
}

// NewLatestHonest derives a LatestHonest from latest and the set of
// known equivocators: for every (validator, tips) pair, include the
// single message iff validator is not an equivocator and len(tips)==1.
func NewLatestHonest[E Estimate, S Sender](latest *LatestMessages[E, S], equivocators map[S]struct{}) *LatestHonest[E, S] {
	honest := &LatestHonest[E, S]{messages: make([]*Message[E, S], 0, len(latest.tips))}
	for v, tips := range latest.tips {
		if _, bad := equivocators[v]; bad {
			continue
		}
		if len(tips) != 1 {
			continue
		}
		for _, m := range tips {
			honest.messages = append(honest.messages, m)
		}
	}
	return honest
}

// Messages returns the honest messages, one per honest validator, in
// unspecified order.
func (h *LatestHonest[E, S]) Messages() []*Message[E, S] {
	return h.messages
}

// Len returns the number of honest validators represented.
func (h *LatestHonest[E, S]) Len() int {
	return len(h.messages)
}

// MakeEstimate runs estimator over this projection and the given
// weights (§4.4, §4.8).
func (h *LatestHonest[E, S]) MakeEstimate(weights *Weights[S], estimator Estimator[E, S]) (E, error) {
	return estimator(h, weights)
}
