// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper

import (
	"sort"

	"github.com/luxfi/casper/casperlog"
	"github.com/luxfi/casper/metrics"
)

// ValidatorState is the mutable per-participant view of the protocol:
// the weight table, the current latest-message projection, the set of
// detected equivocators, and the running fault weight, all guarded by
// a single admission path (C8, §3, §5). ValidatorState itself carries
// no lock: per §5 it is owned by one goroutine at a time rather than
// guarded by an internal mutex.
type ValidatorState[E Estimate, S Sender] struct {
	weights      *Weights[S]
	latest       *LatestMessages[E, S]
	equivocators map[S]struct{}
	faultWeight  float64
	threshold    float64

	log     casperlog.Logger
	metrics *metrics.Metrics
}

// New builds a ValidatorState over initialWeights with the given fault
// weight threshold. log and m may be nil, in which case a no-op logger
// and metrics sink are used.
func New[E Estimate, S Sender](initialWeights map[S]float64, threshold float64, log casperlog.Logger, m *metrics.Metrics) *ValidatorState[E, S] {
	if log == nil {
		log = casperlog.NoOp()
	}
	if m == nil {
		m = metrics.NoOp()
	}
	return &ValidatorState[E, S]{
		weights:      NewWeights(initialWeights),
		latest:       NewLatestMessages[E, S](),
		equivocators: make(map[S]struct{}),
		threshold:    threshold,
		log:          log,
		metrics:      m,
	}
}

// NewWithDefaults builds a ValidatorState with zero fault weight and a
// zero threshold (no tolerance for equivocation), supplementing the
// distillation with the original's new_with_default_state (§9).
func NewWithDefaults[E Estimate, S Sender](initialWeights map[S]float64) *ValidatorState[E, S] {
	return New[E, S](initialWeights, 0, nil, nil)
}

// Weights returns the validator weight table.
func (s *ValidatorState[E, S]) Weights() *Weights[S] { return s.weights }

// LatestMessages returns the current latest-message projection.
func (s *ValidatorState[E, S]) LatestMessages() *LatestMessages[E, S] { return s.latest }

// Equivocators returns the set of validators detected as faulty so
// far. The returned map must not be mutated by the caller.
func (s *ValidatorState[E, S]) Equivocators() map[S]struct{} { return s.equivocators }

// FaultWeight returns the total weight attributed to equivocators
// admitted so far.
func (s *ValidatorState[E, S]) FaultWeight() float64 { return s.faultWeight }

// Threshold returns the maximum fault weight s will tolerate before
// refusing further new equivocations.
func (s *ValidatorState[E, S]) Threshold() float64 { return s.threshold }

// Honest projects s's latest messages through its equivocator set
// (§4.4).
func (s *ValidatorState[E, S]) Honest() *LatestHonest[E, S] {
	return NewLatestHonest(s.latest, s.equivocators)
}

// Update admits every one of msgs into s unconditionally (§4.5): each
// message is inserted into a fresh justification and folded into s's
// latest-message projection regardless of fault weight. A message that
// newly equivocates only grows s's fault weight and equivocator set
// when doing so would not push the running fault weight past s's
// threshold; at or over threshold the equivocation still lands in
// LatestMessages (so the sender's ambiguous tip set still excludes it
// from Honest), it just isn't charged against the budget. Update
// reports the conjunction of each message's own "changed the tip set"
// result.
func (s *ValidatorState[E, S]) Update(msgs []*Message[E, S]) (*Justification[E, S], bool) {
	j := EmptyJustification[E, S]()
	allNew := true
	refused := 0
	for _, m := range msgs {
		j.insert(m)

		isEquivocation := s.latest.WouldEquivocate(m)
		isNew := s.latest.Update(m)
		allNew = allNew && isNew

		if isEquivocation {
			if _, alreadyFaulty := s.equivocators[m.Sender()]; !alreadyFaulty {
				weight := s.weights.WeightOrInfinity(m.Sender())
				if weight+s.faultWeight <= s.threshold {
					s.faultWeight += weight
					s.equivocators[m.Sender()] = struct{}{}
				} else {
					refused++
				}
			}
		}
	}
	if s.log != nil {
		s.log.Debug("validator state updated")
	}
	if s.metrics != nil {
		s.metrics.AdmissionsAccepted.Add(float64(len(msgs) - refused))
		s.metrics.AdmissionsRefused.Add(float64(refused))
		s.metrics.FaultWeight.Set(s.faultWeight)
		s.metrics.Equivocators.Set(float64(len(s.equivocators)))
	}
	return j, allNew
}

// SortByFaultWeight orders msgs so that messages whose admission would
// not change the fault weight (non-equivocations, or equivocations
// from an already-faulty sender) sort before those that would,
// weight-ascending within that tier, with ties broken by message id
// (§4.2). Feeding FaultyInsert in this order admits as many messages
// as possible under a fixed threshold.
func (s *ValidatorState[E, S]) SortByFaultWeight(msgs []*Message[E, S]) []*Message[E, S] {
	sorted := make([]*Message[E, S], len(msgs))
	copy(sorted, msgs)

	key := func(m *Message[E, S]) float64 {
		isEquivocation := s.latest.WouldEquivocate(m)
		_, alreadyFaulty := s.equivocators[m.Sender()]
		if !isEquivocation || alreadyFaulty {
			return 0
		}
		return s.weights.WeightOrInfinity(m.Sender())
	}

	sort.SliceStable(sorted, func(i, k int) bool {
		ki, kk := key(sorted[i]), key(sorted[k])
		if ki != kk {
			return ki < kk
		}
		return sorted[i].ID().Less(sorted[k].ID())
	})
	return sorted
}
