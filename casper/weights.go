// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper

import (
	"math"
	"sync"
)

// Sender is the set of constraints a validator identifier must
// satisfy: comparable so it can key a map, and Bytes-encodable so it
// has a canonical serialization for message-identifier derivation
// (§6: "Emit sender as its canonical encoding").
type Sender interface {
	comparable
	Bytes() []byte
}

// Weights is a validator→weight map shared across a validator state,
// protected by a readers-writer lock so that concurrent sum/lookup
// reads do not block each other while a slashing write is serialized
// against both (§3, §5).
type Weights[V Sender] struct {
	mu      sync.RWMutex
	weights map[V]float64
}

// NewWeights builds a Weights from an initial validator→weight map.
// The map is copied; later mutation of the caller's map has no effect.
func NewWeights[V Sender](initial map[V]float64) *Weights[V] {
	w := &Weights[V]{weights: make(map[V]float64, len(initial))}
	for v, weight := range initial {
		w.weights[v] = weight
	}
	return w
}

// Weight returns the weight of validator v, or (0, ErrNotFound) if v
// is not present. Callers implementing fault-bounded admission must
// treat ErrNotFound as +Inf (§4.2 point 2), not as zero.
func (w *Weights[V]) Weight(v V) (float64, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	weight, ok := w.weights[v]
	if !ok {
		return 0, ErrNotFound
	}
	return weight, nil
}

// WeightOrInfinity returns the weight of v, or +Inf if v is unknown —
// the admission-path convention from §4.2: an unrecognized sender's
// weight is treated as infinite so any equivocation from them refuses.
func (w *Weights[V]) WeightOrInfinity(v V) float64 {
	weight, err := w.Weight(v)
	if err != nil {
		return math.Inf(1)
	}
	return weight
}

// Insert sets the weight of v, creating the entry if absent. Used both
// for initial validator set construction and for the slash path
// (FaultyInsertWithSlash) that zeroes an equivocator's weight.
func (w *Weights[V]) Insert(v V, weight float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.weights[v] = weight
}

// isActive reports whether weight belongs to the "active validator"
// set: strictly positive and not NaN. Zero, negative and NaN weights
// are excluded; +Inf is permitted (§3).
func isActive(weight float64) bool {
	return weight > 0 && !math.IsNaN(weight)
}

// Validators returns the set of validators with strictly positive,
// non-NaN weight.
func (w *Weights[V]) Validators() map[V]struct{} {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[V]struct{}, len(w.weights))
	for v, weight := range w.weights {
		if isActive(weight) {
			out[v] = struct{}{}
		}
	}
	return out
}

// SumWeights returns the total weight of the given validators. Unknown
// validators contribute NaN to the sum, propagating per IEEE-754
// through the whole result.
func (w *Weights[V]) SumWeights(validators map[V]struct{}) float64 {
	sum := 0.0
	for v := range validators {
		weight, err := w.Weight(v)
		if err != nil {
			weight = math.NaN()
		}
		sum += weight
	}
	return sum
}

// SumAllWeights returns the total weight of every active validator.
func (w *Weights[V]) SumAllWeights() float64 {
	return w.SumWeights(w.Validators())
}
