// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper

// Estimate is the value a Message carries — a vote tally, a block, an
// integer, whatever the plugged-in estimator produces (C9). It must be
// hashable (via Bytes), clonable by value, comparable for equality,
// and serializable in a stable way so messages carrying it get a
// stable identifier (§4.8).
type Estimate interface {
	comparable
	// Bytes returns a canonical, deterministic encoding of the
	// estimate, used when deriving a Message's content hash (§6).
	Bytes() []byte
}

// Estimator is any function mapping the latest honest messages and the
// current validator weights to a proposed consensus value. It must be
// deterministic given its inputs, must not mutate them, and must be
// safe to call concurrently (§4.8).
type Estimator[E Estimate, S Sender] func(honest *LatestHonest[E, S], weights *Weights[S]) (E, error)
