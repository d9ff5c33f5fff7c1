// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package casper

import "errors"

// Error kinds surfaced at the package boundary (§6, §7). Admission
// refusal is reported as a bool/empty set and never wrapped in one of
// these — it is the one error kind the library always recovers from
// locally.
var (
	// ErrNotFound is returned by Weights.Weight for an unknown validator.
	ErrNotFound = errors.New("casper: validator weight not found")

	// ErrNoEstimate is available to plugged-in estimators that decline
	// to produce a value for an empty or inconsistent input. Nothing in
	// this package returns it: Justification.MakeEstimate and
	// LatestHonest.MakeEstimate pass the estimator's error through
	// unchanged.
	ErrNoEstimate = errors.New("casper: estimator produced no value")
)
