// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package casper implements the core machinery of the Correct-By-Construction
(CBC) Casper family of consensus protocols: message dependency tracking,
equivocation detection, fault-bounded message admission, latest-honest-message
selection, and the estimator contract that plugs in a concrete consensus
instantiation.

# Architecture

A Message is an immutable (sender, estimate, justification) triple identified
by a content hash (Hash). Messages from a given sender form a dependency DAG
via their justifications; Depends and Equivocates answer reachability and
equivocation queries over that DAG (see depends.go).

A Justification is an insertion-ordered, set-semantics collection of
messages. Admitting a candidate message into a Justification goes through
fault-bounded admission (FaultyInsert): messages that introduce a new
equivocation are refused once the sender's weight would push the state's
fault weight past its threshold (see justification.go, state.go).

LatestMessages tracks, per sender, the tip messages not superseded by a
later message from the same sender; a sender with more than one tip is a
detected equivocator. LatestHonest projects LatestMessages down to the
single-tip, non-equivocating senders that feed an Estimator (latest.go,
honest.go).

ValidatorState (state.go) bundles Weights, LatestMessages, the equivocator
set, and the fault-weight budget into the single mutable object an
admission thread owns.

Block and the GHOST fork-choice estimator live in casper/block; the
Bron-Kerbosch-based clique safety oracle lives in casper/oracle.
*/
package casper
