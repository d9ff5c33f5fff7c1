// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import (
	"github.com/luxfi/casper"
)

// chainView is the intermediate structure Ghost walks: for every block
// reachable from the latest honest messages back to genesis, the set
// of its known children, keyed by content id so that two goroutines'
// *Block[S] pointers for the same logical block coalesce (§4.6 point
// 2).
type chainView[S casper.Sender] struct {
	blocks   map[casper.Hash]*Block[S]
	children map[casper.Hash]map[casper.Hash]struct{}
	genesis  map[casper.Hash]struct{}
	latest   map[casper.Hash]struct{}
}

// parseBlockchains walks back from every honest latest block to the
// set of roots (blocks with no predecessor), recording the
// parent→children edges along the way.
func parseBlockchains[S casper.Sender](latestHonest *casper.LatestHonest[*Block[S], S]) *chainView[S] {
	v := &chainView[S]{
		blocks:   make(map[casper.Hash]*Block[S]),
		children: make(map[casper.Hash]map[casper.Hash]struct{}),
		genesis:  make(map[casper.Hash]struct{}),
		latest:   make(map[casper.Hash]struct{}),
	}

	queue := make([]*Block[S], 0, latestHonest.Len())
	for _, m := range latestHonest.Messages() {
		b := m.Estimate()
		v.blocks[b.ID()] = b
		v.children[b.ID()] = make(map[casper.Hash]struct{})
		v.latest[b.ID()] = struct{}{}
		queue = append(queue, b)
	}

	referredLatest := make(map[casper.Hash]struct{})
	for len(queue) > 0 {
		child := queue[0]
		queue = queue[1:]

		allReferred := len(referredLatest) == len(v.latest) && len(queue) == 0
		if child.Prev != nil && !allReferred {
			parent := child.Prev
			if _, isLatest := v.latest[child.ID()]; isLatest {
				referredLatest[child.ID()] = struct{}{}
			}
			if _, seen := v.children[parent.ID()]; seen {
				v.children[parent.ID()][child.ID()] = struct{}{}
			} else {
				v.children[parent.ID()] = map[casper.Hash]struct{}{child.ID(): {}}
				v.blocks[parent.ID()] = parent
				queue = append(queue, parent)
			}
			continue
		}
		v.genesis[child.ID()] = struct{}{}
	}
	return v
}

// collectValidators returns the set of senders that have endorsed
// block, memoizing per-block results in memo as it recurses down to
// the latest blocks (§4.6 point 2).
func collectValidators[S casper.Sender](block *Block[S], v *chainView[S], memo map[casper.Hash]map[S]struct{}) map[S]struct{} {
	if cached, ok := memo[block.ID()]; ok {
		return cached
	}
	acc := make(map[S]struct{})
	if _, isLatest := v.latest[block.ID()]; isLatest {
		acc[block.Sender] = struct{}{}
	}
	children := v.children[block.ID()]
	for childID := range children {
		child := v.blocks[childID]
		endorsers := collectValidators(child, v, memo)
		for s := range endorsers {
			acc[s] = struct{}{}
		}
	}
	memo[block.ID()] = acc
	return acc
}

// heaviestCandidate is the running best-so-far during the heaviest-
// subtree fold over a set of sibling blocks.
type heaviestCandidate[S casper.Sender] struct {
	block    *Block[S]
	weight   float64
	children map[casper.Hash]struct{}
}

// pickHeaviest descends from a set of sibling block ids to the tip of
// the heaviest observed sub-tree, breaking ties by the smaller block
// id (§4.6 point 3). It returns nil if blocks is empty or a tie-break
// produces no decision (exact-weight tie with identical ids, which
// cannot happen for distinct blocks).
func pickHeaviest[S casper.Sender](blockIDs map[casper.Hash]struct{}, v *chainView[S], weights *casper.Weights[S], memo map[casper.Hash]map[S]struct{}) *Block[S] {
	switch len(blockIDs) {
	case 0:
		return nil
	case 1:
		var only casper.Hash
		for id := range blockIDs {
			only = id
		}
		block := v.blocks[only]
		return descendOrReturn(block, v.children[only], v, weights, memo)
	}

	var best *heaviestCandidate[S]
	ok := true
	for id := range blockIDs {
		if !ok {
			break
		}
		block := v.blocks[id]
		endorsers := collectValidators(block, v, memo)
		weight := weights.SumWeights(endorsers)
		children := v.children[id]

		switch {
		case best == nil:
			best = &heaviestCandidate[S]{block: block, weight: weight, children: children}
		case weight > best.weight:
			best = &heaviestCandidate[S]{block: block, weight: weight, children: children}
		case weight < best.weight:
			// keep best
		default:
			switch {
			case best.block.ID().Less(block.ID()):
				// best already has the smaller id; keep it.
			case block.ID().Less(best.block.ID()):
				best = &heaviestCandidate[S]{block: block, weight: weight, children: children}
			default:
				ok = false
			}
		}
	}
	if !ok || best == nil {
		return nil
	}
	return descendOrReturn(best.block, best.children, v, weights, memo)
}

func descendOrReturn[S casper.Sender](block *Block[S], children map[casper.Hash]struct{}, v *chainView[S], weights *casper.Weights[S], memo map[casper.Hash]map[S]struct{}) *Block[S] {
	if len(children) == 0 {
		return block
	}
	return pickHeaviest(children, v, weights, memo)
}

// Ghost runs the GHOST fork-choice rule over the given honest latest
// messages and validator weights, returning the tip of the heaviest
// observed sub-tree (§4.6), or nil if latestHonest carries no blocks.
func Ghost[S casper.Sender](latestHonest *casper.LatestHonest[*Block[S], S], weights *casper.Weights[S]) *Block[S] {
	v := parseBlockchains(latestHonest)
	memo := make(map[casper.Hash]map[S]struct{})
	return pickHeaviest(v.genesis, v, weights, memo)
}

// Estimator is Block's casper.Estimator: the new block's predecessor
// is whatever Ghost picks, and sender is the argument's own identity
// (§4.6).
func Estimator[S casper.Sender](sender S) casper.Estimator[*Block[S], S] {
	return func(honest *casper.LatestHonest[*Block[S], S], weights *casper.Weights[S]) (*Block[S], error) {
		prev := Ghost(honest, weights)
		return New(prev, sender), nil
	}
}
