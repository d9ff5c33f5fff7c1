// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package oracle implements the clique-based safety oracle (C11,
// §4.7): given a target estimate and the current honest latest
// messages, it finds every maximal set of validators who mutually see
// each other agreeing on (containing) that estimate, and reports the
// ones whose combined weight clears a threshold.
package oracle

import (
	"github.com/luxfi/casper"
	"github.com/luxfi/casper/internal/casperset"
)

// Member is the constraint an estimate type must satisfy to run
// through the safety oracle: a reflexive-transitive containment
// relation, the generalization of block.Block's IsMember (§4.6 point
// 1, §4.7).
type Member[E any] interface {
	casper.Estimate
	IsMember(E) bool
}

// SafetyOracles returns every maximal clique of validators whose
// mutual agreement, projected from honest through each member's own
// justification, survives with combined weight strictly over
// threshold.
func SafetyOracles[E Member[E], S casper.Sender](target E, honest *casper.LatestHonest[E, S], equivocators map[S]struct{}, threshold float64, weights *casper.Weights[S]) []casperset.Set[S] {
	containing := make([]*casper.Message[E, S], 0, honest.Len())
	for _, m := range honest.Messages() {
		if target.IsMember(m.Estimate()) {
			containing = append(containing, m)
		}
	}

	// agreeing[sender] is, from sender's own point of view (projected
	// through their justification), the latest honest message of every
	// validator sender has seen agreeing with target.
	agreeing := make(map[S]map[S]*casper.Message[E, S], len(containing))
	for _, m := range containing {
		seenLatest := casper.FromJustification(m.Justification())
		seenHonest := casper.NewLatestHonest(seenLatest, equivocators)

		view := make(map[S]*casper.Message[E, S])
		for _, seen := range seenHonest.Messages() {
			if target.IsMember(seen.Estimate()) {
				view[seen.Sender()] = seen
			}
		}
		agreeing[m.Sender()] = view
	}

	// neighbours[a] contains b iff a has seen b agreeing, and b has
	// seen a agreeing: a mutual-agreement edge.
	neighbours := make(map[S]casperset.Set[S], len(agreeing))
	for sender, seenBySender := range agreeing {
		n := casperset.New[S](len(seenBySender))
		for other := range seenBySender {
			if backView, ok := agreeing[other]; ok {
				if _, sees := backView[sender]; sees {
					n.Add(other)
				}
			}
		}
		neighbours[sender] = n
	}

	candidates := casperset.New[S](0)
	for _, n := range neighbours {
		candidates = candidates.Union(n)
	}

	var cliques []casperset.Set[S]
	bronKerbosch(casperset.New[S](0), candidates, casperset.New[S](0), neighbours, &cliques)

	surviving := make([]casperset.Set[S], 0, len(cliques))
	for _, clique := range cliques {
		if weights.SumWeights(clique) > threshold {
			surviving = append(surviving, clique)
		}
	}
	return surviving
}

// bronKerbosch is the classic pivotless Bron-Kerbosch maximal-clique
// enumeration (§9 design note: pivoting is a performance refinement
// this package intentionally omits, since validator counts are small).
func bronKerbosch[S comparable](r, p, x casperset.Set[S], neighbours map[S]casperset.Set[S], cliques *[]casperset.Set[S]) {
	if p.Len() == 0 && x.Len() == 0 {
		*cliques = append(*cliques, r.Clone())
		return
	}
	for _, v := range p.List() {
		rNew := r.Clone()
		rNew.Add(v)
		p.Remove(v)
		pNew := p.Intersection(neighbours[v])
		xNew := x.Intersection(neighbours[v])
		bronKerbosch(rNew, pNew, xNew, neighbours, cliques)
		x.Add(v)
	}
}
