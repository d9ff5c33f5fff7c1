// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package main provides the casper-bench CLI: a small driver that
// runs a batch of validators through random GHOST vote rounds and
// reports fault weight, clique, and timing stats.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/luxfi/casper"
	"github.com/luxfi/casper/block"
	"github.com/luxfi/casper/oracle"
)

type validator uint32

func (v validator) Bytes() []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return buf
}

func main() {
	var (
		validators = flag.Int("validators", 5, "number of validators")
		rounds     = flag.Int("rounds", 20, "number of message rounds")
		threshold  = flag.Float64("fault-threshold", 1.0, "subjective fault weight threshold")
		seed       = flag.Int64("seed", 1, "random seed")
		verbose    = flag.Bool("verbose", false, "print every round")
	)
	flag.Parse()

	if *validators < 1 {
		fmt.Fprintln(os.Stderr, "validators must be at least 1")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	weights := make(map[validator]float64, *validators)
	for i := 0; i < *validators; i++ {
		weights[validator(i)] = 1.0 + rng.Float64()
	}

	state := casper.New[*block.Block[validator], validator](weights, *threshold, nil, nil)

	genesis := block.New[validator](nil, validator(0))
	genesisMsg := casper.NewMessage[*block.Block[validator]](validator(0), genesis, nil)
	state.Update([]*casper.Message[*block.Block[validator], validator]{genesisMsg})

	start := time.Now()
	for round := 0; round < *rounds; round++ {
		proposer := validator(rng.Intn(*validators))
		estimator := block.Estimator[validator](proposer)

		honest := state.Honest()
		next, err := honest.MakeEstimate(state.Weights(), estimator)
		if err != nil {
			fmt.Fprintf(os.Stderr, "round %d: estimate failed: %v\n", round, err)
			continue
		}

		justified := make([]*casper.Message[*block.Block[validator], validator], 0, honest.Len())
		justified = append(justified, honest.Messages()...)
		msg := casper.NewMessage[*block.Block[validator]](proposer, next, casper.NewJustification(justified...))
		_, allAdmitted := state.Update([]*casper.Message[*block.Block[validator], validator]{msg})

		if *verbose {
			fmt.Printf("round %-3d proposer=%-3d tip=%s admitted=%v faultWeight=%.2f\n",
				round, proposer, next.ID(), allAdmitted, state.FaultWeight())
		}
	}
	elapsed := time.Since(start)

	tip := block.Ghost(state.Honest(), state.Weights())
	var tipID casper.Hash
	if tip != nil {
		tipID = tip.ID()
	}

	cliques := oracle.SafetyOracles[*block.Block[validator]](genesis, state.Honest(), state.Equivocators(), *threshold, state.Weights())

	fmt.Printf("validators=%d rounds=%d elapsed=%s\n", *validators, *rounds, elapsed)
	fmt.Printf("tip=%s faultWeight=%.2f equivocators=%d\n", tipID, state.FaultWeight(), len(state.Equivocators()))
	fmt.Printf("safety-oracle cliques on genesis: %d\n", len(cliques))
}
