// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics holds the prometheus collectors for the casper
// admission path and fork choice.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters/gauges/histograms for the casper admission
// path and fork choice. casper.ValidatorState.Update reports into
// AdmissionsAccepted, AdmissionsRefused, FaultWeight and Equivocators;
// GhostDuration and OracleCliques are registered but not written by
// any code in this module (block.Ghost and oracle.SafetyOracles take no
// Metrics). All fields are safe for concurrent use, matching the
// underlying prometheus collector guarantees.
type Metrics struct {
	Registry prometheus.Registerer

	AdmissionsAccepted prometheus.Counter
	AdmissionsRefused  prometheus.Counter
	FaultWeight        prometheus.Gauge
	Equivocators       prometheus.Gauge
	GhostDuration      prometheus.Histogram
	OracleCliques      prometheus.Gauge
}

// New registers and returns a Metrics for the given namespace, e.g.
// "casper".
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Registry: reg,
		AdmissionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_accepted_total",
			Help:      "messages admitted into a validator's justification",
		}),
		AdmissionsRefused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_refused_total",
			Help:      "messages refused for crossing the fault-weight threshold",
		}),
		FaultWeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fault_weight",
			Help:      "current state fault weight across detected equivocators",
		}),
		Equivocators: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "equivocators",
			Help:      "number of validators currently flagged as equivocating",
		}),
		GhostDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ghost_duration_seconds",
			Help:      "time spent in a single GHOST fork-choice call",
		}),
		OracleCliques: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "safety_oracle_cliques",
			Help:      "number of cliques surviving the last safety-oracle call",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.AdmissionsAccepted,
		m.AdmissionsRefused,
		m.FaultWeight,
		m.Equivocators,
		m.GhostDuration,
		m.OracleCliques,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering casper metric: %w", err)
		}
	}
	return m, nil
}

// NoOp returns a Metrics backed by collectors registered against a
// private registry, so callers that don't care about metrics don't
// need to thread a *Metrics nil-check through every call site.
func NoOp() *Metrics {
	m, err := New("casper_noop", prometheus.NewRegistry())
	if err != nil {
		// Registering fresh collectors against a fresh registry cannot fail.
		panic(err)
	}
	return m
}
