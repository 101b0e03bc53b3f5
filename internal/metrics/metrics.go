// Package metrics exposes Prometheus metrics for trade searches.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tradecoach"

type Metrics struct {
	SearchRuns          *prometheus.CounterVec
	SearchIterations    prometheus.Counter
	SearchImprovements  prometheus.Counter
	BestSearchScore     prometheus.Gauge
	CandidatesEvaluated prometheus.Counter
	SamePositionSkipped prometheus.Counter
	TradesFound         *prometheus.CounterVec
	FetchErrors         *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers every metric with reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		SearchRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "runs_total",
			Help:      "Trade searches run, by selector",
		}, []string{"selector"}),
		SearchIterations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "iterations_total",
			Help:      "Randomized search iterations",
		}),
		SearchImprovements: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "improvements_total",
			Help:      "Times the randomized search found a new best trade set",
		}),
		BestSearchScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "best_score",
			Help:      "Team value of the best trade set from the latest search",
		}),
		CandidatesEvaluated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "finder",
			Name:      "candidates_evaluated_total",
			Help:      "Trade candidates generated and examined",
		}),
		SamePositionSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "finder",
			Name:      "same_position_skipped_total",
			Help:      "Candidates skipped because both sides trade the same positions",
		}),
		TradesFound: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "finder",
			Name:      "trades_found_total",
			Help:      "Beneficial trades found, by counterparty kind",
		}, []string{"counterparty"}),
		FetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "league",
			Name:      "fetch_errors_total",
			Help:      "League data fetch failures, by source",
		}, []string{"source"}),
		gatherer: reg,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
