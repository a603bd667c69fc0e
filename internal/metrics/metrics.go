// Package metrics defines Prometheus metrics for searchviz.
package metrics

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"searchviz/internal/animate"
	"searchviz/internal/model"
)

var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchviz_searches_total",
			Help: "Searches run, by algorithm and outcome (found or no_path)",
		},
		[]string{"algorithm", "outcome"},
	)

	SearchSteps = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "searchviz_search_steps",
			Help:    "Nodes visited per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
		[]string{"algorithm"},
	)

	FramesRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchviz_frames_rendered_total",
			Help: "Animation frames delivered to a renderer, by phase",
		},
		[]string{"phase"},
	)

	AnimationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchviz_animations_total",
			Help: "Finished animation runs, by terminal state",
		},
		[]string{"state"},
	)

	GraphEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "searchviz_graph_edges",
			Help: "Edges in the current graph",
		},
	)
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(SearchesTotal, SearchSteps, FramesRendered, AnimationsTotal, GraphEdges)
}

// ObserveSearch records one finished search.
func ObserveSearch(res model.SearchResult) {
	outcome := "no_path"
	if res.Found() {
		outcome = "found"
	}
	SearchesTotal.WithLabelValues(string(res.Algorithm), outcome).Inc()
	SearchSteps.WithLabelValues(string(res.Algorithm)).Observe(float64(len(res.Steps)))
}

// SequencerHooks counts frames and finished runs.
func SequencerHooks() animate.Hooks {
	return animate.Hooks{
		OnFrame: func(f model.Frame) {
			FramesRendered.WithLabelValues(string(f.Phase)).Inc()
		},
		OnFinish: func(_ uuid.UUID, s animate.State) {
			AnimationsTotal.WithLabelValues(s.String()).Inc()
		},
	}
}
