package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "depcycle_analysis_seconds",
		Help:    "Time spent on each analysis step.",
		Buckets: prometheus.DefBuckets,
	}, []string{"step"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "depcycle_graph_nodes_total",
		Help: "Number of nodes in the most recently built dependency graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "depcycle_graph_edges_total",
		Help: "Number of edges in the most recently built dependency graph.",
	})

	CyclesDetected = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "depcycle_cycles_detected",
		Help: "Cycles found in the most recent analysis, by severity.",
	}, []string{"severity"})

	AnalysisStepErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depcycle_analysis_step_errors_total",
		Help: "Total number of analysis steps that completed with an error field.",
	}, []string{"step"})

	ToolRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depcycle_tool_requests_total",
		Help: "Total number of tool operation requests.",
	}, []string{"operation", "status"})

	DiscoveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "depcycle_discovery_seconds",
		Help:    "Time spent waiting on the upstream graph discovery provider.",
		Buckets: prometheus.DefBuckets,
	})
)
