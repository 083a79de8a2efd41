package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trongate",
		Name:      "request_total",
		Help:      "Total number of JSON-RPC requests received, by method and selected behavior.",
	}, []string{"method", "behavior"})

	MetricUpstreamErrorTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trongate",
		Name:      "upstream_request_errors_total",
		Help:      "Total number of failed forwarding attempts towards the backend.",
	}, []string{"method"})

	MetricResponseRewriteTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trongate",
		Name:      "response_rewrite_total",
		Help:      "Total number of upstream responses rewritten before relay.",
	}, []string{"method"})
)
