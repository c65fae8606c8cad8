// Package metrics holds the Prometheus collectors exported by the server and the assistant client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RPCDuration is the gRPC handling time in seconds.
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "servicelog_rpc_duration_seconds",
			Help:    "gRPC request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "code"},
	)

	// AssistantCallLatency is the AI completion round trip in milliseconds.
	AssistantCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "servicelog_assistant_call_latency_ms",
			Help:    "AI completion call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"status"},
	)

	// StoreMutations counts successful writes per entity and operation.
	StoreMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicelog_store_mutations_total",
			Help: "Total number of entity mutations served",
		},
		[]string{"entity", "op"},
	)
)

// RecordRPC records one finished gRPC call.
func RecordRPC(method, code string, d time.Duration) {
	RPCDuration.WithLabelValues(method, code).Observe(d.Seconds())
}

// RecordAssistantCall records one completion request; status is "ok" or "error".
func RecordAssistantCall(status string, d time.Duration) {
	AssistantCallLatency.WithLabelValues(status).Observe(float64(d.Milliseconds()))
}

// IncrementMutation counts a write such as ("client", "create").
func IncrementMutation(entity, op string) {
	StoreMutations.WithLabelValues(entity, op).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler { return promhttp.Handler() }
