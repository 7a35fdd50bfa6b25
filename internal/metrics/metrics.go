// Package metrics exposes Prometheus metrics for the HTTP API and goal propagation.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequestsTotal counts handled requests.
	// Labels:
	//   - method: HTTP method
	//   - route: matched ServeMux pattern (e.g., "PUT /goals/{id}")
	//   - status: response status code
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorme_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentorme_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// goalMutationsTotal counts committed goal mutations by operation (create, update, delete).
	goalMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorme_goal_mutations_total",
			Help: "Total number of committed goal mutations",
		},
		[]string{"operation"},
	)

	// programTransitionsTotal counts program completion edges (completed, reopened).
	programTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorme_program_completion_transitions_total",
			Help: "Total number of program completion state transitions",
		},
		[]string{"transition"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(goalMutationsTotal)
	prometheus.MustRegister(programTransitionsTotal)
}

func RecordHTTPRequest(method, route string, status int, durationSeconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

func RecordGoalMutation(operation string) {
	goalMutationsTotal.WithLabelValues(operation).Inc()
}

func RecordProgramTransition(transition string) {
	programTransitionsTotal.WithLabelValues(transition).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
