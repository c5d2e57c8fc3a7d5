package lastfm

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Call outcomes recorded in metrics and logs.
const (
	outcomeOK        = "ok"
	outcomeFailed    = "failed"
	outcomeMalformed = "malformed"
	outcomeTransport = "transport"
)

var (
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lastfm_calls_total",
		Help: "Web service calls by method and outcome (ok, failed, malformed, transport)",
	}, []string{"method", "outcome"})

	remoteErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lastfm_remote_errors_total",
		Help: "Failures declared by the web service, by error code",
	}, []string{"code"})

	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lastfm_call_duration_seconds",
		Help:    "Round trip plus parse time of web service calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

func observeCall(method, outcome string, code int, elapsed time.Duration) {
	callsTotal.WithLabelValues(method, outcome).Inc()
	callDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	if outcome == outcomeFailed {
		remoteErrorsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
	}
}
