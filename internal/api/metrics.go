package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runlog",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "runlog",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

func observeRequest(method, route string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, route, statusText(status)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func statusText(status int) string {
	switch {
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
