package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ytdlp",
		Subsystem: "playback",
		Name:      "resolve_total",
		Help:      "Playback resolve requests by outcome.",
	}, []string{"outcome"})

	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ytdlp",
		Subsystem: "playback",
		Name:      "resolve_duration_seconds",
		Help:      "End-to-end playback resolve latency, including upstream collaborators.",
		Buckets:   prometheus.DefBuckets,
	})
)

const (
	outcomeResolved = "resolved"
	outcomeEmpty    = "empty"
	outcomeError    = "error"
)
