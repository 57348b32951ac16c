// Package observability exposes the service's Prometheus instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LessonsCompleted counts completed lesson attempts by moderation outcome.
	LessonsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autodrive",
		Name:      "lessons_completed_total",
		Help:      "Completed lesson attempts, partitioned by moderation severity.",
	}, []string{"severity"})

	// BehaviorViolations counts violations by flag category.
	BehaviorViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autodrive",
		Name:      "behavior_violations_total",
		Help:      "Behavior violations detected during lesson moderation, by flag.",
	}, []string{"flag"})

	// XPAwarded tracks the XP granted (or clawed back) per completion.
	XPAwarded = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "autodrive",
		Name:      "xp_awarded",
		Help:      "XP delta applied per lesson completion.",
		Buckets:   []float64{-100, -50, -10, 0, 10, 25, 50, 75, 100, 150},
	})
)
