// Package metrics holds the prometheus collectors of both servers, they are served on GET /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled http requests by method and status code.",
	}, []string{"method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Time spent handling http requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	CheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_checkins_total",
		Help: "Check-ins that marked a student present, repeated check-ins are not counted.",
	})

	LessonsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_lessons_created_total",
		Help: "Lessons created by teachers.",
	})

	// game names come from the url, so they are not a label
	ScoresRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "highscore_scores_recorded_total",
		Help: "Scores stored by the highscore service.",
	})
)
