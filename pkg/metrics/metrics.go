// Package metrics exposes Prometheus instrumentation for timetable runs and the HTTP API.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limaJavier/examtabling/pkg/model"
)

const (
	OutcomeComplete   = "complete"
	OutcomePartial    = "partial"
	OutcomeInfeasible = "infeasible"
	OutcomeInvalid    = "invalid"
)

// Outcome classifies a finished run
func Outcome(timetable model.Timetable, err error) string {
	var invalid model.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return OutcomeInvalid
	case err != nil:
		return OutcomeInfeasible
	case timetable.Partial():
		return OutcomePartial
	}
	return OutcomeComplete
}

// Recorder owns a private registry. A nil *Recorder records nothing.
type Recorder struct {
	registry       *prometheus.Registry
	handler        http.Handler
	runsTotal      *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	examsScheduled *prometheus.CounterVec
	requestsTotal  *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "examtabling_runs_total",
		Help: "Timetable runs by strategy and outcome",
	}, []string{"strategy", "outcome"})

	runDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "examtabling_run_duration_seconds",
		Help:    "Duration of timetable runs in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	examsScheduled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "examtabling_exams_scheduled_total",
		Help: "Exams placed by timetable runs",
	}, []string{"strategy"})

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "examtabling_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	registry.MustRegister(runsTotal, runDuration, examsScheduled, requestsTotal)

	return &Recorder{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runsTotal:      runsTotal,
		runDuration:    runDuration,
		examsScheduled: examsScheduled,
		requestsTotal:  requestsTotal,
	}
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRun records one timetable run
func (r *Recorder) ObserveRun(strategy, outcome string, exams int, duration time.Duration) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues(strategy, outcome).Inc()
	r.runDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	r.examsScheduled.WithLabelValues(strategy).Add(float64(exams))
}

func (r *Recorder) ObserveHTTPRequest(method, path string, status int) {
	if r == nil {
		return
	}
	r.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
