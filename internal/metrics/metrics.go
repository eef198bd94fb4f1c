package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobscout_run_duration_seconds",
			Help:    "Duration of each pipeline run in seconds.",
			Buckets: []float64{60, 300, 900, 1800, 3600},
		},
	)
	RunsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_runs_total",
			Help: "Total number of finished runs by final status.",
		},
		[]string{"status"},
	)
	StepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobscout_step_duration_seconds",
			Help:       "Duration of each step in the pipeline.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	JobsScrapedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_jobs_scraped_total",
			Help: "Total number of postings produced by the extractor.",
		},
	)
	JobsSkippedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_jobs_skipped_total",
			Help: "Total number of postings skipped as already seen.",
		},
	)
	JobsMatchedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_jobs_matched_total",
			Help: "Total number of postings scored and persisted.",
		},
	)
	ScoresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_scores_total",
			Help: "Total number of scores by backend that produced them.",
		},
		[]string{"backend"},
	)
)

func Register() {
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(RunsCounter)
	prometheus.MustRegister(StepDuration)
	prometheus.MustRegister(JobsScrapedCounter)
	prometheus.MustRegister(JobsSkippedCounter)
	prometheus.MustRegister(JobsMatchedCounter)
	prometheus.MustRegister(ScoresCounter)
}

func StartMetricsServer(port int) {

	Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
