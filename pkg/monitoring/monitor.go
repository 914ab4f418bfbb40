package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "endpoint"},
	)

	QuizSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Total number of scored quiz submissions",
		},
	)

	QuizScoreRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_score_ratio",
			Help:    "Fraction of questions answered correctly per submission",
			Buckets: prometheus.LinearBuckets(0, 0.2, 6),
		},
	)

	ScoreResets = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_score_resets_total",
			Help: "Number of times the score table was cleared",
		},
	)

	QuestionChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_question_changes_total",
			Help: "Question add/edit/delete/import operations",
		},
		[]string{"action"},
	)
)

var once sync.Once

// Init registers the collectors; safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(QuizSubmissions)
		prometheus.MustRegister(QuizScoreRatio)
		prometheus.MustRegister(ScoreResets)
		prometheus.MustRegister(QuestionChanges)
	})
}

// ObserveSubmission records one scored submission.
func ObserveSubmission(score, total int) {
	QuizSubmissions.Inc()
	if total > 0 {
		QuizScoreRatio.Observe(float64(score) / float64(total))
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
