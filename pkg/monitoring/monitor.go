package monitoring

import (
	"strconv"
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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// AnalysisTotal 按结果分类：ok、cached、not_found、data_problem、error
	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maturity_analysis_total",
			Help: "Result analyses by outcome",
		},
		[]string{"outcome"},
	)

	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "maturity_analysis_duration_seconds",
			Help:    "Duration of a full result analysis",
			Buckets: prometheus.DefBuckets,
		},
	)

	DimensionRangeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maturity_dimension_range_total",
			Help: "Classified dimension ranges",
		},
		[]string{"dimension", "range"},
	)

	IntegrityWarnings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maturity_integrity_warnings_total",
			Help: "Response rows dropped or flagged while building the grid",
		},
		[]string{"kind"},
	)

	SubmissionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maturity_submissions_total",
			Help: "Test submissions by outcome",
		},
		[]string{"outcome"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maturity_result_cache_lookups_total",
			Help: "Analysis result cache lookups",
		},
		[]string{"result"},
	)
)

func Init() {
	prometheus.MustRegister(
		RequestCounter,
		RequestDuration,
		AnalysisTotal,
		AnalysisDuration,
		DimensionRangeTotal,
		IntegrityWarnings,
		SubmissionTotal,
		CacheLookups,
	)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
