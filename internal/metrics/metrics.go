package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ContentReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retouchlab_content_reads_total",
		Help: "Content API reads by page and whether defaults were seeded",
	}, []string{"page", "seeded"})

	ContentWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retouchlab_content_writes_total",
		Help: "Content API writes by page and result",
	}, []string{"page", "result"})

	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retouchlab_media_uploads_total",
		Help: "Image uploads by media backend and result",
	}, []string{"backend", "result"})

	MediaDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retouchlab_media_deletes_total",
		Help: "Image deletions by media backend and result",
	}, []string{"backend", "result"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "retouchlab_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Result labels shared by the counters.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Seeded renders the seeded label value.
func Seeded(seeded bool) string {
	return strconv.FormatBool(seeded)
}

// Middleware records request latency keyed by the matched route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
