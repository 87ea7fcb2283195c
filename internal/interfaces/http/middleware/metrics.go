package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, durations and in-flight gauges. The
// route template (c.FullPath) keeps the path label cardinality bounded;
// unmatched routes are labeled "unmatched".
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		method := c.Request.Method
		m.HTTPActiveRequests.WithLabelValues(method).Inc()
		start := time.Now()

		c.Next()

		m.HTTPActiveRequests.WithLabelValues(method).Dec()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(method, path, c.Writer.Status(), time.Since(start))
	}
}
