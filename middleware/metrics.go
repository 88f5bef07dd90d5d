package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/metrics"
)

// MetricsMiddleware records request count, latency and error counts per
// request. It is a pass-through when the metrics client is nil or disabled.
func MetricsMiddleware(client *metrics.Client, service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		dimensions := map[string]string{
			"Service": service,
			"Method":  method,
			"Path":    path,
			"Status":  statusRange(status),
		}

		// Publish asynchronously so CloudWatch calls never block the
		// response path.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = client.RecordCount(ctx, metrics.MetricHTTPRequests, dimensions)
			_ = client.RecordLatency(ctx, metrics.MetricHTTPLatency, elapsed, dimensions)
			if status >= 400 {
				_ = client.RecordCount(ctx, metrics.MetricHTTPErrors, dimensions)
				if status < 500 {
					_ = client.RecordCount(ctx, metrics.MetricHTTP4xx, dimensions)
				} else {
					_ = client.RecordCount(ctx, metrics.MetricHTTP5xx, dimensions)
				}
			}
		}()
	}
}

// statusRange buckets a status code into 2xx/3xx/4xx/5xx for use as a
// low-cardinality metric dimension.
func statusRange(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
