package middleware

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestMetrics holds in-memory request counters
type RequestMetrics struct {
	mu               sync.RWMutex
	TotalRequests    uint64
	RequestsByRoute  map[string]uint64
	RequestsByStatus map[string]uint64
}

var metrics = &RequestMetrics{
	RequestsByRoute:  make(map[string]uint64),
	RequestsByStatus: make(map[string]uint64),
}

// GetMetrics returns a snapshot of the current request counters
func GetMetrics() RequestMetrics {
	metrics.mu.RLock()
	defer metrics.mu.RUnlock()
	return RequestMetrics{
		TotalRequests:    metrics.TotalRequests,
		RequestsByRoute:  copyMap(metrics.RequestsByRoute),
		RequestsByStatus: copyMap(metrics.RequestsByStatus),
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// RequestLogger logs every request with its latency and outcome, and feeds
// the in-memory counters. Counters are keyed by the route pattern, not the
// concrete path, so /clientes/42 and /clientes/7 share a bucket.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = path
		}
		metrics.mu.Lock()
		metrics.TotalRequests++
		metrics.RequestsByRoute[method+" "+route]++
		metrics.RequestsByStatus[strconv.Itoa(status)]++
		metrics.mu.Unlock()

		logger.Info("request completed",
			"method", method,
			"path", path,
			"status_code", status,
			"latency_ms", latency.Milliseconds(),
			"bytes_written", c.Writer.Size(),
			"remote_addr", c.ClientIP(),
		)

		for _, err := range c.Errors {
			logger.Error("request error",
				"method", method,
				"path", path,
				"error", err.Error(),
			)
		}
	}
}
