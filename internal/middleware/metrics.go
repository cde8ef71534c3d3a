package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/service"
)

// unmatchedRoute labels requests that hit no route so raw paths never become label values.
const unmatchedRoute = "unmatched"

var opsRoutes = map[string]struct{}{
	"/health":  {},
	"/ready":   {},
	"/metrics": {},
}

// Metrics records request count and latency per route template. Probe and
// scrape routes are not recorded.
func Metrics(telemetry *service.TelemetryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if telemetry == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if _, ops := opsRoutes[route]; ops {
			c.Next()
			return
		}
		if route == "" {
			route = unmatchedRoute
		}

		start := time.Now()
		c.Next()
		telemetry.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
