package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
)

// InitMetrics creates the Prometheus middleware for HTTP request metrics.
// The returned instance must be registered on the Fiber app and given a
// scrape route (see server.SetupMiddleware).
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
