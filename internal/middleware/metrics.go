package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strictlyalbums_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CatalogTokenExchanges counts credential exchanges against the catalog's
	// token endpoint; a healthy cache keeps this near one per TTL window.
	CatalogTokenExchanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strictlyalbums_catalog_token_exchanges_total",
		Help: "Total number of catalog credential exchanges",
	})

	// CatalogRequests counts upstream catalog calls by operation and outcome.
	CatalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strictlyalbums_catalog_requests_total",
		Help: "Total number of upstream catalog requests by operation and status",
	}, []string{"operation", "status"})
)

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The middleware registers collectors on the default registry, so the
// instance is a process-wide singleton.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}

// MetricsMiddleware registers the /metrics endpoint and returns the collection handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus, app *fiber.App) fiber.Handler {
	prom.RegisterAt(app, "/metrics")
	return prom.Middleware
}
