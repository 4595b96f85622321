package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SignInOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "infrastructure_sign_in_total",
	Help: "Sign-in attempts by outcome",
}, []string{"outcome"})

var EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "infrastructure_event_publish_failures_total",
	Help: "Domain events the broker refused",
}, []string{"routing_key"})

var StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "infrastructure_store_failures_total",
	Help: "Requests that failed because the backing store was unavailable",
})

var reqDur = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "A histogram of latencies for requests.",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
}, []string{"code", "method", "path"})

var reqCnt = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "A counter for requests to the wrapped handler.",
}, []string{"code", "method", "path"})

// Middleware records request count and latency labelled by route pattern, so
// entity ids never become label values.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		code := strconv.Itoa(status)
		path := c.Route().Path
		reqDur.WithLabelValues(code, c.Method(), path).Observe(time.Since(start).Seconds())
		reqCnt.WithLabelValues(code, c.Method(), path).Inc()
		return err
	}
}
