package middleware

import (
	"strconv"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct {
	now func() time.Time
}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{now: time.Now}
}

// Middleware records latency against the matched route pattern so that path
// parameters do not explode the label set. Unmatched requests are labelled
// "unmatched".
func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !prometheus.Config.EnableLatency {
			return c.Next()
		}
		start := m.now()
		err := c.Next()

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = c.Method() + " " + r.Path
		}
		elapsed := float64(m.now().Sub(start).Microseconds()) / 1000
		prometheus.RequestLatency.WithLabelValues(route).Observe(elapsed)
		prometheus.RequestsTotal.WithLabelValues(route, statusClass(c.Response().StatusCode())).Inc()
		return err
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return strconv.Itoa(code/100) + "xx"
}
