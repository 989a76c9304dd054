package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Middleware records request count and duration per route. Uses the
// registered route pattern, not the raw URL, to keep label cardinality
// bounded.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())
		duration := time.Since(start).Seconds()

		RequestCounter.WithLabelValues(status, method, path).Inc()
		RequestDuration.WithLabelValues(status, method, path).Observe(duration)
		return err
	}
}
