package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/samirrijal/trainboard/internal/core/domain"
)

var (
	// Board metrics
	BoardOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainboard",
		Subsystem: "board",
		Name:      "operations_total",
		Help:      "Total successful board operations",
	}, []string{"operation"})

	BoardErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainboard",
		Subsystem: "board",
		Name:      "errors_total",
		Help:      "Total board errors by kind",
	}, []string{"kind"})

	BoardDepartures = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trainboard",
		Subsystem: "board",
		Name:      "departures",
		Help:      "Departures currently on the board",
	})

	BoardClockMinutes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trainboard",
		Subsystem: "board",
		Name:      "clock_minutes",
		Help:      "Simulated board clock in minutes since midnight",
	})

	// Menu metrics
	MenuTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainboard",
		Subsystem: "menu",
		Name:      "transitions_total",
		Help:      "Total menu state entries",
	}, []string{"state"})

	ConsoleRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trainboard",
		Subsystem: "menu",
		Name:      "console_retries_total",
		Help:      "Console reads retried after a transient failure",
	})

	// Sidecar metrics
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainboard",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Board events handed to the broker",
	}, []string{"result"})

	MirrorWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainboard",
		Subsystem: "mirror",
		Name:      "writes_total",
		Help:      "Board snapshots written to the display mirror",
	}, []string{"result"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainboard",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trainboard",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})
)

// ErrorKind classifies err for the errors_total label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrParse):
		return "parse"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, domain.ErrTransientIO):
		return "transient_io"
	case errors.Is(err, domain.ErrInputClosed):
		return "input_closed"
	default:
		return "other"
	}
}

// RecordError counts err under its kind.
func RecordError(err error) {
	if err == nil {
		return
	}
	BoardErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
