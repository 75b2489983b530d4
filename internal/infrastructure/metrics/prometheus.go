package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
)

const namespace = "ledger"

type metrics struct {
	eventsCreated     *prometheus.CounterVec
	linesCreated      *prometheus.CounterVec
	eventTransitions  *prometheus.CounterVec
	writesRejected    *prometheus.CounterVec
	balanceQueryTime  prometheus.Histogram
	balanceRows       prometheus.Histogram
	httpRequests      *prometheus.CounterVec
	httpRequestTiming *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		eventsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_created_total",
			Help:      "Movement events created, by initial status.",
		}, []string{"status"}),
		linesCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_created_total",
			Help:      "Movement lines created, by initial event status.",
		}, []string{"status"}),
		eventTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_transitions_total",
			Help:      "Movement event status transitions.",
		}, []string{"from", "to"}),
		writesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_rejected_total",
			Help:      "Ledger writes rejected, by operation and error kind.",
		}, []string{"operation", "kind"}),
		balanceQueryTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "balance_query_seconds",
			Help:      "Latency distribution for balance projections.",
			Buckets: []float64{
				0.001, 0.005, 0.01, 0.05,
				0.1, 0.25, 0.5, 1, 2, 5,
			},
		}),
		balanceRows: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "balance_rows",
			Help:      "Rows returned by balance projections.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestTiming: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

var _ ports.LedgerMetrics = (*Ledger)(nil)

// Ledger publica las métricas del libro en el registro por defecto de Prometheus.
type Ledger struct {
	m *metrics
}

// NewLedger devuelve el recolector; todas las instancias comparten los mismos vectores.
func NewLedger() *Ledger {
	return &Ledger{m: getMetrics()}
}

func (l *Ledger) EventCreated(status string, lines int) {
	l.m.eventsCreated.WithLabelValues(status).Inc()
	l.m.linesCreated.WithLabelValues(status).Add(float64(lines))
}

func (l *Ledger) EventTransitioned(from, to string) {
	l.m.eventTransitions.WithLabelValues(from, to).Inc()
}

func (l *Ledger) WriteRejected(operation, kind string) {
	l.m.writesRejected.WithLabelValues(operation, kind).Inc()
}

func (l *Ledger) BalanceQueryObserved(d time.Duration, rows int) {
	l.m.balanceQueryTime.Observe(d.Seconds())
	l.m.balanceRows.Observe(float64(rows))
}

// Middleware cuenta y cronometra cada petición por ruta registrada (no por path crudo).
func Middleware() fiber.Handler {
	m := getMetrics()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpRequestTiming.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registro por defecto para GET /metrics.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
