package simmetrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"webpulse/internal/engine"
	"webpulse/internal/hit"
)

type Metrics struct {
	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	return &Metrics{
		registry: prometheus.NewRegistry(),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CollectEngine attaches hit and subnet collectors to the engine. Must be
// called before the engine starts.
func (m *Metrics) CollectEngine(e *engine.Engine) error {
	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webpulse_hits_total",
		Help: "Simulated request attempts.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webpulse_hit_failures_total",
		Help: "Attempts that failed or got a non-2xx/3xx response.",
	})
	statuses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webpulse_hit_status_total",
		Help: "Responses by HTTP status code.",
	}, []string{"status"})
	subnets := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "webpulse_subnets",
		Help: "Distinct address subnets issued so far.",
	}, func() float64 {
		return float64(e.Stats().Subnets)
	})

	for _, c := range []prometheus.Collector{hits, failures, statuses, subnets} {
		if err := m.registry.Register(c); err != nil {
			zap.L().Error(err.Error())
			return err
		}
	}

	e.OnHit(func(rec hit.Record) {
		hits.Inc()
		if !rec.OK() {
			failures.Inc()
		}
		if rec.Status > 0 {
			statuses.WithLabelValues(strconv.Itoa(rec.Status)).Inc()
		}
	})

	return nil
}
