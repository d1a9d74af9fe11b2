// Package metrics exposes prediction counters and the persisted outcome
// counts to Prometheus.
package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"newsverify/internal/model"
	"newsverify/internal/models"
)

const namespace = "newsverify"

const (
	collectTimeout = 5 * time.Second
	recordTimeout  = 5 * time.Second
)

var outcomeDesc = prometheus.NewDesc(
	namespace+"_prediction_outcomes_total",
	"Persisted prediction count by label and mode",
	[]string{"label", "mode"},
	nil,
)

// OutcomeStore persists aggregate prediction outcomes.
type OutcomeStore interface {
	IncrementOutcome(ctx context.Context, label, mode string) error
	Outcomes(ctx context.Context) ([]models.PredictionOutcome, error)
}

// OutcomeCollector is a custom Prometheus collector that reads outcome
// counts from the store on each scrape.
type OutcomeCollector struct {
	store OutcomeStore
	log   *zap.Logger
}

// Describe sends the metric descriptor to the channel.
func (c *OutcomeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- outcomeDesc
}

// Collect queries the store for all outcomes and emits them as counters.
func (c *OutcomeCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	outcomes, err := c.store.Outcomes(ctx)
	if err != nil {
		c.log.Error("failed to collect prediction outcome metrics", zap.Error(err))
		return
	}
	for _, o := range outcomes {
		ch <- prometheus.MustNewConstMetric(
			outcomeDesc,
			prometheus.CounterValue,
			float64(o.Count),
			o.Label,
			o.Mode,
		)
	}
}

// Metrics owns a private registry so tests and multiple servers in one
// process never collide on the default one.
type Metrics struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	duration    prometheus.Histogram
	modelInfo   *prometheus.GaugeVec
	storeUp     prometheus.Gauge

	log   *zap.Logger
	store OutcomeStore
	wg    sync.WaitGroup
}

// New registers the prediction metrics plus Go runtime and process
// collectors.
func New(log *zap.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		log:      log,
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served by label and mode",
		}, []string{"label", "mode"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent in the prediction pipeline",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		modelInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_info",
			Help:      "Loaded model bundle, always 1",
		}, []string{"name", "version", "mode"}),
		storeUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_up",
			Help:      "Whether the last outcome store probe succeeded",
		}),
	}

	m.registry.MustRegister(
		m.predictions,
		m.duration,
		m.modelInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// WithStore registers the outcome collector and persists every recorded
// prediction to store. Call once, before serving.
func (m *Metrics) WithStore(store OutcomeStore) *Metrics {
	m.store = store
	m.registry.MustRegister(&OutcomeCollector{store: store, log: m.log}, m.storeUp)
	return m
}

// SetStoreUp records the latest store probe result.
func (m *Metrics) SetStoreUp(up bool) {
	if up {
		m.storeUp.Set(1)
	} else {
		m.storeUp.Set(0)
	}
}

// SetModelInfo publishes the loaded bundle.
func (m *Metrics) SetModelInfo(name, version string, mode model.Mode) {
	m.modelInfo.Reset()
	m.modelInfo.WithLabelValues(name, version, string(mode)).Set(1)
}

// RecordPrediction counts a prediction and, when a store is attached,
// asynchronously persists its outcome. Store failures are only logged.
func (m *Metrics) RecordPrediction(label string, mode model.Mode, elapsed time.Duration) {
	m.predictions.WithLabelValues(label, string(mode)).Inc()
	m.duration.Observe(elapsed.Seconds())

	if m.store == nil {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := m.store.IncrementOutcome(ctx, label, string(mode)); err != nil {
			m.log.Error("failed to record prediction outcome",
				zap.String("label", label),
				zap.String("mode", string(mode)),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until pending outcome writes finish.
func (m *Metrics) Wait() {
	m.wg.Wait()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
