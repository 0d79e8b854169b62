package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation direction and outcome label values.
const (
	DirectionTime = "time"
	DirectionRMS  = "rms"

	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ITCCollector bundles Prometheus metrics for the integration-time
// calculator and provides a ready-made /metrics handler.
type ITCCollector struct {
	gatherer prometheus.Gatherer

	Calculations    *prometheus.CounterVec
	IntegrationTime prometheus.Histogram
	TargetRMS       prometheus.Histogram
}

// NewITCCollector registers calculator metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewITCCollector(reg prometheus.Registerer) (*ITCCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itc_calculations_total",
		Help: "Total number of ITC calculations, labeled by mode, filter, direction, and outcome.",
	}, []string{"mode", "filter", "direction", "outcome"})
	calculations, err := registerCounterVec(reg, calculations, "itc_calculations_total")
	if err != nil {
		return nil, err
	}

	integrationTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "itc_integration_time_seconds",
		Help:    "Computed elapsed integration times in seconds.",
		Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400, 28800, 86400},
	})
	integrationTime, err = registerHistogram(reg, integrationTime, "itc_integration_time_seconds")
	if err != nil {
		return nil, err
	}

	targetRMS := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "itc_target_rms_mjy",
		Help:    "Computed map RMS values in mJy/beam.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
	})
	targetRMS, err = registerHistogram(reg, targetRMS, "itc_target_rms_mjy")
	if err != nil {
		return nil, err
	}

	return &ITCCollector{
		gatherer:        gatherer,
		Calculations:    calculations,
		IntegrationTime: integrationTime,
		TargetRMS:       targetRMS,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *ITCCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveCalculation records one calculation attempt.
func (c *ITCCollector) ObserveCalculation(mode, filter, direction, outcome string) {
	if c == nil || c.Calculations == nil {
		return
	}
	c.Calculations.WithLabelValues(mode, filter, direction, outcome).Inc()
}

// ObserveIntegrationTime records a computed integration time.
func (c *ITCCollector) ObserveIntegrationTime(seconds float64) {
	if c == nil || c.IntegrationTime == nil {
		return
	}
	c.IntegrationTime.Observe(seconds)
}

// ObserveTargetRMS records a computed RMS value.
func (c *ITCCollector) ObserveTargetRMS(rms float64) {
	if c == nil || c.TargetRMS == nil {
		return
	}
	c.TargetRMS.Observe(rms)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ITCCollector) Handler() http.Handler {
	gatherer := c.Gatherer()
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
