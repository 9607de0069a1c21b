package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ScrapeRegistry implements Registry for scrape-based metrics collection.
// Metrics are registered with a Prometheus registry and exposed via HTTP.
type ScrapeRegistry struct {
	prom *prometheus.Registry
}

// NewScrapeRegistry creates a new ScrapeRegistry with the standard Go and
// process collectors registered.
func NewScrapeRegistry() (*ScrapeRegistry, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("registering go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("registering process collector: %w", err)
	}

	return &ScrapeRegistry{
		prom: reg,
	}, nil
}

// Handler returns an http.Handler for the /metrics endpoint.
func (r *ScrapeRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// NewGauge creates and registers a new Gauge.
func (r *ScrapeRegistry) NewGauge(opts prometheus.GaugeOpts) (Gauge, error) {
	g := prometheus.NewGauge(opts)
	if err := r.prom.Register(g); err != nil {
		return nil, fmt.Errorf("registering gauge %q: %w", opts.Name, err)
	}
	return g, nil
}

// NewGaugeVec creates and registers a new GaugeVec.
func (r *ScrapeRegistry) NewGaugeVec(opts prometheus.GaugeOpts, labels []string) (GaugeVec, error) {
	g := prometheus.NewGaugeVec(opts, labels)
	if err := r.prom.Register(g); err != nil {
		return nil, fmt.Errorf("registering gauge vec %q: %w", opts.Name, err)
	}
	return &scrapeGaugeVec{gaugeVec: g}, nil
}

// NewCounter creates and registers a new Counter.
func (r *ScrapeRegistry) NewCounter(opts prometheus.CounterOpts) (Counter, error) {
	c := prometheus.NewCounter(opts)
	if err := r.prom.Register(c); err != nil {
		return nil, fmt.Errorf("registering counter %q: %w", opts.Name, err)
	}
	return c, nil
}

// NewCounterVec creates and registers a new CounterVec.
func (r *ScrapeRegistry) NewCounterVec(opts prometheus.CounterOpts, labels []string) (CounterVec, error) {
	c := prometheus.NewCounterVec(opts, labels)
	if err := r.prom.Register(c); err != nil {
		return nil, fmt.Errorf("registering counter vec %q: %w", opts.Name, err)
	}
	return &scrapeCounterVec{counterVec: c}, nil
}

// scrapeGaugeVec wraps prometheus.GaugeVec to implement the GaugeVec interface.
type scrapeGaugeVec struct {
	gaugeVec *prometheus.GaugeVec
}

func (g *scrapeGaugeVec) With(labels prometheus.Labels) Gauge {
	return g.gaugeVec.With(labels)
}

// scrapeCounterVec wraps prometheus.CounterVec to implement the CounterVec interface.
type scrapeCounterVec struct {
	counterVec *prometheus.CounterVec
}

func (c *scrapeCounterVec) With(labels prometheus.Labels) Counter {
	return c.counterVec.With(labels)
}
