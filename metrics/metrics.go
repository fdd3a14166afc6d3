// Package metrics exposes Prometheus counters for the query pipeline (spec
// component C9), driven entirely by the events the resolver chain publishes
// on evt.Bus() rather than by any direct coupling to the resolver package.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//nolint:gochecknoglobals
var reg = prometheus.NewRegistry()

// RegisterMetric adds a collector to the registry served at Handler().
func RegisterMetric(c prometheus.Collector) {
	_ = reg.Register(c)
}

// Start registers the Go/process collectors alongside the query counters.
func Start() {
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	reg.MustRegister(prometheus.NewGoCollector())

	RegisterEventListeners()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
