package metrics

import (
	"fmt"
	"time"

	"github.com/miekg/dns"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/slaacns/slaacns/evt"
	"github.com/slaacns/slaacns/log"
	"github.com/slaacns/slaacns/model"
	"github.com/slaacns/slaacns/registry"
)

// RegisterEventListeners wires every metrics collector to its evt.Bus() topic.
func RegisterEventListeners() {
	registerQueryListeners()
	registerUpstreamListeners()
}

func registerQueryListeners() {
	queriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_total",
			Help: "Number of queries processed, by question type and result",
		}, []string{"qtype", "result"},
	)

	RegisterMetric(queriesTotal)

	subscribe(evt.QueryResolved, func(req *model.Request, resp *model.Response, _ time.Duration) {
		qtype := dns.TypeToString[req.Req.Question[0].Qtype]
		queriesTotal.WithLabelValues(qtype, resp.RType.String()).Inc()

		if resp.RType == model.ResponseTypeRelayed {
			upstreamRequestsTotal.WithLabelValues("success").Inc()
		}
	})
}

//nolint:gochecknoglobals
var upstreamRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Number of per-network upstream PTR requests, by result",
	}, []string{"result"},
)

//nolint:gochecknoglobals
var upstreamFallbackTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "upstream_fallback_total",
		Help: "Number of PTR queries that fell back to local synthesis after an upstream failure",
	},
)

func registerUpstreamListeners() {
	RegisterMetric(upstreamRequestsTotal)
	RegisterMetric(upstreamFallbackTotal)

	subscribe(evt.UpstreamFallback, func(_ *model.Request, _ *registry.Network, _ error) {
		upstreamRequestsTotal.WithLabelValues("fallback").Inc()
		upstreamFallbackTotal.Inc()
	})
}

func subscribe(topic string, fn interface{}) {
	log.FatalOnError(fmt.Sprintf("can't subscribe topic %q", topic), evt.Bus().Subscribe(topic, fn))
}
