package resolver

import (
	"context"
	"time"

	"github.com/slaacns/slaacns/evt"
	"github.com/slaacns/slaacns/model"
	"github.com/slaacns/slaacns/registry"
)

// ObserverResolver wraps the rest of the chain and publishes evt.QueryResolved
// once a response is produced, so metrics and query-log subscribers never
// need to sit inside the resolution path itself.
type ObserverResolver struct {
	NextResolver
}

// NewObserverResolver returns a ChainedResolver ready to be placed ahead of
// QueryResolver in a Chain.
func NewObserverResolver() *ObserverResolver {
	return &ObserverResolver{}
}

func (r *ObserverResolver) Resolve(ctx context.Context, req *model.Request) (*model.Response, error) {
	start := req.RequestTS
	if start.IsZero() {
		start = time.Now()
	}

	resp, err := r.next.Resolve(ctx, req)
	if err != nil {
		return resp, err
	}

	evt.Bus().Publish(evt.QueryResolved, req, resp, time.Since(start))

	return resp, nil
}

// publishUpstreamFallback announces that a network's upstream failed to
// answer a PTR query, so local synthesis is being used instead.
func publishUpstreamFallback(req *model.Request, network *registry.Network, cause error) {
	evt.Bus().Publish(evt.UpstreamFallback, req, network, cause)
}
