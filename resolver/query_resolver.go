package resolver

import (
	"context"
	"time"

	"github.com/miekg/dns"

	"github.com/slaacns/slaacns/ipv6"
	"github.com/slaacns/slaacns/model"
	"github.com/slaacns/slaacns/registry"
	"github.com/slaacns/slaacns/wire"
)

const defaultUpstreamTimeout = 2 * time.Second

// QueryResolver is the terminal resolver: it classifies the question,
// consults the network registry, optionally delegates to an upstream for
// PTR, and otherwise synthesizes the answer. The pipeline branches exactly
// once here; query logging and metrics wrap this resolver rather than
// splitting its logic further.
type QueryResolver struct {
	registry        *registry.Registry
	upstream        UpstreamDelegate
	upstreamTimeout time.Duration
}

// NewQueryResolver builds the terminal query resolver. A zero timeout falls
// back to defaultUpstreamTimeout.
func NewQueryResolver(reg *registry.Registry, upstream UpstreamDelegate, timeout time.Duration) *QueryResolver {
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}

	return &QueryResolver{registry: reg, upstream: upstream, upstreamTimeout: timeout}
}

func (r *QueryResolver) Resolve(ctx context.Context, req *model.Request) (*model.Response, error) {
	q := req.Req.Question[0]

	switch q.Qtype {
	case dns.TypePTR:
		return r.resolvePTR(ctx, req), nil
	case dns.TypeAAAA:
		return r.resolveAAAA(req), nil
	default:
		return nxdomain(req.Req, "unsupported question type"), nil
	}
}

func (r *QueryResolver) resolvePTR(ctx context.Context, req *model.Request) *model.Response {
	qname := req.Req.Question[0].Name

	addr, err := ipv6.AddrFromPTR(dns.SplitDomainName(qname))
	if err != nil {
		return nxdomain(req.Req, "malformed ip6.arpa name")
	}

	network, ok := r.registry.FindByAddr(addr)
	if !ok {
		return nxdomain(req.Req, "address outside any configured network")
	}

	if network.Upstream != nil {
		if target, ok := r.askUpstream(ctx, req, network, qname); ok {
			rr := wire.NewPTRAnswer(qname, target)

			return &model.Response{
				Res:    wire.Answer(req.Req, rr),
				RType:  model.ResponseTypeRelayed,
				Reason: "upstream " + network.Upstream.String(),
			}
		}
	}

	digits, err := ipv6.HostDigits(addr, network.Prefix)
	if err != nil {
		// FindByAddr already guarantees containment; this should be unreachable.
		return nxdomain(req.Req, "address outside network")
	}

	rr := wire.NewPTRAnswer(qname, network.Template.Synthesize(digits))

	return &model.Response{Res: wire.Answer(req.Req, rr), RType: model.ResponseTypeSynthesized, Reason: "synthesized"}
}

func (r *QueryResolver) askUpstream(
	ctx context.Context, req *model.Request, network *registry.Network, qname string,
) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.upstreamTimeout)
	defer cancel()

	target, err := r.upstream.ResolvePTR(ctx, network.Upstream, qname, r.upstreamTimeout)
	if err != nil {
		req.Log.WithField("upstream", network.Upstream.String()).
			WithError(err).Trace("upstream fallback, synthesizing locally")
		publishUpstreamFallback(req, network, err)

		return "", false
	}

	return target, true
}

func (r *QueryResolver) resolveAAAA(req *model.Request) *model.Response {
	qname := req.Req.Question[0].Name

	network, digits, ok := r.registry.FindByName(qname)
	if !ok {
		return nxdomain(req.Req, "name matches no configured template")
	}

	addr, err := ipv6.AddrFromDigits(digits, network.Prefix)
	if err != nil {
		return nxdomain(req.Req, "invalid digit residue")
	}

	rr := wire.NewAAAAAnswer(qname, addr)

	return &model.Response{Res: wire.Answer(req.Req, rr), RType: model.ResponseTypeSynthesized, Reason: "synthesized"}
}

func nxdomain(req *dns.Msg, reason string) *model.Response {
	resp := wire.Error(req, dns.RcodeNameError)
	resp.Authoritative = true

	return &model.Response{Res: resp, RType: model.ResponseTypeNXDomain, Reason: reason}
}
