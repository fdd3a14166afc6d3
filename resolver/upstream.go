package resolver

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/slaacns/slaacns/config"
)

// UpstreamDelegate resolves a PTR name against a network's configured
// upstream server, implementing the "Upstream.resolve_ptr" collaborator
// contract: forward-resolve, bounded by deadline. Every failure is returned as
// an error, which the caller treats as a reason to synthesize locally.
type UpstreamDelegate interface {
	ResolvePTR(ctx context.Context, upstream *config.Upstream, qname string, deadline time.Duration) (hostname string, err error)
}

// Upstream is the default UpstreamDelegate, built on a UDP dns.Client
// exchange. It appends the literal label "upstream" to the outgoing query
// name, so an operator can point the upstream at a conventional authoritative
// server without creating a query loop back to this one.
type Upstream struct{}

// NewUpstream returns the default UpstreamDelegate.
func NewUpstream() *Upstream {
	return &Upstream{}
}

func (u *Upstream) ResolvePTR(
	ctx context.Context, upstream *config.Upstream, qname string, deadline time.Duration,
) (string, error) {
	upstreamName := dns.Fqdn(strings.TrimSuffix(qname, ".") + ".upstream")

	query := new(dns.Msg)
	query.Id = uint16(rand.Intn(1 << 16)) //nolint:gosec
	query.RecursionDesired = true
	query.SetQuestion(upstreamName, dns.TypePTR)

	client := &dns.Client{Net: "udp", Timeout: deadline}

	resp, _, err := client.ExchangeContext(ctx, query, upstream.String())
	if err != nil {
		return "", fmt.Errorf("resolver: upstream exchange: %w", err)
	}

	if resp.Rcode != dns.RcodeSuccess || len(resp.Answer) == 0 {
		return "", fmt.Errorf("resolver: upstream returned rcode=%d answers=%d", resp.Rcode, len(resp.Answer))
	}

	for _, rr := range resp.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			return ptr.Ptr, nil
		}
	}

	return "", fmt.Errorf("resolver: upstream reply carried no PTR answer")
}
