// Package helpertest provides Gomega matchers shared across this module's
// Ginkgo suites for asserting on model.Response values.
package helpertest

import (
	"fmt"

	"github.com/miekg/dns"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"

	"github.com/slaacns/slaacns/model"
)

const (
	AAAA = dns.Type(dns.TypeAAAA)
	PTR  = dns.Type(dns.TypePTR)
)

func toAnswer(m *model.Response) []dns.RR {
	return m.Res.Answer
}

// HaveNoAnswer matches a response with an empty answer section.
func HaveNoAnswer() types.GomegaMatcher {
	return gomega.WithTransform(toAnswer, gomega.BeEmpty())
}

// HaveReason matches a response's Reason field exactly.
func HaveReason(reason string) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(m *model.Response) (bool, error) {
		return m.Reason == reason, nil
	}).WithTemplate(
		"Expected:\n{{.Actual}}\n{{.To}} have reason:\n{{format .Data 1}}",
		reason,
	)
}

// HaveResponseType matches a response's ResponseType.
func HaveResponseType(c model.ResponseType) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(m *model.Response) (bool, error) {
		return m.RType == c, nil
	}).WithTemplate(
		"Expected:\n{{.Actual}}\n{{.To}} have ResponseType:\n{{format .Data 1}}",
		c.String(),
	)
}

// HaveReturnCode matches a response's DNS RCODE.
func HaveReturnCode(code int) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(m *model.Response) (bool, error) {
		return m.Res.Rcode == code, nil
	}).WithTemplate(
		"Expected:\n{{.Actual}}\n{{.To}} have RCode:\n{{format .Data 1}}",
		fmt.Sprintf("%d (%s)", code, dns.RcodeToString[code]),
	)
}

func toFirstRR(m *model.Response) (dns.RR, error) {
	if len(m.Res.Answer) != 1 {
		return nil, fmt.Errorf("expected exactly one answer RR, got %d", len(m.Res.Answer))
	}

	return m.Res.Answer[0], nil
}

// HaveTTL matches the TTL of a response's single answer RR.
func HaveTTL(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(m *model.Response) (uint32, error) {
		rr, err := toFirstRR(m)
		if err != nil {
			return 0, err
		}

		return rr.Header().Ttl, nil
	}, matcher)
}

// BeDNSRecord matches a response's single answer RR against a domain, type
// and rendered answer value (PTR target or AAAA address).
func BeDNSRecord(domain string, dnsType dns.Type, answer string) types.GomegaMatcher {
	return &dnsRecordMatcher{domain: domain, dnsType: dnsType, answer: answer}
}

type dnsRecordMatcher struct {
	domain  string
	dnsType dns.Type
	answer  string
}

func (matcher *dnsRecordMatcher) matchSingle(rr dns.RR) (bool, error) {
	if rr.Header().Name != matcher.domain || dns.Type(rr.Header().Rrtype) != matcher.dnsType {
		return false, nil
	}

	switch v := rr.(type) {
	case *dns.AAAA:
		return v.AAAA.String() == matcher.answer, nil
	case *dns.PTR:
		return v.Ptr == matcher.answer, nil
	default:
		return false, nil
	}
}

func (matcher *dnsRecordMatcher) Match(actual interface{}) (bool, error) {
	resp, ok := actual.(*model.Response)
	if !ok {
		return false, fmt.Errorf("BeDNSRecord expects a *model.Response, got %T", actual)
	}

	rr, err := toFirstRR(resp)
	if err != nil {
		return false, err
	}

	return matcher.matchSingle(rr)
}

func (matcher *dnsRecordMatcher) FailureMessage(actual interface{}) string {
	return fmt.Sprintf("Expected\n\t%s\nto contain\n\tdomain %q, type %q, answer %q",
		actual, matcher.domain, dns.TypeToString[uint16(matcher.dnsType)], matcher.answer)
}

func (matcher *dnsRecordMatcher) NegatedFailureMessage(actual interface{}) string {
	return fmt.Sprintf("Expected\n\t%s\nnot to contain\n\tdomain %q, type %q, answer %q",
		actual, matcher.domain, dns.TypeToString[uint16(matcher.dnsType)], matcher.answer)
}
