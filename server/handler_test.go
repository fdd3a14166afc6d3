package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/miekg/dns"

	"github.com/slaacns/slaacns/registry"
	"github.com/slaacns/slaacns/resolver"
	"github.com/slaacns/slaacns/server"
)

func TestServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "server Suite")
}

func cidr(s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	Expect(err).NotTo(HaveOccurred())

	return n
}

func testChain() resolver.Resolver {
	n, err := registry.NewNetwork("2001:db8::/64", cidr("2001:db8::/64"), "test-%DIGITS%.local", nil)
	Expect(err).NotTo(HaveOccurred())

	reg := registry.New(n)

	return resolver.Chain(
		resolver.NewObserverResolver(),
		resolver.NewQueryResolver(reg, resolver.NewUpstream(), time.Second),
	)
}

var _ = Describe("Handle", func() {
	It("answers a well-formed AAAA query", func() {
		q := new(dns.Msg)
		q.SetQuestion(dns.Fqdn("test-123456789abcdef0.local"), dns.TypeAAAA)
		raw, err := q.Pack()
		Expect(err).NotTo(HaveOccurred())

		out, ok := server.Handle(context.Background(), testChain(), raw)
		Expect(ok).To(BeTrue())

		resp := new(dns.Msg)
		Expect(resp.Unpack(out)).To(Succeed())
		Expect(resp.Rcode).To(Equal(dns.RcodeSuccess))
		Expect(resp.Answer).To(HaveLen(1))
	})

	It("responds FORMERR to a malformed-but-parseable request", func() {
		q := new(dns.Msg)
		q.SetQuestion(dns.Fqdn("test.local"), dns.TypeAAAA)
		q.Question = append(q.Question, dns.Question{Name: dns.Fqdn("other.local"), Qtype: dns.TypeAAAA, Qclass: dns.ClassINET})
		raw, err := q.Pack()
		Expect(err).NotTo(HaveOccurred())

		out, ok := server.Handle(context.Background(), testChain(), raw)
		Expect(ok).To(BeTrue())

		resp := new(dns.Msg)
		Expect(resp.Unpack(out)).To(Succeed())
		Expect(resp.Rcode).To(Equal(dns.RcodeFormatError))
	})

	It("answers a datagram with no usable header with a minimal ID-0 FORMERR", func() {
		out, ok := server.Handle(context.Background(), testChain(), []byte{0xff})
		Expect(ok).To(BeTrue())

		resp := new(dns.Msg)
		Expect(resp.Unpack(out)).To(Succeed())
		Expect(resp.Id).To(Equal(uint16(0)))
		Expect(resp.Rcode).To(Equal(dns.RcodeFormatError))
		Expect(resp.Question).To(BeEmpty())
		Expect(resp.Answer).To(BeEmpty())
	})
})
