package resolver_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/slaacns/slaacns/evt"
	"github.com/slaacns/slaacns/model"
	"github.com/slaacns/slaacns/registry"
	"github.com/slaacns/slaacns/resolver"

	"github.com/miekg/dns"
)

var _ = Describe("Chain", func() {
	It("wires each ChainedResolver to the next one and returns the first", func() {
		observer := resolver.NewObserverResolver()
		plainNet, _ := registry.NewNetwork("2001:db8::/64", cidr("2001:db8::/64"), "test-%DIGITS%.local", nil)
		terminal := resolver.NewQueryResolver(registry.New(plainNet), resolver.NewUpstream(), time.Second)

		head := resolver.Chain(observer, terminal)
		Expect(head).To(BeIdenticalTo(observer))
		Expect(observer.GetNext()).To(BeIdenticalTo(Resolver(terminal)))
	})
})

// Resolver is a small local alias for resolver.Resolver, used by the
// identity assertion above.
type Resolver = resolver.Resolver

var _ = Describe("ObserverResolver", func() {
	It("publishes a QueryResolved event for every response", func() {
		plainNet, _ := registry.NewNetwork("2001:db8::/64", cidr("2001:db8::/64"), "test-%DIGITS%.local", nil)
		terminal := resolver.NewQueryResolver(registry.New(plainNet), resolver.NewUpstream(), time.Second)
		chain := resolver.Chain(resolver.NewObserverResolver(), terminal)

		received := make(chan *model.Response, 1)
		handler := func(req *model.Request, resp *model.Response, d time.Duration) {
			received <- resp
		}
		Expect(evt.Bus().Subscribe(evt.QueryResolved, handler)).To(Succeed())
		defer evt.Bus().Unsubscribe(evt.QueryResolved, handler) //nolint:errcheck

		req := request("test-00000000123456789abcdef0.local", dns.TypeAAAA)
		_, err := chain.Resolve(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())

		Eventually(received).Should(Receive())
	})
})
