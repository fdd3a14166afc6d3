package config_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/slaacns/slaacns/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "config Suite")
}

var _ = Describe("Parse", func() {
	It("parses listen addresses, networks, templates and upstreams", func() {
		src := `
# top-level comment
listen [::]:53

network 2001:db8::/64
    resolves to host-%DIGITS%.example.org

network 2001:db8:1::/64
    resolves to node-%DIGITS%.internal
    with upstream 2001:db8:1::1
`
		cfg, err := config.Parse(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Listen).To(Equal([]string{"[::]:53"}))
		Expect(cfg.Networks).To(HaveLen(2))

		Expect(cfg.Networks[0].CIDR).To(Equal("2001:db8::/64"))
		Expect(cfg.Networks[0].Template).To(Equal("host-%DIGITS%.example.org"))
		Expect(cfg.Networks[0].Upstream).To(BeNil())

		Expect(cfg.Networks[1].Upstream).NotTo(BeNil())
		Expect(cfg.Networks[1].Upstream.Host).To(Equal("2001:db8:1::1"))
		Expect(cfg.Networks[1].Upstream.Port).To(Equal(uint16(config.DefaultUpstreamPort)))
	})

	It("rejects an IPv4 network", func() {
		_, err := config.Parse(strings.NewReader("network 192.0.2.0/24\n    resolves to x-%DIGITS%\n"))
		Expect(err).To(HaveOccurred())
	})

	It("collects multiple errors instead of stopping at the first", func() {
		src := `
network 2001:db8::/64
    resolves to host-%DIGITS%.example.org
    resolves to duplicate-%DIGITS%.example.org

network not-a-cidr
    resolves to x-%DIGITS%
`
		_, err := config.Parse(strings.NewReader(src))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("duplicate"))
		Expect(err.Error()).To(ContainSubstring("invalid network"))
	})

	It("requires a 'resolves to' directive for every network", func() {
		_, err := config.Parse(strings.NewReader("network 2001:db8::/64\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("missing 'resolves to'"))
	})

	It("rejects an indented line outside any network block", func() {
		_, err := config.Parse(strings.NewReader("    resolves to x-%DIGITS%\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("outside a network block"))
	})

	It("ignores blank lines and full-line comments", func() {
		cfg, err := config.Parse(strings.NewReader("\n# nothing here\n\nlisten [::]:53\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Listen).To(Equal([]string{"[::]:53"}))
	})
})

var _ = Describe("ParseUpstream", func() {
	It("defaults to port 53 when none is given", func() {
		up, err := config.ParseUpstream("2001:db8::1")
		Expect(err).NotTo(HaveOccurred())
		Expect(up.Port).To(Equal(uint16(53)))
	})

	It("honors a bracketed IPv6 port", func() {
		up, err := config.ParseUpstream("[2001:db8::1]:5353")
		Expect(err).NotTo(HaveOccurred())
		Expect(up.Host).To(Equal("2001:db8::1"))
		Expect(up.Port).To(Equal(uint16(5353)))
	})

	It("rejects a non-IP host", func() {
		_, err := config.ParseUpstream("resolver.example.org")
		Expect(err).To(HaveOccurred())
	})
})
