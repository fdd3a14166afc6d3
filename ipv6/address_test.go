package ipv6_test

import (
	"net"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/slaacns/slaacns/ipv6"
)

func TestIPv6(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ipv6 Suite")
}

var _ = Describe("PTRLabels / AddrFromPTR", func() {
	It("renders the scenario address from spec.md §8", func() {
		addr := net.ParseIP("2001:db8::1234:5678:9abc:def0")
		labels := ipv6.PTRLabels(addr)

		Expect(labels).To(HaveLen(34))
		Expect(labels[32]).To(Equal("ip6"))
		Expect(labels[33]).To(Equal("arpa"))
		Expect(labels[:32]).To(Equal([]string{
			"0", "f", "e", "d", "c", "b", "a", "9", "8", "7", "6", "5", "4", "3", "2", "1",
			"0", "0", "0", "0", "0", "0", "0", "0", "8", "b", "d", "0", "1", "0", "0", "2",
		}))
	})

	It("round-trips through AddrFromPTR", func() {
		addr := net.ParseIP("2001:db8::1234:5678:9abc:def0")
		got, err := ipv6.AddrFromPTR(ipv6.PTRLabels(addr))
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Equal(addr)).To(BeTrue())
	})

	It("rejects the wrong label count", func() {
		_, err := ipv6.AddrFromPTR([]string{"1", "2", "ip6", "arpa"})
		Expect(err).To(MatchError(ipv6.ErrMalformedName))
	})

	It("is case-insensitive on the ip6/arpa suffix", func() {
		labels := ipv6.PTRLabels(net.ParseIP("2001:db8::1"))
		labels[32] = "IP6"
		labels[33] = "ARPA"
		_, err := ipv6.AddrFromPTR(labels)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a non-hex nibble", func() {
		labels := ipv6.PTRLabels(net.ParseIP("2001:db8::1"))
		labels[0] = "zz"
		_, err := ipv6.AddrFromPTR(labels)
		Expect(err).To(MatchError(ipv6.ErrMalformedName))
	})
})

var _ = Describe("HostDigits / AddrFromDigits", func() {
	_, network, _ := net.ParseCIDR("2001:db8::/64")

	It("extracts the scenario digits from spec.md §8", func() {
		addr := net.ParseIP("2001:db8::1234:5678:9abc:def0")
		digits, err := ipv6.HostDigits(addr, network)
		Expect(err).NotTo(HaveOccurred())
		Expect(digits).To(Equal("123456789abcdef0"))
		Expect(digits).To(HaveLen(16))
	})

	It("round-trips through AddrFromDigits", func() {
		addr := net.ParseIP("2001:db8::1234:5678:9abc:def0")
		digits, err := ipv6.HostDigits(addr, network)
		Expect(err).NotTo(HaveOccurred())

		got, err := ipv6.AddrFromDigits(digits, network)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Equal(addr)).To(BeTrue())
	})

	It("rejects addresses outside the network", func() {
		_, err := ipv6.HostDigits(net.ParseIP("2001:dead::1"), network)
		Expect(err).To(MatchError(ipv6.ErrOutOfNetwork))
	})

	It("rejects the wrong digit count", func() {
		_, err := ipv6.AddrFromDigits("dead", network)
		Expect(err).To(MatchError(ipv6.ErrDigitCountMismatch))
	})

	It("rejects non-hex digits", func() {
		digits := "000000000000000g"
		_, err := ipv6.AddrFromDigits(digits, network)
		Expect(err).To(MatchError(ipv6.ErrNonHexDigit))
	})

	It("accepts uppercase hex digits and rebuilds the same address as lowercase", func() {
		lower := "123456789abcdef0"
		upper := "123456789ABCDEF0"

		addrLower, err := ipv6.AddrFromDigits(lower, network)
		Expect(err).NotTo(HaveOccurred())

		addrUpper, err := ipv6.AddrFromDigits(upper, network)
		Expect(err).NotTo(HaveOccurred())

		Expect(addrLower.Equal(addrUpper)).To(BeTrue())
	})

	It("zero-pads narrow host widths", func() {
		_, narrow, _ := net.ParseCIDR("2001:db8::/124")
		digits, err := ipv6.HostDigits(net.ParseIP("2001:db8::1"), narrow)
		Expect(err).NotTo(HaveOccurred())
		Expect(digits).To(Equal("1"))
	})
})
