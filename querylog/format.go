package querylog

import (
	"strconv"

	"github.com/miekg/dns"
)

func dnsTypeName(t uint16) string {
	if name, ok := dns.TypeToString[t]; ok {
		return name
	}

	return strconv.Itoa(int(t))
}

func rcodeName(rcode int) string {
	if name, ok := dns.RcodeToString[rcode]; ok {
		return name
	}

	return strconv.Itoa(rcode)
}
