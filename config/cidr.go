package config

import (
	"fmt"
	"net"
)

// parseIPv6CIDR parses cidr and rejects anything that isn't an IPv6 prefix.
func parseIPv6CIDR(cidr string) (net.IP, *net.IPNet, error) {
	ip, prefix, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid network %q: %w", cidr, err)
	}

	if ip.To4() != nil {
		return nil, nil, fmt.Errorf("network %q is not an IPv6 prefix", cidr)
	}

	return ip, prefix, nil
}
