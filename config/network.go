package config

import "net"

// NetworkConfig is one "network <cidr>" block (plus its indented
// sub-directives), parsed but not yet
// semantically validated (host-width alignment and template compilation are
// the registry package's job).
type NetworkConfig struct {
	CIDR     string
	Prefix   *net.IPNet
	Template string
	Upstream *Upstream
}
