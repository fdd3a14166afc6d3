// Package registry implements the network registry (spec component C3): an
// ordered collection of configured networks, resolving an address or a query
// name to the first network whose prefix or template claims it.
package registry

import (
	"errors"
	"fmt"
	"net"

	"github.com/hashicorp/go-multierror"

	"github.com/slaacns/slaacns/config"
	"github.com/slaacns/slaacns/template"
)

// ErrHostWidthNotNibbleAligned is returned when a prefix's host width isn't a
// multiple of 4 bits, so its host bits can't be rendered as whole hex digits.
var ErrHostWidthNotNibbleAligned = errors.New("registry: network host width is not a multiple of 4 bits")

// Network is a fully compiled, runtime-ready configured network.
type Network struct {
	CIDR     string
	Prefix   *net.IPNet
	Template *template.Template
	Upstream *config.Upstream
}

// NewNetwork validates prefix's host width and compiles rawTemplate against it.
func NewNetwork(cidr string, prefix *net.IPNet, rawTemplate string, upstream *config.Upstream) (*Network, error) {
	ones, bits := prefix.Mask.Size()
	hostBits := bits - ones

	if hostBits%4 != 0 {
		return nil, fmt.Errorf("%w: %s", ErrHostWidthNotNibbleAligned, cidr)
	}

	tmpl, err := template.Compile(rawTemplate, hostBits/4)
	if err != nil {
		return nil, fmt.Errorf("registry: network %s: %w", cidr, err)
	}

	return &Network{
		CIDR:     cidr,
		Prefix:   prefix,
		Template: tmpl,
		Upstream: upstream,
	}, nil
}

// Registry is the ordered list of compiled networks, first-match-wins on both
// address and name lookups (deliberately not longest-prefix-match: see the
// corresponding design note).
type Registry struct {
	networks []*Network
}

// Build compiles a list of parsed config.NetworkConfig entries into a
// Registry, preserving configuration order. All per-network errors are
// aggregated rather than returned on the first failure.
func Build(networks []config.NetworkConfig) (*Registry, error) {
	var errs *multierror.Error

	compiled := make([]*Network, 0, len(networks))

	for _, n := range networks {
		network, err := NewNetwork(n.CIDR, n.Prefix, n.Template, n.Upstream)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		compiled = append(compiled, network)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Registry{networks: compiled}, nil
}

// New builds a Registry directly from already-compiled networks, mainly for tests.
func New(networks ...*Network) *Registry {
	return &Registry{networks: networks}
}

// FindByAddr returns the first network in configuration order whose prefix
// contains addr. Longest-prefix match is deliberately not used: configuration
// order decides, even when a later network's prefix is more specific.
func (r *Registry) FindByAddr(addr net.IP) (*Network, bool) {
	for _, n := range r.networks {
		if n.Prefix.Contains(addr) {
			return n, true
		}
	}

	return nil, false
}

// FindByName returns the first network whose template matches qname, along
// with the extracted digit string.
func (r *Registry) FindByName(qname string) (*Network, string, bool) {
	for _, n := range r.networks {
		if digits, ok := n.Template.Match(qname); ok {
			return n, digits, true
		}
	}

	return nil, "", false
}

// Networks returns the compiled networks in configuration order.
func (r *Registry) Networks() []*Network {
	return r.networks
}
