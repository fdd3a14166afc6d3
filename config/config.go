// Package config parses the server's directive-based configuration file: one
// directive per line, "#" starts a line comment, blank lines are ignored, and
// sub-directives of a "network" block are recognized by leading indentation.
//
//	listen ::
//
//	network 2001:db8::/64
//	    resolves to host-%DIGITS%.example.org
//
//	network 2001:db8:1::/64
//	    resolves to node-%DIGITS%.internal
//	    with upstream 2001:db8:1::53
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/hashicorp/go-multierror"
)

// Config is the parsed contents of a configuration file, before the
// registry package compiles its Networks into runtime resolvers.
type Config struct {
	Listen          []string
	QueryLog        bool     `default:"false"`
	UpstreamTimeout Duration `default:"2s"`
	Networks        []NetworkConfig
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads directives from r. All syntax errors are collected and
// returned together as a *multierror.Error rather than failing on the first.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var errs *multierror.Error

	var cur *NetworkConfig

	finalizeNetwork := func() {
		if cur == nil {
			return
		}

		if cur.Template == "" {
			errs = multierror.Append(errs,
				fmt.Errorf("config: network %s: missing 'resolves to' directive", cur.CIDR))
		}

		cfg.Networks = append(cfg.Networks, *cur)
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		raw := scanner.Text()
		if idx := strings.IndexByte(raw, '#'); idx >= 0 {
			raw = raw[:idx]
		}

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		indented := raw[0] == ' ' || raw[0] == '\t'

		if indented {
			if cur == nil {
				errs = multierror.Append(errs,
					fmt.Errorf("config: line %d: indented line outside a network block", lineNo))

				continue
			}

			if err := parseNetworkDirective(cur, trimmed); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("config: line %d: %w", lineNo, err))
			}

			continue
		}

		finalizeNetwork()

		if err := parseTopLevelDirective(cfg, &cur, trimmed); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("config: line %d: %w", lineNo, err))
		}
	}

	finalizeNetwork()

	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("config: %w", err))
	}

	return cfg, errs.ErrorOrNil()
}

func parseTopLevelDirective(cfg *Config, cur **NetworkConfig, line string) error {
	switch {
	case strings.HasPrefix(line, "listen "):
		addr := strings.TrimSpace(strings.TrimPrefix(line, "listen "))
		if addr == "" {
			return fmt.Errorf("empty listen address")
		}

		cfg.Listen = append(cfg.Listen, addr)

		return nil

	case strings.HasPrefix(line, "network "):
		cidr := strings.TrimSpace(strings.TrimPrefix(line, "network "))

		_, prefix, err := parseIPv6CIDR(cidr)
		if err != nil {
			return err
		}

		*cur = &NetworkConfig{CIDR: cidr, Prefix: prefix}

		return nil

	default:
		return fmt.Errorf("unknown directive %q", line)
	}
}

func parseNetworkDirective(cur *NetworkConfig, line string) error {
	switch {
	case strings.HasPrefix(line, "resolves to "):
		if cur.Template != "" {
			return fmt.Errorf("duplicate 'resolves to' directive")
		}

		cur.Template = strings.TrimSpace(strings.TrimPrefix(line, "resolves to "))

		return nil

	case strings.HasPrefix(line, "with upstream "):
		addr := strings.TrimSpace(strings.TrimPrefix(line, "with upstream "))

		upstream, err := ParseUpstream(addr)
		if err != nil {
			return err
		}

		cur.Upstream = upstream

		return nil

	default:
		return fmt.Errorf("unknown network directive %q", line)
	}
}
