// Package server implements the collaborators the core query pipeline
// leaves external (spec §1/§2): UDP socket setup and per-packet dispatch,
// and a minimal HTTP admin surface for health and metrics.
package server

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/miekg/dns"

	"github.com/slaacns/slaacns/config"
	"github.com/slaacns/slaacns/log"
	"github.com/slaacns/slaacns/metrics"
	"github.com/slaacns/slaacns/registry"
	"github.com/slaacns/slaacns/resolver"
)

const defaultListenAddr = "::"

// Server owns the UDP listeners and the optional HTTP admin mux; it has no
// DNS semantics of its own beyond framing raw datagrams for Handle.
type Server struct {
	dnsServers []*dns.Server
	chain      resolver.Resolver
	httpMux    *chi.Mux
}

// New builds a Server bound to cfg's listen addresses (or the wildcard
// address if none are configured) on port, dispatching to reg/upstream via
// the standard resolver chain.
func New(cfg *config.Config, reg *registry.Registry, port int) (*Server, error) {
	addrs := cfg.Listen
	if len(addrs) == 0 {
		addrs = []string{defaultListenAddr}
	}

	chain := resolver.Chain(
		resolver.NewObserverResolver(),
		resolver.NewQueryResolver(reg, resolver.NewUpstream(), cfg.UpstreamTimeout.ToDuration()),
	)

	srv := &Server{chain: chain, httpMux: newAdminMux()}

	mux := dns.NewServeMux()
	mux.HandleFunc(".", srv.onRequest)

	for _, addr := range addrs {
		udpAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(addr, strconv.Itoa(port)))
		if err != nil {
			srv.Stop()
			return nil, fmt.Errorf("server: resolve %s: %w", addr, err)
		}

		conn, err := net.ListenUDP("udp", udpAddr)
		if err != nil {
			srv.Stop()
			return nil, fmt.Errorf("server: listen %s: %w", addr, err)
		}

		srv.dnsServers = append(srv.dnsServers, &dns.Server{
			PacketConn: conn,
			Handler:    mux,
			UDPSize:    65535,
			NotifyStartedFunc: func() {
				log.Log().Infof("udp listener up on %s", conn.LocalAddr())
			},
		})
	}

	return srv, nil
}

// Start runs one miekg/dns server per UDP listener and, if httpAddr is non-empty,
// the HTTP admin server. It returns immediately; errors surface via logging.
func (s *Server) Start(ctx context.Context, httpAddr string) {
	for _, dnsServer := range s.dnsServers {
		dnsServer := dnsServer

		go func() {
			if err := dnsServer.ActivateAndServe(); err != nil {
				log.Log().WithError(err).Error("udp server stopped")
			}
		}()
	}

	if httpAddr != "" {
		go serveHTTP(httpAddr, s.httpMux)
	}

	metrics.Start()

	log.Log().Infof("listening on %d address(es)", len(s.dnsServers))
}

// Stop shuts down every DNS listener.
func (s *Server) Stop() {
	for _, dnsServer := range s.dnsServers {
		if err := dnsServer.Shutdown(); err != nil {
			log.Log().WithError(err).Error("udp server shutdown failed")
		}
	}
}

// onRequest re-validates a query miekg/dns already decoded per the core
// pipeline's stricter rules, resolves it, and writes the (possibly
// truncated) response back verbatim.
func (s *Server) onRequest(w dns.ResponseWriter, req *dns.Msg) {
	raw, err := req.Pack()
	if err != nil {
		log.Log().WithError(err).Error("can't repack decoded request")
		return
	}

	resp, ok := Handle(context.Background(), s.chain, raw)
	if !ok {
		return
	}

	if _, err := w.Write(resp); err != nil {
		log.Log().WithError(err).Error("udp write failed")
	}
}
