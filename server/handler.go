package server

import (
	"context"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/slaacns/slaacns/log"
	"github.com/slaacns/slaacns/model"
	"github.com/slaacns/slaacns/resolver"
	"github.com/slaacns/slaacns/wire"
)

// Handle is the core query-pipeline entry point: it decodes a single raw
// datagram, classifies and resolves it through chain, and returns the bytes
// to send back. ok is false only when encoding the reply itself fails; even
// a datagram too malformed to unpack still gets a FORMERR reply (ID 0).
func Handle(ctx context.Context, chain resolver.Resolver, raw []byte) (response []byte, ok bool) {
	msg, err := wire.Decode(raw)
	if msg == nil {
		return encode(wire.MinimalFormErr())
	}

	if err != nil {
		return encode(wire.Error(msg, dns.RcodeFormatError))
	}

	req := model.NewRequest(msg, requestLogger(msg))

	resp, err := chain.Resolve(ctx, req)
	if err != nil {
		req.Log.WithError(err).Error("internal resolver error")

		return encode(wire.Error(msg, dns.RcodeServerFailure))
	}

	return encode(resp.Res)
}

func encode(msg *dns.Msg) ([]byte, bool) {
	raw, err := wire.Encode(msg)
	if err != nil {
		log.Log().WithError(err).Error("can't encode response")

		return nil, false
	}

	return raw, true
}

func requestLogger(msg *dns.Msg) *logrus.Entry {
	if len(msg.Question) == 0 {
		return logrus.NewEntry(log.Log())
	}

	q := msg.Question[0]

	return logrus.NewEntry(log.Log()).WithFields(logrus.Fields{
		"qname": q.Name,
		"qtype": dns.TypeToString[q.Qtype],
	})
}
