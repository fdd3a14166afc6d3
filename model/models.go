package model

import (
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// ResponseType describes how a Response's answer (if any) was produced.
type ResponseType int

const (
	// ResponseTypeSynthesized means the answer was generated from a network's template.
	ResponseTypeSynthesized ResponseType = iota
	// ResponseTypeRelayed means the answer was relayed verbatim from an upstream resolver.
	ResponseTypeRelayed
	// ResponseTypeNXDomain means no network/template matched the question.
	ResponseTypeNXDomain
	// ResponseTypeFormErr means the query itself was malformed.
	ResponseTypeFormErr
	// ResponseTypeServFail means an unexpected internal error occurred.
	ResponseTypeServFail
)

func (r ResponseType) String() string {
	switch r {
	case ResponseTypeSynthesized:
		return "SYNTHESIZED"
	case ResponseTypeRelayed:
		return "RELAYED"
	case ResponseTypeNXDomain:
		return "NXDOMAIN"
	case ResponseTypeFormErr:
		return "FORMERR"
	case ResponseTypeServFail:
		return "SERVFAIL"
	default:
		return "UNKNOWN"
	}
}

// Response is the result of resolving one Request.
type Response struct {
	Res    *dns.Msg
	Reason string
	RType  ResponseType
}

// Request represents one decoded client DNS query as it moves through the resolver chain.
type Request struct {
	Req       *dns.Msg
	Log       *logrus.Entry
	RequestTS time.Time
}

// NewRequest wraps a decoded query message for consumption by the resolver chain.
func NewRequest(msg *dns.Msg, logger *logrus.Entry) *Request {
	return &Request{
		Req:       msg,
		Log:       logger,
		RequestTS: time.Now(),
	}
}
