// Package wire implements DNS message decode/encode (spec component C4):
// stricter-than-miekg/dns FormErr validation on the way in, and PTR/AAAA
// answer construction plus the 512-byte UDP truncation budget on the way out.
package wire

import (
	"errors"
	"fmt"
	"net"

	"github.com/miekg/dns"
)

const (
	// AnswerTTL is the TTL on every synthesized answer RR. Addresses are
	// never cached upstream of this server, so the value is cosmetic.
	AnswerTTL = 60

	maxUDPSize = 512
)

var (
	// ErrUnreadable means raw couldn't be unpacked into a DNS message at
	// all; the header isn't trustworthy enough to echo an ID, so the caller
	// must reply with MinimalFormErr (ID 0) instead of the req-based Error.
	ErrUnreadable = errors.New("wire: unreadable DNS message")
	// ErrFormErr means raw unpacked into a message, but violates one of the
	// request invariants (question count, opcode, QR, class). The returned
	// message is still usable to build a FORMERR reply carrying the
	// original ID.
	ErrFormErr = errors.New("wire: malformed request")
)

// Decode unpacks raw and validates it against the request invariants. The
// first return value is non-nil whenever the header could be parsed, even
// when err wraps ErrFormErr, so callers can still form an error reply. When
// err wraps ErrUnreadable, msg is nil and the caller must build its reply
// with MinimalFormErr instead, since no ID could be recovered from raw.
func Decode(raw []byte) (*dns.Msg, error) {
	msg := new(dns.Msg)
	if err := msg.Unpack(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	if err := validate(msg); err != nil {
		return msg, err
	}

	return msg, nil
}

func validate(msg *dns.Msg) error {
	switch {
	case msg.Response:
		return fmt.Errorf("%w: QR bit set on a query", ErrFormErr)
	case msg.Opcode != dns.OpcodeQuery:
		return fmt.Errorf("%w: unsupported opcode %d", ErrFormErr, msg.Opcode)
	case len(msg.Question) != 1:
		return fmt.Errorf("%w: expected exactly one question, got %d", ErrFormErr, len(msg.Question))
	case msg.Question[0].Qclass != dns.ClassINET:
		return fmt.Errorf("%w: unsupported question class %d", ErrFormErr, msg.Question[0].Qclass)
	default:
		return nil
	}
}

// NewPTRAnswer builds a PTR answer RR for qname pointing at target.
func NewPTRAnswer(qname string, target string) *dns.PTR {
	return &dns.PTR{
		Hdr: dns.RR_Header{Name: qname, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: AnswerTTL},
		Ptr: dns.Fqdn(target),
	}
}

// NewAAAAAnswer builds an AAAA answer RR for qname.
func NewAAAAAnswer(qname string, addr net.IP) *dns.AAAA {
	return &dns.AAAA{
		Hdr:  dns.RR_Header{Name: qname, Rrtype: dns.TypeAAAA, Class: dns.ClassINET, Ttl: AnswerTTL},
		AAAA: addr,
	}
}

// Answer builds an authoritative NOERROR reply to req carrying rrs.
func Answer(req *dns.Msg, rrs ...dns.RR) *dns.Msg {
	resp := new(dns.Msg)
	resp.SetReply(req)
	resp.Authoritative = true
	resp.Answer = rrs

	return resp
}

// Error builds a reply to req with no answer section and the given RCODE.
func Error(req *dns.Msg, rcode int) *dns.Msg {
	resp := new(dns.Msg)
	resp.SetRcode(req, rcode)

	return resp
}

// MinimalFormErr builds a FORMERR reply for a datagram too malformed to
// unpack at all: ID 0, since no ID could be recovered from raw, and no
// question section, since none could be trusted either.
func MinimalFormErr() *dns.Msg {
	resp := new(dns.Msg)
	resp.Id = 0
	resp.Response = true
	resp.Opcode = dns.OpcodeQuery
	resp.Rcode = dns.RcodeFormatError

	return resp
}

// Encode packs msg, falling back to a truncated (TC=1, empty answer/
// authority/additional sections) reply if the packed message would exceed
// the 512-byte classic UDP budget.
func Encode(msg *dns.Msg) ([]byte, error) {
	raw, err := msg.Pack()
	if err != nil {
		return nil, fmt.Errorf("wire: pack: %w", err)
	}

	if len(raw) <= maxUDPSize {
		return raw, nil
	}

	truncated := msg.Copy()
	truncated.Truncated = true
	truncated.Answer = nil
	truncated.Ns = nil
	truncated.Extra = nil

	raw, err = truncated.Pack()
	if err != nil {
		return nil, fmt.Errorf("wire: pack truncated: %w", err)
	}

	return raw, nil
}
