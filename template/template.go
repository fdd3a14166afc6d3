// Package template implements the hostname template grammar (spec component
// C2): compiling a template containing exactly one %DIGITS% token into a
// matcher/formatter for a network's host-digit strings.
package template

import (
	"errors"
	"strings"
)

// Token is the placeholder substituted with hex host digits.
const Token = "%DIGITS%"

var (
	// ErrNoToken is returned when a template doesn't contain %DIGITS%.
	ErrNoToken = errors.New("template: missing %DIGITS% token")
	// ErrMultipleTokens is returned when a template contains more than one %DIGITS%.
	ErrMultipleTokens = errors.New("template: multiple %DIGITS% tokens")
	// ErrEmptyTemplate is returned for an empty template string.
	ErrEmptyTemplate = errors.New("template: empty template")
)

// Template is a compiled hostname template: a literal prefix and suffix
// (both lowercased, may span multiple labels) around a fixed-width digit run.
type Template struct {
	raw        string
	prefix     string
	suffix     string
	digitCount int
}

// Compile parses raw, which must contain exactly one %DIGITS% token, and
// binds it to digitCount hex digits (the host-digit count of the owning
// network's prefix).
func Compile(raw string, digitCount int) (*Template, error) {
	if raw == "" {
		return nil, ErrEmptyTemplate
	}

	count := strings.Count(raw, Token)

	switch {
	case count == 0:
		return nil, ErrNoToken
	case count > 1:
		return nil, ErrMultipleTokens
	}

	idx := strings.Index(raw, Token)

	return &Template{
		raw:        raw,
		prefix:     strings.ToLower(raw[:idx]),
		suffix:     strings.ToLower(raw[idx+len(Token):]),
		digitCount: digitCount,
	}, nil
}

// String returns the original, uncompiled template text.
func (t *Template) String() string {
	return t.raw
}

// Synthesize concatenates the prefix literal, digits, and suffix literal
// into a fully-qualified name. digits is not validated here; callers are
// expected to pass the exact-width output of ipv6.HostDigits.
func (t *Template) Synthesize(digits string) string {
	return t.prefix + strings.ToLower(digits) + t.suffix
}

// Match strips a case-insensitive leading prefix_literal and trailing
// suffix_literal from qname. The residue must be exactly digitCount lowercase
// hex characters (qname is lowercased before comparison, so matching is
// case-insensitive; the returned digit string is always lowercase).
func (t *Template) Match(qname string) (digits string, ok bool) {
	name := strings.ToLower(strings.TrimSuffix(qname, "."))

	wantLen := len(t.prefix) + len(t.suffix) + t.digitCount
	if len(name) != wantLen {
		return "", false
	}

	if !strings.HasPrefix(name, t.prefix) || !strings.HasSuffix(name, t.suffix) {
		return "", false
	}

	residue := name[len(t.prefix) : len(name)-len(t.suffix)]

	for _, r := range residue {
		if !isHexDigit(r) {
			return "", false
		}
	}

	return residue, true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}
