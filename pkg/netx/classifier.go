package netx

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Classifier decides whether a caller's network origin belongs to the
// configured internal address ranges. The classification is binary: an
// origin either matches one of the internal prefixes or it does not.
type Classifier struct {
	prefixes []netip.Prefix
}

// NewClassifier parses a list of CIDR prefixes designating internal ranges.
func NewClassifier(cidrs []string) (*Classifier, error) {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		p, err := netip.ParsePrefix(cidr)
		if err != nil {
			return nil, fmt.Errorf("netx: invalid internal network %q: %w", cidr, err)
		}
		prefixes = append(prefixes, p.Masked())
	}
	return &Classifier{prefixes: prefixes}, nil
}

// IsInternal reports whether addr falls within any internal prefix.
// Unparseable addresses classify as external.
func (c *Classifier) IsInternal(addr string) bool {
	ip, err := netip.ParseAddr(strings.TrimSpace(addr))
	if err != nil {
		return false
	}
	ip = ip.Unmap()

	for _, p := range c.prefixes {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP extracts the originating client address from the request.
// It handles X-Forwarded-For and X-Real-IP headers for proxied requests.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ips := strings.Split(xff, ","); len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
