package addr

import (
	"fmt"
	"net/netip"
)

// CIDR wraps a net/netip.Prefix, canonicalized to its network address, and
// adds the containment semantics used throughout the classifier.
type CIDR struct {
	prefix netip.Prefix
}

// MustCIDR parses s (e.g. "fe80::/10") or panics. Intended for package-level
// predicate catalog initialization where s is a compile-time constant.
func MustCIDR(s string) CIDR {
	c, err := ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCIDR parses an IPv6 (or IPv4-mapped) CIDR string.
func ParseCIDR(s string) (CIDR, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return CIDR{}, fmt.Errorf("addr: parse cidr %q: %w", s, err)
	}
	return CIDR{prefix: p.Masked()}, nil
}

// Contains reports whether a falls within c, per spec: (addr & mask) ==
// (network & mask).
func (c CIDR) Contains(a Address) bool {
	return c.prefix.Contains(a.Netip())
}

// String returns the canonical CIDR notation.
func (c CIDR) String() string {
	return c.prefix.String()
}

// Bits returns the prefix length.
func (c CIDR) Bits() int {
	return c.prefix.Bits()
}

// Netip returns the underlying net/netip.Prefix, for callers (such as the
// scan engine's host enumeration) that need lower-level address
// arithmetic this package doesn't itself expose.
func (c CIDR) Netip() netip.Prefix {
	return c.prefix
}
