package classify

import "v6recon/internal/addr"

// Predicate is one named membership test in the fixed catalog.
type Predicate struct {
	Name        string
	Description string
	Test        func(addr.Address) bool
}

// cidrPredicate builds a Predicate from a CIDR containment test.
func cidrPredicate(name, description, cidr string) Predicate {
	c := addr.MustCIDR(cidr)
	return Predicate{Name: name, Description: description, Test: c.Contains}
}

// eui64 reports whether a carries the ff:fe marker of a modified EUI-64
// interface identifier at bytes 11 and 12.
func eui64(a addr.Address) bool {
	return a[11] == 0xff && a[12] == 0xfe
}

// lowByteHost reports whether the address's lower 64 bits are small
// enough to fit in 32 bits, a loose heuristic for manually-numbered hosts.
func lowByteHost(a addr.Address) bool {
	return a.Lo() < (uint64(1) << 32)
}

// Catalog is the fixed, closed set of classification predicates.
var Catalog = buildCatalog()

// Blocks is the static, ordered list of RFC special-use prefixes used by
// SpecialBlockTally. Order matters: the tally assigns each address to the
// first block in this list that contains it, not every matching block.
var Blocks = buildBlocks()

func buildBlocks() []Predicate {
	return []Predicate{
		cidrPredicate("loopback", "the single loopback address ::1", "::1/128"),
		cidrPredicate("unspecified", "the unspecified address ::", "::/128"),
		cidrPredicate("link_local", "link-local unicast", "fe80::/10"),
		cidrPredicate("unique_local", "unique local addresses (ULA)", "fc00::/7"),
		cidrPredicate("multicast", "multicast", "ff00::/8"),
		cidrPredicate("solicited_node", "solicited-node multicast", "ff02::1:ff00:0/104"),
		cidrPredicate("ipv4_mapped", "IPv4-mapped IPv6 addresses", "::ffff:0:0/96"),
		cidrPredicate("ipv4_to_ipv6", "IPv4/IPv6 translation (NAT64)", "64:ff9b::/96"),
		cidrPredicate("extended_ipv4", "IPv4/IPv6 translation, local-use", "64:ff9b:1::/48"),
		cidrPredicate("ipv6_to_ipv4", "6to4", "2002::/16"),
		cidrPredicate("documentation", "documentation", "2001:db8::/32"),
		cidrPredicate("documentation_2", "documentation (additional range)", "3fff::/20"),
		cidrPredicate("benchmarking", "benchmarking", "2001:2::/48"),
		cidrPredicate("teredo", "Teredo tunneling", "2001::/32"),
		cidrPredicate("ietf_protocol", "IETF protocol assignments", "2001::/23"),
		cidrPredicate("port_control", "Port Control Protocol anycast", "2001:1::1/128"),
		cidrPredicate("turn", "TURN relay anycast", "2001:1::2/128"),
		cidrPredicate("dns_sd", "DNS-SD service discovery", "2001:1::3/128"),
		cidrPredicate("amt", "Automatic Multicast Tunneling", "2001:3::/32"),
		cidrPredicate("segment_routing", "segment routing (SRv6)", "5f00::/16"),
		cidrPredicate("discard_only", "discard-only address block", "100::/64"),
		cidrPredicate("dummy_prefix", "dummy IPv6 prefix", "100:0:0:1::/64"),
		cidrPredicate("as112_v6", "AS112-v6 nameservers", "2001:4:112::/48"),
		cidrPredicate("direct_as112", "direct delegation AS112 service", "2620:4f:8000::/48"),
		cidrPredicate("deprecated_orchid", "deprecated ORCHID", "2001:10::/28"),
		cidrPredicate("orchid_v2", "ORCHIDv2", "2001:20::/28"),
		cidrPredicate("drone_remote_id", "drone remote identification", "2001:30::/28"),
	}
}

func buildCatalog() []Predicate {
	base := append([]Predicate(nil), Blocks...)
	base = append(base,
		Predicate{Name: "eui64", Description: "modified EUI-64 interface identifier", Test: eui64},
		Predicate{Name: "low_byte_host", Description: "low-numbered host within a /96", Test: lowByteHost},
	)

	excluded := make([]func(addr.Address) bool, 0, 8)
	for _, name := range []string{
		"loopback", "unspecified", "link_local", "unique_local",
		"multicast", "ipv4_mapped", "documentation", "documentation_2",
	} {
		for _, p := range base {
			if p.Name == name {
				excluded = append(excluded, p.Test)
			}
		}
	}
	globallyRoutable := func(a addr.Address) bool {
		for _, test := range excluded {
			if test(a) {
				return false
			}
		}
		return true
	}

	return append(base, Predicate{
		Name:        "globally_routable",
		Description: "not loopback, unspecified, link-local, unique-local, multicast, mapped, or documentation",
		Test:        globallyRoutable,
	})
}

// ByName returns the catalog entry with the given name, or false if no
// predicate by that name exists.
func ByName(name string) (Predicate, bool) {
	for _, p := range Catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Predicate{}, false
}
