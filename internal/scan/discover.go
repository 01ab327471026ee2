package scan

import (
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"sort"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/sync/errgroup"

	"v6recon/internal/addr"
)

// allNodesMulticast is ff02::1, the IPv6 all-nodes link-local multicast
// address.
var allNodesMulticast = netip.MustParseAddr("ff02::1")

// listenWindow is how long discover_link_local listens for replies after
// sending the multicast Echo Request.
const listenWindow = 5 * time.Second

// DiscoverLinkLocal sends a single ICMPv6 Echo Request to ff02::1 on ifc,
// sourced from the interface's link-local address, then listens for
// listenWindow and returns the deduplicated, sorted set of responding
// source addresses.
func DiscoverLinkLocal(ifc Interface, log *slog.Logger) ([]addr.Address, error) {
	if log == nil {
		log = slog.Default()
	}

	if _, ok := ifc.LinkLocal(); !ok {
		return nil, fmt.Errorf("scan: interface %s has no link-local address", ifc.Name)
	}

	conn, err := icmp.ListenPacket("ip6:ipv6-icmp", "::")
	if err != nil {
		return nil, fmt.Errorf("scan: open icmpv6 on %s: %w: %w", ifc.Name, ErrChannel, err)
	}
	defer conn.Close()

	p := conn.IPv6PacketConn()
	if p != nil {
		_ = p.SetMulticastInterface(&net.Interface{Index: ifc.Index, Name: ifc.Name})
	}

	pkt, err := buildEcho(true, time.Now())
	if err != nil {
		return nil, fmt.Errorf("scan: build discovery echo: %w", err)
	}

	dst := &net.IPAddr{IP: net.ParseIP(allNodesMulticast.String()), Zone: ifc.Name}
	if _, err := conn.WriteTo(pkt, dst); err != nil {
		return nil, fmt.Errorf("scan: send discovery echo on %s: %w", ifc.Name, err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(listenWindow))

	seen := make(map[addr.Address]struct{})
	buf := make([]byte, 1500)
	for {
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			break
		}
		if _, ok := parseEchoReply(true, buf[:n]); !ok {
			continue
		}
		a, ok := addrFromNet(src)
		if !ok {
			continue
		}
		seen[a] = struct{}{}
	}

	out := make([]addr.Address, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sortAddresses(out)
	return out, nil
}

// sortAddresses sorts addresses in ascending 128-bit numeric order.
func sortAddresses(addrs []addr.Address) {
	sort.Slice(addrs, func(i, j int) bool {
		if addrs[i].Hi() != addrs[j].Hi() {
			return addrs[i].Hi() < addrs[j].Hi()
		}
		return addrs[i].Lo() < addrs[j].Lo()
	})
}

// DiscoverAll runs DiscoverLinkLocal concurrently over every interface
// that is up, non-loopback, and owns at least one IPv6 address, unioning
// the results. A per-interface failure is logged and excluded, never
// fatal to the others.
func DiscoverAll(lister InterfaceLister, log *slog.Logger) ([]addr.Address, error) {
	if log == nil {
		log = slog.Default()
	}

	ifaces, err := lister.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("scan: list interfaces: %w", err)
	}

	var eligible []Interface
	for _, ifc := range ifaces {
		if EligibleForDiscovery(ifc) {
			eligible = append(eligible, ifc)
		}
	}

	results := make([][]addr.Address, len(eligible))
	var g errgroup.Group
	for i, ifc := range eligible {
		i, ifc := i, ifc
		g.Go(func() error {
			found, err := DiscoverLinkLocal(ifc, log)
			if err != nil {
				log.Warn("scan: link-local discovery failed", "iface", ifc.Name, "err", err)
				return nil
			}
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[addr.Address]struct{})
	for _, r := range results {
		for _, a := range r {
			seen[a] = struct{}{}
		}
	}
	out := make([]addr.Address, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sortAddresses(out)
	return out, nil
}
