//go:build linux

package scan

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/vishvananda/netlink"
)

// NetlinkLister is a Linux-only InterfaceLister backed by
// github.com/vishvananda/netlink, for callers that want live link state
// without net.Interfaces()'s extra syscalls.
type NetlinkLister struct{}

var _ InterfaceLister = NetlinkLister{}

// NewNetlinkLister constructs the Linux netlink-backed interface lister.
func NewNetlinkLister() InterfaceLister {
	return NetlinkLister{}
}

// Interfaces lists every link known to netlink, resolving each one's
// addresses via netlink.AddrList.
func (NetlinkLister) Interfaces() ([]Interface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("scan: netlink link list: %w", err)
	}

	out := make([]Interface, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()

		addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL)
		if err != nil {
			continue
		}
		var ips []netip.Addr
		for _, a := range addrs {
			if na, ok := netip.AddrFromSlice(a.IP.To16()); ok {
				ips = append(ips, na)
			}
		}

		out = append(out, Interface{
			Name:        attrs.Name,
			Index:       attrs.Index,
			IsUp:        attrs.OperState == netlink.OperUp,
			IsLoopback:  attrs.Flags&net.FlagLoopback != 0,
			IPAddresses: ips,
		})
	}
	return out, nil
}
