package scan

import (
	"fmt"
	"net"
	"net/netip"
)

// Interface is the portable view of a network interface the discovery
// logic needs: enough to pick eligible, non-loopback, up interfaces with
// at least one IPv6 address.
type Interface struct {
	Name        string
	Index       int
	IsUp        bool
	IsLoopback  bool
	IPAddresses []netip.Addr
}

// HasIPv6 reports whether the interface owns at least one IPv6 address.
func (i Interface) HasIPv6() bool {
	for _, a := range i.IPAddresses {
		if a.Is6() && !a.Is4In6() {
			return true
		}
	}
	return false
}

// LinkLocal returns the interface's first fe80::/10 address, if any.
func (i Interface) LinkLocal() (netip.Addr, bool) {
	for _, a := range i.IPAddresses {
		if a.Is6() && a.IsLinkLocalUnicast() {
			return a, true
		}
	}
	return netip.Addr{}, false
}

// InterfaceLister enumerates the host's network interfaces. The portable
// implementation (NetInterfaceLister) uses the standard library; a Linux
// build additionally offers NewNetlinkLister for live link state without
// the extra net package syscalls.
type InterfaceLister interface {
	Interfaces() ([]Interface, error)
}

// NetInterfaceLister is the default, portable InterfaceLister built on
// net.Interfaces().
type NetInterfaceLister struct{}

var _ InterfaceLister = NetInterfaceLister{}

// Interfaces lists every interface visible to the standard library,
// resolving each one's addresses.
func (NetInterfaceLister) Interfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("scan: list interfaces: %w", err)
	}

	out := make([]Interface, 0, len(ifaces))
	for _, ifi := range ifaces {
		addrs, err := ifi.Addrs()
		if err != nil {
			continue
		}
		var ips []netip.Addr
		for _, a := range addrs {
			var ip net.IP
			switch v := a.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil {
				continue
			}
			if na, ok := netip.AddrFromSlice(ip.To16()); ok {
				ips = append(ips, na)
			}
		}
		out = append(out, Interface{
			Name:        ifi.Name,
			Index:       ifi.Index,
			IsUp:        ifi.Flags&net.FlagUp != 0,
			IsLoopback:  ifi.Flags&net.FlagLoopback != 0,
			IPAddresses: ips,
		})
	}
	return out, nil
}

// EligibleForDiscovery reports whether ifc is up, non-loopback, and owns
// at least one IPv6 address, the criterion discover_all uses to select
// interfaces.
func EligibleForDiscovery(ifc Interface) bool {
	return ifc.IsUp && !ifc.IsLoopback && ifc.HasIPv6()
}
