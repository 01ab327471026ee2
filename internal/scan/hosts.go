package scan

import (
	"net"
	"net/netip"

	"v6recon/internal/addr"
)

// HostsIter enumerates every address in prefix, from the network address
// through the last address, inclusive. It is a range-over-func iterator so
// the sender loop can consume it without materializing the (potentially
// enormous) full host list.
func HostsIter(prefix addr.CIDR) func(yield func(addr.Address) bool) {
	p := prefix.Netip()
	start := addr.FromNetip(p.Masked().Addr())
	hi, lo := start.Hi(), start.Lo()
	bits := p.Bits()
	if p.Addr().Is4() {
		// A plain IPv4 prefix is enumerated as IPv4-mapped addresses.
		bits += 96
	}
	count := hostCount(bits)
	// hostHi masks the host bits held in hi; used only when count is 0.
	hostHi := uint64(1)<<uint(64-bits) - 1

	return func(yield func(addr.Address) bool) {
		cur := addr.FromHiLo(hi, lo)
		for i := uint64(0); ; i++ {
			if !yield(cur) {
				return
			}
			if count != 0 && i+1 >= count {
				return
			}
			if count == 0 && lo == ^uint64(0) && hi&hostHi == hostHi {
				// Just yielded the prefix's last address.
				return
			}
			var carry uint64
			lo, carry = lo+1, 0
			if lo == 0 {
				carry = 1
			}
			hi += carry
			cur = addr.FromHiLo(hi, lo)
		}
	}
}

// hostCount returns the number of addresses covered by a /bits IPv6
// prefix, or 0 if that count doesn't fit in a uint64 (bits <= 64), meaning
// "too large to count — stop on the prefix's all-ones host bits instead".
func hostCount(bits int) uint64 {
	hostBits := 128 - bits
	if hostBits >= 64 {
		return 0
	}
	return uint64(1) << uint(hostBits)
}

// netipFromIP converts a net.IP (as returned by icmp raw socket reads)
// into a net/netip.Addr.
func netipFromIP(ip net.IP) (netip.Addr, bool) {
	return netip.AddrFromSlice(ip.To16())
}
