// Package addr provides the 128-bit IPv6 address representation shared by
// the generator, scanner, and classifier subsystems.
package addr

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// Address is a canonical 16-octet IPv6 address. Nybbles are addressable by
// index 0 (most significant) through 31.
type Address [16]byte

// FromNetip converts a netip.Addr into an Address. The address must be an
// IPv6 (or IPv4-in-IPv6) address; IPv4 addresses are widened via As16.
func FromNetip(a netip.Addr) Address {
	return Address(a.As16())
}

// Netip returns the netip.Addr view of a.
func (a Address) Netip() netip.Addr {
	return netip.AddrFrom16(a)
}

// String returns the compressed textual form of a.
func (a Address) String() string {
	return a.Netip().String()
}

// Parse accepts canonical or compressed IPv6 textual form, case-insensitive.
func Parse(s string) (Address, error) {
	na, err := netip.ParseAddr(s)
	if err != nil {
		return Address{}, fmt.Errorf("addr: parse %q: %w", s, err)
	}
	if na.Is4() {
		na = netip.AddrFrom16(na.As16())
	}
	return Address(na.As16()), nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Hi returns the most significant 64 bits of a as an unsigned integer.
func (a Address) Hi() uint64 {
	return binary.BigEndian.Uint64(a[0:8])
}

// Lo returns the least significant 64 bits of a as an unsigned integer.
func (a Address) Lo() uint64 {
	return binary.BigEndian.Uint64(a[8:16])
}

// FromHiLo builds an Address from its big-endian 64-bit halves.
func FromHiLo(hi, lo uint64) Address {
	var a Address
	binary.BigEndian.PutUint64(a[0:8], hi)
	binary.BigEndian.PutUint64(a[8:16], lo)
	return a
}

// Nybble returns the 4-bit value at nybble index i (0 = most significant,
// 31 = least significant). It panics if i is out of [0,31].
func (a Address) Nybble(i int) byte {
	if i < 0 || i > 31 {
		panic(fmt.Sprintf("addr: nybble index %d out of range", i))
	}
	b := a[i/2]
	if i%2 == 0 {
		return b >> 4
	}
	return b & 0x0f
}

// SetNybble returns a copy of a with nybble index i set to v (low 4 bits
// of v are used).
func (a Address) SetNybble(i int, v byte) Address {
	if i < 0 || i > 31 {
		panic(fmt.Sprintf("addr: nybble index %d out of range", i))
	}
	v &= 0x0f
	byteIdx := i / 2
	if i%2 == 0 {
		a[byteIdx] = (a[byteIdx] & 0x0f) | (v << 4)
	} else {
		a[byteIdx] = (a[byteIdx] & 0xf0) | v
	}
	return a
}

// NybbleValue extracts the integer value covered by nybbles [start, end]
// inclusive (big-endian, MSB first). end-start+1 must be <= 16 nybbles (64
// bits) to fit in a uint64.
func NybbleValue(a Address, start, end int) uint64 {
	var v uint64
	for i := start; i <= end; i++ {
		v = (v << 4) | uint64(a.Nybble(i))
	}
	return v
}

// WithNybbleValue returns a copy of a with nybbles [start, end] inclusive
// set from the low bits of value, most significant nybble first.
func WithNybbleValue(a Address, start, end int, value uint64) Address {
	width := end - start + 1
	for i := 0; i < width; i++ {
		shift := uint((width - 1 - i) * 4)
		nyb := byte((value >> shift) & 0xf)
		a = a.SetNybble(start+i, nyb)
	}
	return a
}
