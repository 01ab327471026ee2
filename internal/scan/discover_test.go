package scan

import (
	"log/slog"
	"testing"

	"v6recon/internal/addr"
)

func TestSortAddressesAscendingNumeric(t *testing.T) {
	a1 := addr.FromHiLo(1, 5)
	a2 := addr.FromHiLo(1, 2)
	a3 := addr.FromHiLo(0, 9)
	addrs := []addr.Address{a1, a2, a3}
	sortAddresses(addrs)
	if addrs[0] != a3 || addrs[1] != a2 || addrs[2] != a1 {
		t.Fatalf("sortAddresses produced %v, want ascending numeric order", addrs)
	}
}

func TestDiscoverLinkLocalRequiresLinkLocalAddress(t *testing.T) {
	ifc := Interface{Name: "eth9", IsUp: true}
	if _, err := DiscoverLinkLocal(ifc, slog.Default()); err == nil {
		t.Fatal("expected error for interface with no link-local address")
	}
}

func TestDiscoverAllSkipsIneligibleInterfaces(t *testing.T) {
	lister := fakeLister{ifaces: []Interface{
		{Name: "lo", IsUp: true, IsLoopback: true},
		{Name: "eth0", IsUp: false},
	}}
	out, err := DiscoverAll(lister, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d addresses, want 0 (no eligible interfaces)", len(out))
	}
}

type fakeLister struct {
	ifaces []Interface
	err    error
}

func (f fakeLister) Interfaces() ([]Interface, error) {
	return f.ifaces, f.err
}
