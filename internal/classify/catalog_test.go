package classify

import (
	"testing"

	"v6recon/internal/addr"
)

func must(t *testing.T, s string) addr.Address {
	t.Helper()
	a, err := addr.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return a
}

func TestCatalogPredicateSmoke(t *testing.T) {
	cases := map[string]string{
		"loopback":         "::1",
		"unspecified":      "::",
		"link_local":       "fe80::1",
		"solicited_node":   "ff02::1:ff00:1",
		"documentation":    "2001:db8::1",
		"ipv6_to_ipv4":     "2002::1",
		"benchmarking":     "2001:2:0:0:0:0:0:1",
		"port_control":     "2001:1::1",
		"segment_routing":  "5f00::1",
	}
	for predicate, addrStr := range cases {
		p, ok := ByName(predicate)
		if !ok {
			t.Fatalf("predicate %q not in catalog", predicate)
		}
		a := must(t, addrStr)
		if !p.Test(a) {
			t.Errorf("predicate %q should match %s", predicate, addrStr)
		}
	}
}

func TestGloballyRoutableExcludesSpecialRanges(t *testing.T) {
	p, _ := ByName("globally_routable")
	if p.Test(must(t, "::1")) {
		t.Error("loopback should not be globally routable")
	}
	if p.Test(must(t, "fe80::1")) {
		t.Error("link-local should not be globally routable")
	}
	if !p.Test(must(t, "2606:4700:4700::1111")) {
		t.Error("a real public address should be globally routable")
	}
}

func TestEUI64Predicate(t *testing.T) {
	p, _ := ByName("eui64")
	if !p.Test(must(t, "2001:db8::aabb:ccff:fedd:eeff")) {
		t.Error("expected eui64 match on ff:fe marker")
	}
	if p.Test(must(t, "2001:db8::1")) {
		t.Error("did not expect eui64 match")
	}
}

func TestBlocksAllHaveDescriptions(t *testing.T) {
	for _, b := range Blocks {
		if b.Description == "" {
			t.Errorf("block %q has no description", b.Name)
		}
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, ok := ByName("does_not_exist"); ok {
		t.Fatal("expected no match for unknown predicate name")
	}
}
