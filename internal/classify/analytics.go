package classify

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/alitto/pond/v2"

	"v6recon/internal/addr"
)

// poolSize bounds parallel predicate/reduction fan-out, matching the
// work-stealing pool budget.
func poolSize() int {
	if n := runtime.NumCPU(); n < 8 {
		return n
	}
	return 8
}

// countPool is shared across Count calls for the lifetime of the process,
// mirroring the long-lived provider-pool pattern rather than spinning one
// up per call.
var countPool = pond.NewResultPool[predicateCount](poolSize())

// CountRow is one row of a count() result table.
type CountRow struct {
	Predicate  string
	Count      int
	Percentage float64
}

type predicateCount struct {
	name  string
	count int
}

// Count evaluates every predicate in the catalog (or, if names is
// non-empty, only those named) against addresses in parallel, returning a
// table of non-zero-count predicates sorted by count descending.
func Count(addresses []addr.Address, names ...string) ([]CountRow, error) {
	predicates := Catalog
	if len(names) > 0 {
		predicates = make([]Predicate, 0, len(names))
		for _, n := range names {
			p, ok := ByName(n)
			if !ok {
				return nil, fmt.Errorf("classify: unknown predicate %q", n)
			}
			predicates = append(predicates, p)
		}
	}

	group := countPool.NewGroupContext(context.Background())

	for _, p := range predicates {
		p := p
		group.SubmitErr(func() (predicateCount, error) {
			n := 0
			for _, a := range addresses {
				if p.Test(a) {
					n++
				}
			}
			return predicateCount{name: p.Name, count: n}, nil
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("classify: count: %w", err)
	}

	total := len(addresses)
	rows := make([]CountRow, 0, len(results))
	for _, r := range results {
		if r.count == 0 {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = float64(r.count) / float64(total) * 100
		}
		rows = append(rows, CountRow{Predicate: r.name, Count: r.count, Percentage: pct})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Predicate < rows[j].Predicate
	})
	return rows, nil
}

// BlockTallyRow is one row of a special-block tally result.
type BlockTallyRow struct {
	Name        string
	Count       int
	Description string
}

// SpecialBlockTally classifies each address into the first matching block
// from the static, ordered Blocks list — unlike Count, which evaluates
// every predicate independently, an address here contributes to exactly
// one block (or none, if it falls in none of them). Only blocks with a
// non-zero count are returned, in Blocks order.
func SpecialBlockTally(addresses []addr.Address) []BlockTallyRow {
	counts := make([]int, len(Blocks))
	for _, a := range addresses {
		for i, b := range Blocks {
			if b.Test(a) {
				counts[i]++
				break
			}
		}
	}

	rows := make([]BlockTallyRow, 0, len(Blocks))
	for i, b := range Blocks {
		if counts[i] == 0 {
			continue
		}
		rows = append(rows, BlockTallyRow{Name: b.Name, Count: counts[i], Description: b.Description})
	}
	return rows
}

// Filter passes through addresses matching the named predicate,
// preserving input order.
func Filter(addresses []addr.Address, predicateName string) ([]addr.Address, error) {
	p, ok := ByName(predicateName)
	if !ok {
		return nil, fmt.Errorf("classify: unknown predicate %q", predicateName)
	}
	var out []addr.Address
	for _, a := range addresses {
		if p.Test(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Statistics summarizes a set of addresses: total count, unique count,
// duplicate count, and the duplication ratio.
type Statistics struct {
	Total          int
	Unique         int
	Duplicates     int
	DuplicateRatio float64
}

// ComputeStatistics computes total/unique/duplicate counts over addresses.
func ComputeStatistics(addresses []addr.Address) Statistics {
	seen := make(map[addr.Address]int, len(addresses))
	for _, a := range addresses {
		seen[a]++
	}
	stats := Statistics{Total: len(addresses), Unique: len(seen)}
	stats.Duplicates = stats.Total - stats.Unique
	if stats.Total > 0 {
		stats.DuplicateRatio = float64(stats.Duplicates) / float64(stats.Total)
	}
	return stats
}

// SubnetCount is one row of a subnets() histogram.
type SubnetCount struct {
	Prefix addr.Address
	Bits   int
	Count  int
}

// Subnets groups addresses by their prefixLength-bit network, returning
// the top maxK groups sorted by count descending, ties broken by
// numerically ascending prefix.
func Subnets(addresses []addr.Address, prefixLength, maxK int) []SubnetCount {
	counts := make(map[addr.Address]int)
	for _, a := range addresses {
		counts[maskToPrefix(a, prefixLength)]++
	}

	rows := make([]SubnetCount, 0, len(counts))
	for k, c := range counts {
		rows = append(rows, SubnetCount{Prefix: k, Bits: prefixLength, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if rows[i].Prefix.Hi() != rows[j].Prefix.Hi() {
			return rows[i].Prefix.Hi() < rows[j].Prefix.Hi()
		}
		return rows[i].Prefix.Lo() < rows[j].Prefix.Lo()
	})
	if maxK > 0 && len(rows) > maxK {
		rows = rows[:maxK]
	}
	return rows
}

// maskToPrefix zeroes every bit below the top prefixLength bits of a.
func maskToPrefix(a addr.Address, prefixLength int) addr.Address {
	hi, lo := a.Hi(), a.Lo()
	if prefixLength <= 0 {
		return addr.FromHiLo(0, 0)
	}
	if prefixLength >= 128 {
		return a
	}
	if prefixLength <= 64 {
		shift := uint(64 - prefixLength)
		hi = (hi >> shift) << shift
		return addr.FromHiLo(hi, 0)
	}
	shift := uint(128 - prefixLength)
	lo = (lo >> shift) << shift
	return addr.FromHiLo(hi, lo)
}

// Entropy computes the mean bit-value across [bitStart, bitEnd) over all
// addresses: a bit-mean, not Shannon entropy. bitStart must be < bitEnd.
func Entropy(addresses []addr.Address, bitStart, bitEnd int) (float64, error) {
	if bitStart >= bitEnd {
		return 0, ErrInvalidRange
	}
	if len(addresses) == 0 {
		return 0, nil
	}

	var sum float64
	width := bitEnd - bitStart
	for _, a := range addresses {
		hi, lo := a.Hi(), a.Lo()
		for bit := bitStart; bit < bitEnd; bit++ {
			if bitAt(hi, lo, bit) {
				sum++
			}
		}
	}
	return sum / float64(width*len(addresses)), nil
}

// bitAt returns the value of bit index i (0 = most significant bit of hi)
// across the 128-bit (hi, lo) pair.
func bitAt(hi, lo uint64, i int) bool {
	if i < 64 {
		return (hi>>(63-uint(i)))&1 == 1
	}
	j := i - 64
	return (lo>>(63-uint(j)))&1 == 1
}
