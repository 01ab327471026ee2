package classify

import "v6recon/internal/addr"

// Column is a parsed, cached column of addresses. Malformed input strings
// become nil slots rather than parse errors, matching the catalog's
// tolerance for dirty input.
type Column struct {
	Raw    []string
	Parsed []*addr.Address
}

// NewColumn parses every string in raw once, in canonical or compressed
// IPv6 textual form, case-insensitively. The result is cached on the
// Column so repeated predicate passes never reparse.
func NewColumn(raw []string) *Column {
	parsed := make([]*addr.Address, len(raw))
	for i, s := range raw {
		a, err := addr.Parse(s)
		if err != nil {
			continue
		}
		parsed[i] = &a
	}
	return &Column{Raw: raw, Parsed: parsed}
}

// Valid returns the successfully parsed addresses, in input order,
// dropping null slots.
func (c *Column) Valid() []addr.Address {
	out := make([]addr.Address, 0, len(c.Parsed))
	for _, p := range c.Parsed {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Total is the number of successfully parsed addresses.
func (c *Column) Total() int {
	n := 0
	for _, p := range c.Parsed {
		if p != nil {
			n++
		}
	}
	return n
}

// Dropped is the number of input rows that failed to parse as an address
// and were replaced with a null slot instead of aborting the column.
func (c *Column) Dropped() int {
	return len(c.Raw) - c.Total()
}
