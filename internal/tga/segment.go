package tga

import "v6recon/internal/addr"

// ValueProb is one observed segment value and its empirical probability
// mass, mined from the seed corpus.
type ValueProb struct {
	Value uint64  `json:"value"`
	Prob  float64 `json:"prob"`
}

// Segment is a contiguous run of nybbles treated as one random variable.
// Segments are created only during training and are immutable thereafter.
type Segment struct {
	Start  int         `json:"start"`
	End    int         `json:"end"`
	Values []ValueProb `json:"values"`
}

// Width returns the number of nybbles covered by the segment.
func (s Segment) Width() int {
	return s.End - s.Start + 1
}

// sample draws one value from the segment's distribution using r as the
// source of uniform randomness in [0,1).
func (s Segment) sample(r float64) uint64 {
	var cumulative float64
	for _, vp := range s.Values {
		cumulative += vp.Prob
		if r < cumulative {
			return vp.Value
		}
	}
	// Floating point tail: fall back to the last value (the lowest-mass
	// one, since mined values are ordered by descending probability).
	if len(s.Values) > 0 {
		return s.Values[len(s.Values)-1].Value
	}
	return 0
}

// applyTo writes the segment's value into the corresponding nybbles of a.
func (s Segment) applyTo(a addr.Address, value uint64) addr.Address {
	return addr.WithNybbleValue(a, s.Start, s.End, value)
}
