package tga

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"

	"v6recon/internal/addr"
)

// EntropyModel is the structure-aware target generation model. It
// partitions the 32 nybble positions into segments by per-position
// entropy, mines the empirical value distribution within each segment from
// the seed corpus, and samples new addresses segment by segment.
type EntropyModel struct {
	mu       sync.RWMutex
	Segments []Segment `json:"segments"`
}

var _ Model = (*EntropyModel)(nil)

// Train computes nybble-position entropy over seeds, derives segment
// boundaries via hysteresis, and mines each segment's value distribution.
func (m *EntropyModel) Train(seeds []addr.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(seeds) == 0 {
		m.Segments = nil
		return nil
	}

	bounds := segmentBoundaries(seeds)
	segments := make([]Segment, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		start, end := bounds[i], bounds[i+1]-1
		segments = append(segments, mineSegment(seeds, start, end))
	}
	m.Segments = segments
	return nil
}

// mineSegment computes the empirical value distribution of nybbles
// [start,end] across seeds.
func mineSegment(seeds []addr.Address, start, end int) Segment {
	counts := make(map[uint64]int, len(seeds))
	for _, s := range seeds {
		v := addr.NybbleValue(s, start, end)
		counts[v]++
	}
	n := float64(len(seeds))
	values := make([]ValueProb, 0, len(counts))
	for v, c := range counts {
		values = append(values, ValueProb{Value: v, Prob: float64(c) / n})
	}
	// Deterministic ordering by descending probability, tie-broken by
	// value, so that sample()'s cumulative walk and any serialized form
	// are reproducible across runs trained on the same corpus.
	for i := 1; i < len(values); i++ {
		for j := i; j > 0; j-- {
			a, b := values[j-1], values[j]
			if a.Prob > b.Prob || (a.Prob == b.Prob && a.Value <= b.Value) {
				break
			}
			values[j-1], values[j] = values[j], values[j-1]
		}
	}
	return Segment{Start: start, End: end, Values: values}
}

// Generate draws one address by sampling each segment independently.
func (m *EntropyModel) Generate() (addr.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.Segments) == 0 {
		return addr.Address{}, ErrModelEmpty
	}

	var out addr.Address
	for _, seg := range m.Segments {
		r, err := randFloat64()
		if err != nil {
			return addr.Address{}, fmt.Errorf("tga: sample segment [%d,%d]: %w", seg.Start, seg.End, err)
		}
		out = seg.applyTo(out, seg.sample(r))
	}
	return out, nil
}

// GenerateUnique draws up to count distinct addresses, retrying collisions
// within a fixed attempt budget.
func (m *EntropyModel) GenerateUnique(count int) ([]addr.Address, error) {
	if count <= 0 {
		return nil, nil
	}

	seen := make(map[addr.Address]struct{}, count)
	out := make([]addr.Address, 0, count)
	for attempts := 0; len(out) < count && attempts < maxGenerateUniqueAttempts; attempts++ {
		a, err := m.Generate()
		if err != nil {
			return out, err
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	if len(out) < count {
		return out, ErrUnderflow
	}
	return out, nil
}

// MarshalModel serializes the trained segments. PRNG state is never part
// of the model's persisted form.
func (m *EntropyModel) MarshalModel() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type record struct {
		Kind     Kind      `json:"kind"`
		Segments []Segment `json:"segments"`
	}
	return json.Marshal(record{Kind: KindEntropy, Segments: m.Segments})
}

// UnmarshalModel restores a model previously produced by MarshalModel.
func (m *EntropyModel) UnmarshalModel(data []byte) error {
	var record struct {
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("tga: unmarshal entropy model: %w", err)
	}
	m.mu.Lock()
	m.Segments = record.Segments
	m.mu.Unlock()
	return nil
}

// randFloat64 returns a cryptographically random value in [0, 1).
func randFloat64() (float64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	// 53 bits of randomness, matching float64's mantissa.
	n := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(uint64(1)<<53), nil
}

