package tga

import (
	"crypto/rand"
	"encoding/json"

	"v6recon/internal/addr"
)

// RandomModel is the uniform-random control model. It ignores the seed
// corpus entirely and draws each generated address independently and
// uniformly from the full 128-bit space, so TGA output can be compared
// against a structure-blind baseline.
type RandomModel struct {
	trained bool
}

var _ Model = (*RandomModel)(nil)

// Train records only that training occurred; the seed corpus itself is
// discarded. An empty corpus is accepted so RandomModel mirrors
// EntropyModel's ModelEmpty behavior when neither was ever trained, but
// once trained RandomModel generates regardless of corpus size.
func (m *RandomModel) Train(seeds []addr.Address) error {
	m.trained = true
	return nil
}

// Generate draws a uniformly random 128-bit address.
func (m *RandomModel) Generate() (addr.Address, error) {
	if !m.trained {
		return addr.Address{}, ErrModelEmpty
	}
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return addr.Address{}, err
	}
	var a addr.Address
	copy(a[:], buf[:])
	return a, nil
}

// GenerateUnique draws up to count distinct uniformly random addresses.
func (m *RandomModel) GenerateUnique(count int) ([]addr.Address, error) {
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

// MarshalModel serializes the model's kind tag. RandomModel carries no
// learned state.
func (m *RandomModel) MarshalModel() ([]byte, error) {
	type record struct {
		Kind Kind `json:"kind"`
	}
	return json.Marshal(record{Kind: KindRandom})
}
