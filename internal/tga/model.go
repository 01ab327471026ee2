// Package tga implements the target generation algorithm: training a
// probabilistic model of IPv6 address structure from a seed corpus, and
// sampling plausible-looking addresses from it.
package tga

import "v6recon/internal/addr"

// Kind selects a Model implementation.
type Kind string

const (
	// KindEntropy is the entropy-segmentation model: it mines structure
	// from the seed corpus and samples from per-segment value
	// distributions.
	KindEntropy Kind = "entropy"
	// KindRandom is the uniform-random control model: every generated
	// address is drawn independently and uniformly from the full 128-bit
	// space, ignoring the seed corpus entirely.
	KindRandom Kind = "random"
)

// Model trains on a seed corpus and generates addresses from the resulting
// distribution.
type Model interface {
	// Train builds the model's internal distribution from seeds. Training
	// on an empty corpus is valid: an EntropyModel trained that way always
	// returns ErrModelEmpty from Generate, while a RandomModel generates
	// after any Train call.
	Train(seeds []addr.Address) error

	// Generate draws one address from the trained distribution.
	Generate() (addr.Address, error)

	// GenerateUnique draws up to count distinct addresses. If the
	// attempt budget is exhausted before count unique addresses are
	// found, it returns the addresses collected so far alongside
	// ErrUnderflow.
	GenerateUnique(count int) ([]addr.Address, error)

	// MarshalModel serializes the trained model to a self-describing
	// form suitable for persistence, excluding any PRNG state.
	MarshalModel() ([]byte, error)
}

// maxGenerateUniqueAttempts bounds GenerateUnique's retry loop so a
// near-saturated address space can't spin forever.
const maxGenerateUniqueAttempts = 1_000_000

// New constructs a Model of the given kind.
func New(kind Kind) (Model, error) {
	switch kind {
	case KindEntropy:
		return &EntropyModel{}, nil
	case KindRandom:
		return &RandomModel{}, nil
	default:
		return nil, ErrTrainFailed
	}
}
