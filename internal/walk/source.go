package walk

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mathext/prng"
)

// Source supplies uniform variates in [0, 1). A walk consumes one
// variate per step; implementations advance their internal state on
// every draw and must be used strictly sequentially.
type Source interface {
	Float64() float64
}

// NewPCG returns a deterministic Source backed by math/rand/v2's PCG
// generator seeded with seed.
func NewPCG(seed int64) Source {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// NewMT19937 returns a deterministic Source backed by the Mersenne
// Twister generator seeded with seed.
func NewMT19937(seed int64) Source {
	src := prng.NewMT19937()
	src.Seed(uint64(seed))
	return &mtSource{src: src}
}

type mtSource struct {
	src *prng.MT19937
}

// Float64 converts the generator's next 64-bit output to a float in
// [0, 1) using the top 53 bits.
func (m *mtSource) Float64() float64 {
	return float64(m.src.Uint64()>>11) / (1 << 53)
}

// NewSource returns a seeded Source of the named kind. Supported
// kinds: "pcg" (also the default for the empty string) and "mt19937".
func NewSource(kind string, seed int64) (Source, error) {
	switch kind {
	case "", "pcg":
		return NewPCG(seed), nil
	case "mt19937":
		return NewMT19937(seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown source kind %q", ErrInvalidArgument, kind)
	}
}

// NewSeed generates a high-entropy seed using crypto/rand, for runs
// where the caller did not supply one.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
