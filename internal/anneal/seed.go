package anneal

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
)

// SeedSize is the size of a ChaCha8 seed.
const SeedSize = 32

// SeedFromString uses the first 32 bytes of s as a seed, zero-padding shorter
// strings.
func SeedFromString(s string) [SeedSize]byte {
	var seed [SeedSize]byte
	copy(seed[:], s)
	return seed
}

// RandomSeed draws a seed from the operating system's entropy source.
func RandomSeed() ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return seed, fmt.Errorf("failed to read entropy: %w", err)
	}
	return seed, nil
}

// NewRand returns a ChaCha8 stream for seed.
func NewRand(seed [SeedSize]byte) *rand.Rand {
	return rand.New(rand.NewChaCha8(seed))
}
