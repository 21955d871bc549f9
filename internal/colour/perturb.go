package colour

import "math/rand/v2"

// perturbWiggle bounds the per-step channel offset.
const perturbWiggle float32 = 0.05

// PerturbNearby returns a neighbour of c: one channel, chosen uniformly, moves
// by a uniform offset in [-0.05, 0.05] and is clamped to [0, 1]. The other two
// channels are unchanged. It is the only source of randomness the optimiser
// uses to explore the palette.
func PerturbNearby(c Color, rng *rand.Rand) Color {
	ch := c.channels()
	i := rng.IntN(len(ch))
	offset := (rng.Float32()*2 - 1) * perturbWiggle
	ch[i] = clamp01(ch[i] + offset)
	return fromChannels(ch)
}
