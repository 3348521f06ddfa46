package main

import (
	"hash/fnv"
	"math/rand"
)

// newDeterministicRNG derives an independent random stream from the world
// seed and a subsystem label. Separate streams keep one subsystem's draws
// from perturbing another's sequence.
func newDeterministicRNG(seed, stream string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{':'})
	h.Write([]byte(stream))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func (w *World) subsystemRNG(stream string) *rand.Rand {
	return newDeterministicRNG(w.seed, stream)
}

func randomRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
