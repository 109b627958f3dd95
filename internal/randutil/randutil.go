// Package randutil derives reproducible math/rand/v2 generators from int64 seeds.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Both PCG words
// are derived through splitmix so nearby seeds give unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for the n-th independent stream under a parent seed.
// Tournaments use it to give every match its own reproducible generator.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

// Seed returns seed when non-nil, otherwise a fresh one drawn from the
// runtime-seeded global source.
func Seed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return rand.Int64()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
