package maze

import (
	"math/rand/v2"
	"time"
)

// pcgStream decorrelates the second PCG word from the seed.
const pcgStream = 0x9e3779b97f4a7c15

// Source is the random source used while carving.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^pcgStream))
}

// RandomSeed returns a seed drawn from the wall clock.
func RandomSeed() int64 {
	return time.Now().UnixNano()
}
