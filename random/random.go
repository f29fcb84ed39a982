package random

import (
	"math/rand"
	"time"
)

// Random is the source of randomness for ship placement and targeting.
type Random interface {
	Intn(n int) int
}

// New returns a Random seeded with seed, or with the current time when seed is 0.
func New(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
