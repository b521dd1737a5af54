package game

import (
	"math/rand"
	"time"
)

// Rand is the randomness source behind die rolls, deck shuffles and card
// draws. It is injected per room so every resolution is replayable from a
// fixed seed, and it must never be shared between rooms.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a time-seeded source for production rooms.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// rollDie draws a die value in [1,6].
func rollDie(rng Rand) int {
	return rng.Intn(6) + 1
}
