package util

import (
	"math/rand"
	"time"
)

// New returns a generator for seed. Seed 0 seeds from the clock, so only
// non-zero seeds reproduce a run.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Derive gives worker i of a batch its own reproducible stream.
func Derive(seed int64, worker, job int) int64 {
	if seed == 0 {
		return 0
	}
	return seed + int64(worker)*7919 + int64(job)
}
