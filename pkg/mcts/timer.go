package mcts

import "time"

// timeSeed derives a non-deterministic RNG seed for workers run without an
// explicit force_seed: wall-clock time, offset per worker by the caller.
func timeSeed() int64 {
	return time.Now().UnixNano()
}
