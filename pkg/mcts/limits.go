package mcts

// progressInterval and earlyStopInterval are the per-worker rollout
// cadences from spec §4.4 ("every 10000 rollouts, emit status; every 500
// rollouts, consult the Policy for the current best child"), confirmed
// against original_source/uct/uct.c's uct_playouts/progress_status as a
// per-worker counter rather than a global one.
const (
	progressInterval = 10000
	earlyStopInterval = 500
	earlyStopVisits   = 1500
)

// shouldStopEarly reports whether the root's best child (per policy) has
// accumulated enough visits at a high enough value to justify stopping
// this worker's playout loop before its budget is exhausted.
func shouldStopEarly(root *Node, policy Policy, lossThreshold float32) bool {
	best := policy.Choose(root)
	if best == nil {
		return false
	}
	return best.Playouts >= earlyStopVisits && best.Value >= lossThreshold
}
