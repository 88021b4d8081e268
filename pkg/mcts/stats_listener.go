package mcts

import "k8s.io/klog/v2"

// StatsListener receives periodic progress callbacks from the batch loop
// (spec §4.4: "every 10000 rollouts, emit status"), adapted from the
// teacher's stats_listener.go hook shape down to the single callback this
// engine actually needs.
type StatsListener interface {
	OnProgress(rollouts int, bestCoordStr string, bestValue float32, bestVisits int32)
}

// klogListener is the default StatsListener: logs through klog at V(1),
// matching janpfeifer-hiveGo's klog.V(1).Enabled() progress-logging idiom.
type klogListener struct{}

func (klogListener) OnProgress(rollouts int, bestCoordStr string, bestValue float32, bestVisits int32) {
	if klog.V(1).Enabled() {
		klog.Infof("mcts: rollouts=%d best=%s value=%.3f visits=%d", rollouts, bestCoordStr, bestValue, bestVisits)
	}
}
