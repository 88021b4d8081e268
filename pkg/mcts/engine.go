// Package mcts implements the Search Tree and MCTS Engine components of
// spec §4.3/§4.4: a pluggable-policy UCT search over board.Board positions,
// run by a pool of root-parallel workers that each clone the tree, run
// their own playout budget, and get merged back at the end (spec §5).
package mcts

import (
	"context"
	"sync/atomic"

	"github.com/gomcts/gomcts/pkg/board"
	"github.com/gomcts/gomcts/pkg/playout"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// ErrPromoteFailed is logged (not returned) when NotifyPlay can't find the
// played move among the tree root's children — the "promote failure" kind
// of spec §7, handled by discarding the tree rather than erroring out.
var ErrPromoteFailed = errors.New("mcts: tree promotion failed, rebuilding")

// Engine is the MCTS Engine of spec §4.4: configuration, tree, policy and
// playout driver bundled behind the four-entry-point API of spec §6.
type Engine struct {
	Config   Config
	Policy   Policy
	Driver   playout.Driver
	Listener StatsListener

	tree *Tree
}

// Init parses argString (spec §6's "name[=value][,name[=value]]*" grammar)
// and returns a ready-to-use Engine. Configuration diagnostics (unknown
// keys, unknown policy/playout names) are returned as a non-nil error
// alongside a fully usable Engine built from defaults for anything it
// could not apply — the caller may log-and-ignore or treat it as fatal.
func Init(argString string) (*Engine, error) {
	cfg, diagErr := ParseArgs(argString)
	if diagErr != nil {
		klog.Warningf("mcts: configuration diagnostics: %v", diagErr)
	}
	if cfg.Debug > 0 {
		klog.V(2).Infof("mcts: debug verbosity requested: %d", cfg.Debug)
	}

	e := &Engine{
		Config:   cfg,
		Policy:   BuildPolicy(cfg.PolicyName),
		Driver:   BuildPlayout(cfg.PlayoutName),
		Listener: klogListener{},
	}
	return e, diagErr
}

// BuildPlayout resolves cfg.PlayoutName (ignoring any ":subargs" suffix)
// into a Driver.
func BuildPlayout(name string) playout.Driver {
	base := name
	if idx := indexColon(name); idx >= 0 {
		base = name[:idx]
	}
	switch base {
	case "light":
		return Light{}
	default: // "moggy", "old", or anything unrecognized falls back to moggy
		return playout.NewMoggy()
	}
}

type Light = playout.Light

func indexColon(s string) int {
	for i, r := range s {
		if r == ':' {
			return i
		}
	}
	return -1
}

// NotifyPlay informs the engine an opponent move was played; it promotes
// the tree root to the corresponding child, or discards the tree entirely
// when there is no such child (spec §6, §7's promote-failure kind).
func (e *Engine) NotifyPlay(b *board.Board, m board.Move) {
	if e.tree == nil {
		return
	}
	if !e.tree.PromoteAt(m.Coord) {
		klog.V(2).Info(errors.Wrap(ErrPromoteFailed, "notify_play"))
		e.tree = nil
	}
}

// GenMove runs the batch loop of spec §4.4 and returns a real coord, Pass,
// or Resign.
func (e *Engine) GenMove(b *board.Board, color board.Stone) (board.Coord, error) {
	if e.tree == nil || e.tree.Board.Size != b.Size || e.tree.Color != color {
		e.tree = NewTree(b, color)
	}

	budget := e.Config.Games
	if len(e.tree.Root.Children) > 0 {
		budget = e.Config.Games - int(float64(e.tree.Root.Playouts)/1.5)
		if budget < 0 {
			budget = 0
		}
	}

	var final *Tree
	if e.Config.Threads == 0 {
		final = e.runWorker(b, color, budget, e.seedFor(0), e.tree.Clone())
	} else {
		final = e.runWorkerPool(b, color, budget)
	}
	e.tree = final

	best := e.Policy.Choose(e.tree.Root)
	if best == nil {
		return board.Pass, nil
	}
	if !best.Coord.IsPass() && best.Value < e.Config.ResignRatio {
		return board.Resign, nil
	}
	e.tree.PromoteNode(best)
	return best.Coord, nil
}

func (e *Engine) seedFor(worker int) int64 {
	if e.Config.ForceSeedIsSet {
		return e.Config.ForceSeed + int64(worker)
	}
	return timeSeed() + int64(worker)
}

// runWorkerPool spawns Config.Threads workers, each with an independent
// tree clone, distinct RNG seed and the full budget (spec §5). Workers
// synchronize only at termination; each worker that returns bumps a shared
// counter, and once n/2 (rounded down) have returned it sets a shared halt
// flag so the remaining workers stop at their next rollout boundary rather
// than running out their budget. This is the Go-idiomatic reading of
// original_source/uct/uct.c's pthread spawn/join loop, grounded also on
// skybrian-Gongo/multirobot.go's channel-based fan-out over per-CPU
// robots.
func (e *Engine) runWorkerPool(b *board.Board, color board.Stone, budget int) *Tree {
	n := e.Config.Threads
	results := make([]*Tree, n)
	var halt atomic.Bool
	var finished atomic.Int32

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = e.runWorkerHaltable(b, color, budget, e.seedFor(i), e.tree.Clone(), &halt)
			done := finished.Add(1)
			if int(done) >= n/2 {
				halt.Store(true)
			}
			return nil
		})
	}
	g.Wait()

	final := results[0]
	for i := 1; i < n; i++ {
		if results[i] != nil {
			Merge(final, results[i])
		}
	}
	return final
}

func (e *Engine) runWorker(b *board.Board, color board.Stone, budget int, seed int64, tree *Tree) *Tree {
	var halt atomic.Bool
	return e.runWorkerHaltable(b, color, budget, seed, tree, &halt)
}

// runWorkerHaltable runs one worker's full per-rollout loop (spec §4.4)
// against its own tree clone, up to budget rollouts or until halt is set
// (checked only between rollouts — in-flight rollouts always complete).
func (e *Engine) runWorkerHaltable(b *board.Board, color board.Stone, budget int, seed int64, tree *Tree, halt *atomic.Bool) *Tree {
	rng := rand.New(rand.NewSource(uint64(seed)))
	scratch := board.New(b.Size)

	completed := 0
	for rollouts := 0; rollouts < budget; rollouts++ {
		if halt.Load() {
			break
		}

		ok := e.runRollout(tree, b, color, rng, scratch)
		if ok {
			completed++
		}

		if completed > 0 && completed%progressInterval == 0 {
			best := e.Policy.Choose(tree.Root)
			if best != nil && e.Listener != nil {
				e.Listener.OnProgress(completed, best.Coord.String(), best.Value, best.Playouts)
			}
		}
		if completed > 0 && completed%earlyStopInterval == 0 {
			if shouldStopEarly(tree.Root, e.Policy, e.Config.LossThreshold) {
				break
			}
		}
	}
	return tree
}

// runRollout executes one descend-expand-rollout-backprop iteration
// against a private scratch board. It returns false when the rollout was
// discarded (a descended move turned out illegal, or an embedder flagged
// it as a superko repeat via scratch.SuperkoViolation — the core itself
// never sets that flag) — the offending node has already been unlinked,
// no backprop happens — true otherwise.
func (e *Engine) runRollout(tree *Tree, rootBoard *board.Board, playerColor board.Stone, rng *rand.Rand, scratch *board.Board) bool {
	scratch.CopyFrom(rootBoard)
	passes := 0
	if rootBoard.LastMove.Coord.IsPass() {
		passes = 1
	}

	node := tree.Root
	nodeColor := playerColor
	parity := 1

	var amaf playout.AMAFMap
	if e.Policy.WantsAMAF() || e.Config.PlayoutAMAF {
		amaf = playout.NewAMAFMap(scratch.Size)
	}

	for {
		if node.IsLeaf() && node.Playouts >= e.Config.ExpandP {
			tree.Expand(node, scratch, nodeColor, e.Config.RadarD, e.Policy, parity)
		}
		if node.IsLeaf() {
			result := e.Driver.Playout(scratch, nodeColor, e.Config.GameLen, intnAdapter{rng}, amaf)
			e.Policy.Update(node, nodeColor, playerColor, amaf, result)
			return true
		}

		child := e.Policy.Descend(node, parity, passLimit(scratch))
		if child == nil {
			return false
		}

		if _, err := scratch.Play(board.Move{Coord: child.Coord, Color: nodeColor}); err != nil || scratch.SuperkoViolation {
			scratch.SuperkoViolation = false
			tree.DeleteNode(child)
			return false
		}
		if amaf != nil && child.Coord.IsReal() {
			amaf.Record(scratch, child.Coord, nodeColor)
		}

		if child.Coord.IsPass() {
			passes++
		} else {
			passes = 0
		}

		if passes >= 2 {
			score := scratch.OfficialScore()
			won := sideWon(nodeColor, score)
			result := playout.Loss
			if won {
				result = playout.Win
			}
			e.Policy.Update(child, nodeColor, playerColor, amaf, result)
			return true
		}

		nodeColor = nodeColor.Other()
		parity = -parity
		node = child
	}
}

// sideWon reports whether color wins an official_score of score: Black
// wants a negative score, White a positive one (spec §8 scenario 6); an
// exact tie favors neither.
func sideWon(color board.Stone, score float32) bool {
	if color == board.Black {
		return score < 0
	}
	return score > 0
}

// passLimit caps how eagerly Descend may pick Pass: proportional to how
// full the board already is, so on a near-empty board a visited Pass child
// scores close to zero and on a nearly-finished one it is barely
// penalized. An unvisited Pass child is still descended into once, since
// every policy tries unvisited children first.
func passLimit(b *board.Board) float32 {
	empties := 0
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.At(board.Coord{X: int16(x), Y: int16(y)}) == board.Empty {
				empties++
			}
		}
	}
	total := b.Size * b.Size
	if total == 0 {
		return 1
	}
	return 1 - float32(empties)/float32(total)
}

// intnAdapter exposes golang.org/x/exp/rand.Rand as a playout.Rand.
type intnAdapter struct{ r *rand.Rand }

func (a intnAdapter) Intn(n int) int { return a.r.Intn(n) }
