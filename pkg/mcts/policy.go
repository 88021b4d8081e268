package mcts

import (
	"github.com/gomcts/gomcts/pkg/board"
	"github.com/gomcts/gomcts/pkg/playout"
)

// Policy exposes the five pluggable tree-selection hooks of spec §4.5.
// Tree-selection policies (ucb1, ucb1tuned, ucb1amaf) are themselves
// collaborators per spec §1's Non-goals — this interface is the contract
// the engine programs against, not a registry of every conceivable policy.
type Policy interface {
	// Choose picks the "best" child of node for reporting (typically
	// most-visited), not for descent.
	Choose(node *Node) *Node

	// Descend picks the child to walk into next. parity is +1 when the
	// node being descended from belongs to the root player's turn, -1
	// for the opponent; passLimit caps how eagerly the policy may select
	// Pass (used to avoid premature passing on large boards).
	Descend(node *Node, parity int, passLimit float32) *Node

	// Update backpropagates result from leaf up to the root, updating
	// visit counts and value estimates. amaf is nil unless WantsAMAF.
	Update(leaf *Node, nodeColor, playerColor board.Stone, amaf playout.AMAFMap, result playout.Result)

	// Prior sets initial statistics for a freshly expanded node.
	Prior(tree *Tree, node *Node, b *board.Board, color board.Stone, parity int)

	// WantsAMAF is static: whether this policy needs the engine to
	// maintain the AMAF map during rollouts.
	WantsAMAF() bool
}
