package mcts

import (
	"fmt"
	"strings"

	"github.com/gomcts/gomcts/pkg/board"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"
)

// Tree owns the root node of a search and a back-reference to the board it
// was seeded for; Engine.GenMove compares its size against the board it is
// asked to search to decide whether the tree can be reused.
type Tree struct {
	Root     *Node
	MaxDepth int
	Board    *board.Board
	Color    board.Stone // player to move at Root (spec §3)
}

// NewTree allocates a root node representing "player to move is color, no
// move chosen yet" (spec §4.3's tree init).
func NewTree(b *board.Board, color board.Stone) *Tree {
	return &Tree{
		Root:  newNode(nil, board.Pass),
		Board: b,
		Color: color,
	}
}

// Clone deep-copies the tree for a worker.
func (t *Tree) Clone() *Tree {
	return &Tree{
		Root:     t.Root.clone(nil),
		MaxDepth: t.MaxDepth,
		Board:    t.Board,
		Color:    t.Color,
	}
}

// chebyshev is the Chebyshev (king-move) distance between two coords.
func chebyshev(a, b board.Coord) int {
	dx := int(a.X) - int(b.X)
	if dx < 0 {
		dx = -dx
	}
	dy := int(a.Y) - int(b.Y)
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// withinRadar reports whether c lies within Chebyshev distance radarD of
// any stone currently on b. radarD<=0 disables the restriction entirely.
func withinRadar(b *board.Board, c board.Coord, radarD int) bool {
	if radarD <= 0 {
		return true
	}
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			p := board.Coord{X: int16(x), Y: int16(y)}
			if b.At(p) == board.Empty {
				continue
			}
			if chebyshev(c, p) <= radarD {
				return true
			}
		}
	}
	return false
}

// Expand creates one child per legal sensible move from b (plus Pass),
// optionally restricted to points within radarD of an existing stone. The
// Policy's Prior hook sets each new child's initial statistics.
func (t *Tree) Expand(node *Node, b *board.Board, color board.Stone, radarD int, policy Policy, parity int) {
	if !node.IsLeaf() {
		return
	}

	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			c := board.Coord{X: int16(x), Y: int16(y)}
			if b.At(c) != board.Empty {
				continue
			}
			if !b.ValidMove(board.Move{Coord: c, Color: color}, true) {
				continue
			}
			if radarD > 0 && !withinRadar(b, c, radarD) {
				continue
			}
			child := newNode(node, c)
			if policy.WantsAMAF() {
				child.AMAF = &AMAFStats{}
			}
			policy.Prior(t, child, b, color, parity)
			node.Children = append(node.Children, child)
		}
	}

	passChild := newNode(node, board.Pass)
	if policy.WantsAMAF() {
		passChild.AMAF = &AMAFStats{}
	}
	policy.Prior(t, passChild, b, color, parity)
	node.Children = append(node.Children, passChild)

	if node.Depth+1 > t.MaxDepth {
		t.MaxDepth = node.Depth + 1
	}
}

// DeleteNode unlinks node from its parent's child list, discarding its
// subtree. Used when descent discovers a move is actually illegal in the
// current rollout (spec §4.4's invalid-move handling).
func (t *Tree) DeleteNode(node *Node) {
	if node.Parent == nil {
		return
	}
	siblings := node.Parent.Children
	for i, c := range siblings {
		if c == node {
			node.Parent.Children = append(siblings[:i], siblings[i+1:]...)
			return
		}
	}
}

// PromoteNode discards the root and all its other children, making node
// the new root.
func (t *Tree) PromoteNode(node *Node) {
	node.Parent = nil
	node.Depth = 0
	reindexDepth(node)
	t.Root = node
	t.Color = t.Color.Other()
}

func reindexDepth(n *Node) {
	for _, c := range n.Children {
		c.Depth = n.Depth + 1
		reindexDepth(c)
	}
}

// PromoteAt promotes the root's child representing coord, if any. Returns
// false (tree unchanged) when no such child exists; the caller then
// rebuilds the tree from scratch.
func (t *Tree) PromoteAt(c board.Coord) bool {
	for _, child := range t.Root.Children {
		if child.Coord == c {
			t.PromoteNode(child)
			return true
		}
	}
	return false
}

// Merge combines statistics from src into dst: for each pair of matching
// children (matched by Coord), sums Playouts and weight-averages Value
// using gonum/stat.Mean (weights = playout counts); children present only
// in src are adopted into dst. Recurses into matched pairs.
func Merge(dst, src *Tree) {
	mergeNode(dst.Root, src.Root)
	if src.MaxDepth > dst.MaxDepth {
		dst.MaxDepth = src.MaxDepth
	}
}

func mergeNode(dst, src *Node) {
	values := []float64{float64(dst.Value), float64(src.Value)}
	weights := []float64{float64(dst.Playouts), float64(src.Playouts)}
	if weights[0]+weights[1] > 0 {
		dst.Value = clampUnit(float32(stat.Mean(values, weights)))
	}
	dst.Playouts += src.Playouts
	dst.SumSq += src.SumSq

	if dst.AMAF != nil && src.AMAF != nil {
		aValues := []float64{float64(dst.AMAF.Value), float64(src.AMAF.Value)}
		aWeights := []float64{float64(dst.AMAF.Playouts), float64(src.AMAF.Playouts)}
		if aWeights[0]+aWeights[1] > 0 {
			dst.AMAF.Value = clampUnit(float32(stat.Mean(aValues, aWeights)))
		}
		dst.AMAF.Playouts += src.AMAF.Playouts
	}

	for _, sc := range src.Children {
		var matched *Node
		for _, dc := range dst.Children {
			if dc.Coord == sc.Coord {
				matched = dc
				break
			}
		}
		if matched != nil {
			mergeNode(matched, sc)
		} else {
			dst.Children = append(dst.Children, sc.clone(dst))
		}
	}
}

// Dump debug-prints every node with at least visitThreshold playouts.
func (t *Tree) Dump(visitThreshold int32) string {
	var sb strings.Builder
	dumpNode(&sb, t.Root, visitThreshold, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *Node, threshold int32, indent int) {
	if n.Playouts >= threshold {
		fmt.Fprintf(sb, "%s%s playouts=%d value=%.3f\n", strings.Repeat("  ", indent), n.Coord, n.Playouts, n.Value)
	}
	for _, c := range n.Children {
		dumpNode(sb, c, threshold, indent+1)
	}
}

// Reset discards the tree entirely, logging at a high debug level per the
// "book-not-found / promote failure" error kind (spec §7).
func Reset(b *board.Board, color board.Stone) *Tree {
	klog.V(2).Infof("mcts: tree reset for board size=%d color=%s", b.Size, color)
	return NewTree(b, color)
}
