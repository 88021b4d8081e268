package mcts

import (
	"encoding/gob"
	"io"

	"github.com/gomcts/gomcts/pkg/board"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// bookEntry is the gob-serializable shape of one Node, flattened into a
// parent-index list so the decoder can rebuild the tree without circular
// pointers. The on-disk format itself is explicitly out of scope (spec
// §1's Non-goals name "the opening-book file format and persistence");
// gob is simply the ecosystem's standard answer for "serialize this Go
// struct graph" and needs no format design of its own.
type bookEntry struct {
	ParentIdx int // -1 for the root
	Coord     board.Coord
	Playouts  int32
	Value     float32
}

// GenBook runs one full search from board/color and returns true once the
// resulting tree has a non-trivial root (spec §6's gen_book operation):
// a cheap way to pre-populate an opening book entry by reusing gen_move's
// machinery rather than a bespoke generator.
func (e *Engine) GenBook(b *board.Board, color board.Stone) bool {
	if _, err := e.GenMove(b, color); err != nil {
		klog.Warningf("mcts: gen_book failed: %v", err)
		return false
	}
	return e.tree != nil && len(e.tree.Root.Children) > 0
}

// DumpBook renders the current tree's nodes with at least Config.DumpThres
// visits (spec §6's dump_book operation), in the teacher's plain-text
// debug-dump idiom.
func (e *Engine) DumpBook(b *board.Board, color board.Stone) string {
	if e.tree == nil {
		return ""
	}
	return e.tree.Dump(e.Config.DumpThres)
}

// Save serializes t to w via gob, flattening the tree into a parent-index
// list (spec §4.3's optional save(t, board, min_visits), pruned to nodes
// with at least minVisits playouts).
func (t *Tree) Save(w io.Writer, minVisits int32) error {
	var entries []bookEntry
	flatten(t.Root, -1, minVisits, &entries)
	return errors.Wrap(gob.NewEncoder(w).Encode(entries), "mcts: save book")
}

func flatten(n *Node, parentIdx int, minVisits int32, out *[]bookEntry) {
	if n.Playouts < minVisits && n.Parent != nil {
		return
	}
	idx := len(*out)
	*out = append(*out, bookEntry{
		ParentIdx: parentIdx,
		Coord:     n.Coord,
		Playouts:  n.Playouts,
		Value:     n.Value,
	})
	for _, c := range n.Children {
		flatten(c, idx, minVisits, out)
	}
}

// Load rebuilds a Tree from data written by Save (spec §4.3's optional
// load(t, board, color)).
func Load(r io.Reader, b *board.Board, color board.Stone) (*Tree, error) {
	var entries []bookEntry
	if err := gob.NewDecoder(r).Decode(&entries); err != nil {
		return nil, errors.Wrap(err, "mcts: load book")
	}
	if len(entries) == 0 {
		return NewTree(b, color), nil
	}

	nodes := make([]*Node, len(entries))
	for i, e := range entries {
		var parent *Node
		if e.ParentIdx >= 0 {
			parent = nodes[e.ParentIdx]
		}
		n := newNode(parent, e.Coord)
		n.Playouts = e.Playouts
		n.Value = e.Value
		nodes[i] = n
		if parent != nil {
			parent.Children = append(parent.Children, n)
		}
	}

	return &Tree{Root: nodes[0], Board: b, Color: color}, nil
}
