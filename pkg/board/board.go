package board

import (
	"github.com/pkg/errors"
)

// ErrOccupied, ErrKo and ErrSuicide classify why play/validMove rejected a
// move; gen_move-level callers only need the non-positive return, but
// tests and diagnostics benefit from a concrete sentinel.
var (
	ErrOccupied = errors.New("board: point is occupied")
	ErrKo       = errors.New("board: simple ko recapture")
	ErrSuicide  = errors.New("board: suicide")
)

type groupInfo struct {
	libs int32
}

// Board is a mutable Go position: stones, their group assignment, and
// per-group liberty counts maintained incrementally as moves are played.
type Board struct {
	Size int

	stones  []Stone
	groupOf []Gid
	groups  []groupInfo // index 0 unused, groups[1..lastGid]
	lastGid Gid

	Captures [3]int // indexed by Stone; Captures[Empty] unused
	Moves    int
	LastMove Move
	Komi     float32

	// SuperkoViolation may be set by an embedder after Play; the core
	// never sets it itself (see design notes on the ko approximation).
	SuperkoViolation bool
}

// New allocates a cleared board of the given side length.
func New(size int) *Board {
	b := &Board{Size: size}
	b.stones = make([]Stone, size*size)
	b.groupOf = make([]Gid, size*size)
	b.groups = make([]groupInfo, 1, 16)
	b.LastMove = Move{Coord: Pass}
	return b
}

// Clear zeros stones, groups and captures, and resets move/gid counters.
func (b *Board) Clear() {
	for i := range b.stones {
		b.stones[i] = Empty
		b.groupOf[i] = 0
	}
	b.groups = b.groups[:1]
	b.lastGid = 0
	b.Captures[Black] = 0
	b.Captures[White] = 0
	b.Moves = 0
	b.LastMove = Move{Coord: Pass}
}

// Clone deep-copies the board, including the per-group liberty array.
func (b *Board) Clone() *Board {
	c := &Board{
		Size:             b.Size,
		lastGid:          b.lastGid,
		Captures:         b.Captures,
		Moves:            b.Moves,
		LastMove:         b.LastMove,
		Komi:             b.Komi,
		SuperkoViolation: b.SuperkoViolation,
	}
	c.stones = append([]Stone(nil), b.stones...)
	c.groupOf = append([]Gid(nil), b.groupOf...)
	c.groups = append([]groupInfo(nil), b.groups...)
	return c
}

// CopyFrom overwrites b in place with a deep copy of src, reusing b's
// backing arrays when they are already the right size. This is the
// allocation-light path rollouts use for the "clone board, apply descent
// moves" step of the per-rollout loop (spec's scratch-clone design note).
func (b *Board) CopyFrom(src *Board) {
	b.Size = src.Size
	b.lastGid = src.lastGid
	b.Captures = src.Captures
	b.Moves = src.Moves
	b.LastMove = src.LastMove
	b.Komi = src.Komi
	b.SuperkoViolation = src.SuperkoViolation

	if cap(b.stones) < len(src.stones) {
		b.stones = make([]Stone, len(src.stones))
	}
	b.stones = b.stones[:len(src.stones)]
	copy(b.stones, src.stones)

	if cap(b.groupOf) < len(src.groupOf) {
		b.groupOf = make([]Gid, len(src.groupOf))
	}
	b.groupOf = b.groupOf[:len(src.groupOf)]
	copy(b.groupOf, src.groupOf)

	if cap(b.groups) < len(src.groups) {
		b.groups = make([]groupInfo, len(src.groups))
	} else {
		b.groups = b.groups[:len(src.groups)]
	}
	copy(b.groups, src.groups)
}

func (b *Board) index(c Coord) int {
	return int(c.Y)*b.Size + int(c.X)
}

func (b *Board) inBounds(c Coord) bool {
	return c.X >= 0 && int(c.X) < b.Size && c.Y >= 0 && int(c.Y) < b.Size
}

// InBounds reports whether c is a real point on this board.
func (b *Board) InBounds(c Coord) bool {
	return b.inBounds(c)
}

// Neighbors appends the up to four orthogonal neighbors of c to dst and
// returns the result; exported for playout/policy packages that need to
// walk the board without duplicating the adjacency rule.
func (b *Board) Neighbors(c Coord, dst []Coord) []Coord {
	return b.neighbors(c, dst)
}

// At returns the stone at a real coordinate.
func (b *Board) At(c Coord) Stone {
	return b.stones[b.index(c)]
}

// GroupAt returns the gid owning the stone at a real coordinate (0 if
// empty).
func (b *Board) GroupAt(c Coord) Gid {
	return b.groupOf[b.index(c)]
}

// GroupLibs returns the liberty count of a group in constant time.
func (b *Board) GroupLibs(g Gid) int {
	if g <= 0 {
		return 0
	}
	return int(b.groups[g].libs)
}

// neighbors appends the up to four orthogonal neighbors of c to dst.
func (b *Board) neighbors(c Coord, dst []Coord) []Coord {
	if c.X > 0 {
		dst = append(dst, Coord{X: c.X - 1, Y: c.Y})
	}
	if int(c.X) < b.Size-1 {
		dst = append(dst, Coord{X: c.X + 1, Y: c.Y})
	}
	if c.Y > 0 {
		dst = append(dst, Coord{X: c.X, Y: c.Y - 1})
	}
	if int(c.Y) < b.Size-1 {
		dst = append(dst, Coord{X: c.X, Y: c.Y + 1})
	}
	return dst
}

// isLibertyOf reports whether any neighbor of c already belongs to group g
// (i.e. the empty point c is already counted as a liberty of g).
func (b *Board) isLibertyOf(c Coord, g Gid) bool {
	var nbuf [4]Coord
	for _, n := range b.neighbors(c, nbuf[:0]) {
		if b.GroupAt(n) == g {
			return true
		}
	}
	return false
}

// groupAdd assigns c to group gid and increments gid's liberty count for
// every empty neighbor of c not already counted as one of gid's liberties.
func (b *Board) groupAdd(gid Gid, c Coord) {
	var nbuf [4]Coord
	for _, n := range b.neighbors(c, nbuf[:0]) {
		if b.At(n) == Empty && !b.isLibertyOf(n, gid) {
			b.groups[gid].libs++
		}
	}
	b.groupOf[b.index(c)] = gid
}

func (b *Board) newGid() Gid {
	b.lastGid++
	if int(b.lastGid) >= len(b.groups) {
		b.groups = append(b.groups, groupInfo{})
	}
	return b.lastGid
}

// playRaw places m unconditionally (pass/resign are recorded but otherwise
// no-ops) and returns the gid of the placed stone's group. It performs no
// legality checking; callers wanting a checked play use Play.
func (b *Board) playRaw(m Move) Gid {
	if !m.Coord.IsReal() {
		b.LastMove = m
		b.Moves++
		return 0
	}

	idx := b.index(m.Coord)
	b.stones[idx] = m.Color

	var gid Gid
	var nbuf [4]Coord
	var toCapture, toDecrement [4]Gid
	nCapture, nDecrement := 0, 0
	for _, n := range b.neighbors(m.Coord, nbuf[:0]) {
		ng := b.GroupAt(n)
		switch {
		case b.At(n) == m.Color && ng != gid:
			if gid <= 0 {
				gid = ng
			} else {
				// merge ng's stones into gid
				b.mergeGroupInto(ng, gid)
			}
		case b.At(n) == m.Color.Other():
			if b.GroupLibs(ng) == 1 {
				if !gidIn(toCapture[:nCapture], ng) {
					toCapture[nCapture] = ng
					nCapture++
				}
			} else if !gidIn(toDecrement[:nDecrement], ng) {
				toDecrement[nDecrement] = ng
				nDecrement++
			}
		}
	}

	// m.Coord has just stopped being a liberty of every opposing group
	// that is not itself being captured whole.
	for _, ng := range toDecrement[:nDecrement] {
		b.groups[ng].libs--
	}
	for _, ng := range toCapture[:nCapture] {
		b.capture(ng)
	}

	if gid <= 0 {
		gid = b.newGid()
	} else {
		// m.Coord was counted as a liberty of the group the stone joins;
		// it is now occupied.
		b.groups[gid].libs--
	}
	b.groupAdd(gid, m.Coord)

	b.LastMove = m
	b.Moves++
	return gid
}

func gidIn(s []Gid, g Gid) bool {
	for _, x := range s {
		if x == g {
			return true
		}
	}
	return false
}

// mergeGroupInto relabels every stone currently in group src to group dst,
// re-running groupAdd (the liberty-already-counted scan) for each so dst's
// liberty count stays correct after the merge.
func (b *Board) mergeGroupInto(src, dst Gid) {
	if src == dst {
		return
	}
	for i := range b.stones {
		if b.stones[i] != Empty && b.groupOf[i] == src {
			c := Coord{X: int16(i % b.Size), Y: int16(i / b.Size)}
			b.groupAdd(dst, c)
		}
	}
}

// capture removes every stone of group gid, crediting the opponent's
// capture counter and restoring liberties to neighboring groups.
func (b *Board) capture(gid Gid) {
	var nbuf [4]Coord
	var seen [4]Gid
	for i := range b.stones {
		if b.stones[i] == Empty || b.groupOf[i] != gid {
			continue
		}
		c := Coord{X: int16(i % b.Size), Y: int16(i / b.Size)}
		captured := b.stones[i]
		b.Captures[captured.Other()]++
		b.stones[i] = Empty
		b.groupOf[i] = 0

		n := 0
		for _, nb := range b.neighbors(c, nbuf[:0]) {
			if b.At(nb) == Empty {
				continue
			}
			ng := b.GroupAt(nb)
			if ng == gid {
				continue
			}
			dup := false
			for j := 0; j < n; j++ {
				if seen[j] == ng {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			seen[n] = ng
			n++
			b.groups[ng].libs++
		}
	}
}

// checkAndPlay is the shared implementation behind Play and ValidMove: it
// rejects pass/resign, occupied points, ko recaptures, suicide, and (when
// sensible is true) self-atari, and only commits the stone to the board when commit
// is true.
func (b *Board) checkAndPlay(m Move, sensible, commit bool) (Gid, error) {
	if !m.Coord.IsReal() {
		return 0, errors.New("board: pass/resign is not a playable stone")
	}
	if b.At(m.Coord) != Empty {
		return 0, ErrOccupied
	}
	if m.Coord == b.LastMove.Coord {
		return 0, ErrKo
	}

	var scratch Board
	scratch.CopyFrom(b)

	gid := b.playRaw(m)
	limit := 0
	if sensible {
		limit = 1
	}
	if b.GroupLibs(b.GroupAt(m.Coord)) <= limit {
		// restore the board: suicide (or self-atari when sensible)
		b.CopyFrom(&scratch)
		return 0, ErrSuicide
	}

	if !commit {
		b.CopyFrom(&scratch)
	}
	return gid, nil
}

// Play applies m. It returns the gid of the placed stone's group, or an
// error (board left unchanged) if the move is illegal. Pass/Resign are
// always accepted and simply recorded.
func (b *Board) Play(m Move) (Gid, error) {
	if !m.Coord.IsReal() {
		return b.playRaw(m), nil
	}
	return b.checkAndPlay(m, false, true)
}

// ValidMove reports whether m would be legal. With sensible=true it also
// rejects moves that leave the played stone's group with only one liberty
// (self-atari).
func (b *Board) ValidMove(m Move, sensible bool) bool {
	if !m.Coord.IsReal() {
		return false
	}
	_, err := b.checkAndPlay(m, sensible, false)
	return err == nil
}

// NoValidMoves scans every point and reports whether no sensible move
// exists for color.
func (b *Board) NoValidMoves(color Stone) bool {
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			m := Move{Coord: Coord{X: int16(x), Y: int16(y)}, Color: color}
			if b.ValidMove(m, true) {
				return false
			}
		}
	}
	return true
}

// OfficialScore computes area ("Chinese") score with the dead-group
// heuristic: a group with exactly one liberty is classified dead and not
// credited; empty points are never credited to either side (see design
// notes — the original's empty-point-crediting branch is intentionally
// not implemented). Returns komi + white_area - black_area.
func (b *Board) OfficialScore() float32 {
	type status int
	const (
		dunno status = iota
		alive
		dead
	)
	cache := make([]status, len(b.groups))
	var blackArea, whiteArea int32

	for i, s := range b.stones {
		if s == Empty {
			continue
		}
		g := b.groupOf[i]
		if cache[g] == dunno {
			if b.groups[g].libs == 1 {
				cache[g] = dead
			} else {
				cache[g] = alive
			}
		}
		if cache[g] == alive {
			if s == Black {
				blackArea++
			} else {
				whiteArea++
			}
		}
	}

	return b.Komi + float32(whiteArea) - float32(blackArea)
}

// FastScore is the stones-only score used during rollouts: every stone on
// the board counts for its color regardless of group liberties.
func (b *Board) FastScore() float32 {
	var blackArea, whiteArea int32
	for _, s := range b.stones {
		switch s {
		case Black:
			blackArea++
		case White:
			whiteArea++
		}
	}
	return b.Komi + float32(whiteArea) - float32(blackArea)
}
