// Package bench runs engine-versus-engine matches for comparing two
// Config strings against each other, adapted from the teacher's
// pkg/bench versus-arena (generic over any mcts.MoveLike game) down to
// this module's concrete board.Board/mcts.Engine types.
package bench

import "sync/atomic"

// Result is the outcome of one game from player 1's point of view.
type Result int

const (
	Player1Win Result = 1
	Player2Win Result = -1
	Draw       Result = 0
)

// Stats accumulates match results across all workers; every counter is
// updated via atomic.AddUint32 so workers never need a shared mutex.
type Stats struct {
	p1Wins           uint32
	p2Wins           uint32
	draws            uint32
	firstToMoveWins  uint32
	secondToMoveWins uint32
}

func (s *Stats) Total() int            { return s.P1Wins() + s.P2Wins() + s.Draws() }
func (s *Stats) P1Wins() int           { return int(atomic.LoadUint32(&s.p1Wins)) }
func (s *Stats) P2Wins() int           { return int(atomic.LoadUint32(&s.p2Wins)) }
func (s *Stats) Draws() int            { return int(atomic.LoadUint32(&s.draws)) }
func (s *Stats) FirstToMoveWins() int  { return int(atomic.LoadUint32(&s.firstToMoveWins)) }
func (s *Stats) SecondToMoveWins() int { return int(atomic.LoadUint32(&s.secondToMoveWins)) }

func (s *Stats) record(result Result, firstPlayerWon bool) {
	switch result {
	case Player1Win:
		atomic.AddUint32(&s.p1Wins, 1)
	case Player2Win:
		atomic.AddUint32(&s.p2Wins, 1)
	case Draw:
		atomic.AddUint32(&s.draws, 1)
	}
	if result == Draw {
		return
	}
	if firstPlayerWon {
		atomic.AddUint32(&s.firstToMoveWins, 1)
	} else {
		atomic.AddUint32(&s.secondToMoveWins, 1)
	}
}

// Summary is the final, read-only report of a completed match.
type Summary struct {
	TotalGames       int    `json:"total_games"`
	P1Wins           int    `json:"player1_wins"`
	P2Wins           int    `json:"player2_wins"`
	Draws            int    `json:"draws"`
	FirstToMoveWins  int    `json:"first_to_move_wins"`
	SecondToMoveWins int    `json:"second_to_move_wins"`
	Workers          int    `json:"workers"`
	P1Name           string `json:"player1_name"`
	P2Name           string `json:"player2_name"`
}
