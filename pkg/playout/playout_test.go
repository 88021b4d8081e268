package playout

import (
	"math/rand"
	"testing"

	"github.com/gomcts/gomcts/pkg/board"
)

func TestMoggyPlayoutTerminates(t *testing.T) {
	b := board.New(5)
	rng := rand.New(rand.NewSource(1))
	p := NewMoggy()

	result := p.Playout(b, board.Black, 200, rng, nil)
	if result != Win && result != Loss {
		t.Fatalf("unexpected result %v", result)
	}
}

func TestMoggyRecordsAMAF(t *testing.T) {
	b := board.New(5)
	rng := rand.New(rand.NewSource(2))
	p := NewMoggy()
	amaf := NewAMAFMap(5)

	p.Playout(b, board.Black, 200, rng, amaf)

	played := false
	for _, s := range amaf {
		if s != board.Empty {
			played = true
			break
		}
	}
	if !played {
		t.Fatal("expected AMAF map to record at least one move")
	}
}

func TestLightPlayoutTerminates(t *testing.T) {
	b := board.New(5)
	rng := rand.New(rand.NewSource(3))
	var p Light

	result := p.Playout(b, board.White, 200, rng, nil)
	if result != Win && result != Loss {
		t.Fatalf("unexpected result %v", result)
	}
}

func TestTwoPassScoringScenario(t *testing.T) {
	// spec.md scenario 6, checked on the board directly (no Driver is run):
	// after two passes, OfficialScore is the komi alone, and the drivers'
	// sign rule (positive favors White) gives Black a Loss.
	b := board.New(9)
	b.Komi = 5.5
	// Immediately pass twice: empty board, score = komi = 5.5 > 0, White
	// wins, so a Black-to-move playout scoring from pass/pass reports Loss.
	b.Play(board.Move{Coord: board.Pass, Color: board.Black})
	b.Play(board.Move{Coord: board.Pass, Color: board.White})

	score := b.OfficialScore()
	if score != 5.5 {
		t.Fatalf("score = %v, want 5.5", score)
	}
	won := (score > 0) == (board.Black == board.White)
	if won {
		t.Fatal("black should not win an empty board with positive komi")
	}
}
