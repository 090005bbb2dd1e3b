package bot

import (
	"testing"

	"github.com/gameofy/backend/internal/domain"
)

func TestChooseMoveOnFreshGame(t *testing.T) {
	g := domain.NewGame(3)

	move := NewEngine(25).ChooseMove(g)
	if move == nil {
		t.Fatal("no move on a fresh game")
	}
	if !move.IsValid(3) {
		t.Fatalf("chosen cell %+v is off the board", *move)
	}
	if g.Board.Owner(move.Index(3)) != domain.Empty {
		t.Fatalf("chosen cell %+v is already occupied", *move)
	}
}

func TestChooseMoveNilWhenGameOver(t *testing.T) {
	g := domain.NewGame(3)
	for i, c := range []domain.Coordinates{
		{X: 0, Y: 0, Z: 2},
		{X: 2, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 2, Z: 0},
	} {
		player := domain.Player1
		if i%2 == 1 {
			player = domain.Player2
		}
		if err := g.MakeMove(player, c); err != nil {
			t.Fatalf("setup move %d: %v", i, err)
		}
	}
	if g.Status != domain.StatusWon {
		t.Fatal("setup did not produce a finished game")
	}

	if move := NewEngine(25).ChooseMove(g); move != nil {
		t.Errorf("finished game produced move %+v", *move)
	}
}

func TestChooseMoveTakesInstantWin(t *testing.T) {
	// Player1 to move with two stones on side A; completing the column
	// connects all three sides.
	g := domain.NewGame(3)
	setup := []struct {
		player domain.PlayerID
		cell   domain.Coordinates
	}{
		{domain.Player1, domain.Coordinates{X: 0, Y: 0, Z: 2}},
		{domain.Player2, domain.Coordinates{X: 2, Y: 0, Z: 0}},
		{domain.Player1, domain.Coordinates{X: 0, Y: 1, Z: 1}},
		{domain.Player2, domain.Coordinates{X: 1, Y: 1, Z: 0}},
	}
	for i, m := range setup {
		if err := g.MakeMove(m.player, m.cell); err != nil {
			t.Fatalf("setup move %d: %v", i, err)
		}
	}

	move := NewEngine(25).ChooseMove(g)
	if move == nil {
		t.Fatal("no move in a winning position")
	}
	if err := g.MakeMove(domain.Player1, *move); err != nil {
		t.Fatalf("engine move rejected: %v", err)
	}
	if g.Status != domain.StatusWon || g.Winner != domain.Player1 {
		t.Errorf("engine missed the winning cell, played %+v", *move)
	}
}

func TestCalculateBestMoveAllDifficulties(t *testing.T) {
	for _, difficulty := range []string{"easy", "medium", "hard", "nonsense"} {
		g := domain.NewGame(3)
		move := CalculateBestMove(g, difficulty, 40)
		if move == nil {
			t.Fatalf("%s: no move on a fresh game", difficulty)
		}
		if err := g.MakeMove(domain.Player1, *move); err != nil {
			t.Errorf("%s: move %+v rejected: %v", difficulty, *move, err)
		}
	}
}

func TestChooseMoveNearZeroBudgetStillLegal(t *testing.T) {
	g := domain.NewGame(4)

	move := NewEngine(0).ChooseMove(g)
	if move == nil {
		t.Fatal("no move with an exhausted budget")
	}
	if err := g.MakeMove(domain.Player1, *move); err != nil {
		t.Errorf("fallback move %+v rejected: %v", *move, err)
	}
}
